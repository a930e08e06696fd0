package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"messagely/config"
	"messagely/internal/domain/user"
	"messagely/internal/repository"
	messagely_errors "messagely/pkg/errors"
	"messagely/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo           repository.UserRepository
	jwtSecret          []byte
	tokenTTL           time.Duration
	bcryptCost         int
	loginUpdateTimeout time.Duration
	logger             *logger.Logger
	now                func() time.Time

	// pending tracks last-login updates that outlive their request.
	pending sync.WaitGroup
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config, l *logger.Logger) *AuthService {
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	timeout := time.Duration(cfg.LoginUpdateTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AuthService{
		userRepo:           userRepo,
		jwtSecret:          []byte(cfg.JWTSecret),
		tokenTTL:           cfg.TokenTTL(),
		bcryptCost:         cfg.BcryptCost,
		loginUpdateTimeout: timeout,
		logger:             l,
		now:                time.Now,
	}
}

type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

type LoginInput struct {
	Username string
	Password string
}

type AccessClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Register creates the user and returns a session token for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	if err := validateRegister(in); err != nil {
		return "", err
	}

	hash, err := hashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return "", err
	}

	newUser := &user.User{
		Username:  in.Username,
		Password:  hash,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return "", err
	}

	token, err := s.newAccessToken(newUser.Username)
	if err != nil {
		return "", err
	}

	s.touchLastLogin(ctx, newUser.Username)
	return token, nil
}

// Login verifies the credentials and returns a session token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, error) {
	if in.Username == "" || in.Password == "" {
		return "", messagely_errors.New(messagely_errors.ErrValidation, "username and password are required")
	}

	u, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, messagely_errors.ErrNotFound) {
			return "", messagely_errors.ErrInvalidCredentials
		}
		return "", err
	}

	if err := comparePassword(u.Password, in.Password); err != nil {
		return "", messagely_errors.ErrInvalidCredentials
	}

	token, err := s.newAccessToken(u.Username)
	if err != nil {
		return "", err
	}

	s.touchLastLogin(ctx, u.Username)
	return token, nil
}

func (s *AuthService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, messagely_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, messagely_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return AccessClaims{}, messagely_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid || claims.Username == "" {
		return AccessClaims{}, messagely_errors.ErrUnauthorized
	}

	return *claims, nil
}

// Wait blocks until every scheduled last-login update has finished.
func (s *AuthService) Wait() {
	s.pending.Wait()
}

// touchLastLogin records the login time without holding up the response.
// The update is detached from request cancellation but bounded by its own timeout.
func (s *AuthService) touchLastLogin(ctx context.Context, username string) {
	ctx = context.WithoutCancel(ctx)
	at := s.now()

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(ctx, s.loginUpdateTimeout)
		defer cancel()

		if err := s.userRepo.UpdateLoginTimestamp(ctx, username, at); err != nil {
			s.logger.WithContext(ctx).Warnf("failed to update last login for %s: %v", username, err)
		}
	}()
}

func (s *AuthService) newAccessToken(username string) (string, error) {
	now := s.now()

	claims := AccessClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.tokenTTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.tokenTTL))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func validateRegister(in RegisterInput) error {
	var missing []string
	if strings.TrimSpace(in.Username) == "" {
		missing = append(missing, "username")
	}
	if in.Password == "" {
		missing = append(missing, "password")
	}
	if strings.TrimSpace(in.FirstName) == "" {
		missing = append(missing, "first_name")
	}
	if strings.TrimSpace(in.LastName) == "" {
		missing = append(missing, "last_name")
	}
	if strings.TrimSpace(in.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return messagely_errors.New(messagely_errors.ErrValidation, "missing required fields: %s", strings.Join(missing, ", "))
	}
	if len(in.Password) > maxPasswordBytes {
		return messagely_errors.New(messagely_errors.ErrValidation, "password must be at most %d bytes", maxPasswordBytes)
	}
	return nil
}

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

func hashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
