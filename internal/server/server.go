package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"messagely/config"
	"messagely/internal/handler"
	"messagely/internal/middleware"
	"messagely/internal/ratelimit"
	"messagely/internal/services"
	"messagely/internal/transport/httpdto"
	"messagely/internal/websocket"
	"messagely/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
	onShutdown []func()
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Message   *handler.MessageHandler
	Health    *handler.HealthHandler
	WebSocket *websocket.Handler
}

// Limiters holds the per-route rate limiters. A nil limiter disables limiting.
type Limiters struct {
	Auth     ratelimit.Limiter
	Messages ratelimit.Limiter
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	switch cfg.AppMode {
	case ReleaseMode:
		gin.SetMode(gin.ReleaseMode)
	case TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	if l == nil {
		l = logger.GetGlobalLogger()
	}

	engine := gin.New()
	engine.Use(middleware.Recovery(l))

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.AppPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// OnShutdown registers fn to run after the HTTP server has drained.
func (s *Server) OnShutdown(fn func()) {
	s.onShutdown = append(s.onShutdown, fn)
}

func (s *Server) SetupRoutes(handlers *Handlers, authService *services.AuthService, limiters Limiters) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/ping", handlers.Health.Ping)
	s.engine.GET("/health", handlers.Health.Health)

	ensureLoggedIn := middleware.EnsureLoggedIn(authService)

	auth := s.engine.Group("/auth", s.limit(limiters.Auth, middleware.ByClientIP)...)
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
	}

	messages := s.engine.Group("/messages", ensureLoggedIn)
	{
		messages.GET("/:id", handlers.Message.Get)
		messages.POST("", append(s.limit(limiters.Messages, middleware.ByUsername), handlers.Message.Create)...)
		messages.POST("/:id/read", handlers.Message.MarkRead)
	}

	users := s.engine.Group("/users", ensureLoggedIn)
	{
		users.GET("", handlers.User.List)

		self := users.Group("/:username", middleware.EnsureCorrectUser())
		self.GET("", handlers.User.Get)
		self.GET("/to", handlers.User.MessagesTo)
		self.GET("/from", handlers.User.MessagesFrom)
	}

	if handlers.WebSocket != nil {
		s.engine.GET("/ws", ensureLoggedIn, handlers.WebSocket.Connect)
	}

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("not found", http.StatusNotFound))
	})
}

func (s *Server) limit(limiter ratelimit.Limiter, keyFn middleware.KeyFunc) []gin.HandlerFunc {
	if limiter == nil {
		return nil
	}
	return []gin.HandlerFunc{middleware.RateLimitMiddleware(limiter, keyFn, s.logger)}
}

// Start serves until ctx is cancelled, then shuts down gracefully and runs
// the OnShutdown hooks.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.logger.Errorf("Error in starting the server: %s", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	timeout := time.Duration(s.config.ShutdownTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	s.logger.Infof("Quitting signal received.. Shutting down within %s", timeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	if err != nil {
		s.logger.Errorf("Error in the graceful shutdown of the server: %s", err)
	}

	for _, fn := range s.onShutdown {
		fn()
	}

	if err == nil {
		s.logger.Infof("Server stopped gracefully")
	}
	return err
}
