package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"messagely/config"
	"messagely/internal/events"
	"messagely/internal/handler"
	"messagely/internal/ratelimit"
	"messagely/internal/redis"
	"messagely/internal/repository"
	"messagely/internal/server"
	"messagely/internal/services"
	"messagely/internal/websocket"
	"messagely/pkg/database"
	"messagely/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	l := logger.New(cfg.LogMode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db.DB); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	hub := websocket.NewHub()
	go hub.Run(ctx)

	healthChecks := map[string]handler.HealthCheck{
		"database": func(ctx context.Context) error { return database.HealthCheck(ctx, db) },
	}

	// Without Redis the hub is the event transport and limits are per process.
	var (
		transport events.Transport = hub
		limiters                   = server.Limiters{
			Auth:     ratelimit.NewLocal(cfg.RateLimitAuth, cfg.RateLimitWindow()),
			Messages: ratelimit.NewLocal(cfg.RateLimitMessages, cfg.RateLimitWindow()),
		}
	)

	if cfg.RedisEnabled() {
		rdb, err := redis.NewClient(ctx, redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, 5*time.Second)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer rdb.Close()

		transport = redis.NewPublisher(rdb)
		limiters = server.Limiters{
			Auth:     redis.NewRateLimiter(rdb, "auth", cfg.RateLimitAuth, cfg.RateLimitWindow()),
			Messages: redis.NewRateLimiter(rdb, "messages", cfg.RateLimitMessages, cfg.RateLimitWindow()),
		}
		healthChecks["redis"] = func(ctx context.Context) error { return redis.HealthCheck(ctx, rdb) }

		bridge := websocket.NewRedisBridge(redis.NewSubscriber(rdb), hub)
		go func() {
			if err := bridge.Run(ctx); err != nil {
				l.Errorf("redis bridge stopped: %v", err)
			}
		}()
	}

	authService := services.NewAuthService(userRepo, cfg, l)
	userService := services.NewUserService(userRepo, messageRepo)
	messageService := services.NewMessageService(messageRepo, events.NewJSONPublisher(transport), l)

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		User:      handler.NewUserHandler(userService),
		Message:   handler.NewMessageHandler(messageService),
		Health:    handler.NewHealthHandler(healthChecks),
		WebSocket: websocket.NewHandler(hub, l),
	}, authService, limiters)
	srv.OnShutdown(authService.Wait)

	if err := srv.Start(ctx); err != nil {
		l.Errorf("server exited: %v", err)
	}
}
