package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"

	"campushub/docs" // swagger docs
	"campushub/internal/auth"
	"campushub/internal/config"
	"campushub/internal/db"
	"campushub/internal/handler"
	"campushub/internal/kv"
	"campushub/internal/repository"
	"campushub/internal/router"
	"campushub/internal/service"
)

// @title CampusHub API
// @version 1.0
// @description Campus social feed and resource exchange API with bearer token authentication.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.LogLevel)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		fatal("database init", err)
	}

	if cfg.ResetDB {
		slog.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			slog.Warn("drop tables", "error", err)
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		fatal("migrate", err)
	}

	store := kv.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, "campushub:revoked:")
	defer store.Close()
	if err := store.Ping(context.Background()); err != nil {
		slog.Warn("redis unreachable, logout revocation is best effort", "error", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	itemRepo := repository.NewExchangeItemRepository(gormDB)

	// Initialize auth components
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	codec := auth.NewTokenCodec(cfg.JWTSecret)
	revocations := auth.NewRedisRevocations(store)
	gate := auth.NewGate(codec, userRepo, revocations)

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher, codec, revocations, cfg.AccessTokenTTL)
	userService := service.NewUserService(userRepo, hasher)
	postService := service.NewPostService(postRepo, commentRepo)
	exchangeService := service.NewExchangeService(itemRepo)

	e := echo.New()
	e.HideBanner = true

	router.Register(
		e,
		cfg,
		gate,
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewPostHandler(postService),
		handler.NewExchangeHandler(exchangeService),
	)

	if cfg.SwaggerHost != "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
		docs.SwaggerInfo.Host = host
	}
	slog.Info("swagger documentation available", "url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html")

	addr := ":" + cfg.ServerPort
	slog.Info("server starting", "addr", addr)
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fatal("server start", err)
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
