package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/frenchreborn/province-chat/internal/api"
	"github.com/frenchreborn/province-chat/internal/core/service"
	"github.com/frenchreborn/province-chat/internal/infrastructure/config"
	mongodb "github.com/frenchreborn/province-chat/internal/infrastructure/db/mongo"
	redisdb "github.com/frenchreborn/province-chat/internal/infrastructure/db/redis"
	"github.com/frenchreborn/province-chat/internal/infrastructure/queue"
	"github.com/frenchreborn/province-chat/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)
	muteRepo := mongodb.NewMuteRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	muteCache := redisdb.NewMuteCache(rdb)

	// --- Audit pipeline ---
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditRepo, log)
	dispatcher.Start(ctx)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	chatService := service.NewChatService(cfg.Provinces, userRepo, messageRepo, muteRepo, muteCache, log)
	moderationService := service.NewModerationService(userRepo, muteRepo, muteCache, dispatcher, log)
	roleService := service.NewRoleService(roleRepo, log)

	if cfg.BootstrapAdmin != "" {
		if err := roleService.EnsureOverseer(ctx, cfg.Provinces[0], cfg.BootstrapAdmin); err != nil {
			log.Fatal().Err(err).Msg("bootstrap admin seeding failed")
		}
	}

	// --- HTTP ---
	e := api.NewRouter(db, rdb, api.Services{
		Auth:       authService,
		Chat:       chatService,
		Moderation: moderationService,
		Roles:      roleService,
	}, cfg.JWTSecret, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("province chat listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
