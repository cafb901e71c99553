package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gachisikyeo/gongu-gateway/internal/api"
	"github.com/gachisikyeo/gongu-gateway/internal/core/service"
	"github.com/gachisikyeo/gongu-gateway/internal/infrastructure/config"
	mongodb "github.com/gachisikyeo/gongu-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/gachisikyeo/gongu-gateway/internal/infrastructure/db/redis"
	"github.com/gachisikyeo/gongu-gateway/internal/infrastructure/queue"
	"github.com/gachisikyeo/gongu-gateway/internal/infrastructure/session"
	"github.com/gachisikyeo/gongu-gateway/internal/upstream"
	"github.com/gachisikyeo/gongu-gateway/pkg/logger"
)

// @title        Gongu Gateway API
// @version      1.0
// @description  Server-side gateway for the gongu group-purchase marketplace.
// @host         localhost:8080
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "gongu-gateway",
	})

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("invalid timezone")
	}

	// --- Infrastructure ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	sessions := session.NewManager(
		session.NewRedisRepository(rdb, cfg.SessionTTL),
		log, cfg.SessionTTL, cfg.SignupTokenTTL,
	)

	client := upstream.NewClient(cfg.UpstreamBaseURL, sessions, log, cfg.UpstreamTimeout)

	// --- Browse-history pipeline ---
	history := mongodb.NewHistoryRepository(db)
	dedup := redisdb.NewViewDeduper(rdb, 0)
	dispatcher := queue.NewDispatcher(cfg.HistoryWorkers, history, dedup, log)
	dispatcher.Start(ctx)

	// --- Services ---
	authService := service.NewAuthService(client, client, sessions, log)
	catalogService := service.NewCatalogService(client, history, dispatcher, sessions, log)
	purchaseService := service.NewPurchaseService(client, client, sessions, loc, log)
	myPageService := service.NewMyPageService(client, sessions, log)
	sellerService := service.NewSellerService(client, client, client, sessions, log)

	e := api.NewRouter(api.Deps{
		Auth:      authService,
		Catalog:   catalogService,
		Purchases: purchaseService,
		MyPage:    myPageService,
		Seller:    sellerService,
		Regions:   client,
		Sessions:  sessions,

		Mongo: db,
		Redis: rdb,

		SessionJWTSecret: cfg.SessionJWTSecret,
		SessionTTL:       cfg.SessionTTL,
		Logger:           log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("upstream", cfg.UpstreamBaseURL).Msg("gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
