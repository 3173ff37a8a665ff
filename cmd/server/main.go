package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wanxuanju/monument-api/internal/api"
	"github.com/wanxuanju/monument-api/internal/core/service"
	"github.com/wanxuanju/monument-api/internal/infrastructure/auth"
	"github.com/wanxuanju/monument-api/internal/infrastructure/config"
	mongodb "github.com/wanxuanju/monument-api/internal/infrastructure/db/mongo"
	redisdb "github.com/wanxuanju/monument-api/internal/infrastructure/db/redis"
	"github.com/wanxuanju/monument-api/internal/infrastructure/storage"
	"github.com/wanxuanju/monument-api/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "monument-api",
	})

	ctx := context.Background()

	// --- Backing stores ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	log.Info().Msg("backing stores connected")

	// --- Repositories ---
	accountRepo := mongodb.NewAccountRepository(db)
	metaRepo := mongodb.NewMetaRepository(db)
	attachmentRepo := mongodb.NewAttachmentRepository(db)
	announcementRepo := mongodb.NewAnnouncementRepository(db)

	if err := accountRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("account indexes: %w", err)
	}
	if err := metaRepo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("meta indexes: %w", err)
	}

	// --- Auth backend ---
	backend := auth.NewBackend(
		accountRepo,
		redisdb.NewSessionCache(rdb),
		redisdb.NewSessionFeed(rdb, log),
		auth.Config{
			JWTSecret:   cfg.JWTSecret,
			TokenTTL:    cfg.SessionTTL,
			AutoConfirm: cfg.AuthAutoConfirm,
		},
		log,
	)

	// --- Storage ---
	signer := storage.NewURLSigner(cfg.JWTSecret)
	objects, err := storage.NewGridFSStorage(db, cfg.StorageBucket, cfg.BaseURL, signer)
	if err != nil {
		return fmt.Errorf("storage bucket: %w", err)
	}

	// --- Services ---
	attachments := service.NewAttachmentService(objects, attachmentRepo, log)
	announcements := service.NewAnnouncementService(announcementRepo, attachments, log)

	store := service.NewSessionStore(backend, metaRepo, cfg.BaseURL, log)
	store.Init(ctx, "")
	defer store.Close()

	// --- HTTP server ---
	e := api.NewRouter(api.Dependencies{
		Log:           log,
		Mongo:         db,
		Redis:         rdb,
		Backend:       backend,
		MetaRepo:      metaRepo,
		Store:         store,
		Announcements: announcements,
		Attachments:   attachments,
		Objects:       objects,
		StorageBucket: cfg.StorageBucket,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server listen error")
		}
	}()

	<-stop
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info().Msg("server stopped gracefully")
	return nil
}
