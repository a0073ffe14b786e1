package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"really-simple-feedback/internal/auth"
	"really-simple-feedback/internal/config"
	"really-simple-feedback/internal/database"
	"really-simple-feedback/internal/feedback"
	"really-simple-feedback/internal/handlers"
	"really-simple-feedback/internal/logger"
	"really-simple-feedback/internal/mailer"
	"really-simple-feedback/internal/repository"
	"really-simple-feedback/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatalw("Invalid configuration", "error", err)
	}

	logger.Init(cfg.LogLevel, cfg.IsProduction())
	log := logger.Get()
	defer logger.Sync()

	records, tokens, closeStore, err := openStores(cfg)
	if err != nil {
		log.Fatalw("Failed to open store", "driver", cfg.StoreDriver, "error", err)
	}
	defer closeStore()

	// Ensure indexes
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	for _, store := range []interface{}{records, tokens} {
		if ensurer, ok := store.(repository.IndexEnsurer); ok {
			if err := ensurer.EnsureIndexes(ctx); err != nil {
				log.Warnw("Failed to create indexes", "error", err)
			}
		}
	}
	cancel()

	var sender mailer.Sender = mailer.NewLogSender(log)
	if cfg.ResendAPIKey != "" {
		sender = mailer.NewResendSender(cfg.ResendAPIKey, cfg.FromEmail)
	} else {
		log.Warn("RESEND_API_KEY not set, login links will be logged instead of sent")
	}

	issuer := auth.NewTokenIssuer(cfg.JWTSecret)
	resolver := auth.NewCapabilityResolver(cfg.AdminEmails())

	handler := router.New(router.Deps{
		Feedback:       handlers.NewFeedbackHandler(feedback.NewSubmissionService(records, log)),
		Moderation:     handlers.NewModerationHandler(feedback.NewModerationService(records, log)),
		Admin:          handlers.NewAdminHandler(records, issuer, cfg.SiteURL),
		Widget:         handlers.NewWidgetHandler(handlers.DefaultWidgetConfig(cfg.SiteURL)),
		Auth:           handlers.NewAuthHandler(tokens, issuer, resolver, sender, cfg.BaseURL),
		Issuer:         issuer,
		Resolver:       resolver,
		AllowedOrigins: cfg.Origins(),
		AccessLog:      true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("Feedback service starting", "port", cfg.Port, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("Server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Graceful shutdown failed", "error", err)
	}
	log.Info("Server stopped")
}

func openStores(cfg *config.Config) (repository.RecordStore, repository.AuthTokenStore, func(), error) {
	log := logger.Get()

	switch cfg.StoreDriver {
	case config.DriverMongo:
		if err := database.Connect(cfg.MongoURI, cfg.DBName); err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := database.Disconnect(ctx); err != nil {
				log.Warnw("Failed to disconnect from MongoDB", "error", err)
			}
		}
		return repository.NewMongoRecordRepo(), repository.NewMongoAuthTokenRepo(), closeFn, nil

	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		records := repository.NewSQLRecordRepo(db)
		tokens := repository.NewSQLAuthTokenRepo(db)
		if err := records.Migrate(); err != nil {
			return nil, nil, nil, err
		}
		if err := tokens.Migrate(); err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		log.Infow("Opened SQLite store", "path", cfg.SQLitePath)
		return records, tokens, closeFn, nil

	default:
		log.Warn("Using in-memory store, feedback is lost on restart")
		return repository.NewMemoryRecordStore(), repository.NewMemoryAuthTokenStore(), func() {}, nil
	}
}
