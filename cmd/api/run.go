package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/pixelsaas/media-api/internal/auth"
	"github.com/pixelsaas/media-api/internal/config"
	"github.com/pixelsaas/media-api/internal/mediahost"
	"github.com/pixelsaas/media-api/internal/storage/postgres"
	"github.com/pixelsaas/media-api/internal/video/httpapi"
	"github.com/pixelsaas/media-api/internal/video/service"
)

func run(ctx context.Context) error {
	_ = godotenv.Load()

	cfg, err := config.Load("api")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.Service.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	db, err := postgres.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer db.Close()

	host, err := mediahost.NewClient(mediahost.ClientConfig{
		CloudName: cfg.MediaHost.CloudName,
		APIKey:    cfg.MediaHost.APIKey,
		APISecret: cfg.MediaHost.APISecret,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("media host: %w", err)
	}

	// Dependencies
	outboxRepo := postgres.NewOutboxRepo(db)
	repo := postgres.NewVideoRepo(db, outboxRepo)
	svc := service.New(repo, host, service.Config{
		ResolveAttempts: cfg.Reconcile.Attempts,
		ResolveDelay:    cfg.Reconcile.Delay,
	}, logger)
	h := httpapi.New(svc, host, cfg.MediaHost.Folder)

	verifier := auth.NewStaticVerifier(cfg.Auth.Sessions)
	router := httpapi.NewRouter(h, auth.Middleware(verifier))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Service.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil

	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen and serve: %w", err)
	}
}
