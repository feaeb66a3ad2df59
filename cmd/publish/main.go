package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/pixelsaas/media-api/internal/app"
	"github.com/pixelsaas/media-api/internal/config"
	"github.com/pixelsaas/media-api/internal/storage/postgres"
	"github.com/pixelsaas/media-api/internal/video/kafka"
	"github.com/pixelsaas/media-api/internal/video/outbox"
)

func main() {
	code := app.Run("publish", run)
	os.Exit(code)
}

func run(ctx context.Context) error {
	_ = godotenv.Load()

	cfg, err := config.Load("publish")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	db, err := postgres.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer db.Close()

	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers: cfg.Outbox.Brokers,
		Topic:   cfg.Outbox.Topic,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer producer.Close()

	publisher, err := outbox.NewPublisher(outbox.PublisherConfig{
		OutboxRepo: postgres.NewOutboxRepo(db),
		Producer:   producer,
		Interval:   cfg.Outbox.Interval,
		BatchSize:  cfg.Outbox.BatchSize,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("outbox publisher: %w", err)
	}

	if err := publisher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
