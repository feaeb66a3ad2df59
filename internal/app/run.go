package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

type Runner func(ctx context.Context) error

// Run executes a service body under SIGINT/SIGTERM handling and returns the
// process exit code.
func Run(serviceName string, run Runner) int {
	logger := zerolog.New(os.Stderr).With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	logger.Info().Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- run(ctx) }()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		// небольшой grace period, чтобы закрыть коннекты
		time.Sleep(200 * time.Millisecond)
		return 0
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("failed")
			return 1
		}
		logger.Info().Msg("stopped")
		return 0
	}
}
