package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/ticket-booking-api/internal/config"
	"github.com/iliyamo/ticket-booking-api/internal/queue"
	"github.com/iliyamo/ticket-booking-api/internal/repository"
	"github.com/iliyamo/ticket-booking-api/internal/server"
)

const shutdownTimeout = 10 * time.Second

var withWorker bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API on APP_HOST:APP_PORT.

Examples:
  ticket-booking-api serve             # API only
  ticket-booking-api serve --worker    # API plus the notification worker`,
	RunE: runServe,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().BoolVar(&withWorker, "worker", false, "Also run the notification worker in this process")
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log := setup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	e := server.New(server.Deps{
		Config:    cfg,
		RateLimit: config.LoadRateLimitConfig(),
		Log:       log,
		Store:     store,
		Redis:     rdb,
		Events:    queue.NewPublisher(cfg.RabbitMQURL, cfg.EventsQueue, log),
	})

	var wg sync.WaitGroup
	if withWorker {
		if cfg.RabbitMQURL == "" {
			log.Warn("--worker ignored: RABBITMQ_URL is not set")
		} else {
			w := queue.NewWorker(cfg.RabbitMQURL, cfg.EventsQueue,
				repository.NewNotificationRepo(store), repository.NewBookingRepo(store), log)
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.WithError(err).Error("notification worker stopped")
				}
			}()
		}
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr()).WithField("env", cfg.Env).Info("listening")
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		stop()
		wg.Wait()
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	wg.Wait()
	return nil
}
