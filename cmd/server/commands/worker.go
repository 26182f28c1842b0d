package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iliyamo/ticket-booking-api/internal/queue"
	"github.com/iliyamo/ticket-booking-api/internal/repository"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume booking events and write notifications",
	Long: `Consume booking and payment events from RABBITMQ_URL (queue EVENTS_QUEUE)
and write one notification per event.  Runs until interrupted.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log := setup()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := openStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		w := queue.NewWorker(cfg.RabbitMQURL, cfg.EventsQueue,
			repository.NewNotificationRepo(store), repository.NewBookingRepo(store), log)
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}
