package console

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/femi9outfit/storefront/pkg/mail"
	"github.com/femi9outfit/storefront/pkg/queue"
	"github.com/femi9outfit/storefront/pkg/root"
	"github.com/femi9outfit/storefront/pkg/telemetry"
	"github.com/femi9outfit/storefront/pkg/worker"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	queueName   string
	concurrency int
)

var workerCmd = &cobra.Command{
	Use:     "queue:work",
	Aliases: []string{"worker"},
	Short:   "Start the mail queue worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		tp, err := telemetry.InitTracer("femi9-worker", os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to initialize tracer: %w", err)
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Error().Err(err).Msg("Error shutting down tracer")
			}
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		driver, failed, err := a.queueDriver(ctx)
		if err != nil {
			return err
		}
		if driver == nil {
			return fmt.Errorf("queue connection %q has nothing to work; set QUEUE_CONNECTION to redis, database or sqs", a.cfg.Queue.Connection)
		}

		mailer, err := mail.NewMailer(ctx, a.cfg.Mail)
		if err != nil {
			return err
		}
		queue.RegisterMailHandler(mailer)

		name := queueName
		if name == "" {
			name = a.cfg.Queue.Name
		}
		w := worker.NewWorker(driver, failed, name, concurrency, tp.Tracer("worker"))
		w.Connection = a.cfg.Queue.Connection

		log.Info().Str("queue", name).Str("connection", w.Connection).Int("workers", concurrency).Strs("jobs", queue.Registered()).Msg("Starting worker pool...")
		w.Run(ctx)
		log.Info().Msg("Worker pool stopped.")
		return nil
	},
}

func init() {
	workerCmd.Flags().StringVar(&queueName, "queue", "", "name of the queue to process (default QUEUE_NAME)")
	workerCmd.Flags().IntVar(&concurrency, "workers", 5, "number of concurrent workers")

	root.GetRoot().AddCommand(workerCmd)
}
