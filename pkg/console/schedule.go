package console

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/femi9outfit/storefront/pkg/orders"
	"github.com/femi9outfit/storefront/pkg/root"
	"github.com/femi9outfit/storefront/pkg/schedule"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// PendingDigestTask is the scheduler name of the pending-order digest.
const PendingDigestTask = "orders:pending-digest"

var runTask string

var scheduleCmd = &cobra.Command{
	Use:   "schedule:run",
	Short: "Run the scheduled tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		locks, err := a.lockProvider(ctx)
		if err != nil {
			return err
		}
		svc, err := a.orderService(ctx)
		if err != nil {
			return err
		}

		kernel := schedule.NewKernel(locks)
		if err := registerTasks(kernel, svc, a.cfg.App.DigestSchedule, a.cfg.App.DigestAfter); err != nil {
			return err
		}

		if runTask != "" {
			return kernel.RunTask(ctx, runTask)
		}
		kernel.Run(ctx)
		return nil
	},
}

func registerTasks(kernel *schedule.Kernel, svc *orders.Service, digestSpec string, digestAfter time.Duration) error {
	return kernel.Register(digestSpec, PendingDigestTask, func(ctx context.Context) error {
		n, err := svc.PendingDigest(ctx, digestAfter)
		if err != nil {
			return err
		}
		log.Ctx(ctx).Info().Int("orders", n).Msg("Pending-order digest done")
		return nil
	}, schedule.WithoutOverlapping(), schedule.OnOneServer(10*time.Minute))
}

func init() {
	scheduleCmd.Flags().StringVar(&runTask, "task", "", "run one task immediately and exit")

	root.GetRoot().AddCommand(scheduleCmd)
}
