package jobs

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	membershipUsecases "github.com/parlourcover/parlour/internal/application/membership/usecases"
	paymentUsecases "github.com/parlourcover/parlour/internal/application/payment/usecases"
	"github.com/parlourcover/parlour/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/parlourcover/parlour/internal/interfaces/http"
)

const jobTimeout = 30 * time.Minute

var (
	env        string
	configPath string
)

// NewCommand returns the "jobs" command, which runs batch jobs once and exits.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Run batch jobs once",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newJobCommand(paymentUsecases.JobPaymentStatus, "Recompute every applicant's payment status"),
		newJobCommand(membershipUsecases.JobWaitingPeriod, "Count waiting periods down by one day"),
		&cobra.Command{
			Use:   "all",
			Short: "Run every batch job",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runJobs(cmd.Context(), nil)
			},
		},
	)

	return cmd
}

func newJobCommand(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobs(cmd.Context(), []string{name})
		},
	}
}

// runJobs runs the named jobs in order, or all of them when names is empty.
func runJobs(parent context.Context, names []string) error {
	rt, err := bootstrap.Open(env, configPath)
	if err != nil {
		return err
	}
	defer rt.Close()

	container, err := httpRouter.NewContainer(rt.DB, rt.Config, rt.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer container.Shutdown()

	jobs := container.BatchJobs()
	if len(names) == 0 {
		for name := range jobs {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	if parent == nil {
		parent = context.Background()
	}

	for _, name := range names {
		job, ok := jobs[name]
		if !ok {
			return fmt.Errorf("unknown job %q", name)
		}

		ctx, cancel := context.WithTimeout(parent, jobTimeout)
		start := time.Now()
		changed, err := job.Execute(ctx)
		cancel()
		if err != nil {
			rt.Log.Errorw("batch job failed", "job", name, "error", err)
			return fmt.Errorf("job %s failed: %w", name, err)
		}

		rt.Log.Infow("batch job completed", "job", name, "changed", changed, "duration", time.Since(start))
		fmt.Printf("%s: %d records changed\n", name, changed)
	}
	return nil
}
