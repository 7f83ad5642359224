package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cahrendt0815/alphahandle/internal/scheduler"
	"github.com/cahrendt0815/alphahandle/internal/scheduler/jobs"
	"github.com/cahrendt0815/alphahandle/pkg/config"
	"github.com/cahrendt0815/alphahandle/pkg/logger"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Start the job scheduler",
	Long: `Starts the scheduler that keeps stored scorecards fresh.

Jobs:
  refresh_scorecards - re-runs the pipeline for every stored handle
                       (default: daily at 6 AM)

Example:
  go run ./cmd/alphahandle scheduler
  go run ./cmd/alphahandle scheduler --run-now`,
	RunE: runScheduler,
}

var (
	schedulerRunNow bool
)

func init() {
	rootCmd.AddCommand(schedulerCmd)

	// Flags
	schedulerCmd.Flags().BoolVar(&schedulerRunNow, "run-now", false, "run the refresh job immediately on start")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	ctx := context.Background()

	// 3. Build store and pipeline
	bundle, err := newStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer bundle.close()

	src := newPostSource(cfg, "", log)
	p := newPipeline(cfg, src, bundle.store, log)

	// 4. Create scheduler and register jobs
	sched := scheduler.New(log)

	refreshJob := jobs.NewRefreshScorecardsJob(p, bundle.lister, cfg.Pipeline.RefreshCronSpec, log)
	if err := sched.AddJob(refreshJob); err != nil {
		return fmt.Errorf("register refresh job: %w", err)
	}

	// 5. Start
	sched.Start()
	log.Info("Scheduler started successfully")

	if schedulerRunNow {
		if err := sched.RunJob(refreshJob.Name()); err != nil {
			return err
		}
	}

	fmt.Println("\nScheduler running. Press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
