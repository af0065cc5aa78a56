package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"autoswing/journal"
	"autoswing/pipeline"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the daily pipeline on a cron schedule",
	Long: `Schedule keeps the process alive and runs the daily pipeline on
the given cron spec. The default fires at 21:30 UTC on weekdays, after the
US close.

Example:
  autoswing schedule --cron "30 21 * * MON-FRI"`,
	RunE: runSchedule,
}

var (
	schedCron    string
	schedDays    int
	schedStrat   string
	schedRunNow  bool
)

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVar(&schedCron, "cron", "30 21 * * MON-FRI", "cron spec for the daily run")
	scheduleCmd.Flags().IntVarP(&schedDays, "days", "d", 60, "lookback days per run")
	scheduleCmd.Flags().StringVar(&schedStrat, "strategy", "sma-pullback", "strategy name")
	scheduleCmd.Flags().BoolVar(&schedRunNow, "now", false, "also run once immediately on start")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	log := newLogger()

	job := pipeline.JobFunc{
		JobName: "daily-pipeline",
		Fn: func() error {
			_, err := pipeline.RunDaily(context.Background(), pipeline.Options{
				Root:         rootDir,
				SettingsPath: filepath.Join(rootDir, "settings.yaml"),
				Days:         schedDays,
				Strategy:     schedStrat,
				Journal:      journal.NewCSV(rootDir),
				Log:          log,
			})
			return err
		},
	}

	sched := pipeline.NewScheduler(log)
	if err := sched.AddJob(schedCron, job); err != nil {
		return fmt.Errorf("bad cron spec %q: %w", schedCron, err)
	}

	if schedRunNow {
		if err := sched.RunNow(job); err != nil {
			log.Error().Err(err).Msg("initial run failed")
		}
	}

	sched.Start()
	defer sched.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	fmt.Println("\nShutting down.")
	return nil
}
