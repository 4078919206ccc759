package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"absweep/internal/logging"
)

func newScheduleCommand(ctx *commandContext) *cobra.Command {
	var intervalFlag int

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Sweep on a fixed interval until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if intervalFlag > 0 {
				cfg.Schedule.IntervalMinutes = intervalFlag
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			lock, err := acquireLock(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = lock.Unlock() }()

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			interval := time.Duration(cfg.Schedule.IntervalMinutes) * time.Minute
			logger.Info("scheduler started", "interval", interval.String())

			out := cmd.OutOrStdout()
			runOnce := func() {
				if _, err := executeSweep(signalCtx, cfg, logger, out); err != nil {
					logger.Error("sweep failed", "error", err)
				}
			}

			runOnce()

			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-signalCtx.Done():
					logger.Info("scheduler stopping")
					return nil
				case <-ticker.C:
					runOnce()
				}
			}
		},
	}

	cmd.Flags().IntVar(&intervalFlag, "interval", 0, "Minutes between sweeps (overrides configuration)")
	return cmd
}
