package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"solscreener/internal/logging"
	"solscreener/internal/store"
	"solscreener/internal/workflow"
)

// withManager builds the full dependency graph for a one-shot pass and
// tears it down afterwards.
func withManager(cmdCtx context.Context, ctx *commandContext, fn func(context.Context, *workflow.Manager) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	st, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return fn(signalCtx, workflow.NewManager(cfg, st, logger, nil))
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Run one screening pass now",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cmd.Context(), ctx, func(runCtx context.Context, mgr *workflow.Manager) error {
				if err := mgr.RunScreeningOnce(runCtx); err != nil {
					return fmt.Errorf("screening pass: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Screening pass complete")
				return nil
			})
		},
	}
}

func newMonitorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Run one realtime monitoring pass now",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cmd.Context(), ctx, func(runCtx context.Context, mgr *workflow.Manager) error {
				if err := mgr.RunRealtimeOnce(runCtx); err != nil {
					return fmt.Errorf("monitoring pass: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Monitoring pass complete")
				return nil
			})
		},
	}
}

func newReportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Build and send the daily report now",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cmd.Context(), ctx, func(runCtx context.Context, mgr *workflow.Manager) error {
				if err := mgr.RunReportOnce(runCtx); err != nil {
					return fmt.Errorf("daily report: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Daily report sent")
				return nil
			})
		},
	}
}
