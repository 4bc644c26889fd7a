package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"solscreener/internal/store"
)

func withStore(ctx *commandContext, fn func(context.Context, *store.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	return fn(context.Background(), st)
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent screening runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(ctx, func(runCtx context.Context, st *store.Store) error {
				records, err := st.RecentScans(runCtx, limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintln(out, "No screening runs recorded yet")
					return nil
				}

				rows := make([][]string, 0, len(records))
				for _, record := range records {
					rows = append(rows, []string{
						record.StartedAt.Local().Format("2006-01-02 15:04"),
						fmt.Sprintf("%d", record.ProjectCount),
						topSummary(record.Top),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Started", "Projects", "Top picks"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}

func newNotifiedCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "notified",
		Short: "Show recently notified tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(ctx, func(runCtx context.Context, st *store.Store) error {
				entries, err := st.NotifiedEntries(runCtx, limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No notifications recorded yet")
					return nil
				}

				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						entry.Symbol,
						entry.Name,
						fmt.Sprintf("%.1f", entry.Score),
						humanSince(entry.LastNotifiedAt),
						entry.Mint,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Symbol", "Name", "Score", "Notified", "Mint"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries to show")
	return cmd
}

func topSummary(entries []store.TopEntry) string {
	if len(entries) == 0 {
		return "-"
	}
	parts := make([]string, 0, 3)
	for i, entry := range entries {
		if i >= 3 {
			break
		}
		symbol := entry.Symbol
		if symbol == "" {
			symbol = shortMint(entry.Mint)
		}
		parts = append(parts, fmt.Sprintf("%s %.0f", symbol, entry.Score))
	}
	return strings.Join(parts, ", ")
}

func shortMint(mint string) string {
	if len(mint) <= 8 {
		return mint
	}
	return mint[:4] + ".." + mint[len(mint)-4:]
}

func humanSince(at time.Time) string {
	if at.IsZero() {
		return "-"
	}
	elapsed := time.Since(at)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	}
}
