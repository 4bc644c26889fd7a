package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"solscreener/internal/config"
	"solscreener/internal/store"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show screener status and 24h activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Config:    %s\n", ctx.configPath)
			fmt.Fprintf(out, "Database:  %s\n", cfg.DatabasePath())
			fmt.Fprintf(out, "Daemon:    %s\n", daemonState(cfg.Paths.DataDir))

			return withStore(ctx, func(runCtx context.Context, st *store.Store) error {
				if err := st.CheckHealth(runCtx); err != nil {
					return err
				}
				stats, err := st.ScanStats(runCtx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Last 24h:  %d scans, %d projects seen, %d notified\n",
					stats.Scans, stats.Projects, stats.Notified)

				fmt.Fprintf(out, "Pump.fun:  %s\n", yesNo(cfg.Screener.EnablePumpfun))
				fmt.Fprintf(out, "Mania:     %s\n", yesNo(cfg.Screener.EnableManiaScoring))
				fmt.Fprintf(out, "Channels:  %s\n", channelSummary(cfg))
				fmt.Fprintf(out, "Watching:  %d wallets, %d tokens, %d NFT collections\n",
					len(cfg.WatchWallets()), len(cfg.Realtime.WatchTokens), len(cfg.Realtime.NFTCollections))
				return nil
			})
		},
	}
}

// daemonState probes the daemon lock without disturbing a held lock.
func daemonState(dataDir string) string {
	lock := flock.New(filepath.Join(dataDir, "solscreener.lock"))
	held, err := lock.TryLock()
	if err != nil {
		return "unknown"
	}
	if !held {
		return "running"
	}
	_ = lock.Unlock()
	return "not running"
}

func channelSummary(cfg *config.Config) string {
	var channels []string
	if strings.TrimSpace(cfg.Notifications.DiscordWebhookURL) != "" {
		channels = append(channels, "discord")
	}
	if strings.TrimSpace(cfg.Notifications.TelegramBotToken) != "" &&
		strings.TrimSpace(cfg.Notifications.TelegramChatID) != "" {
		channels = append(channels, "telegram")
	}
	if strings.TrimSpace(cfg.Notifications.NtfyTopic) != "" {
		channels = append(channels, "ntfy")
	}
	if len(channels) == 0 {
		return "none"
	}
	return strings.Join(channels, ", ")
}
