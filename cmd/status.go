package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/synternet/launchpad-indexer/pkg/repository"
	"github.com/synternet/launchpad-indexer/pkg/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the checkpoint and platform totals",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		checkpoint, err := database.Checkpoint(ctx)
		if err != nil {
			slog.Error("Failed loading checkpoint", "err", err)
			return
		}
		stats, err := database.PlatformStats(ctx, types.PlatformStatsID)
		if err != nil {
			slog.Error("Failed loading platform stats", "err", err)
			return
		}

		out := map[string]any{"checkpoint": nil, "platform": repository.NewPlatformStats()}
		if cp, ok := checkpoint.Get(); ok {
			out["checkpoint"] = cp
		}
		if s, ok := stats.Get(); ok {
			out["platform"] = s
		}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			slog.Error("Failed encoding status", "err", err)
			return
		}
		fmt.Println(string(data))
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
