package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/synternet/launchpad-indexer/internal/indexer"
	"github.com/synternet/launchpad-indexer/internal/ingest"
)

var flagReplayFile *string

// replayCmd applies an event log and prints the digest of the resulting state.
// Replaying the same log into an empty database always prints the same digest.
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Apply an event log file and print the state digest",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		logger := slog.Default()
		idx := indexer.New(database, logger)
		ingestor, err := ingest.New(
			idx,
			ingest.NewFileSource(*flagReplayFile, logger),
			logger,
			prometheus.NewRegistry(),
			ingest.WithSourceName("replay"),
		)
		if err != nil {
			logger.Error("Failed creating ingestor", "err", err)
			return
		}
		defer ingestor.Close()

		if err := ingestor.Run(ctx); err != nil {
			logger.Error("Replay failed", "err", err)
			return
		}

		digest, err := ingest.StateDigest(ctx, database)
		if err != nil {
			logger.Error("Failed computing state digest", "err", err)
			return
		}
		logger.Info("Replay finished", "status", idx.GetStatus())
		fmt.Println(digest.Hex())
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	flagReplayFile = replayCmd.Flags().String("events-file", os.Getenv("EVENTS_FILE"), "Path to a JSON lines event log")
	replayCmd.MarkFlagRequired("events-file")
}
