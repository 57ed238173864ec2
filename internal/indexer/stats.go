package indexer

import (
	"context"
	"math/big"

	"github.com/synternet/launchpad-indexer/pkg/repository"
	"github.com/synternet/launchpad-indexer/pkg/types"
)

// platformStats loads or creates the singleton and stamps it with timestamp.
// Callers add their own deltas and save the result.
func platformStats(ctx context.Context, tx repository.Repository, timestamp uint64) (repository.PlatformStats, error) {
	stats, _, err := repository.GetOrCreate[repository.PlatformStats](ctx, tx.PlatformStats, types.PlatformStatsID, repository.NewPlatformStats)
	if err != nil {
		return stats, err
	}
	stats.UpdatedAt = timestamp
	return stats, nil
}

type dailyDelta struct {
	volume   *big.Int
	fees     *big.Int
	trades   uint64
	launches uint64
}

// updateDailyStats accumulates delta into the bucket floor(timestamp / 86400).
func updateDailyStats(ctx context.Context, tx repository.Repository, timestamp uint64, delta dailyDelta) error {
	create := func() repository.DailyStats {
		return repository.NewDailyStats(timestamp)
	}
	stats, _, err := repository.GetOrCreate[repository.DailyStats](ctx, tx.DailyStats, types.DayID(timestamp), create)
	if err != nil {
		return err
	}
	stats.Volume = types.Add(stats.Volume, delta.volume)
	stats.Fees = types.Add(stats.Fees, delta.fees)
	stats.TradeCount += delta.trades
	stats.Launches += delta.launches
	return tx.SaveDailyStats(ctx, stats)
}
