package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/synternet/launchpad-indexer/pkg/repository"
	"github.com/synternet/launchpad-indexer/pkg/types"
)

func (r *Repository) upsert(ctx context.Context, model, row any) error {
	result := r.dbCon.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Model(model).Create(row)
	return result.Error
}

func (r *Repository) SavePool(ctx context.Context, pool repository.Pool) error {
	row := toPoolRow(pool)
	return r.upsert(ctx, &Pool{}, &row)
}

func (r *Repository) SaveTrade(ctx context.Context, trade repository.Trade) error {
	row := toTradeRow(trade)
	result := r.dbCon.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Model(&Trade{}).Create(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("trade %s: %w", trade.ID, repository.ErrDuplicate)
	}
	return nil
}

func (r *Repository) SaveTokenHolder(ctx context.Context, holder repository.TokenHolder) error {
	row := toTokenHolderRow(holder)
	return r.upsert(ctx, &TokenHolder{}, &row)
}

func (r *Repository) SaveCreatorFees(ctx context.Context, fees repository.CreatorFees) error {
	row := toCreatorFeesRow(fees)
	return r.upsert(ctx, &CreatorFees{}, &row)
}

func (r *Repository) SaveLaunch(ctx context.Context, launch repository.Launch) error {
	row := toLaunchRow(launch)
	return r.upsert(ctx, &Launch{}, &row)
}

func (r *Repository) SaveContribution(ctx context.Context, contribution repository.Contribution) error {
	row := toContributionRow(contribution)
	return r.upsert(ctx, &Contribution{}, &row)
}

func (r *Repository) SavePlatformStats(ctx context.Context, stats repository.PlatformStats) error {
	row := toPlatformStatsRow(stats)
	return r.upsert(ctx, &PlatformStats{}, &row)
}

func (r *Repository) SaveDailyStats(ctx context.Context, stats repository.DailyStats) error {
	row := toDailyStatsRow(stats)
	return r.upsert(ctx, &DailyStats{}, &row)
}

func (r *Repository) SaveCheckpoint(ctx context.Context, checkpoint repository.Checkpoint) error {
	row := Checkpoint{
		ID:        types.CheckpointID,
		Block:     checkpoint.Block,
		LogIndex:  checkpoint.LogIndex,
		TxHash:    checkpoint.TxHash.Hex(),
		UpdatedAt: checkpoint.UpdatedAt,
	}
	return r.upsert(ctx, &Checkpoint{}, &row)
}
