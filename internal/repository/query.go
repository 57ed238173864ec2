package repository

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"

	"github.com/synternet/launchpad-indexer/pkg/repository"
	"github.com/synternet/launchpad-indexer/pkg/types"
)

type row[E any] interface {
	entity() E
}

func find[R row[E], E any](ctx context.Context, db *gorm.DB, id string) (repository.Lookup[E], error) {
	var r R
	result := db.WithContext(ctx).Model(&r).Limit(1).Find(&r, "id = ?", id)
	if result.Error != nil {
		return repository.NotFound[E](), result.Error
	}
	if result.RowsAffected == 0 {
		return repository.NotFound[E](), nil
	}
	return repository.Found(r.entity()), nil
}

func entities[R row[E], E any](rows []R) []E {
	ret := make([]E, len(rows))
	for i, r := range rows {
		ret[i] = r.entity()
	}
	return ret
}

func (r *Repository) Pool(ctx context.Context, id string) (repository.Lookup[repository.Pool], error) {
	return find[Pool, repository.Pool](ctx, r.dbCon, id)
}

func (r *Repository) Trade(ctx context.Context, id string) (repository.Lookup[repository.Trade], error) {
	return find[Trade, repository.Trade](ctx, r.dbCon, id)
}

func (r *Repository) TokenHolder(ctx context.Context, id string) (repository.Lookup[repository.TokenHolder], error) {
	return find[TokenHolder, repository.TokenHolder](ctx, r.dbCon, id)
}

func (r *Repository) CreatorFees(ctx context.Context, id string) (repository.Lookup[repository.CreatorFees], error) {
	return find[CreatorFees, repository.CreatorFees](ctx, r.dbCon, id)
}

func (r *Repository) Launch(ctx context.Context, id string) (repository.Lookup[repository.Launch], error) {
	return find[Launch, repository.Launch](ctx, r.dbCon, id)
}

func (r *Repository) Contribution(ctx context.Context, id string) (repository.Lookup[repository.Contribution], error) {
	return find[Contribution, repository.Contribution](ctx, r.dbCon, id)
}

func (r *Repository) PlatformStats(ctx context.Context, id string) (repository.Lookup[repository.PlatformStats], error) {
	return find[PlatformStats, repository.PlatformStats](ctx, r.dbCon, id)
}

func (r *Repository) DailyStats(ctx context.Context, id string) (repository.Lookup[repository.DailyStats], error) {
	return find[DailyStats, repository.DailyStats](ctx, r.dbCon, id)
}

func (r *Repository) Checkpoint(ctx context.Context) (repository.Lookup[repository.Checkpoint], error) {
	var cp Checkpoint
	result := r.dbCon.WithContext(ctx).Model(&Checkpoint{}).Limit(1).Find(&cp, "id = ?", types.CheckpointID)
	if result.Error != nil {
		return repository.NotFound[repository.Checkpoint](), result.Error
	}
	if result.RowsAffected == 0 {
		return repository.NotFound[repository.Checkpoint](), nil
	}
	return repository.Found(repository.Checkpoint{
		Block:     cp.Block,
		LogIndex:  cp.LogIndex,
		TxHash:    common.HexToHash(cp.TxHash),
		UpdatedAt: cp.UpdatedAt,
	}), nil
}

func erase[T any](l repository.Lookup[T]) repository.Lookup[any] {
	if v, ok := l.Get(); ok {
		return repository.Found[any](v)
	}
	return repository.NotFound[any]()
}

func (r *Repository) Entity(ctx context.Context, kind repository.EntityKind, id string) (repository.Lookup[any], error) {
	switch kind {
	case repository.KindPool:
		l, err := r.Pool(ctx, id)
		return erase(l), err
	case repository.KindTrade:
		l, err := r.Trade(ctx, id)
		return erase(l), err
	case repository.KindTokenHolder:
		l, err := r.TokenHolder(ctx, id)
		return erase(l), err
	case repository.KindCreatorFees:
		l, err := r.CreatorFees(ctx, id)
		return erase(l), err
	case repository.KindLaunch:
		l, err := r.Launch(ctx, id)
		return erase(l), err
	case repository.KindContribution:
		l, err := r.Contribution(ctx, id)
		return erase(l), err
	case repository.KindPlatformStats:
		l, err := r.PlatformStats(ctx, id)
		return erase(l), err
	case repository.KindDailyStats:
		l, err := r.DailyStats(ctx, id)
		return erase(l), err
	}
	return repository.NotFound[any](), fmt.Errorf("unknown entity kind %q", kind)
}

// Trades will return latest trades of a pool, newest first.
func (r *Repository) Trades(ctx context.Context, pool string, limit int) ([]repository.Trade, error) {
	var trades []Trade
	query := r.dbCon.WithContext(ctx).Model(&Trade{}).Where("pool = ?", pool).Order("block DESC, log_index DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	result := query.Find(&trades)
	if result.Error != nil {
		r.logger.Error("Error fetching Trades from DB", "pool", pool, "err", result.Error)
		return nil, result.Error
	}
	return entities[Trade, repository.Trade](trades), nil
}

func (r *Repository) TokenHolders(ctx context.Context, token string, limit int) ([]repository.TokenHolder, error) {
	var holders []TokenHolder
	query := r.dbCon.WithContext(ctx).Model(&TokenHolder{}).Where("token = ?", token).Order("id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	result := query.Find(&holders)
	if result.Error != nil {
		r.logger.Error("Error fetching TokenHolders from DB", "token", token, "err", result.Error)
		return nil, result.Error
	}
	return entities[TokenHolder, repository.TokenHolder](holders), nil
}

func (r *Repository) Contributions(ctx context.Context, launch string) ([]repository.Contribution, error) {
	var contributions []Contribution
	result := r.dbCon.WithContext(ctx).Model(&Contribution{}).Where("launch = ?", launch).Order("id").Find(&contributions)
	if result.Error != nil {
		r.logger.Error("Error fetching Contributions from DB", "launch", launch, "err", result.Error)
		return nil, result.Error
	}
	return entities[Contribution, repository.Contribution](contributions), nil
}

// DailyStatsRange will return day buckets from min to max day inclusive.
func (r *Repository) DailyStatsRange(ctx context.Context, fromDay, toDay int64) ([]repository.DailyStats, error) {
	var stats []DailyStats
	result := r.dbCon.WithContext(ctx).Model(&DailyStats{}).Order("day").Find(&stats, "day >= ? AND day <= ?", fromDay, toDay)
	if result.Error != nil {
		r.logger.Error("Error fetching DailyStats from DB", "from", fromDay, "to", toDay, "err", result.Error)
		return nil, result.Error
	}
	return entities[DailyStats, repository.DailyStats](stats), nil
}

func all[R row[E], E any](ctx context.Context, db *gorm.DB) ([]E, error) {
	var rows []R
	result := db.WithContext(ctx).Order("id").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return entities[R, E](rows), nil
}

func (r *Repository) Snapshot(ctx context.Context) (snap repository.Snapshot, err error) {
	if snap.Pools, err = all[Pool, repository.Pool](ctx, r.dbCon); err != nil {
		return snap, fmt.Errorf("pools snapshot: %w", err)
	}
	if snap.Trades, err = all[Trade, repository.Trade](ctx, r.dbCon); err != nil {
		return snap, fmt.Errorf("trades snapshot: %w", err)
	}
	if snap.TokenHolders, err = all[TokenHolder, repository.TokenHolder](ctx, r.dbCon); err != nil {
		return snap, fmt.Errorf("holders snapshot: %w", err)
	}
	if snap.CreatorFees, err = all[CreatorFees, repository.CreatorFees](ctx, r.dbCon); err != nil {
		return snap, fmt.Errorf("creator fees snapshot: %w", err)
	}
	if snap.Launches, err = all[Launch, repository.Launch](ctx, r.dbCon); err != nil {
		return snap, fmt.Errorf("launches snapshot: %w", err)
	}
	if snap.Contributions, err = all[Contribution, repository.Contribution](ctx, r.dbCon); err != nil {
		return snap, fmt.Errorf("contributions snapshot: %w", err)
	}
	if snap.PlatformStats, err = all[PlatformStats, repository.PlatformStats](ctx, r.dbCon); err != nil {
		return snap, fmt.Errorf("platform stats snapshot: %w", err)
	}
	if snap.DailyStats, err = all[DailyStats, repository.DailyStats](ctx, r.dbCon); err != nil {
		return snap, fmt.Errorf("daily stats snapshot: %w", err)
	}
	return snap, nil
}
