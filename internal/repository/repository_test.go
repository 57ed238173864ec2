package repository_test

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/synternet/launchpad-indexer/internal/repository"
	repotypes "github.com/synternet/launchpad-indexer/pkg/repository"
	"github.com/synternet/launchpad-indexer/pkg/types"
)

var ctx = context.Background()

func TestRepository_Lookup(t *testing.T) {
	tests := []struct {
		name    string
		f       func(db *repository.Repository, t *testing.T) error
		wantErr bool
	}{
		{
			name: "pool found",
			f: func(db *repository.Repository, t *testing.T) error {
				res, err := db.Pool(ctx, types.PoolID(tokenA))
				if err != nil {
					return err
				}
				pool, found := res.Get()
				if !found {
					return fmt.Errorf("Did not find")
				}
				if pool.TokenReserve.Cmp(bigValue) != 0 {
					return fmt.Errorf("wrong token reserve: %s", pool.TokenReserve)
				}
				if pool.Token != tokenA || pool.Creator != creator {
					return fmt.Errorf("wrong addresses: %v", pool)
				}
				if !pool.Active || pool.CreatedAt != 100 {
					return fmt.Errorf("wrong pool: %v", pool)
				}
				return nil
			},
		},
		{
			name: "pool not found",
			f: func(db *repository.Repository, t *testing.T) error {
				res, err := db.Pool(ctx, "0xdead")
				if err != nil {
					return err
				}
				if res.Exists() {
					return fmt.Errorf("found missing pool")
				}
				return nil
			},
		},
		{
			name: "pool upsert replaces",
			f: func(db *repository.Repository, t *testing.T) error {
				res, err := db.Pool(ctx, types.PoolID(tokenB))
				if err != nil {
					return err
				}
				pool, _ := res.Get()
				pool.Graduated = true
				pool.Active = false
				pool.TotalVolume = big.NewInt(77)
				if err := db.SavePool(ctx, pool); err != nil {
					return err
				}
				res, err = db.Pool(ctx, types.PoolID(tokenB))
				if err != nil {
					return err
				}
				pool, _ = res.Get()
				if !pool.Graduated || pool.Active || pool.TotalVolume.Int64() != 77 {
					return fmt.Errorf("pool not updated: %v", pool)
				}
				return nil
			},
		},
		{
			name: "checkpoint missing",
			f: func(db *repository.Repository, t *testing.T) error {
				res, err := db.Checkpoint(ctx)
				if err != nil {
					return err
				}
				if res.Exists() {
					return fmt.Errorf("unexpected checkpoint")
				}
				return nil
			},
		},
		{
			name: "checkpoint saved",
			f: func(db *repository.Repository, t *testing.T) error {
				for _, cp := range []repotypes.Checkpoint{
					{Block: 1, LogIndex: 2, TxHash: txHash},
					{Block: 3, LogIndex: 0, TxHash: otherTx},
				} {
					if err := db.SaveCheckpoint(ctx, cp); err != nil {
						return err
					}
				}
				res, err := db.Checkpoint(ctx)
				if err != nil {
					return err
				}
				cp, found := res.Get()
				if !found {
					return fmt.Errorf("Did not find")
				}
				if cp.Block != 3 || cp.LogIndex != 0 || cp.TxHash != otherTx {
					return fmt.Errorf("wrong checkpoint: %v", cp)
				}
				return nil
			},
		},
		{
			name: "entity by kind",
			f: func(db *repository.Repository, t *testing.T) error {
				res, err := db.Entity(ctx, repotypes.KindPool, types.PoolID(tokenA))
				if err != nil {
					return err
				}
				v, found := res.Get()
				if !found {
					return fmt.Errorf("Did not find")
				}
				if _, ok := v.(repotypes.Pool); !ok {
					return fmt.Errorf("wrong entity type %T", v)
				}
				return nil
			},
		},
		{
			name: "entity unknown kind",
			f: func(db *repository.Repository, t *testing.T) error {
				_, err := db.Entity(ctx, "unknown", "x")
				return err
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := makeDB()
			defer db.Close()
			addPools(db)
			if err := tt.f(db, t); (err != nil) != tt.wantErr {
				t.Errorf("Repository error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRepository_Trades(t *testing.T) {
	tests := []struct {
		name    string
		f       func(db *repository.Repository, t *testing.T) error
		wantErr bool
	}{
		{
			name: "newest first",
			f: func(db *repository.Repository, t *testing.T) error {
				trades, err := db.Trades(ctx, types.PoolID(tokenA), 0)
				if err != nil {
					return err
				}
				if len(trades) != 3 {
					return fmt.Errorf("wrong number of trades: %d", len(trades))
				}
				for i, want := range []uint64{2, 1, 0} {
					if trades[i].LogIndex != want {
						return fmt.Errorf("trade %d: log index %d, want %d", i, trades[i].LogIndex, want)
					}
				}
				if trades[0].IsBuy || !trades[1].IsBuy {
					return fmt.Errorf("wrong trade direction: %v", trades)
				}
				return nil
			},
		},
		{
			name: "limit",
			f: func(db *repository.Repository, t *testing.T) error {
				trades, err := db.Trades(ctx, types.PoolID(tokenA), 2)
				if err != nil {
					return err
				}
				if len(trades) != 2 {
					return fmt.Errorf("wrong number of trades: %d", len(trades))
				}
				return nil
			},
		},
		{
			name: "other pool",
			f: func(db *repository.Repository, t *testing.T) error {
				trades, err := db.Trades(ctx, types.PoolID(tokenB), 0)
				if err != nil {
					return err
				}
				if len(trades) != 0 {
					return fmt.Errorf("unexpected trades: %v", trades)
				}
				return nil
			},
		},
		{
			name: "duplicate trade",
			f: func(db *repository.Repository, t *testing.T) error {
				res, err := db.Trade(ctx, types.TradeID(txHash, 0))
				if err != nil {
					return err
				}
				trade, found := res.Get()
				if !found {
					return fmt.Errorf("Did not find")
				}
				trade.BnbAmount = big.NewInt(1)
				err = db.SaveTrade(ctx, trade)
				if !errors.Is(err, repotypes.ErrDuplicate) {
					return fmt.Errorf("expected duplicate, got %v", err)
				}
				res, _ = db.Trade(ctx, trade.ID)
				stored, _ := res.Get()
				if stored.BnbAmount.Int64() != 100 {
					return fmt.Errorf("trade was overwritten: %v", stored)
				}
				return nil
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := makeDB()
			defer db.Close()
			addPools(db)
			addTrades(db)
			if err := tt.f(db, t); (err != nil) != tt.wantErr {
				t.Errorf("Repository error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRepository_DailyStatsRange(t *testing.T) {
	tests := []struct {
		name     string
		from, to int64
		want     []int64
	}{
		{"all", 0, 10, []int64{0, 1, 2, 5}},
		{"inclusive", 1, 2, []int64{1, 2}},
		{"gap", 3, 4, nil},
		{"single", 5, 5, []int64{5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := makeDB()
			defer db.Close()
			addDailyStats(db)
			stats, err := db.DailyStatsRange(ctx, tt.from, tt.to)
			if err != nil {
				t.Fatal(err)
			}
			if len(stats) != len(tt.want) {
				t.Fatalf("DailyStatsRange() = %v, want days %v", stats, tt.want)
			}
			for i, d := range tt.want {
				if stats[i].Day != d || stats[i].ID != fmt.Sprint(d) {
					t.Errorf("DailyStatsRange()[%d] = %v, want day %d", i, stats[i], d)
				}
			}
		})
	}
}

func TestRepository_Transaction(t *testing.T) {
	tests := []struct {
		name    string
		f       func(tx repotypes.Repository) error
		wantErr bool
		stored  bool
	}{
		{
			name: "commit",
			f: func(tx repotypes.Repository) error {
				return tx.SaveCreatorFees(ctx, repotypes.NewCreatorFees(tokenA, creator))
			},
			stored: true,
		},
		{
			name: "rollback",
			f: func(tx repotypes.Repository) error {
				if err := tx.SaveCreatorFees(ctx, repotypes.NewCreatorFees(tokenA, creator)); err != nil {
					return err
				}
				return errors.New("abort")
			},
			wantErr: true,
			stored:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := makeDB()
			defer db.Close()
			err := db.Transaction(ctx, tt.f)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Transaction() error = %v, wantErr %v", err, tt.wantErr)
			}
			res, err := db.CreatorFees(ctx, types.CreatorFeesID(tokenA, creator))
			if err != nil {
				t.Fatal(err)
			}
			if res.Exists() != tt.stored {
				t.Errorf("CreatorFees stored = %v, want %v", res.Exists(), tt.stored)
			}
		})
	}
}

func TestRepository_Snapshot(t *testing.T) {
	db := makeDB()
	defer db.Close()
	addPools(db)
	addTrades(db)
	addDailyStats(db)

	launch := repotypes.NewLaunch(tokenA, creator, repotypes.LaunchProjectRaise)
	launch.RaiseTarget = bigValue
	if err := db.SaveLaunch(ctx, launch); err != nil {
		t.Fatal(err)
	}
	contribution := repotypes.NewContribution(tokenA, traderA)
	contribution.Amount = big.NewInt(5)
	if err := db.SaveContribution(ctx, contribution); err != nil {
		t.Fatal(err)
	}
	if err := db.SavePlatformStats(ctx, repotypes.NewPlatformStats()); err != nil {
		t.Fatal(err)
	}

	snap, err := db.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Pools) != 2 || len(snap.Trades) != 3 || len(snap.DailyStats) != 4 {
		t.Errorf("wrong snapshot sizes: %d pools, %d trades, %d days", len(snap.Pools), len(snap.Trades), len(snap.DailyStats))
	}
	if len(snap.Launches) != 1 || snap.Launches[0].RaiseTarget.Cmp(bigValue) != 0 {
		t.Errorf("wrong launches: %v", snap.Launches)
	}
	if snap.Launches[0].LaunchType != repotypes.LaunchProjectRaise {
		t.Errorf("wrong launch type: %s", snap.Launches[0].LaunchType)
	}
	if len(snap.Contributions) != 1 || snap.Contributions[0].Status != repotypes.ContributionPending {
		t.Errorf("wrong contributions: %v", snap.Contributions)
	}
	if snap.Pools[0].ID > snap.Pools[1].ID {
		t.Errorf("pools not ordered by ID: %s, %s", snap.Pools[0].ID, snap.Pools[1].ID)
	}

	contributions, err := db.Contributions(ctx, types.LaunchID(tokenA))
	if err != nil {
		t.Fatal(err)
	}
	if len(contributions) != 1 || contributions[0].Amount.Int64() != 5 {
		t.Errorf("wrong contributions: %v", contributions)
	}
}
