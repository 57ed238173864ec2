package indexer

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/synternet/launchpad-indexer/pkg/repository"
	"github.com/synternet/launchpad-indexer/pkg/types"
)

func handlePoolCreated(ctx context.Context, tx repository.Repository, ev *types.Event, p *types.PoolCreated) error {
	id := types.PoolID(p.Token)
	res, err := tx.Pool(ctx, id)
	if err != nil {
		return err
	}
	if res.Exists() {
		return fmt.Errorf("%w: pool %s already created", ErrDuplicateEvent, id)
	}

	pool := repository.NewPool(p.Token, p.Creator)
	pool.BnbReserve = types.Int(p.InitialLiquidity)
	pool.TokenReserve = types.Int(p.TradableTokens)
	pool.ReservedTokens = types.Int(p.ReservedTokens)
	pool.VirtualBnbReserve = types.Int(p.VirtualBnbReserve)
	pool.LaunchBlock = types.Int(p.LaunchBlock)
	pool.GraduationThreshold = types.Int(p.GraduationBnbThreshold)
	pool.Active = true
	pool.CreatedAt = ev.Timestamp
	pool.UpdatedBlock = ev.Block
	if err := tx.SavePool(ctx, pool); err != nil {
		return err
	}

	create := func() repository.CreatorFees {
		return repository.NewCreatorFees(p.Token, p.Creator)
	}
	fees, created, err := repository.GetOrCreate[repository.CreatorFees](ctx, tx.CreatorFees, types.CreatorFeesID(p.Token, p.Creator), create)
	if err != nil || !created {
		return err
	}
	return tx.SaveCreatorFees(ctx, fees)
}

type trade struct {
	token   common.Address
	trader  common.Address
	isBuy   bool
	bnb     *big.Int
	tokens  *big.Int
	price   *big.Int
	feeRate *big.Int
}

func handleTokensBought(ctx context.Context, tx repository.Repository, ev *types.Event, p *types.TokensBought) error {
	return applyTrade(ctx, tx, ev, trade{
		token:   p.Token,
		trader:  p.Buyer,
		isBuy:   true,
		bnb:     types.Int(p.BnbAmount),
		tokens:  types.Int(p.TokensReceived),
		price:   optionalPrice(p.CurrentPrice),
		feeRate: types.Int(p.FeeRate),
	})
}

// optionalPrice is nil when the event carries no price so the pool keeps its last one.
func optionalPrice(a *types.Amount) *big.Int {
	if a == nil {
		return nil
	}
	return types.Int(a)
}

func handleTokensSold(ctx context.Context, tx repository.Repository, ev *types.Event, p *types.TokensSold) error {
	return applyTrade(ctx, tx, ev, trade{
		token:   p.Token,
		trader:  p.Seller,
		isBuy:   false,
		bnb:     types.Int(p.BnbReceived),
		tokens:  types.Int(p.TokensAmount),
		price:   optionalPrice(p.CurrentPrice),
		feeRate: types.Int(p.FeeRate),
	})
}

// applyTrade records the trade and updates pool, creator fees and aggregates
// before the holder ledger. A sell above the holder balance therefore keeps
// every other write and reports ErrInvariantViolation.
func applyTrade(ctx context.Context, tx repository.Repository, ev *types.Event, t trade) error {
	id := types.PoolID(t.token)
	res, err := tx.Pool(ctx, id)
	if err != nil {
		return err
	}
	pool, ok := res.Get()
	if !ok {
		return fmt.Errorf("%w: pool %s for %s at %s", ErrEntityMissing, id, ev.Kind, ev.Position())
	}
	if pool.Graduated {
		return fmt.Errorf("%w: %s on graduated pool %s", ErrTerminalState, ev.Kind, id)
	}

	if t.price == nil {
		t.price = pool.CurrentPrice
	}
	fee := types.Fee(t.bnb, t.feeRate)
	record := repository.Trade{
		ID:          types.TradeID(ev.TxHash, ev.LogIndex),
		Pool:        id,
		Trader:      t.trader,
		IsBuy:       t.isBuy,
		BnbAmount:   t.bnb,
		TokenAmount: t.tokens,
		Price:       t.price,
		FeeRate:     t.feeRate,
		TotalFee:    fee,
		Timestamp:   ev.Timestamp,
		Block:       ev.Block,
		TxHash:      ev.TxHash,
		LogIndex:    ev.LogIndex,
	}
	if err := tx.SaveTrade(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("%w: trade %s", ErrDuplicateEvent, record.ID)
		}
		return err
	}

	pool.TotalVolume = types.Add(pool.TotalVolume, t.bnb)
	pool.TotalFees = types.Add(pool.TotalFees, fee)
	if t.isBuy {
		pool.TotalBuys++
	} else {
		pool.TotalSells++
	}
	pool.CurrentPrice = types.Copy(t.price)
	pool.UpdatedBlock = ev.Block
	if err := tx.SavePool(ctx, pool); err != nil {
		return err
	}

	createFees := func() repository.CreatorFees {
		return repository.NewCreatorFees(t.token, pool.Creator)
	}
	fees, _, err := repository.GetOrCreate[repository.CreatorFees](ctx, tx.CreatorFees, types.CreatorFeesID(t.token, pool.Creator), createFees)
	if err != nil {
		return err
	}
	fees.AccumulatedFees = types.Add(fees.AccumulatedFees, fee)
	if err := tx.SaveCreatorFees(ctx, fees); err != nil {
		return err
	}

	stats, err := platformStats(ctx, tx, ev.Timestamp)
	if err != nil {
		return err
	}
	stats.TotalVolume = types.Add(stats.TotalVolume, t.bnb)
	stats.TotalFees = types.Add(stats.TotalFees, fee)
	stats.TotalTrades++
	if err := tx.SavePlatformStats(ctx, stats); err != nil {
		return err
	}
	if err := updateDailyStats(ctx, tx, ev.Timestamp, dailyDelta{volume: t.bnb, fees: fee, trades: 1}); err != nil {
		return err
	}

	return updateHolder(ctx, tx, ev, t)
}

func updateHolder(ctx context.Context, tx repository.Repository, ev *types.Event, t trade) error {
	create := func() repository.TokenHolder {
		return repository.NewTokenHolder(t.token, t.trader)
	}
	holder, _, err := repository.GetOrCreate[repository.TokenHolder](ctx, tx.TokenHolder, types.HolderID(t.token, t.trader), create)
	if err != nil {
		return err
	}

	if t.isBuy {
		if holder.BuyCount == 0 {
			holder.FirstBuyTimestamp = ev.Timestamp
		}
		holder.Balance = types.Add(holder.Balance, t.tokens)
		holder.TotalBought = types.Add(holder.TotalBought, t.tokens)
		holder.BuyCount++
	} else {
		balance, err := types.Sub(holder.Balance, t.tokens)
		if err != nil {
			return fmt.Errorf("%w: holder %s sells %s with balance %s: %v", ErrInvariantViolation, holder.ID, t.tokens, holder.Balance, err)
		}
		holder.Balance = balance
		holder.TotalSold = types.Add(holder.TotalSold, t.tokens)
		holder.SellCount++
	}
	holder.LastActivityTimestamp = ev.Timestamp
	return tx.SaveTokenHolder(ctx, holder)
}

func handlePoolGraduated(ctx context.Context, tx repository.Repository, ev *types.Event, p *types.PoolGraduated) error {
	id := types.PoolID(p.Token)
	res, err := tx.Pool(ctx, id)
	if err != nil {
		return err
	}
	pool, ok := res.Get()
	if !ok {
		return fmt.Errorf("%w: pool %s for %s at %s", ErrEntityMissing, id, ev.Kind, ev.Position())
	}
	if pool.Graduated {
		return fmt.Errorf("%w: pool %s already graduated at %d", ErrTerminalState, id, pool.GraduatedAt)
	}

	pool.Graduated = true
	pool.Active = false
	pool.GraduationMarketCap = types.Int(p.FinalMarketCap)
	pool.MarketCap = types.Int(p.FinalMarketCap)
	pool.GraduationBnb = types.Int(p.BnbForPancakeSwap)
	pool.GraduatedAt = ev.Timestamp
	pool.UpdatedBlock = ev.Block
	return tx.SavePool(ctx, pool)
}

func handleCreatorFeesClaimed(ctx context.Context, tx repository.Repository, ev *types.Event, p *types.CreatorFeesClaimed) error {
	id := types.CreatorFeesID(p.Token, p.Creator)
	res, err := tx.CreatorFees(ctx, id)
	if err != nil {
		return err
	}
	fees, ok := res.Get()
	if !ok {
		return fmt.Errorf("%w: creator fees %s at %s", ErrEntityMissing, id, ev.Position())
	}

	fees.TotalClaimed = types.Add(fees.TotalClaimed, types.Int(p.Amount))
	fees.ClaimCount++
	fees.LastClaimTime = ev.Timestamp
	fees.AccumulatedFees = types.Zero()
	return tx.SaveCreatorFees(ctx, fees)
}
