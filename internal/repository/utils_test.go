package repository_test

import (
	"io"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/synternet/launchpad-indexer/internal/repository"
	"github.com/synternet/launchpad-indexer/internal/repository/sqlite"
	repotypes "github.com/synternet/launchpad-indexer/pkg/repository"
	"github.com/synternet/launchpad-indexer/pkg/types"
)

var (
	tokenA   = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	tokenB   = common.HexToAddress("0x00000000000000000000000000000000000000bb")
	creator  = common.HexToAddress("0x0000000000000000000000000000000000000c01")
	traderA  = common.HexToAddress("0x000000000000000000000000000000000000a001")
	traderB  = common.HexToAddress("0x000000000000000000000000000000000000a002")
	txHash   = common.HexToHash("0x01")
	otherTx  = common.HexToHash("0x02")
	bigValue = must(new(big.Int).SetString("123456789012345678901234567890", 10))
)

func makeDB() *repository.Repository {
	db, err := sqlite.New(":memory:")
	if err != nil {
		panic(err)
	}
	repo, err := repository.New(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		panic(err)
	}

	return repo
}

func addPools(repo *repository.Repository) {
	pool := repotypes.NewPool(tokenA, creator)
	pool.BnbReserve = big.NewInt(1000)
	pool.TokenReserve = bigValue
	pool.Active = true
	pool.CreatedAt = 100
	if err := repo.SavePool(ctx, pool); err != nil {
		panic(err)
	}
	pool = repotypes.NewPool(tokenB, creator)
	pool.Active = true
	pool.CreatedAt = 200
	if err := repo.SavePool(ctx, pool); err != nil {
		panic(err)
	}
}

func addTrades(repo *repository.Repository) {
	for i, trader := range []common.Address{traderA, traderB, traderA} {
		trade := repotypes.Trade{
			ID:          types.TradeID(txHash, uint64(i)),
			Pool:        types.PoolID(tokenA),
			Trader:      trader,
			IsBuy:       i != 2,
			BnbAmount:   big.NewInt(int64(100 * (i + 1))),
			TokenAmount: big.NewInt(int64(1000 * (i + 1))),
			Price:       big.NewInt(10),
			FeeRate:     big.NewInt(100),
			TotalFee:    big.NewInt(int64(i + 1)),
			Timestamp:   uint64(1000 + i),
			Block:       10,
			TxHash:      txHash,
			LogIndex:    uint64(i),
		}
		if err := repo.SaveTrade(ctx, trade); err != nil {
			panic(err)
		}
	}
}

func addDailyStats(repo *repository.Repository) {
	for _, ts := range []uint64{0, types.SecondsPerDay, 2 * types.SecondsPerDay, 5 * types.SecondsPerDay} {
		stats := repotypes.NewDailyStats(ts)
		stats.TradeCount = uint64(stats.Day) + 1
		if err := repo.SaveDailyStats(ctx, stats); err != nil {
			panic(err)
		}
	}
}

func must[T any](obj T, ok bool) T {
	if !ok {
		panic("must")
	}
	return obj
}
