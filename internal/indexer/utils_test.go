package indexer

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	repoimpl "github.com/synternet/launchpad-indexer/internal/repository"
	"github.com/synternet/launchpad-indexer/internal/repository/sqlite"
	"github.com/synternet/launchpad-indexer/pkg/indexer"
	"github.com/synternet/launchpad-indexer/pkg/repository"
	"github.com/synternet/launchpad-indexer/pkg/types"
)

var (
	ctx = context.Background()

	tokenT      = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	tokenL      = common.HexToAddress("0x00000000000000000000000000000000000000b1")
	creatorC    = common.HexToAddress("0x00000000000000000000000000000000000000c1")
	buyerB      = common.HexToAddress("0x00000000000000000000000000000000000000d1")
	contributor = common.HexToAddress("0x00000000000000000000000000000000000000e1")
	founderF    = common.HexToAddress("0x00000000000000000000000000000000000000f1")
)

func makeRepo(t *testing.T) *repoimpl.Repository {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	repo, err := repoimpl.New(db, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// chain emits events at strictly increasing positions.
type chain struct {
	t        *testing.T
	d        *Indexer
	block    uint64
	logIndex uint64
	time     uint64
}

func newChain(t *testing.T, d *Indexer) *chain {
	return &chain{t: t, d: d, block: 100, time: 1_700_000_000}
}

func (c *chain) next(kind types.EventKind, params map[string]any) *types.Event {
	c.t.Helper()
	c.logIndex++
	raw, err := json.Marshal(params)
	require.NoError(c.t, err)
	return &types.Event{
		Kind:      kind,
		TxHash:    common.BigToHash(new(big.Int).SetUint64(c.block*1000 + c.logIndex)),
		LogIndex:  c.logIndex,
		Block:     c.block,
		Timestamp: c.time,
		Params:    raw,
	}
}

// nextBlock moves to a new block dt seconds later.
func (c *chain) nextBlock(dt uint64) {
	c.block++
	c.logIndex = 0
	c.time += dt
}

func (c *chain) apply(kind types.EventKind, params map[string]any) (indexer.Outcome, error) {
	c.t.Helper()
	return c.d.Apply(ctx, c.next(kind, params))
}

func (c *chain) mustApply(kind types.EventKind, params map[string]any) {
	c.t.Helper()
	outcome, err := c.apply(kind, params)
	require.NoError(c.t, err)
	require.Equal(c.t, indexer.Applied, outcome)
}

func poolCreated(token, creator common.Address) map[string]any {
	return map[string]any{
		"token":                  token,
		"creator":                creator,
		"initialLiquidity":       "100",
		"tradableTokens":         "1000",
		"reservedTokens":         "0",
		"virtualBnbReserve":      "50",
		"launchBlock":            "10",
		"graduationBnbThreshold": "1000",
	}
}

func bought(token, buyer common.Address, bnb, tokens, price, fee string) map[string]any {
	return map[string]any{
		"token":          token,
		"buyer":          buyer,
		"bnbAmount":      bnb,
		"tokensReceived": tokens,
		"currentPrice":   price,
		"feeRate":        fee,
	}
}

func sold(token, seller common.Address, bnb, tokens, price, fee string) map[string]any {
	return map[string]any{
		"token":        token,
		"seller":       seller,
		"bnbReceived":  bnb,
		"tokensAmount": tokens,
		"currentPrice": price,
		"feeRate":      fee,
	}
}

func launchCreated(token, founder common.Address) map[string]any {
	return map[string]any{
		"token":         token,
		"founder":       founder,
		"totalSupply":   "1000000",
		"raiseTarget":   "100",
		"raiseMax":      "200",
		"deadline":      "1800000000",
		"founderTokens": "100000",
	}
}

func contributed(token, who common.Address, amount string) map[string]any {
	return map[string]any{"token": token, "contributor": who, "amount": amount}
}

func mustGet[T any](t *testing.T, res repository.Lookup[T], err error) T {
	t.Helper()
	require.NoError(t, err)
	v, ok := res.Get()
	require.True(t, ok, "entity not found")
	return v
}

func getPool(t *testing.T, repo repository.Repository, token common.Address) repository.Pool {
	res, err := repo.Pool(ctx, types.PoolID(token))
	return mustGet(t, res, err)
}

func getHolder(t *testing.T, repo repository.Repository, token, who common.Address) repository.TokenHolder {
	res, err := repo.TokenHolder(ctx, types.HolderID(token, who))
	return mustGet(t, res, err)
}

func getLaunch(t *testing.T, repo repository.Repository, token common.Address) repository.Launch {
	res, err := repo.Launch(ctx, types.LaunchID(token))
	return mustGet(t, res, err)
}

func getStats(t *testing.T, repo repository.Repository) repository.PlatformStats {
	res, err := repo.PlatformStats(ctx, types.PlatformStatsID)
	return mustGet(t, res, err)
}
