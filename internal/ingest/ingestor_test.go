package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/synternet/data-layer-sdk/pkg/options"
	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	indexerimpl "github.com/synternet/launchpad-indexer/internal/indexer"
	repoimpl "github.com/synternet/launchpad-indexer/internal/repository"
	"github.com/synternet/launchpad-indexer/internal/repository/sqlite"
	"github.com/synternet/launchpad-indexer/pkg/indexer"
	"github.com/synternet/launchpad-indexer/pkg/types"
)

var (
	ctx     = context.Background()
	token   = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	creator = common.HexToAddress("0x00000000000000000000000000000000000000c1")
	buyer   = common.HexToAddress("0x00000000000000000000000000000000000000d1")
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func makeRepo(t *testing.T) *repoimpl.Repository {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	repo, err := repoimpl.New(db, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func event(kind types.EventKind, block, logIndex uint64, params map[string]any) *types.Event {
	raw, err := json.Marshal(params)
	if err != nil {
		panic(err)
	}
	return &types.Event{
		Kind:      kind,
		TxHash:    common.BigToHash(new(big.Int).SetUint64(block*1000 + logIndex)),
		LogIndex:  logIndex,
		Block:     block,
		Timestamp: 1_700_000_000 + block*3,
		Params:    raw,
	}
}

func lines(events ...*types.Event) string {
	var sb strings.Builder
	for _, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			panic(err)
		}
		sb.Write(data)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func poolCreated(block, logIndex uint64) *types.Event {
	return event(types.EventPoolCreated, block, logIndex, map[string]any{
		"token":            token,
		"creator":          creator,
		"initialLiquidity": "100",
		"tradableTokens":   "1000",
	})
}

func buy(block, logIndex uint64, bnb string) *types.Event {
	return event(types.EventTokensBought, block, logIndex, map[string]any{
		"token":          token,
		"buyer":          buyer,
		"bnbAmount":      bnb,
		"tokensReceived": "10",
		"currentPrice":   "1",
		"feeRate":        "100",
	})
}

func newIngestor(t *testing.T, idx indexer.Indexer, src Source, opts ...options.Option) *Ingestor {
	t.Helper()
	all := []options.Option{WithRetryInterval(time.Millisecond), WithRetryMaxInterval(time.Millisecond * 5)}
	all = append(all, opts...)
	ing, err := New(idx, src, discardLogger(), prometheus.NewRegistry(), all...)
	require.NoError(t, err)
	return ing
}

func TestIngestor_FileResume(t *testing.T) {
	repo := makeRepo(t)
	idx := indexerimpl.New(repo, discardLogger())

	path := writeFile(t, "# fixture\n"+lines(poolCreated(1, 0), buy(2, 0, "10"), buy(2, 1, "20"))+"\n")
	require.NoError(t, newIngestor(t, idx, NewFileSource(path, discardLogger())).Run(ctx))

	res, err := repo.Pool(ctx, types.PoolID(token))
	require.NoError(t, err)
	pool, ok := res.Get()
	require.True(t, ok)
	assert.Equal(t, int64(30), pool.TotalVolume.Int64())

	// A second run over the same file applies nothing.
	require.NoError(t, newIngestor(t, idx, NewFileSource(path, discardLogger())).Run(ctx))
	res, _ = repo.Pool(ctx, types.PoolID(token))
	pool, _ = res.Get()
	assert.Equal(t, int64(30), pool.TotalVolume.Int64())

	// Appended events are picked up from the checkpoint.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(lines(buy(3, 0, "5")))
	require.NoError(t, err)
	require.NoError(t, f.Close())
	require.NoError(t, newIngestor(t, idx, NewFileSource(path, discardLogger())).Run(ctx))

	res, _ = repo.Pool(ctx, types.PoolID(token))
	pool, _ = res.Get()
	assert.Equal(t, int64(35), pool.TotalVolume.Int64())
	assert.Equal(t, uint64(3), pool.TotalBuys)

	cp, err := idx.Checkpoint(ctx)
	require.NoError(t, err)
	pos, ok := cp.Get()
	require.True(t, ok)
	assert.Equal(t, types.Position{Block: 3, LogIndex: 0}, pos)
}

func TestIngestor_DecodeErrorStops(t *testing.T) {
	repo := makeRepo(t)
	idx := indexerimpl.New(repo, discardLogger())

	bad := event(types.EventTokensBought, 2, 1, map[string]any{"token": token})
	path := writeFile(t, lines(poolCreated(1, 0), buy(2, 0, "10"), bad, buy(3, 0, "10")))

	err := newIngestor(t, idx, NewFileSource(path, discardLogger())).Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrDecode)

	cp, err := idx.Checkpoint(ctx)
	require.NoError(t, err)
	pos, _ := cp.Get()
	assert.Equal(t, types.Position{Block: 2, LogIndex: 0}, pos)

	// A malformed line stops the source.
	path = writeFile(t, lines(buy(4, 0, "1"))+"{not json\n")
	err = newIngestor(t, idx, NewFileSource(path, discardLogger())).Run(ctx)
	assert.ErrorIs(t, err, types.ErrDecode)
}

func TestIngestor_Retry(t *testing.T) {
	tests := []struct {
		name        string
		failures    int
		retries     uint64
		wantErr     bool
		wantApplied int
	}{
		{"recovers", 3, 5, false, 2},
		{"exhausted", 10, 2, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := &flakyIndexer{failures: tt.failures, err: errors.New("database is locked")}
			src := &sliceSource{events: []*types.Event{buy(1, 0, "1"), buy(1, 1, "1")}}
			ing := newIngestor(t, idx, src, WithRetries(tt.retries))

			err := ing.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			assert.Len(t, idx.applied, tt.wantApplied)
			assert.Len(t, src.committed, tt.wantApplied)

			status := ing.GetStatus()["ingestor"].(map[string]any)
			assert.NotZero(t, status["retries"])
		})
	}
}

func TestIngestor_Ordering(t *testing.T) {
	idx := &flakyIndexer{}
	src := &sliceSource{events: []*types.Event{
		buy(1, 0, "1"),
		buy(1, 2, "1"),
		buy(1, 1, "1"),
		buy(1, 2, "1"),
		buy(2, 0, "1"),
	}}
	ing := newIngestor(t, idx, src)
	require.NoError(t, ing.Run(ctx))

	assert.Equal(t, []types.Position{{Block: 1, LogIndex: 0}, {Block: 1, LogIndex: 2}, {Block: 2, LogIndex: 0}}, idx.applied)
	assert.Len(t, src.committed, 5)
	status := ing.GetStatus()["ingestor"].(map[string]any)
	assert.Equal(t, uint64(2), status["out_of_order"])
	assert.Equal(t, uint64(5), status["received"])
}

func TestIngestor_Cancel(t *testing.T) {
	idx := &flakyIndexer{}
	src := &sliceSource{events: []*types.Event{buy(1, 0, "1")}, block: true}
	ing := newIngestor(t, idx, src)

	cctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- ing.Run(cctx) }()

	require.Eventually(t, func() bool { return idx.count() == 1 }, time.Second, time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestReplay_Deterministic(t *testing.T) {
	var events []*types.Event
	events = append(events, poolCreated(1, 0))
	buys := 0
	for b := uint64(2); b < 40; b++ {
		events = append(events, buy(b, 0, "7"), buy(b, 1, "13"))
		buys += 2
	}
	path := writeFile(t, lines(events...))

	digest := func() common.Hash {
		repo := makeRepo(t)
		idx := indexerimpl.New(repo, discardLogger())
		require.NoError(t, newIngestor(t, idx, NewFileSource(path, discardLogger()), WithQueueSize(4)).Run(ctx))

		res, err := repo.Pool(ctx, types.PoolID(token))
		require.NoError(t, err)
		pool, ok := res.Get()
		require.True(t, ok)
		assert.Equal(t, uint64(buys), pool.TotalBuys)
		assert.Equal(t, int64(buys/2*20), pool.TotalVolume.Int64())
		status := idx.GetStatus()["indexer"].(map[string]any)
		assert.Equal(t, uint64(buys+1), status["applied"])
		assert.Equal(t, uint64(0), status["rejected"])

		h, err := StateDigest(ctx, repo)
		require.NoError(t, err)
		return h
	}
	first, second := digest(), digest()
	assert.Equal(t, first, second)
	assert.NotEqual(t, common.Hash{}, first)
}
