package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/synternet/launchpad-indexer/pkg/indexer"
	"github.com/synternet/launchpad-indexer/pkg/repository"
	"github.com/synternet/launchpad-indexer/pkg/types"
)

var _ indexer.Indexer = (*Indexer)(nil)

// Indexer is the sequential apply stage. It must only be called from a single goroutine.
type Indexer struct {
	logger   *slog.Logger
	repo     repository.Repository
	handlers registry

	appliedCounter  atomic.Uint64
	skippedCounter  atomic.Uint64
	rejectedCounter atomic.Uint64
	errCounter      atomic.Uint64
	qualityCounters map[string]*atomic.Uint64

	checkpointBlock    atomic.Uint64
	checkpointLogIndex atomic.Uint64
}

func New(repo repository.Repository, logger *slog.Logger) *Indexer {
	ret := &Indexer{
		logger:          logger.With("component", "indexer"),
		repo:            repo,
		handlers:        newRegistry(),
		qualityCounters: make(map[string]*atomic.Uint64, len(qualityCategories)),
	}
	for _, c := range qualityCategories {
		ret.qualityCounters[c.name] = &atomic.Uint64{}
	}
	return ret
}

// Kinds returns the event kinds that have a registered handler, sorted.
func (d *Indexer) Kinds() []types.EventKind {
	kinds := maps.Keys(d.handlers)
	slices.Sort(kinds)
	return kinds
}

func (d *Indexer) Apply(ctx context.Context, ev *types.Event) (indexer.Outcome, error) {
	payload, err := ev.Decode()
	if err != nil {
		d.errCounter.Add(1)
		return indexer.Skipped, err
	}
	handle, ok := d.handlers[ev.Kind]
	if !ok {
		d.errCounter.Add(1)
		return indexer.Skipped, fmt.Errorf("%w: no handler for %s", ErrUnknownEvent, ev.Kind)
	}

	outcome := indexer.Applied
	var report error
	err = d.repo.Transaction(ctx, func(tx repository.Repository) error {
		res, err := tx.Checkpoint(ctx)
		if err != nil {
			return err
		}
		if cp, ok := res.Get(); ok {
			last := types.Position{Block: cp.Block, LogIndex: cp.LogIndex}
			if !last.Before(ev.Position()) {
				outcome = indexer.Skipped
				report = fmt.Errorf("%w: %s at %s is not after checkpoint %s", ErrDuplicateEvent, ev.Kind, ev.Position(), last)
				return nil
			}
		}

		if err := handle(ctx, tx, ev, payload); err != nil {
			if !IsDataQuality(err) {
				return err
			}
			outcome = indexer.Rejected
			report = err
		}

		return tx.SaveCheckpoint(ctx, repository.Checkpoint{
			Block:     ev.Block,
			LogIndex:  ev.LogIndex,
			TxHash:    ev.TxHash,
			UpdatedAt: ev.Timestamp,
		})
	})
	if err != nil {
		d.errCounter.Add(1)
		return indexer.Skipped, fmt.Errorf("apply %s at %s: %w", ev.Kind, ev.Position(), err)
	}

	switch outcome {
	case indexer.Skipped:
		d.skippedCounter.Add(1)
		d.logger.Debug("Event skipped", "kind", ev.Kind, "position", ev.Position(), "err", report)
		return outcome, report
	case indexer.Rejected:
		d.rejectedCounter.Add(1)
		if c, ok := d.qualityCounters[Category(report)]; ok {
			c.Add(1)
		}
		d.logger.Warn("Event rejected", "kind", ev.Kind, "position", ev.Position(), "tx", ev.TxHash.Hex(), "err", report)
	default:
		d.appliedCounter.Add(1)
		d.logger.Debug("Event applied", "kind", ev.Kind, "position", ev.Position())
	}
	d.checkpointBlock.Store(ev.Block)
	d.checkpointLogIndex.Store(ev.LogIndex)
	return outcome, report
}

func (d *Indexer) Checkpoint(ctx context.Context) (repository.Lookup[types.Position], error) {
	res, err := d.repo.Checkpoint(ctx)
	if err != nil {
		return repository.NotFound[types.Position](), err
	}
	cp, ok := res.Get()
	if !ok {
		return repository.NotFound[types.Position](), nil
	}
	d.checkpointBlock.Store(cp.Block)
	d.checkpointLogIndex.Store(cp.LogIndex)
	return repository.Found(types.Position{Block: cp.Block, LogIndex: cp.LogIndex}), nil
}

func (d *Indexer) GetStatus() map[string]any {
	quality := make(map[string]any, len(d.qualityCounters))
	for name, c := range d.qualityCounters {
		quality[name] = c.Load()
	}
	return map[string]any{
		"indexer": map[string]any{
			"applied":      d.appliedCounter.Load(),
			"skipped":      d.skippedCounter.Load(),
			"rejected":     d.rejectedCounter.Load(),
			"errors":       d.errCounter.Load(),
			"data_quality": quality,
			"checkpoint": map[string]any{
				"block":     d.checkpointBlock.Load(),
				"log_index": d.checkpointLogIndex.Load(),
			},
		},
	}
}
