package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/synternet/data-layer-sdk/pkg/options"
	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	indexerimpl "github.com/synternet/launchpad-indexer/internal/indexer"
	"github.com/synternet/launchpad-indexer/pkg/indexer"
	"github.com/synternet/launchpad-indexer/pkg/types"
)

// Ingestor pipes events from a Source into the single apply stage.
type Ingestor struct {
	Options options.Options

	logger  *slog.Logger
	indexer indexer.Indexer
	source  Source
	metrics *metrics

	last    types.Position
	hasLast bool

	receivedCounter atomic.Uint64
	retryCounter    atomic.Uint64
	outOfOrder      atomic.Uint64
	queueLength     atomic.Int64
	running         atomic.Bool
}

func New(idx indexer.Indexer, source Source, logger *slog.Logger, reg prometheus.Registerer, opts ...options.Option) (*Ingestor, error) {
	ret := &Ingestor{
		indexer: idx,
		source:  source,
		metrics: newMetrics(reg),
	}
	if err := ret.Options.Parse(opts...); err != nil {
		return nil, fmt.Errorf("failed parsing ingestor options: %w", err)
	}
	ret.logger = logger.With("component", "ingestor", "source", ret.SourceName())
	return ret, nil
}

// Run resumes from the persisted checkpoint and applies events until the
// source is exhausted, ctx is cancelled or a non-recoverable error occurs.
// Cancellation lets the in-flight event finish and commit.
func (i *Ingestor) Run(ctx context.Context) error {
	res, err := i.indexer.Checkpoint(ctx)
	if err != nil {
		return fmt.Errorf("failed loading checkpoint: %w", err)
	}
	var from *types.Position
	if cp, ok := res.Get(); ok {
		from = &cp
		i.last, i.hasLast = cp, true
		i.metrics.checkpointBlock.Set(float64(cp.Block))
		i.logger.Info("Resuming", "checkpoint", cp)
	} else {
		i.logger.Info("Starting from an empty store")
	}

	i.running.Store(true)
	defer i.running.Store(false)

	queue := make(chan *types.Event, i.QueueSize())
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer close(queue)
		if err := i.source.Stream(gctx, from, queue); err != nil {
			return fmt.Errorf("source failed: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		for ev := range queue {
			i.queueLength.Store(int64(len(queue)))
			i.metrics.queueLength.Set(float64(len(queue)))
			if gctx.Err() != nil {
				return nil
			}
			if err := i.process(gctx, ev); err != nil {
				return err
			}
		}
		return nil
	})

	err = group.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (i *Ingestor) process(ctx context.Context, ev *types.Event) error {
	i.receivedCounter.Add(1)
	pos := ev.Position()
	if i.hasLast && !i.last.Before(pos) {
		i.outOfOrder.Add(1)
		i.metrics.outOfOrderCounter.Inc()
		i.metrics.skippedCounter.Inc()
		i.logger.Warn("Event behind last position, skipping", "kind", ev.Kind, "position", pos, "last", i.last)
		i.commit(ctx, ev)
		return nil
	}

	start := time.Now()
	outcome, err := i.apply(ctx, ev)
	i.metrics.applyDuration.Observe(time.Since(start).Seconds())
	if err != nil && !indexerimpl.IsDataQuality(err) {
		return fmt.Errorf("failed applying %s at %s: %w", ev.Kind, pos, err)
	}

	switch outcome {
	case indexer.Applied:
		i.metrics.appliedCounter.Inc()
	case indexer.Skipped:
		i.metrics.skippedCounter.Inc()
	case indexer.Rejected:
		i.metrics.rejectedCounter.WithLabelValues(indexerimpl.Category(err)).Inc()
	}
	i.last, i.hasLast = pos, true
	i.metrics.checkpointBlock.Set(float64(ev.Block))
	i.commit(ctx, ev)
	return nil
}

// apply retries persistence failures with exponential backoff. The attempt itself
// runs on a context detached from cancellation so a started transaction commits.
func (i *Ingestor) apply(ctx context.Context, ev *types.Event) (indexer.Outcome, error) {
	var (
		outcome indexer.Outcome
		report  error
	)
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = i.RetryInterval()
	b.MaxInterval = i.RetryMaxInterval()
	b.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(b, i.Retries()), ctx)

	op := func() error {
		o, err := i.indexer.Apply(context.WithoutCancel(ctx), ev)
		if err == nil || indexerimpl.IsDataQuality(err) {
			outcome, report = o, err
			return nil
		}
		if indexerimpl.IsPermanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, d time.Duration) {
		i.retryCounter.Add(1)
		i.metrics.retriesCounter.Inc()
		i.logger.Warn("Apply failed, retrying", "kind", ev.Kind, "position", ev.Position(), "in", d, "err", err)
	}

	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return outcome, err
	}
	return outcome, report
}

func (i *Ingestor) commit(ctx context.Context, ev *types.Event) {
	c, ok := i.source.(Committer)
	if !ok {
		return
	}
	if err := c.Commit(context.WithoutCancel(ctx), ev); err != nil {
		i.metrics.commitErrorCounter.Inc()
		i.logger.Warn("Source commit failed", "kind", ev.Kind, "position", ev.Position(), "err", err)
	}
}

func (i *Ingestor) Close() error {
	return i.source.Close()
}

func (i *Ingestor) GetStatus() map[string]any {
	return map[string]any{
		"ingestor": map[string]any{
			"source":       i.SourceName(),
			"running":      i.running.Load(),
			"received":     i.receivedCounter.Load(),
			"retries":      i.retryCounter.Load(),
			"out_of_order": i.outOfOrder.Load(),
			"queue":        i.queueLength.Load(),
		},
	}
}
