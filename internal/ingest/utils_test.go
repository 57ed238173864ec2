package ingest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/segmentio/kafka-go"

	"github.com/synternet/launchpad-indexer/pkg/indexer"
	"github.com/synternet/launchpad-indexer/pkg/repository"
	"github.com/synternet/launchpad-indexer/pkg/types"
)

// flakyIndexer fails the first failures calls to Apply with err.
type flakyIndexer struct {
	mu       sync.Mutex
	failures int
	err      error
	applied  []types.Position
}

func (f *flakyIndexer) Apply(ctx context.Context, ev *types.Event) (indexer.Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return indexer.Skipped, f.err
	}
	f.applied = append(f.applied, ev.Position())
	return indexer.Applied, nil
}

func (f *flakyIndexer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.applied)
}

func (f *flakyIndexer) Checkpoint(ctx context.Context) (repository.Lookup[types.Position], error) {
	return repository.NotFound[types.Position](), nil
}

func (f *flakyIndexer) GetStatus() map[string]any {
	return map[string]any{}
}

// sliceSource streams a fixed list of events. With block set it then waits for cancellation.
type sliceSource struct {
	events    []*types.Event
	block     bool
	committed []types.Position
}

func (s *sliceSource) Stream(ctx context.Context, from *types.Position, out chan<- *types.Event) error {
	for _, ev := range s.events {
		if !after(from, ev) {
			continue
		}
		if !send(ctx, out, ev) {
			return nil
		}
	}
	if s.block {
		<-ctx.Done()
	}
	return nil
}

func (s *sliceSource) Commit(ctx context.Context, ev *types.Event) error {
	s.committed = append(s.committed, ev.Position())
	return nil
}

func (s *sliceSource) Close() error {
	return nil
}

// fakeReader serves fixed messages and reports cancellation once drained.
type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafka.Message
	committed []int64
	closed    bool
}

func newFakeReader(events ...*types.Event) *fakeReader {
	r := &fakeReader{}
	for i, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			panic(err)
		}
		r.msgs = append(r.msgs, kafka.Message{Offset: int64(i), Value: data})
	}
	return r
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.msgs) == 0 {
		return kafka.Message{}, context.Canceled
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func (r *fakeReader) commits() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.committed...)
}
