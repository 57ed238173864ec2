package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/segmentio/kafka-go"

	"github.com/synternet/launchpad-indexer/pkg/types"
)

// messageReader is the part of *kafka.Reader the source uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// pendingQueue keeps delivered messages until the ingestor acknowledges them.
type pendingQueue struct {
	mu   sync.Mutex
	msgs []kafka.Message
}

func (q *pendingQueue) push(m kafka.Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.msgs = append(q.msgs, m)
}

func (q *pendingQueue) pop() (kafka.Message, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.msgs) == 0 {
		return kafka.Message{}, false
	}
	m := q.msgs[0]
	q.msgs = q.msgs[1:]
	return m, true
}

func (q *pendingQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.msgs)
}

// KafkaSource consumes event envelopes from a Kafka topic with a consumer group.
// Offsets are committed only after the ingestor processed the event.
//
// Every fetched message is delivered, including those at or before the checkpoint.
// The ingestor skips those and commits them in delivery order, so an offset is never
// committed ahead of an older message that has not been applied yet.
type KafkaSource struct {
	logger  *slog.Logger
	reader  messageReader
	pending pendingQueue
}

func NewKafkaSource(brokers []string, topic, groupID string, logger *slog.Logger) *KafkaSource {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0,
		StartOffset:    kafka.FirstOffset,
	})
	return newKafkaSource(reader, logger.With("source", "kafka", "topic", topic, "group", groupID))
}

func newKafkaSource(reader messageReader, logger *slog.Logger) *KafkaSource {
	return &KafkaSource{
		logger: logger,
		reader: reader,
	}
}

func (s *KafkaSource) Stream(ctx context.Context, from *types.Position, out chan<- *types.Event) error {
	s.logger.Info("Consuming", "from", from)
	for {
		m, err := s.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("kafka fetch failed: %w", err)
		}
		ev, err := types.ParseEvent(m.Value)
		if err != nil {
			return fmt.Errorf("bogus event at partition %d offset %d: %w", m.Partition, m.Offset, err)
		}

		s.pending.push(m)
		if !send(ctx, out, ev) {
			return nil
		}
	}
}

// Commit acknowledges the oldest delivered message.
func (s *KafkaSource) Commit(ctx context.Context, ev *types.Event) error {
	m, ok := s.pending.pop()
	if !ok {
		return fmt.Errorf("no pending message for %s at %s", ev.Kind, ev.Position())
	}
	return s.reader.CommitMessages(ctx, m)
}

func (s *KafkaSource) Close() error {
	return s.reader.Close()
}
