package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/synternet/launchpad-indexer/pkg/types"
)

// NatsSource receives event envelopes published on a NATS subject.
// Core NATS has no replay, so events published while the indexer is down are lost;
// resuming relies on the publisher re-sending from the reported checkpoint.
type NatsSource struct {
	logger  *slog.Logger
	conn    *nats.Conn
	subject string
	buffer  int
}

func NewNatsSource(conn *nats.Conn, subject string, buffer int, logger *slog.Logger) *NatsSource {
	if buffer < 1 {
		buffer = 1
	}
	return &NatsSource{
		logger:  logger.With("source", "nats", "subject", subject),
		conn:    conn,
		subject: subject,
		buffer:  buffer,
	}
}

func (s *NatsSource) Stream(ctx context.Context, from *types.Position, out chan<- *types.Event) error {
	if s.conn == nil {
		return fmt.Errorf("nats source: no connection")
	}
	msgs := make(chan *nats.Msg, s.buffer)
	sub, err := s.conn.ChanSubscribe(s.subject, msgs)
	if err != nil {
		return fmt.Errorf("failed subscribing to %s: %w", s.subject, err)
	}
	defer func() {
		if err := sub.Unsubscribe(); err != nil {
			s.logger.Warn("Unsubscribe failed", "err", err)
		}
	}()
	s.logger.Info("Subscribed", "from", from)

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-msgs:
			ev, err := types.ParseEvent(msg.Data)
			if err != nil {
				return fmt.Errorf("bogus event on %s: %w", msg.Subject, err)
			}
			if !after(from, ev) {
				continue
			}
			if !send(ctx, out, ev) {
				return nil
			}
		}
	}
}

func (s *NatsSource) Close() error {
	return nil
}
