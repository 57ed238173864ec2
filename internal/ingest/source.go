package ingest

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/synternet/launchpad-indexer/pkg/types"
)

// Source delivers decoded events in chain order.
//
// Stream sends events to out until the source is exhausted or ctx is done.
// Events at or before from may be dropped by the source; the ingestor skips them anyway.
// A returned error stops ingestion.
type Source interface {
	Stream(ctx context.Context, from *types.Position, out chan<- *types.Event) error
	Close() error
}

// Committer is implemented by sources that acknowledge events once they are processed.
// Commit is called exactly once per delivered event, in delivery order.
type Committer interface {
	Commit(ctx context.Context, ev *types.Event) error
}

func after(from *types.Position, ev *types.Event) bool {
	return from == nil || from.Before(ev.Position())
}

func send(ctx context.Context, out chan<- *types.Event, ev *types.Event) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// FileSource reads one JSON event envelope per line. Empty lines and lines
// starting with '#' are ignored.
type FileSource struct {
	logger *slog.Logger
	path   string
}

func NewFileSource(path string, logger *slog.Logger) *FileSource {
	return &FileSource{
		logger: logger.With("source", "file", "path", path),
		path:   path,
	}
}

func (s *FileSource) Stream(ctx context.Context, from *types.Position, out chan<- *types.Event) error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("failed opening events file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line, sent := 0, 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 || data[0] == '#' {
			continue
		}
		ev, err := types.ParseEvent(data)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", s.path, line, err)
		}
		if !after(from, ev) {
			continue
		}
		if !send(ctx, out, ev) {
			return nil
		}
		sent++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed reading events file: %w", err)
	}
	s.logger.Info("Events file exhausted", "lines", line, "sent", sent)
	return nil
}

func (s *FileSource) Close() error {
	return nil
}
