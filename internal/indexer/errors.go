package indexer

import (
	"errors"

	"github.com/synternet/launchpad-indexer/pkg/types"
)

// Data-quality errors. The event is reported, writes made before the error
// are committed and the checkpoint advances.
var (
	ErrEntityMissing      = errors.New("referenced entity missing")
	ErrInvariantViolation = errors.New("arithmetic invariant violation")
	ErrTerminalState      = errors.New("entity is in a terminal state")
	ErrInvalidTransition  = errors.New("invalid state transition")
	ErrDuplicateEvent     = errors.New("duplicate event")
)

// Decode errors are never retried and stop ingestion.
var (
	ErrDecode       = types.ErrDecode
	ErrUnknownEvent = types.ErrUnknownEvent
)

var qualityCategories = []struct {
	err  error
	name string
}{
	{ErrEntityMissing, "entity_missing"},
	{ErrInvariantViolation, "invariant_violation"},
	{ErrTerminalState, "terminal_state"},
	{ErrInvalidTransition, "invalid_transition"},
	{ErrDuplicateEvent, "duplicate_event"},
}

// IsDataQuality reports whether err only concerns the content of the event.
func IsDataQuality(err error) bool {
	return Category(err) != ""
}

// IsPermanent reports whether retrying the event can never succeed.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrDecode) || errors.Is(err, ErrUnknownEvent)
}

// Category returns the metric label of a data-quality error or "" for any other error.
func Category(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range qualityCategories {
		if errors.Is(err, c.err) {
			return c.name
		}
	}
	return ""
}
