package ingest

import (
	"reflect"
	"testing"
	"time"

	"github.com/synternet/data-layer-sdk/pkg/options"
)

func TestWithQueueSize(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int
	}{
		{"positive", 16, 16},
		{"zero", 0, 1},
		{"negative", -5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opt options.Options

			err := opt.Parse(WithQueueSize(tt.size))
			if err != nil {
				t.Errorf("opt.Parse failed: %v", err)
			}

			got := options.Param(opt, QueueSizeParam, 0)

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WithQueueSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIngestor_Defaults(t *testing.T) {
	var i Ingestor
	if err := i.Options.Parse(WithRetries(3), WithRetryInterval(time.Second)); err != nil {
		t.Fatalf("opt.Parse failed: %v", err)
	}

	if got := i.Retries(); got != 3 {
		t.Errorf("Retries() = %v, want 3", got)
	}
	if got := i.RetryInterval(); got != time.Second {
		t.Errorf("RetryInterval() = %v, want 1s", got)
	}
	if got := i.RetryMaxInterval(); got != 30*time.Second {
		t.Errorf("RetryMaxInterval() = %v, want 30s", got)
	}
	if got := i.QueueSize(); got != 1024 {
		t.Errorf("QueueSize() = %v, want 1024", got)
	}
}
