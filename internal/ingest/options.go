package ingest

import (
	"time"

	"github.com/synternet/data-layer-sdk/pkg/options"
	"github.com/synternet/data-layer-sdk/pkg/service"
)

var (
	QueueSizeParam        = "qs"
	RetriesParam          = "rt"
	RetryIntervalParam    = "ri"
	RetryMaxIntervalParam = "rmi"
	SourceNameParam       = "src"
)

// WithQueueSize bounds how far fetching may run ahead of the apply stage.
func WithQueueSize(size int) options.Option {
	if size < 1 {
		size = 1
	}
	return func(o *options.Options) {
		service.WithParam(QueueSizeParam, size)(o)
	}
}

func (i *Ingestor) QueueSize() int {
	return options.Param(i.Options, QueueSizeParam, 1024)
}

// WithRetries sets how many times a persistence failure is retried before the ingestor stops.
func WithRetries(n uint64) options.Option {
	return func(o *options.Options) {
		service.WithParam(RetriesParam, n)(o)
	}
}

func (i *Ingestor) Retries() uint64 {
	return options.Param(i.Options, RetriesParam, uint64(10))
}

func WithRetryInterval(d time.Duration) options.Option {
	return func(o *options.Options) {
		service.WithParam(RetryIntervalParam, d)(o)
	}
}

func (i *Ingestor) RetryInterval() time.Duration {
	return options.Param(i.Options, RetryIntervalParam, time.Millisecond*500)
}

func WithRetryMaxInterval(d time.Duration) options.Option {
	return func(o *options.Options) {
		service.WithParam(RetryMaxIntervalParam, d)(o)
	}
}

func (i *Ingestor) RetryMaxInterval() time.Duration {
	return options.Param(i.Options, RetryMaxIntervalParam, time.Second*30)
}

func WithSourceName(name string) options.Option {
	return func(o *options.Options) {
		service.WithParam(SourceNameParam, name)(o)
	}
}

func (i *Ingestor) SourceName() string {
	return options.Param(i.Options, SourceNameParam, "unknown")
}
