package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/synternet/launchpad-indexer/cmd/flags"
	"github.com/synternet/launchpad-indexer/internal/api"
	"github.com/synternet/launchpad-indexer/internal/indexer"
	"github.com/synternet/launchpad-indexer/internal/ingest"
)

var (
	flagSource           *string
	flagEventsFile       *string
	flagSubject          *string
	flagKafkaBrokers     *flags.List
	flagKafkaTopic       *string
	flagKafkaGroup       *string
	flagQueueSize        *uint64
	flagRetries          *uint64
	flagRetryInterval    *time.Duration
	flagRetryMaxInterval *time.Duration
	flagApiAddr          *string
)

func newSource(logger *slog.Logger) (ingest.Source, error) {
	switch *flagSource {
	case "file":
		if *flagEventsFile == "" {
			return nil, errors.New("--events-file is required for the file source")
		}
		return ingest.NewFileSource(*flagEventsFile, logger), nil
	case "nats":
		conn, err := connectNats()
		if err != nil {
			return nil, err
		}
		return &natsSource{NatsSource: ingest.NewNatsSource(conn, *flagSubject, int(*flagQueueSize), logger), conn: conn}, nil
	case "kafka":
		if len(*flagKafkaBrokers.Value) == 0 {
			return nil, errors.New("--kafka-brokers is required for the kafka source")
		}
		return ingest.NewKafkaSource(*flagKafkaBrokers.Value, *flagKafkaTopic, *flagKafkaGroup, logger), nil
	default:
		return nil, fmt.Errorf("unknown source %q", *flagSource)
	}
}

// natsSource closes the connection together with the subscription.
type natsSource struct {
	*ingest.NatsSource
	conn *nats.Conn
}

func (s *natsSource) Close() error {
	s.conn.Close()
	return s.NatsSource.Close()
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Ingest events and serve the query API",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger := slog.Default()
		source, err := newSource(logger)
		if err != nil {
			logger.Error("Failed creating event source", "err", err)
			return
		}

		idx := indexer.New(database, logger)
		ingestor, err := ingest.New(
			idx,
			source,
			logger,
			prometheus.DefaultRegisterer,
			ingest.WithSourceName(*flagSource),
			ingest.WithQueueSize(int(*flagQueueSize)),
			ingest.WithRetries(*flagRetries),
			ingest.WithRetryInterval(*flagRetryInterval),
			ingest.WithRetryMaxInterval(*flagRetryMaxInterval),
		)
		if err != nil {
			logger.Error("Failed creating ingestor", "err", err)
			return
		}
		defer ingestor.Close()

		group, gctx := errgroup.WithContext(ctx)
		group.Go(func() error {
			return ingestor.Run(gctx)
		})

		if *flagApiAddr != "" {
			gin.SetMode(gin.ReleaseMode)
			handler := api.NewHandler(database, prometheus.DefaultGatherer, logger, idx, ingestor)
			server := &http.Server{
				Addr:              *flagApiAddr,
				Handler:           api.NewRouter(handler),
				ReadHeaderTimeout: 10 * time.Second,
			}
			group.Go(func() error {
				logger.Info("Serving API", "addr", *flagApiAddr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			group.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			})
		}

		if err := group.Wait(); err != nil {
			logger.Error("Indexer stopped", "err", err)
			return
		}
		logger.Info("Shutdown", "status", idx.GetStatus())
	},
}

func init() {
	rootCmd.AddCommand(startCmd)

	const (
		SOURCE             = "SOURCE"
		EVENTS_FILE        = "EVENTS_FILE"
		EVENTS_SUBJECT     = "EVENTS_SUBJECT"
		KAFKA_BROKERS      = "KAFKA_BROKERS"
		KAFKA_TOPIC        = "KAFKA_TOPIC"
		KAFKA_GROUP        = "KAFKA_GROUP"
		QUEUE_SIZE         = "QUEUE_SIZE"
		RETRIES            = "RETRIES"
		RETRY_INTERVAL     = "RETRY_INTERVAL"
		RETRY_MAX_INTERVAL = "RETRY_MAX_INTERVAL"
		API_ADDR           = "API_ADDR"
	)

	setDefault(SOURCE, "file")
	setDefault(EVENTS_SUBJECT, "synternet.launchpad.events")
	setDefault(KAFKA_TOPIC, "launchpad-events")
	setDefault(KAFKA_GROUP, "launchpad-indexer")
	setDefault(API_ADDR, ":8080")

	f := startCmd.Flags()
	flagSource = f.String("source", os.Getenv(SOURCE), "Event source: file, nats or kafka")
	flagEventsFile = f.String("events-file", os.Getenv(EVENTS_FILE), "Path to a JSON lines event log for the file source")
	flagSubject = f.String("subject", os.Getenv(EVENTS_SUBJECT), "NATS subject to consume events from")
	flagKafkaBrokers = f.VarPF(flags.NewList(os.Getenv(KAFKA_BROKERS)), "kafka-brokers", "", "Kafka broker addresses (separated by comma)").Value.(*flags.List)
	flagKafkaTopic = f.String("kafka-topic", os.Getenv(KAFKA_TOPIC), "Kafka topic to consume events from")
	flagKafkaGroup = f.String("kafka-group", os.Getenv(KAFKA_GROUP), "Kafka consumer group")
	flagQueueSize = f.Uint64("queue-size", envUint(QUEUE_SIZE, 1024), "Maximum number of fetched events waiting to be applied")
	flagRetries = f.Uint64("retries", envUint(RETRIES, 10), "Persistence retries per event before stopping")
	flagRetryInterval = f.Duration("retry-interval", envDuration(RETRY_INTERVAL, 500*time.Millisecond), "Initial retry backoff")
	flagRetryMaxInterval = f.Duration("retry-max-interval", envDuration(RETRY_MAX_INTERVAL, 30*time.Second), "Maximum retry backoff")
	flagApiAddr = f.String("api-addr", os.Getenv(API_ADDR), "Query API listen address (empty disables the API)")
}
