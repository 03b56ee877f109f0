package kafka

import (
	"context"
	"strconv"
	"time"

	"github.com/muhammadchandra19/marketdepth/pkg/errors"
	"github.com/muhammadchandra19/marketdepth/pkg/logger"
	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
	"github.com/oklog/ulid/v2"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
//
//go:generate mockgen -source publisher.go -destination=mock/publisher_mock.go -package=kafka_mock
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Config holds the writer settings.
type Config struct {
	Brokers []string
	Topic   string
}

// Publisher forwards stored ticks to a Kafka topic keyed by instrument, so
// every instrument keeps its order within one partition.
type Publisher struct {
	writer MessageWriter
	logger logger.Interface
}

// NewWriter builds the kafka-go writer for config. Consume writes one message
// at a time, so batches are flushed as soon as they hold a single message
// instead of waiting out the default one second batch timeout.
func NewWriter(config Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    1,
		BatchTimeout: 5 * time.Millisecond,
		MaxAttempts:  3,
	}
}

// NewPublisher creates a publisher on top of writer.
func NewPublisher(writer MessageWriter, logger logger.Interface) *Publisher {
	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

func (p *Publisher) Name() string {
	return "kafka"
}

// Consume publishes one tick.
func (p *Publisher) Consume(ctx context.Context, tick *tickv1.Tick) error {
	value, err := tickv1.Marshal(tick)
	if err != nil {
		return errors.TracerFromError(err)
	}

	msg := kafka.Message{
		Key:   []byte(tick.InstrumentID),
		Value: value,
		Time:  tick.Timestamp,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(ulid.Make().String())},
			{Key: "depth_level", Value: []byte(strconv.Itoa(tick.DepthLevel))},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "instrument_id", Value: tick.InstrumentID},
			logger.Field{Key: "sequence", Value: tick.Sequence},
		)
		return errors.NewTracer("failed to publish tick").Wrap(err)
	}
	return nil
}

// Close flushes pending writes.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
