package kafka

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/muhammadchandra19/marketdepth/pkg/logger"
	loggerMock "github.com/muhammadchandra19/marketdepth/pkg/logger/mock"
	tickv1 "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/domain/tick/v1"
	kafkaMock "github.com/muhammadchandra19/marketdepth/services/market-data-service/internal/infrastructure/kafka/mock"
	"github.com/oklog/ulid/v2"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/protocol/metadata"
	"github.com/segmentio/kafka-go/protocol/produce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTick() *tickv1.Tick {
	return &tickv1.Tick{
		InstrumentID:  "408065",
		Sequence:      42,
		Timestamp:     time.Date(2025, 7, 1, 9, 15, 0, 0, time.UTC),
		LastPrice:     1520.5,
		Volume:        1200,
		DepthLevel:    1,
		BidPrices:     []float64{1520.4},
		BidQuantities: []int64{30},
		AskPrices:     []float64{1520.6},
		AskQuantities: []int64{25},
	}
}

func TestPublisher_Consume(t *testing.T) {
	testCases := []struct {
		name     string
		mockFn   func(writer *kafkaMock.MockMessageWriter, log *loggerMock.MockInterface)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "publishes keyed message",
			mockFn: func(writer *kafkaMock.MockMessageWriter, log *loggerMock.MockInterface) {
				writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
					require.Len(t, msgs, 1)
					msg := msgs[0]
					assert.Equal(t, []byte("408065"), msg.Key)

					decoded, err := tickv1.Unmarshal(msg.Value)
					require.NoError(t, err)
					assert.Equal(t, uint64(42), decoded.Sequence)
					assert.Equal(t, 1520.5, decoded.LastPrice)

					require.Len(t, msg.Headers, 2)
					assert.Equal(t, "event_id", msg.Headers[0].Key)
					_, err = ulid.Parse(string(msg.Headers[0].Value))
					assert.NoError(t, err)
					assert.Equal(t, "depth_level", msg.Headers[1].Key)
					assert.Equal(t, []byte("1"), msg.Headers[1].Value)
					return nil
				})
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "write failure is logged and returned",
			mockFn: func(writer *kafkaMock.MockMessageWriter, log *loggerMock.MockInterface) {
				writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("leader not available"))
				log.EXPECT().Error(gomock.Any(), gomock.Any()).Times(1)
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			writer := kafkaMock.NewMockMessageWriter(ctrl)
			log := loggerMock.NewMockInterface(ctrl)
			tc.mockFn(writer, log)

			publisher := NewPublisher(writer, log)
			assert.Equal(t, "kafka", publisher.Name())
			tc.assertFn(t, publisher.Consume(context.Background(), sampleTick()))
		})
	}
}

func TestPublisher_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := kafkaMock.NewMockMessageWriter(ctrl)
	writer.EXPECT().Close().Return(nil)

	assert.NoError(t, NewPublisher(writer, logger.NewNop()).Close())
}

func TestNewWriter(t *testing.T) {
	w := NewWriter(Config{Brokers: []string{"localhost:9092"}, Topic: "market-ticks"})
	assert.Equal(t, "market-ticks", w.Topic)
	assert.IsType(t, &kafka.Hash{}, w.Balancer)
	assert.Equal(t, 1, w.BatchSize)
	assert.LessOrEqual(t, w.BatchTimeout, 10*time.Millisecond)
}

// instantBroker answers metadata and produce requests without delay.
type instantBroker struct {
	produced atomic.Int32
}

func (b *instantBroker) RoundTrip(ctx context.Context, addr net.Addr, req kafka.Request) (kafka.Response, error) {
	switch r := req.(type) {
	case *metadata.Request:
		topics := make([]metadata.ResponseTopic, 0, len(r.TopicNames))
		for _, name := range r.TopicNames {
			topics = append(topics, metadata.ResponseTopic{
				Name:       name,
				Partitions: []metadata.ResponsePartition{{PartitionIndex: 0, LeaderID: 1}},
			})
		}
		return &metadata.Response{
			Brokers: []metadata.ResponseBroker{{NodeID: 1, Host: "localhost", Port: 9092}},
			Topics:  topics,
		}, nil
	case *produce.Request:
		b.produced.Add(1)
		return &produce.Response{
			Topics: []produce.ResponseTopic{{
				Topic:      r.Topics[0].Topic,
				Partitions: []produce.ResponsePartition{{Partition: r.Topics[0].Partitions[0].Partition}},
			}},
		}, nil
	}
	return nil, fmt.Errorf("unexpected request %T", req)
}

func TestPublisher_ConsumeDoesNotWaitForBatch(t *testing.T) {
	broker := &instantBroker{}
	w := NewWriter(Config{Brokers: []string{"localhost:9092"}, Topic: "market-ticks"})
	w.Transport = broker

	publisher := NewPublisher(w, logger.NewNop())
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	for range 3 {
		require.NoError(t, publisher.Consume(ctx, sampleTick()))
	}

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, int32(3), broker.produced.Load())
}
