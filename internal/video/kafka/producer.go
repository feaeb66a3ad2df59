package kafka

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"
)

type Producer struct {
	writer *kafkago.Writer
	logger zerolog.Logger
	closed atomic.Bool
}

type ProducerConfig struct {
	Brokers []string
	Topic   string
	Logger  zerolog.Logger
}

func NewProducer(cfg ProducerConfig) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka producer: brokers list is empty")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka producer: topic is empty")
	}

	return &Producer{
		writer: &kafkago.Writer{
			Addr:     kafkago.TCP(cfg.Brokers...),
			Topic:    cfg.Topic,
			Balancer: &kafkago.LeastBytes{},
		},
		logger: cfg.Logger.With().Str("component", "kafka_producer").Logger(),
	}, nil
}

func (p *Producer) Publish(ctx context.Context, key string, value []byte) error {
	if p.closed.Load() {
		return fmt.Errorf("kafka publish: producer is closed")
	}

	err := p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(key),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return fmt.Errorf("kafka producer: already closed")
	}
	return p.writer.Close()
}
