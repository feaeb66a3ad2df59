package kafka

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_Validation(t *testing.T) {
	_, err := NewProducer(ProducerConfig{Topic: "t", Logger: zerolog.Nop()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "brokers list is empty")

	_, err = NewProducer(ProducerConfig{Brokers: []string{"localhost:9092"}, Logger: zerolog.Nop()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "topic is empty")
}

func TestProducer_PublishAfterClose(t *testing.T) {
	p, err := NewProducer(ProducerConfig{
		Brokers: []string{"localhost:9092"},
		Topic:   "videos",
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)

	p.closed.Store(true)

	err = p.Publish(context.Background(), "key", []byte("value"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "producer is closed")
}

func TestProducer_DoubleClose(t *testing.T) {
	p, err := NewProducer(ProducerConfig{
		Brokers: []string{"localhost:9092"},
		Topic:   "videos",
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)

	_ = p.Close()
	assert.True(t, p.closed.Load())

	err = p.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already closed")
}
