package kafka_test

import (
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"

	"github.com/Gunvolt24/larek/internal/kafka"
)

func TestConsumerConfig_ReaderConfig(t *testing.T) {
	t.Parallel()

	base := kafka.ConsumerConfig{
		Brokers: []string{"redpanda-0:9092", "redpanda-1:9092"},
		Topic:   "catalog",
		GroupID: "larek",
	}

	offsets := map[string]int64{
		"first":       kafkago.FirstOffset,
		"FIRST":       kafkago.FirstOffset,
		" First\n":    kafkago.FirstOffset,
		"\tfirst\t":   kafkago.FirstOffset,
		"":            kafkago.LastOffset,
		"last":        kafkago.LastOffset,
		"earliest":    kafkago.LastOffset,
		"first-ever":  kafkago.LastOffset,
	}

	for in, want := range offsets {
		in, want := in, want
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			cfg := base
			cfg.StartOffset = in
			rc := cfg.ReaderConfig()

			assert.Equal(t, want, rc.StartOffset)
			assert.Equal(t, base.Brokers, rc.Brokers)
			assert.Equal(t, "catalog", rc.Topic)
			assert.Equal(t, "larek", rc.GroupID)
			// коммиты только вручную, после обработки
			assert.Zero(t, rc.CommitInterval)
		})
	}
}

func TestConsumerConfig_ReaderConfig_NoGroup(t *testing.T) {
	cfg := kafka.ConsumerConfig{Brokers: []string{"redpanda-0:9092"}, Topic: "catalog"}
	rc := cfg.ReaderConfig()

	assert.Empty(t, rc.GroupID)
	assert.Equal(t, 0, rc.Partition)
	assert.NoError(t, rc.Validate())
}
