package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// ConsumerConfig — параметры чтения топика снимков каталога.
type ConsumerConfig struct {
	Brokers     []string
	Topic       string
	GroupID     string // пусто — reader без группы на партиции 0
	StartOffset string // "first" | иначе last

	ProcessTimeout time.Duration
	RetryInitial   time.Duration
	RetryMax       time.Duration
}

// ReaderConfig — конфиг kafka.Reader с ручным коммитом (CommitInterval = 0).
// Без GroupID reader читает партицию 0: топик снимков однопартиционный.
func (c *ConsumerConfig) ReaderConfig() kafka.ReaderConfig {
	return kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		Topic:          c.Topic,
		Partition:      0,
		CommitInterval: 0,
		StartOffset:    startOffset(c.StartOffset),
	}
}

func startOffset(s string) int64 {
	if strings.EqualFold(strings.TrimSpace(s), "first") {
		return kafka.FirstOffset
	}
	return kafka.LastOffset
}

// withDefaults — подставляет значения по умолчанию для незаданных таймингов.
func (c ConsumerConfig) withDefaults() ConsumerConfig {
	if c.ProcessTimeout <= 0 {
		c.ProcessTimeout = 5 * time.Second
	}
	if c.RetryInitial <= 0 {
		c.RetryInitial = time.Second
	}
	if c.RetryMax <= 0 {
		c.RetryMax = 30 * time.Second
	}
	if c.RetryMax < c.RetryInitial {
		c.RetryMax = c.RetryInitial
	}
	return c
}
