package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/larek/internal/domain"
	"github.com/Gunvolt24/larek/internal/ports"
	"github.com/Gunvolt24/larek/pkg/metrics"
)

var _ ports.OrderPublisher = (*Publisher)(nil)

// writer — то, что нужно издателю от kafka.Writer.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PublisherConfig — параметры топика принятых заказов.
type PublisherConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// Publisher — пишет событие "заказ принят" в топик заказов.
type Publisher struct {
	w     writer
	topic string
}

func NewPublisher(cfg PublisherConfig) *Publisher {
	wt := cfg.WriteTimeout
	if wt <= 0 {
		wt = 5 * time.Second
	}
	return newPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		WriteTimeout:           wt,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}, cfg.Topic)
}

func newPublisher(w writer, topic string) *Publisher {
	return &Publisher{w: w, topic: topic}
}

// PublishOrderPlaced — ключ сообщения = id заказа, значение = заказ в JSON.
func (p *Publisher) PublishOrderPlaced(ctx context.Context, s *domain.Submission) error {
	if s == nil {
		return fmt.Errorf("publish: submission is nil")
	}
	value, err := json.Marshal(s)
	if err != nil {
		metrics.KafkaMessagesPublished.WithLabelValues(p.topic, "error").Inc()
		return fmt.Errorf("marshal submission: %w", err)
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(s.ID),
		Value: value,
		Time:  s.CreatedAt,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte("order.placed")},
		},
	})
	if err != nil {
		metrics.KafkaMessagesPublished.WithLabelValues(p.topic, "error").Inc()
		return fmt.Errorf("write order %s: %w", s.ID, err)
	}
	metrics.KafkaMessagesPublished.WithLabelValues(p.topic, "ok").Inc()
	return nil
}

func (p *Publisher) Close() error { return p.w.Close() }
