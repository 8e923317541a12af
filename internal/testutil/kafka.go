//go:build integration

package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// UniqueTopicAndGroup — уникальные topic/group от базового префикса.
// Пример: base="catalog-itest" → "catalog-itest-20250826T010203123456789".
func UniqueTopicAndGroup(base string) (topic, group string) {
	s := strings.ReplaceAll(time.Now().UTC().Format("20060102T150405.000000000"), ".", "")
	name := base + "-" + s
	return name, name
}

// EnsureTopic — создаёт топик через контроллер кластера ("already exists" — не ошибка)
// и ждёт его появления в метаданных. broker: "host:port", "PLAINTEXT://host:port" или список через запятую.
func EnsureTopic(ctx context.Context, broker, topic string) error {
	addr := bootstrapAddr(broker)

	ctrlAddr, err := controllerAddr(addr)
	if err != nil {
		return err
	}
	admin, err := kafka.Dial("tcp", ctrlAddr)
	if err != nil {
		return err
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil && !strings.Contains(strings.ToLower(err.Error()), "already exists") {
		return err
	}
	return waitTopicReady(ctx, addr, topic)
}

// ProduceJSON — одно сообщение со значением value в JSON.
func ProduceJSON(ctx context.Context, brokers []string, topic, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
	defer w.Close()
	return w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: b})
}

// ReadOne — первое сообщение партиции 0 (без consumer group).
func ReadOne(ctx context.Context, brokers []string, topic string) (kafka.Message, error) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   brokers,
		Topic:     topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  1 << 20,
	})
	defer r.Close()
	return r.ReadMessage(ctx)
}

// ---- helpers ----

// bootstrapAddr — первый адрес из bootstrap-строки без схемы.
func bootstrapAddr(raw string) string {
	first := strings.TrimSpace(strings.Split(raw, ",")[0])
	if strings.Contains(first, "://") {
		if u, err := url.Parse(first); err == nil && u.Host != "" {
			return u.Host
		}
	}
	return first
}

func controllerAddr(addr string) (string, error) {
	conn, err := kafka.Dial("tcp", addr)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	ctrl, err := conn.Controller()
	if err != nil {
		return "", err
	}
	return net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)), nil
}

func waitTopicReady(ctx context.Context, broker, topic string) error {
	deadline := time.Now().Add(5 * time.Second)
	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	var lastErr error
	for {
		if c, err := kafka.Dial("tcp", broker); err == nil {
			parts, perr := c.ReadPartitions(topic)
			_ = c.Close()
			if perr == nil && len(parts) > 0 {
				return nil
			}
			lastErr = perr
		} else {
			lastErr = err
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("topic %q not ready: %v", topic, lastErr)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
	}
}
