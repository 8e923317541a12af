// Package redis — кэш принятых заказов в Redis, общий для нескольких инстансов сервиса.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Gunvolt24/larek/internal/domain"
	"github.com/Gunvolt24/larek/internal/ports"
	"github.com/Gunvolt24/larek/pkg/metrics"
)

var _ ports.OrderCache = (*SubmissionCache)(nil)

const defaultPrefix = "larek:order"

// SubmissionCache — заказ хранится JSON-строкой под ключом "<prefix>:<id>" с TTL.
// Вытеснение по памяти — на стороне Redis (maxmemory-policy).
type SubmissionCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	log    ports.Logger
}

// NewClient — клиент по адресу host:port; недоступный Redis — ошибка сразу.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return c, nil
}

// NewSubmissionCache — ttl <= 0 означает хранение без срока.
func NewSubmissionCache(client redis.Cmdable, prefix string, ttl time.Duration, log ports.Logger) *SubmissionCache {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &SubmissionCache{client: client, prefix: prefix, ttl: ttl, log: log}
}

func (c *SubmissionCache) key(id string) string {
	var b strings.Builder
	b.Grow(len(c.prefix) + 1 + len(id))
	b.WriteString(c.prefix)
	b.WriteByte(':')
	b.WriteString(id)
	return b.String()
}

// Get — промах и ошибка Redis неразличимы для вызывающего: он пойдёт в БД.
func (c *SubmissionCache) Get(ctx context.Context, id string) (*domain.Submission, bool) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	if err != nil {
		c.log.Warnf(ctx, "redis get failed (id=%s): %v", id, err)
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}

	var s domain.Submission
	if err := json.Unmarshal(raw, &s); err != nil {
		c.log.Warnf(ctx, "redis entry is corrupted, dropping (id=%s): %v", id, err)
		_ = c.client.Del(ctx, c.key(id)).Err()
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.CacheOps.WithLabelValues("hit").Inc()
	return &s, true
}

func (c *SubmissionCache) Set(ctx context.Context, s *domain.Submission) error {
	if s == nil || s.ID == "" {
		return nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}
	if err := c.client.Set(ctx, c.key(s.ID), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// WarmUp — одним pipeline; пустые и nil-заказы пропускаются.
func (c *SubmissionCache) WarmUp(ctx context.Context, items []*domain.Submission) error {
	if len(items) == 0 {
		return nil
	}
	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, s := range items {
			if s == nil || s.ID == "" {
				continue
			}
			b, err := json.Marshal(s)
			if err != nil {
				return fmt.Errorf("marshal submission %s: %w", s.ID, err)
			}
			pipe.Set(ctx, c.key(s.ID), b, c.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis warm-up: %w", err)
	}
	return nil
}
