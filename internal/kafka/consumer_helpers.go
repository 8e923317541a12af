package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/larek/internal/usecase"
	"github.com/Gunvolt24/larek/pkg/metrics"
)

// processWithRetry — handleMessage с backoff до успеха или битого снимка.
// false — контекст отменён, сообщение не обработано.
func (c *Consumer) processWithRetry(ctx context.Context, topic string, msg *kafka.Message) bool {
	retry := c.retryInitial
	for !c.handleMessage(ctx, topic, msg) {
		if ctx.Err() != nil {
			return false
		}
		wait := c.withJitterEqual(retry)
		c.log.Warnf(ctx, "retrying catalog snapshot offset=%d in %s", msg.Offset, wait)
		if !sleepCtx(ctx, wait) {
			return false
		}
		retry = c.nextBackoff(retry)
	}
	return true
}

// handleMessage — обрабатывает сообщение; true, если с ним покончено (успех или битый снимок).
func (c *Consumer) handleMessage(ctx context.Context, topic string, msg *kafka.Message) bool {
	pctx, cancel := context.WithTimeout(ctx, c.processTimeout)
	err := c.service.SaveFromMessage(pctx, msg.Value)
	cancel()

	switch {
	case err == nil:
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
		return true
	case errors.Is(err, usecase.ErrInvalidCatalog):
		// повтор не поможет — пропускаем
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "invalid catalog snapshot offset=%d: %v (skipped)", msg.Offset, err)
		return true
	default:
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "catalog snapshot failed offset=%d: %v (will retry)", msg.Offset, err)
		return false
	}
}

func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if err := c.reader.CommitMessages(ctx, *msg); err != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, err)
	}
}

// nextBackoff — удвоение с потолком retryMax.
func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	if current *= 2; current > c.retryMax {
		return c.retryMax
	}
	return current
}

// withJitterEqual — equal jitter: d/2 + rand[0, d/2].
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	c.mu.Lock()
	jitter := time.Duration(c.jitterRand.Int63n(int64(d-half) + 1))
	c.mu.Unlock()
	return half + jitter
}

// sleepCtx — ждёт d; false, если контекст отменён раньше.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
