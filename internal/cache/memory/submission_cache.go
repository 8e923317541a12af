package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/larek/internal/domain"
	"github.com/Gunvolt24/larek/internal/ports"
	"github.com/Gunvolt24/larek/pkg/metrics"
)

var _ ports.OrderCache = (*LRUCacheTTL)(nil)

type entry struct {
	id         string
	submission *domain.Submission
	expiresAt  time.Time
}

// LRUCacheTTL — LRU-кэш принятых заказов с TTL; хранит и отдаёт копии.
type LRUCacheTTL struct {
	capacity int
	ttl      time.Duration

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

// NewLRUCacheTTL — конструктор; capacity <= 0 трактуется как 1, ttl <= 0 — без истечения.
func NewLRUCacheTTL(capacity int, ttl time.Duration) *LRUCacheTTL {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCacheTTL{
		capacity: capacity,
		ttl:      ttl,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
}

func (c *LRUCacheTTL) Get(_ context.Context, id string) (*domain.Submission, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[id]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.CacheSize.Set(float64(len(c.index)))
		return nil, false
	}
	c.ll.MoveToFront(elem)

	if c.ttl > 0 {
		ent.expiresAt = c.expiryFrom(now)
	}

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return ent.submission.Clone(), true
}

func (c *LRUCacheTTL) Set(_ context.Context, s *domain.Submission) error {
	if s == nil || s.ID == "" {
		return nil
	}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[s.ID]; ok {
		ent := elem.Value.(*entry)
		ent.submission = s.Clone()
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		id:         s.ID,
		submission: s.Clone(),
		expiresAt:  c.expiryFrom(now),
	})
	c.index[s.ID] = elem
	metrics.CacheSize.Set(float64(len(c.index)))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	return nil
}

// WarmUp — массовая загрузка; прерывается при отмене контекста.
func (c *LRUCacheTTL) WarmUp(ctx context.Context, items []*domain.Submission) error {
	for _, s := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.Set(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// Len — текущее число записей (включая ещё не вычищенные истёкшие).
func (c *LRUCacheTTL) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
