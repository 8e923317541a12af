package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Gunvolt24/larek/config"
	cachemem "github.com/Gunvolt24/larek/internal/cache/memory"
)

type discardLogger struct{}

func (discardLogger) Infof(context.Context, string, ...any)  {}
func (discardLogger) Warnf(context.Context, string, ...any)  {}
func (discardLogger) Errorf(context.Context, string, ...any) {}

func TestNewOrderCache_Memory(t *testing.T) {
	c, closeFn := newOrderCache(context.Background(), config.Cache{
		Backend:  config.CacheMemory,
		Capacity: 10,
		TTL:      time.Minute,
	}, discardLogger{})
	defer closeFn()

	assert.IsType(t, &cachemem.LRUCacheTTL{}, c)
}

func TestNewOrderCache_RedisDown_FallsBackToMemory(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	c, closeFn := newOrderCache(ctx, config.Cache{
		Backend:   config.CacheRedis,
		Capacity:  10,
		RedisAddr: "127.0.0.1:1",
	}, discardLogger{})
	defer closeFn()

	assert.IsType(t, &cachemem.LRUCacheTTL{}, c)
}
