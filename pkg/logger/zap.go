package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/Gunvolt24/larek/internal/ports"
	"github.com/Gunvolt24/larek/pkg/ctxmeta"
)

var _ ports.Logger = (*ZapLogger)(nil)

// ZapLogger — ports.Logger поверх zap; метаданные запроса из ctx попадают в поля записи.
type ZapLogger struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

// NewZapLogger — production (JSON) или development (консоль) конфиг; cleanup делает Sync.
func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	var (
		base *zap.Logger
		err  error
	)
	if isProd {
		base, err = zap.NewProduction()
	} else {
		base, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, nil, err
	}

	l := New(base)
	return l, func() error { return l.base.Sync() }, nil
}

// New — обёртка над готовым *zap.Logger (например, zaptest/observer в тестах).
func New(base *zap.Logger) *ZapLogger {
	return &ZapLogger{base: base, sugar: base.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (z *ZapLogger) with(ctx context.Context) *zap.SugaredLogger {
	if kv := ctxmeta.KeyValues(ctx); len(kv) > 0 {
		return z.sugar.With(kv...)
	}
	return z.sugar
}

func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.with(ctx).Infof(format, args...)
}

func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Warnf(format, args...)
}

func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Errorf(format, args...)
}

func (z *ZapLogger) Base() *zap.Logger { return z.base }
