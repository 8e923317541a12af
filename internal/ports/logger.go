package ports

import "context"

// Logger — логгер сервисов и транспорта; метаданные запроса берутся из ctx.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}
