package ports

import "context"

// MessageConsumer — фоновый читатель снимков каталога.
// Run блокируется до отмены ctx; Close можно вызывать повторно.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
