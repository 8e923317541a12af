package ports

import (
	"context"

	"github.com/Gunvolt24/larek/internal/domain"
)

// OrderPublisher — публикация события о принятом заказе.
type OrderPublisher interface {
	PublishOrderPlaced(ctx context.Context, s *domain.Submission) error
	Close() error
}
