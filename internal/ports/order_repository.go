package ports

import (
	"context"

	"github.com/Gunvolt24/larek/internal/domain"
)

// OrderRepository — хранилище принятых заказов.
type OrderRepository interface {
	Save(ctx context.Context, s *domain.Submission) error
	// GetByID — (nil, nil), если заказа нет.
	GetByID(ctx context.Context, id string) (*domain.Submission, error)
	LastN(ctx context.Context, n int) ([]*domain.Submission, error)
}
