package ports

import (
	"context"

	"github.com/Gunvolt24/larek/internal/domain"
)

// OrderCache — интерфейс кэша принятых заказов.
// Требования к реализации: потокобезопасность; доступ по ключу не хуже O(1); возврат копий сущности.
type OrderCache interface {
	// Get — вернуть заказ по id; (s, true) при попадании, (nil, false) при промахе/истечении.
	Get(ctx context.Context, id string) (*domain.Submission, bool)

	// Set — сохранить/обновить заказ в кэше.
	Set(ctx context.Context, s *domain.Submission) error

	// WarmUp — массовая загрузка кэша (например, при старте).
	WarmUp(ctx context.Context, list []*domain.Submission) error
}
