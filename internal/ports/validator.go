package ports

import (
	"context"

	"github.com/Gunvolt24/larek/internal/domain"
)

// FormValidator — проверка карты полей одной формы оформления заказа.
// Реализации чистые: не меняют карту и не выполняют I/O.
type FormValidator interface {
	// CheckValidation — true, если каждое обязательное поле проходит своё правило.
	CheckValidation(fields domain.FieldMap) bool
	// Validate — то же решение в виде ошибки (nil — форма валидна).
	Validate(ctx context.Context, fields domain.FieldMap) error
	// Problems — причины отказа по полям; пустая карта — форма валидна.
	Problems(fields domain.FieldMap) map[string]string
}
