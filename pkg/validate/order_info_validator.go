package validate

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Gunvolt24/larek/internal/domain"
	"github.com/Gunvolt24/larek/internal/ports"
)

// Проверка, что OrderInfoValidator удовлетворяет интерфейсу FormValidator.
var _ ports.FormValidator = (*OrderInfoValidator)(nil)

// ErrInvalidOrderInfo — базовая (sentinel error) ошибка валидации первого шага.
var ErrInvalidOrderInfo = errors.New("order info validation failed")

var orderRules = []fieldRule{
	{name: domain.FieldPayment, tag: "required"},
	{name: domain.FieldAdress, tag: "required"},
}

// OrderInfoValidator — валидатор формы «способ оплаты + адрес».
type OrderInfoValidator struct {
	methods []string
}

// NewOrderInfoValidator — конструктор. Если methods не пуст, payment
// должен совпадать с одним из них; иначе достаточно непустого значения.
func NewOrderInfoValidator(methods ...string) *OrderInfoValidator {
	v := &OrderInfoValidator{}
	for _, m := range methods {
		if m = strings.TrimSpace(m); m != "" {
			v.methods = append(v.methods, m)
		}
	}
	return v
}

// CheckValidation — true, если оба поля прошли проверку.
func (v *OrderInfoValidator) CheckValidation(fields domain.FieldMap) bool {
	return len(v.Problems(fields)) == 0
}

// Validate — возвращает ErrInvalidOrderInfo (с перечнем полей) при любой проблеме.
func (v *OrderInfoValidator) Validate(_ context.Context, fields domain.FieldMap) error {
	if problems := v.Problems(fields); len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidOrderInfo, describe(orderRules, problems))
	}
	return nil
}

// Problems — причины отказа по полям.
func (v *OrderInfoValidator) Problems(fields domain.FieldMap) map[string]string {
	problems := checkFields(orderRules, fields)
	if _, failed := problems[domain.FieldPayment]; !failed && len(v.methods) > 0 {
		if !slices.Contains(v.methods, strings.TrimSpace(fields[domain.FieldPayment])) {
			problems[domain.FieldPayment] = "неизвестный способ оплаты"
		}
	}
	return problems
}
