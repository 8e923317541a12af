package validate

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/larek/internal/domain"
	"github.com/Gunvolt24/larek/internal/ports"
)

var _ ports.FormValidator = (*BuyerInfoValidator)(nil)

// ErrInvalidBuyerInfo — базовая ошибка валидации контактов покупателя.
var ErrInvalidBuyerInfo = errors.New("buyer info validation failed")

var buyerRules = []fieldRule{
	{name: domain.FieldEmail, tag: "required,email,email_host"},
	{name: domain.FieldPhone, tag: "required,phone"},
}

// BuyerInfoValidator — валидатор формы «email + телефон».
type BuyerInfoValidator struct{}

func NewBuyerInfoValidator() *BuyerInfoValidator { return &BuyerInfoValidator{} }

func (v *BuyerInfoValidator) CheckValidation(fields domain.FieldMap) bool {
	return len(v.Problems(fields)) == 0
}

func (v *BuyerInfoValidator) Validate(_ context.Context, fields domain.FieldMap) error {
	if problems := v.Problems(fields); len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidBuyerInfo, describe(buyerRules, problems))
	}
	return nil
}

func (v *BuyerInfoValidator) Problems(fields domain.FieldMap) map[string]string {
	return checkFields(buyerRules, fields)
}
