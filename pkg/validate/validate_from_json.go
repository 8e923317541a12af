package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Gunvolt24/larek/internal/domain"
	"github.com/Gunvolt24/larek/internal/ports"
)

// ErrUnknownForm — в записи указан вид формы, для которого нет валидатора.
var ErrUnknownForm = errors.New("unknown form")

// FormRecord — одна отправка формы: вид формы и карта её полей.
type FormRecord struct {
	Form   string          `json:"form"`
	Fields domain.FieldMap `json:"fields"`
}

// FormSet — валидаторы по виду формы.
type FormSet map[string]ports.FormValidator

// DefaultForms — валидаторы обеих форм оформления заказа.
func DefaultForms(paymentMethods ...string) FormSet {
	return FormSet{
		domain.FormOrder: NewOrderInfoValidator(paymentMethods...),
		domain.FormBuyer: NewBuyerInfoValidator(),
	}
}

// ValidateFormFromJSON — строгий разбор одной записи и её валидация.
func ValidateFormFromJSON(ctx context.Context, forms FormSet, raw []byte) (*FormRecord, error) {
	var rec FormRecord
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("invalid json: trailing data")
	}

	validator, ok := forms[rec.Form]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownForm, rec.Form)
	}
	if err := validator.Validate(ctx, rec.Fields); err != nil {
		return nil, err
	}
	return &rec, nil
}
