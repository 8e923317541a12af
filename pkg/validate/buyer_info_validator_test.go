package validate_test

import (
	"context"
	"errors"
	"maps"
	"sync"
	"testing"

	"github.com/Gunvolt24/larek/internal/domain"
	"github.com/Gunvolt24/larek/pkg/validate"
)

func TestBuyerInfoValidator_TruthTable(t *testing.T) {
	v := validate.NewBuyerInfoValidator()

	cases := []struct {
		name   string
		fields domain.FieldMap
		want   bool
	}{
		{"valid", domain.FieldMap{"email": "a@b.com", "phone": "+1234567890"}, true},
		{"formatted phone", domain.FieldMap{"email": "user@example.org", "phone": "+7 (999) 123-45-67"}, true},
		{"not an email", domain.FieldMap{"email": "not-an-email", "phone": "+1234567890"}, false},
		{"host without dot", domain.FieldMap{"email": "a@localhost", "phone": "+1234567890"}, false},
		{"host trailing dot", domain.FieldMap{"email": "a@b.", "phone": "+1234567890"}, false},
		{"empty email", domain.FieldMap{"email": "", "phone": "+1234567890"}, false},
		{"absent phone", domain.FieldMap{"email": "a@b.com"}, false},
		{"short phone", domain.FieldMap{"email": "a@b.com", "phone": "12345"}, false},
		{"too long phone", domain.FieldMap{"email": "a@b.com", "phone": "+1234567890123456"}, false},
		{"letters in phone", domain.FieldMap{"email": "a@b.com", "phone": "+12345abc90"}, false},
		{"plus in middle", domain.FieldMap{"email": "a@b.com", "phone": "12345+67890"}, false},
		{"tab in phone", domain.FieldMap{"email": "a@b.com", "phone": "123\t456 7890"}, false},
		{"newline in phone", domain.FieldMap{"email": "a@b.com", "phone": "123\t456\n7890"}, false},
		{"whitespace only", domain.FieldMap{"email": "   ", "phone": "   "}, false},
		{"empty map", domain.FieldMap{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := v.CheckValidation(tc.fields); got != tc.want {
				t.Fatalf("CheckValidation(%v) = %v, want %v", tc.fields, got, tc.want)
			}
			err := v.Validate(context.Background(), tc.fields)
			if !tc.want && !errors.Is(err, validate.ErrInvalidBuyerInfo) {
				t.Fatalf("expected ErrInvalidBuyerInfo, got %v", err)
			}
		})
	}
}

func TestBuyerInfoValidator_Problems(t *testing.T) {
	v := validate.NewBuyerInfoValidator()

	p := v.Problems(domain.FieldMap{"email": "nope", "phone": ""})
	if p["email"] != "некорректен" || p["phone"] != "обязателен" || len(p) != 2 {
		t.Fatalf("unexpected problems: %v", p)
	}

	if p := v.Problems(domain.FieldMap{"email": "a@b.com", "phone": "8 800 555 35 35"}); len(p) != 0 {
		t.Fatalf("expected no problems, got %v", p)
	}
}

func TestBuyerInfoValidator_ConcurrentAndPure(t *testing.T) {
	v := validate.NewBuyerInfoValidator()
	in := domain.FieldMap{"email": "a@b.com", "phone": "+1234567890"}
	snapshot := maps.Clone(in)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !v.CheckValidation(in) {
				t.Error("expected valid")
			}
		}()
	}
	wg.Wait()

	if !maps.Equal(in, snapshot) {
		t.Fatalf("input mutated: %v", in)
	}
}
