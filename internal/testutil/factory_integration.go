//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/Gunvolt24/larek/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeCatalog — каталог из n товаров (у каждого второго нет цены), preview — первый товар.
func MakeCatalog(n int) *domain.Catalog {
	products := make([]domain.Product, 0, n)
	for i := 0; i < n; i++ {
		p := domain.Product{
			ID:          "p-" + UniqSuffix(),
			Title:       "Товар " + UniqSuffix(),
			Description: "описание",
			Image:       "/img/" + UniqSuffix() + ".svg",
			Category:    "софт-скил",
		}
		if i%2 == 0 {
			p.Price = domain.PriceOf(float64(100 * (i + 1)))
		}
		products = append(products, p)
	}

	var preview *string
	if n > 0 {
		id := products[0].ID
		preview = &id
	}

	c, err := domain.NewCatalog(products, preview)
	if err != nil {
		panic(err) // preview берётся из products
	}
	return c
}

// MakeSubmission — валидный принятый заказ; опции переопределяют поля.
func MakeSubmission(opts ...func(*domain.Submission)) *domain.Submission {
	s := &domain.Submission{
		ID:        uuid.NewString(),
		Order:     domain.OrderInfo{Payment: "card", Address: "Main st 1"},
		Buyer:     domain.BuyerInfo{Email: "john@example.com", Phone: "+7 (999) 123-45-67"},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		Items: []domain.OrderLine{{
			ProductID:   "p-" + UniqSuffix(),
			BasketEntry: domain.BasketEntry{Title: "Widget", Price: domain.PriceOf(750)},
		}},
	}
	for _, fn := range opts {
		fn(s)
	}
	return s
}

func WithCreatedAt(t time.Time) func(*domain.Submission) {
	return func(s *domain.Submission) { s.CreatedAt = t.UTC().Truncate(time.Millisecond) }
}

func WithLines(n int) func(*domain.Submission) {
	return func(s *domain.Submission) {
		s.Items = make([]domain.OrderLine, 0, n)
		for i := 0; i < n; i++ {
			s.Items = append(s.Items, domain.OrderLine{
				ProductID:   "p-" + UniqSuffix(),
				BasketEntry: domain.BasketEntry{Title: "Item", Price: domain.PriceOf(float64(10 * (i + 1)))},
			})
		}
	}
}
