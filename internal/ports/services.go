package ports

import (
	"context"

	"github.com/Gunvolt24/larek/internal/domain"
)

// CatalogReader — чтение каталога для транспортного слоя.
type CatalogReader interface {
	Snapshot() *domain.Catalog
	Product(id string) (domain.Product, bool)
	Basket(ids []string) ([]domain.BasketEntry, error)
}

// CheckoutService — шаги оформления заказа для транспортного слоя.
type CheckoutService interface {
	CheckOrderInfo(ctx context.Context, fields domain.FieldMap) (bool, map[string]string)
	CheckBuyerInfo(ctx context.Context, fields domain.FieldMap) (bool, map[string]string)
	PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest) (*domain.Submission, error)
	GetOrder(ctx context.Context, id string) (*domain.Submission, error)
}
