package ports

import (
	"context"

	"github.com/Gunvolt24/larek/internal/domain"
)

// CatalogRepository — хранилище снимка каталога.
type CatalogRepository interface {
	Load(ctx context.Context) (*domain.Catalog, error)
	// Replace — атомарная замена всего снимка.
	Replace(ctx context.Context, c *domain.Catalog) error
}
