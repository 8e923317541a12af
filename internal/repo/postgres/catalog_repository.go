package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/larek/internal/domain"
	"github.com/Gunvolt24/larek/internal/ports"
)

var _ ports.CatalogRepository = (*CatalogRepository)(nil)

// catalogReplaceLock — ключ advisory-блокировки замены каталога.
const catalogReplaceLock int64 = 0x6c6172656b

// CatalogRepository — снимок каталога в Postgres (pgxpool).
type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// Load — читает товары в исходном порядке и preview; собирает domain.Catalog.
func (r *CatalogRepository) Load(ctx context.Context) (*domain.Catalog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, description, image, title, category, price
		FROM products
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Product, error) {
		var p domain.Product
		err := row.Scan(&p.ID, &p.Description, &p.Image, &p.Title, &p.Category, &p.Price)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}

	var preview *string
	err = r.pool.QueryRow(ctx, `SELECT product_id FROM catalog_preview WHERE id = 1`).Scan(&preview)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("select preview: %w", err)
	}

	return domain.NewCatalog(products, preview)
}

// Replace — транзакционно заменяет весь каталог: DELETE + COPY + upsert preview.
func (r *CatalogRepository) Replace(ctx context.Context, c *domain.Catalog) error {
	if c == nil {
		return errors.New("catalog is nil")
	}

	// повторяющиеся id в каталоге допустимы, в таблице — нет: пишем первое вхождение
	products := c.All()
	seen := make(map[string]struct{}, len(products))
	rows := make([][]any, 0, len(products))
	for i, p := range products {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		rows = append(rows, []any{p.ID, i, p.Title, p.Description, p.Image, p.Category, p.Price})
	}

	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		// снимок пишут все инстансы сразу: DELETE + COPY по очереди
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, catalogReplaceLock); err != nil {
			return fmt.Errorf("lock catalog: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM catalog_preview`); err != nil {
			return fmt.Errorf("delete preview: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM products`); err != nil {
			return fmt.Errorf("delete products: %w", err)
		}
		if len(rows) > 0 {
			if _, err := tx.CopyFrom(ctx,
				pgx.Identifier{"products"},
				[]string{"id", "position", "title", "description", "image", "category", "price"},
				pgx.CopyFromRows(rows),
			); err != nil {
				return fmt.Errorf("copy products: %w", err)
			}
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO catalog_preview (id, product_id) VALUES (1, $1)
		`, c.Preview()); err != nil {
			return fmt.Errorf("insert preview: %w", err)
		}
		return nil
	})
}
