package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/larek/internal/domain"
	"github.com/Gunvolt24/larek/internal/ports"
)

// Проверка, что OrderRepository удовлетворяет интерфейсу OrderRepository.
var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository — реализация хранилища принятых заказов на Postgres (pgxpool).
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository - конструктор OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository { return &OrderRepository{pool: pool} }

// Save — транзакционно сохраняет заказ (идемпотентный upsert по id, строки заменяются).
func (r *OrderRepository) Save(ctx context.Context, s *domain.Submission) error {
	if s == nil || s.ID == "" {
		return errors.New("submission is empty or id is required")
	}

	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO orders (id, payment, address, email, phone, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				payment = EXCLUDED.payment,
				address = EXCLUDED.address,
				email = EXCLUDED.email,
				phone = EXCLUDED.phone,
				created_at = EXCLUDED.created_at
		`, s.ID, s.Order.Payment, s.Order.Address, s.Buyer.Email, s.Buyer.Phone, s.CreatedAt); err != nil {
			return fmt.Errorf("upsert order: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, s.ID); err != nil {
			return fmt.Errorf("delete items: %w", err)
		}
		if len(s.Items) == 0 {
			return nil
		}
		rows := make([][]any, 0, len(s.Items))
		for i, l := range s.Items {
			rows = append(rows, []any{s.ID, i, l.ProductID, l.Title, l.Price})
		}
		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"order_items"},
			[]string{"order_id", "position", "product_id", "title", "price"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return fmt.Errorf("copy items: %w", err)
		}
		return nil
	})
}

// GetByID — получить заказ по id. Если не нашли (или id не UUID), возвращает (nil, nil).
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	var s domain.Submission
	err = r.pool.QueryRow(ctx, `
		SELECT id::text, payment, address, email, phone, created_at
		FROM orders WHERE id = $1
	`, uid.String()).Scan(&s.ID, &s.Order.Payment, &s.Order.Address, &s.Buyer.Email, &s.Buyer.Phone, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select order: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT product_id, title, price
		FROM order_items WHERE order_id = $1::uuid
		ORDER BY position
	`, s.ID)
	if err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	s.Items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OrderLine, error) {
		var l domain.OrderLine
		err := row.Scan(&l.ProductID, &l.Title, &l.Price)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan items: %w", err)
	}

	return &s, nil
}

// LastN — последние N заказов (для прогрева кэша).
func (r *OrderRepository) LastN(ctx context.Context, n int) ([]*domain.Submission, error) {
	if n <= 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id::text FROM orders
		ORDER BY created_at DESC
		LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("select last ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan ids: %w", err)
	}

	result := make([]*domain.Submission, 0, len(ids))
	for _, id := range ids {
		s, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if s != nil {
			result = append(result, s)
		}
	}
	return result, nil
}
