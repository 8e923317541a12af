package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/Gunvolt24/larek/internal/domain"
	"github.com/Gunvolt24/larek/internal/ports"
	"github.com/Gunvolt24/larek/pkg/metrics"
)

var _ ports.CatalogReader = (*CatalogService)(nil)

var (
	// ErrInvalidCatalog — снимок каталога не разобран или нарушает инвариант preview.
	ErrInvalidCatalog = errors.New("invalid catalog snapshot")
	// ErrUnknownProduct — в запросе id товара, которого нет в каталоге.
	ErrUnknownProduct = errors.New("unknown product")
)

// catalogMessage — формат снимка каталога в топике.
type catalogMessage struct {
	Items   []domain.Product `json:"items"`
	Preview *string          `json:"preview"`
}

// CatalogService — текущий снимок каталога и проекции в корзину.
// Снимок заменяется целиком; читатели никогда не видят частично обновлённый каталог.
type CatalogService struct {
	repo    ports.CatalogRepository
	log     ports.Logger
	current atomic.Pointer[domain.Catalog]
}

// NewCatalogService — DI-конструктор; до Load каталог пуст.
func NewCatalogService(repo ports.CatalogRepository, log ports.Logger) *CatalogService {
	s := &CatalogService{repo: repo, log: log}
	s.current.Store(domain.EmptyCatalog())
	return s
}

// Snapshot — текущий снимок (только для чтения).
func (s *CatalogService) Snapshot() *domain.Catalog { return s.current.Load() }

// Replace — подменить снимок целиком. nil заменяется пустым каталогом.
func (s *CatalogService) Replace(c *domain.Catalog) {
	if c == nil {
		c = domain.EmptyCatalog()
	}
	s.current.Store(c)
	metrics.CatalogSize.Set(float64(c.Len()))
}

func (s *CatalogService) Product(id string) (domain.Product, bool) {
	return s.Snapshot().Product(id)
}

// Basket — проекция товаров в строки корзины в порядке ids.
func (s *CatalogService) Basket(ids []string) ([]domain.BasketEntry, error) {
	snap := s.Snapshot()
	out := make([]domain.BasketEntry, 0, len(ids))
	for _, id := range ids {
		p, ok := snap.Product(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProduct, id)
		}
		out = append(out, domain.ToBasketEntry(p))
	}
	return out, nil
}

// Load — загрузить каталог из хранилища и сделать его текущим.
func (s *CatalogService) Load(ctx context.Context) error {
	c, err := s.repo.Load(ctx)
	if err != nil {
		s.log.Errorf(ctx, "catalog load failed err=%v", err)
		return err
	}
	s.Replace(c)
	s.log.Infof(ctx, "catalog loaded products=%d", c.Len())
	return nil
}

// SaveFromMessage — применить снимок каталога, пришедший из Kafka (raw JSON).
// Шаги:
//  1. строгий парсинг JSON (DisallowUnknownFields);
//  2. цены не отрицательны; сборка domain.Catalog (проверка preview);
//  3. замена снимка в хранилище;
//  4. замена снимка в памяти.
//
// Ошибки шагов 1–2 оборачивают ErrInvalidCatalog: такое сообщение повторять бессмысленно.
func (s *CatalogService) SaveFromMessage(ctx context.Context, raw []byte) error {
	var msg catalogMessage
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&msg); err != nil {
		metrics.CatalogUpdates.WithLabelValues("rejected").Inc()
		s.log.Warnf(ctx, "invalid catalog json err=%v", err)
		return fmt.Errorf("%w: invalid json: %v", ErrInvalidCatalog, err)
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		metrics.CatalogUpdates.WithLabelValues("rejected").Inc()
		s.log.Warnf(ctx, "invalid catalog json: trailing data")
		return fmt.Errorf("%w: invalid json: trailing data", ErrInvalidCatalog)
	}

	if err := checkPrices(msg.Items); err != nil {
		metrics.CatalogUpdates.WithLabelValues("rejected").Inc()
		s.log.Warnf(ctx, "catalog snapshot rejected err=%v", err)
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	c, err := domain.NewCatalog(msg.Items, msg.Preview)
	if err != nil {
		metrics.CatalogUpdates.WithLabelValues("rejected").Inc()
		s.log.Warnf(ctx, "catalog snapshot rejected err=%v", err)
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	if err := s.repo.Replace(ctx, c); err != nil {
		metrics.CatalogUpdates.WithLabelValues("failed").Inc()
		s.log.Errorf(ctx, "catalog repo.Replace failed err=%v", err)
		return fmt.Errorf("failed to store catalog: %w", err)
	}

	s.Replace(c)
	metrics.CatalogUpdates.WithLabelValues("applied").Inc()
	s.log.Infof(ctx, "catalog replaced products=%d", c.Len())
	return nil
}

// checkPrices — цена либо не задана, либо >= 0.
func checkPrices(items []domain.Product) error {
	for _, p := range items {
		if p.Price != nil && *p.Price < 0 {
			return fmt.Errorf("negative price %v for product %q", *p.Price, p.ID)
		}
	}
	return nil
}
