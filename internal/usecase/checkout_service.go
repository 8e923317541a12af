package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Gunvolt24/larek/internal/domain"
	"github.com/Gunvolt24/larek/internal/ports"
	"github.com/Gunvolt24/larek/pkg/metrics"
)

var _ ports.CheckoutService = (*CheckoutService)(nil)

var (
	// ErrEmptyBasket — заказ без товаров.
	ErrEmptyBasket = errors.New("basket is empty")
	// ErrNotForSale — у товара нет цены, купить его нельзя.
	ErrNotForSale = errors.New("product is not for sale")
)

// CheckoutService — шаги оформления заказа (без знаний о транспорте).
type CheckoutService struct {
	catalog   ports.CatalogReader
	orderForm ports.FormValidator
	buyerForm ports.FormValidator
	repo      ports.OrderRepository
	cache     ports.OrderCache
	publisher ports.OrderPublisher // может быть nil — события не публикуются
	log       ports.Logger

	now   func() time.Time
	newID func() string
}

// NewCheckoutService — DI-конструктор.
func NewCheckoutService(
	catalog ports.CatalogReader,
	orderForm ports.FormValidator,
	buyerForm ports.FormValidator,
	repo ports.OrderRepository,
	cache ports.OrderCache,
	publisher ports.OrderPublisher,
	log ports.Logger,
) *CheckoutService {
	return &CheckoutService{
		catalog:   catalog,
		orderForm: orderForm,
		buyerForm: buyerForm,
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// CheckOrderInfo — проверка первого шага (оплата + адрес).
func (s *CheckoutService) CheckOrderInfo(_ context.Context, fields domain.FieldMap) (bool, map[string]string) {
	problems := s.orderForm.Problems(fields)
	ok := len(problems) == 0
	countValidation(domain.FormOrder, ok)
	return ok, problems
}

// CheckBuyerInfo — проверка второго шага (email + телефон).
func (s *CheckoutService) CheckBuyerInfo(_ context.Context, fields domain.FieldMap) (bool, map[string]string) {
	problems := s.buyerForm.Problems(fields)
	ok := len(problems) == 0
	countValidation(domain.FormBuyer, ok)
	return ok, problems
}

// PlaceOrder — принять заказ.
// Шаги:
//  1. валидация обеих форм (ошибки оборачивают sentinel-ошибки валидаторов);
//  2. разрешение id товаров по одному снимку каталога;
//  3. сохранение в БД;
//  4. кэш и публикация события (ошибки только логируются).
func (s *CheckoutService) PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest) (*domain.Submission, error) {
	orderFields, buyerFields := req.OrderFields(), req.BuyerFields()

	if err := s.orderForm.Validate(ctx, orderFields); err != nil {
		countValidation(domain.FormOrder, false)
		s.log.Warnf(ctx, "place order rejected: %v", err)
		return nil, err
	}
	if err := s.buyerForm.Validate(ctx, buyerFields); err != nil {
		countValidation(domain.FormBuyer, false)
		s.log.Warnf(ctx, "place order rejected: %v", err)
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyBasket
	}

	snap := s.catalog.Snapshot()
	lines := make([]domain.OrderLine, 0, len(req.Items))
	for _, id := range req.Items {
		p, ok := snap.Product(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProduct, id)
		}
		if !p.HasPrice() {
			return nil, fmt.Errorf("%w: %q", ErrNotForSale, id)
		}
		lines = append(lines, domain.OrderLine{ProductID: p.ID, BasketEntry: domain.ToBasketEntry(p)})
	}

	sub := &domain.Submission{
		ID:        s.newID(),
		Order:     domain.OrderInfoFromFields(orderFields),
		Buyer:     domain.BuyerInfoFromFields(buyerFields),
		Items:     lines,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Save(ctx, sub); err != nil {
		s.log.Errorf(ctx, "repo.Save failed id=%s err=%v", sub.ID, err)
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	if err := s.cache.Set(ctx, sub); err != nil {
		s.log.Warnf(ctx, "cache.Set failed id=%s err=%v", sub.ID, err)
	}
	if s.publisher != nil {
		if err := s.publisher.PublishOrderPlaced(ctx, sub); err != nil {
			s.log.Warnf(ctx, "publish order placed failed id=%s err=%v", sub.ID, err)
		}
	}

	metrics.OrdersPlaced.Inc()
	s.log.Infof(ctx, "order placed id=%s items=%d", sub.ID, len(sub.Items))
	return sub, nil
}

// GetOrder — получить заказ по id: сначала из кэша, при промахе — из БД с записью в кэш.
// Возвращает (nil, nil), если записи нет.
func (s *CheckoutService) GetOrder(ctx context.Context, id string) (*domain.Submission, error) {
	if sub, found := s.cache.Get(ctx, id); found {
		return sub, nil
	}

	start := time.Now()
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Errorf(ctx, "repo.GetByID failed id=%s err=%v", id, err)
		return nil, err
	}
	if sub != nil {
		if setErr := s.cache.Set(ctx, sub); setErr != nil {
			s.log.Warnf(ctx, "cache.Set failed id=%s err=%v", id, setErr)
		}
	}

	s.log.Infof(ctx, "db fetch order id=%s took=%s", id, time.Since(start))
	return sub, nil
}

// WarmUpCache — прогрев кэша последними N заказами из БД.
// Если n <= 0, прогрев не выполняется (но это не ошибка).
func (s *CheckoutService) WarmUpCache(ctx context.Context, n int) error {
	if n <= 0 {
		s.log.Warnf(ctx, "cache warm-up skipped: n <= 0 (n=%d)", n)
		return nil
	}

	start := time.Now()
	list, err := s.repo.LastN(ctx, n)
	if err != nil {
		s.log.Errorf(ctx, "repo.LastN failed n=%d err=%v", n, err)
		return err
	}
	if warmUpErr := s.cache.WarmUp(ctx, list); warmUpErr != nil {
		s.log.Warnf(ctx, "cache.WarmUp failed err=%v", warmUpErr)
	}
	s.log.Infof(ctx, "cache warmed with %d orders in %s", len(list), time.Since(start))
	return nil
}

func countValidation(form string, ok bool) {
	result := "invalid"
	if ok {
		result = "valid"
	}
	metrics.FormValidations.WithLabelValues(form, result).Inc()
}
