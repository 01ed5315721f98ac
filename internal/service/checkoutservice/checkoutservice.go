// Package checkoutservice turns a cart into an order in one transaction.
package checkoutservice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/metrics"
	"github.com/GlebRadaev/coursemart/internal/money"
	"github.com/GlebRadaev/coursemart/internal/pg"
	"github.com/GlebRadaev/coursemart/internal/pricing"
	"github.com/GlebRadaev/coursemart/internal/service/ledgerservice"
	"github.com/GlebRadaev/coursemart/internal/service/promoservice"
	"github.com/GlebRadaev/coursemart/internal/service/tenderservice"
)

//go:generate mockgen -source=checkoutservice.go -destination=mock_checkoutservice.go -package=checkoutservice
type CartRepo interface {
	FindByUser(ctx context.Context, userID int64) (*domain.Cart, error)
	LockByUser(ctx context.Context, userID int64) (*domain.Cart, error)
	Clear(ctx context.Context, cartID int64) error
	Touch(ctx context.Context, cartID int64) (int64, error)
}

type CourseReader interface {
	GetCourse(ctx context.Context, id int64) (*domain.Course, error)
}

type AddressReader interface {
	FindAddress(ctx context.Context, id int64) (*domain.Address, error)
}

type OrderRepo interface {
	Create(ctx context.Context, o *domain.Order) error
}

type PurchaseRepo interface {
	Create(ctx context.Context, p *domain.CoursePurchase) error
	HasActive(ctx context.Context, userID, courseID int64) (bool, error)
}

type Promotions interface {
	Validate(ctx context.Context, code string, userID int64, today time.Time) (*domain.Promotion, error)
	Consume(ctx context.Context, p *domain.Promotion, userID int64, orderID, purchaseID *int64) error
}

type Tender interface {
	Prepare(ctx context.Context, userID int64, sel tenderservice.Selection, amount money.Money) (*tenderservice.Prepared, error)
	Execute(ctx context.Context, p *tenderservice.Prepared, key string, orderID int64) (*domain.TenderResult, error)
	Lookup(ctx context.Context, key string) (*domain.TenderResult, error)
}

type Receipts interface {
	Issue(ctx context.Context, order *domain.Order) (*domain.Receipt, error)
}

type Ledger interface {
	Record(ctx context.Context, m ledgerservice.Movement) (*domain.OrganizationTransaction, error)
}

type ActivityLogger interface {
	Log(ctx context.Context, actorID *int64, action, targetType string, targetID int64, details map[string]any) error
}

// Request is one checkout attempt. IdempotencyKey is optional; without it the
// key is derived from the cart snapshot.
type Request struct {
	UserID         int64
	AddressID      *int64
	PromoCode      string
	Tender         tenderservice.Selection
	IdempotencyKey string
}

// Deps groups the collaborators of the checkout transaction.
type Deps struct {
	Carts      CartRepo
	Courses    CourseReader
	Addresses  AddressReader
	Orders     OrderRepo
	Purchases  PurchaseRepo
	Promotions Promotions
	Tender     Tender
	Receipts   Receipts
	Ledger     Ledger
	Activity   ActivityLogger
	TxManager  pg.TXManager
}

type Service struct {
	Deps
	rates pricing.Rates
	group singleflight.Group
	now   func() time.Time
}

func New(deps Deps, rates pricing.Rates) *Service {
	return &Service{
		Deps:  deps,
		rates: rates,
		now:   time.Now,
	}
}

// IdempotencyKey derives the tender key for req against a cart snapshot.
func IdempotencyKey(cart *domain.Cart, req Request) string {
	h := sha256.New()
	if req.IdempotencyKey != "" {
		fmt.Fprintf(h, "client|%d|%s", req.UserID, req.IdempotencyKey)
		return hex.EncodeToString(h.Sum(nil))
	}
	var cartID, version int64
	if cart != nil {
		cartID, version = cart.ID, cart.Version
	}
	fmt.Fprintf(h, "%d|%d|%d", cartID, req.UserID, version)
	if cart != nil {
		for _, l := range cart.Lines {
			fmt.Fprintf(h, "|%d:%d:%s", l.CourseID, l.Quantity, l.CapturedUnitPrice)
		}
	}
	fmt.Fprintf(h, "|%s|%s|", promoservice.NormalizeCode(req.PromoCode), req.Tender.Method)
	if req.Tender.CardID != nil {
		_, _ = io.WriteString(h, strconv.FormatInt(*req.Tender.CardID, 10))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Checkout places an order for the user's cart and returns its id. Identical
// concurrent attempts in this process share one execution; across processes
// the cart row lock and the tender key decide.
func (s *Service) Checkout(ctx context.Context, req Request) (int64, error) {
	snapshot, err := s.Carts.FindByUser(ctx, req.UserID)
	if err != nil {
		return 0, err
	}
	key := IdempotencyKey(snapshot, req)
	var version int64
	if snapshot != nil {
		version = snapshot.Version
	}

	v, err, shared := s.group.Do(key, func() (any, error) {
		return s.checkout(ctx, req, key, version)
	})
	if shared {
		zap.L().Debug("checkout collapsed with a concurrent attempt", zap.Int64("userID", req.UserID))
	}
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

func (s *Service) checkout(ctx context.Context, req Request, key string, version int64) (orderID int64, err error) {
	started := s.now()
	defer func() {
		metrics.CheckoutTotal.WithLabelValues(string(req.Tender.Method), metrics.Result(err)).Inc()
		metrics.CheckoutDuration.Observe(time.Since(started).Seconds())
	}()
	if !req.Tender.Method.Valid() {
		return 0, fmt.Errorf("%w: payment method %q", domain.ErrInvalidInput, req.Tender.Method)
	}

	attempt := uuid.NewString()
	var order *domain.Order
	err = s.TxManager.Begin(ctx, func(ctx context.Context) error {
		cart, err := s.Carts.LockByUser(ctx, req.UserID)
		if err != nil {
			return err
		}
		prior, err := s.Tender.Lookup(ctx, key)
		if err != nil {
			return err
		}
		if prior != nil {
			orderID = prior.OrderID
			return nil
		}
		if cart.Empty() {
			return domain.ErrCartEmpty
		}
		if cart.Version != version {
			return domain.ErrCartModified
		}

		order, err = s.place(ctx, req, cart, key, attempt)
		if err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		zap.L().Info("checkout failed", zap.Int64("userID", req.UserID), zap.String("attempt", attempt), zap.Error(err))
		return 0, err
	}
	if order != nil {
		zap.L().Info("checkout completed",
			zap.Int64("userID", req.UserID),
			zap.Int64("orderID", order.ID),
			zap.String("method", string(order.PaymentMethod)),
			zap.Stringer("total", order.Total),
			zap.String("attempt", attempt))
	}
	return orderID, nil
}

// place runs steps after the cart lock: re-materialize, price, pay, and record.
func (s *Service) place(ctx context.Context, req Request, cart *domain.Cart, key, attempt string) (*domain.Order, error) {
	today := s.now()

	lines := make([]pricing.Line, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		course, err := s.Courses.GetCourse(ctx, l.CourseID)
		if err != nil {
			return nil, err
		}
		if course == nil || !course.Available {
			return nil, fmt.Errorf("%w: course %d", domain.ErrCourseUnavailable, l.CourseID)
		}
		owned, err := s.Purchases.HasActive(ctx, req.UserID, l.CourseID)
		if err != nil {
			return nil, err
		}
		if owned {
			return nil, fmt.Errorf("%w: course %d", domain.ErrAlreadyPurchased, l.CourseID)
		}
		lines = append(lines, pricing.Line{
			CourseID:  l.CourseID,
			Title:     course.Title,
			Quantity:  l.Quantity,
			UnitPrice: l.CapturedUnitPrice,
		})
	}

	if req.AddressID != nil {
		addr, err := s.Addresses.FindAddress(ctx, *req.AddressID)
		if err != nil {
			return nil, err
		}
		if addr == nil || addr.UserID != req.UserID {
			return nil, domain.ErrInvalidAddress
		}
	}

	var promo *domain.Promotion
	if code := promoservice.NormalizeCode(req.PromoCode); code != "" {
		var err error
		if promo, err = s.Promotions.Validate(ctx, code, req.UserID, today); err != nil {
			return nil, err
		}
	}

	quote, err := pricing.Calculate(lines, promo, today, s.rates)
	if err != nil {
		return nil, err
	}

	prepared, err := s.Tender.Prepare(ctx, req.UserID, req.Tender, quote.Total)
	if err != nil {
		return nil, err
	}

	order := newOrder(req, quote, prepared, promo)
	if err := s.Orders.Create(ctx, order); err != nil {
		return nil, err
	}
	if _, err := s.Tender.Execute(ctx, prepared, key, order.ID); err != nil {
		return nil, err
	}

	purchases, err := s.grant(ctx, req, order, quote)
	if err != nil {
		return nil, err
	}

	if _, err := s.Receipts.Issue(ctx, order); err != nil {
		return nil, err
	}

	if !order.PaymentMethod.Deferred() {
		_, err := s.Ledger.Record(ctx, ledgerservice.Movement{
			Type:      domain.LedgerOrderPayment,
			Amount:    order.Total,
			TaxSplit:  order.ProfitTaxAmount,
			OrderID:   &order.ID,
			CreatedBy: &req.UserID,
			Memo:      fmt.Sprintf("order %d", order.ID),
		})
		if err != nil {
			return nil, err
		}
	}

	if promo != nil {
		if err := s.Promotions.Consume(ctx, promo, req.UserID, &order.ID, &purchases[0].ID); err != nil {
			return nil, err
		}
	}

	if err := s.Carts.Clear(ctx, cart.ID); err != nil {
		return nil, err
	}
	if _, err := s.Carts.Touch(ctx, cart.ID); err != nil {
		return nil, err
	}

	err = s.Activity.Log(ctx, &req.UserID, domain.ActivityOrderCreated, "order", order.ID, map[string]any{
		"total":   order.Total.String(),
		"method":  string(order.PaymentMethod),
		"attempt": attempt,
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func newOrder(req Request, q pricing.Quote, prepared *tenderservice.Prepared, promo *domain.Promotion) *domain.Order {
	status := domain.OrderStatusPaid
	if req.Tender.Method.Deferred() {
		status = domain.OrderStatusProcessing
	}
	order := &domain.Order{
		UserID:          req.UserID,
		AddressID:       req.AddressID,
		Status:          status,
		PaymentMethod:   req.Tender.Method,
		CardID:          prepared.CardID(),
		PaidFromBalance: req.Tender.Method == domain.PaymentBalance,
		Subtotal:        q.Subtotal,
		DiscountAmount:  q.DiscountAmount,
		DeliveryCost:    q.DeliveryCost,
		VATAmount:       q.VATAmount,
		ProfitTaxAmount: q.ProfitTaxAmount,
		Total:           q.Total,
		VATRate:         q.VATRate,
		TaxRate:         q.ProfitTaxRate,
		CanBeCancelled:  true,
	}
	if promo != nil {
		order.PromotionID = &promo.ID
	}
	for _, l := range q.Lines {
		order.Items = append(order.Items, domain.OrderItem{
			CourseID:  l.CourseID,
			Title:     l.Title,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.Subtotal,
		})
	}
	return order
}

// grant creates one purchase per line; it is what gives access to the course.
func (s *Service) grant(ctx context.Context, req Request, order *domain.Order, q pricing.Quote) ([]domain.CoursePurchase, error) {
	status := domain.PurchaseCompleted
	var completedAt *time.Time
	if order.PaymentMethod.Deferred() {
		status = domain.PurchasePending
	} else {
		now := s.now()
		completedAt = &now
	}
	purchases := make([]domain.CoursePurchase, 0, len(q.Lines))
	for _, l := range q.Lines {
		p := domain.CoursePurchase{
			UserID:        req.UserID,
			CourseID:      l.CourseID,
			OrderID:       &order.ID,
			Amount:        l.Allocation,
			TaxShare:      l.TaxShare,
			PaymentMethod: order.PaymentMethod,
			Status:        status,
			CompletedAt:   completedAt,
		}
		if err := s.Purchases.Create(ctx, &p); err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, nil
}
