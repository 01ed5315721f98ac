package receiptservice

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
)

//go:generate mockgen -source=receiptservice.go -destination=mock_receiptservice.go -package=receiptservice
type Repo interface {
	Create(ctx context.Context, rc *domain.Receipt) error
	FindByOrder(ctx context.Context, orderID int64) (*domain.Receipt, error)
	LockByOrder(ctx context.Context, orderID int64) (*domain.Receipt, error)
	Annul(ctx context.Context, id int64, at time.Time) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Receipt, error)
	GetConfig(ctx context.Context) (*domain.ReceiptConfig, error)
}

type SequenceAllocator interface {
	NextReceiptSequence(ctx context.Context) (int64, error)
}

type OrderReader interface {
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
}

type Service struct {
	repo     Repo
	sequence SequenceAllocator
	orders   OrderReader
	now      func() time.Time
}

func New(repo Repo, sequence SequenceAllocator, orders OrderReader) *Service {
	return &Service{
		repo:     repo,
		sequence: sequence,
		orders:   orders,
		now:      time.Now,
	}
}

// Issue writes the receipt for a freshly created order. It must run inside
// the checkout transaction so the sequence number and the receipt commit together.
func (s *Service) Issue(ctx context.Context, order *domain.Order) (*domain.Receipt, error) {
	seq, err := s.sequence.NextReceiptSequence(ctx)
	if err != nil {
		return nil, err
	}
	rc := &domain.Receipt{
		OrderID:        order.ID,
		SequenceNumber: seq,
		Status:         domain.ReceiptExecuted,
		PaymentMethod:  order.PaymentMethod,
		Subtotal:       order.Subtotal,
		DiscountAmount: order.DiscountAmount,
		DeliveryCost:   order.DeliveryCost,
		VATAmount:      order.VATAmount,
		VATRate:        order.VATRate,
		Total:          order.Total,
	}
	for _, it := range order.Items {
		rc.Items = append(rc.Items, domain.ReceiptItem{
			CourseID:  it.CourseID,
			Title:     it.Title,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	if err := s.repo.Create(ctx, rc); err != nil {
		zap.L().Error("failed to issue receipt", zap.Int64("orderID", order.ID), zap.Error(err))
		return nil, err
	}
	return rc, nil
}

// Annul marks the order's receipt annulled; a second call fails.
func (s *Service) Annul(ctx context.Context, orderID int64) (*domain.Receipt, error) {
	rc, err := s.repo.LockByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if rc == nil {
		return nil, fmt.Errorf("%w: receipt for order %d", domain.ErrNotFound, orderID)
	}
	if rc.Status == domain.ReceiptAnnulled {
		return nil, domain.ErrReceiptAlreadyAnnulled
	}
	at := s.now()
	if err := s.repo.Annul(ctx, rc.ID, at); err != nil {
		return nil, err
	}
	rc.Status = domain.ReceiptAnnulled
	rc.AnnulledAt = &at
	return rc, nil
}

// Get returns the receipt with the seller details attached.
func (s *Service) Get(ctx context.Context, actor domain.Actor, orderID int64) (*domain.Receipt, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.UserID != actor.UserID && !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	rc, err := s.repo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if rc == nil {
		return nil, domain.ErrNotFound
	}
	if rc.Config, err = s.repo.GetConfig(ctx); err != nil {
		return nil, err
	}
	return rc, nil
}

// ListForUser returns the user's receipts, annulled ones included, newest first.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]domain.Receipt, error) {
	receipts, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(receipts) == 0 {
		return receipts, nil
	}
	cfg, err := s.repo.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	for i := range receipts {
		receipts[i].Config = cfg
	}
	return receipts, nil
}
