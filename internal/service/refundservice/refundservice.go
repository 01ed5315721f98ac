// Package refundservice reverses what checkout created: whole-order
// cancellations and per-course refunds, plus the back-office confirmation
// of cash payments.
package refundservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/metrics"
	"github.com/GlebRadaev/coursemart/internal/pg"
	"github.com/GlebRadaev/coursemart/internal/service/ledgerservice"
	"github.com/GlebRadaev/coursemart/internal/service/tenderservice"
)

//go:generate mockgen -source=refundservice.go -destination=mock_refundservice.go -package=refundservice
type OrderRepo interface {
	LockByID(ctx context.Context, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, canBeCancelled bool) error
	DisableCancel(ctx context.Context, id int64) error
}

type PurchaseRepo interface {
	FindByID(ctx context.Context, id int64) (*domain.CoursePurchase, error)
	LockByID(ctx context.Context, id int64) (*domain.CoursePurchase, error)
	ListByOrder(ctx context.Context, orderID int64) ([]domain.CoursePurchase, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PurchaseStatus, completedAt *time.Time) error
}

type RefundRepo interface {
	Create(ctx context.Context, rr *domain.CourseRefundRequest) error
	LockByID(ctx context.Context, id int64) (*domain.CourseRefundRequest, error)
	HasPending(ctx context.Context, purchaseID int64) (bool, error)
	Resolve(ctx context.Context, id int64, status domain.RefundStatus, processedBy *int64, at time.Time) error
	List(ctx context.Context, status domain.RefundStatus) ([]domain.CourseRefundRequest, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.CourseRefundRequest, error)
}

type Receipts interface {
	Annul(ctx context.Context, orderID int64) (*domain.Receipt, error)
}

type Tender interface {
	Refund(ctx context.Context, c tenderservice.Credit) error
}

type Ledger interface {
	Record(ctx context.Context, m ledgerservice.Movement) (*domain.OrganizationTransaction, error)
}

type ActivityLogger interface {
	Log(ctx context.Context, actorID *int64, action, targetType string, targetID int64, details map[string]any) error
}

type Deps struct {
	Orders    OrderRepo
	Purchases PurchaseRepo
	Refunds   RefundRepo
	Receipts  Receipts
	Tender    Tender
	Ledger    Ledger
	Activity  ActivityLogger
	TxManager pg.TXManager
}

type Service struct {
	Deps
	now func() time.Time
}

func New(deps Deps) *Service {
	return &Service{Deps: deps, now: time.Now}
}

func cancellable(o *domain.Order) bool {
	if !o.CanBeCancelled {
		return false
	}
	return o.Status == domain.OrderStatusProcessing || o.Status == domain.OrderStatusPaid
}

// CancelOrder annuls the receipt, revokes every purchase of the order and,
// when money was taken, credits it back and reverses the ledger entry with the
// same split used at purchase.
func (s *Service) CancelOrder(ctx context.Context, actor domain.Actor, orderID int64) (order *domain.Order, err error) {
	defer func() {
		metrics.RefundTotal.WithLabelValues("order", metrics.Result(err)).Inc()
	}()

	err = s.TxManager.Begin(ctx, func(ctx context.Context) error {
		order, err = s.Orders.LockByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.UserID != actor.UserID && !actor.IsStaff() {
			return domain.ErrForbidden
		}
		if !cancellable(order) {
			return domain.ErrOrderNotCancellable
		}

		if _, err := s.Receipts.Annul(ctx, order.ID); err != nil {
			return err
		}
		purchases, err := s.Purchases.ListByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		for _, p := range purchases {
			if p.Status == domain.PurchaseRefunded {
				continue
			}
			if err := s.Purchases.UpdateStatus(ctx, p.ID, domain.PurchaseRefunded, nil); err != nil {
				return err
			}
		}

		// Unconfirmed cash orders took no money.
		if order.Status == domain.OrderStatusPaid {
			err = s.Tender.Refund(ctx, tenderservice.Credit{
				UserID:      order.UserID,
				Method:      order.PaymentMethod,
				CardID:      order.CardID,
				Amount:      order.Total,
				OrderID:     &order.ID,
				Type:        domain.BalanceOrderRefund,
				Description: fmt.Sprintf("refund of order %d", order.ID),
			})
			if err != nil {
				return err
			}
			_, err = s.Ledger.Record(ctx, ledgerservice.Movement{
				Type:      domain.LedgerOrderRefund,
				Amount:    order.Total,
				TaxSplit:  order.ProfitTaxAmount,
				OrderID:   &order.ID,
				CreatedBy: actor.CreatedBy(),
				Memo:      fmt.Sprintf("cancel order %d", order.ID),
			})
			if err != nil {
				return err
			}
		}

		if err := s.Orders.UpdateStatus(ctx, order.ID, domain.OrderStatusCancelled, false); err != nil {
			return err
		}
		previous := order.Status
		order.Status = domain.OrderStatusCancelled
		order.CanBeCancelled = false

		return s.Activity.Log(ctx, actor.CreatedBy(), domain.ActivityOrderCancelled, "order", order.ID, map[string]any{
			"previous_status": string(previous),
			"total":           order.Total.String(),
		})
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("order cancelled",
		zap.Int64("orderID", order.ID),
		zap.Int64("actorID", actor.UserID),
		zap.Stringer("total", order.Total))
	return order, nil
}

// RequestCourseRefund files a pending refund request for a paid purchase.
func (s *Service) RequestCourseRefund(ctx context.Context, actor domain.Actor, purchaseID int64, reason string) (*domain.CourseRefundRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", domain.ErrInvalidInput)
	}

	var rr *domain.CourseRefundRequest
	err := s.TxManager.Begin(ctx, func(ctx context.Context) error {
		p, err := s.Purchases.LockByID(ctx, purchaseID)
		if err != nil {
			return err
		}
		if p == nil || p.UserID != actor.UserID {
			return domain.ErrNotFound
		}
		switch p.Status {
		case domain.PurchaseRefunded:
			return domain.ErrRefundAlreadyProcessed
		case domain.PurchasePending:
			return fmt.Errorf("%w: purchase is not paid yet", domain.ErrInvalidInput)
		}
		pending, err := s.Refunds.HasPending(ctx, p.ID)
		if err != nil {
			return err
		}
		if pending {
			return domain.ErrRefundAlreadyProcessed
		}

		rr = &domain.CourseRefundRequest{
			CoursePurchaseID: p.ID,
			UserID:           p.UserID,
			Reason:           reason,
			Amount:           p.Amount,
			Status:           domain.RefundPending,
		}
		if err := s.Refunds.Create(ctx, rr); err != nil {
			return err
		}
		return s.Activity.Log(ctx, actor.CreatedBy(), domain.ActivityRefundRequested, "course_purchase", p.ID, map[string]any{
			"refund_id": rr.ID,
			"amount":    p.Amount.String(),
		})
	})
	if err != nil {
		return nil, err
	}
	return rr, nil
}

// ApproveCourseRefund credits the purchase amount back to its tender and
// reverses its share of the ledger. The order can no longer be cancelled
// afterwards so the same money is never returned twice.
func (s *Service) ApproveCourseRefund(ctx context.Context, actor domain.Actor, refundID int64) (rr *domain.CourseRefundRequest, err error) {
	defer func() {
		metrics.RefundTotal.WithLabelValues("course", metrics.Result(err)).Inc()
	}()
	if !actor.Has(domain.CapabilityAdmin) {
		return nil, domain.ErrForbidden
	}

	err = s.TxManager.Begin(ctx, func(ctx context.Context) error {
		rr, err = s.lockPending(ctx, refundID)
		if err != nil {
			return err
		}

		// Order before purchase, the same order CancelOrder locks in.
		snapshot, err := s.Purchases.FindByID(ctx, rr.CoursePurchaseID)
		if err != nil {
			return err
		}
		if snapshot == nil {
			return domain.ErrNotFound
		}
		var order *domain.Order
		if snapshot.OrderID != nil {
			if order, err = s.Orders.LockByID(ctx, *snapshot.OrderID); err != nil {
				return err
			}
		}
		p, err := s.Purchases.LockByID(ctx, rr.CoursePurchaseID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.Status != domain.PurchaseCompleted {
			return domain.ErrRefundAlreadyProcessed
		}

		credit := tenderservice.Credit{
			UserID:           p.UserID,
			Method:           p.PaymentMethod,
			Amount:           p.Amount,
			OrderID:          p.OrderID,
			CoursePurchaseID: &p.ID,
			Type:             domain.BalanceCourseRefund,
			Description:      fmt.Sprintf("refund of course purchase %d", p.ID),
		}
		if order != nil {
			credit.CardID = order.CardID
		}
		if err := s.Tender.Refund(ctx, credit); err != nil {
			return err
		}
		_, err = s.Ledger.Record(ctx, ledgerservice.Movement{
			Type:             domain.LedgerCourseRefund,
			Amount:           p.Amount,
			TaxSplit:         p.TaxShare,
			OrderID:          p.OrderID,
			CoursePurchaseID: &p.ID,
			CreatedBy:        actor.CreatedBy(),
			Memo:             fmt.Sprintf("refund request %d", rr.ID),
		})
		if err != nil {
			return err
		}
		if err := s.Purchases.UpdateStatus(ctx, p.ID, domain.PurchaseRefunded, nil); err != nil {
			return err
		}
		if order != nil {
			if err := s.Orders.DisableCancel(ctx, order.ID); err != nil {
				return err
			}
		}
		if err := s.resolve(ctx, rr, domain.RefundApproved, actor); err != nil {
			return err
		}
		return s.Activity.Log(ctx, actor.CreatedBy(), domain.ActivityRefundApproved, "refund_request", rr.ID, map[string]any{
			"course_purchase_id": p.ID,
			"amount":             p.Amount.String(),
		})
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("course refund approved",
		zap.Int64("refundID", rr.ID),
		zap.Int64("purchaseID", rr.CoursePurchaseID),
		zap.Stringer("amount", rr.Amount))
	return rr, nil
}

func (s *Service) RejectCourseRefund(ctx context.Context, actor domain.Actor, refundID int64) (*domain.CourseRefundRequest, error) {
	if !actor.Has(domain.CapabilityAdmin) {
		return nil, domain.ErrForbidden
	}
	var rr *domain.CourseRefundRequest
	err := s.TxManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		if rr, err = s.lockPending(ctx, refundID); err != nil {
			return err
		}
		if err := s.resolve(ctx, rr, domain.RefundRejected, actor); err != nil {
			return err
		}
		return s.Activity.Log(ctx, actor.CreatedBy(), domain.ActivityRefundRejected, "refund_request", rr.ID, nil)
	})
	if err != nil {
		return nil, err
	}
	return rr, nil
}

func (s *Service) lockPending(ctx context.Context, refundID int64) (*domain.CourseRefundRequest, error) {
	rr, err := s.Refunds.LockByID(ctx, refundID)
	if err != nil {
		return nil, err
	}
	if rr == nil {
		return nil, domain.ErrNotFound
	}
	if rr.Status != domain.RefundPending {
		return nil, domain.ErrRefundAlreadyProcessed
	}
	return rr, nil
}

func (s *Service) resolve(ctx context.Context, rr *domain.CourseRefundRequest, status domain.RefundStatus, actor domain.Actor) error {
	at := s.now()
	if err := s.Refunds.Resolve(ctx, rr.ID, status, actor.CreatedBy(), at); err != nil {
		return err
	}
	rr.Status = status
	rr.ProcessedBy = actor.CreatedBy()
	rr.ResolvedAt = &at
	return nil
}

// ConfirmCashPayment records the money of a cash order once staff received it:
// every pending purchase is completed and booked as a course payment.
func (s *Service) ConfirmCashPayment(ctx context.Context, actor domain.Actor, orderID int64) (*domain.Order, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	var order *domain.Order
	err := s.TxManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		if order, err = s.Orders.LockByID(ctx, orderID); err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.PaymentMethod.Deferred() || order.Status != domain.OrderStatusProcessing {
			return domain.ErrOrderNotPending
		}

		purchases, err := s.Purchases.ListByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		now := s.now()
		for _, p := range purchases {
			if p.Status != domain.PurchasePending {
				continue
			}
			if err := s.Purchases.UpdateStatus(ctx, p.ID, domain.PurchaseCompleted, &now); err != nil {
				return err
			}
			_, err := s.Ledger.Record(ctx, ledgerservice.Movement{
				Type:             domain.LedgerCoursePayment,
				Amount:           p.Amount,
				TaxSplit:         p.TaxShare,
				OrderID:          &order.ID,
				CoursePurchaseID: &p.ID,
				CreatedBy:        actor.CreatedBy(),
				Memo:             fmt.Sprintf("cash payment for order %d", order.ID),
			})
			if err != nil {
				return err
			}
		}

		if err := s.Orders.UpdateStatus(ctx, order.ID, domain.OrderStatusPaid, order.CanBeCancelled); err != nil {
			return err
		}
		order.Status = domain.OrderStatusPaid
		return s.Activity.Log(ctx, actor.CreatedBy(), domain.ActivityOrderPaid, "order", order.ID, map[string]any{
			"total": order.Total.String(),
		})
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("cash payment confirmed", zap.Int64("orderID", order.ID), zap.Stringer("total", order.Total))
	return order, nil
}

func (s *Service) ListRefundRequests(ctx context.Context, actor domain.Actor, status domain.RefundStatus) ([]domain.CourseRefundRequest, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	return s.Refunds.List(ctx, status)
}

// ListOwnRefundRequests returns the requests the actor filed, whatever their status.
func (s *Service) ListOwnRefundRequests(ctx context.Context, actor domain.Actor) ([]domain.CourseRefundRequest, error) {
	return s.Refunds.ListByUser(ctx, actor.UserID)
}
