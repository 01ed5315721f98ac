package ledgerservice

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/metrics"
	"github.com/GlebRadaev/coursemart/internal/money"
	"github.com/GlebRadaev/coursemart/internal/pg"
)

const defaultListLimit = 100

//go:generate mockgen -source=ledgerservice.go -destination=mock_ledgerservice.go -package=ledgerservice
type Repo interface {
	GetAccount(ctx context.Context) (*domain.OrganizationAccount, error)
	LockAccount(ctx context.Context) (*domain.OrganizationAccount, error)
	UpdateAccount(ctx context.Context, acct *domain.OrganizationAccount) error
	CreateTransaction(ctx context.Context, t *domain.OrganizationTransaction) error
	ListTransactions(ctx context.Context, limit int) ([]domain.OrganizationTransaction, error)
}

type ActivityLogger interface {
	Log(ctx context.Context, actorID *int64, action, targetType string, targetID int64, details map[string]any) error
}

// Movement is one journal entry to record against the organization account.
type Movement struct {
	Type             domain.LedgerType
	Amount           money.Money
	TaxSplit         money.Money
	OrderID          *int64
	CoursePurchaseID *int64
	CreatedBy        *int64
	Memo             string
}

type Service struct {
	repo      Repo
	txManager pg.TXManager
	activity  ActivityLogger
}

func New(repo Repo, txManager pg.TXManager, activity ActivityLogger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		activity:  activity,
	}
}

// Delta returns the change applied to (balance, tax reserve) by a movement.
func Delta(kind domain.LedgerType, amount, taxSplit money.Money) (money.Money, money.Money, error) {
	if amount.IsNegative() || taxSplit.IsNegative() || taxSplit.GreaterThan(amount) {
		return money.Zero, money.Zero, fmt.Errorf("%w: amount %s, tax split %s", domain.ErrInvalidInput, amount, taxSplit)
	}
	net := amount.Sub(taxSplit)
	switch kind {
	case domain.LedgerOrderPayment, domain.LedgerCoursePayment:
		return net, taxSplit, nil
	case domain.LedgerOrderRefund, domain.LedgerCourseRefund:
		return net.Neg(), taxSplit.Neg(), nil
	case domain.LedgerTaxPayment:
		return money.Zero, amount.Neg(), nil
	case domain.LedgerWithdrawal:
		return amount.Neg(), money.Zero, nil
	}
	return money.Zero, money.Zero, fmt.Errorf("%w: unknown ledger type %q", domain.ErrInvalidInput, kind)
}

// Record applies m under the account row lock. It must run inside a transaction.
func (s *Service) Record(ctx context.Context, m Movement) (*domain.OrganizationTransaction, error) {
	dBalance, dTax, err := Delta(m.Type, m.Amount, m.TaxSplit)
	if err != nil {
		return nil, err
	}
	acct, err := s.repo.LockAccount(ctx)
	if err != nil {
		return nil, err
	}

	entry := &domain.OrganizationTransaction{
		Type:             m.Type,
		Amount:           m.Amount,
		TaxSplit:         m.TaxSplit,
		BalanceBefore:    acct.Balance,
		BalanceAfter:     acct.Balance.Add(dBalance),
		TaxBefore:        acct.TaxReserve,
		TaxAfter:         acct.TaxReserve.Add(dTax),
		OrderID:          m.OrderID,
		CoursePurchaseID: m.CoursePurchaseID,
		CreatedBy:        m.CreatedBy,
		Memo:             m.Memo,
	}
	if entry.BalanceAfter.IsNegative() || entry.TaxAfter.IsNegative() {
		zap.L().Warn("ledger movement rejected",
			zap.String("type", string(m.Type)),
			zap.Stringer("amount", m.Amount),
			zap.Stringer("balance", acct.Balance),
			zap.Stringer("taxReserve", acct.TaxReserve))
		return nil, domain.ErrLedgerInvariantViolation
	}

	acct.Balance = entry.BalanceAfter
	acct.TaxReserve = entry.TaxAfter
	if err := s.repo.UpdateAccount(ctx, acct); err != nil {
		return nil, err
	}
	if err := s.repo.CreateTransaction(ctx, entry); err != nil {
		return nil, err
	}
	metrics.LedgerMovementsTotal.WithLabelValues(string(m.Type)).Inc()
	return entry, nil
}

// Operate records a staff-initiated tax payment or withdrawal in its own transaction.
func (s *Service) Operate(ctx context.Context, actor domain.Actor, kind domain.LedgerType, amount money.Money, memo string) (*domain.OrganizationTransaction, error) {
	if !actor.Has(domain.CapabilityAdmin) {
		return nil, domain.ErrForbidden
	}
	if kind != domain.LedgerTaxPayment && kind != domain.LedgerWithdrawal {
		return nil, fmt.Errorf("%w: ledger operation %q", domain.ErrInvalidInput, kind)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}

	var entry *domain.OrganizationTransaction
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.Record(ctx, Movement{
			Type:      kind,
			Amount:    amount,
			CreatedBy: actor.CreatedBy(),
			Memo:      memo,
		})
		if err != nil {
			return err
		}
		return s.activity.Log(ctx, actor.CreatedBy(), domain.ActivityLedgerOperation, "organization_transaction", entry.ID, map[string]any{
			"type":   string(kind),
			"amount": amount.String(),
			"memo":   memo,
		})
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("ledger operation recorded", zap.String("type", string(kind)), zap.Stringer("amount", amount))
	return entry, nil
}

func (s *Service) Account(ctx context.Context) (*domain.OrganizationAccount, error) {
	acct, err := s.repo.GetAccount(ctx)
	if err != nil {
		zap.L().Error("failed to read organization account", zap.Error(err))
		return nil, err
	}
	return acct, nil
}

func (s *Service) ListTransactions(ctx context.Context, limit int) ([]domain.OrganizationTransaction, error) {
	if limit <= 0 || limit > 1000 {
		limit = defaultListLimit
	}
	return s.repo.ListTransactions(ctx, limit)
}
