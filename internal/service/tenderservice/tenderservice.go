package tenderservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
)

//go:generate mockgen -source=tenderservice.go -destination=mock_tenderservice.go -package=tenderservice
type UserRepo interface {
	LockUser(ctx context.Context, id int64) (*domain.User, error)
	UpdateBalance(ctx context.Context, id int64, balance money.Money) error
}

type BalanceTxRepo interface {
	Create(ctx context.Context, tx *domain.BalanceTransaction) error
}

type CardRepo interface {
	LockCard(ctx context.Context, id int64) (*domain.SavedCard, error)
	UpdateBalance(ctx context.Context, id int64, balance money.Money) error
	CreateTransaction(ctx context.Context, tx *domain.CardTransaction) error
}

type ResultRepo interface {
	FindByKey(ctx context.Context, key string, since time.Time) (*domain.TenderResult, error)
	Create(ctx context.Context, r *domain.TenderResult) error
	PurgeBefore(ctx context.Context, before time.Time) (int64, error)
}

// Selection is the payment method chosen by the buyer.
type Selection struct {
	Method domain.PaymentMethod
	CardID *int64
}

// Prepared holds the locked rows a tender will debit.
type Prepared struct {
	UserID int64
	Method domain.PaymentMethod
	Amount money.Money
	user   *domain.User
	card   *domain.SavedCard
}

// Credit describes money going back to the buyer.
type Credit struct {
	UserID           int64
	Method           domain.PaymentMethod
	CardID           *int64
	Amount           money.Money
	OrderID          *int64
	CoursePurchaseID *int64
	Type             domain.BalanceTxType
	Description      string
}

type Service struct {
	users    UserRepo
	balances BalanceTxRepo
	cards    CardRepo
	results  ResultRepo
	window   time.Duration
	now      func() time.Time
}

func New(users UserRepo, balances BalanceTxRepo, cards CardRepo, results ResultRepo, window time.Duration) *Service {
	return &Service{
		users:    users,
		balances: balances,
		cards:    cards,
		results:  results,
		window:   window,
		now:      time.Now,
	}
}

// Prepare locks the buyer (and the card) and checks the tender can cover amount.
// It must run inside a transaction.
func (s *Service) Prepare(ctx context.Context, userID int64, sel Selection, amount money.Money) (*Prepared, error) {
	if !sel.Method.Valid() {
		return nil, fmt.Errorf("%w: payment method %q", domain.ErrInvalidInput, sel.Method)
	}
	user, err := s.users.LockUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Blocked {
		return nil, domain.ErrUserBlocked
	}

	p := &Prepared{UserID: userID, Method: sel.Method, Amount: amount, user: user}
	switch sel.Method {
	case domain.PaymentBalance:
		if user.Balance.LessThan(amount) {
			return nil, domain.ErrInsufficientFunds
		}
	case domain.PaymentSavedCard:
		if sel.CardID == nil {
			return nil, fmt.Errorf("%w: card is required", domain.ErrInvalidInput)
		}
		card, err := s.cards.LockCard(ctx, *sel.CardID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrCardNotOwned
			}
			return nil, err
		}
		if card.UserID != userID {
			return nil, domain.ErrCardNotOwned
		}
		if card.Expired(s.now()) {
			return nil, domain.ErrCardExpired
		}
		if card.Balance.LessThan(amount) {
			return nil, domain.ErrInsufficientFunds
		}
		p.card = card
	}
	return p, nil
}

// CardID returns the card a prepared saved-card tender will debit.
func (p *Prepared) CardID() *int64 {
	if p.card == nil {
		return nil
	}
	id := p.card.ID
	return &id
}

// Execute debits the prepared tender and records the result under key.
func (s *Service) Execute(ctx context.Context, p *Prepared, key string, orderID int64) (*domain.TenderResult, error) {
	switch p.Method {
	case domain.PaymentBalance:
		balance := p.user.Balance.Sub(p.Amount)
		if err := s.users.UpdateBalance(ctx, p.UserID, balance); err != nil {
			return nil, err
		}
		p.user.Balance = balance
		err := s.balances.Create(ctx, &domain.BalanceTransaction{
			UserID:      p.UserID,
			Type:        domain.BalanceOrderPayment,
			Amount:      p.Amount.Neg(),
			OrderID:     &orderID,
			Description: fmt.Sprintf("payment for order %d", orderID),
		})
		if err != nil {
			return nil, err
		}
	case domain.PaymentSavedCard:
		balance := p.card.Balance.Sub(p.Amount)
		if err := s.cards.UpdateBalance(ctx, p.card.ID, balance); err != nil {
			return nil, err
		}
		p.card.Balance = balance
		if p.Amount.IsPositive() {
			err := s.cards.CreateTransaction(ctx, &domain.CardTransaction{
				CardID:      p.card.ID,
				Type:        domain.CardWithdrawal,
				Amount:      p.Amount,
				OrderID:     &orderID,
				Description: fmt.Sprintf("payment for order %d", orderID),
			})
			if err != nil {
				return nil, err
			}
		}
	}

	result := &domain.TenderResult{
		IdempotencyKey: key,
		UserID:         p.UserID,
		OrderID:        orderID,
		Method:         p.Method,
		CardID:         p.CardID(),
		Amount:         p.Amount,
		Reversible:     p.Method != domain.PaymentCash,
	}
	if err := s.results.Create(ctx, result); err != nil {
		return nil, err
	}
	zap.L().Info("tender executed",
		zap.Int64("orderID", orderID),
		zap.String("method", string(p.Method)),
		zap.Stringer("amount", p.Amount))
	return result, nil
}

// Lookup returns the result stored under key inside the idempotency window.
func (s *Service) Lookup(ctx context.Context, key string) (*domain.TenderResult, error) {
	return s.results.FindByKey(ctx, key, s.now().Add(-s.window))
}

// Refund credits money back to the tender it came from. Cash is handed back
// in person, so nothing is journaled for it. A deleted card is refunded to
// the wallet balance.
func (s *Service) Refund(ctx context.Context, c Credit) error {
	if c.Method == domain.PaymentCash || c.Amount.IsZero() {
		return nil
	}
	if c.Method == domain.PaymentSavedCard && c.CardID != nil {
		card, err := s.cards.LockCard(ctx, *c.CardID)
		switch {
		case err == nil:
			return s.creditCard(ctx, card, c)
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}
		zap.L().Warn("refund card is gone, crediting balance", zap.Int64("cardID", *c.CardID))
	}

	user, err := s.users.LockUser(ctx, c.UserID)
	if err != nil {
		return err
	}
	if err := s.users.UpdateBalance(ctx, c.UserID, user.Balance.Add(c.Amount)); err != nil {
		return err
	}
	return s.balances.Create(ctx, &domain.BalanceTransaction{
		UserID:           c.UserID,
		Type:             c.Type,
		Amount:           c.Amount,
		OrderID:          c.OrderID,
		CoursePurchaseID: c.CoursePurchaseID,
		Description:      c.Description,
	})
}

func (s *Service) creditCard(ctx context.Context, card *domain.SavedCard, c Credit) error {
	if err := s.cards.UpdateBalance(ctx, card.ID, card.Balance.Add(c.Amount)); err != nil {
		return err
	}
	return s.cards.CreateTransaction(ctx, &domain.CardTransaction{
		CardID:      card.ID,
		Type:        domain.CardDeposit,
		Amount:      c.Amount,
		OrderID:     c.OrderID,
		Description: c.Description,
	})
}

// Purge drops idempotency records older than the window.
func (s *Service) Purge(ctx context.Context) (int64, error) {
	return s.results.PurgeBefore(ctx, s.now().Add(-s.window))
}
