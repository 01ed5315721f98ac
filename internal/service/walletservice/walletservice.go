package walletservice

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
	"github.com/GlebRadaev/coursemart/internal/pg"
	"github.com/GlebRadaev/coursemart/pkg/cipher"
	"github.com/GlebRadaev/coursemart/pkg/validate"
)

const historyLimit = 50

//go:generate mockgen -source=walletservice.go -destination=mock_walletservice.go -package=walletservice
type UserRepo interface {
	LockUser(ctx context.Context, id int64) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateBalance(ctx context.Context, id int64, balance money.Money) error
}

type BalanceRepo interface {
	Create(ctx context.Context, tx *domain.BalanceTransaction) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.BalanceTransaction, error)
}

type CardRepo interface {
	Create(ctx context.Context, c *domain.SavedCard) error
	FindCard(ctx context.Context, id int64) (*domain.SavedCard, error)
	LockCard(ctx context.Context, id int64) (*domain.SavedCard, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.SavedCard, error)
	UpdateBalance(ctx context.Context, id int64, balance money.Money) error
	SetDefault(ctx context.Context, userID, cardID int64) error
	Delete(ctx context.Context, id int64) error
	CreateTransaction(ctx context.Context, tx *domain.CardTransaction) error
	ListTransactions(ctx context.Context, cardID int64) ([]domain.CardTransaction, error)
}

type ActivityLogger interface {
	Log(ctx context.Context, actorID *int64, action, targetType string, targetID int64, details map[string]any) error
}

// Summary is the wallet balance with its most recent movements.
type Summary struct {
	Current      money.Money
	Transactions []domain.BalanceTransaction
}

// NewCard is the raw card data captured when a card is saved.
type NewCard struct {
	Number   string
	Holder   string
	ExpMonth int
	ExpYear  int
}

type Service struct {
	users     UserRepo
	balances  BalanceRepo
	cards     CardRepo
	txManager pg.TXManager
	activity  ActivityLogger
	codec     cipher.Codec
	now       func() time.Time
}

func New(users UserRepo, balances BalanceRepo, cards CardRepo, txManager pg.TXManager, activity ActivityLogger, codec cipher.Codec) *Service {
	return &Service{
		users:     users,
		balances:  balances,
		cards:     cards,
		txManager: txManager,
		activity:  activity,
		codec:     codec,
		now:       time.Now,
	}
}

func (s *Service) Balance(ctx context.Context, userID int64) (*Summary, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	txs, err := s.balances.ListByUser(ctx, userID, historyLimit)
	if err != nil {
		zap.L().Error("failed to fetch balance history", zap.Error(err))
		return nil, err
	}
	return &Summary{Current: user.Balance, Transactions: txs}, nil
}

func requirePositive(amount money.Money) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	return nil
}

// ownedCard locks cardID and checks it belongs to userID and has not expired.
func (s *Service) ownedCard(ctx context.Context, userID, cardID int64) (*domain.SavedCard, error) {
	card, err := s.cards.LockCard(ctx, cardID)
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
	return card, nil
}

// Deposit credits the wallet, drawing from a saved card when cardID is set.
func (s *Service) Deposit(ctx context.Context, userID int64, amount money.Money, cardID *int64) (*domain.BalanceTransaction, error) {
	if err := requirePositive(amount); err != nil {
		return nil, err
	}
	var entry *domain.BalanceTransaction
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		user, err := s.users.LockUser(ctx, userID)
		if err != nil {
			return err
		}
		if user.Blocked {
			return domain.ErrUserBlocked
		}
		description := "external deposit"
		if cardID != nil {
			card, err := s.ownedCard(ctx, userID, *cardID)
			if err != nil {
				return err
			}
			if card.Balance.LessThan(amount) {
				return domain.ErrInsufficientFunds
			}
			if err := s.cards.UpdateBalance(ctx, card.ID, card.Balance.Sub(amount)); err != nil {
				return err
			}
			description = fmt.Sprintf("deposit from card *%s", card.LastFour)
			err = s.cards.CreateTransaction(ctx, &domain.CardTransaction{
				CardID:      card.ID,
				Type:        domain.CardWithdrawal,
				Amount:      amount,
				Description: "transfer to wallet",
			})
			if err != nil {
				return err
			}
		}
		if err := s.users.UpdateBalance(ctx, userID, user.Balance.Add(amount)); err != nil {
			return err
		}
		entry = &domain.BalanceTransaction{
			UserID:      userID,
			Type:        domain.BalanceDeposit,
			Amount:      amount,
			Description: description,
		}
		if err := s.balances.Create(ctx, entry); err != nil {
			return err
		}
		return s.activity.Log(ctx, &userID, domain.ActivityBalanceDeposit, "balance_transaction", entry.ID, map[string]any{
			"amount": amount.String(),
		})
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("balance deposit", zap.Int64("userID", userID), zap.Stringer("amount", amount))
	return entry, nil
}

// Withdraw debits the wallet, paying out to a saved card when cardID is set.
func (s *Service) Withdraw(ctx context.Context, userID int64, amount money.Money, cardID *int64) (*domain.BalanceTransaction, error) {
	if err := requirePositive(amount); err != nil {
		return nil, err
	}
	var entry *domain.BalanceTransaction
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		user, err := s.users.LockUser(ctx, userID)
		if err != nil {
			return err
		}
		if user.Blocked {
			return domain.ErrUserBlocked
		}
		if user.Balance.LessThan(amount) {
			return domain.ErrInsufficientFunds
		}
		description := "external withdrawal"
		if cardID != nil {
			card, err := s.ownedCard(ctx, userID, *cardID)
			if err != nil {
				return err
			}
			if err := s.cards.UpdateBalance(ctx, card.ID, card.Balance.Add(amount)); err != nil {
				return err
			}
			description = fmt.Sprintf("withdrawal to card *%s", card.LastFour)
			err = s.cards.CreateTransaction(ctx, &domain.CardTransaction{
				CardID:      card.ID,
				Type:        domain.CardDeposit,
				Amount:      amount,
				Description: "transfer from wallet",
			})
			if err != nil {
				return err
			}
		}
		if err := s.users.UpdateBalance(ctx, userID, user.Balance.Sub(amount)); err != nil {
			return err
		}
		entry = &domain.BalanceTransaction{
			UserID:      userID,
			Type:        domain.BalanceWithdrawal,
			Amount:      amount.Neg(),
			Description: description,
		}
		if err := s.balances.Create(ctx, entry); err != nil {
			return err
		}
		return s.activity.Log(ctx, &userID, domain.ActivityBalanceWithdrawal, "balance_transaction", entry.ID, map[string]any{
			"amount": amount.String(),
		})
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("balance withdrawal", zap.Int64("userID", userID), zap.Stringer("amount", amount))
	return entry, nil
}

// DetectBrand classifies a normalized PAN by its issuer prefix.
func DetectBrand(pan string) domain.CardBrand {
	prefix := func(n int) int {
		if len(pan) < n {
			return -1
		}
		v, _ := strconv.Atoi(pan[:n])
		return v
	}
	switch {
	case strings.HasPrefix(pan, "4"):
		return domain.CardVisa
	case prefix(4) >= 2200 && prefix(4) <= 2204:
		return domain.CardMir
	case prefix(2) >= 51 && prefix(2) <= 55, prefix(4) >= 2221 && prefix(4) <= 2720:
		return domain.CardMastercard
	}
	return domain.CardOther
}

// AddCard validates and stores a card. The first card a user saves becomes the default.
func (s *Service) AddCard(ctx context.Context, userID int64, in NewCard) (*domain.SavedCard, error) {
	pan := validate.NormalizePAN(in.Number)
	if !validate.IsLuhn(pan) {
		return nil, domain.ErrInvalidCard
	}
	if in.ExpMonth < 1 || in.ExpMonth > 12 || in.ExpYear < 2000 {
		return nil, fmt.Errorf("%w: expiry", domain.ErrInvalidCard)
	}
	card := &domain.SavedCard{
		UserID:   userID,
		Brand:    DetectBrand(pan),
		LastFour: pan[len(pan)-4:],
		Holder:   strings.ToUpper(strings.TrimSpace(in.Holder)),
		ExpMonth: in.ExpMonth,
		ExpYear:  in.ExpYear,
	}
	if card.Expired(s.now()) {
		return nil, domain.ErrCardExpired
	}
	encrypted, err := s.codec.Encrypt([]byte(pan))
	if err != nil {
		zap.L().Error("failed to encrypt card number", zap.Error(err))
		return nil, err
	}
	card.EncryptedPAN = encrypted

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.users.LockUser(ctx, userID); err != nil {
			return err
		}
		existing, err := s.cards.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		card.IsDefault = len(existing) == 0
		return s.cards.Create(ctx, card)
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("card saved", zap.Int64("userID", userID), zap.String("brand", string(card.Brand)), zap.String("last4", card.LastFour))
	return card, nil
}

func (s *Service) ListCards(ctx context.Context, userID int64) ([]domain.SavedCard, error) {
	return s.cards.ListByUser(ctx, userID)
}

// CardTransactions lists a card's movements, newest first. Another user's card
// is reported as not owned.
func (s *Service) CardTransactions(ctx context.Context, userID, cardID int64) ([]domain.CardTransaction, error) {
	card, err := s.cards.FindCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil || card.UserID != userID {
		return nil, domain.ErrCardNotOwned
	}
	return s.cards.ListTransactions(ctx, cardID)
}

func (s *Service) SetDefaultCard(ctx context.Context, userID, cardID int64) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		card, err := s.cards.LockCard(ctx, cardID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrCardNotOwned
			}
			return err
		}
		if card.UserID != userID {
			return domain.ErrCardNotOwned
		}
		return s.cards.SetDefault(ctx, userID, cardID)
	})
}

// DeleteCard removes a card; when it was the default the oldest remaining card takes over.
func (s *Service) DeleteCard(ctx context.Context, userID, cardID int64) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		card, err := s.cards.LockCard(ctx, cardID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrCardNotOwned
			}
			return err
		}
		if card.UserID != userID {
			return domain.ErrCardNotOwned
		}
		if err := s.cards.Delete(ctx, cardID); err != nil {
			return err
		}
		if !card.IsDefault {
			return nil
		}
		rest, err := s.cards.ListByUser(ctx, userID)
		if err != nil || len(rest) == 0 {
			return err
		}
		next := rest[0]
		for _, c := range rest[1:] {
			if c.ID < next.ID {
				next = c
			}
		}
		return s.cards.SetDefault(ctx, userID, next.ID)
	})
}

// TopUpCard simulates an external transfer onto a saved card.
func (s *Service) TopUpCard(ctx context.Context, userID, cardID int64, amount money.Money) (*domain.SavedCard, error) {
	if err := requirePositive(amount); err != nil {
		return nil, err
	}
	var card *domain.SavedCard
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		card, err = s.ownedCard(ctx, userID, cardID)
		if err != nil {
			return err
		}
		card.Balance = card.Balance.Add(amount)
		if err := s.cards.UpdateBalance(ctx, card.ID, card.Balance); err != nil {
			return err
		}
		return s.cards.CreateTransaction(ctx, &domain.CardTransaction{
			CardID:      card.ID,
			Type:        domain.CardDeposit,
			Amount:      amount,
			Description: "external top-up",
		})
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}
