package domain

import (
	"time"

	"github.com/GlebRadaev/coursemart/internal/money"
)

type BalanceTxType string

const (
	BalanceDeposit      BalanceTxType = "deposit"
	BalanceWithdrawal   BalanceTxType = "withdrawal"
	BalanceOrderPayment BalanceTxType = "order_payment"
	BalanceOrderRefund  BalanceTxType = "order_refund"
	BalanceCourseRefund BalanceTxType = "course_refund"
)

// BalanceTransaction amounts are signed: credits positive, debits negative.
type BalanceTransaction struct {
	ID               int64         `db:"id"`
	UserID           int64         `db:"user_id"`
	Type             BalanceTxType `db:"type"`
	Amount           money.Money   `db:"amount"`
	Status           string        `db:"status"`
	OrderID          *int64        `db:"order_id"`
	CoursePurchaseID *int64        `db:"course_purchase_id"`
	Description      string        `db:"description"`
	CreatedAt        time.Time     `db:"created_at"`
}

const TxStatusCompleted = "completed"

type CardBrand string

const (
	CardVisa       CardBrand = "visa"
	CardMastercard CardBrand = "mastercard"
	CardMir        CardBrand = "mir"
	CardOther      CardBrand = "other"
)

// SavedCard is a stored payment method with a stand-in balance.
type SavedCard struct {
	ID           int64       `db:"id"`
	UserID       int64       `db:"user_id"`
	Brand        CardBrand   `db:"brand"`
	LastFour     string      `db:"last_four"`
	Holder       string      `db:"holder"`
	ExpMonth     int         `db:"exp_month"`
	ExpYear      int         `db:"exp_year"`
	EncryptedPAN string      `db:"encrypted_pan"`
	Balance      money.Money `db:"balance"`
	IsDefault    bool        `db:"is_default"`
	CreatedAt    time.Time   `db:"created_at"`
}

// Expired reports whether the card's expiry month is before now's month.
func (c SavedCard) Expired(now time.Time) bool {
	y, m, _ := now.Date()
	if c.ExpYear != y {
		return c.ExpYear < y
	}
	return c.ExpMonth < int(m)
}

type CardTxType string

const (
	CardDeposit    CardTxType = "deposit"
	CardWithdrawal CardTxType = "withdrawal"
)

type CardTransaction struct {
	ID          int64       `db:"id"`
	CardID      int64       `db:"card_id"`
	Type        CardTxType  `db:"type"`
	Amount      money.Money `db:"amount"`
	OrderID     *int64      `db:"order_id"`
	Description string      `db:"description"`
	CreatedAt   time.Time   `db:"created_at"`
}
