package dto

import (
	"time"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
)

type BalanceTransactionDTO struct {
	ID          int64       `json:"id" example:"12"`
	Type        string      `json:"type" example:"order_payment"`
	Amount      money.Money `json:"amount" swaggertype:"string" example:"-2172.00"`
	OrderID     *int64      `json:"order_id,omitempty" example:"42"`
	Description string      `json:"description,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

type BalanceResponseDTO struct {
	Current      money.Money             `json:"current" swaggertype:"string" example:"828.00"`
	Transactions []BalanceTransactionDTO `json:"transactions"`
}

func FromBalance(current money.Money, txs []domain.BalanceTransaction) BalanceResponseDTO {
	out := BalanceResponseDTO{Current: current, Transactions: make([]BalanceTransactionDTO, 0, len(txs))}
	for _, tx := range txs {
		out.Transactions = append(out.Transactions, FromBalanceTransaction(tx))
	}
	return out
}

func FromBalanceTransaction(tx domain.BalanceTransaction) BalanceTransactionDTO {
	return BalanceTransactionDTO{
		ID:          tx.ID,
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		OrderID:     tx.OrderID,
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}
}

type BalanceOperationRequestDTO struct {
	Amount money.Money `json:"amount" swaggertype:"string" example:"500.00"`
	CardID *int64      `json:"card_id,omitempty" example:"4"`
}

type CardRequestDTO struct {
	Number   string `json:"number" validate:"required,min=12,max=23" example:"4111 1111 1111 1111"`
	Holder   string `json:"holder" validate:"max=100" example:"ANN LEE"`
	ExpMonth int    `json:"exp_month" validate:"required,min=1,max=12" example:"12"`
	ExpYear  int    `json:"exp_year" validate:"required,min=2000" example:"2030"`
}

type CardResponseDTO struct {
	ID        int64       `json:"id" example:"4"`
	Brand     string      `json:"brand" example:"visa"`
	LastFour  string      `json:"last_four" example:"1111"`
	Holder    string      `json:"holder,omitempty"`
	ExpMonth  int         `json:"exp_month" example:"12"`
	ExpYear   int         `json:"exp_year" example:"2030"`
	Balance   money.Money `json:"balance" swaggertype:"string" example:"0.00"`
	IsDefault bool        `json:"is_default"`
}

func FromCard(c domain.SavedCard) CardResponseDTO {
	return CardResponseDTO{
		ID:        c.ID,
		Brand:     string(c.Brand),
		LastFour:  c.LastFour,
		Holder:    c.Holder,
		ExpMonth:  c.ExpMonth,
		ExpYear:   c.ExpYear,
		Balance:   c.Balance,
		IsDefault: c.IsDefault,
	}
}

type TopUpRequestDTO struct {
	Amount money.Money `json:"amount" swaggertype:"string" example:"1000.00"`
}

type CardTransactionDTO struct {
	ID          int64       `json:"id" example:"7"`
	Type        string      `json:"type" example:"withdrawal"`
	Amount      money.Money `json:"amount" swaggertype:"string" example:"2280.00"`
	OrderID     *int64      `json:"order_id,omitempty" example:"42"`
	Description string      `json:"description,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

func FromCardTransaction(tx domain.CardTransaction) CardTransactionDTO {
	return CardTransactionDTO{
		ID:          tx.ID,
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		OrderID:     tx.OrderID,
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}
}
