package dto

import (
	"time"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
)

type LedgerTransactionDTO struct {
	ID               int64       `json:"id" example:"1"`
	Type             string      `json:"type" example:"order_payment"`
	Amount           money.Money `json:"amount" swaggertype:"string" example:"2172.00"`
	TaxSplit         money.Money `json:"tax_split" swaggertype:"string" example:"282.36"`
	BalanceBefore    money.Money `json:"balance_before" swaggertype:"string" example:"0.00"`
	BalanceAfter     money.Money `json:"balance_after" swaggertype:"string" example:"1889.64"`
	TaxBefore        money.Money `json:"tax_before" swaggertype:"string" example:"0.00"`
	TaxAfter         money.Money `json:"tax_after" swaggertype:"string" example:"282.36"`
	OrderID          *int64      `json:"order_id,omitempty"`
	CoursePurchaseID *int64      `json:"course_purchase_id,omitempty"`
	CreatedBy        *int64      `json:"created_by,omitempty"`
	Memo             string      `json:"memo,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}

func FromLedgerTransaction(t domain.OrganizationTransaction) LedgerTransactionDTO {
	return LedgerTransactionDTO{
		ID:               t.ID,
		Type:             string(t.Type),
		Amount:           t.Amount,
		TaxSplit:         t.TaxSplit,
		BalanceBefore:    t.BalanceBefore,
		BalanceAfter:     t.BalanceAfter,
		TaxBefore:        t.TaxBefore,
		TaxAfter:         t.TaxAfter,
		OrderID:          t.OrderID,
		CoursePurchaseID: t.CoursePurchaseID,
		CreatedBy:        t.CreatedBy,
		Memo:             t.Memo,
		CreatedAt:        t.CreatedAt,
	}
}

type LedgerResponseDTO struct {
	Balance      money.Money            `json:"balance" swaggertype:"string" example:"1889.64"`
	TaxReserve   money.Money            `json:"tax_reserve" swaggertype:"string" example:"282.36"`
	Transactions []LedgerTransactionDTO `json:"transactions"`
}

type LedgerOperationRequestDTO struct {
	Type   string      `json:"type" validate:"required,oneof=tax_payment withdrawal" example:"tax_payment"`
	Amount money.Money `json:"amount" swaggertype:"string" example:"282.36"`
	Memo   string      `json:"memo,omitempty" validate:"max=500"`
}

type PromotionRequestDTO struct {
	Code            string     `json:"code" validate:"required,max=50" example:"SPRING"`
	DiscountPercent string     `json:"discount_percent" validate:"required,numeric" example:"15"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Active          bool       `json:"active" example:"true"`
}

type PromotionResponseDTO struct {
	ID              int64      `json:"id" example:"4"`
	Code            string     `json:"code" example:"SPRING"`
	DiscountPercent string     `json:"discount_percent" example:"15"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	Active          bool       `json:"active"`
}

func FromPromotion(p domain.Promotion) PromotionResponseDTO {
	return PromotionResponseDTO{
		ID:              p.ID,
		Code:            p.Code,
		DiscountPercent: p.DiscountPercent.String(),
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		Active:          p.Active,
	}
}

type CommentRequestDTO struct {
	Text string `json:"text" validate:"required,max=2000" example:"Great progress"`
}
