package dto

import (
	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
	"github.com/GlebRadaev/coursemart/internal/pricing"
)

type CartAddRequestDTO struct {
	CourseID int64 `json:"course_id" validate:"required,gt=0" example:"11"`
	Quantity int   `json:"quantity" validate:"required,gt=0" example:"1"`
}

type CartUpdateRequestDTO struct {
	Quantity int `json:"quantity" validate:"required,gt=0" example:"2"`
}

type CartLineDTO struct {
	ID        int64       `json:"id" example:"1"`
	CourseID  int64       `json:"course_id" example:"11"`
	Title     string      `json:"title" example:"Go in practice"`
	Quantity  int         `json:"quantity" example:"1"`
	UnitPrice money.Money `json:"unit_price" swaggertype:"string" example:"900.00"`
	Subtotal  money.Money `json:"subtotal" swaggertype:"string" example:"900.00"`
}

type CartResponseDTO struct {
	Version      int64         `json:"version" example:"3"`
	Lines        []CartLineDTO `json:"lines"`
	Subtotal     money.Money   `json:"subtotal" swaggertype:"string" example:"900.00"`
	DeliveryCost money.Money   `json:"delivery_cost" swaggertype:"string" example:"1000.00"`
	VATAmount    money.Money   `json:"vat_amount" swaggertype:"string" example:"380.00"`
	Total        money.Money   `json:"total" swaggertype:"string" example:"2280.00"`
}

func FromCart(cart *domain.Cart, q pricing.Quote) CartResponseDTO {
	out := CartResponseDTO{
		Lines:        make([]CartLineDTO, 0, len(q.Lines)),
		Subtotal:     q.Subtotal,
		DeliveryCost: q.DeliveryCost,
		VATAmount:    q.VATAmount,
		Total:        q.Total,
	}
	if cart != nil {
		out.Version = cart.Version
		for i, l := range cart.Lines {
			line := CartLineDTO{
				ID:        l.ID,
				CourseID:  l.CourseID,
				Title:     l.CourseTitle,
				Quantity:  l.Quantity,
				UnitPrice: l.CapturedUnitPrice,
			}
			if i < len(q.Lines) {
				line.Subtotal = q.Lines[i].Subtotal
			}
			out.Lines = append(out.Lines, line)
		}
	}
	return out
}

type PromoValidateRequestDTO struct {
	Code     string `json:"code" validate:"required,max=50" example:"SAVE10"`
	CourseID *int64 `json:"course_id,omitempty" example:"11"`
}

type PromoEstimateResponseDTO struct {
	Code            string      `json:"code" example:"SAVE10"`
	DiscountPercent string      `json:"discount_percent" example:"10"`
	Subtotal        money.Money `json:"subtotal" swaggertype:"string" example:"900.00"`
	DiscountAmount  money.Money `json:"discount_amount" swaggertype:"string" example:"90.00"`
	Total           money.Money `json:"total" swaggertype:"string" example:"2172.00"`
}

func FromEstimate(code string, percent decimal.Decimal, subtotal, discount, total money.Money) PromoEstimateResponseDTO {
	return PromoEstimateResponseDTO{
		Code:            code,
		DiscountPercent: percent.String(),
		Subtotal:        subtotal,
		DiscountAmount:  discount,
		Total:           total,
	}
}
