package dto

import (
	"time"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
)

type CheckoutRequestDTO struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=balance saved_card cash" example:"balance"`
	CardID        *int64 `json:"card_id,omitempty" example:"4"`
	AddressID     *int64 `json:"address_id,omitempty" example:"3"`
	PromoCode     string `json:"promo_code,omitempty" validate:"max=50" example:"SAVE10"`
}

type CheckoutResponseDTO struct {
	OrderID int64 `json:"order_id" example:"42"`
}

type OrderItemDTO struct {
	CourseID  int64       `json:"course_id" example:"11"`
	Title     string      `json:"title" example:"Go in practice"`
	Quantity  int         `json:"quantity" example:"1"`
	UnitPrice money.Money `json:"unit_price" swaggertype:"string" example:"900.00"`
	LineTotal money.Money `json:"line_total" swaggertype:"string" example:"900.00"`
}

type OrderResponseDTO struct {
	ID             int64          `json:"id" example:"42"`
	Status         string         `json:"status" example:"paid"`
	PaymentMethod  string         `json:"payment_method" example:"balance"`
	AddressID      *int64         `json:"address_id,omitempty"`
	Subtotal       money.Money    `json:"subtotal" swaggertype:"string" example:"900.00"`
	DiscountAmount money.Money    `json:"discount_amount" swaggertype:"string" example:"90.00"`
	DeliveryCost   money.Money    `json:"delivery_cost" swaggertype:"string" example:"1000.00"`
	VATAmount      money.Money    `json:"vat_amount" swaggertype:"string" example:"362.00"`
	Total          money.Money    `json:"total" swaggertype:"string" example:"2172.00"`
	VATRate        string         `json:"vat_rate" example:"20"`
	TaxRate        string         `json:"tax_rate" example:"13"`
	CanBeCancelled bool           `json:"can_be_cancelled" example:"true"`
	CreatedAt      time.Time      `json:"created_at"`
	Items          []OrderItemDTO `json:"items,omitempty"`
}

func FromOrder(o domain.Order) OrderResponseDTO {
	out := OrderResponseDTO{
		ID:             o.ID,
		Status:         string(o.Status),
		PaymentMethod:  string(o.PaymentMethod),
		AddressID:      o.AddressID,
		Subtotal:       o.Subtotal,
		DiscountAmount: o.DiscountAmount,
		DeliveryCost:   o.DeliveryCost,
		VATAmount:      o.VATAmount,
		Total:          o.Total,
		VATRate:        o.VATRate.String(),
		TaxRate:        o.TaxRate.String(),
		CanBeCancelled: o.CanBeCancelled,
		CreatedAt:      o.CreatedAt,
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, OrderItemDTO{
			CourseID:  it.CourseID,
			Title:     it.Title,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
		})
	}
	return out
}

type ReceiptResponseDTO struct {
	Number         int64                 `json:"number" example:"1"`
	OrderID        int64                 `json:"order_id" example:"42"`
	Status         string                `json:"status" example:"executed"`
	PaymentMethod  string                `json:"payment_method" example:"balance"`
	Subtotal       money.Money           `json:"subtotal" swaggertype:"string" example:"900.00"`
	DiscountAmount money.Money           `json:"discount_amount" swaggertype:"string" example:"90.00"`
	DeliveryCost   money.Money           `json:"delivery_cost" swaggertype:"string" example:"1000.00"`
	VATAmount      money.Money           `json:"vat_amount" swaggertype:"string" example:"362.00"`
	VATRate        string                `json:"vat_rate" example:"20"`
	Total          money.Money           `json:"total" swaggertype:"string" example:"2172.00"`
	IssuedAt       time.Time             `json:"issued_at"`
	AnnulledAt     *time.Time            `json:"annulled_at,omitempty"`
	Items          []OrderItemDTO        `json:"items"`
	Seller         *domain.ReceiptConfig `json:"seller,omitempty"`
}

func FromReceipt(rc domain.Receipt) ReceiptResponseDTO {
	out := ReceiptResponseDTO{
		Number:         rc.SequenceNumber,
		OrderID:        rc.OrderID,
		Status:         string(rc.Status),
		PaymentMethod:  string(rc.PaymentMethod),
		Subtotal:       rc.Subtotal,
		DiscountAmount: rc.DiscountAmount,
		DeliveryCost:   rc.DeliveryCost,
		VATAmount:      rc.VATAmount,
		VATRate:        rc.VATRate.String(),
		Total:          rc.Total,
		IssuedAt:       rc.IssuedAt,
		AnnulledAt:     rc.AnnulledAt,
		Items:          make([]OrderItemDTO, 0, len(rc.Items)),
		Seller:         rc.Config,
	}
	for _, it := range rc.Items {
		out.Items = append(out.Items, OrderItemDTO{
			CourseID:  it.CourseID,
			Title:     it.Title,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal(),
		})
	}
	return out
}
