package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/coursemart/internal/money"
)

type Cart struct {
	ID        int64      `db:"id"`
	UserID    int64      `db:"user_id"`
	Version   int64      `db:"version"`
	UpdatedAt time.Time  `db:"updated_at"`
	Lines     []CartLine `db:"-"`
}

func (c *Cart) Empty() bool { return c == nil || len(c.Lines) == 0 }

type CartLine struct {
	ID                int64       `db:"id"`
	CartID            int64       `db:"cart_id"`
	CourseID          int64       `db:"course_id"`
	CourseTitle       string      `db:"title"`
	Quantity          int         `db:"quantity"`
	CapturedUnitPrice money.Money `db:"captured_unit_price"`
}

// Promotion is valid on [StartDate, EndDate]; a nil bound leaves that side open.
type Promotion struct {
	ID              int64           `db:"id"`
	Code            string          `db:"code"`
	DiscountPercent decimal.Decimal `db:"discount_percent"`
	StartDate       *time.Time      `db:"start_date"`
	EndDate         *time.Time      `db:"end_date"`
	Active          bool            `db:"active"`
	CreatedAt       time.Time       `db:"created_at"`
}

type PromoUsage struct {
	ID               int64     `db:"id"`
	UserID           int64     `db:"user_id"`
	PromotionID      int64     `db:"promotion_id"`
	OrderID          *int64    `db:"order_id"`
	CoursePurchaseID *int64    `db:"course_purchase_id"`
	UsedAt           time.Time `db:"used_at"`
}

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentBalance   PaymentMethod = "balance"
	PaymentSavedCard PaymentMethod = "saved_card"
	PaymentCash      PaymentMethod = "cash"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentBalance, PaymentSavedCard, PaymentCash:
		return true
	}
	return false
}

// Deferred reports whether money moves only after staff confirmation.
func (m PaymentMethod) Deferred() bool { return m == PaymentCash }

type Order struct {
	ID              int64           `db:"id"`
	UserID          int64           `db:"user_id"`
	AddressID       *int64          `db:"address_id"`
	Status          OrderStatus     `db:"status"`
	PaymentMethod   PaymentMethod   `db:"payment_method"`
	CardID          *int64          `db:"card_id"`
	PaidFromBalance bool            `db:"paid_from_balance"`
	PromotionID     *int64          `db:"promotion_id"`
	Subtotal        money.Money     `db:"subtotal"`
	DiscountAmount  money.Money     `db:"discount_amount"`
	DeliveryCost    money.Money     `db:"delivery_cost"`
	VATAmount       money.Money     `db:"vat_amount"`
	ProfitTaxAmount money.Money     `db:"profit_tax_amount"`
	Total           money.Money     `db:"total"`
	VATRate         decimal.Decimal `db:"vat_rate"`
	TaxRate         decimal.Decimal `db:"tax_rate"`
	CanBeCancelled  bool            `db:"can_be_cancelled"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
	Items           []OrderItem     `db:"-"`
}

type OrderItem struct {
	ID        int64       `db:"id"`
	OrderID   int64       `db:"order_id"`
	CourseID  int64       `db:"course_id"`
	Title     string      `db:"title"`
	Quantity  int         `db:"quantity"`
	UnitPrice money.Money `db:"unit_price"`
	LineTotal money.Money `db:"line_total"`
}

type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "pending"
	PurchaseCompleted PurchaseStatus = "completed"
	PurchaseRefunded  PurchaseStatus = "refunded"
)

type CoursePurchase struct {
	ID            int64          `db:"id"`
	UserID        int64          `db:"user_id"`
	CourseID      int64          `db:"course_id"`
	OrderID       *int64         `db:"order_id"`
	Amount        money.Money    `db:"amount"`
	TaxShare      money.Money    `db:"tax_share"`
	PaymentMethod PaymentMethod  `db:"payment_method"`
	Status        PurchaseStatus `db:"status"`
	PurchasedAt   time.Time      `db:"purchased_at"`
	CompletedAt   *time.Time     `db:"completed_at"`
}

type TenderResult struct {
	ID             int64         `db:"id"`
	IdempotencyKey string        `db:"idempotency_key"`
	UserID         int64         `db:"user_id"`
	OrderID        int64         `db:"order_id"`
	Method         PaymentMethod `db:"method"`
	CardID         *int64        `db:"card_id"`
	Amount         money.Money   `db:"amount"`
	Reversible     bool          `db:"reversible"`
	CreatedAt      time.Time     `db:"created_at"`
}

type RefundStatus string

const (
	RefundPending  RefundStatus = "pending"
	RefundApproved RefundStatus = "approved"
	RefundRejected RefundStatus = "rejected"
)

type CourseRefundRequest struct {
	ID               int64        `db:"id"`
	CoursePurchaseID int64        `db:"course_purchase_id"`
	UserID           int64        `db:"user_id"`
	Reason           string       `db:"reason"`
	Amount           money.Money  `db:"amount"`
	Status           RefundStatus `db:"status"`
	ProcessedBy      *int64       `db:"processed_by"`
	CreatedAt        time.Time    `db:"created_at"`
	ResolvedAt       *time.Time   `db:"resolved_at"`
}
