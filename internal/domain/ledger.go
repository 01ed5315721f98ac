package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/coursemart/internal/money"
)

const OrganizationAccountID int64 = 1

type OrganizationAccount struct {
	ID              int64       `db:"id"`
	Balance         money.Money `db:"balance"`
	TaxReserve      money.Money `db:"tax_reserve"`
	ReceiptSequence int64       `db:"receipt_sequence"`
	UpdatedAt       time.Time   `db:"updated_at"`
}

type LedgerType string

const (
	LedgerOrderPayment  LedgerType = "order_payment"
	LedgerCoursePayment LedgerType = "course_payment"
	LedgerOrderRefund   LedgerType = "order_refund"
	LedgerCourseRefund  LedgerType = "course_refund"
	LedgerTaxPayment    LedgerType = "tax_payment"
	LedgerWithdrawal    LedgerType = "withdrawal"
)

type OrganizationTransaction struct {
	ID               int64       `db:"id"`
	Type             LedgerType  `db:"type"`
	Amount           money.Money `db:"amount"`
	TaxSplit         money.Money `db:"tax_split"`
	BalanceBefore    money.Money `db:"balance_before"`
	BalanceAfter     money.Money `db:"balance_after"`
	TaxBefore        money.Money `db:"tax_before"`
	TaxAfter         money.Money `db:"tax_after"`
	OrderID          *int64      `db:"order_id"`
	CoursePurchaseID *int64      `db:"course_purchase_id"`
	CreatedBy        *int64      `db:"created_by"`
	Memo             string      `db:"memo"`
	CreatedAt        time.Time   `db:"created_at"`
}

type ReceiptStatus string

const (
	ReceiptExecuted ReceiptStatus = "executed"
	ReceiptAnnulled ReceiptStatus = "annulled"
)

type ReceiptConfig struct {
	CompanyName string `db:"company_name" json:"company_name"`
	TaxID       string `db:"tax_id" json:"tax_id"`
	Address     string `db:"address" json:"address"`
}

type Receipt struct {
	ID             int64           `db:"id"`
	OrderID        int64           `db:"order_id"`
	SequenceNumber int64           `db:"sequence_number"`
	Status         ReceiptStatus   `db:"status"`
	PaymentMethod  PaymentMethod   `db:"payment_method"`
	Subtotal       money.Money     `db:"subtotal"`
	DiscountAmount money.Money     `db:"discount_amount"`
	DeliveryCost   money.Money     `db:"delivery_cost"`
	VATAmount      money.Money     `db:"vat_amount"`
	VATRate        decimal.Decimal `db:"vat_rate"`
	Total          money.Money     `db:"total"`
	IssuedAt       time.Time       `db:"issued_at"`
	AnnulledAt     *time.Time      `db:"annulled_at"`
	Items          []ReceiptItem   `db:"-"`
	Config         *ReceiptConfig  `db:"-"`
}

type ReceiptItem struct {
	ID        int64       `db:"id"`
	ReceiptID int64       `db:"receipt_id"`
	CourseID  int64       `db:"course_id"`
	Title     string      `db:"title"`
	Quantity  int         `db:"quantity"`
	UnitPrice money.Money `db:"unit_price"`
}

// LineTotal is derived from the stored quantity and unit price.
func (it ReceiptItem) LineTotal() money.Money {
	return it.UnitPrice.MulInt(int64(it.Quantity))
}
