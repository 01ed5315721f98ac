// Package pricing turns cart lines into a Quote. It performs no I/O.
package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
)

type Rates struct {
	DeliveryCost     money.Money
	VATPercent       decimal.Decimal
	ProfitTaxPercent decimal.Decimal
}

func DefaultRates() Rates {
	return Rates{
		DeliveryCost:     money.FromInt(1000),
		VATPercent:       decimal.NewFromInt(20),
		ProfitTaxPercent: decimal.NewFromInt(13),
	}
}

type Line struct {
	CourseID  int64
	Title     string
	Quantity  int
	UnitPrice money.Money
}

type LineQuote struct {
	Line
	Subtotal money.Money
	// Allocation is the line's share of Total, TaxShare its share of ProfitTaxAmount.
	Allocation money.Money
	TaxShare   money.Money
}

type Quote struct {
	Lines           []LineQuote
	Subtotal        money.Money
	DiscountPercent decimal.Decimal
	DiscountAmount  money.Money
	DeliveryCost    money.Money
	PreVAT          money.Money
	VATAmount       money.Money
	ProfitTaxAmount money.Money
	Total           money.Money
	VATRate         decimal.Decimal
	ProfitTaxRate   decimal.Decimal
}

// Net is the part of Total that lands on the organization balance.
func (q Quote) Net() money.Money {
	return q.Total.Sub(q.ProfitTaxAmount)
}

// Calculate prices lines under rates. A non-nil promo must be active and
// valid on today's date.
func Calculate(lines []Line, promo *domain.Promotion, today time.Time, rates Rates) (Quote, error) {
	q := Quote{
		Lines:         make([]LineQuote, len(lines)),
		DeliveryCost:  rates.DeliveryCost,
		VATRate:       rates.VATPercent,
		ProfitTaxRate: rates.ProfitTaxPercent,
	}

	for i, l := range lines {
		if l.Quantity <= 0 {
			return Quote{}, fmt.Errorf("%w: course %d quantity %d", domain.ErrInvalidQuantity, l.CourseID, l.Quantity)
		}
		if l.UnitPrice.IsNegative() {
			return Quote{}, fmt.Errorf("%w: course %d price %s", domain.ErrInvalidPrice, l.CourseID, l.UnitPrice)
		}
		q.Lines[i] = LineQuote{Line: l, Subtotal: l.UnitPrice.MulInt(int64(l.Quantity))}
		q.Subtotal = q.Subtotal.Add(q.Lines[i].Subtotal)
	}

	if promo != nil {
		if err := CheckPromotion(promo, today); err != nil {
			return Quote{}, fmt.Errorf("%w: %w", domain.ErrInvalidPromo, err)
		}
		q.DiscountPercent = promo.DiscountPercent
		q.DiscountAmount = q.Subtotal.Percent(promo.DiscountPercent)
	}

	q.PreVAT = q.Subtotal.Sub(q.DiscountAmount).Add(q.DeliveryCost)
	q.VATAmount = q.PreVAT.Percent(rates.VATPercent)
	q.ProfitTaxAmount = q.PreVAT.Add(q.VATAmount).Percent(rates.ProfitTaxPercent)
	q.Total = q.PreVAT.Add(q.VATAmount)

	weights := make([]money.Money, len(q.Lines))
	for i := range q.Lines {
		weights[i] = q.Lines[i].Subtotal
	}
	allocations := q.Total.Allocate(weights)
	taxShares := q.ProfitTaxAmount.Allocate(weights)
	for i := range q.Lines {
		q.Lines[i].Allocation = allocations[i]
		q.Lines[i].TaxShare = taxShares[i]
	}
	return q, nil
}

// CheckPromotion validates the promotion's own state, not its usage.
func CheckPromotion(p *domain.Promotion, today time.Time) error {
	if !p.Active {
		return domain.ErrPromoInactive
	}
	day := truncateDay(today)
	if p.StartDate != nil && day.Before(truncateDay(*p.StartDate)) {
		return domain.ErrPromoOutOfWindow
	}
	if p.EndDate != nil && day.After(truncateDay(*p.EndDate)) {
		return domain.ErrPromoOutOfWindow
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
