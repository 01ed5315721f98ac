package pricing

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
)

var today = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func day(offset int) *time.Time {
	d := today.AddDate(0, 0, offset)
	return &d
}

func promo(percent int64) *domain.Promotion {
	return &domain.Promotion{
		ID:              1,
		Code:            "SAVE10",
		DiscountPercent: decimal.NewFromInt(percent),
		StartDate:       day(-1),
		EndDate:         day(1),
		Active:          true,
	}
}

func courseA() Line {
	return Line{CourseID: 1, Title: "A", Quantity: 1, UnitPrice: money.MustParse("900.00")}
}

func TestCalculate_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		lines     []Line
		promo     *domain.Promotion
		subtotal  string
		discount  string
		preVAT    string
		vat       string
		profitTax string
		total     string
	}{
		{
			name:      "without promo",
			lines:     []Line{courseA()},
			subtotal:  "900.00",
			discount:  "0.00",
			preVAT:    "1900.00",
			vat:       "380.00",
			profitTax: "296.40",
			total:     "2280.00",
		},
		{
			name:      "with ten percent promo",
			lines:     []Line{courseA()},
			promo:     promo(10),
			subtotal:  "900.00",
			discount:  "90.00",
			preVAT:    "1810.00",
			vat:       "362.00",
			profitTax: "282.36",
			total:     "2172.00",
		},
		{
			name:      "rounding at every intermediate",
			lines:     []Line{{CourseID: 2, Quantity: 1, UnitPrice: money.MustParse("0.05")}},
			promo:     promo(10),
			subtotal:  "0.05",
			discount:  "0.01",
			preVAT:    "1000.04",
			vat:       "200.01",
			profitTax: "156.01",
			total:     "1200.05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Calculate(tt.lines, tt.promo, today, DefaultRates())
			require.NoError(t, err)
			assert.Equal(t, tt.subtotal, q.Subtotal.String())
			assert.Equal(t, tt.discount, q.DiscountAmount.String())
			assert.Equal(t, "1000.00", q.DeliveryCost.String())
			assert.Equal(t, tt.preVAT, q.PreVAT.String())
			assert.Equal(t, tt.vat, q.VATAmount.String())
			assert.Equal(t, tt.profitTax, q.ProfitTaxAmount.String())
			assert.Equal(t, tt.total, q.Total.String())
			assert.Equal(t, "20", q.VATRate.String())
			assert.Equal(t, "13", q.ProfitTaxRate.String())
		})
	}
}

func TestCalculate_Errors(t *testing.T) {
	inactive := promo(10)
	inactive.Active = false
	expired := promo(10)
	expired.EndDate = day(-2)

	tests := []struct {
		name    string
		lines   []Line
		promo   *domain.Promotion
		wantErr error
	}{
		{
			name:    "zero quantity",
			lines:   []Line{{CourseID: 1, Quantity: 0, UnitPrice: money.FromInt(10)}},
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name:    "negative quantity",
			lines:   []Line{{CourseID: 1, Quantity: -2, UnitPrice: money.FromInt(10)}},
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name:    "negative price",
			lines:   []Line{{CourseID: 1, Quantity: 1, UnitPrice: money.MustParse("-1")}},
			wantErr: domain.ErrInvalidPrice,
		},
		{
			name:    "inactive promo",
			lines:   []Line{courseA()},
			promo:   inactive,
			wantErr: domain.ErrInvalidPromo,
		},
		{
			name:    "expired promo",
			lines:   []Line{courseA()},
			promo:   expired,
			wantErr: domain.ErrPromoOutOfWindow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.lines, tt.promo, today, DefaultRates())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCalculate_EmptyCartIsDeliveryWithVAT(t *testing.T) {
	q, err := Calculate(nil, nil, today, DefaultRates())
	require.NoError(t, err)
	assert.Equal(t, "1200.00", q.Total.String())
	assert.Empty(t, q.Lines)
}

func TestCalculate_ZeroPercentPromoIsNoop(t *testing.T) {
	lines := []Line{courseA(), {CourseID: 2, Quantity: 3, UnitPrice: money.MustParse("333.33")}}

	without, err := Calculate(lines, nil, today, DefaultRates())
	require.NoError(t, err)
	with, err := Calculate(lines, promo(0), today, DefaultRates())
	require.NoError(t, err)

	assert.Equal(t, without.Total.String(), with.Total.String())
	assert.Equal(t, without.VATAmount.String(), with.VATAmount.String())
	assert.Equal(t, without.ProfitTaxAmount.String(), with.ProfitTaxAmount.String())
	assert.True(t, with.DiscountAmount.IsZero())
}

func TestCalculate_Properties(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		n := 1 + rnd.Intn(4)
		lines := make([]Line, n)
		for j := range lines {
			lines[j] = Line{
				CourseID:  int64(j + 1),
				Quantity:  1 + rnd.Intn(5),
				UnitPrice: money.FromCents(int64(rnd.Intn(500000))),
			}
		}
		var p *domain.Promotion
		if rnd.Intn(2) == 0 {
			p = promo(int64(rnd.Intn(101)))
		}

		q, err := Calculate(lines, p, today, DefaultRates())
		require.NoError(t, err)

		for _, m := range []money.Money{q.Subtotal, q.DiscountAmount, q.PreVAT, q.VATAmount, q.ProfitTaxAmount, q.Total} {
			assert.False(t, m.IsNegative())
		}
		assert.True(t, q.Total.Equal(q.Subtotal.Sub(q.DiscountAmount).Add(q.DeliveryCost).Add(q.VATAmount)))

		allocated, taxes := money.Zero, money.Zero
		for _, l := range q.Lines {
			allocated = allocated.Add(l.Allocation)
			taxes = taxes.Add(l.TaxShare)
		}
		assert.True(t, allocated.Equal(q.Total), "allocations must sum to total")
		assert.True(t, taxes.Equal(q.ProfitTaxAmount), "tax shares must sum to profit tax")

		bumped := make([]Line, n)
		copy(bumped, lines)
		k := rnd.Intn(n)
		bumped[k].Quantity++
		q2, err := Calculate(bumped, p, today, DefaultRates())
		require.NoError(t, err)
		assert.False(t, q2.Total.LessThan(q.Total), "total must not decrease when quantity grows")
	}
}

func TestCheckPromotion(t *testing.T) {
	tests := []struct {
		name    string
		start   *time.Time
		end     *time.Time
		at      time.Time
		active  bool
		wantErr error
	}{
		{name: "single day, later that day", start: day(0), end: day(0), at: today.Add(11 * time.Hour), active: true},
		{name: "single day, next day", start: day(0), end: day(0), at: today.AddDate(0, 0, 1), active: true, wantErr: domain.ErrPromoOutOfWindow},
		{name: "single day, previous day", start: day(0), end: day(0), at: today.AddDate(0, 0, -1), active: true, wantErr: domain.ErrPromoOutOfWindow},
		{name: "no dates", at: today.AddDate(5, 0, 0), active: true},
		{name: "start only, after start", start: day(-3), at: today.AddDate(1, 0, 0), active: true},
		{name: "start only, before start", start: day(3), at: today, active: true, wantErr: domain.ErrPromoOutOfWindow},
		{name: "end only, before end", end: day(3), at: today.AddDate(-1, 0, 0), active: true},
		{name: "end only, after end", end: day(-1), at: today, active: true, wantErr: domain.ErrPromoOutOfWindow},
		{name: "inactive", start: day(0), end: day(0), at: today, wantErr: domain.ErrPromoInactive},
		{name: "inactive without dates", at: today, wantErr: domain.ErrPromoInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := promo(5)
			p.StartDate, p.EndDate, p.Active = tt.start, tt.end, tt.active

			err := CheckPromotion(p, tt.at)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCalculate_OpenEndedPromotion(t *testing.T) {
	p := promo(10)
	p.StartDate, p.EndDate = nil, nil

	q, err := Calculate([]Line{courseA()}, p, today, DefaultRates())
	require.NoError(t, err)
	assert.Equal(t, "90.00", q.DiscountAmount.String())
}
