// Package money implements fixed-point amounts rounded half-up to two
// fractional digits.
package money

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const places = 2

var ErrMalformedDecimal = errors.New("malformed decimal")

var hundred = decimal.NewFromInt(100)

// Money is always rounded to two places; every arithmetic method rounds its
// result before returning.
type Money struct {
	d decimal.Decimal
}

var Zero = Money{}

func New(d decimal.Decimal) Money {
	return Money{d: d.Round(places)}
}

func FromInt(v int64) Money {
	return New(decimal.NewFromInt(v))
}

func FromCents(c int64) Money {
	return Money{d: decimal.New(c, -places)}
}

func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrMalformedDecimal, s)
	}
	return New(d), nil
}

func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseRate parses a percentage such as "20" or "12.5".
func ParseRate(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedDecimal, s)
	}
	return d, nil
}

func (m Money) Decimal() decimal.Decimal { return m.d }

func (m Money) Add(o Money) Money { return New(m.d.Add(o.d)) }

func (m Money) Sub(o Money) Money { return New(m.d.Sub(o.d)) }

func (m Money) Neg() Money { return New(m.d.Neg()) }

func (m Money) MulInt(q int64) Money { return New(m.d.Mul(decimal.NewFromInt(q))) }

// Percent returns round₂(m × p / 100).
func (m Money) Percent(p decimal.Decimal) Money {
	return New(m.d.Mul(p).Shift(-places))
}

// Discounted returns round₂(m × (1 − p/100)).
func (m Money) Discounted(p decimal.Decimal) Money {
	return New(m.d.Mul(hundred.Sub(p)).Shift(-places))
}

// Allocate splits m proportionally to weights. Parts sum to m exactly; the
// rounding remainder lands on the heaviest weight. Zero total weight splits
// evenly.
func (m Money) Allocate(weights []Money) []Money {
	if len(weights) == 0 {
		return nil
	}
	parts := make([]Money, len(weights))
	total := Zero
	heaviest := 0
	for i, w := range weights {
		total = total.Add(w)
		if w.GreaterThan(weights[heaviest]) {
			heaviest = i
		}
	}

	allocated := Zero
	for i, w := range weights {
		if total.IsZero() {
			parts[i] = New(m.d.Div(decimal.NewFromInt(int64(len(weights)))))
		} else {
			parts[i] = New(m.d.Mul(w.d).Div(total.d))
		}
		allocated = allocated.Add(parts[i])
	}
	parts[heaviest] = parts[heaviest].Add(m.Sub(allocated))
	return parts
}

func (m Money) Cmp(o Money) int { return m.d.Cmp(o.d) }

func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }

func (m Money) LessThan(o Money) bool { return m.d.LessThan(o.d) }

func (m Money) GreaterThan(o Money) bool { return m.d.GreaterThan(o.d) }

func (m Money) IsZero() bool { return m.d.IsZero() }

func (m Money) IsNegative() bool { return m.d.IsNegative() }

func (m Money) IsPositive() bool { return m.d.IsPositive() }

func (m Money) String() string { return m.d.StringFixed(places) }

func Sum(ms ...Money) Money {
	total := Zero
	for _, m := range ms {
		total = total.Add(m)
	}
	return total
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*m = Zero
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m *Money) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*m = Zero
	case string:
		return m.scanString(v)
	case []byte:
		return m.scanString(string(v))
	case float64:
		*m = New(decimal.NewFromFloat(v))
	case int64:
		*m = FromInt(v)
	case int:
		*m = FromInt(int64(v))
	case decimal.Decimal:
		*m = New(v)
	default:
		return fmt.Errorf("money: cannot scan %T", value)
	}
	return nil
}

func (m *Money) scanString(s string) error {
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}
