package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		want      string
		expectErr bool
	}{
		{name: "plain", in: "100", want: "100.00"},
		{name: "two places", in: "2172.50", want: "2172.50"},
		{name: "half up", in: "0.125", want: "0.13"},
		{name: "below half", in: "0.124", want: "0.12"},
		{name: "spaces trimmed", in: " 5.5 ", want: "5.50"},
		{name: "malformed", in: "12,5", expectErr: true},
		{name: "empty", in: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(tt.in)
			if tt.expectErr {
				assert.ErrorIs(t, err, ErrMalformedDecimal)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		rate   string
		want   string
	}{
		{name: "vat", amount: "1810.00", rate: "20", want: "362.00"},
		{name: "profit tax", amount: "1810.00", rate: "13", want: "235.30"},
		{name: "rounds half up", amount: "0.05", rate: "50", want: "0.03"},
		{name: "zero rate", amount: "10.00", rate: "0", want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParse(tt.amount).Percent(decimal.RequireFromString(tt.rate))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDiscounted(t *testing.T) {
	assert.Equal(t, "900.00", MustParse("1000").Discounted(decimal.NewFromInt(10)).String())
	assert.Equal(t, "66.67", MustParse("100").Discounted(decimal.RequireFromString("33.333")).String())
	assert.Equal(t, "0.00", MustParse("100").Discounted(decimal.NewFromInt(100)).String())
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		weights []string
		want    []string
	}{
		{
			name:    "proportional",
			amount:  "100.00",
			weights: []string{"1", "1", "1"},
			want:    []string{"33.34", "33.33", "33.33"},
		},
		{
			name:    "remainder on heaviest",
			amount:  "10.00",
			weights: []string{"1", "2"},
			want:    []string{"3.33", "6.67"},
		},
		{
			name:    "zero weights split evenly",
			amount:  "1.00",
			weights: []string{"0", "0", "0"},
			want:    []string{"0.34", "0.33", "0.33"},
		},
		{
			name:    "single part",
			amount:  "2172.00",
			weights: []string{"900"},
			want:    []string{"2172.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weights := make([]Money, len(tt.weights))
			for i, w := range tt.weights {
				weights[i] = MustParse(w)
			}
			parts := MustParse(tt.amount).Allocate(weights)
			require.Len(t, parts, len(tt.want))
			for i := range parts {
				assert.Equal(t, tt.want[i], parts[i].String())
			}
			assert.True(t, Sum(parts...).Equal(MustParse(tt.amount)))
		})
	}
}

func TestJSON(t *testing.T) {
	type payload struct {
		Amount Money `json:"amount"`
	}
	data, err := json.Marshal(payload{Amount: MustParse("12.5")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"12.50"}`, string(data))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"7.005"}`), &p))
	assert.Equal(t, "7.01", p.Amount.String())

	require.NoError(t, json.Unmarshal([]byte(`{"amount":3}`), &p))
	assert.Equal(t, "3.00", p.Amount.String())

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"amount":"abc"}`), &p), ErrMalformedDecimal)
}

func TestScan(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "string", value: "10.10", want: "10.10"},
		{name: "bytes", value: []byte("3.333"), want: "3.33"},
		{name: "int64", value: int64(7), want: "7.00"},
		{name: "float64", value: 1.5, want: "1.50"},
		{name: "decimal", value: decimal.RequireFromString("2.345"), want: "2.35"},
		{name: "nil", value: nil, want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Money
			require.NoError(t, m.Scan(tt.value))
			assert.Equal(t, tt.want, m.String())
		})
	}

	var m Money
	assert.Error(t, m.Scan(struct{}{}))
}
