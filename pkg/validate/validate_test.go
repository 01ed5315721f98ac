package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/coursemart/internal/domain"
)

func TestIsLuhn(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   bool
	}{
		{name: "visa test number", number: "4111111111111111", want: true},
		{name: "grouped with spaces", number: "4111 1111 1111 1111", want: true},
		{name: "grouped with dashes", number: "5555-5555-5555-4444", want: true},
		{name: "bad checksum", number: "4111111111111112", want: false},
		{name: "too short", number: "79927398713", want: false},
		{name: "letters", number: "4111abcd11111111", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLuhn(tt.number))
		})
	}
}

func TestStruct(t *testing.T) {
	type req struct {
		Email    string `validate:"required,email"`
		Quantity int    `validate:"gt=0"`
	}

	assert.NoError(t, Struct(req{Email: "a@b.io", Quantity: 1}))

	err := Struct(req{Email: "nope", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Email:email")
	assert.Contains(t, err.Error(), "Quantity:gt")
}
