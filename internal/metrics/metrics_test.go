package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/coursemart/internal/domain"
)

func TestResult(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "success", err: nil, want: "ok"},
		{name: "domain kind", err: domain.ErrCartEmpty, want: "cart_empty"},
		{name: "wrapped kind", err: fmt.Errorf("%w: card 3", domain.ErrCardExpired), want: "card_expired"},
		{name: "unexpected", err: errors.New("boom"), want: "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Result(tt.err))
		})
	}
}

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	Register(reg)

	CheckoutTotal.WithLabelValues("balance", "ok").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(CheckoutTotal.WithLabelValues("balance", "ok")))

	n, err := testutil.GatherAndCount(reg, "coursemart_checkout_total")
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}
