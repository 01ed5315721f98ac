package pg

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/coursemart/internal/domain"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "serialization failure",
			err:  &pgconn.PgError{Code: "40001"},
			want: domain.ErrConcurrencyConflict,
		},
		{
			name: "deadlock",
			err:  &pgconn.PgError{Code: "40P01"},
			want: domain.ErrConcurrencyConflict,
		},
		{
			name: "promo usage unique",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: PromoUsageUniqueConstraint},
			want: domain.ErrPromoAlreadyUsed,
		},
		{
			name: "email unique",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: UserEmailUniqueConstraint},
			want: domain.ErrEmailTaken,
		},
		{
			name: "course slug unique",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: CourseSlugUniqueConstraint},
			want: domain.ErrSlugTaken,
		},
		{
			name: "category slug unique",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: CategorySlugUniqueConstraint},
			want: domain.ErrSlugTaken,
		},
		{
			name: "organization check",
			err:  &pgconn.PgError{Code: "23514", ConstraintName: "organization_account_tax_reserve_check"},
			want: domain.ErrLedgerInvariantViolation,
		},
		{
			name: "user balance check",
			err:  &pgconn.PgError{Code: "23514", ConstraintName: "users_balance_check"},
			want: domain.ErrInsufficientFunds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Translate(tt.err)
			assert.ErrorIs(t, got, tt.want)
			var pgErr *pgconn.PgError
			assert.True(t, errors.As(got, &pgErr), "driver error must stay reachable")
		})
	}
}

func TestTranslate_Passthrough(t *testing.T) {
	assert.NoError(t, Translate(nil))
	assert.ErrorIs(t, Translate(pgx.ErrNoRows), pgx.ErrNoRows)

	other := &pgconn.PgError{Code: "23505", ConstraintName: "something_else"}
	assert.Same(t, other, Translate(other))
}
