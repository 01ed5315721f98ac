package pg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/GlebRadaev/coursemart/internal/domain"
)

const (
	codeUniqueViolation      = "23505"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// Constraint names referenced by Translate; they are declared in migrations.
const (
	PromoUsageUniqueConstraint   = "promo_usages_user_promotion_key"
	TenderKeyUniqueConstraint    = "tender_results_idempotency_key_key"
	UserEmailUniqueConstraint    = "users_email_key"
	PromoCodeUniqueConstraint    = "promotions_code_key"
	CourseSlugUniqueConstraint   = "courses_slug_key"
	CategorySlugUniqueConstraint = "course_categories_slug_key"
)

// Translate maps database failures onto domain error kinds. Unknown errors are
// returned unchanged.
func Translate(err error) error {
	var pgErr *pgconn.PgError
	if err == nil || !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeSerializationFailure, codeDeadlockDetected:
		return fmt.Errorf("%w: %w", domain.ErrConcurrencyConflict, err)
	case codeUniqueViolation:
		switch pgErr.ConstraintName {
		case PromoUsageUniqueConstraint:
			return fmt.Errorf("%w: %w", domain.ErrPromoAlreadyUsed, err)
		case TenderKeyUniqueConstraint:
			return fmt.Errorf("%w: %w", domain.ErrConcurrencyConflict, err)
		case UserEmailUniqueConstraint:
			return fmt.Errorf("%w: %w", domain.ErrEmailTaken, err)
		case PromoCodeUniqueConstraint:
			return fmt.Errorf("%w: %w", domain.ErrPromoCodeTaken, err)
		case CourseSlugUniqueConstraint, CategorySlugUniqueConstraint:
			return fmt.Errorf("%w: %w", domain.ErrSlugTaken, err)
		}
	case codeCheckViolation:
		switch {
		case strings.HasPrefix(pgErr.ConstraintName, "organization_"):
			return fmt.Errorf("%w: %w", domain.ErrLedgerInvariantViolation, err)
		case strings.HasSuffix(pgErr.ConstraintName, "_balance_check"):
			return fmt.Errorf("%w: %w", domain.ErrInsufficientFunds, err)
		}
	}
	return err
}
