package domain

import (
	"errors"
	"net/http"

	"github.com/GlebRadaev/coursemart/internal/money"
)

// Error is a failure kind with a stable machine code.
type Error struct {
	Code       string
	Message    string
	HTTPStatus int
}

func (e *Error) Error() string { return e.Message }

func newError(code, message string, status int) *Error {
	return &Error{Code: code, Message: message, HTTPStatus: status}
}

var (
	ErrInvalidQuantity          = newError("INVALID_QUANTITY", "quantity must be a positive integer", http.StatusUnprocessableEntity)
	ErrCourseUnavailable        = newError("COURSE_UNAVAILABLE", "course is not available for purchase", http.StatusConflict)
	ErrCartEmpty                = newError("CART_EMPTY", "cart is empty", http.StatusConflict)
	ErrCartModified             = newError("CART_MODIFIED", "cart was modified during checkout, please retry", http.StatusConflict)
	ErrPromoNotFound            = newError("PROMO_NOT_FOUND", "promo code not found", http.StatusNotFound)
	ErrPromoInactive            = newError("PROMO_INACTIVE", "promo code is not active", http.StatusUnprocessableEntity)
	ErrPromoOutOfWindow         = newError("PROMO_OUT_OF_WINDOW", "promo code is not valid today", http.StatusUnprocessableEntity)
	ErrPromoAlreadyUsed         = newError("PROMO_ALREADY_USED", "promo code has already been used", http.StatusConflict)
	ErrInsufficientFunds        = newError("INSUFFICIENT_FUNDS", "insufficient funds", http.StatusPaymentRequired)
	ErrCardNotOwned             = newError("CARD_NOT_OWNED", "card does not belong to the user", http.StatusForbidden)
	ErrCardExpired              = newError("CARD_EXPIRED", "card has expired", http.StatusUnprocessableEntity)
	ErrInvalidPrice             = newError("INVALID_PRICE", "price must not be negative", http.StatusUnprocessableEntity)
	ErrInvalidPromo             = newError("INVALID_PROMO", "promotion cannot be applied", http.StatusUnprocessableEntity)
	ErrInvalidAddress           = newError("INVALID_ADDRESS", "address does not belong to the user", http.StatusUnprocessableEntity)
	ErrAlreadyPurchased         = newError("ALREADY_PURCHASED", "course has already been purchased", http.StatusConflict)
	ErrOrderNotCancellable      = newError("ORDER_NOT_CANCELLABLE", "order cannot be cancelled", http.StatusConflict)
	ErrReceiptAlreadyAnnulled   = newError("RECEIPT_ALREADY_ANNULLED", "receipt has already been annulled", http.StatusConflict)
	ErrRefundAlreadyProcessed   = newError("REFUND_ALREADY_PROCESSED", "refund has already been processed", http.StatusConflict)
	ErrNotAuthenticated         = newError("NOT_AUTHENTICATED", "authentication required", http.StatusUnauthorized)
	ErrForbidden                = newError("FORBIDDEN", "operation is not permitted", http.StatusForbidden)
	ErrUserBlocked              = newError("USER_BLOCKED", "user is blocked", http.StatusForbidden)
	ErrLedgerInvariantViolation = newError("LEDGER_INVARIANT_VIOLATION", "organization ledger cannot go negative", http.StatusConflict)
	ErrMalformedDecimal         = newError("MALFORMED_DECIMAL", "amount is not a valid decimal", http.StatusBadRequest)
	ErrConcurrencyConflict      = newError("CONCURRENCY_CONFLICT", "concurrent update detected, please retry", http.StatusConflict)

	ErrNotFound           = newError("NOT_FOUND", "resource not found", http.StatusNotFound)
	ErrInvalidInput       = newError("INVALID_INPUT", "invalid request", http.StatusBadRequest)
	ErrInvalidCard        = newError("INVALID_CARD", "card number is invalid", http.StatusUnprocessableEntity)
	ErrInvalidCredentials = newError("INVALID_CREDENTIALS", "invalid credentials", http.StatusUnauthorized)
	ErrEmailTaken         = newError("EMAIL_TAKEN", "email is already registered", http.StatusConflict)
	ErrPromoCodeTaken     = newError("PROMO_CODE_TAKEN", "promo code already exists", http.StatusConflict)
	ErrOrderNotPending    = newError("ORDER_NOT_PENDING", "order is not awaiting payment", http.StatusConflict)
	ErrSlugTaken          = newError("SLUG_TAKEN", "slug is already in use", http.StatusConflict)
)

// Lookup returns the kind carried by err, or nil for unexpected failures.
func Lookup(err error) *Error {
	if err == nil {
		return nil
	}
	if errors.Is(err, money.ErrMalformedDecimal) {
		return ErrMalformedDecimal
	}
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return nil
}
