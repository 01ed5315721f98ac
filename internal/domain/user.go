package domain

import (
	"slices"
	"time"

	"github.com/GlebRadaev/coursemart/internal/money"
)

type Capability string

const (
	CapabilitySelf    Capability = "self"
	CapabilityAdmin   Capability = "admin"
	CapabilityManager Capability = "manager"
)

type User struct {
	ID           int64        `db:"id"`
	Email        string       `db:"email"`
	Name         string       `db:"name"`
	PasswordHash string       `db:"password_hash"`
	Balance      money.Money  `db:"balance"`
	Blocked      bool         `db:"blocked"`
	Capabilities []Capability `db:"capabilities"`
	CreatedAt    time.Time    `db:"created_at"`
}

// Actor is the authenticated principal issuing a command.
type Actor struct {
	UserID       int64
	Capabilities []Capability
}

// SystemActor is used by background jobs.
var SystemActor = Actor{Capabilities: []Capability{CapabilityAdmin}}

func (a Actor) Has(c Capability) bool {
	return slices.Contains(a.Capabilities, c)
}

// IsStaff reports whether the actor may act on other users' records.
func (a Actor) IsStaff() bool {
	return a.Has(CapabilityAdmin) || a.Has(CapabilityManager)
}

func (a Actor) CreatedBy() *int64 {
	if a.UserID == 0 {
		return nil
	}
	id := a.UserID
	return &id
}

type Address struct {
	ID         int64     `db:"id"`
	UserID     int64     `db:"user_id"`
	Line       string    `db:"line"`
	City       string    `db:"city"`
	PostalCode string    `db:"postal_code"`
	CreatedAt  time.Time `db:"created_at"`
}

type UserNotification struct {
	ID           int64     `db:"id"`
	UserID       int64     `db:"user_id"`
	CompletionID *int64    `db:"completion_id"`
	Message      string    `db:"message"`
	IsRead       bool      `db:"is_read"`
	CreatedAt    time.Time `db:"created_at"`
}

type ActivityEntry struct {
	ID         int64          `db:"id" json:"id"`
	ActorID    *int64         `db:"actor_id" json:"actor_id,omitempty"`
	Action     string         `db:"action" json:"action"`
	TargetType string         `db:"target_type" json:"target_type"`
	TargetID   int64          `db:"target_id" json:"target_id"`
	Details    map[string]any `db:"details" json:"details,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
}

const (
	ActivityOrderCreated      = "order_created"
	ActivityOrderCancelled    = "order_cancelled"
	ActivityOrderPaid         = "order_paid"
	ActivityRefundRequested   = "course_refund_requested"
	ActivityRefundApproved    = "course_refund_approved"
	ActivityRefundRejected    = "course_refund_rejected"
	ActivityLedgerOperation   = "ledger_operation"
	ActivityPromotionCreated  = "promotion_created"
	ActivityUserBlocked       = "user_blocked"
	ActivityUserUnblocked     = "user_unblocked"
	ActivityAdminCommented    = "lesson_comment_answered"
	ActivityBalanceDeposit    = "balance_deposit"
	ActivityBalanceWithdrawal = "balance_withdrawal"
	ActivityCourseCreated     = "course_created"
	ActivityCourseUpdated     = "course_updated"
	ActivityCategoryCreated   = "category_created"
)
