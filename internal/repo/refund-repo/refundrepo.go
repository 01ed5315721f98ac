package refundrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/pg"
)

const refundColumns = `id, course_purchase_id, user_id, reason, amount, status, processed_by, created_at, resolved_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanRefund(row pgx.Row) (*domain.CourseRefundRequest, error) {
	var rr domain.CourseRefundRequest
	err := row.Scan(&rr.ID, &rr.CoursePurchaseID, &rr.UserID, &rr.Reason, &rr.Amount, &rr.Status, &rr.ProcessedBy, &rr.CreatedAt, &rr.ResolvedAt)
	if err != nil {
		return nil, err
	}
	return &rr, nil
}

// Create fails with a unique violation when the purchase already has a pending request.
func (r *Repository) Create(ctx context.Context, rr *domain.CourseRefundRequest) error {
	query := `
		INSERT INTO course_refund_requests (course_purchase_id, user_id, reason, amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, rr.CoursePurchaseID, rr.UserID, rr.Reason, rr.Amount, rr.Status).Scan(&rr.ID, &rr.CreatedAt)
	if err != nil {
		zap.L().Error("can't save refund request", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) LockByID(ctx context.Context, id int64) (*domain.CourseRefundRequest, error) {
	rr, err := scanRefund(r.db.QueryRow(ctx, `SELECT `+refundColumns+` FROM course_refund_requests WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find refund request", zap.Int64("requestID", id), zap.Error(err))
		return nil, err
	}
	return rr, nil
}

func (r *Repository) HasPending(ctx context.Context, purchaseID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM course_refund_requests WHERE course_purchase_id = $1 AND status = 'pending')`
	if err := r.db.QueryRow(ctx, query, purchaseID).Scan(&exists); err != nil {
		zap.L().Error("can't check refund requests", zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *Repository) Resolve(ctx context.Context, id int64, status domain.RefundStatus, processedBy *int64, at time.Time) error {
	query := `UPDATE course_refund_requests SET status = $1, processed_by = $2, resolved_at = $3 WHERE id = $4`
	if _, err := r.db.Exec(ctx, query, status, processedBy, at, id); err != nil {
		zap.L().Error("can't resolve refund request", zap.Int64("requestID", id), zap.Error(err))
		return err
	}
	return nil
}

// List filters by status when one is given.
func (r *Repository) List(ctx context.Context, status domain.RefundStatus) ([]domain.CourseRefundRequest, error) {
	query := `SELECT ` + refundColumns + ` FROM course_refund_requests WHERE ($1 = '' OR status = $1) ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, string(status))
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]domain.CourseRefundRequest, error) {
	query := `SELECT ` + refundColumns + ` FROM course_refund_requests WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, userID)
}

func (r *Repository) list(ctx context.Context, query string, arg any) ([]domain.CourseRefundRequest, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		zap.L().Error("failed to fetch refund requests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var list []domain.CourseRefundRequest
	for rows.Next() {
		rr, err := scanRefund(rows)
		if err != nil {
			zap.L().Error("failed to scan refund request row", zap.Error(err))
			return nil, err
		}
		list = append(list, *rr)
	}
	return list, rows.Err()
}
