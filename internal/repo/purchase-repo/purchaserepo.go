package purchaserepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/pg"
)

const purchaseColumns = `id, user_id, course_id, order_id, amount, tax_share, payment_method, status, purchased_at, completed_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanPurchase(row pgx.Row) (*domain.CoursePurchase, error) {
	var p domain.CoursePurchase
	err := row.Scan(&p.ID, &p.UserID, &p.CourseID, &p.OrderID, &p.Amount, &p.TaxShare, &p.PaymentMethod, &p.Status, &p.PurchasedAt, &p.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (repo *Repository) Create(ctx context.Context, p *domain.CoursePurchase) error {
	query := `
		INSERT INTO course_purchases (user_id, course_id, order_id, amount, tax_share, payment_method, status, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, purchased_at
	`
	err := repo.db.QueryRow(ctx, query, p.UserID, p.CourseID, p.OrderID, p.Amount, p.TaxShare, p.PaymentMethod, p.Status, p.CompletedAt).
		Scan(&p.ID, &p.PurchasedAt)
	if err != nil {
		zap.L().Error("can't save course purchase", zap.Error(err))
		return err
	}
	return nil
}

func (repo *Repository) findOne(ctx context.Context, query string, id int64) (*domain.CoursePurchase, error) {
	p, err := scanPurchase(repo.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find course purchase", zap.Int64("purchaseID", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (repo *Repository) FindByID(ctx context.Context, id int64) (*domain.CoursePurchase, error) {
	return repo.findOne(ctx, `SELECT `+purchaseColumns+` FROM course_purchases WHERE id = $1`, id)
}

func (repo *Repository) LockByID(ctx context.Context, id int64) (*domain.CoursePurchase, error) {
	return repo.findOne(ctx, `SELECT `+purchaseColumns+` FROM course_purchases WHERE id = $1 FOR UPDATE`, id)
}

func (repo *Repository) list(ctx context.Context, query string, id int64) ([]domain.CoursePurchase, error) {
	rows, err := repo.db.Query(ctx, query, id)
	if err != nil {
		zap.L().Error("can't list course purchases", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var purchases []domain.CoursePurchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			zap.L().Error("can't scan course purchase", zap.Error(err))
			return nil, err
		}
		purchases = append(purchases, *p)
	}
	return purchases, rows.Err()
}

// ListByOrder locks the purchases of an order.
func (repo *Repository) ListByOrder(ctx context.Context, orderID int64) ([]domain.CoursePurchase, error) {
	return repo.list(ctx, `SELECT `+purchaseColumns+` FROM course_purchases WHERE order_id = $1 ORDER BY id FOR UPDATE`, orderID)
}

func (repo *Repository) ListByUser(ctx context.Context, userID int64) ([]domain.CoursePurchase, error) {
	return repo.list(ctx, `SELECT `+purchaseColumns+` FROM course_purchases WHERE user_id = $1 ORDER BY purchased_at DESC, id DESC`, userID)
}

func (repo *Repository) UpdateStatus(ctx context.Context, id int64, status domain.PurchaseStatus, completedAt *time.Time) error {
	query := `UPDATE course_purchases SET status = $1, completed_at = COALESCE($2, completed_at) WHERE id = $3`
	if _, err := repo.db.Exec(ctx, query, status, completedAt, id); err != nil {
		zap.L().Error("can't update course purchase", zap.Int64("purchaseID", id), zap.Error(err))
		return err
	}
	return nil
}

// HasActive reports whether the user holds a pending or completed purchase of the course.
func (repo *Repository) HasActive(ctx context.Context, userID, courseID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM course_purchases WHERE user_id = $1 AND course_id = $2 AND status IN ('pending', 'completed'))`
	if err := repo.db.QueryRow(ctx, query, userID, courseID).Scan(&exists); err != nil {
		zap.L().Error("can't check course ownership", zap.Error(err))
		return false, err
	}
	return exists, nil
}

// HasCompleted reports whether the user is entitled to the course.
func (repo *Repository) HasCompleted(ctx context.Context, userID, courseID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM course_purchases WHERE user_id = $1 AND course_id = $2 AND status = 'completed')`
	if err := repo.db.QueryRow(ctx, query, userID, courseID).Scan(&exists); err != nil {
		zap.L().Error("can't check course entitlement", zap.Error(err))
		return false, err
	}
	return exists, nil
}
