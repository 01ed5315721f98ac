package balancerepo

import (
	"context"

	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
	"github.com/GlebRadaev/coursemart/internal/pg"
)

// Repository stores the user wallet journal.
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, tx *domain.BalanceTransaction) error {
	if tx.Status == "" {
		tx.Status = domain.TxStatusCompleted
	}
	query := `
		INSERT INTO balance_transactions (user_id, type, amount, status, order_id, course_purchase_id, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, tx.UserID, tx.Type, tx.Amount, tx.Status, tx.OrderID, tx.CoursePurchaseID, tx.Description).
		Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		zap.L().Error("can't save balance transaction", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.BalanceTransaction, error) {
	query := `
		SELECT id, user_id, type, amount, status, order_id, course_purchase_id, description, created_at
		FROM balance_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		zap.L().Error("failed to fetch balance transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var txs []domain.BalanceTransaction
	for rows.Next() {
		var t domain.BalanceTransaction
		err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Status, &t.OrderID, &t.CoursePurchaseID, &t.Description, &t.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan balance transaction row", zap.Error(err))
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// SumByOrder returns the net wallet movement recorded for an order.
func (r *Repository) SumByOrder(ctx context.Context, orderID int64) (money.Money, error) {
	var sum money.Money
	query := `SELECT COALESCE(SUM(amount), 0) FROM balance_transactions WHERE order_id = $1`
	if err := r.db.QueryRow(ctx, query, orderID).Scan(&sum); err != nil {
		zap.L().Error("failed to sum balance transactions", zap.Int64("orderID", orderID), zap.Error(err))
		return money.Zero, err
	}
	return sum, nil
}
