package tenderrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/pg"
)

const tenderColumns = `id, idempotency_key, user_id, order_id, method, card_id, amount, reversible, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) findOne(ctx context.Context, query string, args ...any) (*domain.TenderResult, error) {
	var r domain.TenderResult
	err := repo.db.QueryRow(ctx, query, args...).
		Scan(&r.ID, &r.IdempotencyKey, &r.UserID, &r.OrderID, &r.Method, &r.CardID, &r.Amount, &r.Reversible, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find tender result", zap.Error(err))
		return nil, err
	}
	return &r, nil
}

// FindByKey returns the result recorded under key no earlier than since.
func (repo *Repository) FindByKey(ctx context.Context, key string, since time.Time) (*domain.TenderResult, error) {
	return repo.findOne(ctx, `SELECT `+tenderColumns+` FROM tender_results WHERE idempotency_key = $1 AND created_at >= $2`, key, since)
}

// PurgeBefore drops results that fell out of the idempotency window.
func (repo *Repository) PurgeBefore(ctx context.Context, before time.Time) (int64, error) {
	tag, err := repo.db.Exec(ctx, `DELETE FROM tender_results WHERE created_at < $1`, before)
	if err != nil {
		zap.L().Error("can't purge tender results", zap.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (repo *Repository) Create(ctx context.Context, r *domain.TenderResult) error {
	query := `
		INSERT INTO tender_results (idempotency_key, user_id, order_id, method, card_id, amount, reversible)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := repo.db.QueryRow(ctx, query, r.IdempotencyKey, r.UserID, r.OrderID, r.Method, r.CardID, r.Amount, r.Reversible).
		Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		zap.L().Error("can't save tender result", zap.Error(err))
		return err
	}
	return nil
}
