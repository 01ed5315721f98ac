package promorepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/pg"
)

const promoColumns = `id, code, discount_percent, start_date, end_date, active, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanPromotion(row pgx.Row) (*domain.Promotion, error) {
	var p domain.Promotion
	if err := row.Scan(&p.ID, &p.Code, &p.DiscountPercent, &p.StartDate, &p.EndDate, &p.Active, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (repo *Repository) FindByCode(ctx context.Context, code string) (*domain.Promotion, error) {
	p, err := scanPromotion(repo.db.QueryRow(ctx, `SELECT `+promoColumns+` FROM promotions WHERE code = upper($1)`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find promotion", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (repo *Repository) HasUsage(ctx context.Context, userID, promotionID int64) (bool, error) {
	var used bool
	query := `SELECT EXISTS (SELECT 1 FROM promo_usages WHERE user_id = $1 AND promotion_id = $2)`
	if err := repo.db.QueryRow(ctx, query, userID, promotionID).Scan(&used); err != nil {
		zap.L().Error("can't check promo usage", zap.Error(err))
		return false, err
	}
	return used, nil
}

// CreateUsage fails with domain.ErrPromoAlreadyUsed on a repeated (user, promotion) pair.
func (repo *Repository) CreateUsage(ctx context.Context, usage *domain.PromoUsage) error {
	query := `
		INSERT INTO promo_usages (user_id, promotion_id, order_id, course_purchase_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, used_at
	`
	err := repo.db.QueryRow(ctx, query, usage.UserID, usage.PromotionID, usage.OrderID, usage.CoursePurchaseID).
		Scan(&usage.ID, &usage.UsedAt)
	if err != nil {
		zap.L().Error("can't save promo usage", zap.Error(err))
		return err
	}
	return nil
}

func (repo *Repository) Create(ctx context.Context, p *domain.Promotion) error {
	query := `
		INSERT INTO promotions (code, discount_percent, start_date, end_date, active)
		VALUES (upper($1), $2, $3, $4, $5)
		RETURNING id, code, created_at
	`
	err := repo.db.QueryRow(ctx, query, p.Code, p.DiscountPercent, p.StartDate, p.EndDate, p.Active).
		Scan(&p.ID, &p.Code, &p.CreatedAt)
	if err != nil {
		zap.L().Error("can't save promotion", zap.Error(err))
		return err
	}
	return nil
}

func (repo *Repository) List(ctx context.Context) ([]domain.Promotion, error) {
	return repo.list(ctx, `SELECT `+promoColumns+` FROM promotions ORDER BY created_at DESC, id DESC`)
}

// ListUnused returns active promotions the user has not redeemed yet; the date
// window is left to the caller.
func (repo *Repository) ListUnused(ctx context.Context, userID int64) ([]domain.Promotion, error) {
	query := `
		SELECT ` + promoColumns + `
		FROM promotions p
		WHERE active AND NOT EXISTS (SELECT 1 FROM promo_usages u WHERE u.promotion_id = p.id AND u.user_id = $1)
		ORDER BY code
	`
	return repo.list(ctx, query, userID)
}

func (repo *Repository) list(ctx context.Context, query string, args ...any) ([]domain.Promotion, error) {
	rows, err := repo.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't list promotions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var promos []domain.Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		promos = append(promos, *p)
	}
	return promos, rows.Err()
}
