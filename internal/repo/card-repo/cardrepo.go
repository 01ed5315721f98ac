package cardrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
	"github.com/GlebRadaev/coursemart/internal/pg"
)

const cardColumns = `id, user_id, brand, last_four, holder, exp_month, exp_year, encrypted_pan, balance, is_default, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanCard(row pgx.Row) (*domain.SavedCard, error) {
	var c domain.SavedCard
	err := row.Scan(&c.ID, &c.UserID, &c.Brand, &c.LastFour, &c.Holder, &c.ExpMonth, &c.ExpYear, &c.EncryptedPAN, &c.Balance, &c.IsDefault, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) Create(ctx context.Context, c *domain.SavedCard) error {
	query := `
		INSERT INTO saved_cards (user_id, brand, last_four, holder, exp_month, exp_year, encrypted_pan, balance, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, c.UserID, c.Brand, c.LastFour, c.Holder, c.ExpMonth, c.ExpYear, c.EncryptedPAN, c.Balance, c.IsDefault).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		zap.L().Error("can't save card", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) findOne(ctx context.Context, query string, id int64) (*domain.SavedCard, error) {
	c, err := scanCard(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find card", zap.Int64("cardID", id), zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (r *Repository) FindCard(ctx context.Context, id int64) (*domain.SavedCard, error) {
	return r.findOne(ctx, `SELECT `+cardColumns+` FROM saved_cards WHERE id = $1`, id)
}

func (r *Repository) LockCard(ctx context.Context, id int64) (*domain.SavedCard, error) {
	c, err := r.findOne(ctx, `SELECT `+cardColumns+` FROM saved_cards WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: card %d", domain.ErrNotFound, id)
	}
	return c, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]domain.SavedCard, error) {
	rows, err := r.db.Query(ctx, `SELECT `+cardColumns+` FROM saved_cards WHERE user_id = $1 ORDER BY is_default DESC, id`, userID)
	if err != nil {
		zap.L().Error("failed to fetch cards", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var cards []domain.SavedCard
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			zap.L().Error("failed to scan card row", zap.Error(err))
			return nil, err
		}
		cards = append(cards, *c)
	}
	return cards, rows.Err()
}

func (r *Repository) UpdateBalance(ctx context.Context, id int64, balance money.Money) error {
	if _, err := r.db.Exec(ctx, `UPDATE saved_cards SET balance = $1 WHERE id = $2`, balance, id); err != nil {
		zap.L().Error("can't update card balance", zap.Int64("cardID", id), zap.Error(err))
		return err
	}
	return nil
}

// SetDefault moves the default flag to cardID among the user's cards.
func (r *Repository) SetDefault(ctx context.Context, userID, cardID int64) error {
	if _, err := r.db.Exec(ctx, `UPDATE saved_cards SET is_default = FALSE WHERE user_id = $1 AND is_default AND id <> $2`, userID, cardID); err != nil {
		zap.L().Error("can't clear default card", zap.Error(err))
		return err
	}
	if _, err := r.db.Exec(ctx, `UPDATE saved_cards SET is_default = TRUE WHERE id = $1 AND user_id = $2`, cardID, userID); err != nil {
		zap.L().Error("can't set default card", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM saved_cards WHERE id = $1`, id); err != nil {
		zap.L().Error("can't delete card", zap.Int64("cardID", id), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) CreateTransaction(ctx context.Context, tx *domain.CardTransaction) error {
	query := `
		INSERT INTO card_transactions (card_id, type, amount, order_id, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, tx.CardID, tx.Type, tx.Amount, tx.OrderID, tx.Description).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		zap.L().Error("can't save card transaction", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ListTransactions(ctx context.Context, cardID int64) ([]domain.CardTransaction, error) {
	query := `
		SELECT id, card_id, type, amount, order_id, description, created_at
		FROM card_transactions
		WHERE card_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, cardID)
	if err != nil {
		zap.L().Error("failed to fetch card transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var txs []domain.CardTransaction
	for rows.Next() {
		var t domain.CardTransaction
		if err := rows.Scan(&t.ID, &t.CardID, &t.Type, &t.Amount, &t.OrderID, &t.Description, &t.CreatedAt); err != nil {
			zap.L().Error("failed to scan card transaction row", zap.Error(err))
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
