package cartrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
	"github.com/GlebRadaev/coursemart/internal/pg"
)

const (
	findCartSQL = `SELECT id, user_id, version, updated_at FROM carts WHERE user_id = $1`
	lockCartSQL = findCartSQL + ` FOR UPDATE`

	ensureCartSQL = `
		INSERT INTO carts (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`
	listLinesSQL = `
		SELECT l.id, l.cart_id, l.course_id, c.title, l.quantity, l.captured_unit_price
		FROM cart_lines l
		JOIN courses c ON c.id = l.course_id
		WHERE l.cart_id = $1
		ORDER BY l.id
	`
	addLineSQL = `
		INSERT INTO cart_lines (cart_id, course_id, quantity, captured_unit_price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT cart_lines_cart_course_key
		DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
	`
	updateQuantitySQL = `UPDATE cart_lines SET quantity = $1 WHERE id = $2 AND cart_id = $3`
	updatePriceSQL    = `UPDATE cart_lines SET captured_unit_price = $1 WHERE id = $2 AND cart_id = $3`
	removeLineSQL     = `DELETE FROM cart_lines WHERE id = $1 AND cart_id = $2`
	clearLinesSQL     = `DELETE FROM cart_lines WHERE cart_id = $1`
	touchCartSQL      = `UPDATE carts SET version = version + 1, updated_at = now() WHERE id = $1 RETURNING version`
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) readCart(ctx context.Context, query string, userID int64) (*domain.Cart, error) {
	var cart domain.Cart
	err := repo.db.QueryRow(ctx, query, userID).Scan(&cart.ID, &cart.UserID, &cart.Version, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't read cart", zap.Int64("userID", userID), zap.Error(err))
		return nil, err
	}
	lines, err := repo.listLines(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Lines = lines
	return &cart, nil
}

func (repo *Repository) listLines(ctx context.Context, cartID int64) ([]domain.CartLine, error) {
	rows, err := repo.db.Query(ctx, listLinesSQL, cartID)
	if err != nil {
		zap.L().Error("can't list cart lines", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.ID, &l.CartID, &l.CourseID, &l.CourseTitle, &l.Quantity, &l.CapturedUnitPrice); err != nil {
			zap.L().Error("can't scan cart line", zap.Error(err))
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// FindByUser returns nil when the user has never had a cart.
func (repo *Repository) FindByUser(ctx context.Context, userID int64) (*domain.Cart, error) {
	return repo.readCart(ctx, findCartSQL, userID)
}

// LockByUser creates the cart if needed and holds its row lock until the transaction ends.
func (repo *Repository) LockByUser(ctx context.Context, userID int64) (*domain.Cart, error) {
	if _, err := repo.db.Exec(ctx, ensureCartSQL, userID); err != nil {
		zap.L().Error("can't create cart", zap.Int64("userID", userID), zap.Error(err))
		return nil, err
	}
	return repo.readCart(ctx, lockCartSQL, userID)
}

func (repo *Repository) AddLine(ctx context.Context, cartID, courseID int64, quantity int, price money.Money) error {
	_, err := repo.db.Exec(ctx, addLineSQL, cartID, courseID, quantity, price)
	if err != nil {
		zap.L().Error("can't add cart line", zap.Error(err))
		return err
	}
	return nil
}

func (repo *Repository) UpdateLineQuantity(ctx context.Context, cartID, lineID int64, quantity int) (bool, error) {
	tag, err := repo.db.Exec(ctx, updateQuantitySQL, quantity, lineID, cartID)
	if err != nil {
		zap.L().Error("can't update cart line", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (repo *Repository) UpdateLinePrice(ctx context.Context, cartID, lineID int64, price money.Money) error {
	_, err := repo.db.Exec(ctx, updatePriceSQL, price, lineID, cartID)
	if err != nil {
		zap.L().Error("can't update cart line price", zap.Error(err))
		return err
	}
	return nil
}

func (repo *Repository) RemoveLine(ctx context.Context, cartID, lineID int64) (bool, error) {
	tag, err := repo.db.Exec(ctx, removeLineSQL, lineID, cartID)
	if err != nil {
		zap.L().Error("can't remove cart line", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (repo *Repository) Clear(ctx context.Context, cartID int64) error {
	if _, err := repo.db.Exec(ctx, clearLinesSQL, cartID); err != nil {
		zap.L().Error("can't clear cart", zap.Int64("cartID", cartID), zap.Error(err))
		return err
	}
	return nil
}

// Touch bumps the cart version; every mutation calls it.
func (repo *Repository) Touch(ctx context.Context, cartID int64) (int64, error) {
	var version int64
	if err := repo.db.QueryRow(ctx, touchCartSQL, cartID).Scan(&version); err != nil {
		zap.L().Error("can't bump cart version", zap.Int64("cartID", cartID), zap.Error(err))
		return 0, err
	}
	return version, nil
}
