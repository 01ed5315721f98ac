package orderrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/pg"
)

const (
	orderColumns = `id, user_id, address_id, status, payment_method, card_id, paid_from_balance, promotion_id,
		subtotal, discount_amount, delivery_cost, vat_amount, profit_tax_amount, total, vat_rate, tax_rate,
		can_be_cancelled, created_at, updated_at`

	insertOrderSQL = `
		INSERT INTO orders (user_id, address_id, status, payment_method, card_id, paid_from_balance, promotion_id,
			subtotal, discount_amount, delivery_cost, vat_amount, profit_tax_amount, total, vat_rate, tax_rate, can_be_cancelled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`
	insertItemSQL = `
		INSERT INTO order_items (order_id, course_id, title, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	listItemsSQL = `
		SELECT id, order_id, course_id, title, quantity, unit_price, line_total
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`
	updateStatusSQL = `
		UPDATE orders
		SET status = $1, can_be_cancelled = $2, updated_at = now()
		WHERE id = $3
	`
	disableCancelSQL = `UPDATE orders SET can_be_cancelled = FALSE, updated_at = now() WHERE id = $1`
	findStaleCashSQL = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE status = 'processing' AND payment_method = 'cash' AND created_at < $1
		ORDER BY created_at ASC
		LIMIT $2
	`
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.UserID, &o.AddressID, &o.Status, &o.PaymentMethod, &o.CardID, &o.PaidFromBalance, &o.PromotionID,
		&o.Subtotal, &o.DiscountAmount, &o.DeliveryCost, &o.VATAmount, &o.ProfitTaxAmount, &o.Total, &o.VATRate, &o.TaxRate,
		&o.CanBeCancelled, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create stores the order header and its items.
func (repo *Repository) Create(ctx context.Context, o *domain.Order) error {
	err := repo.db.QueryRow(ctx, insertOrderSQL, o.UserID, o.AddressID, o.Status, o.PaymentMethod, o.CardID, o.PaidFromBalance,
		o.PromotionID, o.Subtotal, o.DiscountAmount, o.DeliveryCost, o.VATAmount, o.ProfitTaxAmount, o.Total, o.VATRate, o.TaxRate,
		o.CanBeCancelled).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		zap.L().Error("can't save order", zap.Error(err))
		return err
	}
	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		err := repo.db.QueryRow(ctx, insertItemSQL, o.ID, item.CourseID, item.Title, item.Quantity, item.UnitPrice, item.LineTotal).
			Scan(&item.ID)
		if err != nil {
			zap.L().Error("can't save order item", zap.Int64("orderID", o.ID), zap.Error(err))
			return err
		}
	}
	return nil
}

func (repo *Repository) find(ctx context.Context, query string, id int64) (*domain.Order, error) {
	o, err := scanOrder(repo.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find order", zap.Int64("orderID", id), zap.Error(err))
		return nil, err
	}
	if o.Items, err = repo.listItems(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (repo *Repository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	return repo.find(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// LockByID reads the order FOR UPDATE together with its items.
func (repo *Repository) LockByID(ctx context.Context, id int64) (*domain.Order, error) {
	return repo.find(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (repo *Repository) listItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := repo.db.Query(ctx, listItemsSQL, orderID)
	if err != nil {
		zap.L().Error("can't list order items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.CourseID, &it.Title, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			zap.L().Error("can't scan order item", zap.Error(err))
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (repo *Repository) listOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := repo.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			zap.L().Error("can't scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (repo *Repository) FindByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return repo.listOrders(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
}

// FindStaleCash returns cash orders still awaiting payment that were placed before the cutoff.
func (repo *Repository) FindStaleCash(ctx context.Context, before time.Time, limit uint32) ([]domain.Order, error) {
	return repo.listOrders(ctx, findStaleCashSQL, before, int(limit))
}

func (repo *Repository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus, canBeCancelled bool) error {
	if _, err := repo.db.Exec(ctx, updateStatusSQL, status, canBeCancelled, id); err != nil {
		zap.L().Error("failed to update order", zap.Int64("orderID", id), zap.Error(err))
		return err
	}
	return nil
}

func (repo *Repository) DisableCancel(ctx context.Context, id int64) error {
	if _, err := repo.db.Exec(ctx, disableCancelSQL, id); err != nil {
		zap.L().Error("failed to update order", zap.Int64("orderID", id), zap.Error(err))
		return err
	}
	return nil
}
