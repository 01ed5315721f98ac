package receiptrepo

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
	receiptColumns = `id, order_id, sequence_number, status, payment_method, subtotal, discount_amount, delivery_cost,
		vat_amount, vat_rate, total, issued_at, annulled_at`

	insertReceiptSQL = `
		INSERT INTO receipts (order_id, sequence_number, status, payment_method, subtotal, discount_amount, delivery_cost,
			vat_amount, vat_rate, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, issued_at
	`
	insertItemSQL = `
		INSERT INTO receipt_items (receipt_id, course_id, title, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	listItemsSQL = `
		SELECT id, receipt_id, course_id, title, quantity, unit_price
		FROM receipt_items
		WHERE receipt_id = $1
		ORDER BY id
	`
	listByUserSQL = `
		SELECT r.id, r.order_id, r.sequence_number, r.status, r.payment_method, r.subtotal, r.discount_amount,
			r.delivery_cost, r.vat_amount, r.vat_rate, r.total, r.issued_at, r.annulled_at
		FROM receipts r
		JOIN orders o ON o.id = r.order_id
		WHERE o.user_id = $1
		ORDER BY r.issued_at DESC, r.id DESC
	`
	annulSQL  = `UPDATE receipts SET status = 'annulled', annulled_at = $1 WHERE id = $2`
	configSQL = `SELECT company_name, tax_id, address FROM receipt_config WHERE id = 1`
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, rc *domain.Receipt) error {
	err := r.db.QueryRow(ctx, insertReceiptSQL, rc.OrderID, rc.SequenceNumber, rc.Status, rc.PaymentMethod, rc.Subtotal,
		rc.DiscountAmount, rc.DeliveryCost, rc.VATAmount, rc.VATRate, rc.Total).Scan(&rc.ID, &rc.IssuedAt)
	if err != nil {
		zap.L().Error("can't save receipt", zap.Int64("orderID", rc.OrderID), zap.Error(err))
		return err
	}
	for i := range rc.Items {
		item := &rc.Items[i]
		item.ReceiptID = rc.ID
		err := r.db.QueryRow(ctx, insertItemSQL, rc.ID, item.CourseID, item.Title, item.Quantity, item.UnitPrice).
			Scan(&item.ID)
		if err != nil {
			zap.L().Error("can't save receipt item", zap.Error(err))
			return err
		}
	}
	return nil
}

func scanReceipt(row pgx.Row) (*domain.Receipt, error) {
	var rc domain.Receipt
	err := row.Scan(&rc.ID, &rc.OrderID, &rc.SequenceNumber, &rc.Status, &rc.PaymentMethod, &rc.Subtotal,
		&rc.DiscountAmount, &rc.DeliveryCost, &rc.VATAmount, &rc.VATRate, &rc.Total, &rc.IssuedAt, &rc.AnnulledAt)
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *Repository) find(ctx context.Context, query string, orderID int64) (*domain.Receipt, error) {
	rc, err := scanReceipt(r.db.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find receipt", zap.Int64("orderID", orderID), zap.Error(err))
		return nil, err
	}
	if rc.Items, err = r.listItems(ctx, rc.ID); err != nil {
		return nil, err
	}
	return rc, nil
}

func (r *Repository) listItems(ctx context.Context, receiptID int64) ([]domain.ReceiptItem, error) {
	rows, err := r.db.Query(ctx, listItemsSQL, receiptID)
	if err != nil {
		zap.L().Error("can't list receipt items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []domain.ReceiptItem
	for rows.Next() {
		var it domain.ReceiptItem
		if err := rows.Scan(&it.ID, &it.ReceiptID, &it.CourseID, &it.Title, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *Repository) FindByOrder(ctx context.Context, orderID int64) (*domain.Receipt, error) {
	return r.find(ctx, `SELECT `+receiptColumns+` FROM receipts WHERE order_id = $1`, orderID)
}

func (r *Repository) LockByOrder(ctx context.Context, orderID int64) (*domain.Receipt, error) {
	return r.find(ctx, `SELECT `+receiptColumns+` FROM receipts WHERE order_id = $1 FOR UPDATE`, orderID)
}

// ListByUser returns the receipts of a buyer's orders, newest first, with their items.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]domain.Receipt, error) {
	rows, err := r.db.Query(ctx, listByUserSQL, userID)
	if err != nil {
		zap.L().Error("can't list receipts", zap.Int64("userID", userID), zap.Error(err))
		return nil, err
	}
	var receipts []domain.Receipt
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		receipts = append(receipts, *rc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range receipts {
		if receipts[i].Items, err = r.listItems(ctx, receipts[i].ID); err != nil {
			return nil, err
		}
	}
	return receipts, nil
}

func (r *Repository) Annul(ctx context.Context, id int64, at time.Time) error {
	if _, err := r.db.Exec(ctx, annulSQL, at, id); err != nil {
		zap.L().Error("can't annul receipt", zap.Int64("receiptID", id), zap.Error(err))
		return err
	}
	return nil
}

// GetConfig returns an empty config when none has been stored.
func (r *Repository) GetConfig(ctx context.Context) (*domain.ReceiptConfig, error) {
	var cfg domain.ReceiptConfig
	err := r.db.QueryRow(ctx, configSQL).Scan(&cfg.CompanyName, &cfg.TaxID, &cfg.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &cfg, nil
		}
		zap.L().Error("can't read receipt config", zap.Error(err))
		return nil, err
	}
	return &cfg, nil
}
