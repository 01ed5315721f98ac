package ledgerrepo

import (
	"context"

	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/pg"
)

const (
	ensureAccountSQL = `INSERT INTO organization_account (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`
	accountSQL       = `SELECT id, balance, tax_reserve, receipt_sequence, updated_at FROM organization_account WHERE id = $1`
	updateAccountSQL = `UPDATE organization_account SET balance = $1, tax_reserve = $2, updated_at = now() WHERE id = $3`
	nextSequenceSQL  = `
		UPDATE organization_account
		SET receipt_sequence = receipt_sequence + 1
		WHERE id = $1
		RETURNING receipt_sequence
	`
	insertTransactionSQL = `
		INSERT INTO organization_transactions (type, amount, tax_split, balance_before, balance_after, tax_before, tax_after,
			order_id, course_purchase_id, created_by, memo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`
	listTransactionsSQL = `
		SELECT id, type, amount, tax_split, balance_before, balance_after, tax_before, tax_after,
			order_id, course_purchase_id, created_by, memo, created_at
		FROM organization_transactions
		ORDER BY id DESC
		LIMIT $1
	`
)

// Repository owns the single organization account row and its journal.
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) ensure(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, ensureAccountSQL, domain.OrganizationAccountID); err != nil {
		zap.L().Error("can't create organization account", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) read(ctx context.Context, query string) (*domain.OrganizationAccount, error) {
	if err := r.ensure(ctx); err != nil {
		return nil, err
	}
	var acct domain.OrganizationAccount
	err := r.db.QueryRow(ctx, query, domain.OrganizationAccountID).
		Scan(&acct.ID, &acct.Balance, &acct.TaxReserve, &acct.ReceiptSequence, &acct.UpdatedAt)
	if err != nil {
		zap.L().Error("can't read organization account", zap.Error(err))
		return nil, err
	}
	return &acct, nil
}

func (r *Repository) GetAccount(ctx context.Context) (*domain.OrganizationAccount, error) {
	return r.read(ctx, accountSQL)
}

// LockAccount must run inside a transaction; the row stays locked until it ends.
func (r *Repository) LockAccount(ctx context.Context) (*domain.OrganizationAccount, error) {
	return r.read(ctx, accountSQL+` FOR UPDATE`)
}

func (r *Repository) UpdateAccount(ctx context.Context, acct *domain.OrganizationAccount) error {
	if _, err := r.db.Exec(ctx, updateAccountSQL, acct.Balance, acct.TaxReserve, acct.ID); err != nil {
		zap.L().Error("can't update organization account", zap.Error(err))
		return err
	}
	return nil
}

// NextReceiptSequence hands out receipt numbers under the account row lock.
func (r *Repository) NextReceiptSequence(ctx context.Context) (int64, error) {
	if err := r.ensure(ctx); err != nil {
		return 0, err
	}
	var seq int64
	if err := r.db.QueryRow(ctx, nextSequenceSQL, domain.OrganizationAccountID).Scan(&seq); err != nil {
		zap.L().Error("can't allocate receipt number", zap.Error(err))
		return 0, err
	}
	return seq, nil
}

func (r *Repository) CreateTransaction(ctx context.Context, t *domain.OrganizationTransaction) error {
	err := r.db.QueryRow(ctx, insertTransactionSQL, t.Type, t.Amount, t.TaxSplit, t.BalanceBefore, t.BalanceAfter, t.TaxBefore, t.TaxAfter,
		t.OrderID, t.CoursePurchaseID, t.CreatedBy, t.Memo).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		zap.L().Error("can't save organization transaction", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ListTransactions(ctx context.Context, limit int) ([]domain.OrganizationTransaction, error) {
	rows, err := r.db.Query(ctx, listTransactionsSQL, limit)
	if err != nil {
		zap.L().Error("can't list organization transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var txs []domain.OrganizationTransaction
	for rows.Next() {
		var t domain.OrganizationTransaction
		err := rows.Scan(&t.ID, &t.Type, &t.Amount, &t.TaxSplit, &t.BalanceBefore, &t.BalanceAfter, &t.TaxBefore, &t.TaxAfter,
			&t.OrderID, &t.CoursePurchaseID, &t.CreatedBy, &t.Memo, &t.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan organization transaction", zap.Error(err))
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
