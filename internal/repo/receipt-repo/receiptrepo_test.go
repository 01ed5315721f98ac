package receiptrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
)

var (
	issuedAt   = time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	annulledAt = time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)
	vat20      = decimal.NewFromInt(20)
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return New(mockDB), mockDB
}

func receiptRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "order_id", "sequence_number", "status", "payment_method", "subtotal", "discount_amount",
		"delivery_cost", "vat_amount", "vat_rate", "total", "issued_at", "annulled_at"})
}

func itemRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "receipt_id", "course_id", "title", "quantity", "unit_price"})
}

func addReceipt(rows *pgxmock.Rows, id, orderID int64, status domain.ReceiptStatus, annulled *time.Time) *pgxmock.Rows {
	return rows.AddRow(id, orderID, int64(1000+id), status, domain.PaymentBalance, money.FromInt(1900), money.Zero,
		money.Zero, money.FromInt(380), vat20, money.FromInt(2280), issuedAt, annulled)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)

	rc := &domain.Receipt{
		OrderID:        42,
		SequenceNumber: 1001,
		Status:         domain.ReceiptExecuted,
		PaymentMethod:  domain.PaymentBalance,
		Subtotal:       money.FromInt(1900),
		DiscountAmount: money.Zero,
		DeliveryCost:   money.Zero,
		VATAmount:      money.FromInt(380),
		VATRate:        vat20,
		Total:          money.FromInt(2280),
		Items: []domain.ReceiptItem{
			{CourseID: 5, Title: "Go", Quantity: 1, UnitPrice: money.FromInt(1000)},
			{CourseID: 6, Title: "SQL", Quantity: 2, UnitPrice: money.FromInt(450)},
		},
	}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO receipts")).
		WithArgs(int64(42), int64(1001), domain.ReceiptExecuted, domain.PaymentBalance, rc.Subtotal, rc.DiscountAmount,
			rc.DeliveryCost, rc.VATAmount, vat20, rc.Total).
		WillReturnRows(pgxmock.NewRows([]string{"id", "issued_at"}).AddRow(int64(8), issuedAt))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO receipt_items (receipt_id, course_id, title, quantity, unit_price)")).
		WithArgs(int64(8), int64(5), "Go", 1, money.FromInt(1000)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(20)))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO receipt_items")).
		WithArgs(int64(8), int64(6), "SQL", 2, money.FromInt(450)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(21)))

	require.NoError(t, repo.Create(context.Background(), rc))
	assert.Equal(t, int64(8), rc.ID)
	assert.Equal(t, int64(8), rc.Items[1].ReceiptID)
	assert.Equal(t, int64(21), rc.Items[1].ID)
	assert.Equal(t, "900.00", rc.Items[1].LineTotal().String())

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO receipts")).
		WithArgs(int64(42), int64(1001), domain.ReceiptExecuted, domain.PaymentBalance, rc.Subtotal, rc.DiscountAmount,
			rc.DeliveryCost, rc.VATAmount, vat20, rc.Total).
		WillReturnError(errors.New("duplicate key"))
	assert.Error(t, repo.Create(context.Background(), rc))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByOrder(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("FROM receipts WHERE order_id = $1")

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		expectNil bool
	}{
		{
			name: "Receipt with items",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(int64(42)).
					WillReturnRows(addReceipt(receiptRows(), 8, 42, domain.ReceiptExecuted, nil))
				mock.ExpectQuery(regexp.QuoteMeta("FROM receipt_items WHERE receipt_id = $1 ORDER BY id")).WithArgs(int64(8)).
					WillReturnRows(itemRows().
						AddRow(int64(20), int64(8), int64(5), "Go", 1, money.FromInt(1000)).
						AddRow(int64(21), int64(8), int64(6), "SQL", 2, money.FromInt(450)))
			},
		},
		{
			name: "No receipt",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(int64(42)).WillReturnError(pgx.ErrNoRows)
			},
			expectNil: true,
		},
		{
			name: "Items query fails",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(int64(42)).
					WillReturnRows(addReceipt(receiptRows(), 8, 42, domain.ReceiptExecuted, nil))
				mock.ExpectQuery(regexp.QuoteMeta("FROM receipt_items")).WithArgs(int64(8)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			expectNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			rc, err := repo.FindByOrder(context.Background(), 42)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectNil {
				assert.Nil(t, rc)
				return
			}
			require.NotNil(t, rc)
			assert.True(t, vat20.Equal(rc.VATRate))
			assert.Equal(t, int64(1008), rc.SequenceNumber)
			require.Len(t, rc.Items, 2)
			assert.Equal(t, "900.00", rc.Items[1].LineTotal().String())
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LockAndAnnul(t *testing.T) {
	repo, mock := NewMock(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("FROM receipts WHERE order_id = $1 FOR UPDATE")).
		WithArgs(int64(42)).
		WillReturnRows(addReceipt(receiptRows(), 8, 42, domain.ReceiptExecuted, nil))
	mock.ExpectQuery(regexp.QuoteMeta("FROM receipt_items")).WithArgs(int64(8)).WillReturnRows(itemRows())
	rc, err := repo.LockByOrder(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, rc)
	assert.Empty(t, rc.Items)

	query := regexp.QuoteMeta("UPDATE receipts SET status = 'annulled', annulled_at = $1 WHERE id = $2")
	mock.ExpectExec(query).WithArgs(annulledAt, int64(8)).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, repo.Annul(ctx, 8, annulledAt))

	mock.ExpectExec(query).WithArgs(annulledAt, int64(9)).WillReturnError(errors.New("database error"))
	assert.Error(t, repo.Annul(ctx, 9, annulledAt))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByUser(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("JOIN orders o ON o.id = r.order_id")

	mock.ExpectQuery(query).WithArgs(int64(1)).
		WillReturnRows(addReceipt(addReceipt(receiptRows(), 9, 43, domain.ReceiptAnnulled, &annulledAt), 8, 42, domain.ReceiptExecuted, nil))
	mock.ExpectQuery(regexp.QuoteMeta("FROM receipt_items")).WithArgs(int64(9)).
		WillReturnRows(itemRows().AddRow(int64(22), int64(9), int64(7), "Kubernetes", 1, money.FromInt(1900)))
	mock.ExpectQuery(regexp.QuoteMeta("FROM receipt_items")).WithArgs(int64(8)).
		WillReturnRows(itemRows().AddRow(int64(20), int64(8), int64(5), "Go", 1, money.FromInt(1000)))

	receipts, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, receipts, 2)
	assert.Equal(t, domain.ReceiptAnnulled, receipts[0].Status)
	require.NotNil(t, receipts[0].AnnulledAt)
	assert.Equal(t, "Kubernetes", receipts[0].Items[0].Title)
	assert.Equal(t, "Go", receipts[1].Items[0].Title)

	mock.ExpectQuery(query).WithArgs(int64(2)).WillReturnError(errors.New("database error"))
	_, err = repo.ListByUser(context.Background(), 2)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetConfig(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("SELECT company_name, tax_id, address FROM receipt_config WHERE id = 1")

	mock.ExpectQuery(query).
		WillReturnRows(pgxmock.NewRows([]string{"company_name", "tax_id", "address"}).AddRow("Coursemart LLC", "7701234567", "Moscow"))
	cfg, err := repo.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Coursemart LLC", cfg.CompanyName)

	mock.ExpectQuery(query).WillReturnError(pgx.ErrNoRows)
	cfg, err = repo.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ReceiptConfig{}, *cfg)

	mock.ExpectQuery(query).WillReturnError(errors.New("database error"))
	_, err = repo.GetConfig(context.Background())
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
