package cardrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
)

var createdAt = time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return New(mockDB), mockDB
}

func cardRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "user_id", "brand", "last_four", "holder", "exp_month", "exp_year", "encrypted_pan", "balance", "is_default", "created_at"})
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)

	card := &domain.SavedCard{
		UserID: 1, Brand: domain.CardVisa, LastFour: "1111", Holder: "JANE DOE",
		ExpMonth: 12, ExpYear: 2030, EncryptedPAN: "opaque", Balance: money.FromInt(500), IsDefault: true,
	}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO saved_cards")).
		WithArgs(int64(1), domain.CardVisa, "1111", "JANE DOE", 12, 2030, "opaque", pgxmock.AnyArg(), true).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), createdAt))

	require.NoError(t, repo.Create(context.Background(), card))
	assert.Equal(t, int64(3), card.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LockCard(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr error
	}{
		{
			name: "Card found",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta("FROM saved_cards WHERE id = $1 FOR UPDATE")).
					WithArgs(int64(3)).
					WillReturnRows(cardRows().AddRow(int64(3), int64(1), domain.CardVisa, "1111", "JANE DOE", 12, 2030, "opaque", "500.00", true, createdAt))
			},
		},
		{
			name: "Card missing",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).WithArgs(int64(3)).WillReturnError(pgx.ErrNoRows)
			},
			expectErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := NewMock(t)
			tt.mockSetup(mock)

			card, err := repo.LockCard(context.Background(), 3)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Nil(t, card)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "500.00", card.Balance.String())
				assert.True(t, card.IsDefault)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_ListByUser(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM saved_cards WHERE user_id = $1 ORDER BY is_default DESC, id")).
		WithArgs(int64(1)).
		WillReturnRows(cardRows().
			AddRow(int64(4), int64(1), domain.CardMir, "2222", "JANE DOE", 1, 2031, "opaque", "0.00", true, createdAt).
			AddRow(int64(3), int64(1), domain.CardVisa, "1111", "JANE DOE", 12, 2030, "opaque", "500.00", false, createdAt))

	cards, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, domain.CardMir, cards[0].Brand)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetDefault(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE saved_cards SET is_default = FALSE")).
		WithArgs(int64(1), int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE saved_cards SET is_default = TRUE")).
		WithArgs(int64(3), int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, repo.SetDefault(context.Background(), 1, 3))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE saved_cards SET is_default = FALSE")).
		WithArgs(int64(1), int64(3)).
		WillReturnError(errors.New("database error"))
	assert.Error(t, repo.SetDefault(context.Background(), 1, 3))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Transactions(t *testing.T) {
	repo, mock := NewMock(t)
	orderID := int64(42)

	tx := &domain.CardTransaction{CardID: 3, Type: domain.CardDeposit, Amount: money.FromInt(100), Description: "top up"}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO card_transactions")).
		WithArgs(int64(3), domain.CardDeposit, pgxmock.AnyArg(), pgxmock.AnyArg(), "top up").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(8), createdAt))
	require.NoError(t, repo.CreateTransaction(context.Background(), tx))
	assert.Equal(t, int64(8), tx.ID)

	mock.ExpectQuery(regexp.QuoteMeta("FROM card_transactions WHERE card_id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "card_id", "type", "amount", "order_id", "description", "created_at"}).
			AddRow(int64(8), int64(3), domain.CardDeposit, "100.00", &orderID, "top up", createdAt))
	txs, err := repo.ListTransactions(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "100.00", txs[0].Amount.String())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM saved_cards WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, repo.Delete(context.Background(), 3))

	assert.NoError(t, mock.ExpectationsWereMet())
}
