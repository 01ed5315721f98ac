package cartrepo

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

	"github.com/GlebRadaev/coursemart/internal/money"
)

var updatedAt = time.Date(2024, 4, 2, 8, 30, 0, 0, time.UTC)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return New(mockDB), mockDB
}

func cartRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "user_id", "version", "updated_at"})
}

func lineRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "cart_id", "course_id", "title", "quantity", "captured_unit_price"})
}

func TestRepository_FindByUser(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("FROM carts WHERE user_id = $1")

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		expectNil bool
	}{
		{
			name: "Cart with lines",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(int64(1)).
					WillReturnRows(cartRows().AddRow(int64(11), int64(1), int64(3), updatedAt))
				mock.ExpectQuery(regexp.QuoteMeta("FROM cart_lines l")).WithArgs(int64(11)).
					WillReturnRows(lineRows().
						AddRow(int64(1), int64(11), int64(5), "Go", 1, money.FromInt(900)).
						AddRow(int64(2), int64(11), int64(6), "SQL", 2, money.MustParse("450.50")))
			},
		},
		{
			name: "No cart yet",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(int64(1)).WillReturnError(pgx.ErrNoRows)
			},
			expectNil: true,
		},
		{
			name: "Lines query fails",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(int64(1)).
					WillReturnRows(cartRows().AddRow(int64(11), int64(1), int64(3), updatedAt))
				mock.ExpectQuery(regexp.QuoteMeta("FROM cart_lines l")).WithArgs(int64(11)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			expectNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			cart, err := repo.FindByUser(context.Background(), 1)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectNil {
				assert.Nil(t, cart)
				return
			}
			require.NotNil(t, cart)
			assert.Equal(t, int64(3), cart.Version)
			require.Len(t, cart.Lines, 2)
			assert.Equal(t, "SQL", cart.Lines[1].CourseTitle)
			assert.Equal(t, "450.50", cart.Lines[1].CapturedUnitPrice.String())
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LockByUser(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO carts (user_id) VALUES ($1)")).
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM carts WHERE user_id = $1 FOR UPDATE")).
		WithArgs(int64(2)).
		WillReturnRows(cartRows().AddRow(int64(12), int64(2), int64(0), updatedAt))
	mock.ExpectQuery(regexp.QuoteMeta("FROM cart_lines l")).
		WithArgs(int64(12)).
		WillReturnRows(lineRows())

	cart, err := repo.LockByUser(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(12), cart.ID)
	assert.True(t, cart.Empty())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO carts")).
		WithArgs(int64(3)).
		WillReturnError(errors.New("database error"))
	_, err = repo.LockByUser(context.Background(), 3)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Lines(t *testing.T) {
	repo, mock := NewMock(t)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT ON CONSTRAINT cart_lines_cart_course_key")).
		WithArgs(int64(12), int64(5), 2, money.FromInt(900)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, repo.AddLine(ctx, 12, 5, 2, money.FromInt(900)))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE cart_lines SET quantity = $1 WHERE id = $2 AND cart_id = $3")).
		WithArgs(3, int64(40), int64(12)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	found, err := repo.UpdateLineQuantity(ctx, 12, 40, 3)
	require.NoError(t, err)
	assert.True(t, found)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart_lines WHERE id = $1 AND cart_id = $2")).
		WithArgs(int64(41), int64(12)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	found, err = repo.RemoveLine(ctx, 12, 41)
	require.NoError(t, err)
	assert.False(t, found, "line of another cart is not removed")

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart_lines WHERE cart_id = $1")).
		WithArgs(int64(12)).
		WillReturnError(errors.New("database error"))
	assert.Error(t, repo.Clear(ctx, 12))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Touch(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("SET version = version + 1")

	mock.ExpectQuery(query).WithArgs(int64(12)).
		WillReturnRows(pgxmock.NewRows([]string{"version"}).AddRow(int64(4)))
	version, err := repo.Touch(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, int64(4), version)

	mock.ExpectQuery(query).WithArgs(int64(13)).WillReturnError(errors.New("database error"))
	_, err = repo.Touch(context.Background(), 13)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
