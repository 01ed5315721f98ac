package userrepo

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

var createdAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return New(mockDB), mockDB
}

func userRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "email", "name", "password_hash", "balance", "blocked", "capabilities", "created_at"})
}

func TestRepository_FindByEmail(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("FROM users WHERE lower(email) = lower($1)")

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		expectNil bool
	}{
		{
			name: "User found",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("Buyer@Example.com").
					WillReturnRows(userRows().AddRow(int64(1), "buyer@example.com", "Buyer", "hash", "150.00", false, []string{"self", "manager"}, createdAt))
			},
		},
		{
			name: "User not found",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("Buyer@Example.com").
					WillReturnError(pgx.ErrNoRows)
			},
			expectNil: true,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("Buyer@Example.com").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			expectNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			user, err := repo.FindByEmail(context.Background(), "Buyer@Example.com")
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectNil {
				assert.Nil(t, user)
				return
			}
			require.NotNil(t, user)
			assert.Equal(t, int64(1), user.ID)
			assert.Equal(t, "150.00", user.Balance.String())
			assert.Equal(t, []domain.Capability{domain.CapabilitySelf, domain.CapabilityManager}, user.Capabilities)
			assert.Equal(t, createdAt, user.CreatedAt)
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LockUser(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("FROM users WHERE id = $1 FOR UPDATE")

	mock.ExpectQuery(query).WithArgs(int64(7)).
		WillReturnRows(userRows().AddRow(int64(7), "a@b.c", "A", "hash", money.FromInt(10), true, []string{"self"}, createdAt))
	user, err := repo.LockUser(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, user.Blocked)
	assert.Equal(t, "10.00", user.Balance.String())

	mock.ExpectQuery(query).WithArgs(int64(8)).WillReturnError(pgx.ErrNoRows)
	_, err = repo.LockUser(context.Background(), 8)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("INSERT INTO users (email, name, password_hash, capabilities)")

	tests := []struct {
		name      string
		user      *domain.User
		caps      []string
		mockErr   error
		expectErr bool
	}{
		{
			name: "Defaults to self capability",
			user: &domain.User{Email: "new@example.com", Name: "New", PasswordHash: "hash"},
			caps: []string{"self"},
		},
		{
			name: "Keeps given capabilities",
			user: &domain.User{Email: "boss@example.com", Name: "Boss", PasswordHash: "hash",
				Capabilities: []domain.Capability{domain.CapabilitySelf, domain.CapabilityAdmin}},
			caps: []string{"self", "admin"},
		},
		{
			name:      "Database error",
			user:      &domain.User{Email: "new@example.com", Name: "New", PasswordHash: "hash"},
			caps:      []string{"self"},
			mockErr:   errors.New("database error"),
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := mock.ExpectQuery(query).WithArgs(tt.user.Email, tt.user.Name, tt.user.PasswordHash, tt.caps)
			if tt.mockErr != nil {
				exp.WillReturnError(tt.mockErr)
			} else {
				exp.WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), createdAt))
			}

			result, err := repo.Create(context.Background(), tt.user)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(5), result.ID)
			assert.Equal(t, createdAt, result.CreatedAt)
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetBlocked(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("UPDATE users SET blocked = $1 WHERE id = $2")

	mock.ExpectExec(query).WithArgs(true, int64(3)).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	found, err := repo.SetBlocked(context.Background(), 3, true)
	require.NoError(t, err)
	assert.True(t, found)

	mock.ExpectExec(query).WithArgs(true, int64(4)).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	found, err = repo.SetBlocked(context.Background(), 4, true)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateBalance(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET balance = $1 WHERE id = $2")).
		WithArgs(pgxmock.AnyArg(), int64(2)).
		WillReturnError(errors.New("database error"))

	err := repo.UpdateBalance(context.Background(), 2, money.FromInt(5))
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Addresses(t *testing.T) {
	repo, mock := NewMock(t)
	cols := []string{"id", "user_id", "line", "city", "postal_code", "created_at"}

	addr := &domain.Address{UserID: 1, Line: "1 Main St", City: "Springfield", PostalCode: "12345"}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO user_addresses")).
		WithArgs(int64(1), "1 Main St", "Springfield", "12345").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(9), createdAt))
	require.NoError(t, repo.CreateAddress(context.Background(), addr))
	assert.Equal(t, int64(9), addr.ID)

	mock.ExpectQuery(regexp.QuoteMeta("FROM user_addresses WHERE id = $1")).
		WithArgs(int64(10)).
		WillReturnError(pgx.ErrNoRows)
	found, err := repo.FindAddress(context.Background(), 10)
	require.NoError(t, err)
	assert.Nil(t, found)

	mock.ExpectQuery(regexp.QuoteMeta("FROM user_addresses WHERE user_id = $1 ORDER BY id")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(int64(9), int64(1), "1 Main St", "Springfield", "12345", createdAt).
			AddRow(int64(11), int64(1), "2 Side St", "Springfield", "12346", createdAt))
	list, err := repo.ListAddresses(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2 Side St", list[1].Line)

	assert.NoError(t, mock.ExpectationsWereMet())
}
