package refundrepo

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

var (
	createdAt  = time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	resolvedAt = time.Date(2024, 3, 7, 11, 0, 0, 0, time.UTC)
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return New(mockDB), mockDB
}

func refundRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "course_purchase_id", "user_id", "reason", "amount", "status", "processed_by", "created_at", "resolved_at"})
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("INSERT INTO course_refund_requests")

	rr := &domain.CourseRefundRequest{CoursePurchaseID: 7, UserID: 1, Reason: "changed my mind", Amount: money.FromInt(900), Status: domain.RefundPending}
	mock.ExpectQuery(query).
		WithArgs(int64(7), int64(1), "changed my mind", rr.Amount, domain.RefundPending).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), createdAt))
	require.NoError(t, repo.Create(context.Background(), rr))
	assert.Equal(t, int64(3), rr.ID)

	mock.ExpectQuery(query).
		WithArgs(int64(7), int64(1), "changed my mind", rr.Amount, domain.RefundPending).
		WillReturnError(errors.New("duplicate key"))
	assert.Error(t, repo.Create(context.Background(), rr))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LockByID(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("FROM course_refund_requests WHERE id = $1 FOR UPDATE")

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		expectNil bool
	}{
		{
			name: "Pending request",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(int64(3)).
					WillReturnRows(refundRows().AddRow(int64(3), int64(7), int64(1), "changed my mind", money.FromInt(900), domain.RefundPending, nil, createdAt, nil))
			},
		},
		{
			name: "Unknown request",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(int64(3)).WillReturnError(pgx.ErrNoRows)
			},
			expectNil: true,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(int64(3)).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			expectNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			rr, err := repo.LockByID(context.Background(), 3)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectNil {
				assert.Nil(t, rr)
				return
			}
			require.NotNil(t, rr)
			assert.Equal(t, domain.RefundPending, rr.Status)
			assert.Nil(t, rr.ProcessedBy)
			assert.Nil(t, rr.ResolvedAt)
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_PendingAndResolve(t *testing.T) {
	repo, mock := NewMock(t)
	ctx := context.Background()
	adminID := int64(100)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE course_purchase_id = $1 AND status = 'pending'")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	pending, err := repo.HasPending(ctx, 7)
	require.NoError(t, err)
	assert.True(t, pending)

	query := regexp.QuoteMeta("UPDATE course_refund_requests SET status = $1, processed_by = $2, resolved_at = $3 WHERE id = $4")
	mock.ExpectExec(query).WithArgs(domain.RefundApproved, &adminID, resolvedAt, int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, repo.Resolve(ctx, 3, domain.RefundApproved, &adminID, resolvedAt))

	mock.ExpectExec(query).WithArgs(domain.RefundRejected, &adminID, resolvedAt, int64(4)).
		WillReturnError(errors.New("database error"))
	assert.Error(t, repo.Resolve(ctx, 4, domain.RefundRejected, &adminID, resolvedAt))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	repo, mock := NewMock(t)
	ctx := context.Background()
	adminID := int64(100)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE ($1 = '' OR status = $1) ORDER BY created_at DESC, id DESC")).
		WithArgs("pending").
		WillReturnRows(refundRows().
			AddRow(int64(4), int64(8), int64(2), "", money.FromInt(1380), domain.RefundPending, nil, createdAt, nil))
	list, err := repo.List(ctx, domain.RefundPending)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "1380.00", list[0].Amount.String())

	mock.ExpectQuery(regexp.QuoteMeta("WHERE ($1 = '' OR status = $1)")).
		WithArgs("").
		WillReturnRows(refundRows())
	list, err = repo.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list)

	mock.ExpectQuery(regexp.QuoteMeta("FROM course_refund_requests WHERE user_id = $1 ORDER BY created_at DESC, id DESC")).
		WithArgs(int64(1)).
		WillReturnRows(refundRows().
			AddRow(int64(3), int64(7), int64(1), "changed my mind", money.FromInt(900), domain.RefundApproved, &adminID, createdAt, &resolvedAt))
	list, err = repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].ProcessedBy)
	assert.Equal(t, adminID, *list[0].ProcessedBy)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1")).
		WithArgs(int64(2)).
		WillReturnError(errors.New("database error"))
	_, err = repo.ListByUser(ctx, 2)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
