package activityrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/coursemart/internal/domain"
)

var createdAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return New(mockDB), mockDB
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	actorID := int64(3)

	e := &domain.ActivityEntry{ActorID: &actorID, Action: domain.ActivityOrderPaid, TargetType: "order", TargetID: 42, Details: map[string]any{"total": "2280.00"}}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO activity_log (actor_id, action, target_type, target_id, details)")).
		WithArgs(&actorID, domain.ActivityOrderPaid, "order", int64(42), []byte(`{"total":"2280.00"}`)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(9), createdAt))
	require.NoError(t, repo.Create(context.Background(), e))
	assert.Equal(t, int64(9), e.ID)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO activity_log")).
		WithArgs((*int64)(nil), domain.ActivityOrderCreated, "order", int64(43), []byte("null")).
		WillReturnError(errors.New("database error"))
	assert.Error(t, repo.Create(context.Background(), &domain.ActivityEntry{Action: domain.ActivityOrderCreated, TargetType: "order", TargetID: 43}))

	assert.Error(t, repo.Create(context.Background(), &domain.ActivityEntry{Details: map[string]any{"bad": func() {}}}),
		"details that do not marshal never reach the database")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("FROM activity_log ORDER BY id DESC LIMIT $1")
	actorID := int64(3)

	mock.ExpectQuery(query).WithArgs(2).
		WillReturnRows(pgxmock.NewRows([]string{"id", "actor_id", "action", "target_type", "target_id", "details", "created_at"}).
			AddRow(int64(9), &actorID, domain.ActivityOrderPaid, "order", int64(42), []byte(`{"total":"2280.00"}`), createdAt).
			AddRow(int64(8), nil, domain.ActivityOrderCreated, "order", int64(42), []byte(nil), createdAt))
	entries, err := repo.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2280.00", entries[0].Details["total"])
	assert.Nil(t, entries[1].ActorID)
	assert.Nil(t, entries[1].Details)

	mock.ExpectQuery(query).WithArgs(5).
		WillReturnRows(pgxmock.NewRows([]string{"id", "actor_id", "action", "target_type", "target_id", "details", "created_at"}).
			AddRow(int64(7), nil, domain.ActivityOrderCreated, "order", int64(41), []byte(`{broken`), createdAt))
	_, err = repo.List(context.Background(), 5)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
