package repo

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/coursemart/internal/pg"
	cartrepo "github.com/GlebRadaev/coursemart/internal/repo/cart-repo"
	ledgerrepo "github.com/GlebRadaev/coursemart/internal/repo/ledger-repo"
	"github.com/GlebRadaev/coursemart/internal/repo/memory"
	orderrepo "github.com/GlebRadaev/coursemart/internal/repo/order-repo"
	userrepo "github.com/GlebRadaev/coursemart/internal/repo/user-repo"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	ctrl := gomock.NewController(t)
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	t.Cleanup(mockDB.Close)
	mockTxManager := pg.NewMockTXManager(ctrl)
	return New(mockDB, mockTxManager), mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.NotNil(t, repo.TxManager)
	assert.NotNil(t, repo.Balances)
	assert.NotNil(t, repo.Cards)
	assert.NotNil(t, repo.Activity)
	assert.NotNil(t, repo.Catalog)
	assert.NotNil(t, repo.Promotions)
	assert.NotNil(t, repo.Purchases)
	assert.NotNil(t, repo.Tenders)
	assert.NotNil(t, repo.Refunds)
	assert.NotNil(t, repo.Receipts)
	assert.NotNil(t, repo.Lessons)
	assert.NotNil(t, repo.Notifications)

	assert.IsType(t, &userrepo.Repository{}, repo.Users)
	assert.IsType(t, &orderrepo.Repository{}, repo.Orders)
	assert.IsType(t, &cartrepo.Repository{}, repo.Carts)
	assert.IsType(t, &ledgerrepo.Repository{}, repo.Ledger)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}

func TestNewMemory(t *testing.T) {
	repo := NewMemory(memory.New())

	assert.IsType(t, memory.TxManager{}, repo.TxManager)
	assert.IsType(t, memory.Users{}, repo.Users)
	assert.IsType(t, memory.Orders{}, repo.Orders)
	assert.IsType(t, memory.Ledger{}, repo.Ledger)
}
