package receiptservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
)

var annulledAt = time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)

type mocks struct {
	repo     *MockRepo
	sequence *MockSequenceAllocator
	orders   *MockOrderReader
}

func NewMock(t *testing.T) (*Service, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		repo:     NewMockRepo(ctrl),
		sequence: NewMockSequenceAllocator(ctrl),
		orders:   NewMockOrderReader(ctrl),
	}
	service := New(m.repo, m.sequence, m.orders)
	service.now = func() time.Time { return annulledAt }
	return service, m
}

func paidOrder() *domain.Order {
	return &domain.Order{
		ID:            42,
		UserID:        1,
		Status:        domain.OrderStatusPaid,
		PaymentMethod: domain.PaymentBalance,
		Subtotal:      money.FromInt(1900),
		VATAmount:     money.FromInt(380),
		Total:         money.FromInt(2280),
		VATRate:       decimal.NewFromInt(20),
		TaxRate:       decimal.NewFromInt(13),
		Items: []domain.OrderItem{
			{CourseID: 5, Title: "Go", Quantity: 1, UnitPrice: money.FromInt(1000), LineTotal: money.FromInt(1000)},
			{CourseID: 6, Title: "SQL", Quantity: 2, UnitPrice: money.FromInt(450), LineTotal: money.FromInt(900)},
		},
	}
}

func TestIssue(t *testing.T) {
	service, m := NewMock(t)
	ctx := context.Background()

	m.sequence.EXPECT().NextReceiptSequence(gomock.Any()).Return(int64(1001), nil)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rc *domain.Receipt) error {
		rc.ID = 8
		return nil
	})
	rc, err := service.Issue(ctx, paidOrder())
	require.NoError(t, err)
	assert.Equal(t, int64(8), rc.ID)
	assert.Equal(t, int64(1001), rc.SequenceNumber)
	assert.Equal(t, domain.ReceiptExecuted, rc.Status)
	assert.True(t, decimal.NewFromInt(20).Equal(rc.VATRate))
	assert.Equal(t, "2280.00", rc.Total.String())
	require.Len(t, rc.Items, 2)
	assert.Equal(t, "SQL", rc.Items[1].Title)
	assert.Equal(t, "900.00", rc.Items[1].LineTotal().String())

	m.sequence.EXPECT().NextReceiptSequence(gomock.Any()).Return(int64(0), errors.New("database error"))
	_, err = service.Issue(ctx, paidOrder())
	assert.Error(t, err)

	m.sequence.EXPECT().NextReceiptSequence(gomock.Any()).Return(int64(1002), nil)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
	_, err = service.Issue(ctx, paidOrder())
	assert.Error(t, err)
}

func TestAnnul(t *testing.T) {
	service, m := NewMock(t)
	ctx := context.Background()
	stored := &domain.Receipt{ID: 8, OrderID: 42, Status: domain.ReceiptExecuted}

	m.repo.EXPECT().LockByOrder(gomock.Any(), int64(42)).DoAndReturn(func(context.Context, int64) (*domain.Receipt, error) {
		cp := *stored
		return &cp, nil
	})
	m.repo.EXPECT().Annul(gomock.Any(), int64(8), annulledAt).DoAndReturn(func(_ context.Context, _ int64, at time.Time) error {
		stored.Status = domain.ReceiptAnnulled
		stored.AnnulledAt = &at
		return nil
	})
	rc, err := service.Annul(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, domain.ReceiptAnnulled, rc.Status)
	require.NotNil(t, rc.AnnulledAt)
	assert.Equal(t, annulledAt, *rc.AnnulledAt)

	m.repo.EXPECT().LockByOrder(gomock.Any(), int64(42)).DoAndReturn(func(context.Context, int64) (*domain.Receipt, error) {
		cp := *stored
		return &cp, nil
	})
	_, err = service.Annul(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrReceiptAlreadyAnnulled, "second annulment is rejected")

	m.repo.EXPECT().LockByOrder(gomock.Any(), int64(43)).Return(nil, nil)
	_, err = service.Annul(ctx, 43)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGet(t *testing.T) {
	cfg := &domain.ReceiptConfig{CompanyName: "Coursemart LLC", TaxID: "7701234567"}
	tests := []struct {
		name    string
		actor   domain.Actor
		mock    func(m mocks)
		wantErr error
	}{
		{
			name:  "owner",
			actor: domain.Actor{UserID: 1, Capabilities: []domain.Capability{domain.CapabilitySelf}},
			mock: func(m mocks) {
				m.orders.EXPECT().FindByID(gomock.Any(), int64(42)).Return(paidOrder(), nil)
				m.repo.EXPECT().FindByOrder(gomock.Any(), int64(42)).Return(&domain.Receipt{ID: 8, OrderID: 42}, nil)
				m.repo.EXPECT().GetConfig(gomock.Any()).Return(cfg, nil)
			},
		},
		{
			name:  "staff",
			actor: domain.Actor{UserID: 100, Capabilities: []domain.Capability{domain.CapabilityAdmin}},
			mock: func(m mocks) {
				m.orders.EXPECT().FindByID(gomock.Any(), int64(42)).Return(paidOrder(), nil)
				m.repo.EXPECT().FindByOrder(gomock.Any(), int64(42)).Return(&domain.Receipt{ID: 8, OrderID: 42}, nil)
				m.repo.EXPECT().GetConfig(gomock.Any()).Return(cfg, nil)
			},
		},
		{
			name:  "another buyer",
			actor: domain.Actor{UserID: 2, Capabilities: []domain.Capability{domain.CapabilitySelf}},
			mock: func(m mocks) {
				m.orders.EXPECT().FindByID(gomock.Any(), int64(42)).Return(paidOrder(), nil)
			},
			wantErr: domain.ErrForbidden,
		},
		{
			name:  "unknown order",
			actor: domain.Actor{UserID: 1},
			mock: func(m mocks) {
				m.orders.EXPECT().FindByID(gomock.Any(), int64(42)).Return(nil, nil)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:  "order without receipt",
			actor: domain.Actor{UserID: 1},
			mock: func(m mocks) {
				m.orders.EXPECT().FindByID(gomock.Any(), int64(42)).Return(paidOrder(), nil)
				m.repo.EXPECT().FindByOrder(gomock.Any(), int64(42)).Return(nil, nil)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.mock(m)
			rc, err := service.Get(context.Background(), tt.actor, 42)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, rc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, cfg, rc.Config)
		})
	}
}

func TestListForUser(t *testing.T) {
	service, m := NewMock(t)
	ctx := context.Background()
	cfg := &domain.ReceiptConfig{CompanyName: "Coursemart LLC"}

	m.repo.EXPECT().ListByUser(gomock.Any(), int64(1)).Return([]domain.Receipt{
		{ID: 9, OrderID: 43, Status: domain.ReceiptAnnulled},
		{ID: 8, OrderID: 42, Status: domain.ReceiptExecuted},
	}, nil)
	m.repo.EXPECT().GetConfig(gomock.Any()).Return(cfg, nil)
	receipts, err := service.ListForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, receipts, 2)
	assert.Equal(t, cfg, receipts[0].Config)
	assert.Equal(t, cfg, receipts[1].Config)

	m.repo.EXPECT().ListByUser(gomock.Any(), int64(2)).Return(nil, nil)
	receipts, err = service.ListForUser(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, receipts)

	m.repo.EXPECT().ListByUser(gomock.Any(), int64(3)).Return([]domain.Receipt{{ID: 10}}, nil)
	m.repo.EXPECT().GetConfig(gomock.Any()).Return(nil, errors.New("database error"))
	_, err = service.ListForUser(ctx, 3)
	assert.Error(t, err)
}
