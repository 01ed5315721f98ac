package checkoutservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
	"github.com/GlebRadaev/coursemart/internal/pg"
	"github.com/GlebRadaev/coursemart/internal/pricing"
	"github.com/GlebRadaev/coursemart/internal/service/tenderservice"
)

type mocks struct {
	carts     *MockCartRepo
	courses   *MockCourseReader
	addresses *MockAddressReader
	orders    *MockOrderRepo
	purchases *MockPurchaseRepo
	promos    *MockPromotions
	tender    *MockTender
	receipts  *MockReceipts
	ledger    *MockLedger
	activity  *MockActivityLogger
}

func NewMock(t *testing.T) (*Service, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		carts:     NewMockCartRepo(ctrl),
		courses:   NewMockCourseReader(ctrl),
		addresses: NewMockAddressReader(ctrl),
		orders:    NewMockOrderRepo(ctrl),
		purchases: NewMockPurchaseRepo(ctrl),
		promos:    NewMockPromotions(ctrl),
		tender:    NewMockTender(ctrl),
		receipts:  NewMockReceipts(ctrl),
		ledger:    NewMockLedger(ctrl),
		activity:  NewMockActivityLogger(ctrl),
	}
	txManager := pg.NewMockTXManager(ctrl)
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn pg.TransactionalFn) error { return fn(ctx) },
	).AnyTimes()
	service := New(Deps{
		Carts:      m.carts,
		Courses:    m.courses,
		Addresses:  m.addresses,
		Orders:     m.orders,
		Purchases:  m.purchases,
		Promotions: m.promos,
		Tender:     m.tender,
		Receipts:   m.receipts,
		Ledger:     m.ledger,
		Activity:   m.activity,
		TxManager:  txManager,
	}, pricing.DefaultRates())
	return service, m
}

func cartAt(version int64) *domain.Cart {
	return &domain.Cart{
		ID:      3,
		UserID:  1,
		Version: version,
		Lines: []domain.CartLine{
			{ID: 1, CartID: 3, CourseID: 10, Quantity: 1, CapturedUnitPrice: money.MustParse("900.00")},
		},
	}
}

func TestIdempotencyKey(t *testing.T) {
	req := Request{UserID: 1, Tender: tenderservice.Selection{Method: domain.PaymentBalance}}

	assert.Equal(t, IdempotencyKey(cartAt(1), req), IdempotencyKey(cartAt(1), req))
	assert.NotEqual(t, IdempotencyKey(cartAt(1), req), IdempotencyKey(cartAt(2), req), "version is part of the key")

	withPromo := req
	withPromo.PromoCode = " save10 "
	upper := req
	upper.PromoCode = "SAVE10"
	assert.Equal(t, IdempotencyKey(cartAt(1), withPromo), IdempotencyKey(cartAt(1), upper))
	assert.NotEqual(t, IdempotencyKey(cartAt(1), req), IdempotencyKey(cartAt(1), upper))

	client := req
	client.IdempotencyKey = "abc"
	assert.Equal(t, IdempotencyKey(cartAt(1), client), IdempotencyKey(nil, client), "client keys ignore the cart")
	other := client
	other.UserID = 2
	assert.NotEqual(t, IdempotencyKey(nil, client), IdempotencyKey(nil, other), "client keys are scoped to the user")
}

func TestCheckout_Preconditions(t *testing.T) {
	req := Request{UserID: 1, Tender: tenderservice.Selection{Method: domain.PaymentBalance}}

	tests := []struct {
		name        string
		prepareMock func(m mocks)
		wantID      int64
		wantErr     error
	}{
		{
			name: "cart changed after snapshot",
			prepareMock: func(m mocks) {
				m.carts.EXPECT().FindByUser(gomock.Any(), int64(1)).Return(cartAt(1), nil)
				m.carts.EXPECT().LockByUser(gomock.Any(), int64(1)).Return(cartAt(2), nil)
				m.tender.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			wantErr: domain.ErrCartModified,
		},
		{
			name: "empty cart",
			prepareMock: func(m mocks) {
				m.carts.EXPECT().FindByUser(gomock.Any(), int64(1)).Return(nil, nil)
				m.carts.EXPECT().LockByUser(gomock.Any(), int64(1)).Return(&domain.Cart{ID: 3, UserID: 1}, nil)
				m.tender.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			wantErr: domain.ErrCartEmpty,
		},
		{
			name: "prior attempt is returned",
			prepareMock: func(m mocks) {
				m.carts.EXPECT().FindByUser(gomock.Any(), int64(1)).Return(cartAt(1), nil)
				m.carts.EXPECT().LockByUser(gomock.Any(), int64(1)).Return(&domain.Cart{ID: 3, UserID: 1, Version: 2}, nil)
				m.tender.EXPECT().Lookup(gomock.Any(), IdempotencyKey(cartAt(1), req)).Return(&domain.TenderResult{OrderID: 77}, nil)
			},
			wantID: 77,
		},
		{
			name: "course withdrawn from sale",
			prepareMock: func(m mocks) {
				m.carts.EXPECT().FindByUser(gomock.Any(), int64(1)).Return(cartAt(1), nil)
				m.carts.EXPECT().LockByUser(gomock.Any(), int64(1)).Return(cartAt(1), nil)
				m.tender.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(nil, nil)
				m.courses.EXPECT().GetCourse(gomock.Any(), int64(10)).Return(&domain.Course{ID: 10, Available: false}, nil)
			},
			wantErr: domain.ErrCourseUnavailable,
		},
		{
			name: "course already owned",
			prepareMock: func(m mocks) {
				m.carts.EXPECT().FindByUser(gomock.Any(), int64(1)).Return(cartAt(1), nil)
				m.carts.EXPECT().LockByUser(gomock.Any(), int64(1)).Return(cartAt(1), nil)
				m.tender.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(nil, nil)
				m.courses.EXPECT().GetCourse(gomock.Any(), int64(10)).Return(&domain.Course{ID: 10, Available: true}, nil)
				m.purchases.EXPECT().HasActive(gomock.Any(), int64(1), int64(10)).Return(true, nil)
			},
			wantErr: domain.ErrAlreadyPurchased,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			id, err := service.Checkout(context.Background(), req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestCheckout_ForeignAddress(t *testing.T) {
	service, m := NewMock(t)
	addressID := int64(9)
	m.carts.EXPECT().FindByUser(gomock.Any(), int64(1)).Return(cartAt(1), nil)
	m.carts.EXPECT().LockByUser(gomock.Any(), int64(1)).Return(cartAt(1), nil)
	m.tender.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(nil, nil)
	m.courses.EXPECT().GetCourse(gomock.Any(), int64(10)).Return(&domain.Course{ID: 10, Available: true}, nil)
	m.purchases.EXPECT().HasActive(gomock.Any(), int64(1), int64(10)).Return(false, nil)
	m.addresses.EXPECT().FindAddress(gomock.Any(), addressID).Return(&domain.Address{ID: addressID, UserID: 2}, nil)

	_, err := service.Checkout(context.Background(), Request{
		UserID:    1,
		AddressID: &addressID,
		Tender:    tenderservice.Selection{Method: domain.PaymentBalance},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)
}

func TestCheckout_InvalidMethod(t *testing.T) {
	service, m := NewMock(t)
	m.carts.EXPECT().FindByUser(gomock.Any(), int64(1)).Return(cartAt(1), nil)

	_, err := service.Checkout(context.Background(), Request{UserID: 1, Tender: tenderservice.Selection{Method: "barter"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
