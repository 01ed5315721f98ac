package orderservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
)

func NewMock(t *testing.T) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	service := New(repo)
	return service, repo
}

func TestGetOrders(t *testing.T) {
	ctx := context.Background()
	service, repo := NewMock(t)

	tests := []struct {
		name        string
		userID      int64
		prepareMock func()
		expected    []domain.Order
		expectedErr error
	}{
		{
			name:   "Orders found",
			userID: 1,
			prepareMock: func() {
				repo.EXPECT().FindByUser(ctx, int64(1)).Return([]domain.Order{
					{ID: 10, UserID: 1, Status: domain.OrderStatusPaid, Total: money.MustParse("2172.00")},
				}, nil)
			},
			expected: []domain.Order{
				{ID: 10, UserID: 1, Status: domain.OrderStatusPaid, Total: money.MustParse("2172.00")},
			},
		},
		{
			name:   "No orders",
			userID: 2,
			prepareMock: func() {
				repo.EXPECT().FindByUser(ctx, int64(2)).Return(nil, nil)
			},
			expected: nil,
		},
		{
			name:   "Repository error",
			userID: 3,
			prepareMock: func() {
				repo.EXPECT().FindByUser(ctx, int64(3)).Return(nil, errors.New("database error"))
			},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			orders, err := service.GetOrders(ctx, tt.userID)
			if tt.expectedErr != nil {
				assert.EqualError(t, err, tt.expectedErr.Error())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, orders)
		})
	}
}

func TestGetOrder(t *testing.T) {
	ctx := context.Background()
	order := &domain.Order{ID: 10, UserID: 1, Status: domain.OrderStatusProcessing}

	tests := []struct {
		name        string
		actor       domain.Actor
		found       *domain.Order
		expectedErr error
	}{
		{name: "Owner", actor: domain.Actor{UserID: 1}, found: order},
		{
			name:  "Manager reads any order",
			actor: domain.Actor{UserID: 5, Capabilities: []domain.Capability{domain.CapabilityManager}},
			found: order,
		},
		{name: "Someone else", actor: domain.Actor{UserID: 2}, found: order, expectedErr: domain.ErrForbidden},
		{name: "Missing", actor: domain.Actor{UserID: 1}, found: nil, expectedErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := NewMock(t)
			repo.EXPECT().FindByID(ctx, int64(10)).Return(tt.found, nil)

			got, err := service.GetOrder(ctx, tt.actor, 10)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, order, got)
		})
	}
}
