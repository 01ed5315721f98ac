package orderservice

import (
	"context"

	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
)

//go:generate mockgen -source=orderservice.go -destination=mock_orderservice.go -package=orderservice
type Repo interface {
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	FindByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) GetOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	orders, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

// GetOrder returns the order with its items; only the buyer and staff may read it.
func (s *Service) GetOrder(ctx context.Context, actor domain.Actor, id int64) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		zap.L().Error("failed to get order", zap.Int64("orderID", id), zap.Error(err))
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.UserID != actor.UserID && !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	return order, nil
}
