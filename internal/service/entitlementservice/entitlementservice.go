package entitlementservice

import (
	"context"

	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
)

//go:generate mockgen -source=entitlementservice.go -destination=mock_entitlementservice.go -package=entitlementservice
type Repo interface {
	FindByID(ctx context.Context, id int64) (*domain.CoursePurchase, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.CoursePurchase, error)
	HasActive(ctx context.Context, userID, courseID int64) (bool, error)
	HasCompleted(ctx context.Context, userID, courseID int64) (bool, error)
}

// Service answers who may access which course.
type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

// Owns reports whether the user holds a pending or completed purchase of the course.
func (s *Service) Owns(ctx context.Context, userID, courseID int64) (bool, error) {
	owns, err := s.repo.HasActive(ctx, userID, courseID)
	if err != nil {
		zap.L().Error("failed to check course ownership", zap.Int64("userID", userID), zap.Int64("courseID", courseID), zap.Error(err))
		return false, err
	}
	return owns, nil
}

// Entitled reports whether the user may open the course: a completed purchase exists.
func (s *Service) Entitled(ctx context.Context, userID, courseID int64) (bool, error) {
	return s.repo.HasCompleted(ctx, userID, courseID)
}

func (s *Service) ListPurchases(ctx context.Context, userID int64) ([]domain.CoursePurchase, error) {
	purchases, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		zap.L().Error("failed to list purchases", zap.Int64("userID", userID), zap.Error(err))
		return nil, err
	}
	return purchases, nil
}

// Accessible returns the purchase when actor may open its lessons.
func (s *Service) Accessible(ctx context.Context, actor domain.Actor, purchaseID int64) (*domain.CoursePurchase, error) {
	p, err := s.repo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.UserID != actor.UserID && !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	if p.Status != domain.PurchaseCompleted && !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	return p, nil
}
