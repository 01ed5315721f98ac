package activityservice

import (
	"context"

	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
)

const defaultListLimit = 100

//go:generate mockgen -source=activityservice.go -destination=mock_activityservice.go -package=activityservice
type Repo interface {
	Create(ctx context.Context, e *domain.ActivityEntry) error
	List(ctx context.Context, limit int) ([]domain.ActivityEntry, error)
}

// Service keeps the append-only audit trail of staff and money actions.
type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

// Log appends an entry. It joins the caller's transaction when ctx carries one.
func (s *Service) Log(ctx context.Context, actorID *int64, action, targetType string, targetID int64, details map[string]any) error {
	entry := &domain.ActivityEntry{
		ActorID:    actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    details,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		zap.L().Error("failed to write activity entry", zap.String("action", action), zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) List(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	if limit <= 0 || limit > 1000 {
		limit = defaultListLimit
	}
	entries, err := s.repo.List(ctx, limit)
	if err != nil {
		zap.L().Error("failed to list activity", zap.Error(err))
		return nil, err
	}
	return entries, nil
}
