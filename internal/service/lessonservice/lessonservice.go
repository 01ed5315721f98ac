package lessonservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/pg"
	"github.com/GlebRadaev/coursemart/pkg/profanity"
)

//go:generate mockgen -source=lessonservice.go -destination=mock_lessonservice.go -package=lessonservice
type Repo interface {
	ListLessons(ctx context.Context, courseID int64) ([]domain.Lesson, error)
	GetLesson(ctx context.Context, id int64) (*domain.Lesson, error)
	UpsertCompletion(ctx context.Context, c *domain.LessonCompletion) error
	LockCompletion(ctx context.Context, id int64) (*domain.LessonCompletion, error)
	ListCompletions(ctx context.Context, purchaseID int64) ([]domain.LessonCompletion, error)
	SetAdminComment(ctx context.Context, id int64, comment string, at time.Time) error
}

type NotificationRepo interface {
	Create(ctx context.Context, n *domain.UserNotification) error
	ListByUser(ctx context.Context, userID int64) ([]domain.UserNotification, error)
	MarkRead(ctx context.Context, userID, id int64) (bool, error)
}

type PurchaseAccess interface {
	Accessible(ctx context.Context, actor domain.Actor, purchaseID int64) (*domain.CoursePurchase, error)
}

type ActivityLogger interface {
	Log(ctx context.Context, actorID *int64, action, targetType string, targetID int64, details map[string]any) error
}

// Progress is a purchased course's lessons with the buyer's completions.
type Progress struct {
	Purchase    *domain.CoursePurchase
	Lessons     []domain.Lesson
	Completions []domain.LessonCompletion
}

type Service struct {
	repo          Repo
	notifications NotificationRepo
	access        PurchaseAccess
	txManager     pg.TXManager
	activity      ActivityLogger
	now           func() time.Time
}

func New(repo Repo, notifications NotificationRepo, access PurchaseAccess, txManager pg.TXManager, activity ActivityLogger) *Service {
	return &Service{
		repo:          repo,
		notifications: notifications,
		access:        access,
		txManager:     txManager,
		activity:      activity,
		now:           time.Now,
	}
}

func (s *Service) ListLessons(ctx context.Context, actor domain.Actor, purchaseID int64) (*Progress, error) {
	purchase, err := s.access.Accessible(ctx, actor, purchaseID)
	if err != nil {
		return nil, err
	}
	lessons, err := s.repo.ListLessons(ctx, purchase.CourseID)
	if err != nil {
		return nil, err
	}
	completions, err := s.repo.ListCompletions(ctx, purchase.ID)
	if err != nil {
		return nil, err
	}
	return &Progress{Purchase: purchase, Lessons: lessons, Completions: completions}, nil
}

// CompleteLesson records (or updates) the buyer's completion of a lesson.
// Only the buyer may complete; staff can read progress but not write it.
func (s *Service) CompleteLesson(ctx context.Context, actor domain.Actor, purchaseID, lessonID int64, liked *bool, review string) (*domain.LessonCompletion, error) {
	purchase, err := s.access.Accessible(ctx, actor, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase.UserID != actor.UserID || purchase.Status != domain.PurchaseCompleted {
		return nil, domain.ErrForbidden
	}
	lesson, err := s.repo.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil || lesson.CourseID != purchase.CourseID {
		return nil, fmt.Errorf("%w: lesson %d", domain.ErrNotFound, lessonID)
	}

	completion := &domain.LessonCompletion{
		CoursePurchaseID: purchase.ID,
		LessonID:         lesson.ID,
		UserID:           purchase.UserID,
		Liked:            liked,
		ReviewText:       profanity.Mask(strings.TrimSpace(review)),
	}
	if err := s.repo.UpsertCompletion(ctx, completion); err != nil {
		zap.L().Error("failed to record lesson completion", zap.Int64("purchaseID", purchaseID), zap.Int64("lessonID", lessonID), zap.Error(err))
		return nil, err
	}
	return completion, nil
}

// AdminComment answers a completion and notifies the buyer. Repeating the
// same text changes nothing and sends no second notification.
func (s *Service) AdminComment(ctx context.Context, actor domain.Actor, completionID int64, text string) (*domain.LessonCompletion, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	text = profanity.Mask(strings.TrimSpace(text))
	if text == "" {
		return nil, fmt.Errorf("%w: comment is empty", domain.ErrInvalidInput)
	}

	var completion *domain.LessonCompletion
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		c, err := s.repo.LockCompletion(ctx, completionID)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("%w: completion %d", domain.ErrNotFound, completionID)
		}
		completion = c
		if c.AdminComment == text {
			return nil
		}

		at := s.now()
		if err := s.repo.SetAdminComment(ctx, c.ID, text, at); err != nil {
			return err
		}
		c.AdminComment = text
		c.AdminCommentedAt = &at

		lessonTitle := fmt.Sprintf("#%d", c.LessonID)
		if lesson, err := s.repo.GetLesson(ctx, c.LessonID); err != nil {
			return err
		} else if lesson != nil {
			lessonTitle = lesson.Title
		}
		id := c.ID
		err = s.notifications.Create(ctx, &domain.UserNotification{
			UserID:       c.UserID,
			CompletionID: &id,
			Message:      fmt.Sprintf("New comment on your lesson %q", lessonTitle),
		})
		if err != nil {
			return err
		}
		return s.activity.Log(ctx, actor.CreatedBy(), domain.ActivityAdminCommented, "lesson_completion", c.ID, nil)
	})
	if err != nil {
		return nil, err
	}
	return completion, nil
}

func (s *Service) ListNotifications(ctx context.Context, userID int64) ([]domain.UserNotification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

func (s *Service) MarkNotificationRead(ctx context.Context, userID, id int64) error {
	found, err := s.notifications.MarkRead(ctx, userID, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}
