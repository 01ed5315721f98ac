package lessonservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/pg"
)

type mocks struct {
	repo          *MockRepo
	notifications *MockNotificationRepo
	access        *MockPurchaseAccess
	activity      *MockActivityLogger
}

func NewMock(t *testing.T) (*Service, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		repo:          NewMockRepo(ctrl),
		notifications: NewMockNotificationRepo(ctrl),
		access:        NewMockPurchaseAccess(ctrl),
		activity:      NewMockActivityLogger(ctrl),
	}
	txManager := pg.NewMockTXManager(ctrl)
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn pg.TransactionalFn) error { return fn(ctx) },
	).AnyTimes()
	service := New(m.repo, m.notifications, m.access, txManager, m.activity)
	service.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
	return service, m
}

var (
	buyer   = domain.Actor{UserID: 1, Capabilities: []domain.Capability{domain.CapabilitySelf}}
	manager = domain.Actor{UserID: 5, Capabilities: []domain.Capability{domain.CapabilityManager}}
)

func TestCompleteLesson(t *testing.T) {
	liked := true

	tests := []struct {
		name        string
		actor       *domain.Actor
		prepareMock func(m mocks)
		wantErr     error
		wantReview  string
	}{
		{
			name:  "staff cannot complete for the buyer",
			actor: &manager,
			prepareMock: func(m mocks) {
				m.access.EXPECT().Accessible(gomock.Any(), manager, int64(7)).Return(&domain.CoursePurchase{ID: 7, UserID: 1, CourseID: 11, Status: domain.PurchaseCompleted}, nil)
			},
			wantErr: domain.ErrForbidden,
		},
		{
			name: "pending purchase",
			prepareMock: func(m mocks) {
				m.access.EXPECT().Accessible(gomock.Any(), buyer, int64(7)).Return(&domain.CoursePurchase{ID: 7, UserID: 1, CourseID: 11, Status: domain.PurchasePending}, nil)
			},
			wantErr: domain.ErrForbidden,
		},
		{
			name: "lesson of another course",
			prepareMock: func(m mocks) {
				m.access.EXPECT().Accessible(gomock.Any(), buyer, int64(7)).Return(&domain.CoursePurchase{ID: 7, UserID: 1, CourseID: 11, Status: domain.PurchaseCompleted}, nil)
				m.repo.EXPECT().GetLesson(gomock.Any(), int64(3)).Return(&domain.Lesson{ID: 3, CourseID: 12}, nil)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "masked review",
			prepareMock: func(m mocks) {
				m.access.EXPECT().Accessible(gomock.Any(), buyer, int64(7)).Return(&domain.CoursePurchase{ID: 7, UserID: 1, CourseID: 11, Status: domain.PurchaseCompleted}, nil)
				m.repo.EXPECT().GetLesson(gomock.Any(), int64(3)).Return(&domain.Lesson{ID: 3, CourseID: 11}, nil)
				m.repo.EXPECT().UpsertCompletion(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantReview: "f*** this",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			actor := buyer
			if tt.actor != nil {
				actor = *tt.actor
			}
			c, err := service.CompleteLesson(context.Background(), actor, 7, 3, &liked, " f**k this ")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantReview, c.ReviewText)
			assert.Equal(t, int64(1), c.UserID)
		})
	}
}

func TestAdminComment(t *testing.T) {
	t.Run("buyer forbidden", func(t *testing.T) {
		service, _ := NewMock(t)
		_, err := service.AdminComment(context.Background(), buyer, 1, "nice")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("empty comment", func(t *testing.T) {
		service, _ := NewMock(t)
		_, err := service.AdminComment(context.Background(), manager, 1, "   ")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("same text is a no-op", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().LockCompletion(gomock.Any(), int64(1)).Return(&domain.LessonCompletion{ID: 1, UserID: 1, AdminComment: "nice"}, nil)

		c, err := service.AdminComment(context.Background(), manager, 1, " nice ")
		require.NoError(t, err)
		assert.Equal(t, "nice", c.AdminComment)
	})

	t.Run("new text notifies the buyer", func(t *testing.T) {
		service, m := NewMock(t)
		m.repo.EXPECT().LockCompletion(gomock.Any(), int64(1)).Return(&domain.LessonCompletion{ID: 1, UserID: 1, LessonID: 3, AdminComment: "nice"}, nil)
		m.repo.EXPECT().SetAdminComment(gomock.Any(), int64(1), "well done", gomock.Any()).Return(nil)
		m.repo.EXPECT().GetLesson(gomock.Any(), int64(3)).Return(&domain.Lesson{ID: 3, Title: "Channels"}, nil)
		m.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n *domain.UserNotification) error {
			assert.Equal(t, int64(1), n.UserID)
			assert.Equal(t, `New comment on your lesson "Channels"`, n.Message)
			return nil
		})
		m.activity.EXPECT().Log(gomock.Any(), manager.CreatedBy(), domain.ActivityAdminCommented, "lesson_completion", int64(1), gomock.Nil()).Return(nil)

		c, err := service.AdminComment(context.Background(), manager, 1, "well done")
		require.NoError(t, err)
		assert.Equal(t, "well done", c.AdminComment)
		require.NotNil(t, c.AdminCommentedAt)
	})
}

func TestMarkNotificationRead(t *testing.T) {
	service, m := NewMock(t)
	m.notifications.EXPECT().MarkRead(gomock.Any(), int64(1), int64(2)).Return(false, nil)
	assert.ErrorIs(t, service.MarkNotificationRead(context.Background(), 1, 2), domain.ErrNotFound)
}
