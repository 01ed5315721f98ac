package purchases

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/dto"
	"github.com/GlebRadaev/coursemart/internal/money"
	"github.com/GlebRadaev/coursemart/internal/service/lessonservice"
	"github.com/GlebRadaev/coursemart/pkg/auth"
)

type mocks struct {
	purchases *MockPurchaseService
	refunds   *MockRefundService
	lessons   *MockLessonService
}

func NewMock(t *testing.T) (*PurchaseHandler, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		purchases: NewMockPurchaseService(ctrl),
		refunds:   NewMockRefundService(ctrl),
		lessons:   NewMockLessonService(ctrl),
	}
	return New(m.purchases, m.refunds, m.lessons), m
}

var buyer = domain.Actor{UserID: 1, Capabilities: []domain.Capability{domain.CapabilitySelf}}

func authed(r *http.Request, params ...string) *http.Request {
	ctx := auth.WithActor(r.Context(), buyer)
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(params); i += 2 {
		rctx.URLParams.Add(params[i], params[i+1])
	}
	return r.WithContext(context.WithValue(ctx, chi.RouteCtxKey, rctx))
}

func purchase() domain.CoursePurchase {
	return domain.CoursePurchase{
		ID:            7,
		UserID:        1,
		CourseID:      11,
		Amount:        money.MustParse("2172.00"),
		PaymentMethod: domain.PaymentBalance,
		Status:        domain.PurchaseCompleted,
		PurchasedAt:   time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestListPurchases(t *testing.T) {
	handler, m := NewMock(t)
	m.purchases.EXPECT().ListPurchases(gomock.Any(), int64(1)).Return([]domain.CoursePurchase{purchase()}, nil)

	rr := httptest.NewRecorder()
	handler.ListPurchases(rr, authed(httptest.NewRequest("GET", "/api/user/purchases", nil)))

	require.Equal(t, http.StatusOK, rr.Code)
	var got []dto.PurchaseResponseDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "2172.00", got[0].Amount.String())
}

func TestRequestRefund(t *testing.T) {
	handler, m := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Pending request created",
			body: `{"reason":"not what I expected"}`,
			prepareMock: func() {
				m.refunds.EXPECT().RequestCourseRefund(gomock.Any(), buyer, int64(7), "not what I expected").
					Return(&domain.CourseRefundRequest{ID: 3, CoursePurchaseID: 7, UserID: 1, Status: domain.RefundPending, Amount: money.MustParse("2172.00")}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Foreign purchase",
			body: `{"reason":"mine now"}`,
			prepareMock: func() {
				m.refunds.EXPECT().RequestCourseRefund(gomock.Any(), buyer, int64(7), "mine now").Return(nil, domain.ErrForbidden)
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "Reason required",
			body:         `{}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			rr := httptest.NewRecorder()
			handler.RequestRefund(rr, authed(httptest.NewRequest("POST", "/api/user/purchases/7/refund", bytes.NewBufferString(tt.body)), "id", "7"))

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestListRefunds(t *testing.T) {
	handler, m := NewMock(t)

	m.refunds.EXPECT().ListOwnRefundRequests(gomock.Any(), buyer).Return([]domain.CourseRefundRequest{
		{ID: 4, CoursePurchaseID: 8, UserID: 1, Status: domain.RefundPending, Amount: money.MustParse("900.00")},
		{ID: 3, CoursePurchaseID: 7, UserID: 1, Status: domain.RefundApproved, Amount: money.MustParse("2172.00")},
	}, nil)
	rr := httptest.NewRecorder()
	handler.ListRefunds(rr, authed(httptest.NewRequest("GET", "/api/user/refunds", nil)))

	require.Equal(t, http.StatusOK, rr.Code)
	var got []dto.RefundResponseDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, "approved", got[1].Status)

	m.refunds.EXPECT().ListOwnRefundRequests(gomock.Any(), buyer).Return(nil, nil)
	rr = httptest.NewRecorder()
	handler.ListRefunds(rr, authed(httptest.NewRequest("GET", "/api/user/refunds", nil)))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestListLessons(t *testing.T) {
	handler, m := NewMock(t)
	p := purchase()
	m.lessons.EXPECT().ListLessons(gomock.Any(), buyer, int64(7)).Return(&lessonservice.Progress{
		Purchase: &p,
		Lessons: []domain.Lesson{
			{ID: 5, CourseID: 11, Title: "Channels", Pages: []domain.LessonPage{{Content: "make(chan int)"}}},
			{ID: 6, CourseID: 11, Title: "Select"},
		},
		Completions: []domain.LessonCompletion{{ID: 9, LessonID: 5}},
	}, nil)

	rr := httptest.NewRecorder()
	handler.ListLessons(rr, authed(httptest.NewRequest("GET", "/api/user/purchases/7/lessons", nil), "id", "7"))

	require.Equal(t, http.StatusOK, rr.Code)
	var got dto.ProgressResponseDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	require.Len(t, got.Lessons, 2)
	require.NotNil(t, got.Lessons[0].Completion)
	assert.Equal(t, int64(9), got.Lessons[0].Completion.ID)
	assert.Nil(t, got.Lessons[1].Completion)
	assert.Equal(t, []string{"make(chan int)"}, got.Lessons[0].Pages)
}

func TestCompleteLesson(t *testing.T) {
	handler, m := NewMock(t)
	liked := true

	m.lessons.EXPECT().CompleteLesson(gomock.Any(), buyer, int64(7), int64(5), &liked, "clear").
		Return(&domain.LessonCompletion{ID: 9, LessonID: 5, Liked: &liked, ReviewText: "clear"}, nil)
	rr := httptest.NewRecorder()
	handler.CompleteLesson(rr, authed(httptest.NewRequest("POST", "/x", bytes.NewBufferString(`{"liked":true,"review":"clear"}`)), "id", "7", "lessonID", "5"))
	assert.Equal(t, http.StatusOK, rr.Code)

	m.lessons.EXPECT().CompleteLesson(gomock.Any(), buyer, int64(7), int64(5), (*bool)(nil), "").Return(nil, domain.ErrForbidden)
	rr = httptest.NewRecorder()
	handler.CompleteLesson(rr, authed(httptest.NewRequest("POST", "/x", nil), "id", "7", "lessonID", "5"))
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = httptest.NewRecorder()
	handler.CompleteLesson(rr, authed(httptest.NewRequest("POST", "/x", nil), "id", "7", "lessonID", "zero"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNotifications(t *testing.T) {
	handler, m := NewMock(t)

	m.lessons.EXPECT().ListNotifications(gomock.Any(), int64(1)).Return([]domain.UserNotification{{ID: 1, Message: "New comment"}}, nil)
	rr := httptest.NewRecorder()
	handler.ListNotifications(rr, authed(httptest.NewRequest("GET", "/api/user/notifications", nil)))
	require.Equal(t, http.StatusOK, rr.Code)
	var got []dto.NotificationResponseDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, "New comment", got[0].Message)

	m.lessons.EXPECT().MarkNotificationRead(gomock.Any(), int64(1), int64(1)).Return(nil)
	rr = httptest.NewRecorder()
	handler.MarkRead(rr, authed(httptest.NewRequest("POST", "/api/user/notifications/1/read", nil), "id", "1"))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	m.lessons.EXPECT().MarkNotificationRead(gomock.Any(), int64(1), int64(2)).Return(domain.ErrNotFound)
	rr = httptest.NewRecorder()
	handler.MarkRead(rr, authed(httptest.NewRequest("POST", "/api/user/notifications/2/read", nil), "id", "2"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
