package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
	"github.com/GlebRadaev/coursemart/pkg/utils"
)

func NewMock(t *testing.T) (*CatalogHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	return New(service), service
}

func goCourse() domain.Course {
	return domain.Course{
		ID:              11,
		Title:           "Go in practice",
		UnitPrice:       money.MustParse("1000.00"),
		DiscountPercent: decimal.NewFromInt(10),
		Available:       true,
		Images:          []domain.CourseImage{{URL: "https://cdn.example.com/go.png"}},
	}
}

func TestListCourses(t *testing.T) {
	handler, service := NewMock(t)
	two := int64(2)

	tests := []struct {
		name         string
		query        string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name:  "All courses",
			query: "",
			prepareMock: func() {
				service.EXPECT().ListCourses(gomock.Any(), domain.CourseFilter{}).Return([]domain.Course{goCourse()}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name:  "Filtered",
			query: "?category_id=2&q=go&sort=price_asc&available=true",
			prepareMock: func() {
				service.EXPECT().ListCourses(gomock.Any(), domain.CourseFilter{
					CategoryID:    &two,
					Query:         "go",
					Sort:          domain.SortByPriceAsc,
					AvailableOnly: true,
				}).Return(nil, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  0,
		},
		{
			name:         "Unknown sort",
			query:        "?sort=random",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Bad category",
			query:        "?category_id=abc",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("GET", "/api/catalog/courses"+tt.query, nil)
			rr := httptest.NewRecorder()
			handler.ListCourses(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var got []map[string]any
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
				assert.Len(t, got, tt.expectedLen)
			}
		})
	}
}

func TestGetCourse(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("Effective price", func(t *testing.T) {
		course := goCourse()
		service.EXPECT().GetCourse(gomock.Any(), int64(11)).Return(&course, nil)

		rr := httptest.NewRecorder()
		handler.GetCourse(rr, withID(httptest.NewRequest("GET", "/api/catalog/courses/11", nil), "11"))

		assert.Equal(t, http.StatusOK, rr.Code)
		var got map[string]any
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, "900.00", got["price"])
		assert.Equal(t, "1000.00", got["unit_price"])
	})

	t.Run("Not found", func(t *testing.T) {
		service.EXPECT().GetCourse(gomock.Any(), int64(12)).Return(nil, domain.ErrNotFound)

		rr := httptest.NewRecorder()
		handler.GetCourse(rr, withID(httptest.NewRequest("GET", "/api/catalog/courses/12", nil), "12"))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		var resp utils.Response
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, "NOT_FOUND", resp.Code)
	})

	t.Run("Bad id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.GetCourse(rr, withID(httptest.NewRequest("GET", "/api/catalog/courses/x", nil), "x"))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestListCategories(t *testing.T) {
	handler, service := NewMock(t)
	service.EXPECT().ListCategories(gomock.Any()).Return([]domain.Category{{ID: 2, Name: "Programming", Slug: "programming"}}, nil)

	rr := httptest.NewRecorder()
	handler.ListCategories(rr, httptest.NewRequest("GET", "/api/catalog/categories", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"id":2,"name":"Programming","slug":"programming"}]`, rr.Body.String())
}

func withID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
