package cart

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
	"github.com/GlebRadaev/coursemart/internal/pricing"
	"github.com/GlebRadaev/coursemart/internal/service/cartservice"
	"github.com/GlebRadaev/coursemart/pkg/auth"
	"github.com/GlebRadaev/coursemart/pkg/utils"
)

func NewMock(t *testing.T) (*CartHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	return New(service), service
}

func view(t *testing.T) *cartservice.View {
	cart := &domain.Cart{ID: 1, UserID: 1, Version: 3, Lines: []domain.CartLine{
		{ID: 5, CourseID: 11, CourseTitle: "Go in practice", Quantity: 1, CapturedUnitPrice: money.MustParse("900.00")},
	}}
	q, err := pricing.Calculate([]pricing.Line{{CourseID: 11, Quantity: 1, UnitPrice: money.MustParse("900.00")}}, nil, time.Now(), pricing.DefaultRates())
	require.NoError(t, err)
	return &cartservice.View{Cart: cart, Quote: q}
}

func authed(r *http.Request, params ...string) *http.Request {
	ctx := auth.WithActor(r.Context(), domain.Actor{UserID: 1, Capabilities: []domain.Capability{domain.CapabilitySelf}})
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for i := 0; i+1 < len(params); i += 2 {
			rctx.URLParams.Add(params[i], params[i+1])
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return r.WithContext(ctx)
}

func TestGet(t *testing.T) {
	handler, service := NewMock(t)
	service.EXPECT().Get(gomock.Any(), int64(1)).Return(view(t), nil)

	rr := httptest.NewRecorder()
	handler.Get(rr, authed(httptest.NewRequest("GET", "/api/user/cart", nil)))

	require.Equal(t, http.StatusOK, rr.Code)
	var got dto.CartResponseDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, int64(3), got.Version)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "900.00", got.Lines[0].UnitPrice.String())
	assert.Equal(t, "380.00", got.VATAmount.String())
	assert.Equal(t, "2280.00", got.Total.String())
}

func TestAdd(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
		expectedErr  string
	}{
		{
			name: "Added",
			body: `{"course_id":11,"quantity":1}`,
			prepareMock: func() {
				service.EXPECT().Add(gomock.Any(), int64(1), int64(11), 1).Return(view(t), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Already purchased",
			body: `{"course_id":11,"quantity":1}`,
			prepareMock: func() {
				service.EXPECT().Add(gomock.Any(), int64(1), int64(11), 1).Return(nil, domain.ErrAlreadyPurchased)
			},
			expectedCode: http.StatusConflict,
			expectedErr:  "ALREADY_PURCHASED",
		},
		{
			name:         "Zero quantity",
			body:         `{"course_id":11,"quantity":0}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "INVALID_INPUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			rr := httptest.NewRecorder()
			handler.Add(rr, authed(httptest.NewRequest("POST", "/api/user/cart", bytes.NewBufferString(tt.body))))

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedErr != "" {
				var resp utils.Response
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedErr, resp.Code)
			}
		})
	}
}

func TestUpdateAndRemoveLine(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().UpdateQuantity(gomock.Any(), int64(1), int64(5), 2).Return(view(t), nil)
	rr := httptest.NewRecorder()
	handler.UpdateLine(rr, authed(httptest.NewRequest("PUT", "/api/user/cart/lines/5", bytes.NewBufferString(`{"quantity":2}`)), "id", "5"))
	assert.Equal(t, http.StatusOK, rr.Code)

	service.EXPECT().Remove(gomock.Any(), int64(1), int64(6)).Return(nil, domain.ErrNotFound)
	rr = httptest.NewRecorder()
	handler.RemoveLine(rr, authed(httptest.NewRequest("DELETE", "/api/user/cart/lines/6", nil), "id", "6"))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	handler.RemoveLine(rr, authed(httptest.NewRequest("DELETE", "/api/user/cart/lines/0", nil), "id", "0"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRefresh(t *testing.T) {
	handler, service := NewMock(t)
	service.EXPECT().RefreshPrices(gomock.Any(), int64(1)).Return(view(t), nil)

	rr := httptest.NewRecorder()
	handler.Refresh(rr, authed(httptest.NewRequest("POST", "/api/user/cart/refresh", nil)))

	assert.Equal(t, http.StatusOK, rr.Code)
}
