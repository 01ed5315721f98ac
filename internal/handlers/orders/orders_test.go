package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/dto"
	"github.com/GlebRadaev/coursemart/internal/money"
	"github.com/GlebRadaev/coursemart/internal/service/checkoutservice"
	"github.com/GlebRadaev/coursemart/internal/service/tenderservice"
	"github.com/GlebRadaev/coursemart/pkg/auth"
	"github.com/GlebRadaev/coursemart/pkg/utils"
)

type mocks struct {
	checkout *MockCheckoutService
	orders   *MockService
	cancel   *MockCancelService
	receipts *MockReceiptService
}

func NewMock(t *testing.T) (*OrderHandler, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		checkout: NewMockCheckoutService(ctrl),
		orders:   NewMockService(ctrl),
		cancel:   NewMockCancelService(ctrl),
		receipts: NewMockReceiptService(ctrl),
	}
	return New(m.checkout, m.orders, m.cancel, m.receipts), m
}

var buyer = domain.Actor{UserID: 1, Capabilities: []domain.Capability{domain.CapabilitySelf}}

func authed(r *http.Request, id string) *http.Request {
	ctx := auth.WithActor(r.Context(), buyer)
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return r.WithContext(ctx)
}

func paidOrder() domain.Order {
	return domain.Order{
		ID:             42,
		UserID:         1,
		Status:         domain.OrderStatusPaid,
		PaymentMethod:  domain.PaymentBalance,
		Subtotal:       money.MustParse("900.00"),
		DiscountAmount: money.MustParse("90.00"),
		DeliveryCost:   money.MustParse("1000.00"),
		VATAmount:      money.MustParse("362.00"),
		Total:          money.MustParse("2172.00"),
		CanBeCancelled: true,
		Items: []domain.OrderItem{
			{ID: 1, CourseID: 11, Quantity: 1, UnitPrice: money.MustParse("900.00")},
		},
	}
}

func TestCheckout(t *testing.T) {
	handler, m := NewMock(t)
	card := int64(4)

	tests := []struct {
		name          string
		body          string
		key           string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Balance checkout with key",
			body: `{"payment_method":"balance","promo_code":"SAVE10"}`,
			key:  "k-1",
			prepareMock: func() {
				m.checkout.EXPECT().Checkout(gomock.Any(), checkoutservice.Request{
					UserID:         1,
					PromoCode:      "SAVE10",
					Tender:         tenderservice.Selection{Method: domain.PaymentBalance},
					IdempotencyKey: "k-1",
				}).Return(int64(42), nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Saved card without funds",
			body: `{"payment_method":"saved_card","card_id":4}`,
			prepareMock: func() {
				m.checkout.EXPECT().Checkout(gomock.Any(), checkoutservice.Request{
					UserID: 1,
					Tender: tenderservice.Selection{Method: domain.PaymentSavedCard, CardID: &card},
				}).Return(int64(0), domain.ErrInsufficientFunds)
			},
			expectedCode:  http.StatusPaymentRequired,
			expectedError: "INSUFFICIENT_FUNDS",
		},
		{
			name: "Empty cart",
			body: `{"payment_method":"cash"}`,
			prepareMock: func() {
				m.checkout.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(int64(0), domain.ErrCartEmpty)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "CART_EMPTY",
		},
		{
			name:          "Unknown payment method",
			body:          `{"payment_method":"bitcoin"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "INVALID_INPUT",
		},
		{
			name: "Unexpected failure",
			body: `{"payment_method":"balance"}`,
			prepareMock: func() {
				m.checkout.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "INTERNAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authed(httptest.NewRequest("POST", "/api/user/orders", bytes.NewBufferString(tt.body)), "")
			if tt.key != "" {
				req.Header.Set(IdempotencyHeader, tt.key)
			}
			rr := httptest.NewRecorder()
			handler.Checkout(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Code)
			} else {
				assert.JSONEq(t, `{"order_id":42}`, rr.Body.String())
			}
		})
	}
}

func TestGetOrders(t *testing.T) {
	handler, m := NewMock(t)

	t.Run("Orders found", func(t *testing.T) {
		m.orders.EXPECT().GetOrders(gomock.Any(), int64(1)).Return([]domain.Order{paidOrder()}, nil)

		rr := httptest.NewRecorder()
		handler.GetOrders(rr, authed(httptest.NewRequest("GET", "/api/user/orders", nil), ""))

		require.Equal(t, http.StatusOK, rr.Code)
		var got []dto.OrderResponseDTO
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		require.Len(t, got, 1)
		assert.Equal(t, "2172.00", got[0].Total.String())
	})

	t.Run("No orders", func(t *testing.T) {
		m.orders.EXPECT().GetOrders(gomock.Any(), int64(1)).Return(nil, nil)

		rr := httptest.NewRecorder()
		handler.GetOrders(rr, authed(httptest.NewRequest("GET", "/api/user/orders", nil), ""))

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}

func TestGetOrder(t *testing.T) {
	handler, m := NewMock(t)

	order := paidOrder()
	m.orders.EXPECT().GetOrder(gomock.Any(), buyer, int64(42)).Return(&order, nil)
	rr := httptest.NewRecorder()
	handler.GetOrder(rr, authed(httptest.NewRequest("GET", "/api/user/orders/42", nil), "42"))
	assert.Equal(t, http.StatusOK, rr.Code)

	m.orders.EXPECT().GetOrder(gomock.Any(), buyer, int64(43)).Return(nil, domain.ErrForbidden)
	rr = httptest.NewRecorder()
	handler.GetOrder(rr, authed(httptest.NewRequest("GET", "/api/user/orders/43", nil), "43"))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestCancel(t *testing.T) {
	handler, m := NewMock(t)

	cancelled := paidOrder()
	cancelled.Status = domain.OrderStatusCancelled
	cancelled.CanBeCancelled = false
	m.cancel.EXPECT().CancelOrder(gomock.Any(), buyer, int64(42)).Return(&cancelled, nil)

	rr := httptest.NewRecorder()
	handler.Cancel(rr, authed(httptest.NewRequest("POST", "/api/user/orders/42/cancel", nil), "42"))

	require.Equal(t, http.StatusOK, rr.Code)
	var got dto.OrderResponseDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, "cancelled", got.Status)

	m.cancel.EXPECT().CancelOrder(gomock.Any(), buyer, int64(42)).Return(nil, domain.ErrOrderNotCancellable)
	rr = httptest.NewRecorder()
	handler.Cancel(rr, authed(httptest.NewRequest("POST", "/api/user/orders/42/cancel", nil), "42"))
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestGetReceipt(t *testing.T) {
	handler, m := NewMock(t)

	m.receipts.EXPECT().Get(gomock.Any(), buyer, int64(42)).Return(&domain.Receipt{
		ID:             7,
		OrderID:        42,
		SequenceNumber: 1,
		Status:         domain.ReceiptExecuted,
		PaymentMethod:  domain.PaymentBalance,
		VATRate:        decimal.NewFromInt(20),
		Total:          money.MustParse("2172.00"),
		Items: []domain.ReceiptItem{
			{CourseID: 11, Title: "SQL", Quantity: 2, UnitPrice: money.MustParse("450.50")},
		},
	}, nil)

	rr := httptest.NewRecorder()
	handler.GetReceipt(rr, authed(httptest.NewRequest("GET", "/api/user/orders/42/receipt", nil), "42"))

	require.Equal(t, http.StatusOK, rr.Code)
	var got dto.ReceiptResponseDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, int64(1), got.Number)
	assert.Equal(t, "executed", got.Status)
	assert.Equal(t, "20", got.VATRate)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "901.00", got.Items[0].LineTotal.String(), "line total is quantity times unit price")
}

func TestListReceipts(t *testing.T) {
	handler, m := NewMock(t)

	m.receipts.EXPECT().ListForUser(gomock.Any(), int64(1)).Return([]domain.Receipt{
		{ID: 8, OrderID: 43, SequenceNumber: 2, Status: domain.ReceiptAnnulled, VATRate: decimal.NewFromInt(20)},
		{ID: 7, OrderID: 42, SequenceNumber: 1, Status: domain.ReceiptExecuted, VATRate: decimal.NewFromInt(20)},
	}, nil)
	rr := httptest.NewRecorder()
	handler.ListReceipts(rr, authed(httptest.NewRequest("GET", "/api/user/receipts", nil), ""))

	require.Equal(t, http.StatusOK, rr.Code)
	var got []dto.ReceiptResponseDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, "annulled", got[0].Status)
	assert.Equal(t, int64(42), got[1].OrderID)

	m.receipts.EXPECT().ListForUser(gomock.Any(), int64(1)).Return(nil, errors.New("boom"))
	rr = httptest.NewRecorder()
	handler.ListReceipts(rr, authed(httptest.NewRequest("GET", "/api/user/receipts", nil), ""))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
