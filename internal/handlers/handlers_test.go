package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/pricing"
	"github.com/GlebRadaev/coursemart/internal/repo"
	"github.com/GlebRadaev/coursemart/internal/repo/memory"
	"github.com/GlebRadaev/coursemart/internal/service"
	"github.com/GlebRadaev/coursemart/pkg/auth"
	"github.com/GlebRadaev/coursemart/pkg/cipher"
)

func TestNew(t *testing.T) {
	codec, err := cipher.New("test-card-key")
	require.NoError(t, err)
	jwtService := auth.NewJWTService("test-secret")

	services := service.New(repo.NewMemory(memory.New()), service.Options{
		Rates:             pricing.DefaultRates(),
		TokenTTL:          time.Hour,
		IdempotencyWindow: time.Hour,
		Hash:              auth.NewHashService(bcrypt.MinCost),
		JWT:               jwtService,
		Codec:             codec,
	})

	h := New(services, jwtService)
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.NotNil(t, h.Middleware)
	assert.NotNil(t, h.AdminHandler)
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	jwtService := auth.NewJWTService("test-secret")
	userToken, err := jwtService.GenerateJWT(1, []string{string(domain.CapabilitySelf)}, time.Now().Add(time.Hour))
	require.NoError(t, err)
	managerToken, err := jwtService.GenerateJWT(2, []string{string(domain.CapabilityManager)}, time.Now().Add(time.Hour))
	require.NoError(t, err)
	adminToken, err := jwtService.GenerateJWT(3, []string{string(domain.CapabilityAdmin)}, time.Now().Add(time.Hour))
	require.NoError(t, err)

	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockCatalogHandler := NewMockCatalogHandler(ctrl)
	mockCartHandler := NewMockCartHandler(ctrl)
	mockPromoHandler := NewMockPromoHandler(ctrl)
	mockOrderHandler := NewMockOrderHandler(ctrl)
	mockPurchaseHandler := NewMockPurchaseHandler(ctrl)
	mockBalanceHandler := NewMockBalanceHandler(ctrl)
	mockAdminHandler := NewMockAdminHandler(ctrl)

	mockAuthHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	mockCatalogHandler.EXPECT().ListCourses(gomock.Any(), gomock.Any()).AnyTimes()
	mockCatalogHandler.EXPECT().GetCourse(gomock.Any(), gomock.Any()).AnyTimes()
	mockCartHandler.EXPECT().Get(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().Checkout(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().Cancel(gomock.Any(), gomock.Any()).AnyTimes()
	mockBalanceHandler.EXPECT().GetBalance(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().GetLedger(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().CreateCourse(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().ListReceipts(gomock.Any(), gomock.Any()).AnyTimes()
	mockPurchaseHandler.EXPECT().ListRefunds(gomock.Any(), gomock.Any()).AnyTimes()
	mockPromoHandler.EXPECT().Available(gomock.Any(), gomock.Any()).AnyTimes()
	mockBalanceHandler.EXPECT().CardTransactions(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		AuthHandler:     mockAuthHandler,
		CatalogHandler:  mockCatalogHandler,
		CartHandler:     mockCartHandler,
		PromoHandler:    mockPromoHandler,
		OrderHandler:    mockOrderHandler,
		PurchaseHandler: mockPurchaseHandler,
		BalanceHandler:  mockBalanceHandler,
		AdminHandler:    mockAdminHandler,
		Middleware:      auth.NewMiddleware(jwtService),
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		token  string
		status int
	}{
		{"POST", "/api/user/register", "", http.StatusOK},
		{"POST", "/api/user/login", "", http.StatusOK},
		{"GET", "/api/catalog/courses", "", http.StatusOK},
		{"GET", "/api/catalog/courses/1", "", http.StatusOK},
		{"GET", "/metrics", "", http.StatusOK},
		{"GET", "/api/user/cart", "", http.StatusUnauthorized},
		{"POST", "/api/user/orders", "", http.StatusUnauthorized},
		{"GET", "/api/user/balance", "", http.StatusUnauthorized},
		{"POST", "/api/user/promo/validate", "", http.StatusUnauthorized},
		{"GET", "/api/user/purchases", "", http.StatusUnauthorized},
		{"GET", "/api/user/cards", "", http.StatusUnauthorized},
		{"GET", "/api/user/cart", "broken", http.StatusUnauthorized},
		{"GET", "/api/user/cart", userToken, http.StatusOK},
		{"POST", "/api/user/orders", userToken, http.StatusOK},
		{"GET", "/api/user/balance", userToken, http.StatusOK},
		{"GET", "/api/admin/ledger", "", http.StatusUnauthorized},
		{"GET", "/api/admin/ledger", userToken, http.StatusForbidden},
		{"GET", "/api/admin/ledger", managerToken, http.StatusForbidden},
		{"GET", "/api/admin/ledger", adminToken, http.StatusOK},
		{"POST", "/api/admin/orders/7/confirm-payment", userToken, http.StatusForbidden},
		{"POST", "/api/admin/orders/7/confirm-payment", managerToken, http.StatusOK},
		{"POST", "/api/admin/orders/7/cancel", managerToken, http.StatusForbidden},
		{"POST", "/api/admin/orders/7/cancel", adminToken, http.StatusOK},
		{"GET", "/api/user/receipts", userToken, http.StatusOK},
		{"GET", "/api/user/refunds", userToken, http.StatusOK},
		{"GET", "/api/user/promotions/available", userToken, http.StatusOK},
		{"GET", "/api/user/cards/4/transactions", userToken, http.StatusOK},
		{"GET", "/api/user/receipts", "", http.StatusUnauthorized},
		{"POST", "/api/admin/courses", userToken, http.StatusForbidden},
		{"POST", "/api/admin/courses", managerToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
