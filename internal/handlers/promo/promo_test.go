package promo

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/dto"
	"github.com/GlebRadaev/coursemart/internal/money"
	"github.com/GlebRadaev/coursemart/internal/service/promoservice"
	"github.com/GlebRadaev/coursemart/pkg/auth"
	"github.com/GlebRadaev/coursemart/pkg/utils"
)

func TestValidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	ctx := auth.WithActor(context.Background(), domain.Actor{UserID: 1})
	course := int64(11)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
		expectedBody string
	}{
		{
			name: "Estimate for one course",
			body: `{"code":"save10","course_id":11}`,
			prepareMock: func() {
				service.EXPECT().Estimate(ctx, int64(1), "save10", &course).Return(&promoservice.Estimate{
					Code:            "SAVE10",
					DiscountPercent: decimal.NewFromInt(10),
					Subtotal:        money.MustParse("900.00"),
					DiscountAmount:  money.MustParse("90.00"),
					Total:           money.MustParse("2172.00"),
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"code":"SAVE10","discount_percent":"10","subtotal":"900.00","discount_amount":"90.00","total":"2172.00"}`,
		},
		{
			name: "Already used",
			body: `{"code":"SAVE10"}`,
			prepareMock: func() {
				service.EXPECT().Estimate(ctx, int64(1), "SAVE10", (*int64)(nil)).Return(nil, domain.ErrPromoAlreadyUsed)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "Missing code",
			body:         `{}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/user/promo/validate", bytes.NewBufferString(tt.body)).WithContext(ctx)
			rr := httptest.NewRecorder()
			handler.Validate(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			} else {
				var resp utils.Response
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.NotEmpty(t, resp.Code)
			}
		})
	}
}

func TestAvailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	ctx := auth.WithActor(context.Background(), domain.Actor{UserID: 1})

	service.EXPECT().Available(gomock.Any(), int64(1)).Return([]domain.Promotion{
		{ID: 7, Code: "WELCOME", DiscountPercent: decimal.NewFromInt(5), Active: true},
	}, nil)
	rr := httptest.NewRecorder()
	handler.Available(rr, httptest.NewRequest("GET", "/api/user/promotions/available", nil).WithContext(ctx))

	require.Equal(t, http.StatusOK, rr.Code)
	var got []dto.PromotionResponseDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "WELCOME", got[0].Code)
	assert.Equal(t, "5", got[0].DiscountPercent)
	assert.Nil(t, got[0].EndDate)
}
