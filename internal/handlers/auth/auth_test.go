package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/dto"
	pkgauth "github.com/GlebRadaev/coursemart/pkg/auth"
	"github.com/GlebRadaev/coursemart/pkg/utils"
)

func NewMock(t *testing.T) (*AuthHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

var ann = &domain.User{ID: 1, Email: "ann@example.com", PasswordHash: "hashedpassword"}

func TestRegisterHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful registration",
			body: `{"email":"ann@example.com","password":"password123","name":"Ann"}`,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), "ann@example.com", "password123", "Ann").Return(ann, nil)
				service.EXPECT().GenerateToken(ann).Return("some-jwt-token", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "User already exists",
			body: `{"email":"ann@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), "ann@example.com", "password123", "").Return(nil, domain.ErrEmailTaken)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "email is already registered",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request",
		},
		{
			name:          "Short password",
			body:          `{"email":"ann@example.com","password":"short"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request",
		},
		{
			name: "Error generating token",
			body: `{"email":"ann@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Register(context.Background(), "ann@example.com", "password123", "").Return(ann, nil)
				service.EXPECT().GenerateToken(ann).Return("", errors.New("token generation error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Error generating token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/user/register", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Register(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			} else {
				assert.Equal(t, "Bearer some-jwt-token", rr.Header().Get("Authorization"))
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful login",
			body: `{"email":"ann@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Authenticate(context.Background(), "ann@example.com", "password123").Return(ann, nil)
				service.EXPECT().GenerateToken(ann).Return("some-jwt-token", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Invalid credentials",
			body: `{"email":"ann@example.com","password":"wrongpassword"}`,
			prepareMock: func() {
				service.EXPECT().Authenticate(context.Background(), "ann@example.com", "wrongpassword").Return(nil, domain.ErrInvalidCredentials)
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: "invalid credentials",
		},
		{
			name: "Blocked user",
			body: `{"email":"ann@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().Authenticate(context.Background(), "ann@example.com", "password123").Return(nil, domain.ErrUserBlocked)
			},
			expectedCode:  http.StatusForbidden,
			expectedError: "user is blocked",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/user/login", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Login(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			}
		})
	}
}

func TestAddressHandlers(t *testing.T) {
	handler, service := NewMock(t)
	ctx := pkgauth.WithActor(context.Background(), domain.Actor{UserID: 1})

	service.EXPECT().AddAddress(ctx, int64(1), "Main st 1", "Berlin", "10115").Return(&domain.Address{ID: 3, UserID: 1, Line: "Main st 1", City: "Berlin", PostalCode: "10115"}, nil)
	req := httptest.NewRequest("POST", "/api/user/addresses", bytes.NewReader([]byte(`{"line":"Main st 1","city":"Berlin","postal_code":"10115"}`))).WithContext(ctx)
	rr := httptest.NewRecorder()
	handler.AddAddress(rr, req)
	assert.Equal(t, http.StatusCreated, rr.Code)

	service.EXPECT().ListAddresses(ctx, int64(1)).Return([]domain.Address{{ID: 3, Line: "Main st 1", City: "Berlin"}}, nil)
	req = httptest.NewRequest("GET", "/api/user/addresses", nil).WithContext(ctx)
	rr = httptest.NewRecorder()
	handler.ListAddresses(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var got []dto.AddressResponseDTO
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Len(t, got, 1)
	assert.Equal(t, "Berlin", got[0].City)
}
