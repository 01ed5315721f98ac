package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/coursemart/internal/domain"
)

func TestAuthMiddleware(t *testing.T) {
	jwtService := NewJWTService("test-secret")
	mw := NewMiddleware(jwtService)

	adminToken, _ := jwtService.GenerateJWT(7, []string{"admin"}, time.Now().Add(time.Hour))
	userToken, _ := jwtService.GenerateJWT(8, nil, time.Now().Add(time.Hour))

	var seen domain.Actor
	protected := mw.AuthMiddleware(RequireCapability(domain.CapabilityAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ActorFromContext(r.Context())
		assert.Equal(t, seen.UserID, r.Context().Value(UserIDKey))
		w.WriteHeader(http.StatusOK)
	})))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "no header", header: "", status: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "missing capability", header: "Bearer " + userToken, status: http.StatusForbidden},
		{name: "admin", header: "Bearer " + adminToken, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	assert.Equal(t, int64(7), seen.UserID)
	assert.True(t, seen.Has(domain.CapabilitySelf))
	assert.True(t, seen.Has(domain.CapabilityAdmin))
}
