package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
)

type Response struct {
	Code    string `json:"code,omitempty" example:"CART_EMPTY"`
	Message string `json:"message" example:"cart is empty"`
}

func RespondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("failed to encode response", zap.Error(err))
	}
}

func RespondWithError(w http.ResponseWriter, status int, message string) {
	RespondWithJSON(w, status, Response{Message: message})
}

// RespondWithDomainError writes the stable code and message of err's kind.
// Errors without a kind become 500 and their text is not exposed.
func RespondWithDomainError(w http.ResponseWriter, err error) {
	kind := domain.Lookup(err)
	if kind == nil {
		zap.L().Error("unexpected error", zap.Error(err))
		RespondWithJSON(w, http.StatusInternalServerError, Response{Code: "INTERNAL", Message: "Internal server error"})
		return
	}
	RespondWithJSON(w, kind.HTTPStatus, Response{Code: kind.Code, Message: kind.Message})
}
