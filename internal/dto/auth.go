package dto

import (
	"time"

	"github.com/GlebRadaev/coursemart/internal/domain"
)

type RegisterRequestDTO struct {
	Email    string `json:"email" validate:"required,email,max=254" example:"ann@example.com"`
	Password string `json:"password" validate:"required,min=8" example:"s3cret-pass"`
	Name     string `json:"name" validate:"max=100" example:"Ann Lee"`
}

type RegisterResponseDTO struct {
	Message string `json:"message"`
}

type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required,email" example:"ann@example.com"`
	Password string `json:"password" validate:"required" example:"s3cret-pass"`
}

type LoginResponseDTO struct {
	Message string `json:"message"`
}

type AddressRequestDTO struct {
	Line       string `json:"line" validate:"required,max=200" example:"Main st 1"`
	City       string `json:"city" validate:"required,max=100" example:"Berlin"`
	PostalCode string `json:"postal_code" validate:"max=20" example:"10115"`
}

type AddressResponseDTO struct {
	ID         int64     `json:"id" example:"3"`
	Line       string    `json:"line"`
	City       string    `json:"city"`
	PostalCode string    `json:"postal_code,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromAddress(a domain.Address) AddressResponseDTO {
	return AddressResponseDTO{
		ID:         a.ID,
		Line:       a.Line,
		City:       a.City,
		PostalCode: a.PostalCode,
		CreatedAt:  a.CreatedAt,
	}
}

type BlockUserRequestDTO struct {
	Blocked bool `json:"blocked" example:"true"`
}
