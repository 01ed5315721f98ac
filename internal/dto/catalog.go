package dto

import (
	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
)

type CourseResponseDTO struct {
	ID              int64       `json:"id" example:"11"`
	CategoryID      *int64      `json:"category_id,omitempty" example:"2"`
	Title           string      `json:"title" example:"Go in practice"`
	Slug            string      `json:"slug" example:"go-in-practice"`
	Description     string      `json:"description,omitempty"`
	UnitPrice       money.Money `json:"unit_price" swaggertype:"string" example:"1000.00"`
	DiscountPercent string      `json:"discount_percent" example:"10"`
	Price           money.Money `json:"price" swaggertype:"string" example:"900.00"`
	Available       bool        `json:"available" example:"true"`
	Images          []string    `json:"images,omitempty"`
}

func FromCourse(c domain.Course) CourseResponseDTO {
	out := CourseResponseDTO{
		ID:              c.ID,
		CategoryID:      c.CategoryID,
		Title:           c.Title,
		Slug:            c.Slug,
		Description:     c.Description,
		UnitPrice:       c.UnitPrice,
		DiscountPercent: c.DiscountPercent.String(),
		Price:           c.EffectivePrice(),
		Available:       c.Available,
	}
	for _, img := range c.Images {
		out.Images = append(out.Images, img.URL)
	}
	return out
}

type CategoryResponseDTO struct {
	ID   int64  `json:"id" example:"2"`
	Name string `json:"name" example:"Programming"`
	Slug string `json:"slug" example:"programming"`
}

func FromCategory(c domain.Category) CategoryResponseDTO {
	return CategoryResponseDTO{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

type CourseRequestDTO struct {
	CategoryID      *int64      `json:"category_id,omitempty" example:"2"`
	Title           string      `json:"title" validate:"required,max=200" example:"Go in practice"`
	Slug            string      `json:"slug" validate:"required,max=100" example:"go-in-practice"`
	Description     string      `json:"description"`
	UnitPrice       money.Money `json:"unit_price" swaggertype:"string" example:"1000.00"`
	DiscountPercent string      `json:"discount_percent" validate:"omitempty,numeric" example:"10"`
	Available       bool        `json:"available" example:"true"`
}

type CategoryRequestDTO struct {
	Name string `json:"name" validate:"required,max=100" example:"Programming"`
	Slug string `json:"slug" validate:"required,max=100" example:"programming"`
}
