package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/coursemart/internal/money"
)

type Category struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Slug string `db:"slug"`
}

type Course struct {
	ID              int64           `db:"id"`
	CategoryID      *int64          `db:"category_id"`
	Title           string          `db:"title"`
	Slug            string          `db:"slug"`
	Description     string          `db:"description"`
	UnitPrice       money.Money     `db:"unit_price"`
	DiscountPercent decimal.Decimal `db:"discount_percent"`
	Available       bool            `db:"available"`
	CreatedAt       time.Time       `db:"created_at"`
	Images          []CourseImage   `db:"-"`
}

// EffectivePrice is the unit price after the course's own discount.
func (c Course) EffectivePrice() money.Money {
	return EffectivePrice(c.UnitPrice, c.DiscountPercent)
}

func EffectivePrice(unit money.Money, discountPercent decimal.Decimal) money.Money {
	if discountPercent.IsZero() {
		return unit
	}
	return unit.Discounted(discountPercent)
}

type CourseImage struct {
	ID        int64  `db:"id"`
	CourseID  int64  `db:"course_id"`
	URL       string `db:"url"`
	SortOrder int    `db:"sort_order"`
}

type Lesson struct {
	ID        int64        `db:"id"`
	CourseID  int64        `db:"course_id"`
	Title     string       `db:"title"`
	SortOrder int          `db:"sort_order"`
	Pages     []LessonPage `db:"-"`
}

type LessonPage struct {
	ID        int64  `db:"id"`
	LessonID  int64  `db:"lesson_id"`
	Content   string `db:"content"`
	SortOrder int    `db:"sort_order"`
}

type CourseSort string

const (
	SortByTitle     CourseSort = "title"
	SortByPriceAsc  CourseSort = "price_asc"
	SortByPriceDesc CourseSort = "price_desc"
	SortByNewest    CourseSort = "newest"
)

type CourseFilter struct {
	CategoryID    *int64
	Query         string
	Sort          CourseSort
	AvailableOnly bool
}
