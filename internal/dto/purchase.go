package dto

import (
	"time"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
)

type PurchaseResponseDTO struct {
	ID            int64       `json:"id" example:"7"`
	CourseID      int64       `json:"course_id" example:"11"`
	OrderID       *int64      `json:"order_id,omitempty" example:"42"`
	Amount        money.Money `json:"amount" swaggertype:"string" example:"2172.00"`
	PaymentMethod string      `json:"payment_method" example:"balance"`
	Status        string      `json:"status" example:"completed"`
	PurchasedAt   time.Time   `json:"purchased_at"`
	CompletedAt   *time.Time  `json:"completed_at,omitempty"`
}

func FromPurchase(p domain.CoursePurchase) PurchaseResponseDTO {
	return PurchaseResponseDTO{
		ID:            p.ID,
		CourseID:      p.CourseID,
		OrderID:       p.OrderID,
		Amount:        p.Amount,
		PaymentMethod: string(p.PaymentMethod),
		Status:        string(p.Status),
		PurchasedAt:   p.PurchasedAt,
		CompletedAt:   p.CompletedAt,
	}
}

type RefundRequestDTO struct {
	Reason string `json:"reason" validate:"required,max=1000" example:"not what I expected"`
}

type RefundResponseDTO struct {
	ID               int64       `json:"id" example:"3"`
	CoursePurchaseID int64       `json:"course_purchase_id" example:"7"`
	UserID           int64       `json:"user_id" example:"1"`
	Reason           string      `json:"reason"`
	Amount           money.Money `json:"amount" swaggertype:"string" example:"2172.00"`
	Status           string      `json:"status" example:"pending"`
	CreatedAt        time.Time   `json:"created_at"`
	ResolvedAt       *time.Time  `json:"resolved_at,omitempty"`
}

func FromRefund(rr domain.CourseRefundRequest) RefundResponseDTO {
	return RefundResponseDTO{
		ID:               rr.ID,
		CoursePurchaseID: rr.CoursePurchaseID,
		UserID:           rr.UserID,
		Reason:           rr.Reason,
		Amount:           rr.Amount,
		Status:           string(rr.Status),
		CreatedAt:        rr.CreatedAt,
		ResolvedAt:       rr.ResolvedAt,
	}
}

type LessonDTO struct {
	ID         int64          `json:"id" example:"5"`
	Title      string         `json:"title" example:"Channels"`
	Pages      []string       `json:"pages,omitempty"`
	Completion *CompletionDTO `json:"completion,omitempty"`
}

type CompletionDTO struct {
	ID               int64      `json:"id" example:"9"`
	LessonID         int64      `json:"lesson_id" example:"5"`
	Liked            *bool      `json:"liked,omitempty"`
	ReviewText       string     `json:"review_text,omitempty"`
	AdminComment     string     `json:"admin_comment,omitempty"`
	AdminCommentedAt *time.Time `json:"admin_commented_at,omitempty"`
	CompletedAt      time.Time  `json:"completed_at"`
}

func FromCompletion(c domain.LessonCompletion) CompletionDTO {
	return CompletionDTO{
		ID:               c.ID,
		LessonID:         c.LessonID,
		Liked:            c.Liked,
		ReviewText:       c.ReviewText,
		AdminComment:     c.AdminComment,
		AdminCommentedAt: c.AdminCommentedAt,
		CompletedAt:      c.CompletedAt,
	}
}

type ProgressResponseDTO struct {
	PurchaseID int64       `json:"purchase_id" example:"7"`
	CourseID   int64       `json:"course_id" example:"11"`
	Lessons    []LessonDTO `json:"lessons"`
}

func FromProgress(p domain.CoursePurchase, lessons []domain.Lesson, completions []domain.LessonCompletion) ProgressResponseDTO {
	byLesson := make(map[int64]domain.LessonCompletion, len(completions))
	for _, c := range completions {
		byLesson[c.LessonID] = c
	}
	out := ProgressResponseDTO{PurchaseID: p.ID, CourseID: p.CourseID, Lessons: make([]LessonDTO, 0, len(lessons))}
	for _, l := range lessons {
		ld := LessonDTO{ID: l.ID, Title: l.Title}
		for _, page := range l.Pages {
			ld.Pages = append(ld.Pages, page.Content)
		}
		if c, ok := byLesson[l.ID]; ok {
			cd := FromCompletion(c)
			ld.Completion = &cd
		}
		out.Lessons = append(out.Lessons, ld)
	}
	return out
}

type CompleteLessonRequestDTO struct {
	Liked  *bool  `json:"liked,omitempty" example:"true"`
	Review string `json:"review,omitempty" validate:"max=2000" example:"clear and short"`
}

type NotificationResponseDTO struct {
	ID           int64     `json:"id" example:"1"`
	CompletionID *int64    `json:"completion_id,omitempty" example:"9"`
	Message      string    `json:"message"`
	IsRead       bool      `json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromNotification(n domain.UserNotification) NotificationResponseDTO {
	return NotificationResponseDTO{
		ID:           n.ID,
		CompletionID: n.CompletionID,
		Message:      n.Message,
		IsRead:       n.IsRead,
		CreatedAt:    n.CreatedAt,
	}
}
