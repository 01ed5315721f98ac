package domain

import "time"

type LessonCompletion struct {
	ID               int64      `db:"id"`
	CoursePurchaseID int64      `db:"course_purchase_id"`
	LessonID         int64      `db:"lesson_id"`
	UserID           int64      `db:"user_id"`
	Liked            *bool      `db:"liked"`
	ReviewText       string     `db:"review_text"`
	AdminComment     string     `db:"admin_comment"`
	AdminCommentedAt *time.Time `db:"admin_commented_at"`
	CompletedAt      time.Time  `db:"completed_at"`
}
