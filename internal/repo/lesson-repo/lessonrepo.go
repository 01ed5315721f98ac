package lessonrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/pg"
)

const (
	listLessonsSQL = `SELECT id, course_id, title, sort_order FROM lessons WHERE course_id = $1 ORDER BY sort_order, id`
	getLessonSQL   = `SELECT id, course_id, title, sort_order FROM lessons WHERE id = $1`
	listPagesSQL   = `
		SELECT id, lesson_id, content, sort_order
		FROM lesson_pages
		WHERE lesson_id = ANY($1)
		ORDER BY lesson_id, sort_order, id
	`

	completionColumns = `id, course_purchase_id, lesson_id, user_id, liked, review_text, admin_comment, admin_commented_at, completed_at`

	upsertCompletionSQL = `
		INSERT INTO lesson_completions (course_purchase_id, lesson_id, user_id, liked, review_text)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT lesson_completions_purchase_lesson_key
		DO UPDATE SET liked = COALESCE(EXCLUDED.liked, lesson_completions.liked),
			review_text = CASE WHEN EXCLUDED.review_text = '' THEN lesson_completions.review_text ELSE EXCLUDED.review_text END
		RETURNING ` + completionColumns
	lockCompletionSQL  = `SELECT ` + completionColumns + ` FROM lesson_completions WHERE id = $1 FOR UPDATE`
	listCompletionsSQL = `SELECT ` + completionColumns + ` FROM lesson_completions WHERE course_purchase_id = $1 ORDER BY id`
	setCommentSQL      = `UPDATE lesson_completions SET admin_comment = $1, admin_commented_at = $2 WHERE id = $3`
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanLesson(row pgx.CollectableRow) (domain.Lesson, error) {
	var l domain.Lesson
	err := row.Scan(&l.ID, &l.CourseID, &l.Title, &l.SortOrder)
	return l, err
}

func scanCompletion(row pgx.CollectableRow) (domain.LessonCompletion, error) {
	var c domain.LessonCompletion
	err := row.Scan(&c.ID, &c.CoursePurchaseID, &c.LessonID, &c.UserID, &c.Liked, &c.ReviewText, &c.AdminComment, &c.AdminCommentedAt, &c.CompletedAt)
	return c, err
}

// ListLessons returns the course's lessons in display order with their pages.
func (r *Repository) ListLessons(ctx context.Context, courseID int64) ([]domain.Lesson, error) {
	rows, err := r.db.Query(ctx, listLessonsSQL, courseID)
	if err != nil {
		zap.L().Error("can't list lessons", zap.Int64("courseID", courseID), zap.Error(err))
		return nil, err
	}
	lessons, err := pgx.CollectRows(rows, scanLesson)
	if err != nil {
		return nil, fmt.Errorf("listing lessons: %w", err)
	}
	if len(lessons) == 0 {
		return lessons, nil
	}

	ids := make([]int64, len(lessons))
	index := make(map[int64]int, len(lessons))
	for i, l := range lessons {
		ids[i] = l.ID
		index[l.ID] = i
	}
	rows, err = r.db.Query(ctx, listPagesSQL, ids)
	if err != nil {
		zap.L().Error("can't list lesson pages", zap.Error(err))
		return nil, err
	}
	pages, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LessonPage, error) {
		var p domain.LessonPage
		err := row.Scan(&p.ID, &p.LessonID, &p.Content, &p.SortOrder)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("listing lesson pages: %w", err)
	}
	for _, p := range pages {
		i := index[p.LessonID]
		lessons[i].Pages = append(lessons[i].Pages, p)
	}
	return lessons, nil
}

func (r *Repository) GetLesson(ctx context.Context, id int64) (*domain.Lesson, error) {
	rows, err := r.db.Query(ctx, getLessonSQL, id)
	if err != nil {
		zap.L().Error("can't get lesson", zap.Int64("lessonID", id), zap.Error(err))
		return nil, err
	}
	l, err := pgx.CollectExactlyOneRow(rows, scanLesson)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting lesson %d: %w", id, err)
	}
	return &l, nil
}

// UpsertCompletion records a completion; repeating it keeps earlier feedback unless new feedback is given.
func (r *Repository) UpsertCompletion(ctx context.Context, c *domain.LessonCompletion) error {
	rows, err := r.db.Query(ctx, upsertCompletionSQL, c.CoursePurchaseID, c.LessonID, c.UserID, c.Liked, c.ReviewText)
	if err != nil {
		zap.L().Error("can't save lesson completion", zap.Error(err))
		return err
	}
	saved, err := pgx.CollectExactlyOneRow(rows, scanCompletion)
	if err != nil {
		return fmt.Errorf("saving lesson completion: %w", err)
	}
	*c = saved
	return nil
}

func (r *Repository) LockCompletion(ctx context.Context, id int64) (*domain.LessonCompletion, error) {
	rows, err := r.db.Query(ctx, lockCompletionSQL, id)
	if err != nil {
		zap.L().Error("can't lock lesson completion", zap.Error(err))
		return nil, err
	}
	c, err := pgx.CollectExactlyOneRow(rows, scanCompletion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("locking lesson completion %d: %w", id, err)
	}
	return &c, nil
}

func (r *Repository) ListCompletions(ctx context.Context, purchaseID int64) ([]domain.LessonCompletion, error) {
	rows, err := r.db.Query(ctx, listCompletionsSQL, purchaseID)
	if err != nil {
		zap.L().Error("can't list lesson completions", zap.Error(err))
		return nil, err
	}
	return pgx.CollectRows(rows, scanCompletion)
}

func (r *Repository) SetAdminComment(ctx context.Context, id int64, comment string, at time.Time) error {
	if _, err := r.db.Exec(ctx, setCommentSQL, comment, at, id); err != nil {
		zap.L().Error("can't save admin comment", zap.Int64("completionID", id), zap.Error(err))
		return err
	}
	return nil
}
