package notificationrepo

import (
	"context"

	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, n *domain.UserNotification) error {
	query := `
		INSERT INTO user_notifications (user_id, completion_id, message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if err := r.db.QueryRow(ctx, query, n.UserID, n.CompletionID, n.Message).Scan(&n.ID, &n.CreatedAt); err != nil {
		zap.L().Error("can't save notification", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]domain.UserNotification, error) {
	query := `
		SELECT id, user_id, completion_id, message, is_read, created_at
		FROM user_notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch notifications", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var list []domain.UserNotification
	for rows.Next() {
		var n domain.UserNotification
		if err := rows.Scan(&n.ID, &n.UserID, &n.CompletionID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			zap.L().Error("failed to scan notification row", zap.Error(err))
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func (r *Repository) MarkRead(ctx context.Context, userID, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE user_notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		zap.L().Error("can't mark notification read", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
