package activityrepo

import (
	"context"
	"encoding/json"

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

func (r *Repository) Create(ctx context.Context, e *domain.ActivityEntry) error {
	details, err := json.Marshal(e.Details)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO activity_log (actor_id, action, target_type, target_id, details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	if err := r.db.QueryRow(ctx, query, e.ActorID, e.Action, e.TargetType, e.TargetID, details).Scan(&e.ID, &e.CreatedAt); err != nil {
		zap.L().Error("can't save activity entry", zap.String("action", e.Action), zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) List(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	query := `
		SELECT id, actor_id, action, target_type, target_id, details, created_at
		FROM activity_log
		ORDER BY id DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		zap.L().Error("failed to fetch activity log", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ActivityEntry
	for rows.Next() {
		var (
			e   domain.ActivityEntry
			raw []byte
		)
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.TargetType, &e.TargetID, &raw, &e.CreatedAt); err != nil {
			zap.L().Error("failed to scan activity row", zap.Error(err))
			return nil, err
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &e.Details); err != nil {
				return nil, err
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
