package catalogrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/pg"
)

const (
	courseColumns = `id, category_id, title, slug, description, unit_price, discount_percent, available, created_at`

	getCourseSQL      = `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	listCategoriesSQL = `SELECT id, name, slug FROM course_categories ORDER BY name, id`
	getCategorySQL    = `SELECT id, name, slug FROM course_categories WHERE id = $1`
	listImagesSQL     = `SELECT id, course_id, url, sort_order FROM course_images WHERE course_id = ANY($1) ORDER BY course_id, sort_order, id`
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanCourse(row pgx.CollectableRow) (domain.Course, error) {
	var c domain.Course
	err := row.Scan(&c.ID, &c.CategoryID, &c.Title, &c.Slug, &c.Description, &c.UnitPrice, &c.DiscountPercent, &c.Available, &c.CreatedAt)
	return c, err
}

// listCoursesQuery builds the filtered listing; user input only ever reaches the args.
func listCoursesQuery(filter domain.CourseFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, "%"+q+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if filter.AvailableOnly {
		where = append(where, "available")
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + courseColumns + ` FROM courses`)
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	switch filter.Sort {
	case domain.SortByPriceAsc:
		sb.WriteString(" ORDER BY unit_price * (100 - discount_percent) ASC, id")
	case domain.SortByPriceDesc:
		sb.WriteString(" ORDER BY unit_price * (100 - discount_percent) DESC, id")
	case domain.SortByNewest:
		sb.WriteString(" ORDER BY created_at DESC, id DESC")
	default:
		sb.WriteString(" ORDER BY title, id")
	}
	return sb.String(), args
}

func (repo *Repository) ListCourses(ctx context.Context, filter domain.CourseFilter) ([]domain.Course, error) {
	query, args := listCoursesQuery(filter)
	rows, err := repo.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't list courses", zap.Error(err))
		return nil, err
	}
	courses, err := pgx.CollectRows(rows, scanCourse)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	if err := repo.attachImages(ctx, courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (repo *Repository) GetCourse(ctx context.Context, id int64) (*domain.Course, error) {
	rows, err := repo.db.Query(ctx, getCourseSQL, id)
	if err != nil {
		zap.L().Error("can't get course", zap.Int64("courseID", id), zap.Error(err))
		return nil, err
	}
	course, err := pgx.CollectExactlyOneRow(rows, scanCourse)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting course %d: %w", id, err)
	}
	courses := []domain.Course{course}
	if err := repo.attachImages(ctx, courses); err != nil {
		return nil, err
	}
	return &courses[0], nil
}

func (repo *Repository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := repo.db.Query(ctx, listCategoriesSQL)
	if err != nil {
		zap.L().Error("can't list categories", zap.Error(err))
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Category, error) {
		var c domain.Category
		err := row.Scan(&c.ID, &c.Name, &c.Slug)
		return c, err
	})
}

func (repo *Repository) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	err := repo.db.QueryRow(ctx, getCategorySQL, id).Scan(&c.ID, &c.Name, &c.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't get category", zap.Int64("categoryID", id), zap.Error(err))
		return nil, err
	}
	return &c, nil
}

func (repo *Repository) CreateCourse(ctx context.Context, c *domain.Course) error {
	query := `
		INSERT INTO courses (category_id, title, slug, description, unit_price, discount_percent, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := repo.db.QueryRow(ctx, query, c.CategoryID, c.Title, c.Slug, c.Description, c.UnitPrice, c.DiscountPercent, c.Available).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		zap.L().Error("can't save course", zap.String("slug", c.Slug), zap.Error(err))
		return err
	}
	return nil
}

// UpdateCourse reports false when no course has c.ID.
func (repo *Repository) UpdateCourse(ctx context.Context, c *domain.Course) (bool, error) {
	query := `
		UPDATE courses
		SET category_id = $1, title = $2, slug = $3, description = $4,
			unit_price = $5, discount_percent = $6, available = $7
		WHERE id = $8
		RETURNING created_at
	`
	err := repo.db.QueryRow(ctx, query, c.CategoryID, c.Title, c.Slug, c.Description, c.UnitPrice, c.DiscountPercent, c.Available, c.ID).
		Scan(&c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		zap.L().Error("can't update course", zap.Int64("courseID", c.ID), zap.Error(err))
		return false, err
	}
	return true, nil
}

func (repo *Repository) CreateCategory(ctx context.Context, c *domain.Category) error {
	query := `INSERT INTO course_categories (name, slug) VALUES ($1, $2) RETURNING id`
	if err := repo.db.QueryRow(ctx, query, c.Name, c.Slug).Scan(&c.ID); err != nil {
		zap.L().Error("can't save category", zap.String("slug", c.Slug), zap.Error(err))
		return err
	}
	return nil
}

func (repo *Repository) attachImages(ctx context.Context, courses []domain.Course) error {
	if len(courses) == 0 {
		return nil
	}
	ids := make([]int64, len(courses))
	index := make(map[int64]int, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
		index[c.ID] = i
	}
	rows, err := repo.db.Query(ctx, listImagesSQL, ids)
	if err != nil {
		zap.L().Error("can't list course images", zap.Error(err))
		return err
	}
	images, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CourseImage, error) {
		var img domain.CourseImage
		err := row.Scan(&img.ID, &img.CourseID, &img.URL, &img.SortOrder)
		return img, err
	})
	if err != nil {
		return fmt.Errorf("listing course images: %w", err)
	}
	for _, img := range images {
		if i, ok := index[img.CourseID]; ok {
			courses[i].Images = append(courses[i].Images, img)
		}
	}
	return nil
}
