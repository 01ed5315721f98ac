package catalogservice

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
	"github.com/GlebRadaev/coursemart/internal/pg"
)

const (
	coursesPrefix = "courses:"
	categoriesKey = "categories"
)

//go:generate mockgen -source=catalogservice.go -destination=mock_catalogservice.go -package=catalogservice
type Repo interface {
	ListCourses(ctx context.Context, filter domain.CourseFilter) ([]domain.Course, error)
	GetCourse(ctx context.Context, id int64) (*domain.Course, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	CreateCourse(ctx context.Context, c *domain.Course) error
	UpdateCourse(ctx context.Context, c *domain.Course) (bool, error)
	CreateCategory(ctx context.Context, c *domain.Category) error
}

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

type ActivityLogger interface {
	Log(ctx context.Context, actorID *int64, action, targetType string, targetID int64, details map[string]any) error
}

// CourseInput is what staff send to create or replace a course.
type CourseInput struct {
	CategoryID      *int64
	Title           string
	Slug            string
	Description     string
	UnitPrice       money.Money
	DiscountPercent decimal.Decimal
	Available       bool
}

type Service struct {
	repo      Repo
	cache     Cache
	txManager pg.TXManager
	activity  ActivityLogger
}

func New(repo Repo, cache Cache, txManager pg.TXManager, activity ActivityLogger) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		txManager: txManager,
		activity:  activity,
	}
}

func courseKey(id int64) string {
	return "course:" + strconv.FormatInt(id, 10)
}

func listKey(f domain.CourseFilter) string {
	var sb strings.Builder
	sb.WriteString(coursesPrefix)
	if f.CategoryID != nil {
		sb.WriteString(strconv.FormatInt(*f.CategoryID, 10))
	}
	sb.WriteString(":")
	sb.WriteString(strings.ToLower(strings.TrimSpace(f.Query)))
	sb.WriteString(":")
	sb.WriteString(string(f.Sort))
	sb.WriteString(":")
	sb.WriteString(strconv.FormatBool(f.AvailableOnly))
	return sb.String()
}

// cached serves key from the cache, falling back to load. Cache failures only log.
func cached[T any](ctx context.Context, c Cache, key string, load func() (T, error)) (T, error) {
	var v T
	if hit, err := c.GetJSON(ctx, key, &v); err != nil {
		zap.L().Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	if err := c.SetJSON(ctx, key, v); err != nil {
		zap.L().Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}

func (s *Service) ListCourses(ctx context.Context, filter domain.CourseFilter) ([]domain.Course, error) {
	switch filter.Sort {
	case "", domain.SortByTitle, domain.SortByPriceAsc, domain.SortByPriceDesc, domain.SortByNewest:
	default:
		return nil, fmt.Errorf("%w: unknown sort %q", domain.ErrInvalidInput, filter.Sort)
	}
	return cached(ctx, s.cache, listKey(filter), func() ([]domain.Course, error) {
		return s.repo.ListCourses(ctx, filter)
	})
}

func (s *Service) GetCourse(ctx context.Context, id int64) (*domain.Course, error) {
	course, err := cached(ctx, s.cache, courseKey(id), func() (*domain.Course, error) {
		c, err := s.repo.GetCourse(ctx, id)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return course, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return cached(ctx, s.cache, categoriesKey, func() ([]domain.Category, error) {
		return s.repo.ListCategories(ctx)
	})
}

// NormalizeSlug lowercases and trims s; it returns "" unless the result is
// made of a-z, 0-9 and single inner hyphens.
func NormalizeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") || strings.Contains(s, "--") {
		return ""
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return ""
		}
	}
	return s
}

func (s *Service) buildCourse(ctx context.Context, in CourseInput) (*domain.Course, error) {
	c := &domain.Course{
		CategoryID:      in.CategoryID,
		Title:           strings.TrimSpace(in.Title),
		Slug:            NormalizeSlug(in.Slug),
		Description:     in.Description,
		UnitPrice:       in.UnitPrice,
		DiscountPercent: in.DiscountPercent,
		Available:       in.Available,
	}
	switch {
	case c.Title == "":
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	case c.Slug == "":
		return nil, fmt.Errorf("%w: slug must be lowercase letters, digits and hyphens", domain.ErrInvalidInput)
	case c.UnitPrice.IsNegative():
		return nil, domain.ErrInvalidPrice
	case c.DiscountPercent.IsNegative() || c.DiscountPercent.GreaterThan(decimal.NewFromInt(100)):
		return nil, fmt.Errorf("%w: discount must be between 0 and 100", domain.ErrInvalidInput)
	}
	if c.CategoryID != nil {
		cat, err := s.repo.GetCategory(ctx, *c.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, fmt.Errorf("%w: category %d does not exist", domain.ErrInvalidInput, *c.CategoryID)
		}
	}
	return c, nil
}

// invalidate drops cached views after a write. Failures only log; entries expire on their own.
func (s *Service) invalidate(ctx context.Context, prefix string, keys ...string) {
	if prefix != "" {
		if err := s.cache.DeletePrefix(ctx, prefix); err != nil {
			zap.L().Warn("catalog cache invalidation failed", zap.String("prefix", prefix), zap.Error(err))
		}
	}
	if len(keys) > 0 {
		if err := s.cache.Delete(ctx, keys...); err != nil {
			zap.L().Warn("catalog cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
		}
	}
}

func (s *Service) CreateCourse(ctx context.Context, actor domain.Actor, in CourseInput) (*domain.Course, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	c, err := s.buildCourse(ctx, in)
	if err != nil {
		return nil, err
	}
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateCourse(ctx, c); err != nil {
			return err
		}
		return s.activity.Log(ctx, actor.CreatedBy(), domain.ActivityCourseCreated, "course", c.ID, map[string]any{
			"slug":       c.Slug,
			"unit_price": c.UnitPrice.String(),
		})
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, coursesPrefix)
	zap.L().Info("course created", zap.Int64("courseID", c.ID), zap.String("slug", c.Slug))
	return c, nil
}

// UpdateCourse replaces the course's editable fields. Prices already captured
// in carts and orders are not touched.
func (s *Service) UpdateCourse(ctx context.Context, actor domain.Actor, id int64, in CourseInput) (*domain.Course, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	c, err := s.buildCourse(ctx, in)
	if err != nil {
		return nil, err
	}
	c.ID = id
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		found, err := s.repo.UpdateCourse(ctx, c)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: course %d", domain.ErrNotFound, id)
		}
		return s.activity.Log(ctx, actor.CreatedBy(), domain.ActivityCourseUpdated, "course", c.ID, map[string]any{
			"unit_price": c.UnitPrice.String(),
			"available":  c.Available,
		})
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, coursesPrefix, courseKey(id))
	return c, nil
}

func (s *Service) CreateCategory(ctx context.Context, actor domain.Actor, name, slug string) (*domain.Category, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	c := &domain.Category{Name: strings.TrimSpace(name), Slug: NormalizeSlug(slug)}
	if c.Name == "" || c.Slug == "" {
		return nil, fmt.Errorf("%w: name and a valid slug are required", domain.ErrInvalidInput)
	}
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateCategory(ctx, c); err != nil {
			return err
		}
		return s.activity.Log(ctx, actor.CreatedBy(), domain.ActivityCategoryCreated, "course_category", c.ID, map[string]any{
			"slug": c.Slug,
		})
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, "", categoriesKey)
	return c, nil
}
