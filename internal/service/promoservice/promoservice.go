package promoservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
	"github.com/GlebRadaev/coursemart/internal/pg"
	"github.com/GlebRadaev/coursemart/internal/pricing"
)

//go:generate mockgen -source=promoservice.go -destination=mock_promoservice.go -package=promoservice
type Repo interface {
	FindByCode(ctx context.Context, code string) (*domain.Promotion, error)
	HasUsage(ctx context.Context, userID, promotionID int64) (bool, error)
	CreateUsage(ctx context.Context, usage *domain.PromoUsage) error
	Create(ctx context.Context, p *domain.Promotion) error
	List(ctx context.Context) ([]domain.Promotion, error)
	ListUnused(ctx context.Context, userID int64) ([]domain.Promotion, error)
}

type CartReader interface {
	FindByUser(ctx context.Context, userID int64) (*domain.Cart, error)
}

type CourseReader interface {
	GetCourse(ctx context.Context, id int64) (*domain.Course, error)
}

type ActivityLogger interface {
	Log(ctx context.Context, actorID *int64, action, targetType string, targetID int64, details map[string]any) error
}

// Estimate is a discount preview; nothing is consumed.
type Estimate struct {
	Code            string
	DiscountPercent decimal.Decimal
	Subtotal        money.Money
	DiscountAmount  money.Money
	Total           money.Money
}

// NewPromotion carries the fields staff provide when creating a promotion.
type NewPromotion struct {
	Code            string
	DiscountPercent decimal.Decimal
	StartDate       *time.Time
	EndDate         *time.Time
	Active          bool
}

type Service struct {
	repo      Repo
	carts     CartReader
	courses   CourseReader
	txManager pg.TXManager
	activity  ActivityLogger
	rates     pricing.Rates
	now       func() time.Time
}

func New(repo Repo, carts CartReader, courses CourseReader, txManager pg.TXManager, activity ActivityLogger, rates pricing.Rates) *Service {
	return &Service{
		repo:      repo,
		carts:     carts,
		courses:   courses,
		txManager: txManager,
		activity:  activity,
		rates:     rates,
		now:       time.Now,
	}
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate resolves code for userID without consuming it.
func (s *Service) Validate(ctx context.Context, code string, userID int64, today time.Time) (*domain.Promotion, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, domain.ErrPromoNotFound
	}
	p, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPromoNotFound
	}
	if err := pricing.CheckPromotion(p, today); err != nil {
		return nil, err
	}
	used, err := s.repo.HasUsage(ctx, userID, p.ID)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, domain.ErrPromoAlreadyUsed
	}
	return p, nil
}

// Consume binds the promotion to the user. The unique (user, promotion) pair
// makes a concurrent second consume fail with ErrPromoAlreadyUsed.
func (s *Service) Consume(ctx context.Context, p *domain.Promotion, userID int64, orderID, purchaseID *int64) error {
	usage := &domain.PromoUsage{
		UserID:           userID,
		PromotionID:      p.ID,
		OrderID:          orderID,
		CoursePurchaseID: purchaseID,
	}
	if err := s.repo.CreateUsage(ctx, usage); err != nil {
		zap.L().Warn("promo usage rejected", zap.String("code", p.Code), zap.Int64("userID", userID), zap.Error(err))
		return err
	}
	return nil
}

// Estimate previews the promotion against the user's cart, or against a
// single course when courseID is set.
func (s *Service) Estimate(ctx context.Context, userID int64, code string, courseID *int64) (*Estimate, error) {
	today := s.now()
	p, err := s.Validate(ctx, code, userID, today)
	if err != nil {
		return nil, err
	}

	var lines []pricing.Line
	if courseID != nil {
		course, err := s.courses.GetCourse(ctx, *courseID)
		if err != nil {
			return nil, err
		}
		if course == nil {
			return nil, domain.ErrNotFound
		}
		lines = append(lines, pricing.Line{CourseID: course.ID, Title: course.Title, Quantity: 1, UnitPrice: course.EffectivePrice()})
	} else {
		cart, err := s.carts.FindByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if cart.Empty() {
			return nil, domain.ErrCartEmpty
		}
		for _, l := range cart.Lines {
			lines = append(lines, pricing.Line{CourseID: l.CourseID, Title: l.CourseTitle, Quantity: l.Quantity, UnitPrice: l.CapturedUnitPrice})
		}
	}

	q, err := pricing.Calculate(lines, p, today, s.rates)
	if err != nil {
		return nil, err
	}
	return &Estimate{
		Code:            p.Code,
		DiscountPercent: p.DiscountPercent,
		Subtotal:        q.Subtotal,
		DiscountAmount:  q.DiscountAmount,
		Total:           q.Total,
	}, nil
}

func (s *Service) Create(ctx context.Context, actor domain.Actor, in NewPromotion) (*domain.Promotion, error) {
	if !actor.IsStaff() {
		return nil, domain.ErrForbidden
	}
	p := &domain.Promotion{
		Code:            NormalizeCode(in.Code),
		DiscountPercent: in.DiscountPercent,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		Active:          in.Active,
	}
	if p.Code == "" || p.DiscountPercent.IsNegative() || p.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("%w: code and a discount between 0 and 100 are required", domain.ErrInvalidInput)
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return nil, fmt.Errorf("%w: end date precedes start date", domain.ErrInvalidInput)
	}

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, p); err != nil {
			return err
		}
		return s.activity.Log(ctx, actor.CreatedBy(), domain.ActivityPromotionCreated, "promotion", p.ID, map[string]any{
			"code":             p.Code,
			"discount_percent": p.DiscountPercent.String(),
		})
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Promotion, error) {
	return s.repo.List(ctx)
}

// Available lists the promotions userID could redeem today.
func (s *Service) Available(ctx context.Context, userID int64) ([]domain.Promotion, error) {
	promos, err := s.repo.ListUnused(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := s.now()
	out := make([]domain.Promotion, 0, len(promos))
	for _, p := range promos {
		if pricing.CheckPromotion(&p, today) == nil {
			out = append(out, p)
		}
	}
	return out, nil
}
