package cartservice

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
	"github.com/GlebRadaev/coursemart/internal/pg"
	"github.com/GlebRadaev/coursemart/internal/pricing"
)

//go:generate mockgen -source=cartservice.go -destination=mock_cartservice.go -package=cartservice
type Repo interface {
	FindByUser(ctx context.Context, userID int64) (*domain.Cart, error)
	LockByUser(ctx context.Context, userID int64) (*domain.Cart, error)
	AddLine(ctx context.Context, cartID, courseID int64, quantity int, price money.Money) error
	UpdateLineQuantity(ctx context.Context, cartID, lineID int64, quantity int) (bool, error)
	UpdateLinePrice(ctx context.Context, cartID, lineID int64, price money.Money) error
	RemoveLine(ctx context.Context, cartID, lineID int64) (bool, error)
	Touch(ctx context.Context, cartID int64) (int64, error)
}

type CourseReader interface {
	GetCourse(ctx context.Context, id int64) (*domain.Course, error)
}

type OwnershipChecker interface {
	Owns(ctx context.Context, userID, courseID int64) (bool, error)
}

// View is the cart with a quote computed from its captured prices.
type View struct {
	Cart  *domain.Cart
	Quote pricing.Quote
}

type Service struct {
	repo      Repo
	courses   CourseReader
	ownership OwnershipChecker
	txManager pg.TXManager
	rates     pricing.Rates
}

func New(repo Repo, courses CourseReader, ownership OwnershipChecker, txManager pg.TXManager, rates pricing.Rates) *Service {
	return &Service{
		repo:      repo,
		courses:   courses,
		ownership: ownership,
		txManager: txManager,
		rates:     rates,
	}
}

// Lines converts cart lines into pricing input using the captured prices.
func Lines(cart *domain.Cart) []pricing.Line {
	if cart == nil {
		return nil
	}
	lines := make([]pricing.Line, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, pricing.Line{
			CourseID:  l.CourseID,
			Title:     l.CourseTitle,
			Quantity:  l.Quantity,
			UnitPrice: l.CapturedUnitPrice,
		})
	}
	return lines
}

func (s *Service) view(cart *domain.Cart) (*View, error) {
	if cart == nil {
		cart = &domain.Cart{}
	}
	q, err := pricing.Calculate(Lines(cart), nil, time.Time{}, s.rates)
	if err != nil {
		return nil, err
	}
	return &View{Cart: cart, Quote: q}, nil
}

func (s *Service) Get(ctx context.Context, userID int64) (*View, error) {
	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get cart", zap.Int64("userID", userID), zap.Error(err))
		return nil, err
	}
	return s.view(cart)
}

// Add puts quantity units of the course in the cart. The unit price is
// captured on the first add and kept for later adds of the same course.
func (s *Service) Add(ctx context.Context, userID, courseID int64, quantity int) (*View, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	course, err := s.courses.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, fmt.Errorf("%w: course %d", domain.ErrNotFound, courseID)
	}
	if !course.Available {
		return nil, domain.ErrCourseUnavailable
	}
	owns, err := s.ownership.Owns(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if owns {
		return nil, domain.ErrAlreadyPurchased
	}

	return s.mutate(ctx, userID, func(ctx context.Context, cart *domain.Cart) error {
		return s.repo.AddLine(ctx, cart.ID, courseID, quantity, course.EffectivePrice())
	})
}

func (s *Service) UpdateQuantity(ctx context.Context, userID, lineID int64, quantity int) (*View, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	return s.mutate(ctx, userID, func(ctx context.Context, cart *domain.Cart) error {
		found, err := s.repo.UpdateLineQuantity(ctx, cart.ID, lineID, quantity)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: cart line %d", domain.ErrNotFound, lineID)
		}
		return nil
	})
}

func (s *Service) Remove(ctx context.Context, userID, lineID int64) (*View, error) {
	return s.mutate(ctx, userID, func(ctx context.Context, cart *domain.Cart) error {
		found, err := s.repo.RemoveLine(ctx, cart.ID, lineID)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: cart line %d", domain.ErrNotFound, lineID)
		}
		return nil
	})
}

// RefreshPrices recaptures every line at the course's current effective price.
func (s *Service) RefreshPrices(ctx context.Context, userID int64) (*View, error) {
	return s.mutate(ctx, userID, func(ctx context.Context, cart *domain.Cart) error {
		for _, l := range cart.Lines {
			course, err := s.courses.GetCourse(ctx, l.CourseID)
			if err != nil {
				return err
			}
			if course == nil || !course.Available {
				return fmt.Errorf("%w: course %d", domain.ErrCourseUnavailable, l.CourseID)
			}
			if price := course.EffectivePrice(); !price.Equal(l.CapturedUnitPrice) {
				if err := s.repo.UpdateLinePrice(ctx, cart.ID, l.ID, price); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// mutate runs fn under the cart row lock and bumps the version.
func (s *Service) mutate(ctx context.Context, userID int64, fn func(ctx context.Context, cart *domain.Cart) error) (*View, error) {
	var cart *domain.Cart
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		locked, err := s.repo.LockByUser(ctx, userID)
		if err != nil {
			return err
		}
		if err := fn(ctx, locked); err != nil {
			return err
		}
		if _, err := s.repo.Touch(ctx, locked.ID); err != nil {
			return err
		}
		cart, err = s.repo.FindByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.view(cart)
}
