package promoservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
	"github.com/GlebRadaev/coursemart/internal/pg"
	"github.com/GlebRadaev/coursemart/internal/pricing"
)

var today = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func dayOffset(years, months, days int) *time.Time {
	d := today.AddDate(years, months, days)
	return &d
}

type mocks struct {
	repo     *MockRepo
	carts    *MockCartReader
	courses  *MockCourseReader
	activity *MockActivityLogger
}

func NewMock(t *testing.T) (*Service, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		repo:     NewMockRepo(ctrl),
		carts:    NewMockCartReader(ctrl),
		courses:  NewMockCourseReader(ctrl),
		activity: NewMockActivityLogger(ctrl),
	}
	txManager := pg.NewMockTXManager(ctrl)
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn pg.TransactionalFn) error { return fn(ctx) },
	).AnyTimes()
	service := New(m.repo, m.carts, m.courses, txManager, m.activity, pricing.DefaultRates())
	service.now = func() time.Time { return today }
	return service, m
}

func save10() *domain.Promotion {
	return &domain.Promotion{
		ID:              4,
		Code:            "SAVE10",
		DiscountPercent: decimal.NewFromInt(10),
		StartDate:       dayOffset(0, 0, -1),
		EndDate:         dayOffset(0, 0, 30),
		Active:          true,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		code        string
		prepareMock func(m mocks)
		wantErr     error
	}{
		{name: "blank code", code: "  ", wantErr: domain.ErrPromoNotFound},
		{
			name: "unknown code",
			code: "nope",
			prepareMock: func(m mocks) {
				m.repo.EXPECT().FindByCode(gomock.Any(), "NOPE").Return(nil, nil)
			},
			wantErr: domain.ErrPromoNotFound,
		},
		{
			name: "inactive",
			code: "save10",
			prepareMock: func(m mocks) {
				p := save10()
				p.Active = false
				m.repo.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(p, nil)
			},
			wantErr: domain.ErrPromoInactive,
		},
		{
			name: "expired",
			code: "save10",
			prepareMock: func(m mocks) {
				p := save10()
				p.EndDate = dayOffset(0, 0, -1)
				m.repo.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(p, nil)
			},
			wantErr: domain.ErrPromoOutOfWindow,
		},
		{
			name: "already used",
			code: "save10",
			prepareMock: func(m mocks) {
				m.repo.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(save10(), nil)
				m.repo.EXPECT().HasUsage(gomock.Any(), int64(1), int64(4)).Return(true, nil)
			},
			wantErr: domain.ErrPromoAlreadyUsed,
		},
		{
			name: "no dates never expire",
			code: "save10",
			prepareMock: func(m mocks) {
				p := save10()
				p.StartDate, p.EndDate = nil, nil
				m.repo.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(p, nil)
				m.repo.EXPECT().HasUsage(gomock.Any(), int64(1), int64(4)).Return(false, nil)
			},
		},
		{
			name: "valid, case-insensitive",
			code: " Save10 ",
			prepareMock: func(m mocks) {
				m.repo.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(save10(), nil)
				m.repo.EXPECT().HasUsage(gomock.Any(), int64(1), int64(4)).Return(false, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			if tt.prepareMock != nil {
				tt.prepareMock(m)
			}
			p, err := service.Validate(context.Background(), tt.code, 1, today)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "SAVE10", p.Code)
		})
	}
}

func TestEstimate_SingleCourse(t *testing.T) {
	service, m := NewMock(t)
	courseID := int64(11)
	m.repo.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(save10(), nil)
	m.repo.EXPECT().HasUsage(gomock.Any(), int64(1), int64(4)).Return(false, nil)
	m.courses.EXPECT().GetCourse(gomock.Any(), courseID).Return(&domain.Course{
		ID:              courseID,
		Title:           "Go",
		UnitPrice:       money.MustParse("1000.00"),
		DiscountPercent: decimal.NewFromInt(10),
		Available:       true,
	}, nil)

	est, err := service.Estimate(context.Background(), 1, "save10", &courseID)
	require.NoError(t, err)
	assert.Equal(t, "900.00", est.Subtotal.String())
	assert.Equal(t, "90.00", est.DiscountAmount.String())
	assert.Equal(t, "2172.00", est.Total.String())
}

func TestEstimate_EmptyCart(t *testing.T) {
	service, m := NewMock(t)
	m.repo.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(save10(), nil)
	m.repo.EXPECT().HasUsage(gomock.Any(), int64(1), int64(4)).Return(false, nil)
	m.carts.EXPECT().FindByUser(gomock.Any(), int64(1)).Return(&domain.Cart{ID: 2, UserID: 1}, nil)

	_, err := service.Estimate(context.Background(), 1, "SAVE10", nil)
	assert.ErrorIs(t, err, domain.ErrCartEmpty)
}

func TestCreate(t *testing.T) {
	manager := domain.Actor{UserID: 5, Capabilities: []domain.Capability{domain.CapabilityManager}}
	valid := NewPromotion{
		Code:            " spring ",
		DiscountPercent: decimal.NewFromInt(15),
		StartDate:       dayOffset(0, 0, 0),
		EndDate:         dayOffset(0, 1, 0),
		Active:          true,
	}

	tests := []struct {
		name    string
		actor   domain.Actor
		in      func() NewPromotion
		mock    func(m mocks)
		wantErr error
	}{
		{
			name:  "created",
			actor: manager,
			in:    func() NewPromotion { return valid },
			mock: func(m mocks) {
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.Promotion) error {
					assert.Equal(t, "SPRING", p.Code)
					p.ID = 9
					return nil
				})
				m.activity.EXPECT().Log(gomock.Any(), manager.CreatedBy(), domain.ActivityPromotionCreated, "promotion", int64(9), gomock.Any()).Return(nil)
			},
		},
		{
			name:    "buyer forbidden",
			actor:   domain.Actor{UserID: 1, Capabilities: []domain.Capability{domain.CapabilitySelf}},
			in:      func() NewPromotion { return valid },
			wantErr: domain.ErrForbidden,
		},
		{
			name:  "discount over 100",
			actor: manager,
			in: func() NewPromotion {
				in := valid
				in.DiscountPercent = decimal.NewFromInt(101)
				return in
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:  "reversed window",
			actor: manager,
			in: func() NewPromotion {
				in := valid
				in.EndDate = dayOffset(0, 0, -1)
				return in
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:  "open-ended window",
			actor: manager,
			in: func() NewPromotion {
				in := valid
				in.StartDate, in.EndDate = nil, nil
				return in
			},
			mock: func(m mocks) {
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.Promotion) error {
					assert.Nil(t, p.StartDate)
					assert.Nil(t, p.EndDate)
					p.ID = 9
					return nil
				})
				m.activity.EXPECT().Log(gomock.Any(), manager.CreatedBy(), domain.ActivityPromotionCreated, "promotion", int64(9), gomock.Any()).Return(nil)
			},
		},
		{
			name:  "end date only",
			actor: manager,
			in: func() NewPromotion {
				in := valid
				in.StartDate = nil
				in.EndDate = dayOffset(0, 0, -1)
				return in
			},
			mock: func(m mocks) {
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.Promotion) error {
					p.ID = 9
					return nil
				})
				m.activity.EXPECT().Log(gomock.Any(), manager.CreatedBy(), domain.ActivityPromotionCreated, "promotion", int64(9), gomock.Any()).Return(nil)
			},
		},
		{
			name:  "duplicate code",
			actor: manager,
			in:    func() NewPromotion { return valid },
			mock: func(m mocks) {
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrPromoCodeTaken)
			},
			wantErr: domain.ErrPromoCodeTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			if tt.mock != nil {
				tt.mock(m)
			}
			p, err := service.Create(context.Background(), tt.actor, tt.in())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(9), p.ID)
		})
	}
}

func TestAvailable(t *testing.T) {
	service, m := NewMock(t)

	expired := save10()
	expired.ID, expired.Code, expired.EndDate = 5, "OLD", dayOffset(0, 0, -3)
	upcoming := save10()
	upcoming.ID, upcoming.Code, upcoming.StartDate, upcoming.EndDate = 6, "SOON", dayOffset(0, 1, 0), nil
	forever := &domain.Promotion{ID: 7, Code: "WELCOME", DiscountPercent: decimal.NewFromInt(5), Active: true}

	m.repo.EXPECT().ListUnused(gomock.Any(), int64(1)).
		Return([]domain.Promotion{*expired, *save10(), *upcoming, *forever}, nil)

	promos, err := service.Available(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, promos, 2)
	assert.Equal(t, "SAVE10", promos[0].Code)
	assert.Equal(t, "WELCOME", promos[1].Code)

	m.repo.EXPECT().ListUnused(gomock.Any(), int64(2)).Return(nil, errors.New("database error"))
	_, err = service.Available(context.Background(), 2)
	assert.Error(t, err)
}
