package authservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/pg"
	"github.com/GlebRadaev/coursemart/pkg/auth"
)

//go:generate mockgen -source=authservice.go -destination=mock_authservice.go -package=authservice
type Repo interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	SetBlocked(ctx context.Context, id int64, blocked bool) (bool, error)
	CreateAddress(ctx context.Context, addr *domain.Address) error
	ListAddresses(ctx context.Context, userID int64) ([]domain.Address, error)
}

type ActivityLogger interface {
	Log(ctx context.Context, actorID *int64, action, targetType string, targetID int64, details map[string]any) error
}

type Service struct {
	userRepo    Repo
	txManager   pg.TXManager
	activity    ActivityLogger
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
	tokenTTL    time.Duration
}

func New(repo Repo, txManager pg.TXManager, activity ActivityLogger, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface, tokenTTL time.Duration) *Service {
	return &Service{
		userRepo:    repo,
		txManager:   txManager,
		activity:    activity,
		hashService: hashService,
		jwtService:  jwtService,
		tokenTTL:    tokenTTL,
	}
}

func (s *Service) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		zap.L().Info("user already exists", zap.String("email", email))
		return nil, domain.ErrEmailTaken
	}
	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password", zap.Error(err))
		return nil, err
	}
	user := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hashedPassword,
		Capabilities: []domain.Capability{domain.CapabilitySelf},
	}
	newUser, err := s.userRepo.Create(ctx, user)
	if err != nil {
		zap.L().Error("can't create user", zap.Error(err))
		return nil, err
	}

	zap.L().Info("user successfully registered", zap.String("email", email))
	return newUser, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	if user == nil || !s.hashService.ComparePassword(user.PasswordHash, password) {
		zap.L().Info("invalid credentials", zap.String("email", email))
		return nil, domain.ErrInvalidCredentials
	}
	if user.Blocked {
		return nil, domain.ErrUserBlocked
	}
	zap.L().Info("user successfully authenticated", zap.Int64("userID", user.ID))
	return user, nil
}

func (s *Service) GenerateToken(user *domain.User) (string, error) {
	caps := make([]string, 0, len(user.Capabilities))
	for _, c := range user.Capabilities {
		caps = append(caps, string(c))
	}
	token, err := s.jwtService.GenerateJWT(user.ID, caps, time.Now().Add(s.tokenTTL))
	if err != nil {
		zap.L().Error("can't generate token", zap.Error(err))
		return "", err
	}
	return token, nil
}

func (s *Service) SetBlocked(ctx context.Context, actor domain.Actor, userID int64, blocked bool) error {
	if !actor.IsStaff() {
		return domain.ErrForbidden
	}
	if userID == actor.UserID {
		return fmt.Errorf("%w: staff cannot block themselves", domain.ErrInvalidInput)
	}
	action := domain.ActivityUserUnblocked
	if blocked {
		action = domain.ActivityUserBlocked
	}
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		found, err := s.userRepo.SetBlocked(ctx, userID, blocked)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrNotFound
		}
		return s.activity.Log(ctx, actor.CreatedBy(), action, "user", userID, nil)
	})
}

func (s *Service) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (s *Service) AddAddress(ctx context.Context, userID int64, line, city, postalCode string) (*domain.Address, error) {
	addr := &domain.Address{
		UserID:     userID,
		Line:       strings.TrimSpace(line),
		City:       strings.TrimSpace(city),
		PostalCode: strings.TrimSpace(postalCode),
	}
	if addr.Line == "" || addr.City == "" {
		return nil, fmt.Errorf("%w: line and city are required", domain.ErrInvalidInput)
	}
	if err := s.userRepo.CreateAddress(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *Service) ListAddresses(ctx context.Context, userID int64) ([]domain.Address, error) {
	return s.userRepo.ListAddresses(ctx, userID)
}
