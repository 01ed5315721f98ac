package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/GlebRadaev/coursemart/internal/cache"
	"github.com/GlebRadaev/coursemart/internal/config"
	"github.com/GlebRadaev/coursemart/internal/handlers"
	"github.com/GlebRadaev/coursemart/internal/metrics"
	"github.com/GlebRadaev/coursemart/internal/pg"
	"github.com/GlebRadaev/coursemart/internal/pricing"
	"github.com/GlebRadaev/coursemart/internal/repo"
	"github.com/GlebRadaev/coursemart/internal/service"
	"github.com/GlebRadaev/coursemart/internal/settlement"
	"github.com/GlebRadaev/coursemart/pkg/auth"
	"github.com/GlebRadaev/coursemart/pkg/cipher"
	"github.com/GlebRadaev/coursemart/pkg/logger"
)

const (
	shutdownTimeout = 5 * time.Second
	catalogPrefix   = "coursemart:catalog:"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg        *config.Config
	api        *handlers.Handlers
	srv        *service.Services
	repo       *repo.Repositories
	settlement *settlement.Service

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("can't load config: %w", err)
	}

	if err = logger.InitLogger(cfg); err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		zap.L().Error("build pgx pool failed", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	a.closeOnDone(ctx, "pgx pool", func() error {
		pool.Close()
		return nil
	})
	if err = pg.RunMigrations(ctx, pool); err != nil {
		zap.L().Error("migrations failed", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}

	a.cfg = cfg
	a.repo = repo.New(pg.New(pool), pg.NewTXManager(pool))
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	if a.srv, err = a.buildServices(ctx, cfg, jwtService); err != nil {
		return err
	}

	a.api = handlers.New(a.srv, jwtService)
	a.settlement = settlement.New(cfg, a.repo.Orders, a.srv.RefundService, a.srv.TenderService)
	metrics.Register(nil)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}
	a.startSettlement(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func (a *Application) buildServices(ctx context.Context, cfg *config.Config, jwtService *auth.JWTService) (*service.Services, error) {
	codec, err := cipher.New(cfg.CardEncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("can't build card cipher: %w", err)
	}

	var client *redis.Client
	if cfg.Redis != "" {
		client = redis.NewClient(&redis.Options{Addr: cfg.Redis})
		if err := client.Ping(ctx).Err(); err != nil {
			zap.L().Warn("redis unavailable, catalog cache disabled", zap.String("address", cfg.Redis), zap.Error(err))
			_ = client.Close()
			client = nil
		} else {
			a.closeOnDone(ctx, "redis client", client.Close)
		}
	}

	return service.New(a.repo, service.Options{
		Rates: pricing.Rates{
			DeliveryCost:     cfg.DeliveryCost,
			VATPercent:       cfg.VATRate,
			ProfitTaxPercent: cfg.ProfitTaxRate,
		},
		TokenTTL:          cfg.TokenTTL,
		IdempotencyWindow: cfg.IdempotencyWindow,
		Hash:              auth.NewHashService(bcrypt.DefaultCost),
		JWT:               jwtService,
		Codec:             codec,
		Cache:             cache.New(client, catalogPrefix, cfg.CatalogCacheTTL),
	}), nil
}

// closeOnDone releases a resource once the application context ends.
func (a *Application) closeOnDone(ctx context.Context, name string, closeFn func() error) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()
		if err := closeFn(); err != nil {
			zap.L().Warn("close failed", zap.String("resource", name), zap.Error(err))
		}
	}()
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:              a.cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(sCtx); err != nil {
			zap.L().Error("http server shutdown failed", zap.Error(err))
		}
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server", zap.String("address", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startSettlement(ctx context.Context) {
	a.settlement.Start(ctx)
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
