// Package settlement expires cash orders nobody paid for in time.
package settlement

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/coursemart/internal/config"
	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/metrics"
)

const (
	defaultLimit   = 1000
	defaultWorkers = 10
)

type OrderRepo interface {
	FindStaleCash(ctx context.Context, before time.Time, limit uint32) ([]domain.Order, error)
}

type Canceller interface {
	CancelOrder(ctx context.Context, actor domain.Actor, orderID int64) (*domain.Order, error)
}

// Purger drops expired idempotency records on every sweep.
type Purger interface {
	Purge(ctx context.Context) (int64, error)
}

type Service struct {
	orders         OrderRepo
	canceller      Canceller
	purger         Purger
	workerPool     WorkerPoolI
	limit          uint32
	ttl            time.Duration
	updateInterval time.Duration
	now            func() time.Time

	inFlight sync.Map
}

func New(cfg *config.Config, orders OrderRepo, canceller Canceller, purger Purger) *Service {
	return &Service{
		orders:         orders,
		canceller:      canceller,
		purger:         purger,
		workerPool:     NewWorkerPool(defaultWorkers),
		limit:          defaultLimit,
		ttl:            cfg.CashOrderTTL,
		updateInterval: cfg.SettlementInterval,
		now:            time.Now,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Settlement worker started",
		zap.Duration("interval", s.updateInterval),
		zap.Duration("cashOrderTTL", s.ttl),
	)
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()
	defer s.workerPool.Close()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping settlement worker")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep cancels every stale cash order found in one pass and waits for the
// cancellations to finish.
func (s *Service) Sweep(ctx context.Context) {
	if s.purger != nil {
		if n, err := s.purger.Purge(ctx); err != nil {
			zap.L().Error("Failed to purge idempotency records", zap.Error(err))
		} else if n > 0 {
			zap.L().Debug("Purged idempotency records", zap.Int64("count", n))
		}
	}

	orders, err := s.orders.FindStaleCash(ctx, s.now().Add(-s.ttl), s.limit)
	if err != nil {
		zap.L().Error("Failed to fetch stale cash orders", zap.Error(err))
		return
	}

	var (
		g    errgroup.Group
		done sync.WaitGroup
	)
	for _, order := range orders {
		if _, loaded := s.inFlight.LoadOrStore(order.ID, struct{}{}); loaded {
			continue
		}

		done.Add(1)
		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer done.Done()
				defer s.inFlight.Delete(order.ID)
				return s.handleOrder(ctx, order)
			})
			if err != nil {
				done.Done()
				s.inFlight.Delete(order.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error scheduling stale orders", zap.Error(err))
	}
	done.Wait()
}

func (s *Service) handleOrder(ctx context.Context, order domain.Order) error {
	_, err := s.canceller.CancelOrder(ctx, domain.SystemActor, order.ID)
	metrics.SettlementSweepsTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		return fmt.Errorf("cancel stale order %d: %w", order.ID, err)
	}
	zap.L().Info("Stale cash order cancelled",
		zap.Int64("orderID", order.ID),
		zap.Int64("userID", order.UserID),
		zap.Time("createdAt", order.CreatedAt),
	)
	return nil
}
