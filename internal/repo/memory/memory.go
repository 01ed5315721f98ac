// Package memory keeps every repository in process memory. Transactions are
// serialized and roll back by restoring a snapshot, which makes it a stand-in
// for PostgreSQL in end-to-end service tests.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/pg"
)

type state struct {
	seq           map[string]int64
	users         map[int64]domain.User
	addresses     map[int64]domain.Address
	courses       map[int64]domain.Course
	categories    map[int64]domain.Category
	carts         map[int64]domain.Cart
	cartLines     map[int64]domain.CartLine
	promotions    map[int64]domain.Promotion
	promoUsages   map[int64]domain.PromoUsage
	orders        map[int64]domain.Order
	purchases     map[int64]domain.CoursePurchase
	tenders       map[int64]domain.TenderResult
	balanceTxs    map[int64]domain.BalanceTransaction
	cards         map[int64]domain.SavedCard
	cardTxs       map[int64]domain.CardTransaction
	account       domain.OrganizationAccount
	ledger        map[int64]domain.OrganizationTransaction
	receipts      map[int64]domain.Receipt
	receiptConfig *domain.ReceiptConfig
	refunds       map[int64]domain.CourseRefundRequest
	activity      map[int64]domain.ActivityEntry
	lessons       map[int64]domain.Lesson
	completions   map[int64]domain.LessonCompletion
	notifications map[int64]domain.UserNotification
}

func newState() *state {
	return &state{
		seq:           map[string]int64{},
		users:         map[int64]domain.User{},
		addresses:     map[int64]domain.Address{},
		courses:       map[int64]domain.Course{},
		categories:    map[int64]domain.Category{},
		carts:         map[int64]domain.Cart{},
		cartLines:     map[int64]domain.CartLine{},
		promotions:    map[int64]domain.Promotion{},
		promoUsages:   map[int64]domain.PromoUsage{},
		orders:        map[int64]domain.Order{},
		purchases:     map[int64]domain.CoursePurchase{},
		tenders:       map[int64]domain.TenderResult{},
		balanceTxs:    map[int64]domain.BalanceTransaction{},
		cards:         map[int64]domain.SavedCard{},
		cardTxs:       map[int64]domain.CardTransaction{},
		account:       domain.OrganizationAccount{ID: domain.OrganizationAccountID},
		ledger:        map[int64]domain.OrganizationTransaction{},
		receipts:      map[int64]domain.Receipt{},
		refunds:       map[int64]domain.CourseRefundRequest{},
		activity:      map[int64]domain.ActivityEntry{},
		lessons:       map[int64]domain.Lesson{},
		completions:   map[int64]domain.LessonCompletion{},
		notifications: map[int64]domain.UserNotification{},
	}
}

// clone copies every table. Stored values are never mutated in place, so
// copying the maps is enough.
func (st *state) clone() *state {
	return &state{
		seq:           maps.Clone(st.seq),
		users:         maps.Clone(st.users),
		addresses:     maps.Clone(st.addresses),
		courses:       maps.Clone(st.courses),
		categories:    maps.Clone(st.categories),
		carts:         maps.Clone(st.carts),
		cartLines:     maps.Clone(st.cartLines),
		promotions:    maps.Clone(st.promotions),
		promoUsages:   maps.Clone(st.promoUsages),
		orders:        maps.Clone(st.orders),
		purchases:     maps.Clone(st.purchases),
		tenders:       maps.Clone(st.tenders),
		balanceTxs:    maps.Clone(st.balanceTxs),
		cards:         maps.Clone(st.cards),
		cardTxs:       maps.Clone(st.cardTxs),
		account:       st.account,
		ledger:        maps.Clone(st.ledger),
		receipts:      maps.Clone(st.receipts),
		receiptConfig: st.receiptConfig,
		refunds:       maps.Clone(st.refunds),
		activity:      maps.Clone(st.activity),
		lessons:       maps.Clone(st.lessons),
		completions:   maps.Clone(st.completions),
		notifications: maps.Clone(st.notifications),
	}
}

func (st *state) next(table string) int64 {
	st.seq[table]++
	return st.seq[table]
}

// Store owns the tables. Each repository view shares it.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	data *state
	now  func() time.Time
}

func New() *Store {
	return &Store{data: newState(), now: time.Now}
}

func (s *Store) read(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.data)
}

func (s *Store) write(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

type txKey struct{}

// TxManager runs one transaction at a time and restores the snapshot taken
// at Begin when fn fails.
type TxManager struct {
	s *Store
}

var _ pg.TXManager = TxManager{}

func (s *Store) TxManager() TxManager { return TxManager{s: s} }

func (m TxManager) Begin(ctx context.Context, fn pg.TransactionalFn) (err error) {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	var snapshot *state
	m.s.read(func(st *state) { snapshot = st.clone() })
	defer func() {
		if p := recover(); p != nil {
			_ = m.s.write(func(*state) error { m.s.data = snapshot; return nil })
			panic(p)
		}
		if err != nil {
			_ = m.s.write(func(*state) error { m.s.data = snapshot; return nil })
		}
	}()
	return fn(context.WithValue(ctx, txKey{}, true))
}

func sortedValues[T any](m map[int64]T, keep func(T) bool, less func(a, b T) int) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, less)
	return out
}

func ptr[T any](v T) *T { return &v }
