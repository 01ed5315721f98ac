package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
)

// Users implements the user repository.
type Users struct{ s *Store }

func (s *Store) Users() Users { return Users{s: s} }

// AddUser seeds a user and returns it with its id.
func (s *Store) AddUser(u domain.User) *domain.User {
	_ = s.write(func(st *state) error {
		u.ID = st.next("users")
		u.CreatedAt = s.now()
		if len(u.Capabilities) == 0 {
			u.Capabilities = []domain.Capability{domain.CapabilitySelf}
		}
		st.users[u.ID] = u
		return nil
	})
	return &u
}

func (r Users) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	var out *domain.User
	r.s.read(func(st *state) {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				out = ptr(u)
				return
			}
		}
	})
	return out, nil
}

func (r Users) FindByID(_ context.Context, id int64) (*domain.User, error) {
	var out *domain.User
	r.s.read(func(st *state) {
		if u, ok := st.users[id]; ok {
			out = ptr(u)
		}
	})
	return out, nil
}

func (r Users) LockUser(ctx context.Context, id int64) (*domain.User, error) {
	u, _ := r.FindByID(ctx, id)
	if u == nil {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
	}
	return u, nil
}

func (r Users) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	err := r.s.write(func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, user.Email) {
				return domain.ErrEmailTaken
			}
		}
		u := *user
		u.ID = st.next("users")
		u.CreatedAt = r.s.now()
		if len(u.Capabilities) == 0 {
			u.Capabilities = []domain.Capability{domain.CapabilitySelf}
		}
		st.users[u.ID] = u
		*user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r Users) UpdateBalance(_ context.Context, id int64, balance money.Money) error {
	return r.s.write(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return domain.ErrNotFound
		}
		if balance.IsNegative() {
			return domain.ErrInsufficientFunds
		}
		u.Balance = balance
		st.users[id] = u
		return nil
	})
}

func (r Users) SetBlocked(_ context.Context, id int64, blocked bool) (bool, error) {
	var found bool
	err := r.s.write(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return nil
		}
		found = true
		u.Blocked = blocked
		st.users[id] = u
		return nil
	})
	return found, err
}

func (r Users) CreateAddress(_ context.Context, addr *domain.Address) error {
	return r.s.write(func(st *state) error {
		addr.ID = st.next("addresses")
		addr.CreatedAt = r.s.now()
		st.addresses[addr.ID] = *addr
		return nil
	})
}

func (r Users) FindAddress(_ context.Context, id int64) (*domain.Address, error) {
	var out *domain.Address
	r.s.read(func(st *state) {
		if a, ok := st.addresses[id]; ok {
			out = ptr(a)
		}
	})
	return out, nil
}

func (r Users) ListAddresses(_ context.Context, userID int64) ([]domain.Address, error) {
	var out []domain.Address
	r.s.read(func(st *state) {
		out = sortedValues(st.addresses,
			func(a domain.Address) bool { return a.UserID == userID },
			func(a, b domain.Address) int { return cmp.Compare(a.ID, b.ID) })
	})
	return out, nil
}

// Balances implements the balance transaction repository.
type Balances struct{ s *Store }

func (s *Store) Balances() Balances { return Balances{s: s} }

func (r Balances) Create(_ context.Context, tx *domain.BalanceTransaction) error {
	return r.s.write(func(st *state) error {
		tx.ID = st.next("balance_transactions")
		tx.CreatedAt = r.s.now()
		if tx.Status == "" {
			tx.Status = domain.TxStatusCompleted
		}
		st.balanceTxs[tx.ID] = *tx
		return nil
	})
}

func (r Balances) ListByUser(_ context.Context, userID int64, limit int) ([]domain.BalanceTransaction, error) {
	var out []domain.BalanceTransaction
	r.s.read(func(st *state) {
		out = sortedValues(st.balanceTxs,
			func(t domain.BalanceTransaction) bool { return t.UserID == userID },
			func(a, b domain.BalanceTransaction) int { return cmp.Compare(b.ID, a.ID) })
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r Balances) SumByOrder(_ context.Context, orderID int64) (money.Money, error) {
	var sum money.Money
	r.s.read(func(st *state) {
		for _, t := range st.balanceTxs {
			if t.OrderID != nil && *t.OrderID == orderID && t.Status == domain.TxStatusCompleted {
				sum = sum.Add(t.Amount)
			}
		}
	})
	return sum, nil
}

// Cards implements the saved card repository.
type Cards struct{ s *Store }

func (s *Store) Cards() Cards { return Cards{s: s} }

func (r Cards) Create(_ context.Context, c *domain.SavedCard) error {
	return r.s.write(func(st *state) error {
		c.ID = st.next("saved_cards")
		c.CreatedAt = r.s.now()
		st.cards[c.ID] = *c
		return nil
	})
}

func (r Cards) FindCard(_ context.Context, id int64) (*domain.SavedCard, error) {
	var out *domain.SavedCard
	r.s.read(func(st *state) {
		if c, ok := st.cards[id]; ok {
			out = ptr(c)
		}
	})
	return out, nil
}

func (r Cards) LockCard(ctx context.Context, id int64) (*domain.SavedCard, error) {
	c, _ := r.FindCard(ctx, id)
	if c == nil {
		return nil, fmt.Errorf("%w: card %d", domain.ErrNotFound, id)
	}
	return c, nil
}

func (r Cards) ListByUser(_ context.Context, userID int64) ([]domain.SavedCard, error) {
	var out []domain.SavedCard
	r.s.read(func(st *state) {
		out = sortedValues(st.cards,
			func(c domain.SavedCard) bool { return c.UserID == userID },
			func(a, b domain.SavedCard) int {
				if a.IsDefault != b.IsDefault {
					if a.IsDefault {
						return -1
					}
					return 1
				}
				return cmp.Compare(a.ID, b.ID)
			})
	})
	return out, nil
}

func (r Cards) UpdateBalance(_ context.Context, id int64, balance money.Money) error {
	return r.s.write(func(st *state) error {
		c, ok := st.cards[id]
		if !ok {
			return domain.ErrNotFound
		}
		if balance.IsNegative() {
			return domain.ErrInsufficientFunds
		}
		c.Balance = balance
		st.cards[id] = c
		return nil
	})
}

func (r Cards) SetDefault(_ context.Context, userID, cardID int64) error {
	return r.s.write(func(st *state) error {
		for id, c := range st.cards {
			if c.UserID != userID {
				continue
			}
			c.IsDefault = id == cardID
			st.cards[id] = c
		}
		return nil
	})
}

func (r Cards) Delete(_ context.Context, id int64) error {
	return r.s.write(func(st *state) error {
		delete(st.cards, id)
		return nil
	})
}

func (r Cards) CreateTransaction(_ context.Context, tx *domain.CardTransaction) error {
	return r.s.write(func(st *state) error {
		tx.ID = st.next("card_transactions")
		tx.CreatedAt = r.s.now()
		st.cardTxs[tx.ID] = *tx
		return nil
	})
}

func (r Cards) ListTransactions(_ context.Context, cardID int64) ([]domain.CardTransaction, error) {
	var out []domain.CardTransaction
	r.s.read(func(st *state) {
		out = sortedValues(st.cardTxs,
			func(t domain.CardTransaction) bool { return t.CardID == cardID },
			func(a, b domain.CardTransaction) int { return cmp.Compare(b.ID, a.ID) })
	})
	return out, nil
}

// Activity implements the activity log repository.
type Activity struct{ s *Store }

func (s *Store) Activity() Activity { return Activity{s: s} }

func (r Activity) Create(_ context.Context, e *domain.ActivityEntry) error {
	return r.s.write(func(st *state) error {
		e.ID = st.next("activity_log")
		e.CreatedAt = r.s.now()
		st.activity[e.ID] = *e
		return nil
	})
}

func (r Activity) List(_ context.Context, limit int) ([]domain.ActivityEntry, error) {
	var out []domain.ActivityEntry
	r.s.read(func(st *state) {
		out = sortedValues(st.activity, nil,
			func(a, b domain.ActivityEntry) int { return cmp.Compare(b.ID, a.ID) })
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return slices.Clip(out), nil
}
