package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/GlebRadaev/coursemart/internal/domain"
)

// Ledger implements the organization account repository.
type Ledger struct{ s *Store }

func (s *Store) Ledger() Ledger { return Ledger{s: s} }

func (r Ledger) GetAccount(context.Context) (*domain.OrganizationAccount, error) {
	var out domain.OrganizationAccount
	r.s.read(func(st *state) { out = st.account })
	return &out, nil
}

func (r Ledger) LockAccount(ctx context.Context) (*domain.OrganizationAccount, error) {
	return r.GetAccount(ctx)
}

// UpdateAccount enforces the same non-negative checks as the table.
func (r Ledger) UpdateAccount(_ context.Context, acct *domain.OrganizationAccount) error {
	return r.s.write(func(st *state) error {
		if acct.Balance.IsNegative() || acct.TaxReserve.IsNegative() {
			return domain.ErrLedgerInvariantViolation
		}
		st.account.Balance = acct.Balance
		st.account.TaxReserve = acct.TaxReserve
		st.account.UpdatedAt = r.s.now()
		return nil
	})
}

func (r Ledger) NextReceiptSequence(context.Context) (int64, error) {
	var seq int64
	err := r.s.write(func(st *state) error {
		st.account.ReceiptSequence++
		seq = st.account.ReceiptSequence
		return nil
	})
	return seq, err
}

func (r Ledger) CreateTransaction(_ context.Context, t *domain.OrganizationTransaction) error {
	return r.s.write(func(st *state) error {
		t.ID = st.next("organization_transactions")
		t.CreatedAt = r.s.now()
		st.ledger[t.ID] = *t
		return nil
	})
}

func (r Ledger) ListTransactions(_ context.Context, limit int) ([]domain.OrganizationTransaction, error) {
	var out []domain.OrganizationTransaction
	r.s.read(func(st *state) {
		out = sortedValues(st.ledger, nil,
			func(a, b domain.OrganizationTransaction) int { return cmp.Compare(b.ID, a.ID) })
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Receipts implements the receipt repository; receipts are keyed by order.
type Receipts struct{ s *Store }

func (s *Store) Receipts() Receipts { return Receipts{s: s} }

func (r Receipts) Create(_ context.Context, rc *domain.Receipt) error {
	return r.s.write(func(st *state) error {
		rc.ID = st.next("receipts")
		rc.IssuedAt = r.s.now()
		items := make([]domain.ReceiptItem, len(rc.Items))
		for i, it := range rc.Items {
			it.ID = st.next("receipt_items")
			it.ReceiptID = rc.ID
			items[i] = it
		}
		rc.Items = items
		stored := *rc
		stored.Items = slices.Clone(items)
		st.receipts[rc.OrderID] = stored
		return nil
	})
}

func (r Receipts) FindByOrder(_ context.Context, orderID int64) (*domain.Receipt, error) {
	var out *domain.Receipt
	r.s.read(func(st *state) {
		if rc, ok := st.receipts[orderID]; ok {
			rc.Items = slices.Clone(rc.Items)
			out = &rc
		}
	})
	return out, nil
}

func (r Receipts) ListByUser(_ context.Context, userID int64) ([]domain.Receipt, error) {
	var out []domain.Receipt
	r.s.read(func(st *state) {
		for orderID, rc := range st.receipts {
			if o, ok := st.orders[orderID]; ok && o.UserID == userID {
				rc.Items = slices.Clone(rc.Items)
				out = append(out, rc)
			}
		}
	})
	slices.SortFunc(out, func(a, b domain.Receipt) int { return cmp.Compare(b.ID, a.ID) })
	return out, nil
}

func (r Receipts) LockByOrder(ctx context.Context, orderID int64) (*domain.Receipt, error) {
	return r.FindByOrder(ctx, orderID)
}

func (r Receipts) Annul(_ context.Context, id int64, at time.Time) error {
	return r.s.write(func(st *state) error {
		for orderID, rc := range st.receipts {
			if rc.ID == id {
				rc.Status = domain.ReceiptAnnulled
				rc.AnnulledAt = &at
				st.receipts[orderID] = rc
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r Receipts) GetConfig(context.Context) (*domain.ReceiptConfig, error) {
	out := &domain.ReceiptConfig{}
	r.s.read(func(st *state) {
		if st.receiptConfig != nil {
			*out = *st.receiptConfig
		}
	})
	return out, nil
}

// Lessons implements the lesson and completion repository.
type Lessons struct{ s *Store }

func (s *Store) Lessons() Lessons { return Lessons{s: s} }

// AddLesson seeds a lesson and returns it with its id.
func (s *Store) AddLesson(l domain.Lesson) *domain.Lesson {
	_ = s.write(func(st *state) error {
		l.ID = st.next("lessons")
		st.lessons[l.ID] = l
		return nil
	})
	return &l
}

func (r Lessons) ListLessons(_ context.Context, courseID int64) ([]domain.Lesson, error) {
	var out []domain.Lesson
	r.s.read(func(st *state) {
		out = sortedValues(st.lessons,
			func(l domain.Lesson) bool { return l.CourseID == courseID },
			func(a, b domain.Lesson) int {
				return cmp.Or(cmp.Compare(a.SortOrder, b.SortOrder), cmp.Compare(a.ID, b.ID))
			})
	})
	return out, nil
}

func (r Lessons) GetLesson(_ context.Context, id int64) (*domain.Lesson, error) {
	var out *domain.Lesson
	r.s.read(func(st *state) {
		if l, ok := st.lessons[id]; ok {
			out = ptr(l)
		}
	})
	return out, nil
}

// UpsertCompletion keeps earlier feedback when the new call carries none.
func (r Lessons) UpsertCompletion(_ context.Context, c *domain.LessonCompletion) error {
	return r.s.write(func(st *state) error {
		for id, prev := range st.completions {
			if prev.CoursePurchaseID != c.CoursePurchaseID || prev.LessonID != c.LessonID {
				continue
			}
			if c.Liked != nil {
				prev.Liked = c.Liked
			}
			if c.ReviewText != "" {
				prev.ReviewText = c.ReviewText
			}
			prev.CompletedAt = r.s.now()
			st.completions[id] = prev
			*c = prev
			return nil
		}
		c.ID = st.next("lesson_completions")
		c.CompletedAt = r.s.now()
		st.completions[c.ID] = *c
		return nil
	})
}

func (r Lessons) LockCompletion(_ context.Context, id int64) (*domain.LessonCompletion, error) {
	var out *domain.LessonCompletion
	r.s.read(func(st *state) {
		if c, ok := st.completions[id]; ok {
			out = ptr(c)
		}
	})
	return out, nil
}

func (r Lessons) ListCompletions(_ context.Context, purchaseID int64) ([]domain.LessonCompletion, error) {
	var out []domain.LessonCompletion
	r.s.read(func(st *state) {
		out = sortedValues(st.completions,
			func(c domain.LessonCompletion) bool { return c.CoursePurchaseID == purchaseID },
			func(a, b domain.LessonCompletion) int { return cmp.Compare(a.ID, b.ID) })
	})
	return out, nil
}

func (r Lessons) SetAdminComment(_ context.Context, id int64, comment string, at time.Time) error {
	return r.s.write(func(st *state) error {
		c, ok := st.completions[id]
		if !ok {
			return domain.ErrNotFound
		}
		c.AdminComment = comment
		c.AdminCommentedAt = &at
		st.completions[id] = c
		return nil
	})
}

// Notifications implements the user notification repository.
type Notifications struct{ s *Store }

func (s *Store) Notifications() Notifications { return Notifications{s: s} }

func (r Notifications) Create(_ context.Context, n *domain.UserNotification) error {
	return r.s.write(func(st *state) error {
		n.ID = st.next("user_notifications")
		n.CreatedAt = r.s.now()
		st.notifications[n.ID] = *n
		return nil
	})
}

func (r Notifications) ListByUser(_ context.Context, userID int64) ([]domain.UserNotification, error) {
	var out []domain.UserNotification
	r.s.read(func(st *state) {
		out = sortedValues(st.notifications,
			func(n domain.UserNotification) bool { return n.UserID == userID },
			func(a, b domain.UserNotification) int { return cmp.Compare(b.ID, a.ID) })
	})
	return out, nil
}

func (r Notifications) MarkRead(_ context.Context, userID, id int64) (bool, error) {
	var found bool
	err := r.s.write(func(st *state) error {
		n, ok := st.notifications[id]
		if !ok || n.UserID != userID {
			return nil
		}
		found = true
		n.IsRead = true
		st.notifications[id] = n
		return nil
	})
	return found, err
}
