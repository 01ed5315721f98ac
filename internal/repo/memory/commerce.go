package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
)

// Courses implements the catalog reads used by cart and checkout.
type Courses struct{ s *Store }

func (s *Store) Courses() Courses { return Courses{s: s} }

// AddCourse seeds a course and returns it with its id.
func (s *Store) AddCourse(c domain.Course) *domain.Course {
	_ = s.write(func(st *state) error {
		c.ID = st.next("courses")
		c.CreatedAt = s.now()
		st.courses[c.ID] = c
		return nil
	})
	return &c
}

// SetAvailable flips a course's availability.
func (s *Store) SetAvailable(courseID int64, available bool) {
	_ = s.write(func(st *state) error {
		c := st.courses[courseID]
		c.Available = available
		st.courses[courseID] = c
		return nil
	})
}

func (r Courses) GetCourse(_ context.Context, id int64) (*domain.Course, error) {
	var out *domain.Course
	r.s.read(func(st *state) {
		if c, ok := st.courses[id]; ok {
			out = ptr(c)
		}
	})
	return out, nil
}

func (r Courses) ListCourses(_ context.Context, filter domain.CourseFilter) ([]domain.Course, error) {
	var out []domain.Course
	q := strings.ToLower(filter.Query)
	r.s.read(func(st *state) {
		out = sortedValues(st.courses,
			func(c domain.Course) bool {
				if filter.AvailableOnly && !c.Available {
					return false
				}
				if filter.CategoryID != nil && (c.CategoryID == nil || *c.CategoryID != *filter.CategoryID) {
					return false
				}
				return q == "" || strings.Contains(strings.ToLower(c.Title), q)
			},
			func(a, b domain.Course) int { return cmp.Compare(a.Title, b.Title) })
	})
	return out, nil
}

func (r Courses) ListCategories(context.Context) ([]domain.Category, error) {
	var out []domain.Category
	r.s.read(func(st *state) {
		out = sortedValues(st.categories, nil, func(a, b domain.Category) int {
			return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
		})
	})
	return out, nil
}

func (r Courses) GetCategory(_ context.Context, id int64) (*domain.Category, error) {
	var out *domain.Category
	r.s.read(func(st *state) {
		if c, ok := st.categories[id]; ok {
			out = ptr(c)
		}
	})
	return out, nil
}

func (st *state) courseSlugTaken(slug string, exceptID int64) bool {
	for _, c := range st.courses {
		if c.Slug == slug && c.ID != exceptID {
			return true
		}
	}
	return false
}

func (r Courses) CreateCourse(_ context.Context, c *domain.Course) error {
	return r.s.write(func(st *state) error {
		if st.courseSlugTaken(c.Slug, 0) {
			return domain.ErrSlugTaken
		}
		c.ID = st.next("courses")
		c.CreatedAt = r.s.now()
		st.courses[c.ID] = *c
		return nil
	})
}

func (r Courses) UpdateCourse(_ context.Context, c *domain.Course) (bool, error) {
	found := false
	err := r.s.write(func(st *state) error {
		cur, ok := st.courses[c.ID]
		if !ok {
			return nil
		}
		if st.courseSlugTaken(c.Slug, c.ID) {
			return domain.ErrSlugTaken
		}
		found = true
		c.CreatedAt = cur.CreatedAt
		c.Images = cur.Images
		st.courses[c.ID] = *c
		return nil
	})
	return found, err
}

func (r Courses) CreateCategory(_ context.Context, c *domain.Category) error {
	return r.s.write(func(st *state) error {
		for _, other := range st.categories {
			if other.Slug == c.Slug {
				return domain.ErrSlugTaken
			}
		}
		c.ID = st.next("course_categories")
		st.categories[c.ID] = *c
		return nil
	})
}

// Carts implements the cart repository.
type Carts struct{ s *Store }

func (s *Store) Carts() Carts { return Carts{s: s} }

func (st *state) cartOf(userID int64) (domain.Cart, bool) {
	c, ok := st.carts[userID]
	if !ok {
		return c, false
	}
	c.Lines = sortedValues(st.cartLines,
		func(l domain.CartLine) bool { return l.CartID == c.ID },
		func(a, b domain.CartLine) int { return cmp.Compare(a.ID, b.ID) })
	for i := range c.Lines {
		c.Lines[i].CourseTitle = st.courses[c.Lines[i].CourseID].Title
	}
	return c, true
}

func (st *state) cartByID(cartID int64) (domain.Cart, bool) {
	for _, c := range st.carts {
		if c.ID == cartID {
			return c, true
		}
	}
	return domain.Cart{}, false
}

func (r Carts) FindByUser(_ context.Context, userID int64) (*domain.Cart, error) {
	var out *domain.Cart
	r.s.read(func(st *state) {
		if c, ok := st.cartOf(userID); ok {
			out = &c
		}
	})
	return out, nil
}

// LockByUser creates the cart on first use.
func (r Carts) LockByUser(_ context.Context, userID int64) (*domain.Cart, error) {
	var out domain.Cart
	_ = r.s.write(func(st *state) error {
		if _, ok := st.carts[userID]; !ok {
			st.carts[userID] = domain.Cart{ID: st.next("carts"), UserID: userID, UpdatedAt: r.s.now()}
		}
		out, _ = st.cartOf(userID)
		return nil
	})
	return &out, nil
}

func (r Carts) AddLine(_ context.Context, cartID, courseID int64, quantity int, price money.Money) error {
	return r.s.write(func(st *state) error {
		for id, l := range st.cartLines {
			if l.CartID == cartID && l.CourseID == courseID {
				l.Quantity += quantity
				st.cartLines[id] = l
				return nil
			}
		}
		id := st.next("cart_lines")
		st.cartLines[id] = domain.CartLine{ID: id, CartID: cartID, CourseID: courseID, Quantity: quantity, CapturedUnitPrice: price}
		return nil
	})
}

func (r Carts) UpdateLineQuantity(_ context.Context, cartID, lineID int64, quantity int) (bool, error) {
	var found bool
	err := r.s.write(func(st *state) error {
		l, ok := st.cartLines[lineID]
		if !ok || l.CartID != cartID {
			return nil
		}
		found = true
		l.Quantity = quantity
		st.cartLines[lineID] = l
		return nil
	})
	return found, err
}

func (r Carts) UpdateLinePrice(_ context.Context, cartID, lineID int64, price money.Money) error {
	return r.s.write(func(st *state) error {
		l, ok := st.cartLines[lineID]
		if !ok || l.CartID != cartID {
			return nil
		}
		l.CapturedUnitPrice = price
		st.cartLines[lineID] = l
		return nil
	})
}

func (r Carts) RemoveLine(_ context.Context, cartID, lineID int64) (bool, error) {
	var found bool
	err := r.s.write(func(st *state) error {
		if l, ok := st.cartLines[lineID]; ok && l.CartID == cartID {
			found = true
			delete(st.cartLines, lineID)
		}
		return nil
	})
	return found, err
}

func (r Carts) Clear(_ context.Context, cartID int64) error {
	return r.s.write(func(st *state) error {
		for id, l := range st.cartLines {
			if l.CartID == cartID {
				delete(st.cartLines, id)
			}
		}
		return nil
	})
}

func (r Carts) Touch(_ context.Context, cartID int64) (int64, error) {
	var version int64
	err := r.s.write(func(st *state) error {
		c, ok := st.cartByID(cartID)
		if !ok {
			return fmt.Errorf("%w: cart %d", domain.ErrNotFound, cartID)
		}
		c.Version++
		c.UpdatedAt = r.s.now()
		st.carts[c.UserID] = c
		version = c.Version
		return nil
	})
	return version, err
}

// Promotions implements the promotion repository.
type Promotions struct{ s *Store }

func (s *Store) Promotions() Promotions { return Promotions{s: s} }

// PromoUsages returns every recorded usage.
func (s *Store) PromoUsages() []domain.PromoUsage {
	var out []domain.PromoUsage
	s.read(func(st *state) {
		out = sortedValues(st.promoUsages, nil,
			func(a, b domain.PromoUsage) int { return cmp.Compare(a.ID, b.ID) })
	})
	return out
}

func (r Promotions) FindByCode(_ context.Context, code string) (*domain.Promotion, error) {
	var out *domain.Promotion
	r.s.read(func(st *state) {
		for _, p := range st.promotions {
			if p.Code == strings.ToUpper(code) {
				out = ptr(p)
				return
			}
		}
	})
	return out, nil
}

func (r Promotions) HasUsage(_ context.Context, userID, promotionID int64) (bool, error) {
	var used bool
	r.s.read(func(st *state) {
		for _, u := range st.promoUsages {
			if u.UserID == userID && u.PromotionID == promotionID {
				used = true
				return
			}
		}
	})
	return used, nil
}

func (r Promotions) CreateUsage(_ context.Context, usage *domain.PromoUsage) error {
	return r.s.write(func(st *state) error {
		for _, u := range st.promoUsages {
			if u.UserID == usage.UserID && u.PromotionID == usage.PromotionID {
				return domain.ErrPromoAlreadyUsed
			}
		}
		usage.ID = st.next("promo_usages")
		usage.UsedAt = r.s.now()
		st.promoUsages[usage.ID] = *usage
		return nil
	})
}

func (r Promotions) Create(_ context.Context, p *domain.Promotion) error {
	return r.s.write(func(st *state) error {
		p.Code = strings.ToUpper(p.Code)
		for _, other := range st.promotions {
			if other.Code == p.Code {
				return domain.ErrPromoCodeTaken
			}
		}
		p.ID = st.next("promotions")
		p.CreatedAt = r.s.now()
		st.promotions[p.ID] = *p
		return nil
	})
}

func (r Promotions) List(context.Context) ([]domain.Promotion, error) {
	var out []domain.Promotion
	r.s.read(func(st *state) {
		out = sortedValues(st.promotions, nil,
			func(a, b domain.Promotion) int { return cmp.Compare(b.ID, a.ID) })
	})
	return out, nil
}

func (r Promotions) ListUnused(_ context.Context, userID int64) ([]domain.Promotion, error) {
	var out []domain.Promotion
	r.s.read(func(st *state) {
		used := map[int64]bool{}
		for _, u := range st.promoUsages {
			if u.UserID == userID {
				used[u.PromotionID] = true
			}
		}
		out = sortedValues(st.promotions,
			func(p domain.Promotion) bool { return p.Active && !used[p.ID] },
			func(a, b domain.Promotion) int { return strings.Compare(a.Code, b.Code) })
	})
	return out, nil
}

// Orders implements the order repository.
type Orders struct{ s *Store }

func (s *Store) Orders() Orders { return Orders{s: s} }

func (r Orders) Create(_ context.Context, o *domain.Order) error {
	return r.s.write(func(st *state) error {
		o.ID = st.next("orders")
		o.CreatedAt = r.s.now()
		o.UpdatedAt = o.CreatedAt
		items := make([]domain.OrderItem, len(o.Items))
		for i, it := range o.Items {
			it.ID = st.next("order_items")
			it.OrderID = o.ID
			items[i] = it
		}
		o.Items = items
		stored := *o
		stored.Items = slices.Clone(items)
		st.orders[o.ID] = stored
		return nil
	})
}

func (r Orders) FindByID(_ context.Context, id int64) (*domain.Order, error) {
	var out *domain.Order
	r.s.read(func(st *state) {
		if o, ok := st.orders[id]; ok {
			o.Items = slices.Clone(o.Items)
			out = &o
		}
	})
	return out, nil
}

func (r Orders) LockByID(ctx context.Context, id int64) (*domain.Order, error) {
	return r.FindByID(ctx, id)
}

func (r Orders) FindByUser(_ context.Context, userID int64) ([]domain.Order, error) {
	var out []domain.Order
	r.s.read(func(st *state) {
		out = sortedValues(st.orders,
			func(o domain.Order) bool { return o.UserID == userID },
			func(a, b domain.Order) int { return cmp.Compare(b.ID, a.ID) })
	})
	return out, nil
}

func (r Orders) FindStaleCash(_ context.Context, before time.Time, limit uint32) ([]domain.Order, error) {
	var out []domain.Order
	r.s.read(func(st *state) {
		out = sortedValues(st.orders,
			func(o domain.Order) bool {
				return o.PaymentMethod == domain.PaymentCash &&
					o.Status == domain.OrderStatusProcessing &&
					o.CreatedAt.Before(before)
			},
			func(a, b domain.Order) int { return cmp.Compare(a.ID, b.ID) })
	})
	if len(out) > int(limit) {
		out = out[:limit]
	}
	return out, nil
}

func (r Orders) UpdateStatus(_ context.Context, id int64, status domain.OrderStatus, canBeCancelled bool) error {
	return r.s.write(func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return domain.ErrNotFound
		}
		o.Status = status
		o.CanBeCancelled = canBeCancelled
		o.UpdatedAt = r.s.now()
		st.orders[id] = o
		return nil
	})
}

func (r Orders) DisableCancel(_ context.Context, id int64) error {
	return r.s.write(func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return domain.ErrNotFound
		}
		o.CanBeCancelled = false
		st.orders[id] = o
		return nil
	})
}

// Purchases implements the course purchase repository.
type Purchases struct{ s *Store }

func (s *Store) Purchases() Purchases { return Purchases{s: s} }

func (r Purchases) Create(_ context.Context, p *domain.CoursePurchase) error {
	return r.s.write(func(st *state) error {
		p.ID = st.next("course_purchases")
		p.PurchasedAt = r.s.now()
		st.purchases[p.ID] = *p
		return nil
	})
}

func (r Purchases) FindByID(_ context.Context, id int64) (*domain.CoursePurchase, error) {
	var out *domain.CoursePurchase
	r.s.read(func(st *state) {
		if p, ok := st.purchases[id]; ok {
			out = ptr(p)
		}
	})
	return out, nil
}

func (r Purchases) LockByID(ctx context.Context, id int64) (*domain.CoursePurchase, error) {
	return r.FindByID(ctx, id)
}

func (r Purchases) ListByOrder(_ context.Context, orderID int64) ([]domain.CoursePurchase, error) {
	var out []domain.CoursePurchase
	r.s.read(func(st *state) {
		out = sortedValues(st.purchases,
			func(p domain.CoursePurchase) bool { return p.OrderID != nil && *p.OrderID == orderID },
			func(a, b domain.CoursePurchase) int { return cmp.Compare(a.ID, b.ID) })
	})
	return out, nil
}

func (r Purchases) ListByUser(_ context.Context, userID int64) ([]domain.CoursePurchase, error) {
	var out []domain.CoursePurchase
	r.s.read(func(st *state) {
		out = sortedValues(st.purchases,
			func(p domain.CoursePurchase) bool { return p.UserID == userID },
			func(a, b domain.CoursePurchase) int { return cmp.Compare(b.ID, a.ID) })
	})
	return out, nil
}

func (r Purchases) UpdateStatus(_ context.Context, id int64, status domain.PurchaseStatus, completedAt *time.Time) error {
	return r.s.write(func(st *state) error {
		p, ok := st.purchases[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.Status = status
		if completedAt != nil {
			p.CompletedAt = completedAt
		}
		st.purchases[id] = p
		return nil
	})
}

func (r Purchases) has(userID, courseID int64, statuses ...domain.PurchaseStatus) bool {
	var found bool
	r.s.read(func(st *state) {
		for _, p := range st.purchases {
			if p.UserID == userID && p.CourseID == courseID && slices.Contains(statuses, p.Status) {
				found = true
				return
			}
		}
	})
	return found
}

func (r Purchases) HasActive(_ context.Context, userID, courseID int64) (bool, error) {
	return r.has(userID, courseID, domain.PurchasePending, domain.PurchaseCompleted), nil
}

func (r Purchases) HasCompleted(_ context.Context, userID, courseID int64) (bool, error) {
	return r.has(userID, courseID, domain.PurchaseCompleted), nil
}

// Tenders implements the tender result repository.
type Tenders struct{ s *Store }

func (s *Store) Tenders() Tenders { return Tenders{s: s} }

func (r Tenders) FindByKey(_ context.Context, key string, since time.Time) (*domain.TenderResult, error) {
	var out *domain.TenderResult
	r.s.read(func(st *state) {
		for _, t := range st.tenders {
			if t.IdempotencyKey == key && !t.CreatedAt.Before(since) {
				out = ptr(t)
				return
			}
		}
	})
	return out, nil
}

func (r Tenders) Create(_ context.Context, t *domain.TenderResult) error {
	return r.s.write(func(st *state) error {
		for _, other := range st.tenders {
			if other.IdempotencyKey == t.IdempotencyKey {
				return domain.ErrConcurrencyConflict
			}
		}
		t.ID = st.next("tender_results")
		t.CreatedAt = r.s.now()
		st.tenders[t.ID] = *t
		return nil
	})
}

func (r Tenders) PurgeBefore(_ context.Context, before time.Time) (int64, error) {
	var n int64
	err := r.s.write(func(st *state) error {
		for id, t := range st.tenders {
			if t.CreatedAt.Before(before) {
				delete(st.tenders, id)
				n++
			}
		}
		return nil
	})
	return n, err
}

// Refunds implements the course refund request repository.
type Refunds struct{ s *Store }

func (s *Store) Refunds() Refunds { return Refunds{s: s} }

func (r Refunds) Create(_ context.Context, rr *domain.CourseRefundRequest) error {
	return r.s.write(func(st *state) error {
		rr.ID = st.next("course_refund_requests")
		rr.CreatedAt = r.s.now()
		st.refunds[rr.ID] = *rr
		return nil
	})
}

func (r Refunds) LockByID(_ context.Context, id int64) (*domain.CourseRefundRequest, error) {
	var out *domain.CourseRefundRequest
	r.s.read(func(st *state) {
		if rr, ok := st.refunds[id]; ok {
			out = ptr(rr)
		}
	})
	return out, nil
}

func (r Refunds) HasPending(_ context.Context, purchaseID int64) (bool, error) {
	var pending bool
	r.s.read(func(st *state) {
		for _, rr := range st.refunds {
			if rr.CoursePurchaseID == purchaseID && rr.Status == domain.RefundPending {
				pending = true
				return
			}
		}
	})
	return pending, nil
}

func (r Refunds) Resolve(_ context.Context, id int64, status domain.RefundStatus, processedBy *int64, at time.Time) error {
	return r.s.write(func(st *state) error {
		rr, ok := st.refunds[id]
		if !ok {
			return domain.ErrNotFound
		}
		rr.Status = status
		rr.ProcessedBy = processedBy
		rr.ResolvedAt = &at
		st.refunds[id] = rr
		return nil
	})
}

func (r Refunds) List(_ context.Context, status domain.RefundStatus) ([]domain.CourseRefundRequest, error) {
	var out []domain.CourseRefundRequest
	r.s.read(func(st *state) {
		out = sortedValues(st.refunds,
			func(rr domain.CourseRefundRequest) bool { return status == "" || rr.Status == status },
			func(a, b domain.CourseRefundRequest) int { return cmp.Compare(b.ID, a.ID) })
	})
	return out, nil
}

func (r Refunds) ListByUser(_ context.Context, userID int64) ([]domain.CourseRefundRequest, error) {
	var out []domain.CourseRefundRequest
	r.s.read(func(st *state) {
		out = sortedValues(st.refunds,
			func(rr domain.CourseRefundRequest) bool { return rr.UserID == userID },
			func(a, b domain.CourseRefundRequest) int { return cmp.Compare(b.ID, a.ID) })
	})
	return out, nil
}
