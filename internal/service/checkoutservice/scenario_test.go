package checkoutservice_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/money"
	"github.com/GlebRadaev/coursemart/internal/pricing"
	"github.com/GlebRadaev/coursemart/internal/repo/memory"
	"github.com/GlebRadaev/coursemart/internal/service/activityservice"
	"github.com/GlebRadaev/coursemart/internal/service/cartservice"
	"github.com/GlebRadaev/coursemart/internal/service/checkoutservice"
	"github.com/GlebRadaev/coursemart/internal/service/entitlementservice"
	"github.com/GlebRadaev/coursemart/internal/service/ledgerservice"
	"github.com/GlebRadaev/coursemart/internal/service/lessonservice"
	"github.com/GlebRadaev/coursemart/internal/service/promoservice"
	"github.com/GlebRadaev/coursemart/internal/service/receiptservice"
	"github.com/GlebRadaev/coursemart/internal/service/refundservice"
	"github.com/GlebRadaev/coursemart/internal/service/tenderservice"
)

var admin = domain.Actor{UserID: 100, Capabilities: []domain.Capability{domain.CapabilityAdmin}}

type shop struct {
	store        *memory.Store
	carts        *cartservice.Service
	entitlements *entitlementservice.Service
	ledger       *ledgerservice.Service
	receipts     *receiptservice.Service
	refunds      *refundservice.Service
	lessons      *lessonservice.Service
	newCheckout  func() *checkoutservice.Service
}

func newShop(t *testing.T) *shop {
	t.Helper()
	st := memory.New()
	tx := st.TxManager()
	rates := pricing.DefaultRates()

	activity := activityservice.New(st.Activity())
	entitlements := entitlementservice.New(st.Purchases())
	ledger := ledgerservice.New(st.Ledger(), tx, activity)
	receipts := receiptservice.New(st.Receipts(), st.Ledger(), st.Orders())
	promos := promoservice.New(st.Promotions(), st.Carts(), st.Courses(), tx, activity, rates)
	tender := tenderservice.New(st.Users(), st.Balances(), st.Cards(), st.Tenders(), time.Hour)

	return &shop{
		store:        st,
		carts:        cartservice.New(st.Carts(), st.Courses(), entitlements, tx, rates),
		entitlements: entitlements,
		ledger:       ledger,
		receipts:     receipts,
		refunds: refundservice.New(refundservice.Deps{
			Orders:    st.Orders(),
			Purchases: st.Purchases(),
			Refunds:   st.Refunds(),
			Receipts:  receipts,
			Tender:    tender,
			Ledger:    ledger,
			Activity:  activity,
			TxManager: tx,
		}),
		lessons: lessonservice.New(st.Lessons(), st.Notifications(), entitlements, tx, activity),
		newCheckout: func() *checkoutservice.Service {
			return checkoutservice.New(checkoutservice.Deps{
				Carts:      st.Carts(),
				Courses:    st.Courses(),
				Addresses:  st.Users(),
				Orders:     st.Orders(),
				Purchases:  st.Purchases(),
				Promotions: promos,
				Tender:     tender,
				Receipts:   receipts,
				Ledger:     ledger,
				Activity:   activity,
				TxManager:  tx,
			}, rates)
		},
	}
}

func (s *shop) user(t *testing.T, balance string) *domain.User {
	t.Helper()
	return s.store.AddUser(domain.User{Email: t.Name() + "@example.com", Name: "Buyer", Balance: money.MustParse(balance)})
}

// courseA costs 1000.00 with a 10% course discount, so it is captured at 900.00.
func (s *shop) courseA() *domain.Course {
	return s.store.AddCourse(domain.Course{
		Title:           "Course A",
		Slug:            "course-a",
		UnitPrice:       money.MustParse("1000.00"),
		DiscountPercent: decimal.NewFromInt(10),
		Available:       true,
	})
}

func (s *shop) save10(t *testing.T) {
	t.Helper()
	since := time.Now().AddDate(0, 0, -1)
	err := s.store.Promotions().Create(context.Background(), &domain.Promotion{
		Code:            "save10",
		DiscountPercent: decimal.NewFromInt(10),
		StartDate:       &since,
		Active:          true,
	})
	require.NoError(t, err)
}

func (s *shop) balanceOf(t *testing.T, userID int64) money.Money {
	t.Helper()
	u, err := s.store.Users().FindByID(context.Background(), userID)
	require.NoError(t, err)
	return u.Balance
}

func (s *shop) account(t *testing.T) *domain.OrganizationAccount {
	t.Helper()
	acct, err := s.ledger.Account(context.Background())
	require.NoError(t, err)
	return acct
}

func TestScenario_BalanceInsufficient(t *testing.T) {
	ctx := context.Background()
	s := newShop(t)
	u := s.user(t, "2000.00")
	a := s.courseA()

	view, err := s.carts.Add(ctx, u.ID, a.ID, 1)
	require.NoError(t, err)
	require.Len(t, view.Cart.Lines, 1)
	assert.Equal(t, "900.00", view.Cart.Lines[0].CapturedUnitPrice.String())
	assert.Equal(t, "2280.00", view.Quote.Total.String())

	_, err = s.newCheckout().Checkout(ctx, checkoutservice.Request{
		UserID: u.ID,
		Tender: tenderservice.Selection{Method: domain.PaymentBalance},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	assert.Equal(t, "2000.00", s.balanceOf(t, u.ID).String())
	orders, err := s.store.Orders().FindByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
	cart, err := s.store.Carts().FindByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Lines, 1, "failed checkout keeps the cart")
	assert.True(t, s.account(t).Balance.IsZero())
}

func checkoutWithPromo(t *testing.T, s *shop) (*domain.User, *domain.Course, int64) {
	t.Helper()
	ctx := context.Background()
	u := s.user(t, "3000.00")
	a := s.courseA()
	s.save10(t)

	_, err := s.carts.Add(ctx, u.ID, a.ID, 1)
	require.NoError(t, err)
	orderID, err := s.newCheckout().Checkout(ctx, checkoutservice.Request{
		UserID:         u.ID,
		PromoCode:      "Save10",
		Tender:         tenderservice.Selection{Method: domain.PaymentBalance},
		IdempotencyKey: "attempt-1",
	})
	require.NoError(t, err)
	return u, a, orderID
}

func TestScenario_BalanceWithPromo(t *testing.T) {
	ctx := context.Background()
	s := newShop(t)
	u, a, orderID := checkoutWithPromo(t, s)

	order, err := s.store.Orders().FindByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, order.Status)
	assert.True(t, order.PaidFromBalance)
	assert.Equal(t, "900.00", order.Subtotal.String())
	assert.Equal(t, "90.00", order.DiscountAmount.String())
	assert.Equal(t, "362.00", order.VATAmount.String())
	assert.Equal(t, "282.36", order.ProfitTaxAmount.String())
	assert.Equal(t, "2172.00", order.Total.String())
	assert.Equal(t, "20", order.VATRate.String())
	assert.Equal(t, "13", order.TaxRate.String())

	assert.Equal(t, "828.00", s.balanceOf(t, u.ID).String())
	acct := s.account(t)
	assert.Equal(t, "1889.64", acct.Balance.String())
	assert.Equal(t, "282.36", acct.TaxReserve.String())

	purchases, err := s.store.Purchases().ListByOrder(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, domain.PurchaseCompleted, purchases[0].Status)
	assert.Equal(t, "2172.00", purchases[0].Amount.String())
	entitled, err := s.entitlements.Entitled(ctx, u.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, entitled)

	usages := s.store.PromoUsages()
	require.Len(t, usages, 1)
	assert.Equal(t, u.ID, usages[0].UserID)
	assert.Equal(t, orderID, *usages[0].OrderID)

	rc, err := s.receipts.Get(ctx, domain.Actor{UserID: u.ID}, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReceiptExecuted, rc.Status)
	assert.Equal(t, int64(1), rc.SequenceNumber)

	cart, err := s.store.Carts().FindByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)

	again, err := s.newCheckout().Checkout(ctx, checkoutservice.Request{
		UserID:         u.ID,
		PromoCode:      "SAVE10",
		Tender:         tenderservice.Selection{Method: domain.PaymentBalance},
		IdempotencyKey: "attempt-1",
	})
	require.NoError(t, err)
	assert.Equal(t, orderID, again)
	assert.Equal(t, "828.00", s.balanceOf(t, u.ID).String())
}

func TestScenario_CashPath(t *testing.T) {
	ctx := context.Background()
	s := newShop(t)
	u := s.user(t, "0")
	a := s.courseA()

	_, err := s.carts.Add(ctx, u.ID, a.ID, 1)
	require.NoError(t, err)
	orderID, err := s.newCheckout().Checkout(ctx, checkoutservice.Request{
		UserID: u.ID,
		Tender: tenderservice.Selection{Method: domain.PaymentCash},
	})
	require.NoError(t, err)

	order, err := s.store.Orders().FindByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, order.Status)
	assert.False(t, order.PaidFromBalance)

	purchases, err := s.store.Purchases().ListByOrder(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, domain.PurchasePending, purchases[0].Status)

	entries, err := s.ledger.ListTransactions(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)

	rc, err := s.store.Receipts().FindByOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReceiptExecuted, rc.Status)

	entitled, err := s.entitlements.Entitled(ctx, u.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, entitled)
	owns, err := s.entitlements.Owns(ctx, u.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, owns, "a pending purchase blocks buying the course again")

	paid, err := s.refunds.ConfirmCashPayment(ctx, admin, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, paid.Status)

	entitled, err = s.entitlements.Entitled(ctx, u.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, entitled)
	acct := s.account(t)
	assert.Equal(t, "1983.60", acct.Balance.String())
	assert.Equal(t, "296.40", acct.TaxReserve.String())
	assert.Equal(t, "0.00", s.balanceOf(t, u.ID).String())

	_, err = s.refunds.ConfirmCashPayment(ctx, admin, orderID)
	assert.ErrorIs(t, err, domain.ErrOrderNotPending)
}

func TestScenario_Cancellation(t *testing.T) {
	ctx := context.Background()
	s := newShop(t)
	u, a, orderID := checkoutWithPromo(t, s)

	order, err := s.refunds.CancelOrder(ctx, domain.Actor{UserID: u.ID}, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, order.Status)
	assert.False(t, order.CanBeCancelled)

	assert.Equal(t, "3000.00", s.balanceOf(t, u.ID).String())
	acct := s.account(t)
	assert.True(t, acct.Balance.IsZero())
	assert.True(t, acct.TaxReserve.IsZero())

	sum, err := s.store.Balances().SumByOrder(ctx, orderID)
	require.NoError(t, err)
	assert.True(t, sum.IsZero(), "balance movements of the order net to zero, got %s", sum)

	entries, err := s.ledger.ListTransactions(ctx, 10)
	require.NoError(t, err)
	var net, tax money.Money
	for _, e := range entries {
		dBalance, dTax, err := ledgerservice.Delta(e.Type, e.Amount, e.TaxSplit)
		require.NoError(t, err)
		net, tax = net.Add(dBalance), tax.Add(dTax)
	}
	assert.True(t, net.IsZero())
	assert.True(t, tax.IsZero())

	purchases, err := s.store.Purchases().ListByOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseRefunded, purchases[0].Status)
	entitled, err := s.entitlements.Entitled(ctx, u.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, entitled)

	rc, err := s.store.Receipts().FindByOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReceiptAnnulled, rc.Status)

	assert.Len(t, s.store.PromoUsages(), 1, "consumed promos stay burnt")

	_, err = s.refunds.CancelOrder(ctx, domain.Actor{UserID: u.ID}, orderID)
	assert.ErrorIs(t, err, domain.ErrOrderNotCancellable)

	_, err = s.carts.Add(ctx, u.ID, a.ID, 1)
	require.NoError(t, err, "a refunded course can be bought again")
	_, err = s.newCheckout().Checkout(ctx, checkoutservice.Request{
		UserID:    u.ID,
		PromoCode: "SAVE10",
		Tender:    tenderservice.Selection{Method: domain.PaymentBalance},
	})
	assert.ErrorIs(t, err, domain.ErrPromoAlreadyUsed)
}

func TestScenario_SavedCardRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newShop(t)
	u := s.user(t, "0")
	a := s.courseA()
	card := &domain.SavedCard{
		UserID:    u.ID,
		Brand:     domain.CardVisa,
		LastFour:  "4242",
		Holder:    "BUYER",
		ExpMonth:  12,
		ExpYear:   time.Now().Year() + 2,
		Balance:   money.MustParse("5000.00"),
		IsDefault: true,
	}
	require.NoError(t, s.store.Cards().Create(ctx, card))
	cardBalance := func() string {
		t.Helper()
		c, err := s.store.Cards().FindCard(ctx, card.ID)
		require.NoError(t, err)
		return c.Balance.String()
	}

	_, err := s.carts.Add(ctx, u.ID, a.ID, 1)
	require.NoError(t, err)
	orderID, err := s.newCheckout().Checkout(ctx, checkoutservice.Request{
		UserID: u.ID,
		Tender: tenderservice.Selection{Method: domain.PaymentSavedCard, CardID: &card.ID},
	})
	require.NoError(t, err)

	order, err := s.store.Orders().FindByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, order.Status)
	require.NotNil(t, order.CardID)
	assert.Equal(t, card.ID, *order.CardID)
	assert.Equal(t, "2280.00", order.Total.String())
	assert.Equal(t, "2720.00", cardBalance())
	assert.Equal(t, "0.00", s.balanceOf(t, u.ID).String(), "the wallet is not touched")
	acct := s.account(t)
	assert.Equal(t, "1983.60", acct.Balance.String())
	assert.Equal(t, "296.40", acct.TaxReserve.String())

	_, err = s.refunds.CancelOrder(ctx, domain.Actor{UserID: u.ID}, orderID)
	require.NoError(t, err)

	assert.Equal(t, "5000.00", cardBalance())
	assert.Equal(t, "0.00", s.balanceOf(t, u.ID).String())
	acct = s.account(t)
	assert.Equal(t, "0.00", acct.Balance.String())
	assert.Equal(t, "0.00", acct.TaxReserve.String())

	txs, err := s.store.Cards().ListTransactions(ctx, card.ID)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, domain.CardDeposit, txs[0].Type)
	assert.Equal(t, domain.CardWithdrawal, txs[1].Type)
	for _, tx := range txs {
		assert.Equal(t, "2280.00", tx.Amount.String())
		require.NotNil(t, tx.OrderID)
		assert.Equal(t, orderID, *tx.OrderID)
	}

	rc, err := s.store.Receipts().FindByOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReceiptAnnulled, rc.Status)
}

func TestScenario_ConcurrentDoubleClick(t *testing.T) {
	ctx := context.Background()
	s := newShop(t)
	u := s.user(t, "5000.00")
	a := s.courseA()
	_, err := s.carts.Add(ctx, u.ID, a.ID, 1)
	require.NoError(t, err)

	// Separate services do not share a singleflight group, like two processes.
	services := []*checkoutservice.Service{s.newCheckout(), s.newCheckout(), s.newCheckout()}
	ids := make([]int64, len(services))
	errs := make([]error, len(services))
	var wg sync.WaitGroup
	for i, svc := range services {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[i], errs[i] = svc.Checkout(ctx, checkoutservice.Request{
				UserID:         u.ID,
				Tender:         tenderservice.Selection{Method: domain.PaymentBalance},
				IdempotencyKey: "double-click",
			})
		}()
	}
	wg.Wait()

	for i := range services {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	orders, err := s.store.Orders().FindByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, "2720.00", s.balanceOf(t, u.ID).String())
}

func TestScenario_LessonFeedback(t *testing.T) {
	ctx := context.Background()
	s := newShop(t)
	u := s.user(t, "5000.00")
	c := s.courseA()
	l1 := s.store.AddLesson(domain.Lesson{CourseID: c.ID, Title: "Intro", SortOrder: 1})

	_, err := s.carts.Add(ctx, u.ID, c.ID, 1)
	require.NoError(t, err)
	orderID, err := s.newCheckout().Checkout(ctx, checkoutservice.Request{
		UserID: u.ID,
		Tender: tenderservice.Selection{Method: domain.PaymentBalance},
	})
	require.NoError(t, err)
	purchases, err := s.store.Purchases().ListByOrder(ctx, orderID)
	require.NoError(t, err)
	purchaseID := purchases[0].ID

	buyer := domain.Actor{UserID: u.ID, Capabilities: []domain.Capability{domain.CapabilitySelf}}
	liked := true
	completion, err := s.lessons.CompleteLesson(ctx, buyer, purchaseID, l1.ID, &liked, "f**k this")
	require.NoError(t, err)
	assert.Equal(t, "f*** this", completion.ReviewText)

	_, err = s.lessons.AdminComment(ctx, admin, completion.ID, "Please rephrase")
	require.NoError(t, err)
	_, err = s.lessons.AdminComment(ctx, admin, completion.ID, "Please rephrase")
	require.NoError(t, err)

	notes, err := s.lessons.ListNotifications(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, completion.ID, *notes[0].CompletionID)

	_, err = s.lessons.AdminComment(ctx, admin, completion.ID, "Thanks for the feedback")
	require.NoError(t, err)
	notes, err = s.lessons.ListNotifications(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, notes, 2)
}

func TestScenario_CourseRefund(t *testing.T) {
	ctx := context.Background()
	s := newShop(t)
	u, a, orderID := checkoutWithPromo(t, s)
	buyer := domain.Actor{UserID: u.ID}

	purchases, err := s.store.Purchases().ListByOrder(ctx, orderID)
	require.NoError(t, err)
	p := purchases[0]

	rr, err := s.refunds.RequestCourseRefund(ctx, buyer, p.ID, "not what I expected")
	require.NoError(t, err)
	assert.Equal(t, domain.RefundPending, rr.Status)

	_, err = s.refunds.RequestCourseRefund(ctx, buyer, p.ID, "again")
	assert.ErrorIs(t, err, domain.ErrRefundAlreadyProcessed)

	_, err = s.refunds.ApproveCourseRefund(ctx, buyer, rr.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	approved, err := s.refunds.ApproveCourseRefund(ctx, admin, rr.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RefundApproved, approved.Status)
	assert.Equal(t, admin.UserID, *approved.ProcessedBy)

	assert.Equal(t, "3000.00", s.balanceOf(t, u.ID).String())
	acct := s.account(t)
	assert.True(t, acct.Balance.IsZero())
	assert.True(t, acct.TaxReserve.IsZero())

	entitled, err := s.entitlements.Entitled(ctx, u.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, entitled)

	_, err = s.refunds.CancelOrder(ctx, buyer, orderID)
	assert.ErrorIs(t, err, domain.ErrOrderNotCancellable, "a refunded order cannot pay out twice")

	_, err = s.refunds.ApproveCourseRefund(ctx, admin, rr.ID)
	assert.ErrorIs(t, err, domain.ErrRefundAlreadyProcessed)
}

func TestScenario_CourseUnavailableRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newShop(t)
	u := s.user(t, "5000.00")
	a := s.courseA()
	_, err := s.carts.Add(ctx, u.ID, a.ID, 1)
	require.NoError(t, err)
	s.store.SetAvailable(a.ID, false)

	_, err = s.newCheckout().Checkout(ctx, checkoutservice.Request{
		UserID: u.ID,
		Tender: tenderservice.Selection{Method: domain.PaymentBalance},
	})
	require.ErrorIs(t, err, domain.ErrCourseUnavailable)
	assert.Equal(t, "5000.00", s.balanceOf(t, u.ID).String())
	activity, err := s.store.Activity().List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, activity)
}

func TestScenario_EmptyCart(t *testing.T) {
	s := newShop(t)
	u := s.user(t, "100.00")
	_, err := s.newCheckout().Checkout(context.Background(), checkoutservice.Request{
		UserID: u.ID,
		Tender: tenderservice.Selection{Method: domain.PaymentBalance},
	})
	assert.ErrorIs(t, err, domain.ErrCartEmpty)
}
