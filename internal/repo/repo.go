package repo

import (
	"context"
	"time"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/pg"
	activityrepo "github.com/GlebRadaev/coursemart/internal/repo/activity-repo"
	balancerepo "github.com/GlebRadaev/coursemart/internal/repo/balance-repo"
	cardrepo "github.com/GlebRadaev/coursemart/internal/repo/card-repo"
	cartrepo "github.com/GlebRadaev/coursemart/internal/repo/cart-repo"
	catalogrepo "github.com/GlebRadaev/coursemart/internal/repo/catalog-repo"
	ledgerrepo "github.com/GlebRadaev/coursemart/internal/repo/ledger-repo"
	lessonrepo "github.com/GlebRadaev/coursemart/internal/repo/lesson-repo"
	"github.com/GlebRadaev/coursemart/internal/repo/memory"
	notificationrepo "github.com/GlebRadaev/coursemart/internal/repo/notification-repo"
	orderrepo "github.com/GlebRadaev/coursemart/internal/repo/order-repo"
	promorepo "github.com/GlebRadaev/coursemart/internal/repo/promo-repo"
	purchaserepo "github.com/GlebRadaev/coursemart/internal/repo/purchase-repo"
	receiptrepo "github.com/GlebRadaev/coursemart/internal/repo/receipt-repo"
	refundrepo "github.com/GlebRadaev/coursemart/internal/repo/refund-repo"
	tenderrepo "github.com/GlebRadaev/coursemart/internal/repo/tender-repo"
	userrepo "github.com/GlebRadaev/coursemart/internal/repo/user-repo"
	"github.com/GlebRadaev/coursemart/internal/service/activityservice"
	"github.com/GlebRadaev/coursemart/internal/service/authservice"
	"github.com/GlebRadaev/coursemart/internal/service/cartservice"
	"github.com/GlebRadaev/coursemart/internal/service/catalogservice"
	"github.com/GlebRadaev/coursemart/internal/service/checkoutservice"
	"github.com/GlebRadaev/coursemart/internal/service/entitlementservice"
	"github.com/GlebRadaev/coursemart/internal/service/ledgerservice"
	"github.com/GlebRadaev/coursemart/internal/service/lessonservice"
	"github.com/GlebRadaev/coursemart/internal/service/orderservice"
	"github.com/GlebRadaev/coursemart/internal/service/promoservice"
	"github.com/GlebRadaev/coursemart/internal/service/receiptservice"
	"github.com/GlebRadaev/coursemart/internal/service/refundservice"
	"github.com/GlebRadaev/coursemart/internal/service/tenderservice"
	"github.com/GlebRadaev/coursemart/internal/service/walletservice"
)

// Each store is the union of what the services consume from one table group.

type UserStore interface {
	authservice.Repo
	walletservice.UserRepo
	tenderservice.UserRepo
	checkoutservice.AddressReader
}

type CardStore interface {
	walletservice.CardRepo
	tenderservice.CardRepo
}

type BalanceStore interface {
	walletservice.BalanceRepo
	tenderservice.BalanceTxRepo
}

type CatalogStore interface {
	catalogservice.Repo
}

type CartStore interface {
	cartservice.Repo
	checkoutservice.CartRepo
}

type OrderStore interface {
	orderservice.Repo
	checkoutservice.OrderRepo
	refundservice.OrderRepo
	receiptservice.OrderReader
	FindStaleCash(ctx context.Context, before time.Time, limit uint32) ([]domain.Order, error)
}

type PurchaseStore interface {
	entitlementservice.Repo
	checkoutservice.PurchaseRepo
	refundservice.PurchaseRepo
}

type LedgerStore interface {
	ledgerservice.Repo
	receiptservice.SequenceAllocator
}

type Repositories struct {
	TxManager     pg.TXManager
	Users         UserStore
	Cards         CardStore
	Balances      BalanceStore
	Activity      activityservice.Repo
	Catalog       CatalogStore
	Carts         CartStore
	Promotions    promoservice.Repo
	Orders        OrderStore
	Purchases     PurchaseStore
	Tenders       tenderservice.ResultRepo
	Refunds       refundservice.RefundRepo
	Ledger        LedgerStore
	Receipts      receiptservice.Repo
	Lessons       lessonservice.Repo
	Notifications lessonservice.NotificationRepo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		TxManager:     txManager,
		Users:         userrepo.New(conn),
		Cards:         cardrepo.New(conn),
		Balances:      balancerepo.New(conn),
		Activity:      activityrepo.New(conn),
		Catalog:       catalogrepo.New(conn),
		Carts:         cartrepo.New(conn),
		Promotions:    promorepo.New(conn),
		Orders:        orderrepo.New(conn),
		Purchases:     purchaserepo.New(conn),
		Tenders:       tenderrepo.New(conn),
		Refunds:       refundrepo.New(conn),
		Ledger:        ledgerrepo.New(conn),
		Receipts:      receiptrepo.New(conn),
		Lessons:       lessonrepo.New(conn),
		Notifications: notificationrepo.New(conn),
	}
}

// NewMemory backs every store with st. Used for demos and end-to-end tests.
func NewMemory(st *memory.Store) *Repositories {
	return &Repositories{
		TxManager:     st.TxManager(),
		Users:         st.Users(),
		Cards:         st.Cards(),
		Balances:      st.Balances(),
		Activity:      st.Activity(),
		Catalog:       st.Courses(),
		Carts:         st.Carts(),
		Promotions:    st.Promotions(),
		Orders:        st.Orders(),
		Purchases:     st.Purchases(),
		Tenders:       st.Tenders(),
		Refunds:       st.Refunds(),
		Ledger:        st.Ledger(),
		Receipts:      st.Receipts(),
		Lessons:       st.Lessons(),
		Notifications: st.Notifications(),
	}
}
