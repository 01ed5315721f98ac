package service

import (
	"time"

	"github.com/GlebRadaev/coursemart/internal/cache"
	"github.com/GlebRadaev/coursemart/internal/pricing"
	"github.com/GlebRadaev/coursemart/internal/repo"
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
	pkgauth "github.com/GlebRadaev/coursemart/pkg/auth"
	"github.com/GlebRadaev/coursemart/pkg/cipher"
)

type Options struct {
	Rates             pricing.Rates
	TokenTTL          time.Duration
	IdempotencyWindow time.Duration
	Hash              pkgauth.HashServiceInterface
	JWT               pkgauth.JWTServiceInterface
	Codec             cipher.Codec
	// Cache may be nil; the catalog is then read straight from the store.
	Cache catalogservice.Cache
}

type Services struct {
	AuthService        *authservice.Service
	ActivityService    *activityservice.Service
	CatalogService     *catalogservice.Service
	CartService        *cartservice.Service
	PromoService       *promoservice.Service
	TenderService      *tenderservice.Service
	EntitlementService *entitlementservice.Service
	LessonService      *lessonservice.Service
	LedgerService      *ledgerservice.Service
	ReceiptService     *receiptservice.Service
	CheckoutService    *checkoutservice.Service
	RefundService      *refundservice.Service
	OrderService       *orderservice.Service
	WalletService      *walletservice.Service
}

func New(repo *repo.Repositories, opts Options) *Services {
	if opts.Cache == nil {
		opts.Cache = cache.New(nil, "", 0)
	}

	activityService := activityservice.New(repo.Activity)
	catalogService := catalogservice.New(repo.Catalog, opts.Cache, repo.TxManager, activityService)
	entitlementService := entitlementservice.New(repo.Purchases)
	ledgerService := ledgerservice.New(repo.Ledger, repo.TxManager, activityService)
	receiptService := receiptservice.New(repo.Receipts, repo.Ledger, repo.Orders)
	tenderService := tenderservice.New(repo.Users, repo.Balances, repo.Cards, repo.Tenders, opts.IdempotencyWindow)
	promoService := promoservice.New(repo.Promotions, repo.Carts, repo.Catalog, repo.TxManager, activityService, opts.Rates)

	checkoutService := checkoutservice.New(checkoutservice.Deps{
		Carts:      repo.Carts,
		Courses:    repo.Catalog,
		Addresses:  repo.Users,
		Orders:     repo.Orders,
		Purchases:  repo.Purchases,
		Promotions: promoService,
		Tender:     tenderService,
		Receipts:   receiptService,
		Ledger:     ledgerService,
		Activity:   activityService,
		TxManager:  repo.TxManager,
	}, opts.Rates)

	refundService := refundservice.New(refundservice.Deps{
		Orders:    repo.Orders,
		Purchases: repo.Purchases,
		Refunds:   repo.Refunds,
		Receipts:  receiptService,
		Tender:    tenderService,
		Ledger:    ledgerService,
		Activity:  activityService,
		TxManager: repo.TxManager,
	})

	return &Services{
		AuthService:        authservice.New(repo.Users, repo.TxManager, activityService, opts.Hash, opts.JWT, opts.TokenTTL),
		ActivityService:    activityService,
		CatalogService:     catalogService,
		CartService:        cartservice.New(repo.Carts, repo.Catalog, entitlementService, repo.TxManager, opts.Rates),
		PromoService:       promoService,
		TenderService:      tenderService,
		EntitlementService: entitlementService,
		LessonService:      lessonservice.New(repo.Lessons, repo.Notifications, entitlementService, repo.TxManager, activityService),
		LedgerService:      ledgerService,
		ReceiptService:     receiptService,
		CheckoutService:    checkoutService,
		RefundService:      refundService,
		OrderService:       orderservice.New(repo.Orders),
		WalletService:      walletservice.New(repo.Users, repo.Balances, repo.Cards, repo.TxManager, activityService, opts.Codec),
	}
}
