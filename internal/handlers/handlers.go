package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/coursemart/docs"
	"github.com/GlebRadaev/coursemart/internal/domain"
	adminhandlers "github.com/GlebRadaev/coursemart/internal/handlers/admin"
	authhandlers "github.com/GlebRadaev/coursemart/internal/handlers/auth"
	balancehandlers "github.com/GlebRadaev/coursemart/internal/handlers/balance"
	carthandlers "github.com/GlebRadaev/coursemart/internal/handlers/cart"
	cataloghandlers "github.com/GlebRadaev/coursemart/internal/handlers/catalog"
	ordershandlers "github.com/GlebRadaev/coursemart/internal/handlers/orders"
	promohandlers "github.com/GlebRadaev/coursemart/internal/handlers/promo"
	purchasehandlers "github.com/GlebRadaev/coursemart/internal/handlers/purchases"
	"github.com/GlebRadaev/coursemart/internal/service"
	"github.com/GlebRadaev/coursemart/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	AddAddress(w http.ResponseWriter, r *http.Request)
	ListAddresses(w http.ResponseWriter, r *http.Request)
}

type CatalogHandler interface {
	ListCourses(w http.ResponseWriter, r *http.Request)
	GetCourse(w http.ResponseWriter, r *http.Request)
	ListCategories(w http.ResponseWriter, r *http.Request)
}

type CartHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Add(w http.ResponseWriter, r *http.Request)
	UpdateLine(w http.ResponseWriter, r *http.Request)
	RemoveLine(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
}

type PromoHandler interface {
	Validate(w http.ResponseWriter, r *http.Request)
	Available(w http.ResponseWriter, r *http.Request)
}

type OrderHandler interface {
	Checkout(w http.ResponseWriter, r *http.Request)
	GetOrders(w http.ResponseWriter, r *http.Request)
	GetOrder(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	GetReceipt(w http.ResponseWriter, r *http.Request)
	ListReceipts(w http.ResponseWriter, r *http.Request)
}

type PurchaseHandler interface {
	ListPurchases(w http.ResponseWriter, r *http.Request)
	RequestRefund(w http.ResponseWriter, r *http.Request)
	ListRefunds(w http.ResponseWriter, r *http.Request)
	ListLessons(w http.ResponseWriter, r *http.Request)
	CompleteLesson(w http.ResponseWriter, r *http.Request)
	ListNotifications(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	Deposit(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	ListCards(w http.ResponseWriter, r *http.Request)
	AddCard(w http.ResponseWriter, r *http.Request)
	DeleteCard(w http.ResponseWriter, r *http.Request)
	SetDefaultCard(w http.ResponseWriter, r *http.Request)
	TopUpCard(w http.ResponseWriter, r *http.Request)
	CardTransactions(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	ConfirmPayment(w http.ResponseWriter, r *http.Request)
	ListRefunds(w http.ResponseWriter, r *http.Request)
	ApproveRefund(w http.ResponseWriter, r *http.Request)
	RejectRefund(w http.ResponseWriter, r *http.Request)
	Comment(w http.ResponseWriter, r *http.Request)
	GetLedger(w http.ResponseWriter, r *http.Request)
	LedgerOperation(w http.ResponseWriter, r *http.Request)
	ListPromotions(w http.ResponseWriter, r *http.Request)
	CreatePromotion(w http.ResponseWriter, r *http.Request)
	ListActivity(w http.ResponseWriter, r *http.Request)
	BlockUser(w http.ResponseWriter, r *http.Request)
	CreateCourse(w http.ResponseWriter, r *http.Request)
	UpdateCourse(w http.ResponseWriter, r *http.Request)
	CreateCategory(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler     AuthHandler
	CatalogHandler  CatalogHandler
	CartHandler     CartHandler
	PromoHandler    PromoHandler
	OrderHandler    OrderHandler
	PurchaseHandler PurchaseHandler
	BalanceHandler  BalanceHandler
	AdminHandler    AdminHandler
	Middleware      *auth.Middleware
}

func New(s *service.Services, jwtService auth.JWTServiceInterface) *Handlers {
	return &Handlers{
		AuthHandler:     authhandlers.New(s.AuthService),
		CatalogHandler:  cataloghandlers.New(s.CatalogService),
		CartHandler:     carthandlers.New(s.CartService),
		PromoHandler:    promohandlers.New(s.PromoService),
		OrderHandler:    ordershandlers.New(s.CheckoutService, s.OrderService, s.RefundService, s.ReceiptService),
		PurchaseHandler: purchasehandlers.New(s.EntitlementService, s.RefundService, s.LessonService),
		BalanceHandler:  balancehandlers.New(s.WalletService),
		AdminHandler: adminhandlers.New(adminhandlers.Services{
			Refunds:  s.RefundService,
			Comments: s.LessonService,
			Ledger:   s.LedgerService,
			Promos:   s.PromoService,
			Activity: s.ActivityService,
			Users:    s.AuthService,
			Catalog:  s.CatalogService,
		}),
		Middleware: auth.NewMiddleware(jwtService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/catalog", func(r chi.Router) {
		r.Get("/courses", h.CatalogHandler.ListCourses)
		r.Get("/courses/{id}", h.CatalogHandler.GetCourse)
		r.Get("/categories", h.CatalogHandler.ListCategories)
	})

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(h.Middleware.AuthMiddleware)
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.CartHandler.Get)
				r.Post("/", h.CartHandler.Add)
				r.Put("/lines/{id}", h.CartHandler.UpdateLine)
				r.Delete("/lines/{id}", h.CartHandler.RemoveLine)
				r.Post("/refresh", h.CartHandler.Refresh)
			})
			r.Post("/promo/validate", h.PromoHandler.Validate)
			r.Get("/promotions/available", h.PromoHandler.Available)
			r.Route("/orders", func(r chi.Router) {
				r.Post("/", h.OrderHandler.Checkout)
				r.Get("/", h.OrderHandler.GetOrders)
				r.Get("/{id}", h.OrderHandler.GetOrder)
				r.Post("/{id}/cancel", h.OrderHandler.Cancel)
				r.Get("/{id}/receipt", h.OrderHandler.GetReceipt)
			})
			r.Get("/receipts", h.OrderHandler.ListReceipts)
			r.Get("/refunds", h.PurchaseHandler.ListRefunds)
			r.Route("/purchases", func(r chi.Router) {
				r.Get("/", h.PurchaseHandler.ListPurchases)
				r.Post("/{id}/refund", h.PurchaseHandler.RequestRefund)
				r.Get("/{id}/lessons", h.PurchaseHandler.ListLessons)
				r.Post("/{id}/lessons/{lessonID}/complete", h.PurchaseHandler.CompleteLesson)
			})
			r.Get("/notifications", h.PurchaseHandler.ListNotifications)
			r.Post("/notifications/{id}/read", h.PurchaseHandler.MarkRead)
			r.Route("/balance", func(r chi.Router) {
				r.Get("/", h.BalanceHandler.GetBalance)
				r.Post("/deposit", h.BalanceHandler.Deposit)
				r.Post("/withdraw", h.BalanceHandler.Withdraw)
			})
			r.Route("/cards", func(r chi.Router) {
				r.Get("/", h.BalanceHandler.ListCards)
				r.Post("/", h.BalanceHandler.AddCard)
				r.Delete("/{id}", h.BalanceHandler.DeleteCard)
				r.Post("/{id}/default", h.BalanceHandler.SetDefaultCard)
				r.Post("/{id}/topup", h.BalanceHandler.TopUpCard)
				r.Get("/{id}/transactions", h.BalanceHandler.CardTransactions)
			})
			r.Get("/addresses", h.AuthHandler.ListAddresses)
			r.Post("/addresses", h.AuthHandler.AddAddress)
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(h.Middleware.AuthMiddleware)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireCapability(domain.CapabilityAdmin, domain.CapabilityManager))
			r.Post("/orders/{id}/confirm-payment", h.AdminHandler.ConfirmPayment)
			r.Post("/completions/{id}/comment", h.AdminHandler.Comment)
			r.Post("/courses", h.AdminHandler.CreateCourse)
			r.Put("/courses/{id}", h.AdminHandler.UpdateCourse)
			r.Post("/categories", h.AdminHandler.CreateCategory)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireCapability(domain.CapabilityAdmin))
			r.Post("/orders/{id}/cancel", h.OrderHandler.Cancel)
			r.Get("/refunds", h.AdminHandler.ListRefunds)
			r.Post("/refunds/{id}/approve", h.AdminHandler.ApproveRefund)
			r.Post("/refunds/{id}/reject", h.AdminHandler.RejectRefund)
			r.Get("/ledger", h.AdminHandler.GetLedger)
			r.Post("/ledger/ops", h.AdminHandler.LedgerOperation)
			r.Get("/promotions", h.AdminHandler.ListPromotions)
			r.Post("/promotions", h.AdminHandler.CreatePromotion)
			r.Get("/activity", h.AdminHandler.ListActivity)
			r.Post("/users/{id}/block", h.AdminHandler.BlockUser)
		})
	})

	return r
}
