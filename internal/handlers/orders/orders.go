package orders

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/dto"
	"github.com/GlebRadaev/coursemart/internal/service/checkoutservice"
	"github.com/GlebRadaev/coursemart/internal/service/tenderservice"
	"github.com/GlebRadaev/coursemart/pkg/auth"
	"github.com/GlebRadaev/coursemart/pkg/utils"
)

const IdempotencyHeader = "Idempotency-Key"

type CheckoutService interface {
	Checkout(ctx context.Context, req checkoutservice.Request) (int64, error)
}

type Service interface {
	GetOrders(ctx context.Context, userID int64) ([]domain.Order, error)
	GetOrder(ctx context.Context, actor domain.Actor, id int64) (*domain.Order, error)
}

type CancelService interface {
	CancelOrder(ctx context.Context, actor domain.Actor, orderID int64) (*domain.Order, error)
}

type ReceiptService interface {
	Get(ctx context.Context, actor domain.Actor, orderID int64) (*domain.Receipt, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Receipt, error)
}

type OrderHandler struct {
	checkoutService CheckoutService
	orderService    Service
	cancelService   CancelService
	receiptService  ReceiptService
}

func New(checkoutService CheckoutService, orderService Service, cancelService CancelService, receiptService ReceiptService) *OrderHandler {
	return &OrderHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
		cancelService:   cancelService,
		receiptService:  receiptService,
	}
}

// Checkout godoc
//
//	@Summary		Place an order from the cart
//	@Description	Prices the cart, applies an optional promo code and pays with the chosen tender in one transaction.
//	@Description	Cash orders stay in processing until staff confirm payment.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			Idempotency-Key	header	string					false	"Repeated keys return the original order"
//	@Param			request			body	dto.CheckoutRequestDTO	true	"Checkout request"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.CheckoutResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request body"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		402	{object}	utils.Response	"Insufficient funds"
//	@Failure		403	{object}	utils.Response	"Card does not belong to the user"
//	@Failure		409	{object}	utils.Response	"Cart empty or modified, promo already used"
//	@Failure		422	{object}	utils.Response	"Invalid promo code, card expired"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/orders [post]
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	var req dto.CheckoutRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	orderID, err := h.checkoutService.Checkout(r.Context(), checkoutservice.Request{
		UserID:    userID,
		AddressID: req.AddressID,
		PromoCode: req.PromoCode,
		Tender: tenderservice.Selection{
			Method: domain.PaymentMethod(req.PaymentMethod),
			CardID: req.CardID,
		},
		IdempotencyKey: r.Header.Get(IdempotencyHeader),
	})
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.CheckoutResponseDTO{OrderID: orderID})
}

// GetOrders godoc
//
//	@Summary		Get orders list for user
//	@Description	Retrieve the orders of the authorized user, newest first
//	@Tags			Orders
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.OrderResponseDTO
//	@Success		204	{object}	utils.Response	"No data available"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/orders [get]
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	orders, err := h.orderService.GetOrders(r.Context(), userID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}

	if len(orders) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No data available")
		return
	}

	response := make([]dto.OrderResponseDTO, 0, len(orders))
	for _, order := range orders {
		response = append(response, dto.FromOrder(order))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetOrder godoc
//
//	@Summary	Get one order with its items
//	@Tags		Orders
//	@Produce	json
//	@Param		id	path	int	true	"Order id"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.OrderResponseDTO
//	@Failure	403	{object}	utils.Response	"Order belongs to another user"
//	@Failure	404	{object}	utils.Response	"Order not found"
//	@Router		/api/user/orders/{id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	order, err := h.orderService.GetOrder(r.Context(), actor, id)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromOrder(*order))
}

// Cancel godoc
//
//	@Summary		Cancel an order
//	@Description	Annuls the receipt, refunds the tender and revokes the purchased courses.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path	int	true	"Order id"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		403	{object}	utils.Response	"Order belongs to another user"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		409	{object}	utils.Response	"Order cannot be cancelled"
//	@Router			/api/user/orders/{id}/cancel [post]
//	@Router			/api/admin/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	order, err := h.cancelService.CancelOrder(r.Context(), actor, id)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromOrder(*order))
}

// GetReceipt godoc
//
//	@Summary	Get the receipt of an order
//	@Tags		Orders
//	@Produce	json
//	@Param		id	path	int	true	"Order id"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.ReceiptResponseDTO
//	@Failure	403	{object}	utils.Response	"Order belongs to another user"
//	@Failure	404	{object}	utils.Response	"Receipt not found"
//	@Router		/api/user/orders/{id}/receipt [get]
func (h *OrderHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	rc, err := h.receiptService.Get(r.Context(), actor, id)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromReceipt(*rc))
}

// ListReceipts godoc
//
//	@Summary	List the user's receipts
//	@Tags		Orders
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		dto.ReceiptResponseDTO
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Router		/api/user/receipts [get]
func (h *OrderHandler) ListReceipts(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	receipts, err := h.receiptService.ListForUser(r.Context(), userID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	response := make([]dto.ReceiptResponseDTO, 0, len(receipts))
	for _, rc := range receipts {
		response = append(response, dto.FromReceipt(rc))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
