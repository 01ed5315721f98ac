package cart

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/coursemart/internal/dto"
	"github.com/GlebRadaev/coursemart/internal/service/cartservice"
	"github.com/GlebRadaev/coursemart/pkg/auth"
	"github.com/GlebRadaev/coursemart/pkg/utils"
)

type Service interface {
	Get(ctx context.Context, userID int64) (*cartservice.View, error)
	Add(ctx context.Context, userID, courseID int64, quantity int) (*cartservice.View, error)
	UpdateQuantity(ctx context.Context, userID, lineID int64, quantity int) (*cartservice.View, error)
	Remove(ctx context.Context, userID, lineID int64) (*cartservice.View, error)
	RefreshPrices(ctx context.Context, userID int64) (*cartservice.View, error)
}

type CartHandler struct {
	cartService Service
}

func New(cartService Service) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// Get godoc
//
//	@Summary		Get the cart
//	@Description	Lines at their captured prices with delivery, VAT and total.
//	@Tags			Cart
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.CartResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/cart [get]
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	view, err := h.cartService.Get(r.Context(), userID)
	respond(w, http.StatusOK, view, err)
}

// Add godoc
//
//	@Summary	Add a course to the cart
//	@Tags		Cart
//	@Accept		json
//	@Produce	json
//	@Param		request	body	dto.CartAddRequestDTO	true	"Course and quantity"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.CartResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid request body"
//	@Failure	404	{object}	utils.Response	"Course not found"
//	@Failure	409	{object}	utils.Response	"Course unavailable or already purchased"
//	@Failure	422	{object}	utils.Response	"Invalid quantity"
//	@Router		/api/user/cart [post]
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	var req dto.CartAddRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	view, err := h.cartService.Add(r.Context(), userID, req.CourseID, req.Quantity)
	respond(w, http.StatusOK, view, err)
}

// UpdateLine godoc
//
//	@Summary	Change the quantity of a cart line
//	@Tags		Cart
//	@Accept		json
//	@Produce	json
//	@Param		id		path	int							true	"Cart line id"
//	@Param		request	body	dto.CartUpdateRequestDTO	true	"New quantity"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.CartResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid request"
//	@Failure	404	{object}	utils.Response	"Line not found"
//	@Router		/api/user/cart/lines/{id} [put]
func (h *CartHandler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	lineID, err := utils.PathID(r, "id")
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	var req dto.CartUpdateRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	view, err := h.cartService.UpdateQuantity(r.Context(), userID, lineID, req.Quantity)
	respond(w, http.StatusOK, view, err)
}

// RemoveLine godoc
//
//	@Summary	Remove a cart line
//	@Tags		Cart
//	@Produce	json
//	@Param		id	path	int	true	"Cart line id"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.CartResponseDTO
//	@Failure	404	{object}	utils.Response	"Line not found"
//	@Router		/api/user/cart/lines/{id} [delete]
func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	lineID, err := utils.PathID(r, "id")
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	view, err := h.cartService.Remove(r.Context(), userID, lineID)
	respond(w, http.StatusOK, view, err)
}

// Refresh godoc
//
//	@Summary		Re-capture catalog prices
//	@Description	Replaces every captured unit price with the current effective price.
//	@Tags			Cart
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.CartResponseDTO
//	@Router			/api/user/cart/refresh [post]
func (h *CartHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	view, err := h.cartService.RefreshPrices(r.Context(), userID)
	respond(w, http.StatusOK, view, err)
}

func respond(w http.ResponseWriter, status int, view *cartservice.View, err error) {
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, status, dto.FromCart(view.Cart, view.Quote))
}
