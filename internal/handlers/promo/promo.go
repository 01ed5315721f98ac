package promo

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/dto"
	"github.com/GlebRadaev/coursemart/internal/service/promoservice"
	"github.com/GlebRadaev/coursemart/pkg/auth"
	"github.com/GlebRadaev/coursemart/pkg/utils"
)

type Service interface {
	Estimate(ctx context.Context, userID int64, code string, courseID *int64) (*promoservice.Estimate, error)
	Available(ctx context.Context, userID int64) ([]domain.Promotion, error)
}

type PromoHandler struct {
	promoService Service
}

func New(promoService Service) *PromoHandler {
	return &PromoHandler{
		promoService: promoService,
	}
}

// Validate godoc
//
//	@Summary		Check a promo code
//	@Description	Validates the code for the user and estimates the discount on the cart, or on a single course when course_id is given.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.PromoValidateRequestDTO	true	"Promo code"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.PromoEstimateResponseDTO
//	@Failure		404	{object}	utils.Response	"Promo code not found"
//	@Failure		409	{object}	utils.Response	"Promo code already used or cart empty"
//	@Failure		422	{object}	utils.Response	"Promo code inactive or expired"
//	@Router			/api/user/promo/validate [post]
func (h *PromoHandler) Validate(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	var req dto.PromoValidateRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	est, err := h.promoService.Estimate(r.Context(), userID, req.Code, req.CourseID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromEstimate(est.Code, est.DiscountPercent, est.Subtotal, est.DiscountAmount, est.Total))
}

// Available godoc
//
//	@Summary		Promotions the user can still redeem
//	@Description	Active promotions valid today that the user has not used yet.
//	@Tags			Cart
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		dto.PromotionResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Router			/api/user/promotions/available [get]
func (h *PromoHandler) Available(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	promos, err := h.promoService.Available(r.Context(), userID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	response := make([]dto.PromotionResponseDTO, 0, len(promos))
	for _, p := range promos {
		response = append(response, dto.FromPromotion(p))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
