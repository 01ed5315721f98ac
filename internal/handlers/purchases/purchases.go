package purchases

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/dto"
	"github.com/GlebRadaev/coursemart/internal/service/lessonservice"
	"github.com/GlebRadaev/coursemart/pkg/auth"
	"github.com/GlebRadaev/coursemart/pkg/utils"
)

type PurchaseService interface {
	ListPurchases(ctx context.Context, userID int64) ([]domain.CoursePurchase, error)
}

type RefundService interface {
	RequestCourseRefund(ctx context.Context, actor domain.Actor, purchaseID int64, reason string) (*domain.CourseRefundRequest, error)
	ListOwnRefundRequests(ctx context.Context, actor domain.Actor) ([]domain.CourseRefundRequest, error)
}

type LessonService interface {
	ListLessons(ctx context.Context, actor domain.Actor, purchaseID int64) (*lessonservice.Progress, error)
	CompleteLesson(ctx context.Context, actor domain.Actor, purchaseID, lessonID int64, liked *bool, review string) (*domain.LessonCompletion, error)
	ListNotifications(ctx context.Context, userID int64) ([]domain.UserNotification, error)
	MarkNotificationRead(ctx context.Context, userID, id int64) error
}

type PurchaseHandler struct {
	purchaseService PurchaseService
	refundService   RefundService
	lessonService   LessonService
}

func New(purchaseService PurchaseService, refundService RefundService, lessonService LessonService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
		refundService:   refundService,
		lessonService:   lessonService,
	}
}

// ListPurchases godoc
//
//	@Summary	List purchased courses
//	@Tags		Purchases
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		dto.PurchaseResponseDTO
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Router		/api/user/purchases [get]
func (h *PurchaseHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	purchases, err := h.purchaseService.ListPurchases(r.Context(), userID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	response := make([]dto.PurchaseResponseDTO, 0, len(purchases))
	for _, p := range purchases {
		response = append(response, dto.FromPurchase(p))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// RequestRefund godoc
//
//	@Summary		Ask for a course refund
//	@Description	Creates a pending request that staff approve or reject.
//	@Tags			Purchases
//	@Accept			json
//	@Produce		json
//	@Param			id		path	int						true	"Purchase id"
//	@Param			request	body	dto.RefundRequestDTO	true	"Reason"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.RefundResponseDTO
//	@Failure		403	{object}	utils.Response	"Purchase belongs to another user"
//	@Failure		404	{object}	utils.Response	"Purchase not found"
//	@Failure		409	{object}	utils.Response	"Refund already processed"
//	@Router			/api/user/purchases/{id}/refund [post]
func (h *PurchaseHandler) RequestRefund(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	var req dto.RefundRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	rr, err := h.refundService.RequestCourseRefund(r.Context(), actor, id, req.Reason)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.FromRefund(*rr))
}

// ListRefunds godoc
//
//	@Summary	List the user's refund requests
//	@Tags		Purchases
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		dto.RefundResponseDTO
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Router		/api/user/refunds [get]
func (h *PurchaseHandler) ListRefunds(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	list, err := h.refundService.ListOwnRefundRequests(r.Context(), actor)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	response := make([]dto.RefundResponseDTO, 0, len(list))
	for _, rr := range list {
		response = append(response, dto.FromRefund(rr))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// ListLessons godoc
//
//	@Summary	Lessons of a purchased course with progress
//	@Tags		Lessons
//	@Produce	json
//	@Param		id	path	int	true	"Purchase id"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.ProgressResponseDTO
//	@Failure	403	{object}	utils.Response	"Course not accessible"
//	@Failure	404	{object}	utils.Response	"Purchase not found"
//	@Router		/api/user/purchases/{id}/lessons [get]
func (h *PurchaseHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	progress, err := h.lessonService.ListLessons(r.Context(), actor, id)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromProgress(*progress.Purchase, progress.Lessons, progress.Completions))
}

// CompleteLesson godoc
//
//	@Summary	Mark a lesson as completed
//	@Tags		Lessons
//	@Accept		json
//	@Produce	json
//	@Param		id			path	int							true	"Purchase id"
//	@Param		lessonID	path	int							true	"Lesson id"
//	@Param		request		body	dto.CompleteLessonRequestDTO	false	"Like and review"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.CompletionDTO
//	@Failure	403	{object}	utils.Response	"Course not accessible"
//	@Failure	404	{object}	utils.Response	"Lesson not found"
//	@Router		/api/user/purchases/{id}/lessons/{lessonID}/complete [post]
func (h *PurchaseHandler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	purchaseID, err := utils.PathID(r, "id")
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	lessonID, err := utils.PathID(r, "lessonID")
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	var req dto.CompleteLessonRequestDTO
	if r.ContentLength != 0 {
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondWithDomainError(w, err)
			return
		}
	}
	c, err := h.lessonService.CompleteLesson(r.Context(), actor, purchaseID, lessonID, req.Liked, req.Review)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromCompletion(*c))
}

// ListNotifications godoc
//
//	@Summary	Notifications for the user
//	@Tags		Lessons
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}		dto.NotificationResponseDTO
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Router		/api/user/notifications [get]
func (h *PurchaseHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	notes, err := h.lessonService.ListNotifications(r.Context(), userID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	response := make([]dto.NotificationResponseDTO, 0, len(notes))
	for _, n := range notes {
		response = append(response, dto.FromNotification(n))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// MarkRead godoc
//
//	@Summary	Mark a notification as read
//	@Tags		Lessons
//	@Param		id	path	int	true	"Notification id"
//	@Security	BearerAuth
//	@Success	204
//	@Failure	404	{object}	utils.Response	"Notification not found"
//	@Router		/api/user/notifications/{id}/read [post]
func (h *PurchaseHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	if err := h.lessonService.MarkNotificationRead(r.Context(), userID, id); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
