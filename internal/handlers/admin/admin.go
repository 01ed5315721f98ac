package admin

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/dto"
	"github.com/GlebRadaev/coursemart/internal/money"
	"github.com/GlebRadaev/coursemart/internal/service/catalogservice"
	"github.com/GlebRadaev/coursemart/internal/service/promoservice"
	"github.com/GlebRadaev/coursemart/pkg/auth"
	"github.com/GlebRadaev/coursemart/pkg/utils"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

type RefundService interface {
	ConfirmCashPayment(ctx context.Context, actor domain.Actor, orderID int64) (*domain.Order, error)
	ListRefundRequests(ctx context.Context, actor domain.Actor, status domain.RefundStatus) ([]domain.CourseRefundRequest, error)
	ApproveCourseRefund(ctx context.Context, actor domain.Actor, refundID int64) (*domain.CourseRefundRequest, error)
	RejectCourseRefund(ctx context.Context, actor domain.Actor, refundID int64) (*domain.CourseRefundRequest, error)
}

type CommentService interface {
	AdminComment(ctx context.Context, actor domain.Actor, completionID int64, text string) (*domain.LessonCompletion, error)
}

type LedgerService interface {
	Account(ctx context.Context) (*domain.OrganizationAccount, error)
	ListTransactions(ctx context.Context, limit int) ([]domain.OrganizationTransaction, error)
	Operate(ctx context.Context, actor domain.Actor, kind domain.LedgerType, amount money.Money, memo string) (*domain.OrganizationTransaction, error)
}

type PromoService interface {
	List(ctx context.Context) ([]domain.Promotion, error)
	Create(ctx context.Context, actor domain.Actor, in promoservice.NewPromotion) (*domain.Promotion, error)
}

type ActivityService interface {
	List(ctx context.Context, limit int) ([]domain.ActivityEntry, error)
}

type UserService interface {
	SetBlocked(ctx context.Context, actor domain.Actor, userID int64, blocked bool) error
}

type CatalogService interface {
	CreateCourse(ctx context.Context, actor domain.Actor, in catalogservice.CourseInput) (*domain.Course, error)
	UpdateCourse(ctx context.Context, actor domain.Actor, id int64, in catalogservice.CourseInput) (*domain.Course, error)
	CreateCategory(ctx context.Context, actor domain.Actor, name, slug string) (*domain.Category, error)
}

// Services groups the back-office collaborators.
type Services struct {
	Refunds  RefundService
	Comments CommentService
	Ledger   LedgerService
	Promos   PromoService
	Activity ActivityService
	Users    UserService
	Catalog  CatalogService
}

type AdminHandler struct {
	svc Services
}

func New(svc Services) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// ConfirmPayment godoc
//
//	@Summary		Confirm a cash payment
//	@Description	Marks a processing cash order as paid and records it on the ledger.
//	@Tags			Admin
//	@Produce		json
//	@Param			id	path	int	true	"Order id"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.OrderResponseDTO
//	@Failure		403	{object}	utils.Response	"Not staff"
//	@Failure		409	{object}	utils.Response	"Order is not awaiting payment"
//	@Router			/api/admin/orders/{id}/confirm-payment [post]
func (h *AdminHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	order, err := h.svc.Refunds.ConfirmCashPayment(r.Context(), actor, id)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromOrder(*order))
}

// ListRefunds godoc
//
//	@Summary	List course refund requests
//	@Tags		Admin
//	@Produce	json
//	@Param		status	query	string	false	"pending, approved or rejected"
//	@Security	BearerAuth
//	@Success	200	{array}		dto.RefundResponseDTO
//	@Failure	400	{object}	utils.Response	"Unknown status"
//	@Failure	403	{object}	utils.Response	"Not staff"
//	@Router		/api/admin/refunds [get]
func (h *AdminHandler) ListRefunds(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	status := domain.RefundStatus(r.URL.Query().Get("status"))
	switch status {
	case "", domain.RefundPending, domain.RefundApproved, domain.RefundRejected:
	default:
		utils.RespondWithDomainError(w, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status))
		return
	}
	list, err := h.svc.Refunds.ListRefundRequests(r.Context(), actor, status)
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

// ApproveRefund godoc
//
//	@Summary		Approve a course refund
//	@Description	Refunds the purchase amount to the buyer and debits the ledger.
//	@Tags			Admin
//	@Produce		json
//	@Param			id	path	int	true	"Refund request id"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.RefundResponseDTO
//	@Failure		409	{object}	utils.Response	"Already processed or ledger would go negative"
//	@Router			/api/admin/refunds/{id}/approve [post]
func (h *AdminHandler) ApproveRefund(w http.ResponseWriter, r *http.Request) {
	h.resolveRefund(w, r, h.svc.Refunds.ApproveCourseRefund)
}

// RejectRefund godoc
//
//	@Summary	Reject a course refund
//	@Tags		Admin
//	@Produce	json
//	@Param		id	path	int	true	"Refund request id"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.RefundResponseDTO
//	@Failure	409	{object}	utils.Response	"Already processed"
//	@Router		/api/admin/refunds/{id}/reject [post]
func (h *AdminHandler) RejectRefund(w http.ResponseWriter, r *http.Request) {
	h.resolveRefund(w, r, h.svc.Refunds.RejectCourseRefund)
}

func (h *AdminHandler) resolveRefund(w http.ResponseWriter, r *http.Request, resolve func(context.Context, domain.Actor, int64) (*domain.CourseRefundRequest, error)) {
	actor, _ := auth.ActorFromContext(r.Context())

	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	rr, err := resolve(r.Context(), actor, id)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromRefund(*rr))
}

// Comment godoc
//
//	@Summary		Comment on a lesson completion
//	@Description	The learner is notified when the comment changes.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path	int						true	"Completion id"
//	@Param			request	body	dto.CommentRequestDTO	true	"Comment"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.CompletionDTO
//	@Failure		404	{object}	utils.Response	"Completion not found"
//	@Router			/api/admin/completions/{id}/comment [post]
func (h *AdminHandler) Comment(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	var req dto.CommentRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	c, err := h.svc.Comments.AdminComment(r.Context(), actor, id, req.Text)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromCompletion(*c))
}

// GetLedger godoc
//
//	@Summary	Organization balance, tax reserve and latest movements
//	@Tags		Admin
//	@Produce	json
//	@Param		limit	query	int	false	"Number of movements, 50 by default"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.LedgerResponseDTO
//	@Router		/api/admin/ledger [get]
func (h *AdminHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	account, err := h.svc.Ledger.Account(r.Context())
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	txs, err := h.svc.Ledger.ListTransactions(r.Context(), limit)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	response := dto.LedgerResponseDTO{
		Balance:      account.Balance,
		TaxReserve:   account.TaxReserve,
		Transactions: make([]dto.LedgerTransactionDTO, 0, len(txs)),
	}
	for _, t := range txs {
		response.Transactions = append(response.Transactions, dto.FromLedgerTransaction(t))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// LedgerOperation godoc
//
//	@Summary		Pay tax or withdraw from the organization balance
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body	dto.LedgerOperationRequestDTO	true	"Operation"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.LedgerTransactionDTO
//	@Failure		400	{object}	utils.Response	"Invalid operation"
//	@Failure		409	{object}	utils.Response	"Ledger would go negative"
//	@Router			/api/admin/ledger/ops [post]
func (h *AdminHandler) LedgerOperation(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	var req dto.LedgerOperationRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	entry, err := h.svc.Ledger.Operate(r.Context(), actor, domain.LedgerType(req.Type), req.Amount, req.Memo)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.FromLedgerTransaction(*entry))
}

// ListPromotions godoc
//
//	@Summary	List promotions
//	@Tags		Admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	dto.PromotionResponseDTO
//	@Router		/api/admin/promotions [get]
func (h *AdminHandler) ListPromotions(w http.ResponseWriter, r *http.Request) {
	promos, err := h.svc.Promos.List(r.Context())
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

// CreatePromotion godoc
//
//	@Summary	Create a promotion
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		request	body	dto.PromotionRequestDTO	true	"Promotion"
//	@Security	BearerAuth
//	@Success	201	{object}	dto.PromotionResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid promotion"
//	@Failure	409	{object}	utils.Response	"Code already exists"
//	@Router		/api/admin/promotions [post]
func (h *AdminHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	var req dto.PromotionRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	percent, err := decimal.NewFromString(req.DiscountPercent)
	if err != nil {
		utils.RespondWithDomainError(w, fmt.Errorf("%w: discount_percent", domain.ErrInvalidInput))
		return
	}
	p, err := h.svc.Promos.Create(r.Context(), actor, promoservice.NewPromotion{
		Code:            req.Code,
		DiscountPercent: percent,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Active:          req.Active,
	})
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.FromPromotion(*p))
}

func courseInput(req dto.CourseRequestDTO) (catalogservice.CourseInput, error) {
	percent := decimal.Zero
	if req.DiscountPercent != "" {
		var err error
		if percent, err = money.ParseRate(req.DiscountPercent); err != nil {
			return catalogservice.CourseInput{}, fmt.Errorf("%w: discount_percent", domain.ErrInvalidInput)
		}
	}
	return catalogservice.CourseInput{
		CategoryID:      req.CategoryID,
		Title:           req.Title,
		Slug:            req.Slug,
		Description:     req.Description,
		UnitPrice:       req.UnitPrice,
		DiscountPercent: percent,
		Available:       req.Available,
	}, nil
}

// CreateCourse godoc
//
//	@Summary	Add a course to the catalog
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		request	body	dto.CourseRequestDTO	true	"Course"
//	@Security	BearerAuth
//	@Success	201	{object}	dto.CourseResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid course"
//	@Failure	409	{object}	utils.Response	"Slug already in use"
//	@Router		/api/admin/courses [post]
func (h *AdminHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	var req dto.CourseRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	in, err := courseInput(req)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	course, err := h.svc.Catalog.CreateCourse(r.Context(), actor, in)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.FromCourse(*course))
}

// UpdateCourse godoc
//
//	@Summary		Replace a course
//	@Description	Carts and orders keep the prices they captured.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path	int						true	"Course id"
//	@Param			request	body	dto.CourseRequestDTO	true	"Course"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.CourseResponseDTO
//	@Failure		404	{object}	utils.Response	"Course not found"
//	@Failure		409	{object}	utils.Response	"Slug already in use"
//	@Router			/api/admin/courses/{id} [put]
func (h *AdminHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	var req dto.CourseRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	in, err := courseInput(req)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	course, err := h.svc.Catalog.UpdateCourse(r.Context(), actor, id, in)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromCourse(*course))
}

// CreateCategory godoc
//
//	@Summary	Add a course category
//	@Tags		Admin
//	@Accept		json
//	@Produce	json
//	@Param		request	body	dto.CategoryRequestDTO	true	"Category"
//	@Security	BearerAuth
//	@Success	201	{object}	dto.CategoryResponseDTO
//	@Failure	409	{object}	utils.Response	"Slug already in use"
//	@Router		/api/admin/categories [post]
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	var req dto.CategoryRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	c, err := h.svc.Catalog.CreateCategory(r.Context(), actor, req.Name, req.Slug)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.FromCategory(*c))
}

// ListActivity godoc
//
//	@Summary	Latest activity log entries
//	@Tags		Admin
//	@Produce	json
//	@Param		limit	query	int	false	"Number of entries, 50 by default"
//	@Security	BearerAuth
//	@Success	200	{array}	domain.ActivityEntry
//	@Router		/api/admin/activity [get]
func (h *AdminHandler) ListActivity(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	entries, err := h.svc.Activity.List(r.Context(), limit)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.ActivityEntry{}
	}
	utils.RespondWithJSON(w, http.StatusOK, entries)
}

// BlockUser godoc
//
//	@Summary	Block or unblock a user
//	@Tags		Admin
//	@Accept		json
//	@Param		id		path	int						true	"User id"
//	@Param		request	body	dto.BlockUserRequestDTO	true	"Blocked flag"
//	@Security	BearerAuth
//	@Success	204
//	@Failure	403	{object}	utils.Response	"Not an admin"
//	@Failure	404	{object}	utils.Response	"User not found"
//	@Router		/api/admin/users/{id}/block [post]
func (h *AdminHandler) BlockUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	id, err := utils.PathID(r, "id")
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	var req dto.BlockUserRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	if err := h.svc.Users.SetBlocked(r.Context(), actor, id, req.Blocked); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("%w: bad limit", domain.ErrInvalidInput)
	}
	return min(limit, maxLimit), nil
}
