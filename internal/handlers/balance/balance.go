package balance

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/coursemart/internal/domain"
	"github.com/GlebRadaev/coursemart/internal/dto"
	"github.com/GlebRadaev/coursemart/internal/money"
	"github.com/GlebRadaev/coursemart/internal/service/walletservice"
	"github.com/GlebRadaev/coursemart/pkg/auth"
	"github.com/GlebRadaev/coursemart/pkg/utils"
)

type Service interface {
	Balance(ctx context.Context, userID int64) (*walletservice.Summary, error)
	Deposit(ctx context.Context, userID int64, amount money.Money, cardID *int64) (*domain.BalanceTransaction, error)
	Withdraw(ctx context.Context, userID int64, amount money.Money, cardID *int64) (*domain.BalanceTransaction, error)
	AddCard(ctx context.Context, userID int64, in walletservice.NewCard) (*domain.SavedCard, error)
	ListCards(ctx context.Context, userID int64) ([]domain.SavedCard, error)
	SetDefaultCard(ctx context.Context, userID, cardID int64) error
	DeleteCard(ctx context.Context, userID, cardID int64) error
	TopUpCard(ctx context.Context, userID, cardID int64, amount money.Money) (*domain.SavedCard, error)
	CardTransactions(ctx context.Context, userID, cardID int64) ([]domain.CardTransaction, error)
}

type BalanceHandler struct {
	balanceService Service
}

func New(balanceService Service) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
	}
}

// GetBalance godoc
//
//	@Summary		Get current user balance
//	@Description	Retrieve the current balance and the balance movements of the authenticated user.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Current balance and history"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	summary, err := h.balanceService.Balance(r.Context(), userID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromBalance(summary.Current, summary.Transactions))
}

// Deposit godoc
//
//	@Summary		Deposit funds
//	@Description	Move money onto the user balance, from a saved card when card_id is given.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.BalanceOperationRequestDTO	true	"Amount and optional card"
//	@Success		200		{object}	dto.BalanceTransactionDTO
//	@Failure		400		{object}	utils.Response	"Malformed amount"
//	@Failure		402		{object}	utils.Response	"Insufficient funds on card"
//	@Failure		403		{object}	utils.Response	"Card does not belong to the user"
//	@Router			/api/user/balance/deposit [post]
func (h *BalanceHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.operate(w, r, h.balanceService.Deposit)
}

// Withdraw godoc
//
//	@Summary		Request funds withdrawal
//	@Description	Withdraw money from the user balance, onto a saved card when card_id is given.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.BalanceOperationRequestDTO	true	"Amount and optional card"
//	@Success		200		{object}	dto.BalanceTransactionDTO
//	@Failure		400		{object}	utils.Response	"Malformed amount"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/balance/withdraw [post]
func (h *BalanceHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.operate(w, r, h.balanceService.Withdraw)
}

type operation func(ctx context.Context, userID int64, amount money.Money, cardID *int64) (*domain.BalanceTransaction, error)

func (h *BalanceHandler) operate(w http.ResponseWriter, r *http.Request, op operation) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	var req dto.BalanceOperationRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	tx, err := op(r.Context(), userID, req.Amount, req.CardID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromBalanceTransaction(*tx))
}

// ListCards godoc
//
//	@Summary	List saved cards
//	@Tags		Cards
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		dto.CardResponseDTO
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Router		/api/user/cards [get]
func (h *BalanceHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	cards, err := h.balanceService.ListCards(r.Context(), userID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	response := make([]dto.CardResponseDTO, 0, len(cards))
	for _, c := range cards {
		response = append(response, dto.FromCard(c))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// AddCard godoc
//
//	@Summary		Save a payment card
//	@Description	The number is checked with the Luhn algorithm and stored encrypted; only the last four digits are returned.
//	@Tags			Cards
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CardRequestDTO	true	"Card data"
//	@Success		201		{object}	dto.CardResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		422		{object}	utils.Response	"Invalid or expired card"
//	@Router			/api/user/cards [post]
func (h *BalanceHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	var req dto.CardRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	card, err := h.balanceService.AddCard(r.Context(), userID, walletservice.NewCard{
		Number:   req.Number,
		Holder:   req.Holder,
		ExpMonth: req.ExpMonth,
		ExpYear:  req.ExpYear,
	})
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.FromCard(*card))
}

// DeleteCard godoc
//
//	@Summary	Delete a saved card
//	@Tags		Cards
//	@Security	BearerAuth
//	@Param		id	path	int	true	"Card id"
//	@Success	204
//	@Failure	403	{object}	utils.Response	"Card does not belong to the user"
//	@Router		/api/user/cards/{id} [delete]
func (h *BalanceHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	h.cardAction(w, r, h.balanceService.DeleteCard)
}

// SetDefaultCard godoc
//
//	@Summary	Make a card the default one
//	@Tags		Cards
//	@Security	BearerAuth
//	@Param		id	path	int	true	"Card id"
//	@Success	204
//	@Failure	403	{object}	utils.Response	"Card does not belong to the user"
//	@Router		/api/user/cards/{id}/default [post]
func (h *BalanceHandler) SetDefaultCard(w http.ResponseWriter, r *http.Request) {
	h.cardAction(w, r, h.balanceService.SetDefaultCard)
}

func (h *BalanceHandler) cardAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, userID, cardID int64) error) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	cardID, err := utils.PathID(r, "id")
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	if err := action(r.Context(), userID, cardID); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TopUpCard godoc
//
//	@Summary		Top up a saved card
//	@Description	Simulated funding of the card's own balance.
//	@Tags			Cards
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Card id"
//	@Param			request	body		dto.TopUpRequestDTO	true	"Amount"
//	@Success		200		{object}	dto.CardResponseDTO
//	@Failure		400		{object}	utils.Response	"Malformed amount"
//	@Failure		403		{object}	utils.Response	"Card does not belong to the user"
//	@Router			/api/user/cards/{id}/topup [post]
func (h *BalanceHandler) TopUpCard(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	cardID, err := utils.PathID(r, "id")
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	var req dto.TopUpRequestDTO
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	card, err := h.balanceService.TopUpCard(r.Context(), userID, cardID, req.Amount)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.FromCard(*card))
}

// CardTransactions godoc
//
//	@Summary	List a saved card's transactions
//	@Tags		Cards
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"Card id"
//	@Success	200	{array}		dto.CardTransactionDTO
//	@Failure	401	{object}	utils.Response	"User not authorized"
//	@Failure	403	{object}	utils.Response	"Card does not belong to the user"
//	@Router		/api/user/cards/{id}/transactions [get]
func (h *BalanceHandler) CardTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int64)

	cardID, err := utils.PathID(r, "id")
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	txs, err := h.balanceService.CardTransactions(r.Context(), userID, cardID)
	if err != nil {
		utils.RespondWithDomainError(w, err)
		return
	}
	response := make([]dto.CardTransactionDTO, 0, len(txs))
	for _, tx := range txs {
		response = append(response, dto.FromCardTransaction(tx))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
