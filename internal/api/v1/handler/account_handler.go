package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"oneflex/internal/api/v1/dto"
	"oneflex/internal/middleware"
	"oneflex/internal/model"
	"oneflex/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type AccountHandler struct {
	accountService service.AccountService
	validate       *validator.Validate
	logger         zerolog.Logger
}

func NewAccountHandler(accountService service.AccountService, v *validator.Validate, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{accountService: accountService, validate: v, logger: logger}
}

// RegisterRoutes mounts v1 account routes
func (h *AccountHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/accounts/me", authMw(http.HandlerFunc(h.handleAccount)))
}

func (h *AccountHandler) handleAccount(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createAccount(w, r)
	case http.MethodGet:
		h.getAccount(w, r)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

// createAccount godoc
// @Summary Register the caller's account profile
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.AccountCreateDTO true "Account profile"
// @Success 201 {object} dto.AccountResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 401 {string} string "Unauthorized"
// @Router /accounts/me [post]
func (h *AccountHandler) createAccount(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.AccountID(r.Context())
	if accountID == "" {
		http.Error(w, "Unauthorized: account ID not found in context", http.StatusUnauthorized)
		return
	}

	var req dto.AccountCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	email := req.Email
	if email == "" {
		email = middleware.Email(r.Context())
	}
	created, err := h.accountService.Register(r.Context(), &model.Account{
		AccountID: accountID,
		Name:      req.Name,
		Email:     email,
	})
	if err != nil {
		h.logger.Error().Err(err).Str("account_id", accountID).Msg("failed to register account")
		http.Error(w, "Failed to create account", http.StatusInternalServerError)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, toAccountDTO(created))
}

// getAccount godoc
// @Summary Get the caller's account profile
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.AccountResponseDTO
// @Failure 401 {string} string "Unauthorized"
// @Failure 404 {string} string "account not found"
// @Router /accounts/me [get]
func (h *AccountHandler) getAccount(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.AccountID(r.Context())
	if accountID == "" {
		http.Error(w, "Unauthorized: account ID not found in context", http.StatusUnauthorized)
		return
	}

	account, err := h.accountService.Get(r.Context(), accountID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			h.logger.Error().Err(err).Str("account_id", accountID).Msg("failed to fetch account")
			http.Error(w, "Failed to fetch account", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, h.logger, http.StatusOK, toAccountDTO(account))
}

func toAccountDTO(a *model.Account) dto.AccountResponseDTO {
	return dto.AccountResponseDTO{
		AccountID:             a.AccountID,
		Name:                  a.Name,
		Email:                 a.Email,
		SubscriptionStatus:    a.SubscriptionStatus,
		SubscriptionPlan:      a.SubscriptionPlan,
		SubscriptionExpiresAt: a.SubscriptionExpiresAt,
		CreatedAt:             a.CreatedAt,
		UpdatedAt:             a.UpdatedAt,
	}
}
