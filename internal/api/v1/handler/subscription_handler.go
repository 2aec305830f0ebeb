package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"oneflex/internal/api/v1/dto"
	"oneflex/internal/middleware"
	"oneflex/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// SubscriptionHandler handles checkout and subscription status endpoints.
type SubscriptionHandler struct {
	checkoutSvc    *service.CheckoutService
	entitlementSvc *service.EntitlementService
	validate       *validator.Validate
	logger         zerolog.Logger
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(checkoutSvc *service.CheckoutService, entitlementSvc *service.EntitlementService, validate *validator.Validate, logger zerolog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{checkoutSvc: checkoutSvc, entitlementSvc: entitlementSvc, validate: validate, logger: logger}
}

// RegisterRoutes registers the subscription endpoints.
func (h *SubscriptionHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("/subscriptions/checkout", authMiddleware(http.HandlerFunc(h.Checkout)))
	mux.Handle("/subscriptions/me", authMiddleware(http.HandlerFunc(h.Status)))
}

// Checkout godoc
// @Summary Purchase a subscription plan
// @Description Charges the phone number for the plan and overwrites the caller's entitlement.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param subscription body dto.SubscriptionCheckoutRequest true "Subscription checkout request"
// @Success 201 {object} dto.SubscriptionCheckoutResponse
// @Failure 400 {object} dto.ErrorResponse "invalid plan or phone number"
// @Failure 401 {object} dto.ErrorResponse "unauthenticated"
// @Failure 402 {object} dto.ErrorResponse "payment declined"
// @Failure 503 {object} dto.ErrorResponse "store unavailable"
// @Router /subscriptions/checkout [post]
func (h *SubscriptionHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	accountID := middleware.AccountID(r.Context())
	if accountID == "" {
		writeError(w, h.logger, http.StatusUnauthorized, service.ErrUnauthenticated.Error())
		return
	}

	var req dto.SubscriptionCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, validationMessage(err))
		return
	}

	res, err := h.checkoutSvc.SubmitPurchase(r.Context(), service.PurchaseRequest{
		AccountID:   accountID,
		Email:       middleware.Email(r.Context()),
		PlanID:      req.PlanID,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		status, msg := checkoutFailure(err)
		if status == http.StatusInternalServerError {
			h.logger.Error().Err(err).Str("account_id", accountID).Msg("checkout failed")
		}
		writeError(w, h.logger, status, msg)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, dto.SubscriptionCheckoutResponse{
		Message:     "Payment successful! Your " + res.Entitlement.PlanName + " subscription is " + res.Display,
		Entitlement: toEntitlementDTO(res.Entitlement),
	})
}

// Status godoc
// @Summary Get the caller's subscription
// @Description Evaluates the caller's entitlement against the current time.
// @Tags subscriptions
// @Produce json
// @Success 200 {object} dto.SubscriptionStatusResponse
// @Failure 401 {object} dto.ErrorResponse "unauthenticated"
// @Router /subscriptions/me [get]
func (h *SubscriptionHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	accountID := middleware.AccountID(r.Context())
	if accountID == "" {
		writeError(w, h.logger, http.StatusUnauthorized, service.ErrUnauthenticated.Error())
		return
	}

	ev := h.entitlementSvc.Evaluate(r.Context(), accountID)
	resp := dto.SubscriptionStatusResponse{
		IsActive:      ev.IsActive,
		DaysRemaining: ev.DaysRemaining,
		RemainingText: service.FormatRemainingTime(ev.DaysRemaining),
	}
	if ev.Entitlement != nil {
		e := toEntitlementDTO(ev.Entitlement)
		resp.Entitlement = &e
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}

// checkoutFailure maps a checkout error to its status code and user-facing message.
func checkoutFailure(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, service.ErrUnauthenticated.Error()
	case errors.Is(err, service.ErrInvalidPlan):
		return http.StatusBadRequest, service.ErrInvalidPlan.Error()
	case errors.Is(err, service.ErrInvalidPhoneNumber):
		return http.StatusBadRequest, service.ErrInvalidPhoneNumber.Error()
	case errors.Is(err, service.ErrPaymentDeclined):
		return http.StatusPaymentRequired, service.ErrPaymentDeclined.Error()
	case errors.Is(err, service.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, service.ErrStoreUnavailable.Error()
	default:
		return http.StatusInternalServerError, "payment processing failed, please try again"
	}
}

// validationMessage reports a missing checkout field with the same message
// the service uses for an invalid value.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "PlanID":
			return service.ErrInvalidPlan.Error()
		case "PhoneNumber":
			return service.ErrInvalidPhoneNumber.Error()
		}
	}
	return "validation failed: " + err.Error()
}
