package handler

import (
	"encoding/json"
	"net/http"

	"oneflex/internal/api/v1/dto"
	"oneflex/internal/model"

	"github.com/rs/zerolog"
)

func writeJSON(w http.ResponseWriter, logger zerolog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, logger zerolog.Logger, status int, msg string) {
	writeJSON(w, logger, status, dto.ErrorResponse{Error: msg})
}

func toEntitlementDTO(e *model.Entitlement) dto.EntitlementResponseDTO {
	return dto.EntitlementResponseDTO{
		AccountID:        e.AccountID,
		PlanID:           e.PlanID,
		PlanName:         e.PlanName,
		AmountPaid:       e.AmountPaid,
		Currency:         e.Currency,
		PhoneNumber:      e.PhoneNumber,
		PaymentReference: e.PaymentReference,
		Status:           string(e.Status),
		IsActive:         e.IsActive,
		StartsAt:         e.StartsAt,
		ExpiresAt:        e.ExpiresAt,
		UpdatedAt:        e.UpdatedAt,
	}
}
