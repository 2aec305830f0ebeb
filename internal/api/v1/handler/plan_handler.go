package handler

import (
	"net/http"

	"oneflex/internal/api/v1/dto"
	"oneflex/internal/service"

	"github.com/rs/zerolog"
)

// PlanHandler serves the plan catalog.
type PlanHandler struct {
	catalog *service.PlanCatalog
	logger  zerolog.Logger
}

func NewPlanHandler(catalog *service.PlanCatalog, logger zerolog.Logger) *PlanHandler {
	return &PlanHandler{catalog: catalog, logger: logger}
}

func (h *PlanHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/plans", h.listPlans)
}

// listPlans godoc
// @Summary List subscription plans
// @Tags plans
// @Produce json
// @Success 200 {array} dto.PlanResponseDTO
// @Router /plans [get]
func (h *PlanHandler) listPlans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	plans := h.catalog.ListPlans()
	resp := make([]dto.PlanResponseDTO, 0, len(plans))
	for _, p := range plans {
		resp = append(resp, dto.PlanResponseDTO{
			ID:            p.ID,
			Name:          p.Name,
			PriceAmount:   p.PriceAmount,
			Currency:      p.Currency,
			DurationDays:  p.DurationDays,
			DurationLabel: p.DurationLabel,
			Features:      p.Features,
			Popular:       p.Popular,
		})
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}
