package handler

import (
	"net/http"
	"strings"

	"oneflex/internal/api/v1/dto"
	"oneflex/internal/middleware"
	"oneflex/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutPath is where the player sends viewers who are denied access.
const CheckoutPath = "/subscription"

// AccessHandler exposes the access gate to the player.
type AccessHandler struct {
	gate   *service.AccessGate
	logger zerolog.Logger
}

func NewAccessHandler(gate *service.AccessGate, logger zerolog.Logger) *AccessHandler {
	return &AccessHandler{gate: gate, logger: logger}
}

// RegisterRoutes mounts the gate behind optional authentication so anonymous
// viewers get a decision instead of a 401.
func (h *AccessHandler) RegisterRoutes(mux *http.ServeMux, optionalAuthMw func(http.Handler) http.Handler) {
	mux.Handle("/access/", optionalAuthMw(http.HandlerFunc(h.checkAccess)))
}

// checkAccess godoc
// @Summary Check playback access
// @Description Reports whether the caller may play the content. Anonymous callers are always denied.
// @Tags access
// @Produce json
// @Param contentId path string true "Content ID"
// @Success 200 {object} dto.AccessResponse
// @Failure 404 {string} string "content id missing"
// @Router /access/{contentId} [get]
func (h *AccessHandler) checkAccess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	contentID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/access/"), "/")
	if contentID == "" {
		http.NotFound(w, r)
		return
	}

	allowed := h.gate.CanAccess(r.Context(), middleware.AccountID(r.Context()), contentID)
	resp := dto.AccessResponse{ContentID: contentID, Allowed: allowed}
	if !allowed {
		resp.CheckoutPath = CheckoutPath
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}
