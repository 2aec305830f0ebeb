package handler

import (
	"errors"
	"net/http"

	"oneflex/internal/api/v1/dto"
	"oneflex/internal/service"

	"github.com/rs/zerolog"
)

// WalletHandler serves the admin revenue view.
type WalletHandler struct {
	walletSvc *service.WalletService
	logger    zerolog.Logger
}

func NewWalletHandler(walletSvc *service.WalletService, logger zerolog.Logger) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc, logger: logger}
}

// RegisterRoutes mounts the admin wallet routes. adminMw must authenticate and authorize.
func (h *WalletHandler) RegisterRoutes(mux *http.ServeMux, adminMw func(http.Handler) http.Handler) {
	mux.Handle("/admin/wallet", adminMw(http.HandlerFunc(h.getWallet)))
	mux.Handle("/admin/wallet/export", adminMw(http.HandlerFunc(h.exportWallet)))
}

// getWallet godoc
// @Summary Admin wallet overview
// @Description Lists all subscriptions, newest first, with revenue totals.
// @Tags admin
// @Produce json
// @Success 200 {object} dto.WalletResponse
// @Failure 403 {string} string "Forbidden"
// @Failure 503 {object} dto.ErrorResponse
// @Router /admin/wallet [get]
func (h *WalletHandler) getWallet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	overview, err := h.walletSvc.Overview(r.Context())
	if err != nil {
		writeError(w, h.logger, http.StatusServiceUnavailable, service.ErrStoreUnavailable.Error())
		return
	}

	resp := dto.WalletResponse{
		Stats: dto.WalletStatsDTO{
			TotalRevenue:        overview.Stats.TotalRevenue,
			MonthRevenue:        overview.Stats.MonthRevenue,
			ActiveSubscriptions: overview.Stats.ActiveSubscriptions,
			Accounts:            overview.Stats.Accounts,
			Currency:            overview.Stats.Currency,
		},
		Subscriptions: make([]dto.WalletRowDTO, 0, len(overview.Rows)),
	}
	for i := range overview.Rows {
		row := overview.Rows[i]
		resp.Subscriptions = append(resp.Subscriptions, dto.WalletRowDTO{
			EntitlementResponseDTO: toEntitlementDTO(&row.Entitlement),
			Email:                  row.Entitlement.Email,
			Expired:                row.Expired,
		})
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}

// exportWallet godoc
// @Summary Export the admin wallet
// @Description Uploads a CSV snapshot of the wallet to object storage.
// @Tags admin
// @Produce json
// @Success 201 {object} dto.WalletExportResponse
// @Failure 403 {string} string "Forbidden"
// @Failure 501 {object} dto.ErrorResponse "export not configured"
// @Router /admin/wallet/export [post]
func (h *WalletHandler) exportWallet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	key, err := h.walletSvc.Export(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportDisabled):
			writeError(w, h.logger, http.StatusNotImplemented, err.Error())
		case errors.Is(err, service.ErrStoreUnavailable):
			writeError(w, h.logger, http.StatusServiceUnavailable, service.ErrStoreUnavailable.Error())
		default:
			writeError(w, h.logger, http.StatusBadGateway, "failed to export wallet")
		}
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, dto.WalletExportResponse{Key: key})
}
