package service

import (
	"context"
	"fmt"
	"time"

	"oneflex/internal/model"
	"oneflex/internal/repository"

	"github.com/rs/zerolog"
)

// WalletOverview is the admin view of revenue and subscriptions.
type WalletOverview struct {
	Stats model.WalletStats
	Rows  []model.WalletRow
}

// WalletService aggregates entitlement records for the admin wallet page.
type WalletService struct {
	entitlements repository.EntitlementRepository
	accounts     repository.AccountRepository
	exporter     WalletExporter
	currency     string
	loc          *time.Location
	now          func() time.Time
	logger       zerolog.Logger
}

// NewWalletService builds the wallet service. exporter may be nil, which disables Export.
func NewWalletService(
	entitlements repository.EntitlementRepository,
	accounts repository.AccountRepository,
	exporter WalletExporter,
	currency string,
	loc *time.Location,
	logger zerolog.Logger,
) *WalletService {
	if loc == nil {
		loc = time.UTC
	}
	return &WalletService{
		entitlements: entitlements,
		accounts:     accounts,
		exporter:     exporter,
		currency:     currency,
		loc:          loc,
		now:          time.Now,
		logger:       logger.With().Str("service", "WalletService").Logger(),
	}
}

// Overview lists every entitlement, newest first, with revenue totals.
// Active subscriptions are counted with the same rule as the evaluator.
func (s *WalletService) Overview(ctx context.Context) (*WalletOverview, error) {
	ents, err := s.entitlements.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list entitlements")
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	accounts, err := s.accounts.CountAccounts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to count accounts")
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	now := s.now().In(s.loc)
	out := &WalletOverview{
		Stats: model.WalletStats{Accounts: accounts, Currency: s.currency},
		Rows:  make([]model.WalletRow, 0, len(ents)),
	}
	for i := range ents {
		e := ents[i]
		out.Stats.TotalRevenue += e.AmountPaid

		start := e.StartsAt.In(s.loc)
		if start.Year() == now.Year() && start.Month() == now.Month() {
			out.Stats.MonthRevenue += e.AmountPaid
		}

		ev := evaluateAt(&e, now)
		if ev.IsActive {
			out.Stats.ActiveSubscriptions++
		}
		out.Rows = append(out.Rows, model.WalletRow{Entitlement: e, Expired: !now.Before(e.ExpiresAt)})
	}
	return out, nil
}

// Export writes the current overview through the configured exporter and
// returns the location of the snapshot.
func (s *WalletService) Export(ctx context.Context) (string, error) {
	if s.exporter == nil {
		return "", ErrExportDisabled
	}
	overview, err := s.Overview(ctx)
	if err != nil {
		return "", err
	}
	key, err := s.exporter.Export(ctx, s.now().In(s.loc), overview)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to export wallet")
		return "", err
	}
	s.logger.Info().Str("key", key).Int("rows", len(overview.Rows)).Msg("Wallet exported")
	return key, nil
}
