package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"oneflex/internal/model"
	"oneflex/internal/repository"

	"github.com/rs/zerolog"
)

const oneDay = 24 * time.Hour

// EntitlementEvaluator derives access decisions from the stored entitlement.
type EntitlementEvaluator interface {
	Evaluate(ctx context.Context, accountID string) model.Evaluation
}

// EntitlementService evaluates entitlements lazily at read time. Expiry is
// never written back to the store.
type EntitlementService struct {
	repo   repository.EntitlementRepository
	now    func() time.Time
	logger zerolog.Logger
}

func NewEntitlementService(repo repository.EntitlementRepository, logger zerolog.Logger) *EntitlementService {
	return &EntitlementService{
		repo:   repo,
		now:    time.Now,
		logger: logger.With().Str("service", "EntitlementService").Logger(),
	}
}

// Evaluate reports whether the account currently has access. A store failure
// is treated like a missing record so access is denied.
func (s *EntitlementService) Evaluate(ctx context.Context, accountID string) model.Evaluation {
	e, err := s.repo.Get(ctx, accountID)
	if err != nil {
		s.logger.Error().Err(err).Str("account_id", accountID).Msg("Failed to fetch entitlement, denying access")
		return model.Evaluation{}
	}
	if e == nil {
		return model.Evaluation{}
	}
	return evaluateAt(e, s.now())
}

// evaluateAt is the pure decision. The expiry instant itself counts as expired.
func evaluateAt(e *model.Entitlement, now time.Time) model.Evaluation {
	if !now.Before(e.ExpiresAt) {
		return model.Evaluation{IsActive: false, DaysRemaining: 0, Entitlement: e}
	}
	days := int(math.Ceil(float64(e.ExpiresAt.Sub(now)) / float64(oneDay)))
	if days < 0 {
		days = 0
	}
	return model.Evaluation{
		IsActive:      e.IsActive && e.Status == model.EntitlementStatusActive,
		DaysRemaining: days,
		Entitlement:   e,
	}
}

// FormatRemainingTime renders a day count for display, e.g. "1 week 2d remaining".
func FormatRemainingTime(daysRemaining int) string {
	switch {
	case daysRemaining <= 0:
		return "Expired"
	case daysRemaining == 1:
		return "1 day remaining"
	case daysRemaining < 7:
		return fmt.Sprintf("%d days remaining", daysRemaining)
	}

	weeks := daysRemaining / 7
	days := daysRemaining % 7
	unit := "week"
	if weeks > 1 {
		unit = "weeks"
	}
	if days == 0 {
		return fmt.Sprintf("%d %s remaining", weeks, unit)
	}
	return fmt.Sprintf("%d %s %dd remaining", weeks, unit, days)
}
