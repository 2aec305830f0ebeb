package service

import (
	"context"

	"github.com/rs/zerolog"
)

// AccessGate answers whether an account may play protected content. It only
// supplies the decision; the caller renders the paywall overlay on false.
type AccessGate struct {
	evaluator EntitlementEvaluator
	logger    zerolog.Logger
}

func NewAccessGate(evaluator EntitlementEvaluator, logger zerolog.Logger) *AccessGate {
	return &AccessGate{
		evaluator: evaluator,
		logger:    logger.With().Str("service", "AccessGate").Logger(),
	}
}

// CanAccess is false for anonymous callers without consulting the evaluator.
func (g *AccessGate) CanAccess(ctx context.Context, accountID, contentID string) bool {
	if accountID == "" {
		return false
	}
	allowed := g.evaluator.Evaluate(ctx, accountID).IsActive
	g.logger.Debug().
		Str("account_id", accountID).
		Str("content_id", contentID).
		Bool("allowed", allowed).
		Msg("Access decision")
	return allowed
}
