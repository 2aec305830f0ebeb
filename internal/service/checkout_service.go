package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"oneflex/internal/model"
	"oneflex/internal/pubsub"
	"oneflex/internal/repository"

	"github.com/rs/zerolog"
)

const displayTimeLayout = "2006-01-02 15:04"

// PurchaseRequest is a checkout submission for the authenticated account.
type PurchaseRequest struct {
	AccountID   string
	Email       string
	PlanID      string
	PhoneNumber string
}

// PurchaseResult is the entitlement written by a successful checkout.
type PurchaseResult struct {
	Entitlement *model.Entitlement
	Display     string
}

// EntitlementEvent is published after an entitlement record is written so
// listeners can refresh their view of the account instead of polling.
type EntitlementEvent struct {
	Type       string    `json:"type"`
	AccountID  string    `json:"account_id"`
	PlanID     string    `json:"plan_id"`
	PlanName   string    `json:"plan_name"`
	AmountPaid int64     `json:"amount_paid"`
	Currency   string    `json:"currency"`
	Status     string    `json:"status"`
	IsActive   bool      `json:"is_active"`
	PaymentRef string    `json:"payment_reference"`
	ExpiresAt  time.Time `json:"expires_at"`
	OccurredAt time.Time `json:"occurred_at"`
}

const EventEntitlementPurchased = "entitlement.purchased"

// CheckoutService turns a plan selection into the account's entitlement record.
type CheckoutService struct {
	catalog     *PlanCatalog
	payments    PaymentProcessor
	entitlement repository.EntitlementRepository
	accounts    repository.AccountRepository
	publisher   pubsub.Publisher
	topic       string
	loc         *time.Location
	now         func() time.Time
	logger      zerolog.Logger
}

// NewCheckoutService wires the checkout flow. An empty topic disables event publishing.
func NewCheckoutService(
	catalog *PlanCatalog,
	payments PaymentProcessor,
	entitlement repository.EntitlementRepository,
	accounts repository.AccountRepository,
	publisher pubsub.Publisher,
	topic string,
	loc *time.Location,
	logger zerolog.Logger,
) *CheckoutService {
	if loc == nil {
		loc = time.UTC
	}
	if publisher == nil {
		publisher = pubsub.NoopPublisher{}
	}
	return &CheckoutService{
		catalog:     catalog,
		payments:    payments,
		entitlement: entitlement,
		accounts:    accounts,
		publisher:   publisher,
		topic:       topic,
		loc:         loc,
		now:         time.Now,
		logger:      logger.With().Str("service", "CheckoutService").Logger(),
	}
}

// SubmitPurchase validates the request, charges the plan and overwrites the
// account's entitlement record. Errors are one of ErrUnauthenticated,
// ErrInvalidPlan, ErrInvalidPhoneNumber, ErrPaymentDeclined or ErrStoreUnavailable.
func (s *CheckoutService) SubmitPurchase(ctx context.Context, req PurchaseRequest) (*PurchaseResult, error) {
	if req.AccountID == "" {
		return nil, ErrUnauthenticated
	}
	plan, err := s.catalog.GetPlan(req.PlanID)
	if err != nil {
		return nil, err
	}
	phone, err := NormalizePhoneNumber(req.PhoneNumber)
	if err != nil {
		return nil, err
	}

	ref, err := s.payments.Charge(ctx, req.AccountID, phone, plan)
	if err != nil {
		s.logger.Error().Err(err).Str("account_id", req.AccountID).Str("plan_id", plan.ID).Msg("Payment failed")
		return nil, fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
	}

	start := s.now().In(s.loc)
	expiry := ExpiryFor(start, plan)
	ent := &model.Entitlement{
		AccountID:        req.AccountID,
		Email:            req.Email,
		PlanID:           plan.ID,
		PlanName:         plan.Name,
		AmountPaid:       plan.PriceAmount,
		Currency:         plan.Currency,
		PhoneNumber:      phone,
		PaymentReference: ref,
		Status:           model.EntitlementStatusActive,
		IsActive:         true,
		StartsAt:         start,
		ExpiresAt:        expiry,
		UpdatedAt:        start,
	}

	if err := s.entitlement.Put(ctx, ent, repository.EntitlementFields...); err != nil {
		s.logger.Error().Err(err).Str("account_id", req.AccountID).Str("plan_id", plan.ID).Msg("Failed to write entitlement")
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	s.logger.Info().
		Str("account_id", req.AccountID).
		Str("plan_id", plan.ID).
		Time("expires_at", expiry).
		Str("payment_reference", ref).
		Msg("Entitlement written")

	s.updateAccountSummary(ctx, ent)
	s.publishPurchased(ctx, ent)

	return &PurchaseResult{
		Entitlement: ent,
		Display:     "active until " + expiry.Format(displayTimeLayout),
	}, nil
}

// ExpiryFor advances start by the plan's duration in calendar days, keeping
// the wall-clock time in start's location.
func ExpiryFor(start time.Time, plan model.Plan) time.Time {
	return start.AddDate(0, 0, plan.DurationDays)
}

// updateAccountSummary mirrors the entitlement onto the account profile. The
// evaluator never reads the summary, so a failure here only leaves it stale.
func (s *CheckoutService) updateAccountSummary(ctx context.Context, ent *model.Entitlement) {
	if s.accounts == nil {
		return
	}
	updated, err := s.accounts.UpdateSubscriptionSummary(ctx, ent.AccountID, string(ent.Status), ent.PlanID, ent.ExpiresAt)
	if err != nil {
		s.logger.Warn().Err(err).Str("account_id", ent.AccountID).Msg("Failed to update account subscription summary")
		return
	}
	if !updated {
		s.logger.Debug().Str("account_id", ent.AccountID).Msg("No account profile to update")
	}
}

func (s *CheckoutService) publishPurchased(ctx context.Context, ent *model.Entitlement) {
	if s.topic == "" {
		return
	}
	payload, err := json.Marshal(EntitlementEvent{
		Type:       EventEntitlementPurchased,
		AccountID:  ent.AccountID,
		PlanID:     ent.PlanID,
		PlanName:   ent.PlanName,
		AmountPaid: ent.AmountPaid,
		Currency:   ent.Currency,
		ExpiresAt:  ent.ExpiresAt,
		OccurredAt: ent.UpdatedAt,
		PaymentRef: ent.PaymentReference,
		Status:     string(ent.Status),
		IsActive:   ent.IsActive,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("account_id", ent.AccountID).Msg("Failed to encode entitlement event")
		return
	}
	attrs := map[string]string{"event": EventEntitlementPurchased, "account_id": ent.AccountID}
	if _, err := s.publisher.Publish(ctx, s.topic, payload, attrs); err != nil {
		s.logger.Warn().Err(err).Str("account_id", ent.AccountID).Msg("Failed to publish entitlement event")
	}
}
