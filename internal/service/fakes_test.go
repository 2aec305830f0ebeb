package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"oneflex/internal/model"
	"oneflex/internal/repository"
)

var errStoreDown = errors.New("connection refused")

type fakeEntitlementRepo struct {
	mu      sync.Mutex
	records map[string]model.Entitlement
	puts    int
	getErr  error
	putErr  error
	listErr error
}

func newFakeEntitlementRepo() *fakeEntitlementRepo {
	return &fakeEntitlementRepo{records: map[string]model.Entitlement{}}
}

func (f *fakeEntitlementRepo) Get(ctx context.Context, accountID string) (*model.Entitlement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	e, ok := f.records[accountID]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (f *fakeEntitlementRepo) Put(ctx context.Context, e *model.Entitlement, mergeFields ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.puts++
	f.records[e.AccountID] = *e
	return nil
}

func (f *fakeEntitlementRepo) List(ctx context.Context) ([]model.Entitlement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Entitlement, 0, len(f.records))
	for _, e := range f.records {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.After(out[j].StartsAt) })
	return out, nil
}

var _ repository.EntitlementRepository = (*fakeEntitlementRepo)(nil)

type fakeAccountRepo struct {
	accounts  map[string]*model.Account
	updateErr error
	countErr  error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]*model.Account{}}
}

func (f *fakeAccountRepo) CreateAccount(ctx context.Context, a *model.Account) error {
	cp := *a
	f.accounts[a.AccountID] = &cp
	return nil
}

func (f *fakeAccountRepo) GetAccount(ctx context.Context, accountID string) (*model.Account, error) {
	a, ok := f.accounts[accountID]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccountRepo) UpdateSubscriptionSummary(ctx context.Context, accountID, status, planID string, expiresAt time.Time) (bool, error) {
	if f.updateErr != nil {
		return false, f.updateErr
	}
	a, ok := f.accounts[accountID]
	if !ok {
		return false, nil
	}
	a.SubscriptionStatus = status
	a.SubscriptionPlan = planID
	a.SubscriptionExpiresAt = &expiresAt
	return true, nil
}

func (f *fakeAccountRepo) CountAccounts(ctx context.Context) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.accounts), nil
}

var _ repository.AccountRepository = (*fakeAccountRepo)(nil)

type publishedMessage struct {
	topic   string
	payload []byte
	attrs   map[string]string
}

type fakePublisher struct {
	messages []publishedMessage
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, topic string, payload []byte, attrs map[string]string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.messages = append(p.messages, publishedMessage{topic: topic, payload: payload, attrs: attrs})
	return "msg-1", nil
}

type declinedPayment struct{}

func (declinedPayment) Charge(ctx context.Context, accountID, phoneNumber string, plan model.Plan) (string, error) {
	return "", errors.New("insufficient balance")
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
