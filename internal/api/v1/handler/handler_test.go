package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"oneflex/internal/api/v1/dto"
	"oneflex/internal/middleware"
	"oneflex/internal/model"
	"oneflex/internal/pubsub"
	"oneflex/internal/service"
	"oneflex/internal/util"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type memEntitlements struct {
	mu      sync.Mutex
	records map[string]model.Entitlement
	err     error
}

func (m *memEntitlements) Get(ctx context.Context, accountID string) (*model.Entitlement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.records[accountID]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *memEntitlements) Put(ctx context.Context, e *model.Entitlement, mergeFields ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.records[e.AccountID] = *e
	return nil
}

func (m *memEntitlements) List(ctx context.Context) ([]model.Entitlement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.Entitlement, 0, len(m.records))
	for _, e := range m.records {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.After(out[j].StartsAt) })
	return out, nil
}

type memAccounts struct {
	accounts map[string]*model.Account
}

func (m *memAccounts) CreateAccount(ctx context.Context, a *model.Account) error {
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	m.accounts[a.AccountID] = &cp
	return nil
}

func (m *memAccounts) GetAccount(ctx context.Context, accountID string) (*model.Account, error) {
	a, ok := m.accounts[accountID]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *memAccounts) UpdateSubscriptionSummary(ctx context.Context, accountID, status, planID string, expiresAt time.Time) (bool, error) {
	a, ok := m.accounts[accountID]
	if !ok {
		return false, nil
	}
	a.SubscriptionStatus = status
	a.SubscriptionPlan = planID
	a.SubscriptionExpiresAt = &expiresAt
	return true, nil
}

func (m *memAccounts) CountAccounts(ctx context.Context) (int, error) {
	return len(m.accounts), nil
}

type testAPI struct {
	handler      http.Handler
	entitlements *memEntitlements
	accounts     *memAccounts
}

func newTestAPI(t *testing.T, exporter service.WalletExporter) *testAPI {
	t.Helper()
	logger := zerolog.Nop()
	ents := &memEntitlements{records: map[string]model.Entitlement{}}
	accounts := &memAccounts{accounts: map[string]*model.Account{}}
	validate := validator.New(validator.WithRequiredStructEnabled())

	catalog := service.NewPlanCatalog("UGX")
	entitlementSvc := service.NewEntitlementService(ents, logger)
	checkoutSvc := service.NewCheckoutService(catalog, service.SimulatedPayment{}, ents, accounts, pubsub.NoopPublisher{}, "", time.UTC, logger)
	walletSvc := service.NewWalletService(ents, accounts, exporter, "UGX", time.UTC, logger)

	auth := middleware.AuthMiddleware(testSecret, logger)
	optional := middleware.OptionalAuthMiddleware(testSecret, logger)
	adminOnly := middleware.AdminMiddleware([]string{"admin-1"}, logger)
	admin := func(next http.Handler) http.Handler { return auth(adminOnly(next)) }

	mux := http.NewServeMux()
	NewPlanHandler(catalog, logger).RegisterRoutes(mux)
	NewSubscriptionHandler(checkoutSvc, entitlementSvc, validate, logger).RegisterRoutes(mux, auth)
	NewAccessHandler(service.NewAccessGate(entitlementSvc, logger), logger).RegisterRoutes(mux, optional)
	NewAccountHandler(service.NewAccountService(accounts), validate, logger).RegisterRoutes(mux, auth)
	NewWalletHandler(walletSvc, logger).RegisterRoutes(mux, admin)

	return &testAPI{handler: mux, entitlements: ents, accounts: accounts}
}

func bearer(t *testing.T, accountID, email string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, util.Claims{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			Subject:   accountID,
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func (a *testAPI) do(t *testing.T, method, path, auth string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestListPlans(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := api.do(t, http.MethodGet, "/plans", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	plans := decode[[]dto.PlanResponseDTO](t, rec)
	require.Len(t, plans, 3)
	assert.Equal(t, "two-days", plans[1].ID)
	assert.True(t, plans[1].Popular)

	rec = api.do(t, http.MethodPost, "/plans", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCheckoutThenStatusThenAccess(t *testing.T) {
	api := newTestAPI(t, nil)
	auth := bearer(t, "acct-1", "viewer@example.com")

	rec := api.do(t, http.MethodGet, "/access/movie-42", auth, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	denied := decode[dto.AccessResponse](t, rec)
	assert.False(t, denied.Allowed)
	assert.Equal(t, CheckoutPath, denied.CheckoutPath)

	rec = api.do(t, http.MethodPost, "/subscriptions/checkout", auth, dto.SubscriptionCheckoutRequest{
		PlanID:      "one-week",
		PhoneNumber: "+256 772 123 456",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	out := decode[dto.SubscriptionCheckoutResponse](t, rec)
	assert.Contains(t, out.Message, "1 Week")
	assert.Equal(t, "one-week", out.Entitlement.PlanID)
	assert.Equal(t, "+256772123456", out.Entitlement.PhoneNumber)
	assert.True(t, out.Entitlement.ExpiresAt.Equal(out.Entitlement.StartsAt.AddDate(0, 0, 7)))

	stored := api.entitlements.records["acct-1"]
	assert.Equal(t, "viewer@example.com", stored.Email)

	rec = api.do(t, http.MethodGet, "/subscriptions/me", auth, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[dto.SubscriptionStatusResponse](t, rec)
	assert.True(t, status.IsActive)
	assert.Equal(t, 7, status.DaysRemaining)
	assert.Equal(t, "1 week remaining", status.RemainingText)
	require.NotNil(t, status.Entitlement)

	rec = api.do(t, http.MethodGet, "/access/movie-42", auth, nil)
	allowed := decode[dto.AccessResponse](t, rec)
	assert.True(t, allowed.Allowed)
	assert.Empty(t, allowed.CheckoutPath)
	assert.Equal(t, "movie-42", allowed.ContentID)
}

func TestCheckoutErrors(t *testing.T) {
	api := newTestAPI(t, nil)
	auth := bearer(t, "acct-1", "")

	tests := []struct {
		name   string
		auth   string
		body   any
		status int
		msg    string
	}{
		{"no token", "", dto.SubscriptionCheckoutRequest{PlanID: "one-day", PhoneNumber: "0772123456"}, http.StatusUnauthorized, ""},
		{"missing plan", auth, dto.SubscriptionCheckoutRequest{PhoneNumber: "0772123456"}, http.StatusBadRequest, service.ErrInvalidPlan.Error()},
		{"unknown plan", auth, dto.SubscriptionCheckoutRequest{PlanID: "forever", PhoneNumber: "0772123456"}, http.StatusBadRequest, service.ErrInvalidPlan.Error()},
		{"missing phone", auth, dto.SubscriptionCheckoutRequest{PlanID: "one-day"}, http.StatusBadRequest, service.ErrInvalidPhoneNumber.Error()},
		{"bad phone", auth, dto.SubscriptionCheckoutRequest{PlanID: "one-day", PhoneNumber: "12345"}, http.StatusBadRequest, service.ErrInvalidPhoneNumber.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(t, http.MethodPost, "/subscriptions/checkout", tt.auth, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, decode[dto.ErrorResponse](t, rec).Error)
			}
		})
	}
	assert.Empty(t, api.entitlements.records)
}

func TestCheckoutStoreUnavailable(t *testing.T) {
	api := newTestAPI(t, nil)
	api.entitlements.err = errors.New("down")

	rec := api.do(t, http.MethodPost, "/subscriptions/checkout", bearer(t, "acct-1", ""), dto.SubscriptionCheckoutRequest{
		PlanID:      "one-day",
		PhoneNumber: "0772123456",
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStatusWithoutEntitlement(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := api.do(t, http.MethodGet, "/subscriptions/me", bearer(t, "acct-9", ""), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[dto.SubscriptionStatusResponse](t, rec)
	assert.False(t, status.IsActive)
	assert.Zero(t, status.DaysRemaining)
	assert.Equal(t, "Expired", status.RemainingText)
	assert.Nil(t, status.Entitlement)
}

func TestAccessAnonymousAndExpired(t *testing.T) {
	api := newTestAPI(t, nil)
	start := time.Now().AddDate(0, 0, -3)
	api.entitlements.records["acct-1"] = model.Entitlement{
		AccountID: "acct-1",
		Status:    model.EntitlementStatusActive,
		IsActive:  true,
		StartsAt:  start,
		ExpiresAt: start.AddDate(0, 0, 2),
	}

	rec := api.do(t, http.MethodGet, "/access/movie-1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[dto.AccessResponse](t, rec).Allowed)

	rec = api.do(t, http.MethodGet, "/access/movie-1", "Bearer garbage", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[dto.AccessResponse](t, rec).Allowed)

	rec = api.do(t, http.MethodGet, "/access/movie-1", bearer(t, "acct-1", ""), nil)
	assert.False(t, decode[dto.AccessResponse](t, rec).Allowed)

	rec = api.do(t, http.MethodGet, "/access/", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAccountRoutes(t *testing.T) {
	api := newTestAPI(t, nil)
	auth := bearer(t, "acct-1", "token@example.com")

	rec := api.do(t, http.MethodGet, "/accounts/me", auth, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodPost, "/accounts/me", auth, dto.AccountCreateDTO{Name: "Viewer"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[dto.AccountResponseDTO](t, rec)
	assert.Equal(t, "token@example.com", created.Email)

	rec = api.do(t, http.MethodPost, "/accounts/me", auth, dto.AccountCreateDTO{Email: "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/subscriptions/checkout", auth, dto.SubscriptionCheckoutRequest{PlanID: "two-days", PhoneNumber: "0772123456"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, http.MethodGet, "/accounts/me", auth, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[dto.AccountResponseDTO](t, rec)
	assert.Equal(t, "active", got.SubscriptionStatus)
	assert.Equal(t, "two-days", got.SubscriptionPlan)
	assert.NotNil(t, got.SubscriptionExpiresAt)
}

type stubExporter struct{}

func (stubExporter) Export(ctx context.Context, at time.Time, overview *service.WalletOverview) (string, error) {
	return "wallet/2025/01/wallet-test.csv", nil
}

func TestWalletRoutes(t *testing.T) {
	api := newTestAPI(t, stubExporter{})
	admin := bearer(t, "admin-1", "")

	for _, id := range []string{"acct-1", "acct-2"} {
		rec := api.do(t, http.MethodPost, "/subscriptions/checkout", bearer(t, id, id+"@example.com"), dto.SubscriptionCheckoutRequest{PlanID: "one-day", PhoneNumber: "0772123456"})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := api.do(t, http.MethodGet, "/admin/wallet", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(t, http.MethodGet, "/admin/wallet", bearer(t, "acct-1", ""), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodGet, "/admin/wallet", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	wallet := decode[dto.WalletResponse](t, rec)
	assert.Equal(t, int64(6000), wallet.Stats.TotalRevenue)
	assert.Equal(t, 2, wallet.Stats.ActiveSubscriptions)
	assert.Equal(t, "UGX", wallet.Stats.Currency)
	require.Len(t, wallet.Subscriptions, 2)
	assert.False(t, wallet.Subscriptions[0].Expired)

	rec = api.do(t, http.MethodPost, "/admin/wallet/export", admin, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "wallet/2025/01/wallet-test.csv", decode[dto.WalletExportResponse](t, rec).Key)
}

func TestWalletExportDisabled(t *testing.T) {
	api := newTestAPI(t, nil)
	rec := api.do(t, http.MethodPost, "/admin/wallet/export", bearer(t, "admin-1", ""), nil)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}
