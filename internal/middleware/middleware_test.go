package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"oneflex/internal/util"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret"

func token(t *testing.T, subject string, ttl time.Duration) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, util.Claims{
		Email: subject + "@example.com",
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

// echo writes the account id and email found in the request context.
var echo = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(AccountID(r.Context()) + "|" + Email(r.Context())))
})

func serve(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	h := AuthMiddleware(secret, zerolog.Nop())(echo)

	rec := serve(h, "Bearer "+token(t, "acct-1", time.Hour))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "acct-1|acct-1@example.com", rec.Body.String())

	rec = serve(h, "bearer "+token(t, "acct-1", time.Hour))
	assert.Equal(t, http.StatusOK, rec.Code)

	for name, header := range map[string]string{
		"missing":   "",
		"no scheme": token(t, "acct-1", time.Hour),
		"basic":     "Basic dXNlcjpwYXNz",
		"expired":   "Bearer " + token(t, "acct-1", -time.Hour),
		"garbage":   "Bearer nope",
	} {
		rec := serve(h, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	h := OptionalAuthMiddleware(secret, zerolog.Nop())(echo)

	rec := serve(h, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "|", rec.Body.String())

	rec = serve(h, "Bearer nope")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "|", rec.Body.String())

	rec = serve(h, "Bearer "+token(t, "acct-2", time.Hour))
	assert.Equal(t, "acct-2|acct-2@example.com", rec.Body.String())
}

func TestAdminMiddleware(t *testing.T) {
	auth := AuthMiddleware(secret, zerolog.Nop())
	admin := AdminMiddleware([]string{" admin-1 ", ""}, zerolog.Nop())
	h := auth(admin(echo))

	rec := serve(h, "Bearer "+token(t, "admin-1", time.Hour))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, "Bearer "+token(t, "acct-1", time.Hour))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Without auth in front, the empty account id is never an admin.
	rec = serve(admin(echo), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLoggerMiddlewareRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	h := LoggerMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/plans?x=1", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/v1/plans?x=1", entry["uri"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
}
