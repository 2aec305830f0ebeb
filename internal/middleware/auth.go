package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"oneflex/internal/util"

	"github.com/rs/zerolog"
)

// Injected key type to avoid context collisions
type contextKey string

const (
	AccountContextKey = contextKey("account")
	EmailContextKey   = contextKey("email")
)

var errInvalidAuthHeader = errors.New("invalid authorization header")

// AccountID returns the authenticated account id, or "" for anonymous requests.
func AccountID(ctx context.Context) string {
	id, _ := ctx.Value(AccountContextKey).(string)
	return id
}

// Email returns the email claim of the authenticated account, if any.
func Email(ctx context.Context) string {
	email, _ := ctx.Value(EmailContextKey).(string)
	return email
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(jwtSecret string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug().Msg("Authorization header missing")
				http.Error(w, "Authorization header missing", http.StatusUnauthorized)
				return
			}
			claims, err := parseBearer(authHeader, jwtSecret)
			if err != nil {
				logger.Warn().Err(err).Msg("Invalid token")
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// OptionalAuthMiddleware attaches the account when a valid token is present
// and lets anonymous requests through otherwise.
func OptionalAuthMiddleware(jwtSecret string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := parseBearer(authHeader, jwtSecret)
			if err != nil {
				logger.Debug().Err(err).Msg("Ignoring invalid token on optional auth route")
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware(adminIDs []string, logger zerolog.Logger) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		if id = strings.TrimSpace(id); id != "" {
			allowed[id] = struct{}{}
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := AccountID(r.Context())
			if _, ok := allowed[id]; !ok {
				logger.Warn().Str("account_id", id).Msg("Admin route denied")
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func parseBearer(authHeader, jwtSecret string) (*util.Claims, error) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, errInvalidAuthHeader
	}
	return util.ValidateJWT(parts[1], jwtSecret)
}

func withClaims(ctx context.Context, claims *util.Claims) context.Context {
	ctx = context.WithValue(ctx, AccountContextKey, claims.Subject)
	return context.WithValue(ctx, EmailContextKey, claims.Email)
}
