// Package auth guards routes with bearer tokens and puts the caller's
// identity on the request context.
package auth

import (
	"log/slog"
	"net/http"
	"strings"

	id "callerid/pkg/domain"
	dErrors "callerid/pkg/domain-errors"
	"callerid/pkg/platform/httputil"
	"callerid/pkg/requestcontext"
)

// JWTValidator defines the interface for validating JWT tokens
type JWTValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims is what the middleware needs from a verified token.
type Claims struct {
	UserID id.UserID
	Phone  string
}

const bearerPrefix = "Bearer "

// RequireAuth rejects requests without a valid bearer token with 401.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
			if !ok || strings.TrimSpace(token) == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Access token required"))
				return
			}

			claims, err := validator.ValidateToken(strings.TrimSpace(token))
			if err != nil || claims.UserID.IsZero() {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired token"))
				return
			}

			ctx = requestcontext.WithUserID(ctx, claims.UserID)
			ctx = requestcontext.WithPhone(ctx, claims.Phone)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
