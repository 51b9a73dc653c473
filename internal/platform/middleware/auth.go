package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// JWTValidator defines the interface for validating bearer tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator.
type JWTClaims struct {
	CustomerID string
	Username   string
}

type contextKeyCustomerID struct{}
type contextKeyUsername struct{}

var (
	ContextKeyCustomerID = contextKeyCustomerID{}
	ContextKeyUsername   = contextKeyUsername{}
)

// GetCustomerID retrieves the authenticated customer id from the context.
func GetCustomerID(ctx context.Context) string {
	customerID, ok := ctx.Value(ContextKeyCustomerID).(string)
	if !ok {
		return ""
	}
	return customerID
}

// GetUsername retrieves the authenticated username from the context.
func GetUsername(ctx context.Context) string {
	username, ok := ctx.Value(ContextKeyUsername).(string)
	if !ok {
		return ""
	}
	return username
}

// RequireAuth guards staff routes. Requests without a valid bearer token get
// a 401 JSON envelope; valid claims land in the request context.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || token == "" {
				unauthorized(w)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				ctx := r.Context()
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyCustomerID, claims.CustomerID)
			ctx = context.WithValue(ctx, ContextKeyUsername, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"Invalid or expired token"}`))
}
