package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tailongswayam2000/trip-planner-backend/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// TripIDKey is the context key for storing the authenticated trip ID.
const TripIDKey contextKey = "trip_id"

// GetTripID extracts the trip ID from the context.
// Returns empty string if not found.
func GetTripID(ctx context.Context) string {
	tripID, _ := ctx.Value(TripIDKey).(string)
	return tripID
}

// RequireTripAccess returns middleware that validates Bearer trip tokens.
// It extracts the token from the Authorization header, validates it, and
// adds the trip ID to the request context. Handlers still have to check the
// token's trip against the resource they serve (see RequireTripMatch).
func RequireTripAccess(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, auth.ErrMissingToken.Error(), http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, auth.ErrInvalidToken.Error(), http.StatusUnauthorized)
				return
			}

			claims, err := jwtManager.Validate(parts[1])
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), TripIDKey, claims.TripID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTripMatch writes a 403 and returns false when the authenticated
// trip does not match the trip a resource belongs to.
func RequireTripMatch(w http.ResponseWriter, r *http.Request, tripID string) bool {
	if GetTripID(r.Context()) != tripID {
		http.Error(w, "token does not grant access to this trip", http.StatusForbidden)
		return false
	}
	return true
}
