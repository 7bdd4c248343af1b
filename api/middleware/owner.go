package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/wellway-health/wellway-backend/api/responses"
	pkgerrors "github.com/wellway-health/wellway-backend/pkg/errors"
	"github.com/wellway-health/wellway-backend/pkg/logger"
)

const ownerIDHeader = "X-Owner-Id"

type ownerIDKey struct{}

// OwnerContext resolves the cart owner from the X-Owner-Id header and rejects
// requests that omit it. The gateway in front of this service authenticates
// the user and injects the header.
func OwnerContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(ownerIDHeader))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "X-Owner-Id header required"))
				return
			}
			ownerID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || ownerID <= 0 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "X-Owner-Id must be a positive integer"))
				return
			}

			ctx := context.WithValue(r.Context(), ownerIDKey{}, ownerID)
			if logg != nil {
				ctx = logg.WithOwnerID(ctx, ownerID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OwnerIDFromContext returns the owner set by OwnerContext, or 0.
func OwnerIDFromContext(ctx context.Context) int64 {
	ownerID, _ := ctx.Value(ownerIDKey{}).(int64)
	return ownerID
}
