package middleware

import (
	"context"
	"net/http"

	"github.com/afflo-hq/afflo-backend/api/responses"
	"github.com/afflo-hq/afflo-backend/pkg/db/models"
	pkgerrors "github.com/afflo-hq/afflo-backend/pkg/errors"
	"github.com/afflo-hq/afflo-backend/pkg/logger"
	"github.com/google/uuid"
)

type tenantResolver interface {
	ResolveForUser(ctx context.Context, userID uuid.UUID) (*models.Partner, error)
}

// PartnerContext resolves the caller's tenant from storage on every request.
// It runs after Auth; a user without a partner is rejected with 403, and a
// storage failure is surfaced as a dependency error rather than an open door.
func PartnerContext(resolver tenantResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if resolver == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "tenant resolver unavailable"))
				return
			}

			userID, err := uuid.Parse(UserIDFromContext(ctx))
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			partner, err := resolver.ResolveForUser(ctx, userID)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}

			ctx = context.WithValue(ctx, ctxPartnerID, partner.ID.String())
			if logg != nil {
				ctx = logg.WithPartnerID(ctx, partner.ID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
