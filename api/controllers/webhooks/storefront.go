package webhooks

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/afflo-hq/afflo-backend/api/responses"
	"github.com/afflo-hq/afflo-backend/api/validators"
	storefrontwebhook "github.com/afflo-hq/afflo-backend/internal/webhooks/storefront"
	pkgerrors "github.com/afflo-hq/afflo-backend/pkg/errors"
	"github.com/afflo-hq/afflo-backend/pkg/logger"
	"github.com/afflo-hq/afflo-backend/pkg/storefront"
)

// StorefrontWebhook accepts signed sale events from partner storefronts.
func StorefrontWebhook(svc *storefrontwebhook.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "webhook service unavailable"))
			return
		}

		partnerID, err := validators.ParsePathUUID(chi.URLParam(r, "partnerId"), "partnerId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request body"))
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(payload))

		signature := r.Header.Get(storefront.SignatureHeader)
		if signature == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "storefront signature missing"))
			return
		}

		// An unknown partner answers exactly like a bad signature so the
		// endpoint cannot be used to enumerate partner IDs.
		secret, err := svc.SigningSecret(ctx, partnerID)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid storefront signature"))
				return
			}
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if !storefront.VerifySignature(payload, secret, signature) {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid storefront signature"))
			return
		}

		var event storefrontwebhook.SaleEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode event"))
			return
		}

		created, err := svc.HandleSale(ctx, partnerID, &event)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(ctx, "storefront sale event recorded")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}
