package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/afflo-hq/afflo-backend/api/middleware"
	"github.com/afflo-hq/afflo-backend/api/responses"
	"github.com/afflo-hq/afflo-backend/api/validators"
	"github.com/afflo-hq/afflo-backend/internal/affiliates"
	pkgerrors "github.com/afflo-hq/afflo-backend/pkg/errors"
	"github.com/afflo-hq/afflo-backend/pkg/logger"
)

// CreateAffiliateRequest is the payload for registering a user as an affiliate.
type CreateAffiliateRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

// AffiliateCreate registers a user as an affiliate.
func AffiliateCreate(svc affiliates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "affiliate service unavailable"))
			return
		}

		var body CreateAffiliateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		affiliate, err := svc.Create(r.Context(), body.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, affiliate)
	}
}

// AffiliateGet returns an affiliate by id.
func AffiliateGet(svc affiliates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "affiliate service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		affiliate, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, affiliate)
	}
}

// AffiliateLinkPartner attaches an affiliate to the caller's partner program.
func AffiliateLinkPartner(svc affiliates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "affiliate service unavailable"))
			return
		}

		affiliateID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partnerID, err := uuid.Parse(middleware.PartnerIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "partner context missing"))
			return
		}

		link, err := svc.LinkToPartner(r.Context(), affiliateID, partnerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, link)
	}
}

// AffiliateList returns the affiliates linked to the caller's partner.
func AffiliateList(svc affiliates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "affiliate service unavailable"))
			return
		}

		partnerID, err := uuid.Parse(middleware.PartnerIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "partner context missing"))
			return
		}

		list, err := svc.ListForPartner(r.Context(), partnerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}
