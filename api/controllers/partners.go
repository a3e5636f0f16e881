package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/afflo-hq/afflo-backend/api/middleware"
	"github.com/afflo-hq/afflo-backend/api/responses"
	"github.com/afflo-hq/afflo-backend/api/validators"
	"github.com/afflo-hq/afflo-backend/internal/partners"
	pkgerrors "github.com/afflo-hq/afflo-backend/pkg/errors"
	"github.com/afflo-hq/afflo-backend/pkg/logger"
)

// CreatePartnerRequest is the payload for a bare partner create.
type CreatePartnerRequest struct {
	Name             string `json:"name" validate:"required"`
	Domain           string `json:"domain" validate:"required,fqdn"`
	StorefrontSecret string `json:"storefront_secret" validate:"required"`
}

// PartnerMe returns the caller's administered partner, or null data for a
// user who has not set up a company yet.
func PartnerMe(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partner service unavailable"))
			return
		}

		userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		partner, err := svc.GetCurrent(r.Context(), userID)
		if err != nil {
			if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() == pkgerrors.CodeForbidden {
				responses.WriteSuccess(w, nil)
				return
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, partner)
	}
}

// PartnerGet returns a partner by id.
func PartnerGet(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partner service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partner, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, partner)
	}
}

// PartnerList returns every partner.
func PartnerList(svc partners.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partner service unavailable"))
			return
		}

		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// PartnerCreate persists a partner without attaching an admin.
func PartnerCreate(repo *partners.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "partner repository unavailable"))
			return
		}

		var body CreatePartnerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partner, err := repo.Create(r.Context(), partners.CreatePartnerDTO{
			Name:             strings.TrimSpace(body.Name),
			Domain:           strings.ToLower(strings.TrimSpace(body.Domain)),
			StorefrontSecret: body.StorefrontSecret,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create partner"))
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, partners.FromModel(partner))
	}
}
