package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/afflo-hq/afflo-backend/api/middleware"
	"github.com/afflo-hq/afflo-backend/api/responses"
	"github.com/afflo-hq/afflo-backend/api/validators"
	"github.com/afflo-hq/afflo-backend/internal/events"
	"github.com/afflo-hq/afflo-backend/pkg/enums"
	pkgerrors "github.com/afflo-hq/afflo-backend/pkg/errors"
	"github.com/afflo-hq/afflo-backend/pkg/logger"
	"github.com/afflo-hq/afflo-backend/pkg/pagination"
)

// CreateEventRequest is the payload for appending a ledger event.
type CreateEventRequest struct {
	AffiliateID uuid.UUID       `json:"affiliate_id" validate:"required"`
	Type        string          `json:"type" validate:"required"`
	Data        json.RawMessage `json:"data" validate:"required"`
}

// EventCreate appends an event to the caller's ledger.
func EventCreate(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event service unavailable"))
			return
		}

		var body CreateEventRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partnerID, err := uuid.Parse(middleware.PartnerIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "partner context missing"))
			return
		}

		event, err := svc.Create(r.Context(), events.CreateEventDTO{
			AffiliateID: body.AffiliateID,
			PartnerID:   partnerID,
			Type:        enums.EventType(strings.ToLower(strings.TrimSpace(body.Type))),
			Data:        body.Data,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, event)
	}
}

// EventList returns one cursor page of the caller's ledger, oldest first.
func EventList(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event service unavailable"))
			return
		}

		partnerID, err := uuid.Parse(middleware.PartnerIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "partner context missing"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListForPartner(r.Context(), partnerID, pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// EventGet returns one event from the caller's ledger.
func EventGet(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partnerID, err := uuid.Parse(middleware.PartnerIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "partner context missing"))
			return
		}

		event, err := svc.Get(r.Context(), id, partnerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, event)
	}
}
