package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/afflo-hq/afflo-backend/pkg/db/models"
	pkgerrors "github.com/afflo-hq/afflo-backend/pkg/errors"
	"github.com/google/uuid"
)

type stubTenantResolver struct {
	partner *models.Partner
	err     error
}

func (s stubTenantResolver) ResolveForUser(ctx context.Context, userID uuid.UUID) (*models.Partner, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.partner, nil
}

func TestPartnerContextSeedsPartnerID(t *testing.T) {
	partnerID := uuid.New()
	resolver := stubTenantResolver{partner: &models.Partner{ID: partnerID, Name: "Acme"}}

	var captured string
	handler := PartnerContext(resolver, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = PartnerIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUserID(req.Context(), uuid.NewString()))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured != partnerID.String() {
		t.Fatalf("expected partner %s got %s", partnerID, captured)
	}
}

func TestPartnerContextRejectsMissingUser(t *testing.T) {
	handler := PartnerContext(stubTenantResolver{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestPartnerContextRejectsUserWithoutPartner(t *testing.T) {
	resolver := stubTenantResolver{err: pkgerrors.New(pkgerrors.CodeForbidden, "no partner for user")}
	handler := PartnerContext(resolver, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUserID(req.Context(), uuid.NewString()))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestPartnerContextFailsClosedOnStorageError(t *testing.T) {
	resolver := stubTenantResolver{err: pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("db down"), "resolve partner")}
	handler := PartnerContext(resolver, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUserID(req.Context(), uuid.NewString()))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}
