package partners

import (
	"context"
	"errors"
	"testing"

	"github.com/afflo-hq/afflo-backend/pkg/db/models"
	pkgerrors "github.com/afflo-hq/afflo-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func TestResolveForUserReturnsAdministeredPartner(t *testing.T) {
	userID := uuid.New()
	partner := &models.Partner{ID: uuid.New(), Name: "Acme", Domain: "acme.example.com", StorefrontSecret: "shhh"}
	svc := buildTestService(t,
		stubPartnerRepo{partner: partner},
		stubAdminRepo{admin: &models.Admin{UserID: userID, PartnerID: partner.ID}},
	)

	got, err := svc.ResolveForUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.ID != partner.ID {
		t.Fatalf("expected partner %s, got %s", partner.ID, got.ID)
	}
}

func TestResolveForUserWithoutAdminRecord(t *testing.T) {
	svc := buildTestService(t,
		stubPartnerRepo{},
		stubAdminRepo{err: gorm.ErrRecordNotFound},
	)

	_, err := svc.ResolveForUser(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestResolveForUserFailsClosedOnStorageError(t *testing.T) {
	svc := buildTestService(t,
		stubPartnerRepo{},
		stubAdminRepo{err: errors.New("connection refused")},
	)

	_, err := svc.ResolveForUser(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestGetCurrentIncludesStorefrontSecret(t *testing.T) {
	userID := uuid.New()
	partner := &models.Partner{ID: uuid.New(), Name: "Acme", StorefrontSecret: "shhh"}
	svc := buildTestService(t,
		stubPartnerRepo{partner: partner},
		stubAdminRepo{admin: &models.Admin{UserID: userID, PartnerID: partner.ID}},
	)

	dto, err := svc.GetCurrent(context.Background(), userID)
	if err != nil {
		t.Fatalf("get current: %v", err)
	}
	if dto.StorefrontSecret != "shhh" {
		t.Fatalf("expected secret in admin view, got %q", dto.StorefrontSecret)
	}
}

func TestGetUnknownPartner(t *testing.T) {
	svc := buildTestService(t,
		stubPartnerRepo{err: gorm.ErrRecordNotFound},
		stubAdminRepo{},
	)

	_, err := svc.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListOmitsStorefrontSecret(t *testing.T) {
	svc := buildTestService(t,
		stubPartnerRepo{all: []models.Partner{
			{ID: uuid.New(), Name: "Acme", StorefrontSecret: "shhh"},
			{ID: uuid.New(), Name: "Globex", StorefrontSecret: "hush"},
		}},
		stubAdminRepo{},
	)

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 partners, got %d", len(got))
	}
	if got[0].Name != "Acme" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func buildTestService(t *testing.T, partnerRepo stubPartnerRepo, adminRepo stubAdminRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		PartnerRepo: partnerRepo,
		AdminRepo:   adminRepo,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

type stubPartnerRepo struct {
	partner *models.Partner
	all     []models.Partner
	err     error
}

func (s stubPartnerRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.partner == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.partner, nil
}

func (s stubPartnerRepo) FindAll(ctx context.Context) ([]models.Partner, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.all, nil
}

type stubAdminRepo struct {
	admin *models.Admin
	err   error
}

func (s stubAdminRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Admin, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.admin == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.admin, nil
}
