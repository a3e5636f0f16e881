package partners

import (
	"context"
	"errors"
	"fmt"

	"github.com/afflo-hq/afflo-backend/pkg/db/models"
	pkgerrors "github.com/afflo-hq/afflo-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the partner controllers and the
// tenant middleware.
type Service interface {
	ResolveForUser(ctx context.Context, userID uuid.UUID) (*models.Partner, error)
	GetCurrent(ctx context.Context, userID uuid.UUID) (*PartnerAdminDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*PartnerDTO, error)
	List(ctx context.Context) ([]PartnerDTO, error)
}

type service struct {
	partners partnerRepository
	admins   adminRepository
}

type partnerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Partner, error)
	FindAll(ctx context.Context) ([]models.Partner, error)
}

type adminRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Admin, error)
}

// ServiceParams bundles the dependencies required to build a partner service.
type ServiceParams struct {
	PartnerRepo partnerRepository
	AdminRepo   adminRepository
}

// NewService constructs a partner service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.PartnerRepo == nil {
		return nil, fmt.Errorf("partner repository is required")
	}
	if params.AdminRepo == nil {
		return nil, fmt.Errorf("admin repository is required")
	}
	return &service{
		partners: params.PartnerRepo,
		admins:   params.AdminRepo,
	}, nil
}

// ResolveForUser returns the partner administered by the user. A user with no
// admin record yields a forbidden error; storage failures surface as
// dependency errors so callers fail closed instead of granting access.
func (s *service) ResolveForUser(ctx context.Context, userID uuid.UUID) (*models.Partner, error) {
	admin, err := s.admins.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "no partner for user")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup admin record")
	}

	partner, err := s.partners.FindByID(ctx, admin.PartnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "no partner for user")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup partner")
	}
	return partner, nil
}

func (s *service) GetCurrent(ctx context.Context, userID uuid.UUID) (*PartnerAdminDTO, error) {
	partner, err := s.ResolveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return AdminFromModel(partner), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*PartnerDTO, error) {
	partner, err := s.partners.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "partner not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup partner")
	}
	return FromModel(partner), nil
}

func (s *service) List(ctx context.Context) ([]PartnerDTO, error) {
	rows, err := s.partners.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list partners")
	}
	out := make([]PartnerDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}
