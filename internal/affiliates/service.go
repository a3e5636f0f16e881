package affiliates

import (
	"context"
	"errors"
	"fmt"

	"github.com/afflo-hq/afflo-backend/pkg/db"
	"github.com/afflo-hq/afflo-backend/pkg/db/models"
	pkgerrors "github.com/afflo-hq/afflo-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the affiliate controllers.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID) (*AffiliateDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*AffiliateDTO, error)
	LinkToPartner(ctx context.Context, affiliateID, partnerID uuid.UUID) (*LinkDTO, error)
	ListForPartner(ctx context.Context, partnerID uuid.UUID) ([]AffiliateDTO, error)
}

type service struct {
	affiliates affiliateRepository
	users      userRepository
}

type affiliateRepository interface {
	Create(ctx context.Context, userID uuid.UUID) (*models.Affiliate, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Affiliate, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Affiliate, error)
	LinkPartner(ctx context.Context, affiliateID, partnerID uuid.UUID) (*models.AffiliatePartner, error)
	ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]models.Affiliate, error)
}

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ServiceParams bundles the dependencies required to build an affiliate service.
type ServiceParams struct {
	AffiliateRepo affiliateRepository
	UserRepo      userRepository
}

// NewService constructs an affiliate service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.AffiliateRepo == nil {
		return nil, fmt.Errorf("affiliate repository is required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{
		affiliates: params.AffiliateRepo,
		users:      params.UserRepo,
	}, nil
}

// Create registers the user as an affiliate. A user gets at most one
// affiliate record.
func (s *service) Create(ctx context.Context, userID uuid.UUID) (*AffiliateDTO, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	if existing, err := s.affiliates.FindByUserID(ctx, userID); err == nil && existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "user is already an affiliate")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check existing affiliate")
	}

	affiliate, err := s.affiliates.Create(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create affiliate")
	}
	return FromModel(affiliate), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*AffiliateDTO, error) {
	affiliate, err := s.affiliates.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "affiliate not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup affiliate")
	}
	return FromModel(affiliate), nil
}

// LinkToPartner attaches an existing affiliate to the caller's partner.
func (s *service) LinkToPartner(ctx context.Context, affiliateID, partnerID uuid.UUID) (*LinkDTO, error) {
	if _, err := s.affiliates.FindByID(ctx, affiliateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "affiliate not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup affiliate")
	}

	link, err := s.affiliates.LinkPartner(ctx, affiliateID, partnerID)
	if err != nil {
		if db.IsUniqueViolation(err, "affiliate_partners_pkey") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "affiliate already linked to partner")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "link affiliate")
	}
	return LinkFromModel(link), nil
}

func (s *service) ListForPartner(ctx context.Context, partnerID uuid.UUID) ([]AffiliateDTO, error) {
	rows, err := s.affiliates.ListByPartner(ctx, partnerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list affiliates")
	}
	out := make([]AffiliateDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}
