package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/afflo-hq/afflo-backend/internal/admins"
	"github.com/afflo-hq/afflo-backend/internal/partners"
	"github.com/afflo-hq/afflo-backend/pkg/db"
	pkgerrors "github.com/afflo-hq/afflo-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const storefrontSecretBytes = 32

// SetupCompanyService handles tenant onboarding for an authenticated user.
type SetupCompanyService interface {
	SetupCompany(ctx context.Context, userID uuid.UUID, req SetupCompanyRequest) (*partners.PartnerAdminDTO, error)
}

// SetupCompanyServiceParams packages the dependencies for the onboarding flow.
type SetupCompanyServiceParams struct {
	DB *db.Client
}

type setupCompanyService struct {
	db *db.Client
}

// NewSetupCompanyService builds the onboarding service.
func NewSetupCompanyService(params SetupCompanyServiceParams) (SetupCompanyService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &setupCompanyService{db: params.DB}, nil
}

// SetupCompany creates the partner and its admin row in one transaction. The
// unique index on admins.user_id guarantees a user administers at most one
// partner even when two requests race.
func (s *setupCompanyService) SetupCompany(ctx context.Context, userID uuid.UUID, req SetupCompanyRequest) (*partners.PartnerAdminDTO, error) {
	secret := strings.TrimSpace(req.StorefrontSecret)
	if secret == "" {
		generated, err := generateStorefrontSecret()
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate storefront secret")
		}
		secret = generated
	}

	var created *partners.PartnerAdminDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		partnerRepo := partners.NewRepository(tx)
		adminRepo := admins.NewRepository(tx)

		if _, err := adminRepo.FindByUserID(ctx, userID); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "user already administers a partner")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check admin record")
		}

		partner, err := partnerRepo.CreateWithTx(tx, partners.CreatePartnerDTO{
			Name:             strings.TrimSpace(req.CompanyName),
			Domain:           strings.ToLower(strings.TrimSpace(req.Domain)),
			StorefrontSecret: secret,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create partner")
		}

		if _, err := adminRepo.CreateWithTx(tx, userID, partner.ID); err != nil {
			if db.IsUniqueViolation(err, "idx_admins_user_id") {
				return pkgerrors.New(pkgerrors.CodeConflict, "user already administers a partner")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create admin")
		}

		created = partners.AdminFromModel(partner)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func generateStorefrontSecret() (string, error) {
	bytes := make([]byte, storefrontSecretBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
