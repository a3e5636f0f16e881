package partners

import (
	"time"

	"github.com/google/uuid"

	"github.com/afflo-hq/afflo-backend/pkg/db/models"
)

// PartnerDTO exposes partner data without the storefront secret.
type PartnerDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PartnerAdminDTO is the shape returned to the partner's own admins. It
// includes the storefront secret so the storefront can be wired up.
type PartnerAdminDTO struct {
	PartnerDTO
	StorefrontSecret string `json:"storefront_secret"`
}

// CreatePartnerDTO holds creation-time data for a new partner.
type CreatePartnerDTO struct {
	Name             string
	Domain           string
	StorefrontSecret string
}

// FromModel maps the persisted partner into the public DTO.
func FromModel(m *models.Partner) *PartnerDTO {
	if m == nil {
		return nil
	}
	return &PartnerDTO{
		ID:        m.ID,
		Name:      m.Name,
		Domain:    m.Domain,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// AdminFromModel maps the persisted partner into the admin-only DTO.
func AdminFromModel(m *models.Partner) *PartnerAdminDTO {
	if m == nil {
		return nil
	}
	return &PartnerAdminDTO{
		PartnerDTO:       *FromModel(m),
		StorefrontSecret: m.StorefrontSecret,
	}
}

// ToModel prepares the GORM model from the creation DTO.
func (c CreatePartnerDTO) ToModel() *models.Partner {
	return &models.Partner{
		Name:             c.Name,
		Domain:           c.Domain,
		StorefrontSecret: c.StorefrontSecret,
	}
}
