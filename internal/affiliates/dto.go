package affiliates

import (
	"time"

	"github.com/google/uuid"

	"github.com/afflo-hq/afflo-backend/pkg/db/models"
)

// AffiliateDTO is the transport shape for an affiliate.
type AffiliateDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LinkDTO is the transport shape for an affiliate/partner link.
type LinkDTO struct {
	AffiliateID uuid.UUID `json:"affiliate_id"`
	PartnerID   uuid.UUID `json:"partner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromModel maps the persisted affiliate into a DTO.
func FromModel(m *models.Affiliate) *AffiliateDTO {
	if m == nil {
		return nil
	}
	return &AffiliateDTO{
		ID:        m.ID,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// LinkFromModel maps the join row into a DTO.
func LinkFromModel(m *models.AffiliatePartner) *LinkDTO {
	if m == nil {
		return nil
	}
	return &LinkDTO{
		AffiliateID: m.AffiliateID,
		PartnerID:   m.PartnerID,
		CreatedAt:   m.CreatedAt,
	}
}
