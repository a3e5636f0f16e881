package models

import (
	"time"

	"github.com/google/uuid"
)

// AffiliatePartner is the many-to-many join between affiliates and partners.
type AffiliatePartner struct {
	AffiliateID uuid.UUID `gorm:"column:affiliate_id;type:uuid;not null;primaryKey"`
	PartnerID   uuid.UUID `gorm:"column:partner_id;type:uuid;not null;primaryKey"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides GORM's pluralization.
func (AffiliatePartner) TableName() string {
	return "affiliate_partners"
}
