package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/afflo-hq/afflo-backend/pkg/enums"
)

// AffiliateEvent records an immutable piece of affiliate activity scoped to a
// partner. Rows are created, never updated; the ledger accumulates over time
// and is only ever read back with a partner filter.
type AffiliateEvent struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AffiliateID uuid.UUID       `gorm:"column:affiliate_id;type:uuid;not null;index"`
	PartnerID   uuid.UUID       `gorm:"column:partner_id;type:uuid;not null;index"`
	Type        enums.EventType `gorm:"column:type;type:text;not null"`
	Data        json.RawMessage `gorm:"column:data;type:jsonb;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`

	Affiliate *Affiliate `gorm:"foreignKey:AffiliateID"`
}
