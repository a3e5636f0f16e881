package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin links a user with the single partner they administer. The unique
// index on user_id is what enforces one-partner-per-admin; the service-level
// pre-check only exists to give a clean Conflict message.
type Admin struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_admins_user_id"`
	PartnerID uuid.UUID `gorm:"column:partner_id;type:uuid;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
