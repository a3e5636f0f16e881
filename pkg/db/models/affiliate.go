package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Affiliate is a person selling on behalf of partners. Deliberately not
// tenant-scoped: the same affiliate can work with multiple partners through
// the affiliate_partners join.
type Affiliate struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID      `gorm:"column:user_id;type:uuid;not null"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}
