package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Partner represents the canonical tenant model: a company managing its
// affiliates through the platform. StorefrontSecret is the shared secret used
// to verify webhook signatures from the partner's storefront.
type Partner struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name             string         `gorm:"column:name;not null"`
	Domain           string         `gorm:"column:domain;not null"`
	StorefrontSecret string         `gorm:"column:storefront_secret;not null"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at;index"`
}
