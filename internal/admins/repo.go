package admins

import (
	"context"

	"github.com/afflo-hq/afflo-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes admin persistence operations. An admin row ties one
// user to the single partner they administer.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByUserID returns the admin record for a user, if any.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// CreateWithTx inserts an admin row inside the provided transaction. The
// unique index on user_id rejects a second partner for the same user.
func (r *Repository) CreateWithTx(tx *gorm.DB, userID, partnerID uuid.UUID) (*models.Admin, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	admin := &models.Admin{
		ID:        uuid.New(),
		UserID:    userID,
		PartnerID: partnerID,
	}
	if err := tx.Create(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}

// ListByPartner returns the admins attached to the partner.
func (r *Repository) ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]models.Admin, error) {
	var rows []models.Admin
	err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
