package partners

import (
	"context"

	"github.com/afflo-hq/afflo-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles partner persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to partner operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new partner row.
func (r *Repository) Create(ctx context.Context, dto CreatePartnerDTO) (*models.Partner, error) {
	partner := dto.ToModel()
	partner.ID = uuid.New()
	if err := r.db.WithContext(ctx).Create(partner).Error; err != nil {
		return nil, err
	}
	return partner, nil
}

// CreateWithTx persists a new partner using the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, dto CreatePartnerDTO) (*models.Partner, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	partner := dto.ToModel()
	partner.ID = uuid.New()
	if err := tx.Create(partner).Error; err != nil {
		return nil, err
	}
	return partner, nil
}

// FindByID loads a partner by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	var partner models.Partner
	if err := r.db.WithContext(ctx).First(&partner, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

// FindAll returns every partner ordered by name.
func (r *Repository) FindAll(ctx context.Context) ([]models.Partner, error) {
	var rows []models.Partner
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
