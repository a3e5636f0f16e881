package affiliates

import (
	"context"

	"github.com/afflo-hq/afflo-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles affiliate persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to affiliate operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new affiliate row.
func (r *Repository) Create(ctx context.Context, userID uuid.UUID) (*models.Affiliate, error) {
	affiliate := &models.Affiliate{ID: uuid.New(), UserID: userID}
	if err := r.db.WithContext(ctx).Create(affiliate).Error; err != nil {
		return nil, err
	}
	return affiliate, nil
}

// FindByID loads an affiliate by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Affiliate, error) {
	var affiliate models.Affiliate
	if err := r.db.WithContext(ctx).First(&affiliate, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &affiliate, nil
}

// FindByUserID returns the affiliate owned by the provided user, if any.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Affiliate, error) {
	var affiliate models.Affiliate
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&affiliate).Error; err != nil {
		return nil, err
	}
	return &affiliate, nil
}

// LinkPartner inserts the affiliate/partner join row.
func (r *Repository) LinkPartner(ctx context.Context, affiliateID, partnerID uuid.UUID) (*models.AffiliatePartner, error) {
	link := &models.AffiliatePartner{
		AffiliateID: affiliateID,
		PartnerID:   partnerID,
	}
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

// IsLinkedToPartner reports whether the affiliate is attached to the partner.
func (r *Repository) IsLinkedToPartner(ctx context.Context, affiliateID, partnerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AffiliatePartner{}).
		Where("affiliate_id = ? AND partner_id = ?", affiliateID, partnerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByPartner returns the affiliates linked to the partner.
func (r *Repository) ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]models.Affiliate, error) {
	var rows []models.Affiliate
	err := r.db.WithContext(ctx).
		Joins("JOIN affiliate_partners ON affiliate_partners.affiliate_id = affiliates.id").
		Where("affiliate_partners.partner_id = ?", partnerID).
		Order("affiliates.created_at").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
