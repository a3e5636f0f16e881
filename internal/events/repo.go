package events

import (
	"context"

	"github.com/afflo-hq/afflo-backend/pkg/db/models"
	"github.com/afflo-hq/afflo-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository manages persistence for affiliate events. Events are only ever
// inserted; there is no update or delete path.
type Repository struct {
	db *gorm.DB
}

// NewRepository returns an event repository bound to the provided database.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create appends a new event to the ledger.
func (r *Repository) Create(ctx context.Context, event *models.AffiliateEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(event).Error
}

// FindByID loads an event within the partner scope.
func (r *Repository) FindByID(ctx context.Context, id, partnerID uuid.UUID) (*models.AffiliateEvent, error) {
	var event models.AffiliateEvent
	err := r.db.WithContext(ctx).
		Preload("Affiliate").
		Where("id = ? AND partner_id = ?", id, partnerID).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ListByPartner returns up to limit events for the partner after the cursor,
// oldest first. Ties on created_at break on id so pages never skip or repeat
// rows.
func (r *Repository) ListByPartner(ctx context.Context, partnerID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.AffiliateEvent, error) {
	query := r.db.WithContext(ctx).
		Preload("Affiliate").
		Where("partner_id = ?", partnerID)

	if cursor != nil {
		query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var events []models.AffiliateEvent
	err := query.
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
