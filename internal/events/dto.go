package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/afflo-hq/afflo-backend/internal/affiliates"
	"github.com/afflo-hq/afflo-backend/pkg/db/models"
	"github.com/afflo-hq/afflo-backend/pkg/enums"
)

// EventDTO is the transport shape for one ledger entry, joined with the
// affiliate it belongs to.
type EventDTO struct {
	ID          uuid.UUID                `json:"id"`
	AffiliateID uuid.UUID                `json:"affiliate_id"`
	PartnerID   uuid.UUID                `json:"partner_id"`
	Type        enums.EventType          `json:"type"`
	Data        json.RawMessage          `json:"data"`
	Affiliate   *affiliates.AffiliateDTO `json:"affiliate,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
}

// CreateEventDTO holds the data required to append a new event.
type CreateEventDTO struct {
	AffiliateID uuid.UUID
	PartnerID   uuid.UUID
	Type        enums.EventType
	Data        json.RawMessage
}

// PageDTO is one cursor page of events.
type PageDTO struct {
	Events     []EventDTO `json:"events"`
	NextCursor *string    `json:"next_cursor,omitempty"`
}

// FromModel maps the persisted event into a DTO.
func FromModel(m *models.AffiliateEvent) *EventDTO {
	if m == nil {
		return nil
	}
	return &EventDTO{
		ID:          m.ID,
		AffiliateID: m.AffiliateID,
		PartnerID:   m.PartnerID,
		Type:        m.Type,
		Data:        m.Data,
		Affiliate:   affiliates.FromModel(m.Affiliate),
		CreatedAt:   m.CreatedAt,
	}
}

// ToModel prepares the GORM model from the creation DTO.
func (c CreateEventDTO) ToModel() *models.AffiliateEvent {
	return &models.AffiliateEvent{
		AffiliateID: c.AffiliateID,
		PartnerID:   c.PartnerID,
		Type:        c.Type,
		Data:        c.Data,
	}
}
