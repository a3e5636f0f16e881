package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/afflo-hq/afflo-backend/pkg/db/models"
	pkgerrors "github.com/afflo-hq/afflo-backend/pkg/errors"
	"github.com/afflo-hq/afflo-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the event controllers.
type Service interface {
	Create(ctx context.Context, dto CreateEventDTO) (*EventDTO, error)
	Get(ctx context.Context, id, partnerID uuid.UUID) (*EventDTO, error)
	ListForPartner(ctx context.Context, partnerID uuid.UUID, params pagination.Params) (*PageDTO, error)
}

type service struct {
	events    eventRepository
	linkCheck linkChecker
}

type eventRepository interface {
	Create(ctx context.Context, event *models.AffiliateEvent) error
	FindByID(ctx context.Context, id, partnerID uuid.UUID) (*models.AffiliateEvent, error)
	ListByPartner(ctx context.Context, partnerID uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.AffiliateEvent, error)
}

type linkChecker interface {
	IsLinkedToPartner(ctx context.Context, affiliateID, partnerID uuid.UUID) (bool, error)
}

// ServiceParams bundles the dependencies required to build an event service.
type ServiceParams struct {
	EventRepo   eventRepository
	LinkChecker linkChecker
}

// NewService constructs an event service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.EventRepo == nil {
		return nil, fmt.Errorf("event repository is required")
	}
	if params.LinkChecker == nil {
		return nil, fmt.Errorf("link checker is required")
	}
	return &service{
		events:    params.EventRepo,
		linkCheck: params.LinkChecker,
	}, nil
}

// Create appends an event after confirming the affiliate belongs to the
// partner's program.
func (s *service) Create(ctx context.Context, dto CreateEventDTO) (*EventDTO, error) {
	if !dto.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeUnprocessable, fmt.Sprintf("unknown event type %q", dto.Type))
	}
	if len(dto.Data) == 0 || !json.Valid(dto.Data) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "data must be a JSON object")
	}

	linked, err := s.linkCheck.IsLinkedToPartner(ctx, dto.AffiliateID, dto.PartnerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check affiliate link")
	}
	if !linked {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "affiliate not linked to partner")
	}

	event := dto.ToModel()
	if err := s.events.Create(ctx, event); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create event")
	}
	return FromModel(event), nil
}

func (s *service) Get(ctx context.Context, id, partnerID uuid.UUID) (*EventDTO, error) {
	event, err := s.events.FindByID(ctx, id, partnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup event")
	}
	return FromModel(event), nil
}

// ListForPartner returns one cursor page of the partner's ledger, oldest
// first.
func (s *service) ListForPartner(ctx context.Context, partnerID uuid.UUID, params pagination.Params) (*PageDTO, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.events.ListByPartner(ctx, partnerID, cursor, limit+1)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list events")
	}

	page := &PageDTO{Events: make([]EventDTO, 0, len(rows))}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for i := range rows {
		page.Events = append(page.Events, *FromModel(&rows[i]))
	}
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		next := pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
		page.NextCursor = &next
	}
	return page, nil
}
