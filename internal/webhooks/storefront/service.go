package storefrontwebhook

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/afflo-hq/afflo-backend/internal/events"
	"github.com/afflo-hq/afflo-backend/pkg/db/models"
	"github.com/afflo-hq/afflo-backend/pkg/enums"
	pkgerrors "github.com/afflo-hq/afflo-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleEvent is the payload a partner storefront posts when an attributed
// purchase completes.
type SaleEvent struct {
	AffiliateID uuid.UUID       `json:"affiliate_id"`
	OrderID     string          `json:"order_id"`
	Data        json.RawMessage `json:"data"`
}

type partnerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Partner, error)
}

type eventService interface {
	Create(ctx context.Context, dto events.CreateEventDTO) (*events.EventDTO, error)
}

// ServiceParams packages the dependencies for the storefront webhook flow.
type ServiceParams struct {
	PartnerRepo  partnerRepository
	EventService eventService
}

// Service appends sale events posted by partner storefronts.
type Service struct {
	partners partnerRepository
	events   eventService
}

// NewService builds a storefront webhook service.
func NewService(params ServiceParams) (*Service, error) {
	if params.PartnerRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "partner repo required")
	}
	if params.EventService == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "event service required")
	}
	return &Service{
		partners: params.PartnerRepo,
		events:   params.EventService,
	}, nil
}

// SigningSecret returns the shared secret for the partner, used to verify the
// request signature before the payload is trusted.
func (s *Service) SigningSecret(ctx context.Context, partnerID uuid.UUID) (string, error) {
	partner, err := s.partners.FindByID(ctx, partnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "partner not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup partner")
	}
	return partner.StorefrontSecret, nil
}

// HandleSale appends a sale event to the partner's ledger.
func (s *Service) HandleSale(ctx context.Context, partnerID uuid.UUID, event *SaleEvent) (*events.EventDTO, error) {
	if event == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale event required")
	}
	if event.AffiliateID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "affiliate_id is required")
	}

	data := event.Data
	if len(data) == 0 {
		payload := map[string]string{"order_id": event.OrderID}
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode sale payload")
		}
		data = encoded
	}

	return s.events.Create(ctx, events.CreateEventDTO{
		AffiliateID: event.AffiliateID,
		PartnerID:   partnerID,
		Type:        enums.EventTypeSale,
		Data:        data,
	})
}
