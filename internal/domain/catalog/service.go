package catalog

import (
	"context"
	"errors"
	"strings"

	"provider-dashboard/internal/ports/auth"
	"provider-dashboard/internal/ports/marketplace"
)

var ErrInvalidInput = errors.New("invalid input")

// Service gestiona el catálogo del provider contra el marketplace.
// Concern secundario pero cercano al de bookings: un listing no aprobado
// bloquea transiciones de sus bookings (eso lo reporta el server).
type Service struct {
	api marketplace.API
}

func NewService(api marketplace.API) *Service {
	return &Service{api: api}
}

type ListingInput struct {
	ServiceType string
	Description string
	Price       float64
	Duration    string
}

func (in ListingInput) validate() error {
	// Mismo criterio del form original: tipo y precio son obligatorios.
	if strings.TrimSpace(in.ServiceType) == "" {
		return ErrInvalidInput
	}
	if in.Price <= 0 {
		return ErrInvalidInput
	}
	return nil
}

func (in ListingInput) toWire() marketplace.ServiceInput {
	return marketplace.ServiceInput{
		ServiceType: strings.TrimSpace(in.ServiceType),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Duration:    strings.TrimSpace(in.Duration),
	}
}

func (s *Service) ListByProvider(ctx context.Context, sess auth.Session) ([]Listing, error) {
	providerID := strings.TrimSpace(sess.Claims.ProviderID)
	if providerID == "" {
		return nil, ErrInvalidInput
	}

	records, err := s.api.ListServices(ctx, sess.Token, providerID)
	if err != nil {
		return nil, err
	}

	out := make([]Listing, 0, len(records))
	for _, r := range records {
		out = append(out, fromRecord(r))
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, sess auth.Session, in ListingInput) (Listing, error) {
	if err := in.validate(); err != nil {
		return Listing{}, err
	}

	record, err := s.api.CreateService(ctx, sess.Token, in.toWire())
	if err != nil {
		return Listing{}, err
	}
	return fromRecord(record), nil
}

func (s *Service) Update(ctx context.Context, sess auth.Session, listingID string, in ListingInput) (Listing, error) {
	listingID = strings.TrimSpace(listingID)
	if listingID == "" {
		return Listing{}, ErrInvalidInput
	}
	if err := in.validate(); err != nil {
		return Listing{}, err
	}

	record, err := s.api.UpdateService(ctx, sess.Token, listingID, in.toWire())
	if err != nil {
		return Listing{}, err
	}
	return fromRecord(record), nil
}

func (s *Service) Delete(ctx context.Context, sess auth.Session, listingID string) error {
	listingID = strings.TrimSpace(listingID)
	if listingID == "" {
		return ErrInvalidInput
	}
	return s.api.DeleteService(ctx, sess.Token, listingID)
}
