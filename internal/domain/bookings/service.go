package bookings

import (
	"context"
	"errors"
	"strings"

	"provider-dashboard/internal/ports/auth"
	"provider-dashboard/internal/ports/marketplace"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrIllegalTransition: la arista pedida no está en la tabla para el
	// estado local actual del booking. Es el guard de UI; el server puede
	// rechazar igual y eso se reporta como falla normal de operación.
	ErrIllegalTransition = errors.New("illegal status transition")
)

// Service es el controller del ciclo de vida: ejecuta transiciones
// iniciadas por el provider y reconcilia el estado local con la respuesta
// autoritativa del server.
type Service struct {
	api    marketplace.API
	stores StoreRegistry
}

func NewService(api marketplace.API, stores StoreRegistry) *Service {
	return &Service{
		api:    api,
		stores: stores,
	}
}

// StoreFor expone el store del provider (para la vista y sus handlers).
func (s *Service) StoreFor(providerID string) *Store {
	return s.stores.ForProvider(providerID)
}

// Refresh trae la colección completa del server y reemplaza el store.
// No hay retry automático: el retry es esta misma operación, disparada
// explícitamente por el caller.
func (s *Service) Refresh(ctx context.Context, sess auth.Session) error {
	providerID := strings.TrimSpace(sess.Claims.ProviderID)
	if providerID == "" {
		return ErrInvalidInput
	}

	records, err := s.api.ListBookings(ctx, sess.Token, providerID)
	if err != nil {
		// El store queda intacto: una falla de fetch nunca borra la vista.
		return err
	}

	list := make([]Booking, 0, len(records))
	for _, r := range records {
		list = append(list, FromRecord(r))
	}

	s.stores.ForProvider(providerID).SetBookings(list)
	return nil
}

// Transition ejecuta una transición de estado:
//  1. guard local contra la tabla (si el booking está en el store);
//  2. update en el server;
//  3. en éxito, re-fetch completo y awaited — el estado que queda visible
//     es siempre el autoritativo del server, incluidos side effects;
//  4. en falla, el estado local no se toca.
func (s *Service) Transition(ctx context.Context, sess auth.Session, bookingID string, target Status) error {
	providerID := strings.TrimSpace(sess.Claims.ProviderID)
	bookingID = strings.TrimSpace(bookingID)
	if providerID == "" || bookingID == "" {
		return ErrInvalidInput
	}
	if !target.IsValid() {
		return ErrInvalidInput
	}

	// Guard local: solo se ofrece la acción para el estado actual.
	// Si el booking no está en el store (vista stale), decide el server.
	if current, ok := s.stores.ForProvider(providerID).StatusOf(bookingID); ok {
		if !CanTransition(current, target) {
			return ErrIllegalTransition
		}
	}

	if err := s.api.UpdateBookingStatus(ctx, sess.Token, bookingID, string(target)); err != nil {
		return err
	}

	return s.Refresh(ctx, sess)
}
