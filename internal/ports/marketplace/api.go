package marketplace

import "context"

// API es el contrato con el backend del marketplace.
// Cada operación recibe el bearer token explícito; el adapter lo adjunta
// a todos los requests. Ningún error de transporte escapa sin tipar.
type API interface {
	// GetProvider trae el registro del provider (rol + estado de aprobación).
	GetProvider(ctx context.Context, token, providerID string) (ProviderRecord, error)

	// ListBookings trae todos los bookings del provider, en el orden del server.
	ListBookings(ctx context.Context, token, providerID string) ([]BookingRecord, error)

	// UpdateBookingStatus pide la transición de estado de un booking.
	UpdateBookingStatus(ctx context.Context, token, bookingID, status string) error

	// Catálogo de servicios del provider (concern secundario).
	ListServices(ctx context.Context, token, providerID string) ([]ServiceRecord, error)
	CreateService(ctx context.Context, token string, in ServiceInput) (ServiceRecord, error)
	UpdateService(ctx context.Context, token, serviceID string, in ServiceInput) (ServiceRecord, error)
	DeleteService(ctx context.Context, token, serviceID string) error
}
