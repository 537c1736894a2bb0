package bookings

import (
	"strings"

	"provider-dashboard/internal/ports/marketplace"
)

// Status define los estados del ciclo de vida de un booking.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// IsValid reporta si s pertenece al conjunto cerrado de estados.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal: sin más acciones de provider desde este estado.
// cancelled solo es alcanzable por un camino externo (cliente), pero acá
// igual es terminal.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusCompleted || s == StatusCancelled
}

// ParseStatus normaliza el status del wire. El server histórico mandaba
// capitalizado ("Pending"); acá todo baja a minúsculas. Un valor fuera del
// conjunto se conserva tal cual: el default a pending es solo para conteo
// (ver Store).
func ParseStatus(raw string) Status {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	return s
}

// transitions es la tabla de aristas legales del state machine,
// expresada como data para que sea testeable sin UI.
var transitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusRejected},
	StatusAccepted: {StatusCompleted},
}

// CanTransition reporta si la arista from->to está en la tabla.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses devuelve las transiciones legales desde from; es lo que
// decide qué acciones se le ofrecen al provider para cada booking.
func NextStatuses(from Status) []Status {
	next := transitions[from]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// Booking es un pedido de servicio de un cliente hacia el provider.
// Nunca se borra desde este subsistema; los terminales quedan como historial.
type Booking struct {
	ID        string // _id del server
	BookingID string // identificador legible

	Status Status

	Date string
	Time string
	Slot string

	CustomerName   string
	CustomerEmail  string
	CustomerNumber string

	ServiceID   string
	ServiceType string

	Notes string
}

// FromRecord convierte el booking del wire al modelo de dominio.
func FromRecord(r marketplace.BookingRecord) Booking {
	return Booking{
		ID:             r.ID,
		BookingID:      r.BookingID,
		Status:         ParseStatus(r.Status),
		Date:           r.BookingDate,
		Time:           r.BookingTime,
		Slot:           r.BookingSlot,
		CustomerName:   r.CustomerName,
		CustomerEmail:  r.CustomerEmail,
		CustomerNumber: r.CustomerNumber,
		ServiceID:      r.ServiceID,
		ServiceType:    r.ServiceType,
		Notes:          r.AdditionalNotes,
	}
}
