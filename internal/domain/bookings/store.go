package bookings

import "sync"

// FilterAll muestra la colección completa.
const FilterAll = "all"

// StatusCounts es el tally por estado derivado de la colección.
// Siempre se recalcula entero en SetBookings; nunca un patch incremental
// que pueda desincronizarse.
type StatusCounts struct {
	Pending   int `json:"pending"`
	Accepted  int `json:"accepted"`
	Rejected  int `json:"rejected"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// Sum devuelve el total; invariante: Sum() == len(colección).
func (c StatusCounts) Sum() int {
	return c.Pending + c.Accepted + c.Rejected + c.Completed + c.Cancelled
}

// Store mantiene la colección de bookings de UN provider, los counts
// derivados y el filtro de display actual. Es la única fuente de verdad
// que el consumer renderiza; se muta solo por reemplazo total.
type Store struct {
	mu          sync.RWMutex
	bookings    []Booking
	counts      StatusCounts
	filter      string
	subscribers []func()
}

func NewStore() *Store {
	return &Store{filter: FilterAll}
}

// SetBookings reemplaza la colección completa (nunca merge: evita acumular
// entradas stale) y recalcula counts en una sola pasada. Un status fuera
// del conjunto cuenta como pending — solo a efectos de conteo.
func (s *Store) SetBookings(list []Booking) {
	s.mu.Lock()
	s.bookings = make([]Booking, len(list))
	copy(s.bookings, list)

	var counts StatusCounts
	for _, b := range list {
		switch b.Status {
		case StatusAccepted:
			counts.Accepted++
		case StatusRejected:
			counts.Rejected++
		case StatusCompleted:
			counts.Completed++
		case StatusCancelled:
			counts.Cancelled++
		default:
			counts.Pending++
		}
	}
	s.counts = counts
	s.mu.Unlock()

	s.notify()
}

// SetFilter cambia el filtro de display; no refetchea nada.
// Acepta FilterAll o uno de los estados del conjunto cerrado.
func (s *Store) SetFilter(f string) bool {
	if f != FilterAll && !Status(f).IsValid() {
		return false
	}

	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()

	s.notify()
	return true
}

// Filter devuelve el filtro activo.
func (s *Store) Filter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Counts devuelve el tally actual.
func (s *Store) Counts() StatusCounts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts
}

// FilteredView devuelve la vista según el filtro activo, preservando el
// orden de inserción del server (no se reordena del lado cliente).
func (s *Store) FilteredView() []Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.filter == FilterAll {
		out := make([]Booking, len(s.bookings))
		copy(out, s.bookings)
		return out
	}

	want := Status(s.filter)
	out := make([]Booking, 0)
	for _, b := range s.bookings {
		if b.Status == want {
			out = append(out, b)
		}
	}
	return out
}

// StatusOf busca el status local actual de un booking por _id.
func (s *Store) StatusOf(bookingID string) (Status, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.ID == bookingID {
			return b.Status, true
		}
	}
	return "", false
}

// Len devuelve el tamaño de la colección.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bookings)
}

// Subscribe registra un observer que se notifica tras cada mutación
// (SetBookings o SetFilter). Sin notificación no hay re-render.
func (s *Store) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn()
	}
}
