package memory

import (
	"strings"
	"sync"

	"provider-dashboard/internal/domain/bookings"
)

type bookingStores struct {
	mu         sync.RWMutex
	byProvider map[string]*bookings.Store
}

// NewBookingStores crea el registry en memoria de stores por provider.
func NewBookingStores() bookings.StoreRegistry {
	return &bookingStores{
		byProvider: make(map[string]*bookings.Store),
	}
}

func (r *bookingStores) ForProvider(providerID string) *bookings.Store {
	providerID = strings.TrimSpace(providerID)

	r.mu.RLock()
	st, ok := r.byProvider[providerID]
	r.mu.RUnlock()
	if ok {
		return st
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// re-check: otro request pudo habérnoslo ganado
	if st, ok := r.byProvider[providerID]; ok {
		return st
	}
	st = bookings.NewStore()
	r.byProvider[providerID] = st
	return st
}
