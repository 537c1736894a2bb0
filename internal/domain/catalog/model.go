package catalog

import (
	"strings"

	"provider-dashboard/internal/ports/marketplace"
)

// Listing es un servicio publicado del catálogo del provider.
type Listing struct {
	ID          string
	ProviderID  string
	ServiceType string
	Description string
	Price       float64
	Duration    string
	Status      string // estado administrativo del listing (approved/pending/...)
}

func fromRecord(r marketplace.ServiceRecord) Listing {
	return Listing{
		ID:          r.ID,
		ProviderID:  r.ProviderID,
		ServiceType: r.ServiceType,
		Description: r.Description,
		Price:       r.Price,
		Duration:    r.Duration,
		Status:      strings.ToLower(strings.TrimSpace(r.Status)),
	}
}
