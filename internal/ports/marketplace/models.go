package marketplace

// ProviderRecord es el registro del provider tal como lo devuelve
// GET /booking/provider/{providerId}.
type ProviderRecord struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"` // pending | approved | rejected
}

// BookingRecord es el booking en el wire. El server puede omitir casi
// cualquier campo; la tolerancia se resuelve más arriba (store).
type BookingRecord struct {
	ID              string `json:"_id"`
	BookingID       string `json:"bookingId"` // identificador legible, distinto de _id
	Status          string `json:"status"`
	BookingDate     string `json:"bookingDate"`
	BookingTime     string `json:"bookingTime"`
	BookingSlot     string `json:"bookingSlot"`
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerNumber  string `json:"customerNumber"`
	AdditionalNotes string `json:"additionalNotes"`
	ServiceID       string `json:"serviceId"`
	ServiceType     string `json:"serviceType"`
}

// ServiceRecord es un servicio del catálogo del provider.
type ServiceRecord struct {
	ID          string  `json:"_id"`
	ProviderID  string  `json:"providerId"`
	ServiceType string  `json:"serviceType"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    string  `json:"duration"`
	Status      string  `json:"status"`
}

// ServiceInput es el payload para crear/actualizar un servicio.
type ServiceInput struct {
	ServiceType string  `json:"serviceType"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Duration    string  `json:"duration,omitempty"`
}
