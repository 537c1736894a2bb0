package bookings

// StoreRegistry entrega el Store de cada provider. El estado es por sesión
// de provider y vive en memoria: el marketplace es el dueño de los datos
// durables, acá no se persiste nada.
type StoreRegistry interface {
	ForProvider(providerID string) *Store
}
