package bookings

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"provider-dashboard/internal/middleware"
	"provider-dashboard/internal/ports/marketplace"
)

// RegisterRoutes monta las vistas de booking. Todas asumen que el gate
// (providers.Require) ya corrió: acá siempre hay sesión y provider approved.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/me/bookings", func(br chi.Router) {
		br.Get("/", listBookingsHandler(svc))
		br.Post("/refresh", refreshBookingsHandler(svc))
		br.Put("/filter", setFilterHandler(svc))

		// Transiciones del provider; cada acción solo es legal desde el
		// estado que la tabla permite.
		br.Post("/{bookingID}/accept", transitionHandler(svc, StatusAccepted))
		br.Post("/{bookingID}/reject", transitionHandler(svc, StatusRejected))
		br.Post("/{bookingID}/complete", transitionHandler(svc, StatusCompleted))
	})
}

type bookingResponse struct {
	ID              string   `json:"id"`
	BookingID       string   `json:"bookingId"`
	Status          string   `json:"status"`
	BookingDate     string   `json:"bookingDate,omitempty"`
	BookingTime     string   `json:"bookingTime,omitempty"`
	BookingSlot     string   `json:"bookingSlot,omitempty"`
	CustomerName    string   `json:"customerName,omitempty"`
	CustomerEmail   string   `json:"customerEmail,omitempty"`
	CustomerNumber  string   `json:"customerNumber,omitempty"`
	ServiceID       string   `json:"serviceId,omitempty"`
	ServiceType     string   `json:"serviceType,omitempty"`
	AdditionalNotes string   `json:"additionalNotes,omitempty"`
	Actions         []string `json:"actions"` // próximos estados legales
}

type collectionResponse struct {
	Bookings []bookingResponse `json:"bookings"`
	Counts   StatusCounts      `json:"counts"`
	Filter   string            `json:"filter"`
}

type setFilterRequest struct {
	Filter string `json:"filter"`
}

func listBookingsHandler(svc *Service) http.HandlerFunc {
	// Semántica de "mount de la vista": fetch completo + vista clasificada.
	// ?status= opcional cambia el filtro antes de responder.
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.GetSession(r.Context())
		store := svc.StoreFor(sess.Claims.ProviderID)

		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			if !store.SetFilter(strings.ToLower(raw)) {
				writeError(w, http.StatusBadRequest, "unknown status filter", false)
				return
			}
		}

		if err := svc.Refresh(r.Context(), sess); err != nil {
			writeOperationError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toCollectionResponse(store))
	}
}

func refreshBookingsHandler(svc *Service) http.HandlerFunc {
	// Acción explícita de "Refresh": acá vive la política de retry,
	// no en el API client.
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.GetSession(r.Context())

		if err := svc.Refresh(r.Context(), sess); err != nil {
			writeOperationError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toCollectionResponse(svc.StoreFor(sess.Claims.ProviderID)))
	}
}

func setFilterHandler(svc *Service) http.HandlerFunc {
	// Cambio de estado puro: no refetchea.
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.GetSession(r.Context())

		var req setFilterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json", false)
			return
		}

		store := svc.StoreFor(sess.Claims.ProviderID)
		if !store.SetFilter(strings.ToLower(strings.TrimSpace(req.Filter))) {
			writeError(w, http.StatusBadRequest, "unknown status filter", false)
			return
		}

		writeJSON(w, http.StatusOK, toCollectionResponse(store))
	}
}

func transitionHandler(svc *Service, target Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.GetSession(r.Context())
		bookingID := chi.URLParam(r, "bookingID")

		if err := svc.Transition(r.Context(), sess, bookingID, target); err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				writeError(w, http.StatusBadRequest, err.Error(), false)
			case errors.Is(err, ErrIllegalTransition):
				writeError(w, http.StatusConflict, err.Error(), false)
			case errors.Is(err, marketplace.ErrServiceNotApproved):
				// Bloqueo administrativo, no falla genérica: mensaje propio
				// y más accionable que el default.
				writeError(w, http.StatusUnprocessableEntity,
					"the service for this booking is not approved yet; contact the marketplace administrators", false)
			default:
				writeOperationError(w, err)
			}
			return
		}

		// El Transition exitoso ya hizo el re-fetch awaited: los counts que
		// salen acá nunca están stale respecto de la acción recién hecha.
		writeJSON(w, http.StatusOK, toCollectionResponse(svc.StoreFor(sess.Claims.ProviderID)))
	}
}

func toCollectionResponse(store *Store) collectionResponse {
	view := store.FilteredView()
	out := make([]bookingResponse, 0, len(view))
	for _, b := range view {
		out = append(out, toBookingResponse(b))
	}
	return collectionResponse{
		Bookings: out,
		Counts:   store.Counts(),
		Filter:   store.Filter(),
	}
}

func toBookingResponse(b Booking) bookingResponse {
	next := NextStatuses(b.Status)
	actions := make([]string, 0, len(next))
	for _, s := range next {
		actions = append(actions, string(s))
	}

	return bookingResponse{
		ID:              b.ID,
		BookingID:       b.BookingID,
		Status:          string(b.Status),
		BookingDate:     b.Date,
		BookingTime:     b.Time,
		BookingSlot:     b.Slot,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerNumber:  b.CustomerNumber,
		ServiceID:       b.ServiceID,
		ServiceType:     b.ServiceType,
		AdditionalNotes: b.Notes,
		Actions:         actions,
	}
}

// writeOperationError mapea las fallas de operación post-gate:
// la sesión solo muere con ErrSessionInvalid; lo upstream queda retryable.
func writeOperationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, marketplace.ErrSessionInvalid):
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"error":       err.Error(),
			"forceLogout": true,
		})
	case errors.Is(err, marketplace.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error(), false)
	default:
		writeError(w, http.StatusBadGateway, err.Error(), true)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, retryable bool) {
	body := map[string]any{"error": msg}
	if retryable {
		body["retryable"] = true
	}
	writeJSON(w, status, body)
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// (bookings/catalog): todavía no amerita un helper compartido.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
