package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"provider-dashboard/internal/middleware"
	"provider-dashboard/internal/ports/marketplace"
)

// RegisterRoutes monta el CRUD del catálogo. Igual que bookings, asume
// que providers.Require ya corrió.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/me/services", func(sr chi.Router) {
		sr.Get("/", listListingsHandler(svc))
		sr.Post("/", createListingHandler(svc))
		sr.Patch("/{listingID}", updateListingHandler(svc))
		sr.Delete("/{listingID}", deleteListingHandler(svc))
	})
}

type listingRequest struct {
	ServiceType string  `json:"serviceType"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    string  `json:"duration"`
}

type listingResponse struct {
	ID          string  `json:"id"`
	ServiceType string  `json:"serviceType"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Duration    string  `json:"duration,omitempty"`
	Status      string  `json:"status,omitempty"`
}

func listListingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.GetSession(r.Context())

		items, err := svc.ListByProvider(r.Context(), sess)
		if err != nil {
			writeOperationError(w, err)
			return
		}

		out := make([]listingResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toListingResponse(l))
		}
		writeJSON(w, http.StatusOK, map[string]any{"services": out})
	}
}

func createListingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.GetSession(r.Context())

		var req listingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		l, err := svc.Create(r.Context(), sess, ListingInput(req))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, "serviceType and price are required")
				return
			}
			writeOperationError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toListingResponse(l))
	}
}

func updateListingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.GetSession(r.Context())
		listingID := chi.URLParam(r, "listingID")

		var req listingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		l, err := svc.Update(r.Context(), sess, listingID, ListingInput(req))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, "serviceType and price are required")
				return
			}
			writeOperationError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toListingResponse(l))
	}
}

func deleteListingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := middleware.GetSession(r.Context())
		listingID := chi.URLParam(r, "listingID")

		if err := svc.Delete(r.Context(), sess, listingID); err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, "listing id required")
				return
			}
			writeOperationError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func toListingResponse(l Listing) listingResponse {
	return listingResponse{
		ID:          l.ID,
		ServiceType: l.ServiceType,
		Description: l.Description,
		Price:       l.Price,
		Duration:    l.Duration,
		Status:      l.Status,
	}
}

func writeOperationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, marketplace.ErrSessionInvalid):
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"error":       err.Error(),
			"forceLogout": true,
		})
	case errors.Is(err, marketplace.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":     err.Error(),
			"retryable": true,
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

// writeJSON está duplicado intencionalmente (ver bookings/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
