package providers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta la vista de identidad. El trabajo real (validar
// sesión + gate contra el marketplace) ya lo hizo Require.
func RegisterRoutes(r chi.Router) {
	r.Get("/me", meHandler())
}

type meResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	Approval string `json:"approval"`
}

func meHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(meResponse{
			ID:       p.ID,
			Name:     p.Name,
			Email:    p.Email,
			Role:     p.Role,
			Approval: string(p.Approval),
		})
	}
}
