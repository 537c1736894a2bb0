package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"provider-dashboard/internal/middleware"
	"provider-dashboard/internal/ports/marketplace"
)

type ctxKey string

const providerKey ctxKey = "provider"

// errorResponse es el outcome que consume la capa de vista.
// ForceLogout=true => la credencial murió: limpiar storage y redirigir al
// login (una sola vez). Retryable=true => reintentar sin re-autenticar.
type errorResponse struct {
	Error       string `json:"error"`
	ForceLogout bool   `json:"forceLogout,omitempty"`
	Retryable   bool   `json:"retryable,omitempty"`
}

// Require gatekeepea todo lo protegido: exige sesión válida y corre el
// gate de autorización contra el marketplace. Solo las fallas de
// credencial/autorización fuerzan logout; una falla upstream deja la
// operación reintentable con la misma sesión.
// Vive acá y no en middleware/ para evitar el ciclo providers <-> middleware.
func Require(gate *Service, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := middleware.GetSession(r.Context())
			if !ok {
				msg := "missing or invalid session token"
				if err := middleware.SessionError(r.Context()); err != nil {
					msg = err.Error()
				}
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: msg, ForceLogout: true})
				return
			}

			p, err := gate.Authorize(r.Context(), sess)
			if err != nil {
				writeGateError(w, log, err)
				return
			}

			ctx := context.WithValue(r.Context(), providerKey, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext devuelve el provider autorizado del contexto.
func FromContext(ctx context.Context) (Provider, bool) {
	v := ctx.Value(providerKey)
	if v == nil {
		return Provider{}, false
	}
	p, ok := v.(Provider)
	return p, ok
}

func writeGateError(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, marketplace.ErrSessionInvalid):
		// Incluye el 403 con mensaje del server; se muestra verbatim.
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), ForceLogout: true})
	case errors.Is(err, ErrProviderMissing),
		errors.Is(err, ErrNotAProvider),
		errors.Is(err, ErrNotApproved),
		errors.Is(err, ErrInvalidInput):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error(), ForceLogout: true})
	default:
		// Transitorio: la sesión puede seguir viva, no se destruye nada.
		log.Warn("authorization gate upstream failure", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error(), Retryable: true})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
