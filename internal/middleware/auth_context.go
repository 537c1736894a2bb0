package middleware

import (
	"context"
	"net/http"
	"strings"

	"provider-dashboard/internal/ports/auth"
)

type ctxKey string

const (
	sessionKey    ctxKey = "session"
	sessionErrKey ctxKey = "session_err"
)

// AuthContext:
// - Si viene Bearer token, lo valida LOCALMENTE (sin red) con el verifier
//   y setea la sesión en el contexto.
// - Si el token falta o no valida, guarda la causa; no corta acá para no
//   acoplar — providers.Require (o el handler) decide el 401.
func AuthContext(verifier auth.SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				ctx := context.WithValue(r.Context(), sessionErrKey, err)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			sess := auth.Session{Token: token, Claims: claims}
			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession devuelve la sesión validada del contexto.
func GetSession(ctx context.Context) (auth.Session, bool) {
	v := ctx.Value(sessionKey)
	if v == nil {
		return auth.Session{}, false
	}
	s, ok := v.(auth.Session)
	return s, ok
}

// SessionError devuelve la causa por la que la credencial no validó
// (nil si no hubo token o si validó bien).
func SessionError(ctx context.Context) error {
	v := ctx.Value(sessionErrKey)
	if v == nil {
		return nil
	}
	err, _ := v.(error)
	return err
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
