package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"provider-dashboard/internal/ports/auth"
	"provider-dashboard/internal/ports/marketplace"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// Fatales a la sesión: el caller fuerza re-login, exactamente una vez.
	ErrNotAProvider    = errors.New("account is not a provider")
	ErrNotApproved     = errors.New("provider account is not approved")
	ErrProviderMissing = errors.New("provider record not found")
)

// SessionCache cachea autorizaciones exitosas durante la vida del token.
// El check se re-verifica por sesión; nunca sobrevive un restart del
// proceso (la implementación es memoria pura).
type SessionCache interface {
	Get(token string) (Provider, bool)
	Put(token string, p Provider, expiresAt time.Time)
}

// Service es el gate de autorización: confirma contra el marketplace que
// la identidad decodificada es una cuenta provider en estado approved.
// Gatekeepea todas las operaciones del dashboard.
type Service struct {
	api   marketplace.API
	cache SessionCache
}

func NewService(api marketplace.API, cache SessionCache) *Service {
	return &Service{
		api:   api,
		cache: cache,
	}
}

// Authorize hace exactamente una llamada de red (módulo cache de sesión).
// Distingue cada causa de rechazo; solo las fallas de identidad/autorización
// destruyen la sesión — una falla transitoria queda reintentable sin
// re-autenticar.
func (s *Service) Authorize(ctx context.Context, sess auth.Session) (Provider, error) {
	providerID := strings.TrimSpace(sess.Claims.ProviderID)
	if providerID == "" {
		return Provider{}, ErrInvalidInput
	}

	if s.cache != nil {
		if p, ok := s.cache.Get(sess.Token); ok {
			return p, nil
		}
	}

	record, err := s.api.GetProvider(ctx, sess.Token, providerID)
	if err != nil {
		// ErrNotFound acá significa "no existe registro de provider":
		// fatal a la sesión, no un 404 cualquiera.
		if errors.Is(err, marketplace.ErrNotFound) {
			return Provider{}, ErrProviderMissing
		}
		// ErrSessionInvalid (401/403 con o sin mensaje) y UpstreamError
		// se propagan tipados tal cual; el handler decide logout vs retry.
		return Provider{}, err
	}

	p := fromRecord(record)
	if p.Role != RoleProvider {
		return Provider{}, ErrNotAProvider
	}
	if p.Approval != ApprovalApproved {
		return Provider{}, fmt.Errorf("%w: status=%s", ErrNotApproved, p.Approval)
	}

	if s.cache != nil && !sess.Claims.ExpiresAt.IsZero() {
		s.cache.Put(sess.Token, p, sess.Claims.ExpiresAt)
	}
	return p, nil
}
