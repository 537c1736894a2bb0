package memory

import (
	"sync"
	"time"

	"provider-dashboard/internal/domain/providers"
)

type sessionEntry struct {
	provider  providers.Provider
	expiresAt time.Time
}

type sessionCache struct {
	mu      sync.RWMutex
	byToken map[string]sessionEntry
	now     func() time.Time
}

// NewSessionCache crea el cache en memoria de autorizaciones de sesión.
// La entrada vive hasta el expiry del token; un restart del proceso
// obliga a re-verificar contra el marketplace.
func NewSessionCache() providers.SessionCache {
	return &sessionCache{
		byToken: make(map[string]sessionEntry),
		now:     time.Now,
	}
}

func (c *sessionCache) Get(token string) (providers.Provider, bool) {
	c.mu.RLock()
	e, ok := c.byToken[token]
	c.mu.RUnlock()

	if !ok {
		return providers.Provider{}, false
	}
	if !c.now().Before(e.expiresAt) {
		// lazy cleanup de entradas vencidas
		c.mu.Lock()
		delete(c.byToken, token)
		c.mu.Unlock()
		return providers.Provider{}, false
	}
	return e.provider, true
}

func (c *sessionCache) Put(token string, p providers.Provider, expiresAt time.Time) {
	if token == "" || expiresAt.IsZero() {
		return
	}
	c.mu.Lock()
	c.byToken[token] = sessionEntry{provider: p, expiresAt: expiresAt}
	c.mu.Unlock()
}
