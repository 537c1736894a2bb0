package jwtsession

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"provider-dashboard/internal/ports/auth"
)

var (
	ErrTokenExpired   = errors.New("session token expired")
	ErrTokenMalformed = errors.New("session token malformed")
)

// sessionClaims es el layout del token que emite el marketplace al login.
type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier implementa auth.SessionVerifier decodificando el token localmente.
// Cero I/O de red: firma HS256 + expiry. Cualquier problema de decode
// cierra la validación (fail closed).
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenMalformed
	}

	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenMalformed
		}
		return v.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.Claims{}, ErrTokenExpired
		}
		return auth.Claims{}, ErrTokenMalformed
	}
	if !parsed.Valid {
		return auth.Claims{}, ErrTokenMalformed
	}

	providerID := strings.TrimSpace(claims.Subject)
	if providerID == "" {
		return auth.Claims{}, ErrTokenMalformed
	}

	out := auth.Claims{
		ProviderID: providerID,
		Role:       strings.TrimSpace(claims.Role),
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// Sign emite un token de sesión firmado. El login real vive en el marketplace;
// esto existe para tests y tooling de dev.
func Sign(providerID, role, secret string, expiresAt time.Time) (string, error) {
	claims := sessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   providerID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
