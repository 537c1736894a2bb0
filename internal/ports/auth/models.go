package auth

import "time"

// Claims representa la identidad extraída de la credencial de sesión.
type Claims struct {
	ProviderID string
	Role       string
	ExpiresAt  time.Time
}

// Session agrupa la credencial cruda y sus claims ya validados.
// Se inyecta explícitamente a cada componente que la necesite;
// nadie lee el token de estado ambiente (ver middleware).
type Session struct {
	Token  string
	Claims Claims
}
