package auth

// SessionVerifier valida una credencial de sesión localmente (sin red)
// y devuelve claims o error.
type SessionVerifier interface {
	Verify(token string) (Claims, error)
}
