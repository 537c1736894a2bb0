package marketplace

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionInvalid: el server rechazó la credencial (401/403).
	// Solo este error justifica destruir la sesión; el caller decide el logout.
	ErrSessionInvalid = errors.New("session invalid")

	// ErrNotFound: el recurso pedido no existe (404).
	ErrNotFound = errors.New("not found")

	// ErrServiceNotApproved: regla de dominio, no error de sesión.
	// El server bloquea la transición porque el servicio subyacente
	// no está aprobado por administración.
	ErrServiceNotApproved = errors.New("service is not approved")
)

// ForbiddenError es un 403 con explicación del server (rol o aprobación
// que no matchea). Unwrap lo hace matchear ErrSessionInvalid: para el
// caller también es fatal a la sesión, pero el mensaje se muestra verbatim.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	if e.Message == "" {
		return ErrSessionInvalid.Error()
	}
	return e.Message
}

func (e *ForbiddenError) Unwrap() error { return ErrSessionInvalid }

// UpstreamError es cualquier falla transitoria/operacional (timeout, 5xx,
// payload inválido). Nunca es fatal para la sesión; la operación queda
// reintentable por el caller.
type UpstreamError struct {
	Status  int    // 0 si la falla fue de transporte
	Message string // mensaje del payload del server, o default
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("marketplace unreachable: %s", e.Message)
	}
	return fmt.Sprintf("marketplace error: status=%d msg=%s", e.Status, e.Message)
}
