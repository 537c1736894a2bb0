package providers

import (
	"strings"

	"provider-dashboard/internal/ports/marketplace"
)

// RoleProvider es el único rol que pasa el gate.
const RoleProvider = "provider"

// ApprovalStatus define el estado administrativo de la cuenta.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Provider es el actor verificado del subsistema.
type Provider struct {
	ID       string
	Name     string
	Email    string
	Role     string
	Approval ApprovalStatus
}

// Approved reporta si la cuenta puede acceder a las vistas de booking.
func (p Provider) Approved() bool {
	return p.Role == RoleProvider && p.Approval == ApprovalApproved
}

func fromRecord(r marketplace.ProviderRecord) Provider {
	return Provider{
		ID:       strings.TrimSpace(r.ID),
		Name:     r.Name,
		Email:    r.Email,
		Role:     strings.ToLower(strings.TrimSpace(r.Role)),
		Approval: ApprovalStatus(strings.ToLower(strings.TrimSpace(r.Status))),
	}
}
