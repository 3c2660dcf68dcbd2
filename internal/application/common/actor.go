// Package common holds helpers shared by the application use cases.
package common

import (
	"github.com/parlourcover/parlour/internal/shared/authorization"
)

// Actor is the authenticated caller of a use case.
type Actor struct {
	ConsultantID uint
	ParlourID    uint
	Role         authorization.UserRole
}

// SystemActor is used by batch jobs and CLI commands that act across parlours.
var SystemActor = Actor{Role: authorization.RoleSuperuser}

// CanAccessParlour reports whether the actor may read or write records of parlourID.
func (a Actor) CanAccessParlour(parlourID uint) bool {
	return a.Role.IsSuperuser() || (a.ParlourID != 0 && a.ParlourID == parlourID)
}

// ScopeParlour returns the parlour a list query must be restricted to. Superusers
// may pick any parlour (0 means all); everybody else is pinned to their own.
func (a Actor) ScopeParlour(requested uint) uint {
	if a.Role.IsSuperuser() {
		return requested
	}
	return a.ParlourID
}
