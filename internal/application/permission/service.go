package permission

import (
	"context"

	"github.com/parlourcover/parlour/internal/shared/authorization"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

// Enforcer evaluates (role, resource, action) rules.
// *infrastructure/permission.Enforcer satisfies it.
type Enforcer interface {
	Enforce(role, resource, action string) (bool, error)
}

type Service struct {
	enforcer Enforcer
	logger   logger.Interface
}

func NewService(enforcer Enforcer, logger logger.Interface) *Service {
	return &Service{
		enforcer: enforcer,
		logger:   logger,
	}
}

// CheckPermission reports whether role may perform action on resource.
func (s *Service) CheckPermission(ctx context.Context, role authorization.UserRole, resource, action string) (bool, error) {
	if role == "" {
		return false, nil
	}
	return s.enforcer.Enforce(role.String(), resource, action)
}
