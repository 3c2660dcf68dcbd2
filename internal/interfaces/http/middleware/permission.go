package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parlourcover/parlour/internal/application/permission"
	"github.com/parlourcover/parlour/internal/shared/logger"
	"github.com/parlourcover/parlour/internal/shared/utils"
)

type PermissionMiddleware struct {
	permissionService *permission.Service
	logger            logger.Interface
}

func NewPermissionMiddleware(permissionService *permission.Service, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		permissionService: permissionService,
		logger:            logger,
	}
}

// RequirePermission checks the caller's role against the casbin policies.
// It must run after RequireAuth or RequireService.
func (m *PermissionMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, exists := GetActor(c)
		if !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		allowed, err := m.permissionService.CheckPermission(c.Request.Context(), actor.Role, resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "consultant_id", actor.ConsultantID, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied", "consultant_id", actor.ConsultantID, "role", actor.Role, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
