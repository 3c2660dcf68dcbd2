package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/parlourcover/parlour/internal/interfaces/http/handlers"
	"github.com/parlourcover/parlour/internal/interfaces/http/middleware"
)

// ConsultantRouteConfig holds dependencies for consultant routes.
type ConsultantRouteConfig struct {
	ConsultantHandler    *handlers.ConsultantHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupConsultantRoutes configures consultant management routes.
func SetupConsultantRoutes(engine *gin.Engine, cfg *ConsultantRouteConfig) {
	perm := cfg.PermissionMiddleware

	consultants := engine.Group("/consultants")
	consultants.Use(cfg.AuthMiddleware.RequireAuth())
	{
		consultants.POST("", perm.RequirePermission("consultants", "create"), cfg.ConsultantHandler.CreateConsultant)
		consultants.GET("", perm.RequirePermission("consultants", "read"), cfg.ConsultantHandler.ListConsultants)
		consultants.GET("/:id", perm.RequirePermission("consultants", "read"), cfg.ConsultantHandler.GetConsultant)
		consultants.PUT("/:id", perm.RequirePermission("consultants", "update"), cfg.ConsultantHandler.UpdateConsultant)
		consultants.DELETE("/:id", perm.RequirePermission("consultants", "archive"), cfg.ConsultantHandler.ArchiveConsultant)
	}
}
