package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/parlourcover/parlour/internal/interfaces/http/handlers"
	"github.com/parlourcover/parlour/internal/interfaces/http/middleware"
)

// ParlourRouteConfig holds dependencies for parlour routes.
type ParlourRouteConfig struct {
	ParlourHandler       *handlers.ParlourHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupParlourRoutes configures parlour routes. Writes are reserved for
// superusers; admins may read their own parlour.
func SetupParlourRoutes(engine *gin.Engine, cfg *ParlourRouteConfig) {
	perm := cfg.PermissionMiddleware

	parlours := engine.Group("/parlours")
	parlours.Use(cfg.AuthMiddleware.RequireAuth())
	{
		parlours.POST("", perm.RequirePermission("parlours", "create"), cfg.ParlourHandler.CreateParlour)
		parlours.GET("", perm.RequirePermission("parlours", "read"), cfg.ParlourHandler.ListParlours)
		parlours.GET("/:id", perm.RequirePermission("parlours", "read"), cfg.ParlourHandler.GetParlour)
		parlours.PUT("/:id", perm.RequirePermission("parlours", "update"), cfg.ParlourHandler.UpdateParlour)
		parlours.DELETE("/:id", perm.RequirePermission("parlours", "archive"), cfg.ParlourHandler.ArchiveParlour)
	}
}
