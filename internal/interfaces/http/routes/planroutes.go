package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/parlourcover/parlour/internal/interfaces/http/handlers"
	"github.com/parlourcover/parlour/internal/interfaces/http/middleware"
)

// PlanRouteConfig holds dependencies for plan routes.
type PlanRouteConfig struct {
	PlanHandler          *handlers.PlanHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupPlanRoutes configures plan routes.
func SetupPlanRoutes(engine *gin.Engine, cfg *PlanRouteConfig) {
	perm := cfg.PermissionMiddleware

	plans := engine.Group("/plans")
	plans.Use(cfg.AuthMiddleware.RequireAuth())
	{
		// Read operations
		plans.GET("", perm.RequirePermission("plans", "read"), cfg.PlanHandler.ListPlans)
		plans.GET("/:id", perm.RequirePermission("plans", "read"), cfg.PlanHandler.GetPlan)

		// Write operations
		plans.POST("", perm.RequirePermission("plans", "create"), cfg.PlanHandler.CreatePlan)
		plans.PUT("/:id", perm.RequirePermission("plans", "update"), cfg.PlanHandler.UpdatePlan)
		plans.DELETE("/:id", perm.RequirePermission("plans", "archive"), cfg.PlanHandler.ArchivePlan)
	}
}
