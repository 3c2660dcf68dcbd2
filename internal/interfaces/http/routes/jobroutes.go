package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/parlourcover/parlour/internal/interfaces/http/handlers"
	"github.com/parlourcover/parlour/internal/interfaces/http/middleware"
)

// JobRouteConfig holds dependencies for service-to-service job triggers.
type JobRouteConfig struct {
	JobHandler            *handlers.JobHandler
	ServiceAuthMiddleware *middleware.ServiceAuthMiddleware
	PermissionMiddleware  *middleware.PermissionMiddleware
	Jobs                  []string
}

// SetupJobRoutes exposes each batch job under /internal/jobs/<name>.
func SetupJobRoutes(engine *gin.Engine, cfg *JobRouteConfig) {
	jobs := engine.Group("/internal/jobs")
	jobs.Use(cfg.ServiceAuthMiddleware.RequireService())
	jobs.Use(cfg.PermissionMiddleware.RequirePermission("jobs", "run"))
	{
		for _, name := range cfg.Jobs {
			jobs.POST("/"+name, cfg.JobHandler.Run(name))
		}
	}
}
