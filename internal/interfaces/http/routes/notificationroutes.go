package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/parlourcover/parlour/internal/interfaces/http/handlers"
	"github.com/parlourcover/parlour/internal/interfaces/http/middleware"
)

type NotificationRouteConfig struct {
	NotificationHandler  *handlers.NotificationHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupNotificationRoutes(engine *gin.Engine, config *NotificationRouteConfig) {
	notifications := engine.Group("/notifications")
	notifications.Use(config.AuthMiddleware.RequireAuth())
	{
		notifications.GET("",
			config.PermissionMiddleware.RequirePermission("notifications", "read"),
			config.NotificationHandler.ListNotifications,
		)
	}
}
