package http

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/parlourcover/parlour/internal/infrastructure/config"
	"github.com/parlourcover/parlour/internal/interfaces/http/middleware"
	"github.com/parlourcover/parlour/internal/interfaces/http/routes"
	"github.com/parlourcover/parlour/internal/shared/logger"
	"github.com/parlourcover/parlour/internal/shared/utils"
)

// Router is the HTTP entry point. It owns the Container and exposes the gin
// engine once routes are registered.
type Router struct {
	*Container
}

// NewRouter creates a router with all dependencies wired.
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// SetupRoutes configures middleware and all HTTP routes.
func (r *Router) SetupRoutes() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := utils.RegisterValidations(v); err != nil {
			return fmt.Errorf("failed to register validations: %w", err)
		}
	}

	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	if r.metrics != nil {
		r.engine.Use(middleware.Metrics(r.metrics))
		r.engine.GET(r.cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})))
	}

	r.engine.GET("/health", r.healthCheck)

	h := r.hdlrs

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler:    h.authHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimiter:    r.rateLimiter,
	})

	routes.SetupParlourRoutes(r.engine, &routes.ParlourRouteConfig{
		ParlourHandler:       h.parlourHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	routes.SetupConsultantRoutes(r.engine, &routes.ConsultantRouteConfig{
		ConsultantHandler:    h.consultantHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	routes.SetupPlanRoutes(r.engine, &routes.PlanRouteConfig{
		PlanHandler:          h.planHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	routes.SetupApplicantRoutes(r.engine, &routes.ApplicantRouteConfig{
		ApplicantHandler:      h.applicantHandler,
		ExtendedMemberHandler: h.extendedMemberHandler,
		PaymentHandler:        h.paymentHandler,
		AuthMiddleware:        r.authMiddleware,
		PermissionMiddleware:  r.permissionMiddleware,
	})

	routes.SetupNotificationRoutes(r.engine, &routes.NotificationRouteConfig{
		NotificationHandler:  h.notificationHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	routes.SetupJobRoutes(r.engine, &routes.JobRouteConfig{
		JobHandler:            h.jobHandler,
		ServiceAuthMiddleware: r.serviceAuthMiddleware,
		PermissionMiddleware:  r.permissionMiddleware,
		Jobs:                  r.jobNames(),
	})

	return nil
}

// GetEngine returns the gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

func (r *Router) jobNames() []string {
	jobs := r.BatchJobs()
	names := make([]string, 0, len(jobs))
	for name := range jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Router) healthCheck(c *gin.Context) {
	status := "ok"
	code := http.StatusOK

	sqlDB, err := r.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		r.log.Warnw("health check database ping failed", "error", err)
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":   status,
		"database": err == nil,
		"redis":    r.redis != nil,
	})
}
