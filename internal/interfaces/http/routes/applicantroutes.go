package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/parlourcover/parlour/internal/interfaces/http/handlers"
	"github.com/parlourcover/parlour/internal/interfaces/http/middleware"
)

// ApplicantRouteConfig holds dependencies for applicant, member and payment routes.
type ApplicantRouteConfig struct {
	ApplicantHandler      *handlers.ApplicantHandler
	ExtendedMemberHandler *handlers.ExtendedMemberHandler
	PaymentHandler        *handlers.PaymentHandler
	AuthMiddleware        *middleware.AuthMiddleware
	PermissionMiddleware  *middleware.PermissionMiddleware
}

// SetupApplicantRoutes configures applicant routes and their member and
// payment sub-resources.
func SetupApplicantRoutes(engine *gin.Engine, cfg *ApplicantRouteConfig) {
	perm := cfg.PermissionMiddleware
	h := cfg.ApplicantHandler

	applicants := engine.Group("/applicants")
	applicants.Use(cfg.AuthMiddleware.RequireAuth())
	{
		// Collection operations
		applicants.POST("", perm.RequirePermission("applicants", "create"), h.CreateApplicant)
		applicants.GET("", perm.RequirePermission("applicants", "read"), h.ListApplicants)
		applicants.GET("/export_to_excel", perm.RequirePermission("applicants", "export"), h.ExportToExcel)

		applicants.GET("/:id", perm.RequirePermission("applicants", "read"), h.GetApplicant)
		applicants.PUT("/:id", perm.RequirePermission("applicants", "update"), h.UpdateApplicant)
		applicants.DELETE("/:id", perm.RequirePermission("applicants", "delete"), h.DeleteApplicant)
		applicants.POST("/:id/archive", perm.RequirePermission("applicants", "archive"), h.ArchiveApplicant)
		applicants.POST("/:id/certificate", perm.RequirePermission("applicants", "certificate"), h.RegenerateCertificate)
		applicants.POST("/:id/import_members", perm.RequirePermission("applicants", "import"), h.ImportMembers)
		applicants.POST("/:id/age-limit", perm.RequirePermission("applicants", "recompute"), h.RecomputeAgeLimit)
		applicants.PUT("/:id/main-member", perm.RequirePermission("members", "update"), h.UpdateMainMember)

		members := applicants.Group("/:id/extended-members")
		{
			em := cfg.ExtendedMemberHandler
			members.POST("", perm.RequirePermission("members", "create"), em.AddExtendedMember)
			members.PUT("/:member_id", perm.RequirePermission("members", "update"), em.UpdateExtendedMember)
			members.DELETE("/:member_id", perm.RequirePermission("members", "delete"), em.DeleteExtendedMember)
			members.POST("/:member_id/promote", perm.RequirePermission("members", "promote"), em.PromoteExtendedMember)
			members.PUT("/:member_id/exception", perm.RequirePermission("members", "exception"), em.SetAgeException)
		}

		payments := applicants.Group("/:id/payments")
		{
			payments.GET("", perm.RequirePermission("payments", "read"), cfg.PaymentHandler.ListPayments)
			payments.POST("", perm.RequirePermission("payments", "create"), cfg.PaymentHandler.RecordPayment)
		}
	}
}
