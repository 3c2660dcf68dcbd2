package http

import (
	membershipUsecases "github.com/parlourcover/parlour/internal/application/membership/usecases"
	paymentUsecases "github.com/parlourcover/parlour/internal/application/payment/usecases"
	"github.com/parlourcover/parlour/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	authHandler           *handlers.AuthHandler
	parlourHandler        *handlers.ParlourHandler
	consultantHandler     *handlers.ConsultantHandler
	planHandler           *handlers.PlanHandler
	applicantHandler      *handlers.ApplicantHandler
	extendedMemberHandler *handlers.ExtendedMemberHandler
	paymentHandler        *handlers.PaymentHandler
	notificationHandler   *handlers.NotificationHandler
	jobHandler            *handlers.JobHandler
}

func (c *Container) newHandlers() *allHandlers {
	u := c.ucs
	log := c.log

	return &allHandlers{
		authHandler: handlers.NewAuthHandler(u.loginUC, u.getConsultantUC, log),
		parlourHandler: handlers.NewParlourHandler(
			u.createParlourUC, u.getParlourUC, u.listParloursUC, u.updateParlourUC, u.archiveParlourUC, log,
		),
		consultantHandler: handlers.NewConsultantHandler(
			u.createConsultantUC, u.getConsultantUC, u.listConsultantsUC, u.updateConsultantUC, u.archiveConsultantUC, log,
		),
		planHandler: handlers.NewPlanHandler(
			u.createPlanUC, u.updatePlanUC, u.getPlanUC, u.listPlansUC, u.archivePlanUC, log,
		),
		applicantHandler: handlers.NewApplicantHandler(handlers.ApplicantUseCases{
			Create:           u.createApplicantUC,
			Get:              u.getApplicantUC,
			List:             u.listApplicantsUC,
			Update:           u.updateApplicantUC,
			Archive:          u.archiveApplicantUC,
			Delete:           u.deleteApplicantUC,
			Export:           u.exportApplicantsUC,
			Certificate:      u.regenerateCertificateUC,
			Import:           u.importMembersUC,
			AgeLimit:         u.recomputeAgeLimitUC,
			UpdateMainMember: u.updateMainMemberUC,
		}, log),
		extendedMemberHandler: handlers.NewExtendedMemberHandler(
			u.addExtendedMemberUC, u.updateExtendedMemberUC, u.deleteExtendedMemberUC,
			u.promoteExtendedMemberUC, u.setAgeExceptionUC, log,
		),
		paymentHandler:      handlers.NewPaymentHandler(u.recordPaymentUC, u.listPaymentsUC, log),
		notificationHandler: handlers.NewNotificationHandler(c.notificationService, log),
		jobHandler:          handlers.NewJobHandler(c.BatchJobs(), log),
	}
}

// BatchJobs returns the nightly jobs keyed by the name used in routes, the
// CLI and the scheduler.
func (c *Container) BatchJobs() map[string]handlers.BatchJob {
	return map[string]handlers.BatchJob{
		paymentUsecases.JobPaymentStatus:    c.ucs.derivePaymentStatusesUC,
		membershipUsecases.JobWaitingPeriod: c.ucs.countdownWaitingPeriodUC,
	}
}
