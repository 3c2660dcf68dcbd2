package http

import (
	consultantUsecases "github.com/parlourcover/parlour/internal/application/consultant/usecases"
	membershipUsecases "github.com/parlourcover/parlour/internal/application/membership/usecases"
	parlourUsecases "github.com/parlourcover/parlour/internal/application/parlour/usecases"
	paymentUsecases "github.com/parlourcover/parlour/internal/application/payment/usecases"
	planUsecases "github.com/parlourcover/parlour/internal/application/plan/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Parlour
	createParlourUC  *parlourUsecases.CreateParlourUseCase
	getParlourUC     *parlourUsecases.GetParlourUseCase
	listParloursUC   *parlourUsecases.ListParloursUseCase
	updateParlourUC  *parlourUsecases.UpdateParlourUseCase
	archiveParlourUC *parlourUsecases.ArchiveParlourUseCase

	// Consultant / Auth
	loginUC             *consultantUsecases.LoginUseCase
	createConsultantUC  *consultantUsecases.CreateConsultantUseCase
	getConsultantUC     *consultantUsecases.GetConsultantUseCase
	listConsultantsUC   *consultantUsecases.ListConsultantsUseCase
	updateConsultantUC  *consultantUsecases.UpdateConsultantUseCase
	archiveConsultantUC *consultantUsecases.ArchiveConsultantUseCase

	// Plan
	createPlanUC  *planUsecases.CreatePlanUseCase
	updatePlanUC  *planUsecases.UpdatePlanUseCase
	getPlanUC     *planUsecases.GetPlanUseCase
	listPlansUC   *planUsecases.ListPlansUseCase
	archivePlanUC *planUsecases.ArchivePlanUseCase

	// Membership services shared by several use cases
	certificates *membershipUsecases.CertificateService
	effects      *membershipUsecases.EffectRunner
	recomputer   *membershipUsecases.AgeLimitRecomputer

	// Applicant
	createApplicantUC       *membershipUsecases.CreateApplicantUseCase
	getApplicantUC          *membershipUsecases.GetApplicantUseCase
	listApplicantsUC        *membershipUsecases.ListApplicantsUseCase
	updateApplicantUC       *membershipUsecases.UpdateApplicantUseCase
	archiveApplicantUC      *membershipUsecases.ArchiveApplicantUseCase
	deleteApplicantUC       *membershipUsecases.DeleteApplicantUseCase
	exportApplicantsUC      *membershipUsecases.ExportApplicantsUseCase
	regenerateCertificateUC *membershipUsecases.RegenerateCertificateUseCase
	importMembersUC         *membershipUsecases.ImportMembersUseCase
	recomputeAgeLimitUC     *membershipUsecases.RecomputeAgeLimitUseCase

	// Members
	updateMainMemberUC       *membershipUsecases.UpdateMainMemberUseCase
	addExtendedMemberUC      *membershipUsecases.AddExtendedMemberUseCase
	updateExtendedMemberUC   *membershipUsecases.UpdateExtendedMemberUseCase
	deleteExtendedMemberUC   *membershipUsecases.DeleteExtendedMemberUseCase
	promoteExtendedMemberUC  *membershipUsecases.PromoteExtendedMemberUseCase
	setAgeExceptionUC        *membershipUsecases.SetAgeExceptionUseCase
	countdownWaitingPeriodUC *membershipUsecases.CountdownWaitingPeriodsUseCase

	// Payment
	recordPaymentUC         *paymentUsecases.RecordPaymentUseCase
	listPaymentsUC          *paymentUsecases.ListPaymentsUseCase
	derivePaymentStatusesUC *paymentUsecases.DerivePaymentStatusesUseCase
}

// newUseCases builds every use case from the repositories and the shared
// infrastructure already initialized on the container.
func (c *Container) newUseCases() *allUseCases {
	r := c.repos
	log := c.log
	tx := c.txManager
	m := c.metrics

	u := &allUseCases{
		createParlourUC:  parlourUsecases.NewCreateParlourUseCase(r.parlourRepo, log),
		getParlourUC:     parlourUsecases.NewGetParlourUseCase(r.parlourRepo, log),
		listParloursUC:   parlourUsecases.NewListParloursUseCase(r.parlourRepo, log),
		updateParlourUC:  parlourUsecases.NewUpdateParlourUseCase(r.parlourRepo, log),
		archiveParlourUC: parlourUsecases.NewArchiveParlourUseCase(r.parlourRepo, log),

		loginUC:             consultantUsecases.NewLoginUseCase(r.consultantRepo, c.hasher, c.jwtSvc, log),
		createConsultantUC:  consultantUsecases.NewCreateConsultantUseCase(r.consultantRepo, r.parlourRepo, c.hasher, log),
		getConsultantUC:     consultantUsecases.NewGetConsultantUseCase(r.consultantRepo, log),
		listConsultantsUC:   consultantUsecases.NewListConsultantsUseCase(r.consultantRepo, log),
		updateConsultantUC:  consultantUsecases.NewUpdateConsultantUseCase(r.consultantRepo, c.hasher, log),
		archiveConsultantUC: consultantUsecases.NewArchiveConsultantUseCase(r.consultantRepo, log),
	}

	u.certificates = membershipUsecases.NewCertificateService(
		r.applicantRepo, r.mainMemberRepo, r.extendedMemberRepo, r.planRepo, r.parlourRepo, c.renderer, log,
	)
	u.effects = membershipUsecases.NewEffectRunner(u.certificates, c.eventDispatcher, log)
	u.recomputer = membershipUsecases.NewAgeLimitRecomputer(
		r.applicantRepo, r.mainMemberRepo, r.extendedMemberRepo, r.planRepo, m, log,
	)

	u.createPlanUC = planUsecases.NewCreatePlanUseCase(r.planRepo, r.parlourRepo, log)
	u.updatePlanUC = planUsecases.NewUpdatePlanUseCase(r.planRepo, u.recomputer, tx, log)
	u.getPlanUC = planUsecases.NewGetPlanUseCase(r.planRepo, log)
	u.listPlansUC = planUsecases.NewListPlansUseCase(r.planRepo, log)
	u.archivePlanUC = planUsecases.NewArchivePlanUseCase(r.planRepo, log)

	u.createApplicantUC = membershipUsecases.NewCreateApplicantUseCase(
		r.applicantRepo, r.mainMemberRepo, r.extendedMemberRepo, r.planRepo, r.consultantRepo, u.certificates, tx, m, log,
	)
	u.getApplicantUC = membershipUsecases.NewGetApplicantUseCase(r.applicantRepo, r.mainMemberRepo, r.extendedMemberRepo, log)
	u.listApplicantsUC = membershipUsecases.NewListApplicantsUseCase(r.applicantRepo, r.mainMemberRepo, log)
	u.updateApplicantUC = membershipUsecases.NewUpdateApplicantUseCase(
		r.applicantRepo, r.planRepo, r.consultantRepo, u.recomputer, u.certificates, tx, log,
	)
	u.archiveApplicantUC = membershipUsecases.NewArchiveApplicantUseCase(r.applicantRepo, log)
	u.deleteApplicantUC = membershipUsecases.NewDeleteApplicantUseCase(r.applicantRepo, r.mainMemberRepo, r.extendedMemberRepo, tx, log)
	u.exportApplicantsUC = membershipUsecases.NewExportApplicantsUseCase(
		r.applicantRepo, r.mainMemberRepo, r.extendedMemberRepo, r.planRepo, r.consultantRepo, log,
	)
	u.regenerateCertificateUC = membershipUsecases.NewRegenerateCertificateUseCase(r.applicantRepo, u.certificates, u.effects, log)
	u.importMembersUC = membershipUsecases.NewImportMembersUseCase(
		r.applicantRepo, r.mainMemberRepo, r.extendedMemberRepo, r.planRepo, u.certificates, tx, m, log,
	)
	u.recomputeAgeLimitUC = membershipUsecases.NewRecomputeAgeLimitUseCase(r.applicantRepo, r.planRepo, u.recomputer, tx, log)

	u.updateMainMemberUC = membershipUsecases.NewUpdateMainMemberUseCase(
		r.applicantRepo, r.mainMemberRepo, r.extendedMemberRepo, r.planRepo, u.certificates, m, log,
	)
	u.addExtendedMemberUC = membershipUsecases.NewAddExtendedMemberUseCase(
		r.applicantRepo, r.mainMemberRepo, r.extendedMemberRepo, r.planRepo, u.certificates, tx, m, log,
	)
	u.updateExtendedMemberUC = membershipUsecases.NewUpdateExtendedMemberUseCase(
		r.applicantRepo, r.mainMemberRepo, r.extendedMemberRepo, r.planRepo, u.certificates, tx, m, log,
	)
	u.deleteExtendedMemberUC = membershipUsecases.NewDeleteExtendedMemberUseCase(r.applicantRepo, r.extendedMemberRepo, u.certificates, log)
	u.promoteExtendedMemberUC = membershipUsecases.NewPromoteExtendedMemberUseCase(
		r.applicantRepo, r.mainMemberRepo, r.extendedMemberRepo, r.planRepo, u.effects, tx, m, log,
	)
	u.setAgeExceptionUC = membershipUsecases.NewSetAgeExceptionUseCase(r.applicantRepo, r.mainMemberRepo, r.extendedMemberRepo, log)
	u.countdownWaitingPeriodUC = membershipUsecases.NewCountdownWaitingPeriodsUseCase(r.extendedMemberRepo, tx, m, log)

	u.recordPaymentUC = paymentUsecases.NewRecordPaymentUseCase(
		r.paymentRepo, r.applicantRepo, r.mainMemberRepo, r.parlourRepo, c.renderer, c.eventDispatcher, tx, m, log,
	)
	u.listPaymentsUC = paymentUsecases.NewListPaymentsUseCase(r.paymentRepo, r.applicantRepo, log)
	u.derivePaymentStatusesUC = paymentUsecases.NewDerivePaymentStatusesUseCase(
		r.applicantRepo, r.paymentRepo, c.eventDispatcher, tx, m, log,
	)

	return u
}
