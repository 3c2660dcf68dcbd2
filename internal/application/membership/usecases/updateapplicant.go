package usecases

import (
	"context"
	"fmt"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/membership/dto"
	"github.com/parlourcover/parlour/internal/domain/consultant"
	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/domain/plan"
	apperrors "github.com/parlourcover/parlour/internal/shared/errors"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

// UpdateApplicantCommand changes the fields that are set.
type UpdateApplicantCommand struct {
	Actor        common.Actor
	ApplicantID  uint
	PlanID       *uint
	PolicyNum    *string
	ConsultantID *uint
}

type UpdateApplicantUseCase struct {
	applicantRepo  membership.ApplicantRepository
	planRepo       plan.Repository
	consultantRepo consultant.Repository
	recomputer     *AgeLimitRecomputer
	certificates   *CertificateService
	txManager      TransactionRunner
	logger         logger.Interface
}

func NewUpdateApplicantUseCase(
	applicantRepo membership.ApplicantRepository,
	planRepo plan.Repository,
	consultantRepo consultant.Repository,
	recomputer *AgeLimitRecomputer,
	certificates *CertificateService,
	txManager TransactionRunner,
	logger logger.Interface,
) *UpdateApplicantUseCase {
	return &UpdateApplicantUseCase{
		applicantRepo:  applicantRepo,
		planRepo:       planRepo,
		consultantRepo: consultantRepo,
		recomputer:     recomputer,
		certificates:   certificates,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute applies the changes. A plan change re-evaluates every member's
// age-limit flag in the same transaction and regenerates the certificate.
func (uc *UpdateApplicantUseCase) Execute(ctx context.Context, cmd UpdateApplicantCommand) (*dto.ApplicantDTO, error) {
	a, err := loadActiveApplicant(ctx, uc.applicantRepo, cmd.Actor, cmd.ApplicantID)
	if err != nil {
		return nil, err
	}

	var newPlan *plan.Plan
	if cmd.PlanID != nil && *cmd.PlanID != a.PlanID() {
		newPlan, err = loadPlan(ctx, uc.planRepo, *cmd.PlanID)
		if err != nil {
			return nil, err
		}
		if newPlan.ParlourID() != a.ParlourID() {
			return nil, apperrors.NewValidationError(plan.ErrPlanNotFound.Error()).WithField("plan_id")
		}
		if !newPlan.IsActive() {
			return nil, common.TranslateError(plan.ErrPlanNotActive)
		}
		if _, err := a.ChangePlan(newPlan.ID()); err != nil {
			return nil, common.TranslateError(err)
		}
	}

	if cmd.PolicyNum != nil || cmd.ConsultantID != nil {
		policyNum := a.PolicyNum()
		if cmd.PolicyNum != nil {
			policyNum = *cmd.PolicyNum
		}
		consultantID := a.ConsultantID()
		if cmd.ConsultantID != nil && *cmd.ConsultantID != consultantID {
			c, err := uc.consultantRepo.GetByID(ctx, *cmd.ConsultantID)
			if err != nil || c.ParlourID() != a.ParlourID() {
				return nil, apperrors.NewValidationError(consultant.ErrConsultantNotFound.Error()).WithField("consultant_id")
			}
			consultantID = c.ID()
		}
		if err := a.Reassign(policyNum, consultantID); err != nil {
			if common.IsDomainError(err) {
				return nil, common.TranslateError(err)
			}
			return nil, apperrors.NewValidationError(err.Error()).WithField("policy_num")
		}
	}

	changed := 0
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.applicantRepo.Update(ctx, a); err != nil {
			return fmt.Errorf("failed to update applicant: %w", err)
		}
		if newPlan == nil {
			return nil
		}
		_, n, err := uc.recomputer.Recompute(ctx, a, newPlan)
		changed = n
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to update applicant", "error", err, "applicant_id", a.ID())
		return nil, common.TranslateError(err)
	}

	if newPlan != nil {
		uc.certificates.IssueBestEffort(ctx, a)
	}

	uc.logger.Infow("applicant updated",
		"applicant_id", a.ID(),
		"plan_changed", newPlan != nil,
		"flags_changed", changed,
	)
	return dto.ToApplicantDTO(a, nil, nil), nil
}
