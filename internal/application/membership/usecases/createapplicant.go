package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/membership/dto"
	"github.com/parlourcover/parlour/internal/domain/consultant"
	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/domain/plan"
	"github.com/parlourcover/parlour/internal/shared/biztime"
	apperrors "github.com/parlourcover/parlour/internal/shared/errors"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type CreateApplicantCommand struct {
	Actor     common.Actor
	PlanID    uint
	PolicyNum string
	// ConsultantID defaults to the acting consultant.
	ConsultantID uint
	MainMember   MemberInput
}

// CreateApplicantUseCase opens a policy together with its main member.
type CreateApplicantUseCase struct {
	applicantRepo  membership.ApplicantRepository
	mainRepo       membership.MainMemberRepository
	extendedRepo   membership.ExtendedMemberRepository
	planRepo       plan.Repository
	consultantRepo consultant.Repository
	certificates   *CertificateService
	txManager      TransactionRunner
	metrics        Metrics
	logger         logger.Interface
}

func NewCreateApplicantUseCase(
	applicantRepo membership.ApplicantRepository,
	mainRepo membership.MainMemberRepository,
	extendedRepo membership.ExtendedMemberRepository,
	planRepo plan.Repository,
	consultantRepo consultant.Repository,
	certificates *CertificateService,
	txManager TransactionRunner,
	metrics Metrics,
	logger logger.Interface,
) *CreateApplicantUseCase {
	return &CreateApplicantUseCase{
		applicantRepo:  applicantRepo,
		mainRepo:       mainRepo,
		extendedRepo:   extendedRepo,
		planRepo:       planRepo,
		consultantRepo: consultantRepo,
		certificates:   certificates,
		txManager:      txManager,
		metrics:        metrics,
		logger:         logger,
	}
}

func (uc *CreateApplicantUseCase) Execute(ctx context.Context, cmd CreateApplicantCommand) (*dto.ApplicantDTO, error) {
	if strings.TrimSpace(cmd.PolicyNum) == "" {
		return nil, apperrors.NewValidationError("policy number is required").WithField("policy_num")
	}

	p, err := loadPlan(ctx, uc.planRepo, cmd.PlanID)
	if err != nil {
		return nil, err
	}
	if !cmd.Actor.CanAccessParlour(p.ParlourID()) {
		return nil, apperrors.NewNotFoundError(plan.ErrPlanNotFound.Error())
	}
	if !p.IsActive() {
		return nil, common.TranslateError(plan.ErrPlanNotActive)
	}

	consultantID, err := uc.resolveConsultant(ctx, cmd.Actor, cmd.ConsultantID, p.ParlourID())
	if err != nil {
		return nil, err
	}

	a, err := membership.NewApplicant(p.ParlourID(), p.ID(), consultantID, cmd.PolicyNum)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	var main *membership.MainMember
	checker := idNumberChecker{mainRepo: uc.mainRepo, extendedRepo: uc.extendedRepo}
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.applicantRepo.Create(ctx, a); err != nil {
			return fmt.Errorf("failed to create applicant: %w", err)
		}

		m, err := membership.NewMainMember(a.ID(), a.ParlourID(), cmd.MainMember.identity(), cmd.MainMember.dateJoined())
		if err != nil {
			return err
		}
		taken, err := checker.taken(ctx, a.ParlourID(), m.Identity().IDNumber, 0, 0)
		if err != nil {
			return fmt.Errorf("failed to check id number: %w", err)
		}
		if taken {
			return membership.ErrDuplicateIDNumber
		}

		if _, err := membership.EvaluateMainMember(m, p, biztime.NowUTC(), biztime.Location()); err != nil {
			return err
		}
		if err := admitAge(m.Identity(), m.AgeLimitExceeded(), cmd.MainMember.AgeLimitException, uc.metrics); err != nil {
			return err
		}
		m.SetAgeLimitException(cmd.MainMember.AgeLimitException)

		if err := uc.mainRepo.Create(ctx, m); err != nil {
			return fmt.Errorf("failed to create main member: %w", err)
		}
		main = m
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create applicant", "error", err, "policy_num", cmd.PolicyNum, "plan_id", p.ID())
		return nil, common.TranslateError(err)
	}

	uc.certificates.IssueBestEffort(ctx, a)

	uc.logger.Infow("applicant created",
		"applicant_id", a.ID(),
		"parlour_id", a.ParlourID(),
		"policy_num", a.PolicyNum(),
	)
	return dto.ToApplicantDTO(a, main, nil), nil
}

func (uc *CreateApplicantUseCase) resolveConsultant(ctx context.Context, actor common.Actor, requested uint, parlourID uint) (uint, error) {
	if requested == 0 || requested == actor.ConsultantID {
		return actor.ConsultantID, nil
	}
	c, err := uc.consultantRepo.GetByID(ctx, requested)
	if err != nil {
		return 0, apperrors.NewValidationError(consultant.ErrConsultantNotFound.Error()).WithField("consultant_id")
	}
	if c.ParlourID() != parlourID {
		return 0, apperrors.NewValidationError("consultant does not belong to the plan's parlour").WithField("consultant_id")
	}
	return c.ID(), nil
}
