package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/membership/dto"
	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/domain/plan"
	"github.com/parlourcover/parlour/internal/shared/biztime"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type UpdateMainMemberCommand struct {
	Actor       common.Actor
	ApplicantID uint
	Member      MemberInput
}

// UpdateMainMemberUseCase edits the main member. An age-limit change is
// stored on the member but never rejects the update.
type UpdateMainMemberUseCase struct {
	applicantRepo membership.ApplicantRepository
	mainRepo      membership.MainMemberRepository
	extendedRepo  membership.ExtendedMemberRepository
	planRepo      plan.Repository
	certificates  *CertificateService
	metrics       Metrics
	logger        logger.Interface
}

func NewUpdateMainMemberUseCase(
	applicantRepo membership.ApplicantRepository,
	mainRepo membership.MainMemberRepository,
	extendedRepo membership.ExtendedMemberRepository,
	planRepo plan.Repository,
	certificates *CertificateService,
	metrics Metrics,
	logger logger.Interface,
) *UpdateMainMemberUseCase {
	return &UpdateMainMemberUseCase{
		applicantRepo: applicantRepo,
		mainRepo:      mainRepo,
		extendedRepo:  extendedRepo,
		planRepo:      planRepo,
		certificates:  certificates,
		metrics:       metrics,
		logger:        logger,
	}
}

func (uc *UpdateMainMemberUseCase) Execute(ctx context.Context, cmd UpdateMainMemberCommand) (*dto.MainMemberDTO, error) {
	a, err := loadActiveApplicant(ctx, uc.applicantRepo, cmd.Actor, cmd.ApplicantID)
	if err != nil {
		return nil, err
	}
	m, err := soleMainMember(ctx, uc.mainRepo, a.ID())
	if err != nil {
		return nil, common.TranslateError(err)
	}
	if m == nil {
		return nil, common.TranslateError(membership.ErrNoMainMember)
	}

	var joined time.Time
	if cmd.Member.DateJoined != nil {
		joined = *cmd.Member.DateJoined
	}
	birthChanged, err := m.Update(cmd.Member.identity(), joined)
	if err != nil {
		return nil, common.TranslateError(err)
	}

	checker := idNumberChecker{mainRepo: uc.mainRepo, extendedRepo: uc.extendedRepo}
	taken, err := checker.taken(ctx, a.ParlourID(), m.Identity().IDNumber, m.ID(), 0)
	if err != nil {
		uc.logger.Errorw("failed to check id number", "error", err, "applicant_id", a.ID())
		return nil, fmt.Errorf("failed to check id number: %w", err)
	}
	if taken {
		return nil, common.TranslateError(membership.ErrDuplicateIDNumber)
	}

	if birthChanged {
		p, err := loadPlan(ctx, uc.planRepo, a.PlanID())
		if err != nil {
			return nil, err
		}
		if _, err := membership.EvaluateMainMember(m, p, biztime.NowUTC(), biztime.Location()); err != nil {
			return nil, common.TranslateError(err)
		}
		uc.metrics.ObserveAgeLimit(m.AgeLimitExceeded())
	}

	if err := uc.mainRepo.Update(ctx, m); err != nil {
		uc.logger.Errorw("failed to update main member", "error", err, "member_id", m.ID())
		return nil, fmt.Errorf("failed to update main member: %w", err)
	}

	uc.certificates.IssueBestEffort(ctx, a)

	uc.logger.Infow("main member updated",
		"applicant_id", a.ID(),
		"member_id", m.ID(),
		"age_limit_exceeded", m.AgeLimitExceeded(),
	)
	return dto.ToMainMemberDTO(m), nil
}
