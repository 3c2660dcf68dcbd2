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

type UpdateExtendedMemberCommand struct {
	Actor       common.Actor
	ApplicantID uint
	MemberID    uint
	Member      MemberInput
}

// UpdateExtendedMemberUseCase edits an extended member. Moving to another
// type takes a quota slot of that type; age-limit changes are only stored.
type UpdateExtendedMemberUseCase struct {
	applicantRepo membership.ApplicantRepository
	mainRepo      membership.MainMemberRepository
	extendedRepo  membership.ExtendedMemberRepository
	planRepo      plan.Repository
	certificates  *CertificateService
	txManager     TransactionRunner
	metrics       Metrics
	logger        logger.Interface
}

func NewUpdateExtendedMemberUseCase(
	applicantRepo membership.ApplicantRepository,
	mainRepo membership.MainMemberRepository,
	extendedRepo membership.ExtendedMemberRepository,
	planRepo plan.Repository,
	certificates *CertificateService,
	txManager TransactionRunner,
	metrics Metrics,
	logger logger.Interface,
) *UpdateExtendedMemberUseCase {
	return &UpdateExtendedMemberUseCase{
		applicantRepo: applicantRepo,
		mainRepo:      mainRepo,
		extendedRepo:  extendedRepo,
		planRepo:      planRepo,
		certificates:  certificates,
		txManager:     txManager,
		metrics:       metrics,
		logger:        logger,
	}
}

func (uc *UpdateExtendedMemberUseCase) Execute(ctx context.Context, cmd UpdateExtendedMemberCommand) (*dto.ExtendedMemberDTO, error) {
	a, err := loadActiveApplicant(ctx, uc.applicantRepo, cmd.Actor, cmd.ApplicantID)
	if err != nil {
		return nil, err
	}
	m, err := loadMember(ctx, uc.extendedRepo, a, cmd.MemberID)
	if err != nil {
		return nil, err
	}
	p, err := loadPlan(ctx, uc.planRepo, a.PlanID())
	if err != nil {
		return nil, err
	}

	memberType, relation, err := parseExtendedKind(cmd.Member.Type, cmd.Member.Relation)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	typeChanged := memberType != m.Type()

	var joined time.Time
	if cmd.Member.DateJoined != nil {
		joined = *cmd.Member.DateJoined
	}
	recompute, err := m.Update(membership.ExtendedMemberUpdate{
		Identity:   cmd.Member.identity(),
		Type:       memberType,
		Relation:   relation,
		DateJoined: joined,
	})
	if err != nil {
		return nil, common.TranslateError(err)
	}
	if recompute {
		if _, err := membership.EvaluateExtendedMember(m, p, biztime.NowUTC(), biztime.Location()); err != nil {
			return nil, common.TranslateError(err)
		}
		uc.metrics.ObserveAgeLimit(m.AgeLimitExceeded())
	}

	checker := idNumberChecker{mainRepo: uc.mainRepo, extendedRepo: uc.extendedRepo}
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if typeChanged {
			count, err := uc.extendedRepo.CountActiveByType(ctx, a.ID(), memberType, m.ID())
			if err != nil {
				return fmt.Errorf("failed to count members: %w", err)
			}
			if err := membership.CheckQuota(memberType, p.BoundsFor(memberType), int(count)); err != nil {
				uc.metrics.IncQuotaRejection(memberType.String())
				return err
			}
		}

		taken, err := checker.taken(ctx, a.ParlourID(), m.Identity().IDNumber, 0, m.ID())
		if err != nil {
			return fmt.Errorf("failed to check id number: %w", err)
		}
		if taken {
			return membership.ErrDuplicateIDNumber
		}

		if err := uc.extendedRepo.Update(ctx, m); err != nil {
			return fmt.Errorf("failed to update extended member: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to update extended member", "error", err, "member_id", m.ID())
		return nil, common.TranslateError(err)
	}

	uc.certificates.IssueBestEffort(ctx, a)

	uc.logger.Infow("extended member updated",
		"applicant_id", a.ID(),
		"member_id", m.ID(),
		"type_changed", typeChanged,
	)
	return dto.ToExtendedMemberDTO(m), nil
}
