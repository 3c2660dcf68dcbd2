package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/membership/dto"
	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/domain/plan"
	"github.com/parlourcover/parlour/internal/shared/biztime"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type AddExtendedMemberCommand struct {
	Actor       common.Actor
	ApplicantID uint
	Member      MemberInput
}

// AddExtendedMemberUseCase adds a spouse, dependant or extended relative.
// The plan quota for the member type and the age bounds are enforced.
type AddExtendedMemberUseCase struct {
	applicantRepo membership.ApplicantRepository
	mainRepo      membership.MainMemberRepository
	extendedRepo  membership.ExtendedMemberRepository
	planRepo      plan.Repository
	certificates  *CertificateService
	txManager     TransactionRunner
	metrics       Metrics
	logger        logger.Interface
}

func NewAddExtendedMemberUseCase(
	applicantRepo membership.ApplicantRepository,
	mainRepo membership.MainMemberRepository,
	extendedRepo membership.ExtendedMemberRepository,
	planRepo plan.Repository,
	certificates *CertificateService,
	txManager TransactionRunner,
	metrics Metrics,
	logger logger.Interface,
) *AddExtendedMemberUseCase {
	return &AddExtendedMemberUseCase{
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

func (uc *AddExtendedMemberUseCase) Execute(ctx context.Context, cmd AddExtendedMemberCommand) (*dto.ExtendedMemberDTO, error) {
	a, err := loadActiveApplicant(ctx, uc.applicantRepo, cmd.Actor, cmd.ApplicantID)
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
	m, err := membership.NewExtendedMember(membership.ExtendedMemberParams{
		ApplicantID:   a.ID(),
		ParlourID:     a.ParlourID(),
		Identity:      cmd.Member.identity(),
		Type:          memberType,
		Relation:      relation,
		DateJoined:    cmd.Member.dateJoined(),
		WaitingPeriod: p.WaitingPeriodDays(),
	})
	if err != nil {
		return nil, common.TranslateError(err)
	}

	if _, err := membership.EvaluateExtendedMember(m, p, biztime.NowUTC(), biztime.Location()); err != nil {
		return nil, common.TranslateError(err)
	}
	if err := admitAge(m.Identity(), m.AgeLimitExceeded(), cmd.Member.AgeLimitException, uc.metrics); err != nil {
		return nil, common.TranslateError(err)
	}
	if cmd.Member.AgeLimitException {
		if err := m.SetAgeLimitException(true); err != nil {
			return nil, common.TranslateError(err)
		}
	}

	checker := idNumberChecker{mainRepo: uc.mainRepo, extendedRepo: uc.extendedRepo}
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		count, err := uc.extendedRepo.CountActiveByType(ctx, a.ID(), memberType, 0)
		if err != nil {
			return fmt.Errorf("failed to count members: %w", err)
		}
		if err := membership.CheckQuota(memberType, p.BoundsFor(memberType), int(count)); err != nil {
			return err
		}

		taken, err := checker.taken(ctx, a.ParlourID(), m.Identity().IDNumber, 0, 0)
		if err != nil {
			return fmt.Errorf("failed to check id number: %w", err)
		}
		if taken {
			return membership.ErrDuplicateIDNumber
		}

		if err := uc.extendedRepo.Create(ctx, m); err != nil {
			return fmt.Errorf("failed to create extended member: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, membership.ErrQuotaReached) || errors.Is(err, membership.ErrMemberTypeNotSupported) {
			uc.metrics.IncQuotaRejection(memberType.String())
			uc.logger.Warnw("extended member rejected by quota", "applicant_id", a.ID(), "type", memberType, "error", err)
		} else {
			uc.logger.Errorw("failed to add extended member", "error", err, "applicant_id", a.ID())
		}
		return nil, common.TranslateError(err)
	}

	uc.certificates.IssueBestEffort(ctx, a)

	uc.logger.Infow("extended member added",
		"applicant_id", a.ID(),
		"member_id", m.ID(),
		"type", memberType,
		"waiting_period", m.WaitingPeriod(),
	)
	return dto.ToExtendedMemberDTO(m), nil
}
