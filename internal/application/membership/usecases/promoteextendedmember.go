package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/membership/dto"
	"github.com/parlourcover/parlour/internal/domain/membership"
	vo "github.com/parlourcover/parlour/internal/domain/membership/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/plan"
	"github.com/parlourcover/parlour/internal/shared/biztime"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

// PromoteExtendedMemberCommand promotes MemberID to main member of a
// successor policy. Empty identity fields are taken from the member.
type PromoteExtendedMemberCommand struct {
	Actor       common.Actor
	ApplicantID uint
	MemberID    uint
	Member      MemberInput
}

type PromoteExtendedMemberUseCase struct {
	applicantRepo membership.ApplicantRepository
	mainRepo      membership.MainMemberRepository
	extendedRepo  membership.ExtendedMemberRepository
	planRepo      plan.Repository
	effects       *EffectRunner
	txManager     TransactionRunner
	metrics       Metrics
	logger        logger.Interface
}

func NewPromoteExtendedMemberUseCase(
	applicantRepo membership.ApplicantRepository,
	mainRepo membership.MainMemberRepository,
	extendedRepo membership.ExtendedMemberRepository,
	planRepo plan.Repository,
	effects *EffectRunner,
	txManager TransactionRunner,
	metrics Metrics,
	logger logger.Interface,
) *PromoteExtendedMemberUseCase {
	return &PromoteExtendedMemberUseCase{
		applicantRepo: applicantRepo,
		mainRepo:      mainRepo,
		extendedRepo:  extendedRepo,
		planRepo:      planRepo,
		effects:       effects,
		txManager:     txManager,
		metrics:       metrics,
		logger:        logger,
	}
}

func (uc *PromoteExtendedMemberUseCase) Execute(ctx context.Context, cmd PromoteExtendedMemberCommand) (*dto.PromotionResultDTO, error) {
	a, err := loadActiveApplicant(ctx, uc.applicantRepo, cmd.Actor, cmd.ApplicantID)
	if err != nil {
		return nil, err
	}
	member, err := loadMember(ctx, uc.extendedRepo, a, cmd.MemberID)
	if err != nil {
		return nil, err
	}
	p, err := loadPlan(ctx, uc.planRepo, a.PlanID())
	if err != nil {
		return nil, err
	}

	mains, err := uc.mainRepo.ListActiveByApplicantID(ctx, a.ID())
	if err != nil {
		uc.logger.Errorw("failed to list main members", "error", err, "applicant_id", a.ID())
		return nil, fmt.Errorf("failed to list main members: %w", err)
	}
	members, err := uc.extendedRepo.ListActiveByApplicantID(ctx, a.ID())
	if err != nil {
		uc.logger.Errorw("failed to list extended members", "error", err, "applicant_id", a.ID())
		return nil, fmt.Errorf("failed to list extended members: %w", err)
	}

	promoteCmd, err := promotionCommand(member, cmd.Member)
	if err != nil {
		return nil, common.TranslateError(err)
	}

	now := biztime.NowUTC()
	promotion, err := membership.Promote(membership.PromotionState{
		Applicant:       a,
		MainMembers:     mains,
		ExtendedMembers: members,
		Plan:            p,
	}, promoteCmd, now, biztime.Location())
	if err != nil {
		uc.logger.Warnw("promotion rejected", "applicant_id", a.ID(), "member_id", cmd.MemberID, "error", err)
		return nil, common.TranslateError(err)
	}

	checker := idNumberChecker{mainRepo: uc.mainRepo, extendedRepo: uc.extendedRepo}
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		taken, err := checker.taken(ctx, a.ParlourID(), promotion.NewMainMember.Identity().IDNumber, 0, member.ID())
		if err != nil {
			return fmt.Errorf("failed to check id number: %w", err)
		}
		if taken {
			return membership.ErrDuplicateIDNumber
		}

		if err := uc.applicantRepo.Update(ctx, promotion.Original); err != nil {
			return fmt.Errorf("failed to archive original applicant: %w", err)
		}
		if err := uc.mainRepo.Update(ctx, promotion.FormerMainMember); err != nil {
			return fmt.Errorf("failed to update former main member: %w", err)
		}
		if err := uc.applicantRepo.Create(ctx, promotion.Successor); err != nil {
			return fmt.Errorf("failed to create successor applicant: %w", err)
		}
		if err := promotion.BindSuccessor(now); err != nil {
			return err
		}
		if err := uc.mainRepo.Create(ctx, promotion.NewMainMember); err != nil {
			return fmt.Errorf("failed to create new main member: %w", err)
		}
		if err := uc.extendedRepo.Update(ctx, promotion.Promoted); err != nil {
			return fmt.Errorf("failed to retire promoted member: %w", err)
		}
		for _, m := range promotion.Reparented {
			if err := uc.extendedRepo.Update(ctx, m); err != nil {
				return fmt.Errorf("failed to move member %d: %w", m.ID(), err)
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to persist promotion", "error", err, "applicant_id", a.ID(), "member_id", member.ID())
		return nil, common.TranslateError(err)
	}

	uc.metrics.IncPromotion()
	uc.effects.Run(ctx, promotion.Effects)

	uc.logger.Infow("extended member promoted",
		"original_applicant_id", promotion.Original.ID(),
		"successor_applicant_id", promotion.Successor.ID(),
		"new_main_member_id", promotion.NewMainMember.ID(),
		"moved_members", len(promotion.Reparented),
	)
	return &dto.PromotionResultDTO{
		OriginalApplicantID: promotion.Original.ID(),
		Applicant:           dto.ToApplicantDTO(promotion.Successor, promotion.NewMainMember, promotion.Reparented),
	}, nil
}

func promotionCommand(member *membership.ExtendedMember, in MemberInput) (membership.PromotionCommand, error) {
	identity := member.Identity()
	if strings.TrimSpace(in.FirstName) != "" {
		identity.FirstName = in.FirstName
	}
	if strings.TrimSpace(in.LastName) != "" {
		identity.LastName = in.LastName
	}
	if strings.TrimSpace(in.IDNumber) != "" {
		identity.IDNumber = in.IDNumber
	}
	if in.DateOfBirth != nil {
		identity.DateOfBirth = in.DateOfBirth
	}
	if strings.TrimSpace(in.Number) != "" {
		identity.Number = in.Number
	}

	memberType := vo.MemberTypeMain
	if strings.TrimSpace(in.Type) != "" {
		t, err := vo.ParseMemberType(in.Type)
		if err != nil {
			return membership.PromotionCommand{}, fmt.Errorf("%w: %q", membership.ErrInvalidMemberType, in.Type)
		}
		memberType = t
	}
	relation := vo.RelationSelf
	if strings.TrimSpace(in.Relation) != "" {
		r, err := vo.ParseRelation(in.Relation)
		if err != nil {
			return membership.PromotionCommand{}, fmt.Errorf("%w: %q", membership.ErrInvalidRelation, in.Relation)
		}
		relation = r
	}

	cmd := membership.PromotionCommand{
		MemberID: member.ID(),
		Identity: identity,
		Type:     memberType,
		Relation: relation,
	}
	if in.DateJoined != nil {
		cmd.DateJoined = *in.DateJoined
	}
	return cmd, nil
}
