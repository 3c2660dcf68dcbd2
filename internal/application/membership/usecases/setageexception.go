package usecases

import (
	"context"
	"fmt"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

// SetAgeExceptionCommand grants or revokes the age-limit override. MemberID
// zero targets the main member.
type SetAgeExceptionCommand struct {
	Actor       common.Actor
	ApplicantID uint
	MemberID    uint
	Exception   bool
}

type SetAgeExceptionUseCase struct {
	applicantRepo membership.ApplicantRepository
	mainRepo      membership.MainMemberRepository
	extendedRepo  membership.ExtendedMemberRepository
	logger        logger.Interface
}

func NewSetAgeExceptionUseCase(
	applicantRepo membership.ApplicantRepository,
	mainRepo membership.MainMemberRepository,
	extendedRepo membership.ExtendedMemberRepository,
	logger logger.Interface,
) *SetAgeExceptionUseCase {
	return &SetAgeExceptionUseCase{
		applicantRepo: applicantRepo,
		mainRepo:      mainRepo,
		extendedRepo:  extendedRepo,
		logger:        logger,
	}
}

func (uc *SetAgeExceptionUseCase) Execute(ctx context.Context, cmd SetAgeExceptionCommand) error {
	a, err := loadActiveApplicant(ctx, uc.applicantRepo, cmd.Actor, cmd.ApplicantID)
	if err != nil {
		return err
	}

	if cmd.MemberID == 0 {
		m, err := soleMainMember(ctx, uc.mainRepo, a.ID())
		if err != nil {
			return common.TranslateError(err)
		}
		if m == nil {
			return common.TranslateError(membership.ErrNoMainMember)
		}
		m.SetAgeLimitException(cmd.Exception)
		if err := uc.mainRepo.Update(ctx, m); err != nil {
			uc.logger.Errorw("failed to update main member", "error", err, "member_id", m.ID())
			return fmt.Errorf("failed to update main member: %w", err)
		}
		uc.logger.Infow("age limit exception set", "applicant_id", a.ID(), "main_member_id", m.ID(), "exception", cmd.Exception)
		return nil
	}

	m, err := loadMember(ctx, uc.extendedRepo, a, cmd.MemberID)
	if err != nil {
		return err
	}
	if err := m.SetAgeLimitException(cmd.Exception); err != nil {
		return common.TranslateError(err)
	}
	if err := uc.extendedRepo.Update(ctx, m); err != nil {
		uc.logger.Errorw("failed to update extended member", "error", err, "member_id", m.ID())
		return fmt.Errorf("failed to update extended member: %w", err)
	}
	uc.logger.Infow("age limit exception set", "applicant_id", a.ID(), "member_id", m.ID(), "exception", cmd.Exception)
	return nil
}
