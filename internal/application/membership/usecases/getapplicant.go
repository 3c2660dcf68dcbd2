package usecases

import (
	"context"
	"fmt"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/membership/dto"
	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type GetApplicantUseCase struct {
	applicantRepo membership.ApplicantRepository
	mainRepo      membership.MainMemberRepository
	extendedRepo  membership.ExtendedMemberRepository
	logger        logger.Interface
}

func NewGetApplicantUseCase(
	applicantRepo membership.ApplicantRepository,
	mainRepo membership.MainMemberRepository,
	extendedRepo membership.ExtendedMemberRepository,
	logger logger.Interface,
) *GetApplicantUseCase {
	return &GetApplicantUseCase{
		applicantRepo: applicantRepo,
		mainRepo:      mainRepo,
		extendedRepo:  extendedRepo,
		logger:        logger,
	}
}

// Execute returns the applicant with its active members. Archived and
// deleted applicants stay readable.
func (uc *GetApplicantUseCase) Execute(ctx context.Context, actor common.Actor, applicantID uint) (*dto.ApplicantDTO, error) {
	a, err := loadApplicant(ctx, uc.applicantRepo, actor, applicantID)
	if err != nil {
		return nil, err
	}

	mains, err := uc.mainRepo.ListActiveByApplicantID(ctx, a.ID())
	if err != nil {
		uc.logger.Errorw("failed to list main members", "error", err, "applicant_id", a.ID())
		return nil, fmt.Errorf("failed to list main members: %w", err)
	}
	if len(mains) > 1 {
		uc.logger.Warnw("applicant has more than one active main member", "applicant_id", a.ID(), "count", len(mains))
	}
	var main *membership.MainMember
	if len(mains) > 0 {
		main = mains[0]
	}

	members, err := uc.extendedRepo.ListActiveByApplicantID(ctx, a.ID())
	if err != nil {
		uc.logger.Errorw("failed to list extended members", "error", err, "applicant_id", a.ID())
		return nil, fmt.Errorf("failed to list extended members: %w", err)
	}

	return dto.ToApplicantDTO(a, main, members), nil
}
