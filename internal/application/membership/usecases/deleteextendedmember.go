package usecases

import (
	"context"
	"fmt"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type DeleteExtendedMemberUseCase struct {
	applicantRepo membership.ApplicantRepository
	extendedRepo  membership.ExtendedMemberRepository
	certificates  *CertificateService
	logger        logger.Interface
}

func NewDeleteExtendedMemberUseCase(
	applicantRepo membership.ApplicantRepository,
	extendedRepo membership.ExtendedMemberRepository,
	certificates *CertificateService,
	logger logger.Interface,
) *DeleteExtendedMemberUseCase {
	return &DeleteExtendedMemberUseCase{
		applicantRepo: applicantRepo,
		extendedRepo:  extendedRepo,
		certificates:  certificates,
		logger:        logger,
	}
}

// Execute soft-deletes the member, freeing its quota slot.
func (uc *DeleteExtendedMemberUseCase) Execute(ctx context.Context, actor common.Actor, applicantID, memberID uint) error {
	a, err := loadActiveApplicant(ctx, uc.applicantRepo, actor, applicantID)
	if err != nil {
		return err
	}
	m, err := loadMember(ctx, uc.extendedRepo, a, memberID)
	if err != nil {
		return err
	}
	if err := m.Delete(); err != nil {
		return common.TranslateError(err)
	}
	if err := uc.extendedRepo.Update(ctx, m); err != nil {
		uc.logger.Errorw("failed to delete extended member", "error", err, "member_id", m.ID())
		return fmt.Errorf("failed to delete extended member: %w", err)
	}

	uc.certificates.IssueBestEffort(ctx, a)

	uc.logger.Infow("extended member deleted", "applicant_id", a.ID(), "member_id", m.ID())
	return nil
}
