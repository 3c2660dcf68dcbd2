package usecases

import (
	"context"
	"fmt"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

// ArchiveApplicantUseCase closes a policy. Members stay attached and readable.
type ArchiveApplicantUseCase struct {
	applicantRepo membership.ApplicantRepository
	logger        logger.Interface
}

func NewArchiveApplicantUseCase(applicantRepo membership.ApplicantRepository, logger logger.Interface) *ArchiveApplicantUseCase {
	return &ArchiveApplicantUseCase{applicantRepo: applicantRepo, logger: logger}
}

func (uc *ArchiveApplicantUseCase) Execute(ctx context.Context, actor common.Actor, applicantID uint) error {
	a, err := loadApplicant(ctx, uc.applicantRepo, actor, applicantID)
	if err != nil {
		return err
	}
	if err := a.Archive(); err != nil {
		return common.TranslateError(err)
	}
	if err := uc.applicantRepo.Update(ctx, a); err != nil {
		uc.logger.Errorw("failed to archive applicant", "error", err, "applicant_id", a.ID())
		return fmt.Errorf("failed to archive applicant: %w", err)
	}
	uc.logger.Infow("applicant archived", "applicant_id", a.ID())
	return nil
}

// DeleteApplicantUseCase soft-deletes a policy and all of its active members.
type DeleteApplicantUseCase struct {
	applicantRepo membership.ApplicantRepository
	mainRepo      membership.MainMemberRepository
	extendedRepo  membership.ExtendedMemberRepository
	txManager     TransactionRunner
	logger        logger.Interface
}

func NewDeleteApplicantUseCase(
	applicantRepo membership.ApplicantRepository,
	mainRepo membership.MainMemberRepository,
	extendedRepo membership.ExtendedMemberRepository,
	txManager TransactionRunner,
	logger logger.Interface,
) *DeleteApplicantUseCase {
	return &DeleteApplicantUseCase{
		applicantRepo: applicantRepo,
		mainRepo:      mainRepo,
		extendedRepo:  extendedRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

func (uc *DeleteApplicantUseCase) Execute(ctx context.Context, actor common.Actor, applicantID uint) error {
	a, err := loadApplicant(ctx, uc.applicantRepo, actor, applicantID)
	if err != nil {
		return err
	}
	if err := a.Delete(); err != nil {
		return common.TranslateError(err)
	}

	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.applicantRepo.Update(ctx, a); err != nil {
			return fmt.Errorf("failed to delete applicant: %w", err)
		}
		mains, err := uc.mainRepo.ListActiveByApplicantID(ctx, a.ID())
		if err != nil {
			return fmt.Errorf("failed to list main members: %w", err)
		}
		for _, m := range mains {
			if err := m.Delete(); err != nil {
				return err
			}
			if err := uc.mainRepo.Update(ctx, m); err != nil {
				return fmt.Errorf("failed to delete main member %d: %w", m.ID(), err)
			}
		}
		members, err := uc.extendedRepo.ListActiveByApplicantID(ctx, a.ID())
		if err != nil {
			return fmt.Errorf("failed to list extended members: %w", err)
		}
		for _, m := range members {
			if err := m.Delete(); err != nil {
				return err
			}
			if err := uc.extendedRepo.Update(ctx, m); err != nil {
				return fmt.Errorf("failed to delete extended member %d: %w", m.ID(), err)
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to delete applicant", "error", err, "applicant_id", a.ID())
		return common.TranslateError(err)
	}

	uc.logger.Infow("applicant deleted", "applicant_id", a.ID())
	return nil
}
