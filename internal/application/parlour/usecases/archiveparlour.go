package usecases

import (
	"context"
	"fmt"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/domain/parlour"
	apperrors "github.com/parlourcover/parlour/internal/shared/errors"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type ArchiveParlourUseCase struct {
	parlourRepo parlour.Repository
	logger      logger.Interface
}

func NewArchiveParlourUseCase(parlourRepo parlour.Repository, logger logger.Interface) *ArchiveParlourUseCase {
	return &ArchiveParlourUseCase{
		parlourRepo: parlourRepo,
		logger:      logger,
	}
}

func (uc *ArchiveParlourUseCase) Execute(ctx context.Context, parlourID uint) error {
	p, err := uc.parlourRepo.GetByID(ctx, parlourID)
	if err != nil {
		return common.TranslateError(err)
	}

	if err := p.Archive(); err != nil {
		return apperrors.NewConflictError(err.Error())
	}

	if err := uc.parlourRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to archive parlour", "error", err, "parlour_id", parlourID)
		return fmt.Errorf("failed to archive parlour: %w", err)
	}

	uc.logger.Infow("parlour archived", "parlour_id", parlourID)
	return nil
}
