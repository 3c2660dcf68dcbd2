package usecases

import (
	"context"
	"fmt"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/domain/consultant"
	apperrors "github.com/parlourcover/parlour/internal/shared/errors"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type ArchiveConsultantCommand struct {
	Actor        common.Actor
	ConsultantID uint
}

type ArchiveConsultantUseCase struct {
	consultantRepo consultant.Repository
	logger         logger.Interface
}

func NewArchiveConsultantUseCase(consultantRepo consultant.Repository, logger logger.Interface) *ArchiveConsultantUseCase {
	return &ArchiveConsultantUseCase{
		consultantRepo: consultantRepo,
		logger:         logger,
	}
}

func (uc *ArchiveConsultantUseCase) Execute(ctx context.Context, cmd ArchiveConsultantCommand) error {
	if cmd.ConsultantID == cmd.Actor.ConsultantID {
		return apperrors.NewBadRequestError("consultants cannot archive themselves")
	}

	c, err := uc.consultantRepo.GetByID(ctx, cmd.ConsultantID)
	if err != nil {
		return common.TranslateError(err)
	}
	if !cmd.Actor.CanAccessParlour(c.ParlourID()) {
		return apperrors.NewNotFoundError("consultant not found")
	}

	if err := c.Archive(); err != nil {
		return apperrors.NewConflictError(err.Error())
	}

	if err := uc.consultantRepo.Update(ctx, c); err != nil {
		uc.logger.Errorw("failed to archive consultant", "error", err, "consultant_id", c.ID())
		return fmt.Errorf("failed to archive consultant: %w", err)
	}

	uc.logger.Infow("consultant archived", "consultant_id", c.ID(), "archived_by", cmd.Actor.ConsultantID)
	return nil
}
