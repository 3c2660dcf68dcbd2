package usecases

import (
	"context"
	"fmt"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/domain/plan"
	apperrors "github.com/parlourcover/parlour/internal/shared/errors"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

// ArchivePlanUseCase hides a plan from new applicants. Applicants already on
// the plan keep it.
type ArchivePlanUseCase struct {
	planRepo plan.Repository
	logger   logger.Interface
}

func NewArchivePlanUseCase(planRepo plan.Repository, logger logger.Interface) *ArchivePlanUseCase {
	return &ArchivePlanUseCase{planRepo: planRepo, logger: logger}
}

func (uc *ArchivePlanUseCase) Execute(ctx context.Context, actor common.Actor, planID uint) error {
	p, err := uc.planRepo.GetByID(ctx, planID)
	if err != nil {
		return common.TranslateError(err)
	}
	if !actor.CanAccessParlour(p.ParlourID()) {
		return apperrors.NewNotFoundError("plan not found")
	}

	if err := p.Archive(); err != nil {
		return apperrors.NewConflictError(err.Error())
	}
	if err := uc.planRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to archive plan", "error", err, "plan_id", planID)
		return fmt.Errorf("failed to archive plan: %w", err)
	}

	uc.logger.Infow("plan archived", "plan_id", planID, "archived_by", actor.ConsultantID)
	return nil
}
