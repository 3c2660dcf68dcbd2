package usecases

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/plan/dto"
	"github.com/parlourcover/parlour/internal/domain/parlour"
	"github.com/parlourcover/parlour/internal/domain/plan"
	apperrors "github.com/parlourcover/parlour/internal/shared/errors"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type CreatePlanCommand struct {
	Actor             common.Actor
	ParlourID         uint
	Name              string
	Premium           decimal.Decimal
	WaitingPeriodDays int
	Benefits          []string
	Bounds            map[string]dto.BoundsDTO
}

type CreatePlanUseCase struct {
	planRepo    plan.Repository
	parlourRepo parlour.Repository
	logger      logger.Interface
}

func NewCreatePlanUseCase(planRepo plan.Repository, parlourRepo parlour.Repository, logger logger.Interface) *CreatePlanUseCase {
	return &CreatePlanUseCase{
		planRepo:    planRepo,
		parlourRepo: parlourRepo,
		logger:      logger,
	}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*dto.PlanDTO, error) {
	parlourID := cmd.Actor.ScopeParlour(cmd.ParlourID)
	if parlourID == 0 {
		return nil, apperrors.NewValidationError("parlour is required").WithField("parlour_id")
	}
	p, err := uc.parlourRepo.GetByID(ctx, parlourID)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	if !p.IsActive() {
		return nil, common.TranslateError(parlour.ErrParlourInactive)
	}

	bounds, err := dto.ToBounds(cmd.Bounds)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error()).WithField("bounds")
	}

	exists, err := uc.planRepo.ExistsByName(ctx, parlourID, cmd.Name)
	if err != nil {
		uc.logger.Errorw("failed to check plan name", "error", err, "name", cmd.Name)
		return nil, fmt.Errorf("failed to check plan name: %w", err)
	}
	if exists {
		return nil, common.TranslateError(plan.ErrPlanNameExists)
	}

	newPlan, err := plan.NewPlan(parlourID, cmd.Name, cmd.Premium, cmd.WaitingPeriodDays, cmd.Benefits, bounds)
	if err != nil {
		return nil, common.TranslateError(err)
	}

	if err := uc.planRepo.Create(ctx, newPlan); err != nil {
		uc.logger.Errorw("failed to create plan", "error", err, "parlour_id", parlourID)
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	uc.logger.Infow("plan created", "plan_id", newPlan.ID(), "parlour_id", parlourID, "name", newPlan.Name())
	return dto.ToPlanDTO(newPlan), nil
}
