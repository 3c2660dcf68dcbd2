package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/plan/dto"
	"github.com/parlourcover/parlour/internal/domain/plan"
	apperrors "github.com/parlourcover/parlour/internal/shared/errors"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type UpdatePlanCommand struct {
	Actor             common.Actor
	PlanID            uint
	Name              string
	Premium           decimal.Decimal
	WaitingPeriodDays int
	Benefits          []string
	// Bounds replaces every per-type bound when not nil.
	Bounds map[string]dto.BoundsDTO
}

type UpdatePlanResult struct {
	Plan              *dto.PlanDTO `json:"plan"`
	RecomputedMembers int          `json:"recomputed_members"`
}

// UpdatePlanUseCase changes a plan. A bounds change re-evaluates the age-limit
// flags of every member on the plan in the same transaction.
type UpdatePlanUseCase struct {
	planRepo   plan.Repository
	recomputer MemberFlagRecomputer
	txManager  TransactionRunner
	logger     logger.Interface
}

func NewUpdatePlanUseCase(
	planRepo plan.Repository,
	recomputer MemberFlagRecomputer,
	txManager TransactionRunner,
	logger logger.Interface,
) *UpdatePlanUseCase {
	return &UpdatePlanUseCase{
		planRepo:   planRepo,
		recomputer: recomputer,
		txManager:  txManager,
		logger:     logger,
	}
}

func (uc *UpdatePlanUseCase) Execute(ctx context.Context, cmd UpdatePlanCommand) (*UpdatePlanResult, error) {
	p, err := uc.planRepo.GetByID(ctx, cmd.PlanID)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	if !cmd.Actor.CanAccessParlour(p.ParlourID()) {
		return nil, apperrors.NewNotFoundError("plan not found")
	}

	if !strings.EqualFold(strings.TrimSpace(cmd.Name), p.Name()) {
		exists, err := uc.planRepo.ExistsByName(ctx, p.ParlourID(), cmd.Name)
		if err != nil {
			uc.logger.Errorw("failed to check plan name", "error", err, "name", cmd.Name)
			return nil, fmt.Errorf("failed to check plan name: %w", err)
		}
		if exists {
			return nil, common.TranslateError(plan.ErrPlanNameExists)
		}
	}

	if err := p.Update(cmd.Name, cmd.Premium, cmd.WaitingPeriodDays, cmd.Benefits); err != nil {
		return nil, common.TranslateError(err)
	}

	boundsChanged := false
	if cmd.Bounds != nil {
		bounds, err := dto.ToBounds(cmd.Bounds)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error()).WithField("bounds")
		}
		if boundsChanged, err = p.SetBounds(bounds); err != nil {
			return nil, common.TranslateError(err)
		}
	}

	recomputed := 0
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.planRepo.Update(ctx, p); err != nil {
			return fmt.Errorf("failed to update plan: %w", err)
		}
		if !boundsChanged {
			return nil
		}
		n, err := uc.recomputer.RecomputeForPlan(ctx, p.ID())
		if err != nil {
			return fmt.Errorf("failed to recompute member flags: %w", err)
		}
		recomputed = n
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to update plan", "error", err, "plan_id", p.ID())
		return nil, err
	}

	uc.logger.Infow("plan updated",
		"plan_id", p.ID(),
		"bounds_changed", boundsChanged,
		"recomputed_members", recomputed,
	)
	return &UpdatePlanResult{Plan: dto.ToPlanDTO(p), RecomputedMembers: recomputed}, nil
}
