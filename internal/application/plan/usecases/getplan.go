package usecases

import (
	"context"
	"fmt"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/plan/dto"
	"github.com/parlourcover/parlour/internal/domain/plan"
	apperrors "github.com/parlourcover/parlour/internal/shared/errors"
	"github.com/parlourcover/parlour/internal/shared/logger"
	"github.com/parlourcover/parlour/internal/shared/utils"
)

type GetPlanUseCase struct {
	planRepo plan.Repository
	logger   logger.Interface
}

func NewGetPlanUseCase(planRepo plan.Repository, logger logger.Interface) *GetPlanUseCase {
	return &GetPlanUseCase{planRepo: planRepo, logger: logger}
}

func (uc *GetPlanUseCase) Execute(ctx context.Context, actor common.Actor, planID uint) (*dto.PlanDTO, error) {
	p, err := uc.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	if !actor.CanAccessParlour(p.ParlourID()) {
		return nil, apperrors.NewNotFoundError("plan not found")
	}
	return dto.ToPlanDTO(p), nil
}

type ListPlansQuery struct {
	Actor     common.Actor
	ParlourID uint
	State     string
	Page      int
	PageSize  int
}

type ListPlansUseCase struct {
	planRepo plan.Repository
	logger   logger.Interface
}

func NewListPlansUseCase(planRepo plan.Repository, logger logger.Interface) *ListPlansUseCase {
	return &ListPlansUseCase{planRepo: planRepo, logger: logger}
}

func (uc *ListPlansUseCase) Execute(ctx context.Context, query ListPlansQuery) (*dto.ListPlansResponse, error) {
	p := utils.ValidatePagination(query.Page, query.PageSize)

	filter := plan.Filter{
		ParlourID: query.Actor.ScopeParlour(query.ParlourID),
		Page:      p.Page,
		PageSize:  p.PageSize,
	}
	if query.State != "" {
		filter.State = &query.State
	}

	plans, total, err := uc.planRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	return &dto.ListPlansResponse{
		Plans:    dto.ToPlanDTOList(plans),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}
