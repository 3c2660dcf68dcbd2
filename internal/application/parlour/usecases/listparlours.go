package usecases

import (
	"context"
	"fmt"

	"github.com/parlourcover/parlour/internal/application/parlour/dto"
	"github.com/parlourcover/parlour/internal/domain/parlour"
	"github.com/parlourcover/parlour/internal/shared/logger"
	"github.com/parlourcover/parlour/internal/shared/utils"
)

type ListParloursQuery struct {
	Page     int
	PageSize int
}

type ListParloursUseCase struct {
	parlourRepo parlour.Repository
	logger      logger.Interface
}

func NewListParloursUseCase(parlourRepo parlour.Repository, logger logger.Interface) *ListParloursUseCase {
	return &ListParloursUseCase{
		parlourRepo: parlourRepo,
		logger:      logger,
	}
}

func (uc *ListParloursUseCase) Execute(ctx context.Context, query ListParloursQuery) (*dto.ListParloursResponse, error) {
	p := utils.ValidatePagination(query.Page, query.PageSize)

	parlours, total, err := uc.parlourRepo.List(ctx, p.Page, p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list parlours", "error", err)
		return nil, fmt.Errorf("failed to list parlours: %w", err)
	}

	return &dto.ListParloursResponse{
		Parlours: dto.ToParlourDTOList(parlours),
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, nil
}
