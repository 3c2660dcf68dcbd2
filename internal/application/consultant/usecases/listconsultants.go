package usecases

import (
	"context"
	"fmt"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/consultant/dto"
	"github.com/parlourcover/parlour/internal/domain/consultant"
	"github.com/parlourcover/parlour/internal/shared/logger"
	"github.com/parlourcover/parlour/internal/shared/utils"
)

type ListConsultantsQuery struct {
	Actor     common.Actor
	ParlourID uint
	Role      string
	State     string
	Page      int
	PageSize  int
}

type ListConsultantsUseCase struct {
	consultantRepo consultant.Repository
	logger         logger.Interface
}

func NewListConsultantsUseCase(consultantRepo consultant.Repository, logger logger.Interface) *ListConsultantsUseCase {
	return &ListConsultantsUseCase{
		consultantRepo: consultantRepo,
		logger:         logger,
	}
}

func (uc *ListConsultantsUseCase) Execute(ctx context.Context, query ListConsultantsQuery) (*dto.ListConsultantsResponse, error) {
	p := utils.ValidatePagination(query.Page, query.PageSize)

	filter := consultant.Filter{Page: p.Page, PageSize: p.PageSize}
	if parlourID := query.Actor.ScopeParlour(query.ParlourID); parlourID != 0 {
		filter.ParlourID = &parlourID
	}
	if query.Role != "" {
		filter.Role = &query.Role
	}
	if query.State != "" {
		filter.State = &query.State
	}

	consultants, total, err := uc.consultantRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list consultants", "error", err)
		return nil, fmt.Errorf("failed to list consultants: %w", err)
	}

	return &dto.ListConsultantsResponse{
		Consultants: dto.ToConsultantDTOList(consultants),
		Total:       total,
		Page:        p.Page,
		PageSize:    p.PageSize,
	}, nil
}
