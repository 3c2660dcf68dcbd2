package usecases

import (
	"context"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/parlour/dto"
	"github.com/parlourcover/parlour/internal/domain/parlour"
	apperrors "github.com/parlourcover/parlour/internal/shared/errors"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type GetParlourQuery struct {
	Actor     common.Actor
	ParlourID uint
}

type GetParlourUseCase struct {
	parlourRepo parlour.Repository
	logger      logger.Interface
}

func NewGetParlourUseCase(parlourRepo parlour.Repository, logger logger.Interface) *GetParlourUseCase {
	return &GetParlourUseCase{
		parlourRepo: parlourRepo,
		logger:      logger,
	}
}

func (uc *GetParlourUseCase) Execute(ctx context.Context, query GetParlourQuery) (*dto.ParlourDTO, error) {
	if !query.Actor.CanAccessParlour(query.ParlourID) {
		return nil, apperrors.NewNotFoundError("parlour not found")
	}
	p, err := uc.parlourRepo.GetByID(ctx, query.ParlourID)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	return dto.ToParlourDTO(p), nil
}
