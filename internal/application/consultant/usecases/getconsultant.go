package usecases

import (
	"context"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/consultant/dto"
	"github.com/parlourcover/parlour/internal/domain/consultant"
	apperrors "github.com/parlourcover/parlour/internal/shared/errors"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type GetConsultantQuery struct {
	Actor        common.Actor
	ConsultantID uint
}

type GetConsultantUseCase struct {
	consultantRepo consultant.Repository
	logger         logger.Interface
}

func NewGetConsultantUseCase(consultantRepo consultant.Repository, logger logger.Interface) *GetConsultantUseCase {
	return &GetConsultantUseCase{
		consultantRepo: consultantRepo,
		logger:         logger,
	}
}

func (uc *GetConsultantUseCase) Execute(ctx context.Context, query GetConsultantQuery) (*dto.ConsultantDTO, error) {
	c, err := uc.consultantRepo.GetByID(ctx, query.ConsultantID)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	if c.ID() != query.Actor.ConsultantID && !query.Actor.CanAccessParlour(c.ParlourID()) {
		return nil, apperrors.NewNotFoundError("consultant not found")
	}
	return dto.ToConsultantDTO(c), nil
}
