package usecases

import (
	"context"
	"fmt"

	"github.com/parlourcover/parlour/internal/application/parlour/dto"
	"github.com/parlourcover/parlour/internal/domain/parlour"
	apperrors "github.com/parlourcover/parlour/internal/shared/errors"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type CreateParlourCommand struct {
	Name          string
	ContactPerson string
	Email         string
	PhoneNumber   string
	Address       string
}

type CreateParlourUseCase struct {
	parlourRepo parlour.Repository
	logger      logger.Interface
}

func NewCreateParlourUseCase(parlourRepo parlour.Repository, logger logger.Interface) *CreateParlourUseCase {
	return &CreateParlourUseCase{
		parlourRepo: parlourRepo,
		logger:      logger,
	}
}

func (uc *CreateParlourUseCase) Execute(ctx context.Context, cmd CreateParlourCommand) (*dto.ParlourDTO, error) {
	exists, err := uc.parlourRepo.ExistsByName(ctx, cmd.Name)
	if err != nil {
		uc.logger.Errorw("failed to check parlour name", "error", err, "name", cmd.Name)
		return nil, fmt.Errorf("failed to check parlour name: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("parlour name already exists").WithField("name")
	}

	p, err := parlour.NewParlour(cmd.Name, parlour.Contact{
		Person:  cmd.ContactPerson,
		Email:   cmd.Email,
		Phone:   cmd.PhoneNumber,
		Address: cmd.Address,
	})
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.parlourRepo.Create(ctx, p); err != nil {
		uc.logger.Errorw("failed to create parlour", "error", err, "name", cmd.Name)
		return nil, fmt.Errorf("failed to create parlour: %w", err)
	}

	uc.logger.Infow("parlour created", "parlour_id", p.ID(), "name", p.Name())
	return dto.ToParlourDTO(p), nil
}
