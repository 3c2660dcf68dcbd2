package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/parlour/dto"
	"github.com/parlourcover/parlour/internal/domain/parlour"
	apperrors "github.com/parlourcover/parlour/internal/shared/errors"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type UpdateParlourCommand struct {
	ParlourID     uint
	Name          string
	ContactPerson string
	Email         string
	PhoneNumber   string
	Address       string
}

type UpdateParlourUseCase struct {
	parlourRepo parlour.Repository
	logger      logger.Interface
}

func NewUpdateParlourUseCase(parlourRepo parlour.Repository, logger logger.Interface) *UpdateParlourUseCase {
	return &UpdateParlourUseCase{
		parlourRepo: parlourRepo,
		logger:      logger,
	}
}

func (uc *UpdateParlourUseCase) Execute(ctx context.Context, cmd UpdateParlourCommand) (*dto.ParlourDTO, error) {
	p, err := uc.parlourRepo.GetByID(ctx, cmd.ParlourID)
	if err != nil {
		return nil, common.TranslateError(err)
	}

	if !strings.EqualFold(strings.TrimSpace(cmd.Name), p.Name()) {
		exists, err := uc.parlourRepo.ExistsByName(ctx, cmd.Name)
		if err != nil {
			uc.logger.Errorw("failed to check parlour name", "error", err, "name", cmd.Name)
			return nil, fmt.Errorf("failed to check parlour name: %w", err)
		}
		if exists {
			return nil, apperrors.NewConflictError("parlour name already exists").WithField("name")
		}
	}

	err = p.Update(cmd.Name, parlour.Contact{
		Person:  cmd.ContactPerson,
		Email:   cmd.Email,
		Phone:   cmd.PhoneNumber,
		Address: cmd.Address,
	})
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.parlourRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to update parlour", "error", err, "parlour_id", cmd.ParlourID)
		return nil, fmt.Errorf("failed to update parlour: %w", err)
	}

	return dto.ToParlourDTO(p), nil
}
