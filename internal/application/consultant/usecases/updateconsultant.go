package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/consultant/dto"
	"github.com/parlourcover/parlour/internal/domain/consultant"
	vo "github.com/parlourcover/parlour/internal/domain/consultant/valueobjects"
	"github.com/parlourcover/parlour/internal/shared/authorization"
	apperrors "github.com/parlourcover/parlour/internal/shared/errors"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type UpdateConsultantCommand struct {
	Actor        common.Actor
	ConsultantID uint
	FirstName    string
	LastName     string
	Role         string
	// Password is optional; empty keeps the current password.
	Password string
}

type UpdateConsultantUseCase struct {
	consultantRepo consultant.Repository
	hasher         consultant.PasswordHasher
	logger         logger.Interface
}

func NewUpdateConsultantUseCase(consultantRepo consultant.Repository, hasher consultant.PasswordHasher, logger logger.Interface) *UpdateConsultantUseCase {
	return &UpdateConsultantUseCase{
		consultantRepo: consultantRepo,
		hasher:         hasher,
		logger:         logger,
	}
}

func (uc *UpdateConsultantUseCase) Execute(ctx context.Context, cmd UpdateConsultantCommand) (*dto.ConsultantDTO, error) {
	c, err := uc.consultantRepo.GetByID(ctx, cmd.ConsultantID)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	if !cmd.Actor.CanAccessParlour(c.ParlourID()) {
		return nil, apperrors.NewNotFoundError("consultant not found")
	}

	role := c.Role()
	if cmd.Role != "" {
		role = authorization.UserRole(cmd.Role)
	}
	if role.IsSuperuser() != c.Role().IsSuperuser() && !cmd.Actor.Role.IsSuperuser() {
		return nil, apperrors.NewForbiddenError("only superusers can grant or revoke superuser")
	}

	if err := c.UpdateProfile(cmd.FirstName, cmd.LastName, role); err != nil {
		if errors.Is(err, consultant.ErrInvalidRole) {
			return nil, common.TranslateError(err)
		}
		return nil, apperrors.NewValidationError(err.Error())
	}

	if cmd.Password != "" {
		password, err := vo.NewPassword(cmd.Password)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error()).WithField("password")
		}
		if err := c.ChangePassword(password, uc.hasher); err != nil {
			uc.logger.Errorw("failed to change password", "error", err, "consultant_id", c.ID())
			return nil, fmt.Errorf("failed to change password: %w", err)
		}
	}

	if err := uc.consultantRepo.Update(ctx, c); err != nil {
		uc.logger.Errorw("failed to update consultant", "error", err, "consultant_id", c.ID())
		return nil, fmt.Errorf("failed to update consultant: %w", err)
	}

	return dto.ToConsultantDTO(c), nil
}
