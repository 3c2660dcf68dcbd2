package usecases

import (
	"context"
	"fmt"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/consultant/dto"
	"github.com/parlourcover/parlour/internal/domain/consultant"
	vo "github.com/parlourcover/parlour/internal/domain/consultant/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/parlour"
	"github.com/parlourcover/parlour/internal/shared/authorization"
	apperrors "github.com/parlourcover/parlour/internal/shared/errors"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type CreateConsultantCommand struct {
	Actor     common.Actor
	ParlourID uint
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

type CreateConsultantUseCase struct {
	consultantRepo consultant.Repository
	parlourRepo    parlour.Repository
	hasher         consultant.PasswordHasher
	logger         logger.Interface
}

func NewCreateConsultantUseCase(
	consultantRepo consultant.Repository,
	parlourRepo parlour.Repository,
	hasher consultant.PasswordHasher,
	logger logger.Interface,
) *CreateConsultantUseCase {
	return &CreateConsultantUseCase{
		consultantRepo: consultantRepo,
		parlourRepo:    parlourRepo,
		hasher:         hasher,
		logger:         logger,
	}
}

func (uc *CreateConsultantUseCase) Execute(ctx context.Context, cmd CreateConsultantCommand) (*dto.ConsultantDTO, error) {
	role := authorization.UserRole(cmd.Role)
	if cmd.Role == "" {
		role = authorization.RoleConsultant
	}
	if !role.IsValid() {
		return nil, apperrors.NewValidationError("invalid role").WithField("role")
	}

	parlourID := cmd.ParlourID
	if !cmd.Actor.Role.IsSuperuser() {
		if role.IsSuperuser() {
			return nil, apperrors.NewForbiddenError("only superusers can create superusers")
		}
		parlourID = cmd.Actor.ParlourID
	}
	if role.IsSuperuser() {
		parlourID = 0
	}

	if parlourID != 0 {
		p, err := uc.parlourRepo.GetByID(ctx, parlourID)
		if err != nil {
			return nil, common.TranslateError(err)
		}
		if !p.IsActive() {
			return nil, common.TranslateError(parlour.ErrParlourInactive)
		}
	}

	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error()).WithField("email")
	}
	password, err := vo.NewPassword(cmd.Password)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error()).WithField("password")
	}

	exists, err := uc.consultantRepo.ExistsByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to check consultant email", "error", err)
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, common.TranslateError(consultant.ErrEmailExists)
	}

	c, err := consultant.NewConsultant(parlourID, cmd.FirstName, cmd.LastName, email, password, role, uc.hasher)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.consultantRepo.Create(ctx, c); err != nil {
		if apperrors.IsDuplicateError(err) {
			return nil, common.TranslateError(consultant.ErrEmailExists)
		}
		uc.logger.Errorw("failed to create consultant", "error", err, "parlour_id", parlourID)
		return nil, fmt.Errorf("failed to create consultant: %w", err)
	}

	uc.logger.Infow("consultant created",
		"consultant_id", c.ID(),
		"parlour_id", parlourID,
		"role", role,
		"created_by", cmd.Actor.ConsultantID,
	)
	return dto.ToConsultantDTO(c), nil
}
