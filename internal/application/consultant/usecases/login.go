package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/consultant/dto"
	"github.com/parlourcover/parlour/internal/domain/consultant"
	"github.com/parlourcover/parlour/internal/infrastructure/auth"
	"github.com/parlourcover/parlour/internal/shared/authorization"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Generate(consultantID, parlourID uint, role authorization.UserRole) (*auth.Token, error)
}

type LoginCommand struct {
	Email     string
	Password  string
	IPAddress string
}

type LoginUseCase struct {
	consultantRepo consultant.Repository
	hasher         consultant.PasswordHasher
	tokens         TokenIssuer
	logger         logger.Interface
}

func NewLoginUseCase(
	consultantRepo consultant.Repository,
	hasher consultant.PasswordHasher,
	tokens TokenIssuer,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		consultantRepo: consultantRepo,
		hasher:         hasher,
		tokens:         tokens,
		logger:         logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*dto.LoginResponse, error) {
	c, err := uc.consultantRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		// Unknown emails get the same answer as wrong passwords.
		if errors.Is(err, consultant.ErrConsultantNotFound) {
			return nil, common.TranslateError(consultant.ErrInvalidCredentials)
		}
		uc.logger.Errorw("failed to get consultant by email", "error", err)
		return nil, fmt.Errorf("failed to get consultant: %w", err)
	}

	if err := c.Authenticate(cmd.Password, uc.hasher); err != nil {
		uc.logger.Warnw("login rejected", "consultant_id", c.ID(), "ip", cmd.IPAddress, "reason", err)
		return nil, common.TranslateError(err)
	}

	if err := uc.consultantRepo.Update(ctx, c); err != nil {
		uc.logger.Warnw("failed to record login time", "error", err, "consultant_id", c.ID())
	}

	token, err := uc.tokens.Generate(c.ID(), c.ParlourID(), c.Role())
	if err != nil {
		uc.logger.Errorw("failed to generate token", "error", err, "consultant_id", c.ID())
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	uc.logger.Infow("consultant logged in", "consultant_id", c.ID(), "parlour_id", c.ParlourID(), "ip", cmd.IPAddress)

	return &dto.LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   token.ExpiresIn,
		Consultant:  dto.ToConsultantDTO(c),
	}, nil
}
