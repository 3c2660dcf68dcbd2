package usecases

import (
	"context"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/domain/membership"
	apperrors "github.com/parlourcover/parlour/internal/shared/errors"
)

func loadApplicant(ctx context.Context, repo membership.ApplicantRepository, actor common.Actor, applicantID uint) (*membership.Applicant, error) {
	a, err := repo.GetByID(ctx, applicantID)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	if !actor.CanAccessParlour(a.ParlourID()) {
		return nil, apperrors.NewNotFoundError(membership.ErrApplicantNotFound.Error())
	}
	return a, nil
}
