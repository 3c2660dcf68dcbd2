package common

import (
	"errors"

	"github.com/parlourcover/parlour/internal/domain/consultant"
	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/domain/parlour"
	"github.com/parlourcover/parlour/internal/domain/payment"
	"github.com/parlourcover/parlour/internal/domain/plan"
	apperrors "github.com/parlourcover/parlour/internal/shared/errors"
)

type errorMapping struct {
	target error
	build  func(message string, details ...string) *apperrors.AppError
	field  string
}

var domainErrors = []errorMapping{
	{membership.ErrApplicantNotFound, apperrors.NewNotFoundError, ""},
	{membership.ErrMainMemberNotFound, apperrors.NewNotFoundError, ""},
	{membership.ErrExtendedMemberNotFound, apperrors.NewNotFoundError, ""},
	{plan.ErrPlanNotFound, apperrors.NewNotFoundError, ""},
	{parlour.ErrParlourNotFound, apperrors.NewNotFoundError, ""},
	{consultant.ErrConsultantNotFound, apperrors.NewNotFoundError, ""},
	{payment.ErrPaymentNotFound, apperrors.NewNotFoundError, ""},

	{membership.ErrNoMainMember, apperrors.NewConflictError, ""},
	{membership.ErrMultipleMainMembers, apperrors.NewConflictError, ""},
	{membership.ErrMainMemberExists, apperrors.NewConflictError, ""},
	{membership.ErrApplicantNotActive, apperrors.NewConflictError, ""},
	{membership.ErrMemberNotActive, apperrors.NewConflictError, ""},
	{membership.ErrInvalidStateTransition, apperrors.NewConflictError, ""},
	{plan.ErrPlanNameExists, apperrors.NewConflictError, "name"},
	{plan.ErrPlanNotActive, apperrors.NewConflictError, "plan_id"},
	{parlour.ErrParlourExists, apperrors.NewConflictError, "name"},
	{parlour.ErrParlourInactive, apperrors.NewConflictError, ""},
	{consultant.ErrEmailExists, apperrors.NewConflictError, "email"},

	{membership.ErrMissingName, apperrors.NewValidationError, "first_name"},
	{membership.ErrMissingBirthSource, apperrors.NewValidationError, "id_number"},
	{membership.ErrInvalidIDNumber, apperrors.NewValidationError, "id_number"},
	{membership.ErrDuplicateIDNumber, apperrors.NewValidationError, "id_number"},
	{membership.ErrFutureBirthDate, apperrors.NewValidationError, "date_of_birth"},
	{membership.ErrInvalidMemberType, apperrors.NewValidationError, "type"},
	{membership.ErrMemberTypeNotSupported, apperrors.NewValidationError, "type"},
	{membership.ErrQuotaReached, apperrors.NewValidationError, "type"},
	{membership.ErrInvalidRelation, apperrors.NewValidationError, "relation_to_main_member"},
	{membership.ErrAgeLimitExceeded, apperrors.NewValidationError, "date_of_birth"},
	{plan.ErrInvalidBounds, apperrors.NewValidationError, "bounds"},
	{plan.ErrInvalidPremium, apperrors.NewValidationError, "premium"},
	{plan.ErrInvalidWaiting, apperrors.NewValidationError, "waiting_period"},
	{plan.ErrInvalidPlanName, apperrors.NewValidationError, "name"},
	{payment.ErrInvalidAmount, apperrors.NewValidationError, "amount"},
	{consultant.ErrInvalidRole, apperrors.NewValidationError, "role"},

	{consultant.ErrInvalidCredentials, apperrors.NewUnauthorizedError, ""},
	{consultant.ErrConsultantInactive, apperrors.NewUnauthorizedError, ""},
}

// TranslateError converts a domain error into an AppError carrying the HTTP
// status and the offending field. AppErrors and unknown errors pass through.
func TranslateError(err error) error {
	if err == nil || apperrors.IsAppError(err) {
		return err
	}
	for _, m := range domainErrors {
		if !errors.Is(err, m.target) {
			continue
		}
		message := err.Error()
		if isNotFound(m.target) {
			message = m.target.Error()
		}
		appErr := m.build(message)
		if m.field != "" {
			appErr = appErr.WithField(m.field)
		}
		return appErr
	}
	return err
}

// IsDomainError reports whether err wraps one of the translated domain errors.
func IsDomainError(err error) bool {
	for _, m := range domainErrors {
		if errors.Is(err, m.target) {
			return true
		}
	}
	return false
}

// FieldOf returns the request field a domain error refers to, or "".
func FieldOf(err error) string {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr.Field
	}
	for _, m := range domainErrors {
		if errors.Is(err, m.target) {
			return m.field
		}
	}
	return ""
}

func isNotFound(target error) bool {
	switch target {
	case membership.ErrApplicantNotFound, membership.ErrMainMemberNotFound,
		membership.ErrExtendedMemberNotFound, plan.ErrPlanNotFound,
		parlour.ErrParlourNotFound, consultant.ErrConsultantNotFound,
		payment.ErrPaymentNotFound:
		return true
	}
	return false
}
