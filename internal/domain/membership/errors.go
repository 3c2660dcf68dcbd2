package membership

import (
	"errors"
	"fmt"
)

var (
	ErrApplicantNotFound      = errors.New("applicant not found")
	ErrMainMemberNotFound     = errors.New("main member not found")
	ErrExtendedMemberNotFound = errors.New("extended member not found")
	ErrApplicantNotActive     = errors.New("applicant is not active")
	ErrMemberNotActive        = errors.New("member is not active")
	ErrInvalidStateTransition = errors.New("invalid state transition")

	ErrMainMemberExists    = errors.New("applicant already has an active main member")
	ErrNoMainMember        = errors.New("applicant has no active main member")
	ErrMultipleMainMembers = errors.New("applicant has more than one active main member")

	ErrMissingName        = errors.New("first and last name are required")
	ErrMissingBirthSource = errors.New("id number or date of birth is required")
	ErrInvalidIDNumber    = errors.New("invalid id number")
	ErrInvalidMemberType  = errors.New("invalid member type")
	ErrInvalidRelation    = errors.New("invalid relation to main member")
	ErrDuplicateIDNumber  = errors.New("id number already registered in this parlour")
	ErrFutureBirthDate    = errors.New("date of birth is in the future")

	ErrMemberTypeNotSupported = errors.New("plan does not support this member type")
	ErrQuotaReached           = errors.New("member type limit reached")
	ErrAgeLimitExceeded       = errors.New("member age is outside the plan limits")
)

func ErrInvalidTransition(from, to string) error {
	return fmt.Errorf("%w: from %s to %s", ErrInvalidStateTransition, from, to)
}
