package plan

import (
	"errors"
	"fmt"
)

var (
	ErrPlanNotFound    = errors.New("plan not found")
	ErrPlanNameExists  = errors.New("plan name already exists")
	ErrPlanNotActive   = errors.New("plan is not active")
	ErrInvalidBounds   = errors.New("invalid plan bounds")
	ErrInvalidPremium  = errors.New("invalid premium")
	ErrInvalidWaiting  = errors.New("invalid waiting period")
	ErrInvalidPlanName = errors.New("invalid plan name")
)

func errBounds(memberType string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidBounds, memberType, reason)
}
