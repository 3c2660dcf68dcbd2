package plan

import (
	vo "github.com/parlourcover/parlour/internal/domain/membership/valueobjects"
)

// Bounds are the age limits and quota a plan sets for one member type.
// A nil age bound is unset. Quota 0 means the plan does not cover the type.
type Bounds struct {
	MinAge *int
	MaxAge *int
	Quota  int
}

// HasAgeLimit reports whether either age bound is configured.
func (b Bounds) HasAgeLimit() bool {
	return b.MinAge != nil || b.MaxAge != nil
}

func (b Bounds) validate(memberType vo.MemberType) error {
	if b.MinAge != nil && *b.MinAge < 0 {
		return errBounds(memberType.String(), "minimum age is negative")
	}
	if b.MaxAge != nil && *b.MaxAge < 0 {
		return errBounds(memberType.String(), "maximum age is negative")
	}
	if b.MinAge != nil && b.MaxAge != nil && *b.MinAge > *b.MaxAge {
		return errBounds(memberType.String(), "minimum age exceeds maximum age")
	}
	if b.Quota < 0 {
		return errBounds(memberType.String(), "quota is negative")
	}
	return nil
}

func (b Bounds) equal(o Bounds) bool {
	return intPtrEqual(b.MinAge, o.MinAge) && intPtrEqual(b.MaxAge, o.MaxAge) && b.Quota == o.Quota
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Age returns a pointer to v, for building bounds literals.
func Age(v int) *int {
	return &v
}
