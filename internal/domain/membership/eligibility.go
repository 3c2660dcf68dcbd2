package membership

import (
	"time"

	vo "github.com/parlourcover/parlour/internal/domain/membership/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/plan"
)

// AgeOn returns the whole years between birth and on, counting a year only
// once the birthday has been reached.
func AgeOn(birth, on time.Time) int {
	years := on.Year() - birth.Year()
	if on.Month() < birth.Month() || (on.Month() == birth.Month() && on.Day() < birth.Day()) {
		years--
	}
	return years
}

// ResolveBirthDate picks the birth date of an identity. An explicit date of
// birth wins over the date encoded in the ID number.
func ResolveBirthDate(identity Identity, now time.Time, loc *time.Location) (time.Time, error) {
	if identity.DateOfBirth != nil {
		d := identity.DateOfBirth
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc), nil
	}
	if identity.IDNumber == "" {
		return time.Time{}, ErrMissingBirthSource
	}
	birth, err := vo.BirthDateFromIDNumber(identity.IDNumber, now, loc)
	if err != nil {
		return time.Time{}, ErrInvalidIDNumber
	}
	return birth, nil
}

// AgeOutsideBounds reports whether age violates the configured bounds.
// Unset bounds never fail.
func AgeOutsideBounds(age int, b plan.Bounds) bool {
	if b.MaxAge != nil && age > *b.MaxAge {
		return true
	}
	if b.MinAge != nil && age < *b.MinAge {
		return true
	}
	return false
}

// AgeLimitExceeded computes the age_limit_exceeded flag of a member of type t
// under plan p, evaluated at now in the business location loc.
func AgeLimitExceeded(identity Identity, t vo.MemberType, p *plan.Plan, now time.Time, loc *time.Location) (bool, error) {
	bounds := p.BoundsFor(t)
	if !bounds.HasAgeLimit() {
		return false, nil
	}
	birth, err := ResolveBirthDate(identity, now, loc)
	if err != nil {
		return false, err
	}
	return AgeOutsideBounds(AgeOn(birth, now.In(loc)), bounds), nil
}

// EvaluateMainMember recomputes and stores the flag of a main member. It
// reports whether the stored flag changed.
func EvaluateMainMember(m *MainMember, p *plan.Plan, now time.Time, loc *time.Location) (bool, error) {
	exceeded, err := AgeLimitExceeded(m.identity, vo.MemberTypeMain, p, now, loc)
	if err != nil {
		return false, err
	}
	return m.SetAgeLimitExceeded(exceeded), nil
}

// EvaluateExtendedMember recomputes and stores the flag of an extended member.
func EvaluateExtendedMember(m *ExtendedMember, p *plan.Plan, now time.Time, loc *time.Location) (bool, error) {
	exceeded, err := AgeLimitExceeded(m.identity, m.memberType, p, now, loc)
	if err != nil {
		return false, err
	}
	return m.SetAgeLimitExceeded(exceeded), nil
}
