package membership

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/parlourcover/parlour/internal/domain/membership/valueobjects"
)

// Identity holds the personal fields shared by main and extended members.
// Either IDNumber or DateOfBirth must be present.
type Identity struct {
	FirstName   string
	LastName    string
	IDNumber    string
	DateOfBirth *time.Time
	Number      string
}

// Normalize trims fields and validates the ID number when present.
func (i Identity) Normalize() (Identity, error) {
	i.FirstName = strings.TrimSpace(i.FirstName)
	i.LastName = strings.TrimSpace(i.LastName)
	i.Number = strings.TrimSpace(i.Number)

	if i.FirstName == "" || i.LastName == "" {
		return Identity{}, ErrMissingName
	}
	if strings.TrimSpace(i.IDNumber) == "" && i.DateOfBirth == nil {
		return Identity{}, ErrMissingBirthSource
	}

	if strings.TrimSpace(i.IDNumber) != "" {
		id, err := vo.ParseIDNumber(i.IDNumber)
		if err != nil {
			return Identity{}, fmt.Errorf("%w: %w", ErrInvalidIDNumber, err)
		}
		i.IDNumber = id.String()
	} else {
		i.IDNumber = ""
	}

	if i.DateOfBirth != nil && i.DateOfBirth.After(time.Now()) {
		return Identity{}, ErrFutureBirthDate
	}
	return i, nil
}

// FullName returns "First Last".
func (i Identity) FullName() string {
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}

func (i Identity) birthSourceEqual(o Identity) bool {
	if i.IDNumber != o.IDNumber {
		return false
	}
	if i.DateOfBirth == nil || o.DateOfBirth == nil {
		return i.DateOfBirth == nil && o.DateOfBirth == nil
	}
	return i.DateOfBirth.Equal(*o.DateOfBirth)
}
