package valueobjects

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const idNumberLength = 13

var (
	ErrIDNumberLength   = errors.New("id number must be exactly 13 digits")
	ErrIDNumberDigits   = errors.New("id number must contain digits only")
	ErrIDNumberDate     = errors.New("id number does not encode a valid date of birth")
	ErrIDNumberChecksum = errors.New("id number checksum is invalid")
)

// IDNumber is a validated 13-digit South African identity number
// (YYMMDD SSSS C A Z, Z being a Luhn check digit).
type IDNumber struct {
	value string
}

// ParseIDNumber validates length, digits, the embedded date and the Luhn
// check digit. Surrounding and inner whitespace is ignored.
func ParseIDNumber(s string) (IDNumber, error) {
	v := strings.Join(strings.Fields(s), "")
	if len(v) != idNumberLength {
		return IDNumber{}, ErrIDNumberLength
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return IDNumber{}, ErrIDNumberDigits
		}
	}
	if _, err := BirthDateFromIDNumber(v, time.Now(), time.UTC); err != nil {
		return IDNumber{}, ErrIDNumberDate
	}
	if !luhnValid(v) {
		return IDNumber{}, ErrIDNumberChecksum
	}
	return IDNumber{value: v}, nil
}

func (n IDNumber) String() string {
	return n.value
}

func (n IDNumber) IsZero() bool {
	return n.value == ""
}

// BirthDate decodes YYMMDD. The century is the 2000s when YY is not after
// the current two-digit year, the 1900s otherwise.
func (n IDNumber) BirthDate(now time.Time, loc *time.Location) time.Time {
	t, _ := BirthDateFromIDNumber(n.value, now, loc)
	return t
}

// BirthDateFromIDNumber decodes the date of birth from the first six digits
// without checking the checksum.
func BirthDateFromIDNumber(id string, now time.Time, loc *time.Location) (time.Time, error) {
	if len(id) < 6 {
		return time.Time{}, ErrIDNumberLength
	}
	yy, mm, dd, ok := splitYYMMDD(id[:6])
	if !ok {
		return time.Time{}, ErrIDNumberDigits
	}

	year := InferCentury(yy, now)
	t := time.Date(year, time.Month(mm), dd, 0, 0, 0, 0, loc)
	if mm < 1 || mm > 12 || t.Month() != time.Month(mm) || t.Day() != dd {
		return time.Time{}, fmt.Errorf("%w: %s", ErrIDNumberDate, id[:6])
	}
	return t, nil
}

// InferCentury expands a two-digit year relative to now.
func InferCentury(yy int, now time.Time) int {
	currentYY := now.Year() % 100
	century := now.Year() - currentYY
	if yy <= currentYY {
		return century + yy
	}
	return century - 100 + yy
}

func splitYYMMDD(s string) (yy, mm, dd int, ok bool) {
	var digits [6]int
	for i := 0; i < 6; i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, 0, 0, false
		}
		digits[i] = int(s[i] - '0')
	}
	return digits[0]*10 + digits[1], digits[2]*10 + digits[3], digits[4]*10 + digits[5], true
}

func luhnValid(s string) bool {
	sum := 0
	double := false
	for i := len(s) - 1; i >= 0; i-- {
		d := int(s[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
