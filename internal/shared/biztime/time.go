// Package biztime provides utilities for business timezone calculations.
// Storage uses UTC. The business timezone only decides calendar boundaries:
// which day a member was born on, which month a payment belongs to.
package biztime

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "Africa/Johannesburg"

	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the business timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize business timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone, initializing the default if needed.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// DateOf returns midnight of t's calendar day in the business timezone.
func DateOf(t time.Time) time.Time {
	b := t.In(Location())
	return time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, Location())
}

// Today returns midnight of the current business day.
func Today() time.Time {
	return DateOf(time.Now())
}

// StartOfMonth returns the first day of t's month in the business timezone.
func StartOfMonth(t time.Time) time.Time {
	b := t.In(Location())
	return time.Date(b.Year(), b.Month(), 1, 0, 0, 0, 0, Location())
}

// ParseDate parses a YYYY-MM-DD string as a business calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", s, err)
	}
	return t, nil
}

// FormatDate formats t as a business calendar date.
func FormatDate(t time.Time) string {
	return t.In(Location()).Format(DateLayout)
}

// FormatDatePtr formats an optional date, returning "" for nil.
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(*t)
}
