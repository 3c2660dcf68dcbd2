package membership

import (
	"time"

	vo "github.com/parlourcover/parlour/internal/domain/membership/valueobjects"
)

const (
	lapsedAfterMonths        = 4
	skippedAfterMonths       = 2
	unpaidAfterMonths        = 1
	unpaidSkippedAfterMonths = 1
)

// MonthsBetween returns the calendar-month difference from the month of from
// to the month of to, both read in loc. Days are ignored.
func MonthsBetween(from, to time.Time, loc *time.Location) int {
	f := from.In(loc)
	t := to.In(loc)
	return (t.Year()-f.Year())*12 + int(t.Month()) - int(f.Month())
}

// DeriveStatus computes the payment status of a policy from its last payment.
//
// Without a payment the age of the policy decides: lapsed from 4 months,
// skipped from 1, unpaid before that. With a payment: lapsed from 4 months,
// skipped from 2, unpaid at 1, paid in the same month or when future-dated.
func DeriveStatus(lastPayment *time.Time, createdAt, now time.Time, loc *time.Location) vo.ApplicantStatus {
	if lastPayment == nil {
		months := MonthsBetween(createdAt, now, loc)
		switch {
		case months >= lapsedAfterMonths:
			return vo.StatusLapsed
		case months >= unpaidSkippedAfterMonths:
			return vo.StatusSkipped
		default:
			return vo.StatusUnpaid
		}
	}

	months := MonthsBetween(*lastPayment, now, loc)
	switch {
	case months >= lapsedAfterMonths:
		return vo.StatusLapsed
	case months >= skippedAfterMonths:
		return vo.StatusSkipped
	case months >= unpaidAfterMonths:
		return vo.StatusUnpaid
	default:
		return vo.StatusPaid
	}
}

// ApplyDerivedStatus stores the derived status on a. When the policy moves
// into lapsed the returned effects carry the lapse event.
func ApplyDerivedStatus(a *Applicant, lastPayment *time.Time, now time.Time, loc *time.Location) (bool, []Effect, error) {
	previous := a.status
	changed, err := a.SetStatus(DeriveStatus(lastPayment, a.createdAt, now, loc))
	if err != nil || !changed {
		return changed, nil, err
	}
	if a.status == vo.StatusLapsed {
		return true, []Effect{PublishEvent{Event: NewApplicantLapsedEvent(a, previous.String(), now)}}, nil
	}
	return true, nil, nil
}
