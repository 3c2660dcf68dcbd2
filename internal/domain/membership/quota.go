package membership

import (
	"fmt"

	vo "github.com/parlourcover/parlour/internal/domain/membership/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/plan"
)

// CheckQuota decides whether one more member of type t may join an applicant
// that already has activeCount active members of that type. Main members are
// not quota-limited.
func CheckQuota(t vo.MemberType, bounds plan.Bounds, activeCount int) error {
	if t == vo.MemberTypeMain {
		return nil
	}
	if bounds.Quota <= 0 {
		return fmt.Errorf("%w: %s", ErrMemberTypeNotSupported, t)
	}
	if activeCount >= bounds.Quota {
		return fmt.Errorf("%w: %s allows %d, applicant has %d", ErrQuotaReached, t, bounds.Quota, activeCount)
	}
	return nil
}

// QuotaCounter tracks active members per type while a batch of additions is
// validated, so rows accepted earlier count against later ones.
type QuotaCounter struct {
	plan   *plan.Plan
	counts map[vo.MemberType]int
}

func NewQuotaCounter(p *plan.Plan, members []*ExtendedMember) *QuotaCounter {
	counts := make(map[vo.MemberType]int)
	for _, m := range members {
		if m.IsActive() {
			counts[m.memberType]++
		}
	}
	return &QuotaCounter{plan: p, counts: counts}
}

// Check tests a candidate of type t without reserving a slot.
func (c *QuotaCounter) Check(t vo.MemberType) error {
	return CheckQuota(t, c.plan.BoundsFor(t), c.counts[t])
}

// Reserve checks and then takes a slot of type t.
func (c *QuotaCounter) Reserve(t vo.MemberType) error {
	if err := c.Check(t); err != nil {
		return err
	}
	c.counts[t]++
	return nil
}

// Count returns the active members of type t seen so far.
func (c *QuotaCounter) Count(t vo.MemberType) int {
	return c.counts[t]
}
