package plan

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/parlourcover/parlour/internal/domain/membership/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/shared/lifecycle"
)

// Plan is a parlour's premium plan: a monthly premium, a waiting period and
// the age bounds and quotas per member type.
type Plan struct {
	id                uint
	parlourID         uint
	name              string
	premium           decimal.Decimal
	waitingPeriodDays int
	benefits          []string
	bounds            map[vo.MemberType]Bounds
	state             lifecycle.State
	version           int
	createdAt         time.Time
	updatedAt         time.Time
}

// NewPlan creates an active plan.
func NewPlan(parlourID uint, name string, premium decimal.Decimal, waitingPeriodDays int, benefits []string, bounds map[vo.MemberType]Bounds) (*Plan, error) {
	if parlourID == 0 {
		return nil, fmt.Errorf("parlour ID is required")
	}

	now := time.Now().UTC()
	p := &Plan{
		parlourID: parlourID,
		bounds:    make(map[vo.MemberType]Bounds),
		state:     lifecycle.StateActive,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}
	if err := p.setDetails(name, premium, waitingPeriodDays, benefits); err != nil {
		return nil, err
	}
	if _, err := p.SetBounds(bounds); err != nil {
		return nil, err
	}
	return p, nil
}

// ReconstructParams carries persisted plan fields.
type ReconstructParams struct {
	ID                uint
	ParlourID         uint
	Name              string
	Premium           decimal.Decimal
	WaitingPeriodDays int
	Benefits          []string
	Bounds            map[vo.MemberType]Bounds
	State             lifecycle.State
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ReconstructPlan rebuilds a plan from persistence
func ReconstructPlan(p ReconstructParams) (*Plan, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if !lifecycle.ValidStates[p.State] {
		return nil, fmt.Errorf("invalid plan state: %s", p.State)
	}
	bounds := p.Bounds
	if bounds == nil {
		bounds = make(map[vo.MemberType]Bounds)
	}
	return &Plan{
		id:                p.ID,
		parlourID:         p.ParlourID,
		name:              p.Name,
		premium:           p.Premium,
		waitingPeriodDays: p.WaitingPeriodDays,
		benefits:          p.Benefits,
		bounds:            bounds,
		state:             p.State,
		version:           p.Version,
		createdAt:         p.CreatedAt,
		updatedAt:         p.UpdatedAt,
	}, nil
}

func (p *Plan) ID() uint                 { return p.id }
func (p *Plan) ParlourID() uint          { return p.parlourID }
func (p *Plan) Name() string             { return p.name }
func (p *Plan) Premium() decimal.Decimal { return p.premium }
func (p *Plan) WaitingPeriodDays() int   { return p.waitingPeriodDays }
func (p *Plan) State() lifecycle.State   { return p.state }
func (p *Plan) Version() int             { return p.version }
func (p *Plan) CreatedAt() time.Time     { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time     { return p.updatedAt }

// Benefits returns a copy of the benefit lines printed on certificates.
func (p *Plan) Benefits() []string {
	out := make([]string, len(p.benefits))
	copy(out, p.benefits)
	return out
}

// BoundsFor returns the bounds configured for t. Unknown types have no
// age limit and no quota.
func (p *Plan) BoundsFor(t vo.MemberType) Bounds {
	return p.bounds[t]
}

// AllBounds returns a copy of the per-type bounds.
func (p *Plan) AllBounds() map[vo.MemberType]Bounds {
	out := make(map[vo.MemberType]Bounds, len(p.bounds))
	for k, v := range p.bounds {
		out[k] = v
	}
	return out
}

// SetID sets the plan ID after persistence
func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}

// Update changes the descriptive fields of the plan.
func (p *Plan) Update(name string, premium decimal.Decimal, waitingPeriodDays int, benefits []string) error {
	if err := p.setDetails(name, premium, waitingPeriodDays, benefits); err != nil {
		return err
	}
	p.touch()
	return nil
}

// SetBounds replaces the per-type bounds. The returned flag is true when any
// age bound changed, which means member age-limit flags must be recomputed.
func (p *Plan) SetBounds(bounds map[vo.MemberType]Bounds) (bool, error) {
	next := make(map[vo.MemberType]Bounds, len(bounds))
	for t, b := range bounds {
		if !vo.ValidMemberTypes[t] {
			return false, fmt.Errorf("%w: unknown member type %s", ErrInvalidBounds, t)
		}
		if err := b.validate(t); err != nil {
			return false, err
		}
		if t == vo.MemberTypeMain {
			b.Quota = 0
		}
		next[t] = b
	}

	changed := len(next) != len(p.bounds)
	if !changed {
		for t, b := range next {
			if old, ok := p.bounds[t]; !ok || !old.equal(b) {
				changed = true
				break
			}
		}
	}

	p.bounds = next
	if changed {
		p.touch()
	}
	return changed, nil
}

// Archive hides the plan from new applicants. Existing applicants keep it.
func (p *Plan) Archive() error {
	if !p.state.CanTransitionTo(lifecycle.StateArchived) {
		return fmt.Errorf("cannot archive plan in state %s", p.state)
	}
	p.state = lifecycle.StateArchived
	p.touch()
	return nil
}

func (p *Plan) IsActive() bool {
	return p.state.IsActive()
}

func (p *Plan) setDetails(name string, premium decimal.Decimal, waitingPeriodDays int, benefits []string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPlanName)
	}
	if premium.IsNegative() {
		return fmt.Errorf("%w: %s", ErrInvalidPremium, premium.String())
	}
	if waitingPeriodDays < 0 {
		return fmt.Errorf("%w: %d days", ErrInvalidWaiting, waitingPeriodDays)
	}

	cleaned := make([]string, 0, len(benefits))
	for _, b := range benefits {
		if b = strings.TrimSpace(b); b != "" {
			cleaned = append(cleaned, b)
		}
	}

	p.name = name
	p.premium = premium
	p.waitingPeriodDays = waitingPeriodDays
	p.benefits = cleaned
	return nil
}

func (p *Plan) touch() {
	p.updatedAt = time.Now().UTC()
	p.version++
}
