package membership

import (
	"fmt"
	"time"

	"github.com/parlourcover/parlour/internal/domain/shared/lifecycle"
)

// MainMember is the primary insured person of an applicant.
type MainMember struct {
	id                uint
	applicantID       uint
	parlourID         uint
	identity          Identity
	dateJoined        time.Time
	ageLimitExceeded  bool
	ageLimitException bool
	isDeceased        bool
	state             lifecycle.State
	version           int
	createdAt         time.Time
	updatedAt         time.Time
}

// NewMainMember validates identity and creates an active main member.
func NewMainMember(applicantID, parlourID uint, identity Identity, dateJoined time.Time) (*MainMember, error) {
	if applicantID == 0 {
		return nil, fmt.Errorf("applicant ID is required")
	}
	identity, err := identity.Normalize()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &MainMember{
		applicantID: applicantID,
		parlourID:   parlourID,
		identity:    identity,
		dateJoined:  dateJoined,
		state:       lifecycle.StateActive,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// MainMemberReconstructParams carries persisted main member fields.
type MainMemberReconstructParams struct {
	ID                uint
	ApplicantID       uint
	ParlourID         uint
	Identity          Identity
	DateJoined        time.Time
	AgeLimitExceeded  bool
	AgeLimitException bool
	IsDeceased        bool
	State             lifecycle.State
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func ReconstructMainMember(p MainMemberReconstructParams) (*MainMember, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("main member ID cannot be zero")
	}
	if !lifecycle.ValidStates[p.State] {
		return nil, fmt.Errorf("invalid main member state: %s", p.State)
	}
	return &MainMember{
		id:                p.ID,
		applicantID:       p.ApplicantID,
		parlourID:         p.ParlourID,
		identity:          p.Identity,
		dateJoined:        p.DateJoined,
		ageLimitExceeded:  p.AgeLimitExceeded,
		ageLimitException: p.AgeLimitException,
		isDeceased:        p.IsDeceased,
		state:             p.State,
		version:           p.Version,
		createdAt:         p.CreatedAt,
		updatedAt:         p.UpdatedAt,
	}, nil
}

func (m *MainMember) ID() uint                { return m.id }
func (m *MainMember) ApplicantID() uint       { return m.applicantID }
func (m *MainMember) ParlourID() uint         { return m.parlourID }
func (m *MainMember) Identity() Identity      { return m.identity }
func (m *MainMember) DateJoined() time.Time   { return m.dateJoined }
func (m *MainMember) AgeLimitExceeded() bool  { return m.ageLimitExceeded }
func (m *MainMember) AgeLimitException() bool { return m.ageLimitException }
func (m *MainMember) IsDeceased() bool        { return m.isDeceased }
func (m *MainMember) State() lifecycle.State  { return m.state }
func (m *MainMember) Version() int            { return m.version }
func (m *MainMember) CreatedAt() time.Time    { return m.createdAt }
func (m *MainMember) UpdatedAt() time.Time    { return m.updatedAt }

func (m *MainMember) IsActive() bool {
	return m.state.IsActive()
}

// SetID sets the member ID after persistence
func (m *MainMember) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("main member ID already set")
	}
	if id == 0 {
		return fmt.Errorf("main member ID cannot be zero")
	}
	m.id = id
	return nil
}

// Update replaces identity fields. It reports whether the birth source
// changed, in which case the age-limit flag must be recomputed.
func (m *MainMember) Update(identity Identity, dateJoined time.Time) (bool, error) {
	if !m.state.IsActive() {
		return false, ErrMemberNotActive
	}
	identity, err := identity.Normalize()
	if err != nil {
		return false, err
	}
	birthChanged := !m.identity.birthSourceEqual(identity)
	m.identity = identity
	if !dateJoined.IsZero() {
		m.dateJoined = dateJoined
	}
	m.touch()
	return birthChanged, nil
}

// SetAgeLimitExceeded stores the computed flag and reports whether it changed.
func (m *MainMember) SetAgeLimitExceeded(exceeded bool) bool {
	if m.ageLimitExceeded == exceeded {
		return false
	}
	m.ageLimitExceeded = exceeded
	m.touch()
	return true
}

// SetAgeLimitException toggles the manual override.
func (m *MainMember) SetAgeLimitException(exception bool) {
	m.ageLimitException = exception
	m.touch()
}

// MarkDeceased records the death of the main member. A deceased member is
// no longer active.
func (m *MainMember) MarkDeceased() error {
	if m.isDeceased {
		return nil
	}
	if !m.state.CanTransitionTo(lifecycle.StateDeleted) {
		return ErrInvalidTransition(m.state.String(), lifecycle.StateDeleted.String())
	}
	m.isDeceased = true
	m.state = lifecycle.StateDeleted
	m.touch()
	return nil
}

// Delete soft-deletes the member.
func (m *MainMember) Delete() error {
	if !m.state.CanTransitionTo(lifecycle.StateDeleted) {
		return ErrInvalidTransition(m.state.String(), lifecycle.StateDeleted.String())
	}
	m.state = lifecycle.StateDeleted
	m.touch()
	return nil
}

func (m *MainMember) touch() {
	m.updatedAt = time.Now().UTC()
	m.version++
}
