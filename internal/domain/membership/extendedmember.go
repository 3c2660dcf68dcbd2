package membership

import (
	"fmt"
	"time"

	vo "github.com/parlourcover/parlour/internal/domain/membership/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/shared/lifecycle"
)

// ExtendedMember is a spouse, dependant or extended relative insured under
// an applicant. The waiting period counts down in days until claims are allowed.
type ExtendedMember struct {
	id                   uint
	applicantID          uint
	parlourID            uint
	identity             Identity
	memberType           vo.MemberType
	relation             vo.Relation
	dateJoined           time.Time
	ageLimitExceeded     bool
	ageLimitException    bool
	waitingPeriod        int
	isMainMemberDeceased bool
	state                lifecycle.State
	version              int
	createdAt            time.Time
	updatedAt            time.Time
}

// ExtendedMemberParams holds the fields accepted when adding a member.
type ExtendedMemberParams struct {
	ApplicantID   uint
	ParlourID     uint
	Identity      Identity
	Type          vo.MemberType
	Relation      vo.Relation
	DateJoined    time.Time
	WaitingPeriod int
}

// NewExtendedMember validates fields and creates an active member.
func NewExtendedMember(p ExtendedMemberParams) (*ExtendedMember, error) {
	if p.ApplicantID == 0 {
		return nil, fmt.Errorf("applicant ID is required")
	}
	if !p.Type.IsExtendedKind() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMemberType, p.Type)
	}
	if !vo.ValidRelations[p.Relation] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRelation, p.Relation)
	}
	identity, err := p.Identity.Normalize()
	if err != nil {
		return nil, err
	}
	if p.WaitingPeriod < 0 {
		p.WaitingPeriod = 0
	}

	now := time.Now().UTC()
	return &ExtendedMember{
		applicantID:   p.ApplicantID,
		parlourID:     p.ParlourID,
		identity:      identity,
		memberType:    p.Type,
		relation:      p.Relation,
		dateJoined:    p.DateJoined,
		waitingPeriod: p.WaitingPeriod,
		state:         lifecycle.StateActive,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ExtendedMemberReconstructParams carries persisted extended member fields.
type ExtendedMemberReconstructParams struct {
	ID                   uint
	ApplicantID          uint
	ParlourID            uint
	Identity             Identity
	Type                 vo.MemberType
	Relation             vo.Relation
	DateJoined           time.Time
	AgeLimitExceeded     bool
	AgeLimitException    bool
	WaitingPeriod        int
	IsMainMemberDeceased bool
	State                lifecycle.State
	Version              int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func ReconstructExtendedMember(p ExtendedMemberReconstructParams) (*ExtendedMember, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("extended member ID cannot be zero")
	}
	if !vo.ValidMemberTypes[p.Type] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMemberType, p.Type)
	}
	if !lifecycle.ValidStates[p.State] {
		return nil, fmt.Errorf("invalid extended member state: %s", p.State)
	}
	return &ExtendedMember{
		id:                   p.ID,
		applicantID:          p.ApplicantID,
		parlourID:            p.ParlourID,
		identity:             p.Identity,
		memberType:           p.Type,
		relation:             p.Relation,
		dateJoined:           p.DateJoined,
		ageLimitExceeded:     p.AgeLimitExceeded,
		ageLimitException:    p.AgeLimitException,
		waitingPeriod:        p.WaitingPeriod,
		isMainMemberDeceased: p.IsMainMemberDeceased,
		state:                p.State,
		version:              p.Version,
		createdAt:            p.CreatedAt,
		updatedAt:            p.UpdatedAt,
	}, nil
}

// ID returns the member ID
func (m *ExtendedMember) ID() uint {
	return m.id
}

func (m *ExtendedMember) ApplicantID() uint {
	return m.applicantID
}

func (m *ExtendedMember) ParlourID() uint {
	return m.parlourID
}

func (m *ExtendedMember) Identity() Identity {
	return m.identity
}

func (m *ExtendedMember) Type() vo.MemberType {
	return m.memberType
}

func (m *ExtendedMember) Relation() vo.Relation {
	return m.relation
}

func (m *ExtendedMember) DateJoined() time.Time {
	return m.dateJoined
}

func (m *ExtendedMember) AgeLimitExceeded() bool {
	return m.ageLimitExceeded
}

func (m *ExtendedMember) AgeLimitException() bool {
	return m.ageLimitException
}

// WaitingPeriod returns the days left before the member is covered
func (m *ExtendedMember) WaitingPeriod() int {
	return m.waitingPeriod
}

func (m *ExtendedMember) IsMainMemberDeceased() bool {
	return m.isMainMemberDeceased
}

func (m *ExtendedMember) State() lifecycle.State {
	return m.state
}

func (m *ExtendedMember) Version() int {
	return m.version
}

func (m *ExtendedMember) CreatedAt() time.Time {
	return m.createdAt
}

func (m *ExtendedMember) UpdatedAt() time.Time {
	return m.updatedAt
}

func (m *ExtendedMember) IsActive() bool {
	return m.state.IsActive()
}

// SetID sets the member ID after persistence
func (m *ExtendedMember) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("extended member ID already set")
	}
	if id == 0 {
		return fmt.Errorf("extended member ID cannot be zero")
	}
	m.id = id
	return nil
}

// ExtendedMemberUpdate holds the editable fields of an extended member.
type ExtendedMemberUpdate struct {
	Identity   Identity
	Type       vo.MemberType
	Relation   vo.Relation
	DateJoined time.Time
}

// Update replaces editable fields. It reports whether the type or birth
// source changed, in which case the age-limit flag must be recomputed.
func (m *ExtendedMember) Update(u ExtendedMemberUpdate) (bool, error) {
	if !m.state.IsActive() {
		return false, ErrMemberNotActive
	}
	if !u.Type.IsExtendedKind() {
		return false, fmt.Errorf("%w: %s", ErrInvalidMemberType, u.Type)
	}
	if !vo.ValidRelations[u.Relation] {
		return false, fmt.Errorf("%w: %s", ErrInvalidRelation, u.Relation)
	}
	identity, err := u.Identity.Normalize()
	if err != nil {
		return false, err
	}

	recompute := m.memberType != u.Type || !m.identity.birthSourceEqual(identity)
	m.identity = identity
	m.memberType = u.Type
	m.relation = u.Relation
	if !u.DateJoined.IsZero() {
		m.dateJoined = u.DateJoined
	}
	m.touch()
	return recompute, nil
}

// SetAgeLimitExceeded stores the computed flag and reports whether it changed.
func (m *ExtendedMember) SetAgeLimitExceeded(exceeded bool) bool {
	if m.ageLimitExceeded == exceeded {
		return false
	}
	m.ageLimitExceeded = exceeded
	m.touch()
	return true
}

// SetAgeLimitException toggles the manual override.
func (m *ExtendedMember) SetAgeLimitException(exception bool) error {
	if !m.state.IsActive() {
		return ErrMemberNotActive
	}
	m.ageLimitException = exception
	m.touch()
	return nil
}

// DecrementWaitingPeriod counts one day off the waiting period and reports
// whether anything changed. It never goes below zero.
func (m *ExtendedMember) DecrementWaitingPeriod() bool {
	if m.waitingPeriod <= 0 || !m.state.IsActive() {
		return false
	}
	m.waitingPeriod--
	m.touch()
	return true
}

// MarkMainMemberDeceased flags that the main member of this policy died.
func (m *ExtendedMember) MarkMainMemberDeceased() {
	m.isMainMemberDeceased = true
	m.touch()
}

// Delete soft-deletes the member.
func (m *ExtendedMember) Delete() error {
	if !m.state.CanTransitionTo(lifecycle.StateDeleted) {
		return ErrInvalidTransition(m.state.String(), lifecycle.StateDeleted.String())
	}
	m.state = lifecycle.StateDeleted
	m.touch()
	return nil
}

// reparent moves the member to a successor applicant.
func (m *ExtendedMember) reparent(applicantID uint) {
	m.applicantID = applicantID
	m.isMainMemberDeceased = false
	m.touch()
}

func (m *ExtendedMember) touch() {
	m.updatedAt = time.Now().UTC()
	m.version++
}
