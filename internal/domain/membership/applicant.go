package membership

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	vo "github.com/parlourcover/parlour/internal/domain/membership/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/shared/lifecycle"
)

// Applicant is a policy: the aggregate that owns a main member and the
// extended members insured under it.
type Applicant struct {
	id              uint
	uuid            string
	parlourID       uint
	planID          uint
	consultantID    uint
	policyNum       string
	status          vo.ApplicantStatus
	state           lifecycle.State
	certificatePath string
	version         int
	createdAt       time.Time
	updatedAt       time.Time
}

// NewApplicant opens a new unpaid policy.
func NewApplicant(parlourID, planID, consultantID uint, policyNum string) (*Applicant, error) {
	if parlourID == 0 {
		return nil, fmt.Errorf("parlour ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	policyNum = strings.TrimSpace(policyNum)
	if policyNum == "" {
		return nil, fmt.Errorf("policy number is required")
	}

	now := time.Now().UTC()
	return &Applicant{
		uuid:         uuid.NewString(),
		parlourID:    parlourID,
		planID:       planID,
		consultantID: consultantID,
		policyNum:    policyNum,
		status:       vo.StatusUnpaid,
		state:        lifecycle.StateActive,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ApplicantReconstructParams carries persisted applicant fields.
type ApplicantReconstructParams struct {
	ID              uint
	UUID            string
	ParlourID       uint
	PlanID          uint
	ConsultantID    uint
	PolicyNum       string
	Status          vo.ApplicantStatus
	State           lifecycle.State
	CertificatePath string
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ReconstructApplicant rebuilds an applicant from persistence
func ReconstructApplicant(p ApplicantReconstructParams) (*Applicant, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("applicant ID cannot be zero")
	}
	if !vo.ValidStatuses[p.Status] {
		return nil, fmt.Errorf("invalid applicant status: %s", p.Status)
	}
	if !lifecycle.ValidStates[p.State] {
		return nil, fmt.Errorf("invalid applicant state: %s", p.State)
	}

	return &Applicant{
		id:              p.ID,
		uuid:            p.UUID,
		parlourID:       p.ParlourID,
		planID:          p.PlanID,
		consultantID:    p.ConsultantID,
		policyNum:       p.PolicyNum,
		status:          p.Status,
		state:           p.State,
		certificatePath: p.CertificatePath,
		version:         p.Version,
		createdAt:       p.CreatedAt,
		updatedAt:       p.UpdatedAt,
	}, nil
}

// ID returns the applicant ID
func (a *Applicant) ID() uint {
	return a.id
}

// UUID returns the public identifier printed on documents
func (a *Applicant) UUID() string {
	return a.uuid
}

func (a *Applicant) ParlourID() uint {
	return a.parlourID
}

func (a *Applicant) PlanID() uint {
	return a.planID
}

func (a *Applicant) ConsultantID() uint {
	return a.consultantID
}

func (a *Applicant) PolicyNum() string {
	return a.policyNum
}

func (a *Applicant) Status() vo.ApplicantStatus {
	return a.status
}

func (a *Applicant) State() lifecycle.State {
	return a.state
}

func (a *Applicant) CertificatePath() string {
	return a.certificatePath
}

func (a *Applicant) Version() int {
	return a.version
}

func (a *Applicant) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Applicant) UpdatedAt() time.Time {
	return a.updatedAt
}

func (a *Applicant) IsActive() bool {
	return a.state.IsActive()
}

// SetID sets the applicant ID after persistence
func (a *Applicant) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("applicant ID already set")
	}
	if id == 0 {
		return fmt.Errorf("applicant ID cannot be zero")
	}
	a.id = id
	return nil
}

// SetStatus records a derived payment status. It reports whether the status changed.
func (a *Applicant) SetStatus(status vo.ApplicantStatus) (bool, error) {
	if !vo.ValidStatuses[status] {
		return false, fmt.Errorf("invalid applicant status: %s", status)
	}
	if a.status == status {
		return false, nil
	}
	a.status = status
	a.touch()
	return true, nil
}

// ChangePlan moves the policy to another plan. Callers must recompute member
// age-limit flags afterwards.
func (a *Applicant) ChangePlan(planID uint) (bool, error) {
	if err := a.ensureActive(); err != nil {
		return false, err
	}
	if planID == 0 {
		return false, fmt.Errorf("plan ID is required")
	}
	if a.planID == planID {
		return false, nil
	}
	a.planID = planID
	a.touch()
	return true, nil
}

// Reassign changes the policy number and consultant.
func (a *Applicant) Reassign(policyNum string, consultantID uint) error {
	if err := a.ensureActive(); err != nil {
		return err
	}
	policyNum = strings.TrimSpace(policyNum)
	if policyNum == "" {
		return fmt.Errorf("policy number is required")
	}
	a.policyNum = policyNum
	a.consultantID = consultantID
	a.touch()
	return nil
}

func (a *Applicant) SetCertificatePath(path string) {
	a.certificatePath = path
	a.touch()
}

// Archive closes the policy while keeping it readable.
func (a *Applicant) Archive() error {
	return a.transition(lifecycle.StateArchived)
}

// Delete soft-deletes the policy.
func (a *Applicant) Delete() error {
	return a.transition(lifecycle.StateDeleted)
}

func (a *Applicant) transition(target lifecycle.State) error {
	if !a.state.CanTransitionTo(target) {
		return ErrInvalidTransition(a.state.String(), target.String())
	}
	a.state = target
	a.touch()
	return nil
}

func (a *Applicant) ensureActive() error {
	if !a.state.IsActive() {
		return fmt.Errorf("%w: applicant %d is %s", ErrApplicantNotActive, a.id, a.state)
	}
	return nil
}

// successor opens the policy that takes over after promotion: same policy
// number, plan, consultant and parlour, status reset to unpaid.
func (a *Applicant) successor() *Applicant {
	now := time.Now().UTC()
	return &Applicant{
		uuid:         uuid.NewString(),
		parlourID:    a.parlourID,
		planID:       a.planID,
		consultantID: a.consultantID,
		policyNum:    a.policyNum,
		status:       vo.StatusUnpaid,
		state:        lifecycle.StateActive,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}
}

func (a *Applicant) touch() {
	a.updatedAt = time.Now().UTC()
	a.version++
}
