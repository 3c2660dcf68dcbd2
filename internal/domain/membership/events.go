package membership

import (
	"time"

	"github.com/parlourcover/parlour/internal/domain/shared/events"
)

const (
	EventApplicantLapsed   = "membership.applicant_lapsed"
	EventMemberPromoted    = "membership.member_promoted"
	EventCertificateIssued = "membership.certificate_issued"
)

// ApplicantLapsedEvent is raised when the status batch moves a policy to lapsed.
type ApplicantLapsedEvent struct {
	events.BaseEvent
	ApplicantID    uint
	ParlourID      uint
	PolicyNum      string
	PreviousStatus string
}

func NewApplicantLapsedEvent(a *Applicant, previous string, at time.Time) *ApplicantLapsedEvent {
	return &ApplicantLapsedEvent{
		BaseEvent:      events.NewBaseEvent(EventApplicantLapsed, a.uuid, at),
		ApplicantID:    a.id,
		ParlourID:      a.parlourID,
		PolicyNum:      a.policyNum,
		PreviousStatus: previous,
	}
}

// MemberPromotedEvent is raised once a promotion has been committed.
type MemberPromotedEvent struct {
	events.BaseEvent
	OriginalApplicantID  uint
	SuccessorApplicantID uint
	ParlourID            uint
	PolicyNum            string
	NewMainMemberName    string
}

// CertificateIssuedEvent is raised after a membership certificate is written.
type CertificateIssuedEvent struct {
	events.BaseEvent
	ApplicantID uint
	ParlourID   uint
	PolicyNum   string
	Path        string
}

func NewCertificateIssuedEvent(a *Applicant, at time.Time) *CertificateIssuedEvent {
	return &CertificateIssuedEvent{
		BaseEvent:   events.NewBaseEvent(EventCertificateIssued, a.uuid, at),
		ApplicantID: a.id,
		ParlourID:   a.parlourID,
		PolicyNum:   a.policyNum,
		Path:        a.certificatePath,
	}
}

// Effect is a side effect requested by a domain operation. The application
// layer runs effects after the owning transaction commits.
type Effect interface {
	effect()
}

// RegenerateCertificate asks for the applicant's certificate to be re-rendered.
type RegenerateCertificate struct {
	Applicant *Applicant
}

// PublishEvent asks for an event to be dispatched.
type PublishEvent struct {
	Event events.DomainEvent
}

func (RegenerateCertificate) effect() {}
func (PublishEvent) effect()          {}
