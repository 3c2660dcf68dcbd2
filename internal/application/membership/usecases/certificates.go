package usecases

import (
	"context"
	"fmt"

	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/domain/parlour"
	"github.com/parlourcover/parlour/internal/domain/plan"
	"github.com/parlourcover/parlour/internal/domain/shared/events"
	"github.com/parlourcover/parlour/internal/infrastructure/document"
	"github.com/parlourcover/parlour/internal/shared/biztime"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

// CertificateService renders an applicant's membership certificate and
// stores the document path on the applicant.
type CertificateService struct {
	applicantRepo membership.ApplicantRepository
	mainRepo      membership.MainMemberRepository
	extendedRepo  membership.ExtendedMemberRepository
	planRepo      plan.Repository
	parlourRepo   parlour.Repository
	renderer      CertificateRenderer
	logger        logger.Interface
}

func NewCertificateService(
	applicantRepo membership.ApplicantRepository,
	mainRepo membership.MainMemberRepository,
	extendedRepo membership.ExtendedMemberRepository,
	planRepo plan.Repository,
	parlourRepo parlour.Repository,
	renderer CertificateRenderer,
	logger logger.Interface,
) *CertificateService {
	return &CertificateService{
		applicantRepo: applicantRepo,
		mainRepo:      mainRepo,
		extendedRepo:  extendedRepo,
		planRepo:      planRepo,
		parlourRepo:   parlourRepo,
		renderer:      renderer,
		logger:        logger,
	}
}

// Issue renders the certificate for a and persists the new path.
func (s *CertificateService) Issue(ctx context.Context, a *membership.Applicant) error {
	main, err := soleMainMember(ctx, s.mainRepo, a.ID())
	if err != nil {
		return err
	}
	if main == nil {
		return membership.ErrNoMainMember
	}
	members, err := s.extendedRepo.ListActiveByApplicantID(ctx, a.ID())
	if err != nil {
		return fmt.Errorf("failed to list extended members: %w", err)
	}
	p, err := s.planRepo.GetByID(ctx, a.PlanID())
	if err != nil {
		return fmt.Errorf("failed to get plan: %w", err)
	}
	owner, err := s.parlourRepo.GetByID(ctx, a.ParlourID())
	if err != nil {
		return fmt.Errorf("failed to get parlour: %w", err)
	}

	data := document.CertificateData{
		ParlourName:  owner.Name(),
		ParlourPhone: owner.Contact().Phone,
		ParlourEmail: owner.Contact().Email,
		PolicyNum:    a.PolicyNum(),
		PlanName:     p.Name(),
		Premium:      p.Premium(),
		Benefits:     p.Benefits(),
		MainMember:   mainPerson(main),
		IssuedAt:     biztime.NowUTC(),
	}
	for _, m := range members {
		data.Members = append(data.Members, extendedPerson(m))
	}

	path, err := s.renderer.Certificate(data)
	if err != nil {
		return fmt.Errorf("failed to render certificate: %w", err)
	}

	a.SetCertificatePath(path)
	if err := s.applicantRepo.Update(ctx, a); err != nil {
		return fmt.Errorf("failed to store certificate path: %w", err)
	}

	s.logger.Infow("certificate issued", "applicant_id", a.ID(), "path", path)
	return nil
}

// IssueBestEffort issues the certificate and logs failures instead of
// returning them.
func (s *CertificateService) IssueBestEffort(ctx context.Context, a *membership.Applicant) {
	if err := s.Issue(ctx, a); err != nil {
		s.logger.Warnw("certificate regeneration failed", "applicant_id", a.ID(), "error", err)
	}
}

func mainPerson(m *membership.MainMember) document.Person {
	id := m.Identity()
	return document.Person{
		Name:        id.FullName(),
		Type:        "main_member",
		Relation:    "self",
		IDNumber:    id.IDNumber,
		DateOfBirth: id.DateOfBirth,
		DateJoined:  m.DateJoined(),
	}
}

func extendedPerson(m *membership.ExtendedMember) document.Person {
	id := m.Identity()
	return document.Person{
		Name:          id.FullName(),
		Type:          m.Type().String(),
		Relation:      m.Relation().String(),
		IDNumber:      id.IDNumber,
		DateOfBirth:   id.DateOfBirth,
		DateJoined:    m.DateJoined(),
		WaitingPeriod: m.WaitingPeriod(),
	}
}

// EffectRunner executes the side effects returned by domain operations once
// the owning transaction has committed.
type EffectRunner struct {
	certificates *CertificateService
	publisher    events.EventPublisher
	logger       logger.Interface
}

// NewEffectRunner builds a runner. publisher may be nil, in which case events
// are dropped after logging.
func NewEffectRunner(certificates *CertificateService, publisher events.EventPublisher, logger logger.Interface) *EffectRunner {
	return &EffectRunner{
		certificates: certificates,
		publisher:    publisher,
		logger:       logger,
	}
}

func (r *EffectRunner) Run(ctx context.Context, effects []membership.Effect) {
	for _, effect := range effects {
		switch e := effect.(type) {
		case membership.RegenerateCertificate:
			r.certificates.IssueBestEffort(ctx, e.Applicant)
		case membership.PublishEvent:
			r.Publish(e.Event)
		}
	}
}

// Publish hands an event to the dispatcher. Delivery failures are logged.
func (r *EffectRunner) Publish(event events.DomainEvent) {
	if r.publisher == nil {
		r.logger.Debugw("no event publisher, event dropped", "event_type", event.GetEventType())
		return
	}
	if err := r.publisher.Publish(event); err != nil {
		r.logger.Warnw("failed to publish event",
			"event_type", event.GetEventType(),
			"aggregate_id", event.GetAggregateID(),
			"error", err,
		)
	}
}
