package usecases

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/domain/parlour"
	"github.com/parlourcover/parlour/internal/domain/payment"
	"github.com/parlourcover/parlour/internal/domain/shared/events"
	"github.com/parlourcover/parlour/internal/infrastructure/document"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type mockPaymentRepository struct {
	payments map[uint]*payment.Payment
	nextID   uint
	// latestErr fails LatestDateByApplicantID for the listed applicants.
	latestErr map[uint]error
}

func newMockPaymentRepository() *mockPaymentRepository {
	return &mockPaymentRepository{
		payments:  make(map[uint]*payment.Payment),
		latestErr: make(map[uint]error),
	}
}

func (m *mockPaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	m.nextID++
	if err := p.SetID(m.nextID); err != nil {
		return err
	}
	m.payments[p.ID()] = p
	return nil
}

func (m *mockPaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	m.payments[p.ID()] = p
	return nil
}

func (m *mockPaymentRepository) GetByID(ctx context.Context, id uint) (*payment.Payment, error) {
	if p, ok := m.payments[id]; ok {
		return p, nil
	}
	return nil, payment.ErrPaymentNotFound
}

func (m *mockPaymentRepository) ListByApplicantID(ctx context.Context, applicantID uint, page, pageSize int) ([]*payment.Payment, int64, error) {
	var matched []*payment.Payment
	for _, p := range m.payments {
		if p.ApplicantID() == applicantID {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date().After(matched[j].Date()) })
	total := int64(len(matched))
	start := min((page-1)*pageSize, len(matched))
	end := min(start+pageSize, len(matched))
	return matched[start:end], total, nil
}

func (m *mockPaymentRepository) LatestDateByApplicantID(ctx context.Context, applicantID uint) (*time.Time, error) {
	if err := m.latestErr[applicantID]; err != nil {
		return nil, err
	}
	var latest *time.Time
	for _, p := range m.payments {
		if p.ApplicantID() != applicantID {
			continue
		}
		d := p.Date()
		if latest == nil || d.After(*latest) {
			latest = &d
		}
	}
	return latest, nil
}

type mockApplicantRepository struct {
	applicants map[uint]*membership.Applicant
	updates    int
}

func newMockApplicantRepository(applicants ...*membership.Applicant) *mockApplicantRepository {
	m := &mockApplicantRepository{applicants: make(map[uint]*membership.Applicant)}
	for _, a := range applicants {
		m.applicants[a.ID()] = a
	}
	return m
}

func (m *mockApplicantRepository) Create(ctx context.Context, a *membership.Applicant) error {
	return errors.New("not supported")
}

func (m *mockApplicantRepository) GetByID(ctx context.Context, id uint) (*membership.Applicant, error) {
	if a, ok := m.applicants[id]; ok {
		return a, nil
	}
	return nil, membership.ErrApplicantNotFound
}

func (m *mockApplicantRepository) Update(ctx context.Context, a *membership.Applicant) error {
	m.updates++
	m.applicants[a.ID()] = a
	return nil
}

func (m *mockApplicantRepository) List(ctx context.Context, filter membership.ApplicantFilter) ([]*membership.Applicant, int64, error) {
	return nil, 0, nil
}

func (m *mockApplicantRepository) ListActive(ctx context.Context) ([]*membership.Applicant, error) {
	var out []*membership.Applicant
	for _, a := range m.applicants {
		if a.IsActive() {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (m *mockApplicantRepository) ListActiveByPlanID(ctx context.Context, planID uint) ([]*membership.Applicant, error) {
	return nil, nil
}

type mockMainMemberRepository struct {
	members []*membership.MainMember
}

func (m *mockMainMemberRepository) Create(ctx context.Context, member *membership.MainMember) error {
	m.members = append(m.members, member)
	return nil
}

func (m *mockMainMemberRepository) GetByID(ctx context.Context, id uint) (*membership.MainMember, error) {
	return nil, membership.ErrMainMemberNotFound
}

func (m *mockMainMemberRepository) Update(ctx context.Context, member *membership.MainMember) error {
	return nil
}

func (m *mockMainMemberRepository) ListActiveByApplicantID(ctx context.Context, applicantID uint) ([]*membership.MainMember, error) {
	var out []*membership.MainMember
	for _, member := range m.members {
		if member.ApplicantID() == applicantID && member.IsActive() {
			out = append(out, member)
		}
	}
	return out, nil
}

func (m *mockMainMemberRepository) ListActiveByApplicantIDs(ctx context.Context, applicantIDs []uint) (map[uint]*membership.MainMember, error) {
	return map[uint]*membership.MainMember{}, nil
}

func (m *mockMainMemberRepository) ExistsActiveIDNumber(ctx context.Context, parlourID uint, idNumber string, excludeID uint) (bool, error) {
	return false, nil
}

type mockParlourRepository struct {
	parlours map[uint]*parlour.Parlour
}

func (m *mockParlourRepository) Create(ctx context.Context, p *parlour.Parlour) error { return nil }
func (m *mockParlourRepository) Update(ctx context.Context, p *parlour.Parlour) error { return nil }

func (m *mockParlourRepository) GetByID(ctx context.Context, id uint) (*parlour.Parlour, error) {
	if p, ok := m.parlours[id]; ok {
		return p, nil
	}
	return nil, parlour.ErrParlourNotFound
}

func (m *mockParlourRepository) List(ctx context.Context, page, pageSize int) ([]*parlour.Parlour, int64, error) {
	return nil, 0, nil
}

func (m *mockParlourRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return false, nil
}

type mockInvoiceRenderer struct {
	rendered []document.InvoiceData
	err      error
}

func (m *mockInvoiceRenderer) Invoice(d document.InvoiceData) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.rendered = append(m.rendered, d)
	return fmt.Sprintf("invoices/%d.html", d.PaymentID), nil
}

type mockMetrics struct {
	recorded int
	batches  map[string][2]int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{batches: make(map[string][2]int)}
}

func (m *mockMetrics) IncPaymentRecorded() { m.recorded++ }

func (m *mockMetrics) ObserveBatchJob(job string, start time.Time, changed, failed int) {
	m.batches[job] = [2]int{changed, failed}
}

type mockPublisher struct {
	events []events.DomainEvent
}

func (m *mockPublisher) Publish(event events.DomainEvent) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockPublisher) PublishAll(list []events.DomainEvent) error {
	m.events = append(m.events, list...)
	return nil
}

func (m *mockPublisher) types() []string {
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.GetEventType())
	}
	return out
}

type mockTxManager struct {
	runs       int
	savepoints int
	rolledBack int
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.runs++
	return fn(ctx)
}

func (m *mockTxManager) RunInSavepoint(ctx context.Context, fn func(ctx context.Context) error) error {
	m.savepoints++
	err := fn(ctx)
	if err != nil {
		m.rolledBack++
	}
	return err
}

func newTestLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
