package usecases

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/parlourcover/parlour/internal/domain/consultant"
	"github.com/parlourcover/parlour/internal/domain/membership"
	vo "github.com/parlourcover/parlour/internal/domain/membership/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/parlour"
	"github.com/parlourcover/parlour/internal/domain/plan"
	"github.com/parlourcover/parlour/internal/domain/shared/events"
	"github.com/parlourcover/parlour/internal/infrastructure/document"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type mockApplicantRepository struct {
	applicants map[uint]*membership.Applicant
	nextID     uint
}

func newMockApplicantRepository() *mockApplicantRepository {
	return &mockApplicantRepository{applicants: make(map[uint]*membership.Applicant)}
}

func (m *mockApplicantRepository) Create(ctx context.Context, a *membership.Applicant) error {
	m.nextID++
	if err := a.SetID(m.nextID); err != nil {
		return err
	}
	m.applicants[a.ID()] = a
	return nil
}

func (m *mockApplicantRepository) GetByID(ctx context.Context, id uint) (*membership.Applicant, error) {
	if a, ok := m.applicants[id]; ok {
		return a, nil
	}
	return nil, membership.ErrApplicantNotFound
}

func (m *mockApplicantRepository) Update(ctx context.Context, a *membership.Applicant) error {
	m.applicants[a.ID()] = a
	return nil
}

func (m *mockApplicantRepository) sorted() []*membership.Applicant {
	out := make([]*membership.Applicant, 0, len(m.applicants))
	for _, a := range m.applicants {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (m *mockApplicantRepository) List(ctx context.Context, filter membership.ApplicantFilter) ([]*membership.Applicant, int64, error) {
	var matched []*membership.Applicant
	for _, a := range m.sorted() {
		if filter.ParlourID != 0 && a.ParlourID() != filter.ParlourID {
			continue
		}
		if filter.PlanID != nil && a.PlanID() != *filter.PlanID {
			continue
		}
		if filter.Status != nil && a.Status().String() != *filter.Status {
			continue
		}
		if len(filter.States) > 0 && !contains(filter.States, a.State().String()) {
			continue
		}
		matched = append(matched, a)
	}
	total := int64(len(matched))
	if filter.PageSize > 0 {
		start := (filter.Page - 1) * filter.PageSize
		if start > len(matched) {
			start = len(matched)
		}
		end := min(start+filter.PageSize, len(matched))
		matched = matched[start:end]
	}
	return matched, total, nil
}

func (m *mockApplicantRepository) ListActive(ctx context.Context) ([]*membership.Applicant, error) {
	var out []*membership.Applicant
	for _, a := range m.sorted() {
		if a.IsActive() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockApplicantRepository) ListActiveByPlanID(ctx context.Context, planID uint) ([]*membership.Applicant, error) {
	var out []*membership.Applicant
	for _, a := range m.sorted() {
		if a.IsActive() && a.PlanID() == planID {
			out = append(out, a)
		}
	}
	return out, nil
}

type mockMainMemberRepository struct {
	members map[uint]*membership.MainMember
	nextID  uint
}

func newMockMainMemberRepository() *mockMainMemberRepository {
	return &mockMainMemberRepository{members: make(map[uint]*membership.MainMember)}
}

func (m *mockMainMemberRepository) Create(ctx context.Context, member *membership.MainMember) error {
	m.nextID++
	if err := member.SetID(m.nextID); err != nil {
		return err
	}
	m.members[member.ID()] = member
	return nil
}

func (m *mockMainMemberRepository) GetByID(ctx context.Context, id uint) (*membership.MainMember, error) {
	if member, ok := m.members[id]; ok {
		return member, nil
	}
	return nil, membership.ErrMainMemberNotFound
}

func (m *mockMainMemberRepository) Update(ctx context.Context, member *membership.MainMember) error {
	m.members[member.ID()] = member
	return nil
}

func (m *mockMainMemberRepository) ListActiveByApplicantID(ctx context.Context, applicantID uint) ([]*membership.MainMember, error) {
	var out []*membership.MainMember
	for id := uint(1); id <= m.nextID; id++ {
		member, ok := m.members[id]
		if ok && member.IsActive() && member.ApplicantID() == applicantID {
			out = append(out, member)
		}
	}
	return out, nil
}

func (m *mockMainMemberRepository) ListActiveByApplicantIDs(ctx context.Context, applicantIDs []uint) (map[uint]*membership.MainMember, error) {
	out := make(map[uint]*membership.MainMember)
	for _, id := range applicantIDs {
		members, _ := m.ListActiveByApplicantID(ctx, id)
		if len(members) > 0 {
			out[id] = members[0]
		}
	}
	return out, nil
}

func (m *mockMainMemberRepository) ExistsActiveIDNumber(ctx context.Context, parlourID uint, idNumber string, excludeID uint) (bool, error) {
	for _, member := range m.members {
		if member.ID() != excludeID && member.IsActive() && member.ParlourID() == parlourID && member.Identity().IDNumber == idNumber {
			return true, nil
		}
	}
	return false, nil
}

type mockExtendedMemberRepository struct {
	members   map[uint]*membership.ExtendedMember
	nextID    uint
	updateErr map[uint]error
}

func newMockExtendedMemberRepository() *mockExtendedMemberRepository {
	return &mockExtendedMemberRepository{
		members:   make(map[uint]*membership.ExtendedMember),
		updateErr: make(map[uint]error),
	}
}

func (m *mockExtendedMemberRepository) Create(ctx context.Context, member *membership.ExtendedMember) error {
	m.nextID++
	if err := member.SetID(m.nextID); err != nil {
		return err
	}
	m.members[member.ID()] = member
	return nil
}

func (m *mockExtendedMemberRepository) GetByID(ctx context.Context, id uint) (*membership.ExtendedMember, error) {
	if member, ok := m.members[id]; ok {
		return member, nil
	}
	return nil, membership.ErrExtendedMemberNotFound
}

func (m *mockExtendedMemberRepository) Update(ctx context.Context, member *membership.ExtendedMember) error {
	if err := m.updateErr[member.ID()]; err != nil {
		return err
	}
	m.members[member.ID()] = member
	return nil
}

func (m *mockExtendedMemberRepository) ListActiveByApplicantID(ctx context.Context, applicantID uint) ([]*membership.ExtendedMember, error) {
	var out []*membership.ExtendedMember
	for id := uint(1); id <= m.nextID; id++ {
		member, ok := m.members[id]
		if ok && member.IsActive() && member.ApplicantID() == applicantID {
			out = append(out, member)
		}
	}
	return out, nil
}

func (m *mockExtendedMemberRepository) CountActiveByType(ctx context.Context, applicantID uint, memberType vo.MemberType, excludeID uint) (int64, error) {
	var n int64
	for _, member := range m.members {
		if member.ID() != excludeID && member.IsActive() && member.ApplicantID() == applicantID && member.Type() == memberType {
			n++
		}
	}
	return n, nil
}

func (m *mockExtendedMemberRepository) ListInWaitingPeriod(ctx context.Context) ([]*membership.ExtendedMember, error) {
	var out []*membership.ExtendedMember
	for id := uint(1); id <= m.nextID; id++ {
		member, ok := m.members[id]
		if ok && member.IsActive() && member.WaitingPeriod() > 0 {
			out = append(out, member)
		}
	}
	return out, nil
}

func (m *mockExtendedMemberRepository) ExistsActiveIDNumber(ctx context.Context, parlourID uint, idNumber string, excludeID uint) (bool, error) {
	for _, member := range m.members {
		if member.ID() != excludeID && member.IsActive() && member.ParlourID() == parlourID && member.Identity().IDNumber == idNumber {
			return true, nil
		}
	}
	return false, nil
}

type mockPlanRepository struct {
	plans map[uint]*plan.Plan
}

func (m *mockPlanRepository) Create(ctx context.Context, p *plan.Plan) error {
	if err := p.SetID(uint(len(m.plans) + 1)); err != nil {
		return err
	}
	m.plans[p.ID()] = p
	return nil
}

func (m *mockPlanRepository) GetByID(ctx context.Context, id uint) (*plan.Plan, error) {
	if p, ok := m.plans[id]; ok {
		return p, nil
	}
	return nil, plan.ErrPlanNotFound
}

func (m *mockPlanRepository) Update(ctx context.Context, p *plan.Plan) error {
	m.plans[p.ID()] = p
	return nil
}

func (m *mockPlanRepository) List(ctx context.Context, filter plan.Filter) ([]*plan.Plan, int64, error) {
	return nil, 0, nil
}

func (m *mockPlanRepository) ExistsByName(ctx context.Context, parlourID uint, name string) (bool, error) {
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

// mockConsultantRepository knows no consultants; applicants are owned by the
// acting consultant in these tests.
type mockConsultantRepository struct{}

func (mockConsultantRepository) Create(ctx context.Context, c *consultant.Consultant) error { return nil }
func (mockConsultantRepository) Update(ctx context.Context, c *consultant.Consultant) error { return nil }

func (mockConsultantRepository) GetByID(ctx context.Context, id uint) (*consultant.Consultant, error) {
	return nil, consultant.ErrConsultantNotFound
}

func (mockConsultantRepository) GetByEmail(ctx context.Context, email string) (*consultant.Consultant, error) {
	return nil, consultant.ErrConsultantNotFound
}

func (mockConsultantRepository) List(ctx context.Context, filter consultant.Filter) ([]*consultant.Consultant, int64, error) {
	return nil, 0, nil
}

func (mockConsultantRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

type mockRenderer struct {
	rendered []document.CertificateData
	err      error
}

func (m *mockRenderer) Certificate(d document.CertificateData) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.rendered = append(m.rendered, d)
	return "certificates/" + strings.ToLower(d.PolicyNum) + ".html", nil
}

type mockMetrics struct {
	ageChecks       int
	ageExceeded     int
	quotaRejections map[string]int
	promotions      int
	imports         [][2]int
	batches         map[string][2]int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{quotaRejections: make(map[string]int), batches: make(map[string][2]int)}
}

func (m *mockMetrics) ObserveAgeLimit(exceeded bool) {
	m.ageChecks++
	if exceeded {
		m.ageExceeded++
	}
}

func (m *mockMetrics) IncQuotaRejection(memberType string) { m.quotaRejections[memberType]++ }
func (m *mockMetrics) IncPromotion()                       { m.promotions++ }

func (m *mockMetrics) ObserveImport(start time.Time, accepted, rejected int) {
	m.imports = append(m.imports, [2]int{accepted, rejected})
}

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

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
