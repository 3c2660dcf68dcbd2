package usecases

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/parlourcover/parlour/internal/domain/parlour"
	"github.com/parlourcover/parlour/internal/domain/plan"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type mockPlanRepository struct {
	plans  map[uint]*plan.Plan
	nextID uint

	UpdateFunc func(ctx context.Context, p *plan.Plan) error
}

func newMockPlanRepository() *mockPlanRepository {
	return &mockPlanRepository{plans: make(map[uint]*plan.Plan)}
}

func (m *mockPlanRepository) Create(ctx context.Context, p *plan.Plan) error {
	m.nextID++
	if err := p.SetID(m.nextID); err != nil {
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
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	m.plans[p.ID()] = p
	return nil
}

func (m *mockPlanRepository) List(ctx context.Context, filter plan.Filter) ([]*plan.Plan, int64, error) {
	var out []*plan.Plan
	for id := uint(1); id <= m.nextID; id++ {
		p, ok := m.plans[id]
		if !ok || (filter.ParlourID != 0 && p.ParlourID() != filter.ParlourID) {
			continue
		}
		if filter.State != nil && p.State().String() != *filter.State {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (m *mockPlanRepository) ExistsByName(ctx context.Context, parlourID uint, name string) (bool, error) {
	for _, p := range m.plans {
		if p.ParlourID() == parlourID && strings.EqualFold(p.Name(), strings.TrimSpace(name)) {
			return true, nil
		}
	}
	return false, nil
}

type mockParlourRepository struct {
	parlours map[uint]*parlour.Parlour
}

func newActiveParlourRepo(ids ...uint) *mockParlourRepository {
	repo := &mockParlourRepository{parlours: make(map[uint]*parlour.Parlour)}
	for _, id := range ids {
		p, _ := parlour.NewParlour("Parlour", parlour.Contact{})
		_ = p.SetID(id)
		repo.parlours[id] = p
	}
	return repo
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

type mockRecomputer struct {
	calls   []uint
	changed int
}

func (m *mockRecomputer) RecomputeForPlan(ctx context.Context, planID uint) (int, error) {
	m.calls = append(m.calls, planID)
	return m.changed, nil
}

type mockTxManager struct {
	runs int
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.runs++
	return fn(ctx)
}

func newTestLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
