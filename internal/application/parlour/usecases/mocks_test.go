package usecases

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/parlourcover/parlour/internal/domain/parlour"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type mockParlourRepository struct {
	parlours map[uint]*parlour.Parlour
	nextID   uint

	CreateFunc func(ctx context.Context, p *parlour.Parlour) error
	UpdateFunc func(ctx context.Context, p *parlour.Parlour) error
}

func newMockParlourRepository() *mockParlourRepository {
	return &mockParlourRepository{parlours: make(map[uint]*parlour.Parlour)}
}

func (m *mockParlourRepository) Create(ctx context.Context, p *parlour.Parlour) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	m.nextID++
	if err := p.SetID(m.nextID); err != nil {
		return err
	}
	m.parlours[p.ID()] = p
	return nil
}

func (m *mockParlourRepository) GetByID(ctx context.Context, id uint) (*parlour.Parlour, error) {
	p, ok := m.parlours[id]
	if !ok {
		return nil, parlour.ErrParlourNotFound
	}
	return p, nil
}

func (m *mockParlourRepository) Update(ctx context.Context, p *parlour.Parlour) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p)
	}
	m.parlours[p.ID()] = p
	return nil
}

func (m *mockParlourRepository) List(ctx context.Context, page, pageSize int) ([]*parlour.Parlour, int64, error) {
	out := make([]*parlour.Parlour, 0, len(m.parlours))
	for id := uint(1); id <= m.nextID; id++ {
		if p, ok := m.parlours[id]; ok {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockParlourRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, p := range m.parlours {
		if strings.EqualFold(p.Name(), strings.TrimSpace(name)) {
			return true, nil
		}
	}
	return false, nil
}

func newTestLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
