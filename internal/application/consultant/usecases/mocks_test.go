package usecases

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/parlourcover/parlour/internal/domain/consultant"
	"github.com/parlourcover/parlour/internal/domain/parlour"
	"github.com/parlourcover/parlour/internal/infrastructure/auth"
	"github.com/parlourcover/parlour/internal/shared/authorization"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type mockConsultantRepository struct {
	consultants map[uint]*consultant.Consultant
	nextID      uint
	updates     int
}

func newMockConsultantRepository() *mockConsultantRepository {
	return &mockConsultantRepository{consultants: make(map[uint]*consultant.Consultant)}
}

func (m *mockConsultantRepository) Create(ctx context.Context, c *consultant.Consultant) error {
	m.nextID++
	if err := c.SetID(m.nextID); err != nil {
		return err
	}
	m.consultants[c.ID()] = c
	return nil
}

func (m *mockConsultantRepository) GetByID(ctx context.Context, id uint) (*consultant.Consultant, error) {
	c, ok := m.consultants[id]
	if !ok {
		return nil, consultant.ErrConsultantNotFound
	}
	return c, nil
}

func (m *mockConsultantRepository) GetByEmail(ctx context.Context, email string) (*consultant.Consultant, error) {
	for _, c := range m.consultants {
		if c.Email() == strings.ToLower(strings.TrimSpace(email)) {
			return c, nil
		}
	}
	return nil, consultant.ErrConsultantNotFound
}

func (m *mockConsultantRepository) Update(ctx context.Context, c *consultant.Consultant) error {
	m.updates++
	m.consultants[c.ID()] = c
	return nil
}

func (m *mockConsultantRepository) List(ctx context.Context, filter consultant.Filter) ([]*consultant.Consultant, int64, error) {
	var out []*consultant.Consultant
	for id := uint(1); id <= m.nextID; id++ {
		c, ok := m.consultants[id]
		if !ok {
			continue
		}
		if filter.ParlourID != nil && c.ParlourID() != *filter.ParlourID {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (m *mockConsultantRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
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

// plainHasher prefixes passwords so tests can tell hashes from plain text.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "h:" + password, nil
}

func (plainHasher) Verify(password, hash string) error {
	if hash != "h:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type mockTokenIssuer struct {
	lastConsultantID uint
	lastRole         authorization.UserRole
}

func (m *mockTokenIssuer) Generate(consultantID, parlourID uint, role authorization.UserRole) (*auth.Token, error) {
	m.lastConsultantID = consultantID
	m.lastRole = role
	return &auth.Token{AccessToken: "token", ExpiresIn: 3600}, nil
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

func newTestLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
