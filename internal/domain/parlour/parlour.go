package parlour

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/parlourcover/parlour/internal/domain/shared/lifecycle"
)

var (
	ErrParlourNotFound = errors.New("parlour not found")
	ErrParlourExists   = errors.New("parlour name already exists")
	ErrParlourInactive = errors.New("parlour is not active")
)

// Contact holds how a parlour is reached. Email receives notification mail.
type Contact struct {
	Person  string
	Email   string
	Phone   string
	Address string
}

// Parlour is a tenant: it owns plans, consultants and applicants.
type Parlour struct {
	id        uint
	name      string
	contact   Contact
	state     lifecycle.State
	version   int
	createdAt time.Time
	updatedAt time.Time
}

func NewParlour(name string, contact Contact) (*Parlour, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("parlour name is required")
	}

	now := time.Now().UTC()
	return &Parlour{
		name:      name,
		contact:   trimContact(contact),
		state:     lifecycle.StateActive,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructParlour(id uint, name string, contact Contact, state lifecycle.State, version int, createdAt, updatedAt time.Time) (*Parlour, error) {
	if id == 0 {
		return nil, fmt.Errorf("parlour ID cannot be zero")
	}
	if !lifecycle.ValidStates[state] {
		return nil, fmt.Errorf("invalid parlour state: %s", state)
	}
	return &Parlour{
		id:        id,
		name:      name,
		contact:   contact,
		state:     state,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (p *Parlour) ID() uint               { return p.id }
func (p *Parlour) Name() string           { return p.name }
func (p *Parlour) Contact() Contact       { return p.contact }
func (p *Parlour) State() lifecycle.State { return p.state }
func (p *Parlour) Version() int           { return p.version }
func (p *Parlour) CreatedAt() time.Time   { return p.createdAt }
func (p *Parlour) UpdatedAt() time.Time   { return p.updatedAt }

func (p *Parlour) IsActive() bool {
	return p.state.IsActive()
}

// SetID sets the parlour ID after persistence
func (p *Parlour) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("parlour ID already set")
	}
	if id == 0 {
		return fmt.Errorf("parlour ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Parlour) Update(name string, contact Contact) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("parlour name is required")
	}
	p.name = name
	p.contact = trimContact(contact)
	p.touch()
	return nil
}

func (p *Parlour) Archive() error {
	if !p.state.CanTransitionTo(lifecycle.StateArchived) {
		return fmt.Errorf("cannot archive parlour in state %s", p.state)
	}
	p.state = lifecycle.StateArchived
	p.touch()
	return nil
}

func (p *Parlour) touch() {
	p.updatedAt = time.Now().UTC()
	p.version++
}

func trimContact(c Contact) Contact {
	return Contact{
		Person:  strings.TrimSpace(c.Person),
		Email:   strings.ToLower(strings.TrimSpace(c.Email)),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
	}
}
