package consultant

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/parlourcover/parlour/internal/domain/consultant/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/shared/lifecycle"
	"github.com/parlourcover/parlour/internal/shared/authorization"
)

// PasswordHasher hashes and verifies consultant passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// Consultant is a staff user of a parlour.
type Consultant struct {
	id           uint
	parlourID    uint
	firstName    string
	lastName     string
	email        *vo.Email
	passwordHash string
	role         authorization.UserRole
	state        lifecycle.State
	lastLoginAt  *time.Time
	version      int
	createdAt    time.Time
	updatedAt    time.Time
}

// NewConsultant creates an active consultant with a hashed password.
func NewConsultant(parlourID uint, firstName, lastName string, email *vo.Email, password *vo.Password, role authorization.UserRole, hasher PasswordHasher) (*Consultant, error) {
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if password == nil {
		return nil, fmt.Errorf("password is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}
	// Superusers manage every parlour and are not tied to one.
	if parlourID == 0 && !role.IsSuperuser() {
		return nil, fmt.Errorf("parlour ID is required")
	}

	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("first and last name are required")
	}

	hash, err := hasher.Hash(password.String())
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	return &Consultant{
		parlourID:    parlourID,
		firstName:    firstName,
		lastName:     lastName,
		email:        email,
		passwordHash: hash,
		role:         role,
		state:        lifecycle.StateActive,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructParams carries persisted consultant fields.
type ReconstructParams struct {
	ID           uint
	ParlourID    uint
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         string
	State        lifecycle.State
	LastLoginAt  *time.Time
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func ReconstructConsultant(p ReconstructParams) (*Consultant, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("consultant ID cannot be zero")
	}
	email, err := vo.NewEmail(p.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid stored email: %w", err)
	}
	role := authorization.UserRole(p.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, p.Role)
	}
	return &Consultant{
		id:           p.ID,
		parlourID:    p.ParlourID,
		firstName:    p.FirstName,
		lastName:     p.LastName,
		email:        email,
		passwordHash: p.PasswordHash,
		role:         role,
		state:        p.State,
		lastLoginAt:  p.LastLoginAt,
		version:      p.Version,
		createdAt:    p.CreatedAt,
		updatedAt:    p.UpdatedAt,
	}, nil
}

func (c *Consultant) ID() uint                     { return c.id }
func (c *Consultant) ParlourID() uint              { return c.parlourID }
func (c *Consultant) FirstName() string            { return c.firstName }
func (c *Consultant) LastName() string             { return c.lastName }
func (c *Consultant) Email() string                { return c.email.String() }
func (c *Consultant) PasswordHash() string         { return c.passwordHash }
func (c *Consultant) Role() authorization.UserRole { return c.role }
func (c *Consultant) State() lifecycle.State       { return c.state }
func (c *Consultant) LastLoginAt() *time.Time      { return c.lastLoginAt }
func (c *Consultant) Version() int                 { return c.version }
func (c *Consultant) CreatedAt() time.Time         { return c.createdAt }
func (c *Consultant) UpdatedAt() time.Time         { return c.updatedAt }

func (c *Consultant) FullName() string {
	return c.firstName + " " + c.lastName
}

// SetID sets the consultant ID after persistence
func (c *Consultant) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("consultant ID already set")
	}
	if id == 0 {
		return fmt.Errorf("consultant ID cannot be zero")
	}
	c.id = id
	return nil
}

// Authenticate checks the password and records the login.
func (c *Consultant) Authenticate(plainPassword string, hasher PasswordHasher) error {
	if !c.state.IsActive() {
		return ErrConsultantInactive
	}
	if c.passwordHash == "" || hasher.Verify(plainPassword, c.passwordHash) != nil {
		return ErrInvalidCredentials
	}
	now := time.Now().UTC()
	c.lastLoginAt = &now
	c.updatedAt = now
	return nil
}

// UpdateProfile changes name and role.
func (c *Consultant) UpdateProfile(firstName, lastName string, role authorization.UserRole) error {
	if !role.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return fmt.Errorf("first and last name are required")
	}
	c.firstName = firstName
	c.lastName = lastName
	c.role = role
	c.touch()
	return nil
}

// ChangePassword replaces the password hash.
func (c *Consultant) ChangePassword(password *vo.Password, hasher PasswordHasher) error {
	if password == nil {
		return fmt.Errorf("password cannot be nil")
	}
	hash, err := hasher.Hash(password.String())
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	c.passwordHash = hash
	c.touch()
	return nil
}

// Archive disables the consultant's login.
func (c *Consultant) Archive() error {
	if !c.state.CanTransitionTo(lifecycle.StateArchived) {
		return fmt.Errorf("cannot archive consultant in state %s", c.state)
	}
	c.state = lifecycle.StateArchived
	c.touch()
	return nil
}

func (c *Consultant) touch() {
	c.updatedAt = time.Now().UTC()
	c.version++
}
