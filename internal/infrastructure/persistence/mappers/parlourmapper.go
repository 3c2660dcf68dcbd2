package mappers

import (
	"github.com/parlourcover/parlour/internal/domain/consultant"
	"github.com/parlourcover/parlour/internal/domain/parlour"
	"github.com/parlourcover/parlour/internal/domain/shared/lifecycle"
	"github.com/parlourcover/parlour/internal/infrastructure/persistence/models"
)

func ParlourToModel(p *parlour.Parlour) *models.ParlourModel {
	c := p.Contact()
	return &models.ParlourModel{
		ID:            p.ID(),
		Name:          p.Name(),
		ContactPerson: c.Person,
		Email:         c.Email,
		PhoneNumber:   c.Phone,
		Address:       c.Address,
		State:         p.State().String(),
		Version:       p.Version(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func ParlourToDomain(m *models.ParlourModel) (*parlour.Parlour, error) {
	return parlour.ReconstructParlour(m.ID, m.Name, parlour.Contact{
		Person:  m.ContactPerson,
		Email:   m.Email,
		Phone:   m.PhoneNumber,
		Address: m.Address,
	}, lifecycle.State(m.State), m.Version, m.CreatedAt, m.UpdatedAt)
}

func ConsultantToModel(c *consultant.Consultant) *models.ConsultantModel {
	return &models.ConsultantModel{
		ID:           c.ID(),
		ParlourID:    c.ParlourID(),
		FirstName:    c.FirstName(),
		LastName:     c.LastName(),
		Email:        c.Email(),
		PasswordHash: c.PasswordHash(),
		Role:         c.Role().String(),
		State:        c.State().String(),
		LastLoginAt:  c.LastLoginAt(),
		Version:      c.Version(),
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
	}
}

func ConsultantToDomain(m *models.ConsultantModel) (*consultant.Consultant, error) {
	return consultant.ReconstructConsultant(consultant.ReconstructParams{
		ID:           m.ID,
		ParlourID:    m.ParlourID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		State:        lifecycle.State(m.State),
		LastLoginAt:  m.LastLoginAt,
		Version:      m.Version,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	})
}
