package dto

import (
	"time"

	"github.com/parlourcover/parlour/internal/domain/parlour"
	"github.com/parlourcover/parlour/internal/shared/mapper"
)

type ParlourDTO struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	PhoneNumber   string    `json:"phone_number"`
	Address       string    `json:"address"`
	State         string    `json:"state"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ListParloursResponse struct {
	Parlours []*ParlourDTO `json:"parlours"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

func ToParlourDTO(p *parlour.Parlour) *ParlourDTO {
	if p == nil {
		return nil
	}
	contact := p.Contact()
	return &ParlourDTO{
		ID:            p.ID(),
		Name:          p.Name(),
		ContactPerson: contact.Person,
		Email:         contact.Email,
		PhoneNumber:   contact.Phone,
		Address:       contact.Address,
		State:         p.State().String(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func ToParlourDTOList(parlours []*parlour.Parlour) []*ParlourDTO {
	return mapper.MapSlice(parlours, ToParlourDTO)
}
