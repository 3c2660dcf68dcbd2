package dto

import (
	"time"

	"github.com/parlourcover/parlour/internal/domain/consultant"
	"github.com/parlourcover/parlour/internal/shared/mapper"
)

type ConsultantDTO struct {
	ID          uint       `json:"id"`
	ParlourID   uint       `json:"parlour_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	State       string     `json:"state"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ListConsultantsResponse struct {
	Consultants []*ConsultantDTO `json:"consultants"`
	Total       int64            `json:"total"`
	Page        int              `json:"page"`
	PageSize    int              `json:"page_size"`
}

type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int64          `json:"expires_in"`
	Consultant  *ConsultantDTO `json:"consultant"`
}

func ToConsultantDTO(c *consultant.Consultant) *ConsultantDTO {
	if c == nil {
		return nil
	}
	return &ConsultantDTO{
		ID:          c.ID(),
		ParlourID:   c.ParlourID(),
		FirstName:   c.FirstName(),
		LastName:    c.LastName(),
		Email:       c.Email(),
		Role:        c.Role().String(),
		State:       c.State().String(),
		LastLoginAt: c.LastLoginAt(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

func ToConsultantDTOList(consultants []*consultant.Consultant) []*ConsultantDTO {
	return mapper.MapSlice(consultants, ToConsultantDTO)
}
