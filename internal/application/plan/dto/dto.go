package dto

import (
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/parlourcover/parlour/internal/domain/membership/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/plan"
	"github.com/parlourcover/parlour/internal/shared/mapper"
)

// BoundsDTO are the limits of one member type. Null ages are unset.
type BoundsDTO struct {
	MinimumAge *int `json:"minimum_age"`
	MaximumAge *int `json:"maximum_age"`
	Quota      int  `json:"quota"`
}

type PlanDTO struct {
	ID                uint                 `json:"id"`
	ParlourID         uint                 `json:"parlour_id"`
	Name              string               `json:"name"`
	Premium           decimal.Decimal      `json:"premium"`
	WaitingPeriodDays int                  `json:"waiting_period"`
	Benefits          []string             `json:"benefits"`
	Bounds            map[string]BoundsDTO `json:"bounds"`
	State             string               `json:"state"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

type ListPlansResponse struct {
	Plans    []*PlanDTO `json:"plans"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

func ToPlanDTO(p *plan.Plan) *PlanDTO {
	if p == nil {
		return nil
	}
	bounds := make(map[string]BoundsDTO)
	for t, b := range p.AllBounds() {
		bounds[t.String()] = BoundsDTO{MinimumAge: b.MinAge, MaximumAge: b.MaxAge, Quota: b.Quota}
	}
	return &PlanDTO{
		ID:                p.ID(),
		ParlourID:         p.ParlourID(),
		Name:              p.Name(),
		Premium:           p.Premium(),
		WaitingPeriodDays: p.WaitingPeriodDays(),
		Benefits:          p.Benefits(),
		Bounds:            bounds,
		State:             p.State().String(),
		CreatedAt:         p.CreatedAt(),
		UpdatedAt:         p.UpdatedAt(),
	}
}

func ToPlanDTOList(plans []*plan.Plan) []*PlanDTO {
	return mapper.MapSlice(plans, ToPlanDTO)
}

// ToBounds parses request bounds keyed by member type code or label.
func ToBounds(in map[string]BoundsDTO) (map[vo.MemberType]plan.Bounds, error) {
	out := make(map[vo.MemberType]plan.Bounds, len(in))
	for key, b := range in {
		t, err := vo.ParseMemberType(key)
		if err != nil {
			return nil, err
		}
		out[t] = plan.Bounds{MinAge: b.MinimumAge, MaxAge: b.MaximumAge, Quota: b.Quota}
	}
	return out, nil
}
