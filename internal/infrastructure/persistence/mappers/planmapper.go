package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	vo "github.com/parlourcover/parlour/internal/domain/membership/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/plan"
	"github.com/parlourcover/parlour/internal/domain/shared/lifecycle"
	"github.com/parlourcover/parlour/internal/infrastructure/persistence/models"
)

func PlanToModel(p *plan.Plan) (*models.PlanModel, error) {
	benefits, err := json.Marshal(p.Benefits())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan benefits: %w", err)
	}

	main := p.BoundsFor(vo.MemberTypeMain)
	spouse := p.BoundsFor(vo.MemberTypeSpouse)
	dependant := p.BoundsFor(vo.MemberTypeDependant)
	extended := p.BoundsFor(vo.MemberTypeExtended)
	additional := p.BoundsFor(vo.MemberTypeAdditionalExtended)

	return &models.PlanModel{
		ID:                p.ID(),
		ParlourID:         p.ParlourID(),
		Name:              p.Name(),
		Premium:           p.Premium(),
		WaitingPeriodDays: p.WaitingPeriodDays(),
		Benefits:          datatypes.JSON(benefits),
		State:             p.State().String(),

		MemberMinimumAge: main.MinAge,
		MemberMaximumAge: main.MaxAge,

		SpouseMinimumAge: spouse.MinAge,
		SpouseMaximumAge: spouse.MaxAge,
		SpouseQuota:      spouse.Quota,

		DependantMinimumAge: dependant.MinAge,
		DependantMaximumAge: dependant.MaxAge,
		DependantQuota:      dependant.Quota,

		ExtendedMinimumAge: extended.MinAge,
		ExtendedMaximumAge: extended.MaxAge,
		ExtendedQuota:      extended.Quota,

		AdditionalExtendedMinimumAge: additional.MinAge,
		AdditionalExtendedMaximumAge: additional.MaxAge,
		AdditionalExtendedQuota:      additional.Quota,

		Version:   p.Version(),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}, nil
}

func PlanToDomain(m *models.PlanModel) (*plan.Plan, error) {
	var benefits []string
	if len(m.Benefits) > 0 {
		if err := json.Unmarshal(m.Benefits, &benefits); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan benefits: %w", err)
		}
	}

	bounds := map[vo.MemberType]plan.Bounds{
		vo.MemberTypeMain:               {MinAge: m.MemberMinimumAge, MaxAge: m.MemberMaximumAge},
		vo.MemberTypeSpouse:             {MinAge: m.SpouseMinimumAge, MaxAge: m.SpouseMaximumAge, Quota: m.SpouseQuota},
		vo.MemberTypeDependant:          {MinAge: m.DependantMinimumAge, MaxAge: m.DependantMaximumAge, Quota: m.DependantQuota},
		vo.MemberTypeExtended:           {MinAge: m.ExtendedMinimumAge, MaxAge: m.ExtendedMaximumAge, Quota: m.ExtendedQuota},
		vo.MemberTypeAdditionalExtended: {MinAge: m.AdditionalExtendedMinimumAge, MaxAge: m.AdditionalExtendedMaximumAge, Quota: m.AdditionalExtendedQuota},
	}

	return plan.ReconstructPlan(plan.ReconstructParams{
		ID:                m.ID,
		ParlourID:         m.ParlourID,
		Name:              m.Name,
		Premium:           m.Premium,
		WaitingPeriodDays: m.WaitingPeriodDays,
		Benefits:          benefits,
		Bounds:            bounds,
		State:             lifecycle.State(m.State),
		Version:           m.Version,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	})
}
