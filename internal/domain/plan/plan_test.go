package plan

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/parlourcover/parlour/internal/domain/membership/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/shared/lifecycle"
)

func newTestPlan(t *testing.T) *Plan {
	t.Helper()
	p, err := NewPlan(1, "Family Cover", decimal.RequireFromString("150.00"), 180, []string{"R10 000 cover", " ", "Tent"}, map[vo.MemberType]Bounds{
		vo.MemberTypeMain:      {MinAge: Age(18), MaxAge: Age(65)},
		vo.MemberTypeDependant: {MaxAge: Age(21), Quota: 4},
	})
	require.NoError(t, err)
	return p
}

func TestNewPlan(t *testing.T) {
	p := newTestPlan(t)

	assert.Equal(t, "Family Cover", p.Name())
	assert.Equal(t, lifecycle.StateActive, p.State())
	assert.Equal(t, []string{"R10 000 cover", "Tent"}, p.Benefits())
	assert.Equal(t, 4, p.BoundsFor(vo.MemberTypeDependant).Quota)
	assert.Equal(t, 0, p.BoundsFor(vo.MemberTypeSpouse).Quota)
	assert.False(t, p.BoundsFor(vo.MemberTypeSpouse).HasAgeLimit())
}

func TestNewPlan_Validation(t *testing.T) {
	_, err := NewPlan(0, "x", decimal.Zero, 0, nil, nil)
	assert.Error(t, err)

	_, err = NewPlan(1, "  ", decimal.Zero, 0, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidPlanName)

	_, err = NewPlan(1, "Basic", decimal.NewFromInt(-1), 0, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidPremium)

	_, err = NewPlan(1, "Basic", decimal.Zero, -5, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidWaiting)

	_, err = NewPlan(1, "Basic", decimal.Zero, 0, nil, map[vo.MemberType]Bounds{
		vo.MemberTypeSpouse: {MinAge: Age(30), MaxAge: Age(20), Quota: 1},
	})
	assert.ErrorIs(t, err, ErrInvalidBounds)
}

func TestPlan_MainMemberHasNoQuota(t *testing.T) {
	p, err := NewPlan(1, "Solo", decimal.Zero, 0, nil, map[vo.MemberType]Bounds{
		vo.MemberTypeMain: {MaxAge: Age(70), Quota: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, p.BoundsFor(vo.MemberTypeMain).Quota)
}

func TestPlan_SetBounds_ReportsChange(t *testing.T) {
	p := newTestPlan(t)
	version := p.Version()

	changed, err := p.SetBounds(p.AllBounds())
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, version, p.Version())

	bounds := p.AllBounds()
	bounds[vo.MemberTypeDependant] = Bounds{MaxAge: Age(18), Quota: 4}
	changed, err = p.SetBounds(bounds)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, version+1, p.Version())
	assert.Equal(t, 18, *p.BoundsFor(vo.MemberTypeDependant).MaxAge)
}

func TestPlan_Archive(t *testing.T) {
	p := newTestPlan(t)
	require.NoError(t, p.Archive())
	assert.False(t, p.IsActive())
	assert.Error(t, p.Archive())
}
