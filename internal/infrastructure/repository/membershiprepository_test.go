package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/parlourcover/parlour/internal/domain/membership"
	vo "github.com/parlourcover/parlour/internal/domain/membership/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/plan"
	"github.com/parlourcover/parlour/internal/domain/shared/lifecycle"
)

func createPlan(t *testing.T, db *gorm.DB) *plan.Plan {
	t.Helper()
	p, err := plan.NewPlan(1, "Family Cover", decimal.RequireFromString("150.50"), 90,
		[]string{"Coffin", "Tent"},
		map[vo.MemberType]plan.Bounds{
			vo.MemberTypeMain:      {MinAge: plan.Age(18), MaxAge: plan.Age(65)},
			vo.MemberTypeSpouse:    {MaxAge: plan.Age(65), Quota: 1},
			vo.MemberTypeDependant: {MaxAge: plan.Age(21), Quota: 4},
		})
	require.NoError(t, err)
	require.NoError(t, NewPlanRepository(db, testLogger()).Create(context.Background(), p))
	return p
}

func createApplicant(t *testing.T, db *gorm.DB, planID uint, policy string) *membership.Applicant {
	t.Helper()
	a, err := membership.NewApplicant(1, planID, 3, policy)
	require.NoError(t, err)
	require.NoError(t, NewApplicantRepository(db, testLogger()).Create(context.Background(), a))
	return a
}

func TestApplicantRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicantRepository(db, testLogger())
	ctx := context.Background()

	p := createPlan(t, db)
	a := createApplicant(t, db, p.ID(), "POL-100")
	assert.NotZero(t, a.ID())

	found, err := repo.GetByID(ctx, a.ID())
	require.NoError(t, err)
	assert.Equal(t, "POL-100", found.PolicyNum())
	assert.Equal(t, a.UUID(), found.UUID())
	assert.Equal(t, vo.StatusUnpaid, found.Status())
	assert.Equal(t, lifecycle.StateActive, found.State())

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, membership.ErrApplicantNotFound)
}

func TestApplicantRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicantRepository(db, testLogger())
	ctx := context.Background()

	p := createPlan(t, db)
	first := createApplicant(t, db, p.ID(), "POL-1")
	createApplicant(t, db, p.ID(), "POL-2")
	deleted := createApplicant(t, db, p.ID(), "POL-3")

	require.NoError(t, deleted.Delete())
	require.NoError(t, repo.Update(ctx, deleted))

	_, err := first.SetStatus(vo.StatusPaid)
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, first))

	t.Run("deleted applicants are hidden by default", func(t *testing.T) {
		list, total, err := repo.List(ctx, membership.ApplicantFilter{ParlourID: 1, Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, list, 2)
	})

	t.Run("filter by status", func(t *testing.T) {
		status := vo.StatusPaid.String()
		list, total, err := repo.List(ctx, membership.ApplicantFilter{ParlourID: 1, Status: &status, Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.Equal(t, first.ID(), list[0].ID())
	})

	t.Run("active by plan", func(t *testing.T) {
		list, err := repo.ListActiveByPlanID(ctx, p.ID())
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})
}

func TestMainMemberRepository_ExistsActiveIDNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMainMemberRepository(db, testLogger())
	ctx := context.Background()

	p := createPlan(t, db)
	a := createApplicant(t, db, p.ID(), "POL-1")

	m, err := membership.NewMainMember(a.ID(), 1, membership.Identity{
		FirstName: "Thabo",
		LastName:  "Mokoena",
		IDNumber:  "9001015800088",
	}, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, m))

	exists, err := repo.ExistsActiveIDNumber(ctx, 1, "9001015800088", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsActiveIDNumber(ctx, 1, "9001015800088", m.ID())
	require.NoError(t, err)
	assert.False(t, exists, "the member itself is excluded")

	exists, err = repo.ExistsActiveIDNumber(ctx, 2, "9001015800088", 0)
	require.NoError(t, err)
	assert.False(t, exists, "other parlours do not collide")

	byApplicant, err := repo.ListActiveByApplicantIDs(ctx, []uint{a.ID()})
	require.NoError(t, err)
	require.Contains(t, byApplicant, a.ID())
	assert.Equal(t, "Thabo", byApplicant[a.ID()].Identity().FirstName)
}

func TestExtendedMemberRepository_CountAndWaitingPeriod(t *testing.T) {
	db := setupTestDB(t)
	repo := NewExtendedMemberRepository(db, testLogger())
	ctx := context.Background()

	p := createPlan(t, db)
	a := createApplicant(t, db, p.ID(), "POL-1")

	newMember := func(first string, waiting int) *membership.ExtendedMember {
		dob := time.Date(2015, 3, 3, 0, 0, 0, 0, time.UTC)
		m, err := membership.NewExtendedMember(membership.ExtendedMemberParams{
			ApplicantID:   a.ID(),
			ParlourID:     1,
			Identity:      membership.Identity{FirstName: first, LastName: "Mokoena", DateOfBirth: &dob},
			Type:          vo.MemberTypeDependant,
			Relation:      vo.RelationChild,
			DateJoined:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			WaitingPeriod: waiting,
		})
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, m))
		return m
	}

	waiting := newMember("Lerato", 30)
	newMember("Karabo", 0)
	gone := newMember("Naledi", 5)
	require.NoError(t, gone.Delete())
	require.NoError(t, repo.Update(ctx, gone))

	count, err := repo.CountActiveByType(ctx, a.ID(), vo.MemberTypeDependant, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountActiveByType(ctx, a.ID(), vo.MemberTypeDependant, waiting.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	inWaiting, err := repo.ListInWaitingPeriod(ctx)
	require.NoError(t, err)
	require.Len(t, inWaiting, 1)
	assert.Equal(t, waiting.ID(), inWaiting[0].ID())
	assert.Equal(t, 30, inWaiting[0].WaitingPeriod())

	_, err = repo.GetByID(ctx, 4242)
	assert.ErrorIs(t, err, membership.ErrExtendedMemberNotFound)
}
