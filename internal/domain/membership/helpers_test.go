package membership

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	vo "github.com/parlourcover/parlour/internal/domain/membership/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/plan"
	"github.com/parlourcover/parlour/internal/domain/shared/lifecycle"
)

var testNow = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func newTestPlan(t *testing.T, bounds map[vo.MemberType]plan.Bounds) *plan.Plan {
	t.Helper()
	p, err := plan.NewPlan(1, "Family", decimal.NewFromInt(120), 90, nil, bounds)
	require.NoError(t, err)
	require.NoError(t, p.SetID(7))
	return p
}

func reconstructApplicant(t *testing.T, id uint, createdAt time.Time) *Applicant {
	t.Helper()
	a, err := ReconstructApplicant(ApplicantReconstructParams{
		ID:           id,
		UUID:         "00000000-0000-0000-0000-000000000001",
		ParlourID:    1,
		PlanID:       7,
		ConsultantID: 3,
		PolicyNum:    "POL-001",
		Status:       vo.StatusPaid,
		State:        lifecycle.StateActive,
		Version:      1,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	})
	require.NoError(t, err)
	return a
}

func reconstructMainMember(t *testing.T, id, applicantID uint) *MainMember {
	t.Helper()
	m, err := ReconstructMainMember(MainMemberReconstructParams{
		ID:          id,
		ApplicantID: applicantID,
		ParlourID:   1,
		Identity:    Identity{FirstName: "Sipho", LastName: "Dlamini", IDNumber: "8501015800088"},
		DateJoined:  date(2020, 1, 1),
		State:       lifecycle.StateActive,
		Version:     1,
	})
	require.NoError(t, err)
	return m
}

func reconstructExtendedMember(t *testing.T, id, applicantID uint, mt vo.MemberType) *ExtendedMember {
	t.Helper()
	m, err := ReconstructExtendedMember(ExtendedMemberReconstructParams{
		ID:                   id,
		ApplicantID:          applicantID,
		ParlourID:            1,
		Identity:             Identity{FirstName: "Member", LastName: "Dlamini", DateOfBirth: datePtr(1995, 5, 5)},
		Type:                 mt,
		Relation:             vo.RelationChild,
		DateJoined:           date(2021, 1, 1),
		WaitingPeriod:        10,
		IsMainMemberDeceased: true,
		State:                lifecycle.StateActive,
		Version:              1,
	})
	require.NoError(t, err)
	return m
}
