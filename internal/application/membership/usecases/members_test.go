package usecases

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlourcover/parlour/internal/domain/membership"
	vo "github.com/parlourcover/parlour/internal/domain/membership/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/plan"
)

func TestAddExtendedMemberUseCase_QuotaBoundary(t *testing.T) {
	f := newFixture(t)
	applicant := f.createApplicant(t, "POL-001", mainIDNumber)

	first := f.addMember(t, applicant.ID, MemberInput{FirstName: "Kid", LastName: "One", Type: "dependant", DateOfBirth: yearsAgo(5)})
	assert.Equal(t, 180, first.WaitingPeriod)
	assert.Equal(t, "child", first.Relation)
	f.addMember(t, applicant.ID, MemberInput{FirstName: "Kid", LastName: "Two", Type: "Child", DateOfBirth: yearsAgo(7)})

	_, err := f.addUseCase().Execute(context.Background(), AddExtendedMemberCommand{
		Actor:       consultantActor,
		ApplicantID: applicant.ID,
		Member:      MemberInput{FirstName: "Kid", LastName: "Three", Type: "dependant", DateOfBirth: yearsAgo(9)},
	})
	appErr := requireAppError(t, err, http.StatusBadRequest, "type")
	assert.Contains(t, appErr.Message, membership.ErrQuotaReached.Error())
	assert.Equal(t, 1, f.metrics.quotaRejections["dependant"])
}

func TestAddExtendedMemberUseCase_UnsupportedType(t *testing.T) {
	f := newFixture(t)
	applicant := f.createApplicant(t, "POL-001", mainIDNumber)

	_, err := f.addUseCase().Execute(context.Background(), AddExtendedMemberCommand{
		Actor:       consultantActor,
		ApplicantID: applicant.ID,
		Member: MemberInput{FirstName: "Gogo", LastName: "Dlamini", Type: "additional extended",
			Relation: "grandmother", DateOfBirth: yearsAgo(70)},
	})
	appErr := requireAppError(t, err, http.StatusBadRequest, "type")
	assert.Contains(t, appErr.Message, membership.ErrMemberTypeNotSupported.Error())
}

func TestAddExtendedMemberUseCase_AgeLimit(t *testing.T) {
	f := newFixture(t)
	applicant := f.createApplicant(t, "POL-001", mainIDNumber)
	over := MemberInput{FirstName: "Grown", LastName: "Up", Type: "dependant", IDNumber: adultIDNumber}

	_, err := f.addUseCase().Execute(context.Background(), AddExtendedMemberCommand{
		Actor: consultantActor, ApplicantID: applicant.ID, Member: over,
	})
	requireAppError(t, err, http.StatusBadRequest, "date_of_birth")

	over.AgeLimitException = true
	added := f.addMember(t, applicant.ID, over)
	assert.True(t, added.AgeLimitExceeded)
	assert.True(t, added.AgeLimitException)
}

func TestAddExtendedMemberUseCase_DuplicateIDNumber(t *testing.T) {
	f := newFixture(t)
	applicant := f.createApplicant(t, "POL-001", mainIDNumber)

	_, err := f.addUseCase().Execute(context.Background(), AddExtendedMemberCommand{
		Actor:       consultantActor,
		ApplicantID: applicant.ID,
		Member:      MemberInput{FirstName: "Same", LastName: "Person", Type: "spouse", IDNumber: mainIDNumber},
	})
	requireAppError(t, err, http.StatusBadRequest, "id_number")
}

func TestAddExtendedMemberUseCase_InvalidRelation(t *testing.T) {
	f := newFixture(t)
	applicant := f.createApplicant(t, "POL-001", mainIDNumber)

	_, err := f.addUseCase().Execute(context.Background(), AddExtendedMemberCommand{
		Actor:       consultantActor,
		ApplicantID: applicant.ID,
		Member:      MemberInput{FirstName: "Some", LastName: "One", Type: "extended", DateOfBirth: yearsAgo(40)},
	})
	requireAppError(t, err, http.StatusBadRequest, "relation_to_main_member")
}

func TestUpdateExtendedMemberUseCase_TypeChangeCountsNewType(t *testing.T) {
	f := newFixture(t)
	applicant := f.createApplicant(t, "POL-001", mainIDNumber)
	f.addMember(t, applicant.ID, MemberInput{FirstName: "Thandi", LastName: "Dlamini", Type: "spouse", IDNumber: spouseIDNumber})
	kid := f.addMember(t, applicant.ID, MemberInput{FirstName: "Kid", LastName: "One", Type: "dependant", DateOfBirth: yearsAgo(19)})

	uc := NewUpdateExtendedMemberUseCase(f.applicants, f.mains, f.extended, f.plans, f.certificates, f.tx, f.metrics, newTestLogger())

	_, err := uc.Execute(context.Background(), UpdateExtendedMemberCommand{
		Actor: consultantActor, ApplicantID: applicant.ID, MemberID: kid.ID,
		Member: MemberInput{FirstName: "Kid", LastName: "One", Type: "spouse", Relation: "spouse", DateOfBirth: yearsAgo(19)},
	})
	requireAppError(t, err, http.StatusBadRequest, "type")

	updated, err := uc.Execute(context.Background(), UpdateExtendedMemberCommand{
		Actor: consultantActor, ApplicantID: applicant.ID, MemberID: kid.ID,
		Member: MemberInput{FirstName: "Kid", LastName: "One", Type: "dependant", Relation: "child", DateOfBirth: yearsAgo(25)},
	})
	require.NoError(t, err)
	assert.True(t, updated.AgeLimitExceeded, "updates store the flag without rejecting")
}

func TestSetAgeExceptionUseCase_Execute(t *testing.T) {
	f := newFixture(t)
	applicant := f.createApplicant(t, "POL-001", mainIDNumber)
	kid := f.addMember(t, applicant.ID, MemberInput{FirstName: "Kid", LastName: "One", Type: "dependant", DateOfBirth: yearsAgo(5)})

	uc := NewSetAgeExceptionUseCase(f.applicants, f.mains, f.extended, newTestLogger())
	require.NoError(t, uc.Execute(context.Background(), SetAgeExceptionCommand{
		Actor: consultantActor, ApplicantID: applicant.ID, MemberID: kid.ID, Exception: true,
	}))
	stored, err := f.extended.GetByID(context.Background(), kid.ID)
	require.NoError(t, err)
	assert.True(t, stored.AgeLimitException())

	require.NoError(t, uc.Execute(context.Background(), SetAgeExceptionCommand{
		Actor: consultantActor, ApplicantID: applicant.ID, Exception: true,
	}))
	main, err := f.mains.GetByID(context.Background(), applicant.MainMember.ID)
	require.NoError(t, err)
	assert.True(t, main.AgeLimitException())
}

func TestDeleteExtendedMemberUseCase_FreesQuota(t *testing.T) {
	f := newFixture(t)
	applicant := f.createApplicant(t, "POL-001", mainIDNumber)
	spouse := f.addMember(t, applicant.ID, MemberInput{FirstName: "Thandi", LastName: "Dlamini", Type: "spouse", IDNumber: spouseIDNumber})

	uc := NewDeleteExtendedMemberUseCase(f.applicants, f.extended, f.certificates, newTestLogger())
	require.NoError(t, uc.Execute(context.Background(), consultantActor, applicant.ID, spouse.ID))

	f.addMember(t, applicant.ID, MemberInput{FirstName: "New", LastName: "Spouse", Type: "spouse", DateOfBirth: yearsAgo(40)})
}

func TestPromoteExtendedMemberUseCase_ResultShape(t *testing.T) {
	f := newFixture(t)
	original := f.createApplicant(t, "POL-001", mainIDNumber)
	spouse := f.addMember(t, original.ID, MemberInput{FirstName: "Thandi", LastName: "Dlamini", Type: "spouse", IDNumber: spouseIDNumber})
	kid := f.addMember(t, original.ID, MemberInput{FirstName: "Kid", LastName: "One", Type: "dependant", DateOfBirth: yearsAgo(5)})

	uc := NewPromoteExtendedMemberUseCase(f.applicants, f.mains, f.extended, f.plans, f.effects, f.tx, f.metrics, newTestLogger())
	result, err := uc.Execute(context.Background(), PromoteExtendedMemberCommand{
		Actor:       consultantActor,
		ApplicantID: original.ID,
		MemberID:    spouse.ID,
		Member:      MemberInput{Number: "0820000000"},
	})
	require.NoError(t, err)

	assert.Equal(t, original.ID, result.OriginalApplicantID)
	successor := result.Applicant
	assert.NotEqual(t, original.ID, successor.ID)
	assert.Equal(t, "POL-001", successor.PolicyNum)
	assert.Equal(t, "unpaid", successor.Status)
	require.NotNil(t, successor.MainMember)
	assert.Equal(t, "Thandi", successor.MainMember.FirstName)
	assert.Equal(t, spouseIDNumber, successor.MainMember.IDNumber)
	assert.Equal(t, "0820000000", successor.MainMember.Number)
	require.Len(t, successor.ExtendedMembers, 1)
	assert.Equal(t, kid.ID, successor.ExtendedMembers[0].ID)
	assert.Equal(t, successor.ID, successor.ExtendedMembers[0].ApplicantID)

	stored, err := f.applicants.GetByID(context.Background(), original.ID)
	require.NoError(t, err)
	assert.Equal(t, "archived", stored.State().String())

	former, err := f.mains.GetByID(context.Background(), original.MainMember.ID)
	require.NoError(t, err)
	assert.True(t, former.IsDeceased())

	promoted, err := f.extended.GetByID(context.Background(), spouse.ID)
	require.NoError(t, err)
	assert.False(t, promoted.IsActive())

	assert.Equal(t, 1, f.metrics.promotions)
	assert.Equal(t, []string{membership.EventMemberPromoted}, f.publisher.types())
	last := f.renderer.rendered[len(f.renderer.rendered)-1]
	assert.Equal(t, "Thandi Dlamini", last.MainMember.Name)
}

func TestPromoteExtendedMemberUseCase_NoMainMember(t *testing.T) {
	f := newFixture(t)
	original := f.createApplicant(t, "POL-001", mainIDNumber)
	spouse := f.addMember(t, original.ID, MemberInput{FirstName: "Thandi", LastName: "Dlamini", Type: "spouse", IDNumber: spouseIDNumber})

	main, err := f.mains.GetByID(context.Background(), original.MainMember.ID)
	require.NoError(t, err)
	require.NoError(t, main.Delete())

	uc := NewPromoteExtendedMemberUseCase(f.applicants, f.mains, f.extended, f.plans, f.effects, f.tx, f.metrics, newTestLogger())
	_, err = uc.Execute(context.Background(), PromoteExtendedMemberCommand{
		Actor: consultantActor, ApplicantID: original.ID, MemberID: spouse.ID,
	})
	requireAppError(t, err, http.StatusConflict, "")
	assert.Zero(t, f.metrics.promotions)
}

func TestImportMembersUseCase_PartialSuccess(t *testing.T) {
	f := newFixture(t)
	applicant := f.createApplicant(t, "POL-001", mainIDNumber)

	csv := strings.Join([]string{
		"First Name,Surname,Type,Relationship,ID Number,DOB,Phone,Date Joined",
		"thandi,MOKOENA,Spouse,wife,8501015800088,,0821234567,01/03/2024",
		"sipho,dlamini,child,son,,2015-06-01,,",
		"lerato,dlamini,Dependant,daughter,9001015800086,,,",
		"naledi,dlamini,dependant,daughter,,2016/02/03,,",
		"kabelo,dlamini,dependant,son,,03-04-2017,,",
		"uncle,bob,extended member,uncle,,,,",
		"mpho,ndlovu,spouse,husband,8501015800088,,,",
	}, "\n")

	uc := NewImportMembersUseCase(f.applicants, f.mains, f.extended, f.plans, f.certificates, f.tx, f.metrics, newTestLogger())
	result, err := uc.Execute(context.Background(), ImportMembersCommand{
		Actor:       consultantActor,
		ApplicantID: applicant.ID,
		File:        strings.NewReader(csv),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Accepted)
	assert.Equal(t, 4, result.Rejected)
	require.Len(t, result.Imported, 3)
	assert.Equal(t, "Thandi", result.Imported[0].FirstName)
	assert.Equal(t, "Mokoena", result.Imported[0].LastName)
	assert.Equal(t, "2024-03-01", result.Imported[0].DateJoined)
	assert.Equal(t, "2016-02-03", result.Imported[2].DateOfBirth)

	rows := make(map[int]string)
	for _, e := range result.Errors {
		rows[e.Row] = e.Field
	}
	assert.Equal(t, map[int]string{
		3: "id_number",
		5: "type",
		6: "id_number",
		7: "id_number",
	}, rows)

	members, err := f.extended.ListActiveByApplicantID(context.Background(), applicant.ID)
	require.NoError(t, err)
	assert.Len(t, members, 3)
	assert.Equal(t, [][2]int{{3, 4}}, f.metrics.imports)
}

func TestImportMembersUseCase_MalformedRowKeepsOthers(t *testing.T) {
	f := newFixture(t)
	applicant := f.createApplicant(t, "POL-001", mainIDNumber)

	csv := strings.Join([]string{
		"first_name,last_name,type,relation,dob",
		"sipho,dlamini,dependant,son,2015-06-01",
		"na\"ledi,dlamini,dependant,daughter,2016-02-03",
		"kabelo,dlamini,dependant,son,3/4/2017",
	}, "\n")

	uc := NewImportMembersUseCase(f.applicants, f.mains, f.extended, f.plans, f.certificates, f.tx, f.metrics, newTestLogger())
	result, err := uc.Execute(context.Background(), ImportMembersCommand{
		Actor:       consultantActor,
		ApplicantID: applicant.ID,
		File:        strings.NewReader(csv),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Accepted)
	assert.Equal(t, 1, result.Rejected)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, "file", result.Errors[0].Field)
	require.Len(t, result.Imported, 2)
	assert.Equal(t, "Sipho", result.Imported[0].FirstName)
	assert.Equal(t, "2017-04-03", result.Imported[1].DateOfBirth)
}

func TestImportMembersUseCase_MissingColumns(t *testing.T) {
	f := newFixture(t)
	applicant := f.createApplicant(t, "POL-001", mainIDNumber)

	uc := NewImportMembersUseCase(f.applicants, f.mains, f.extended, f.plans, f.certificates, f.tx, f.metrics, newTestLogger())
	_, err := uc.Execute(context.Background(), ImportMembersCommand{
		Actor:       consultantActor,
		ApplicantID: applicant.ID,
		File:        strings.NewReader("first_name,last_name\nA,B\n"),
	})
	requireAppError(t, err, http.StatusBadRequest, "file")
}

func TestAgeLimitRecomputer_RecomputeForPlan(t *testing.T) {
	f := newFixture(t)
	applicant := f.createApplicant(t, "POL-001", mainIDNumber)
	f.addMember(t, applicant.ID, MemberInput{FirstName: "Kid", LastName: "One", Type: "dependant", DateOfBirth: yearsAgo(15)})
	f.addMember(t, applicant.ID, MemberInput{FirstName: "Kid", LastName: "Two", Type: "dependant", DateOfBirth: yearsAgo(5)})

	bounds := f.plan.AllBounds()
	bounds[vo.MemberTypeDependant] = plan.Bounds{MaxAge: plan.Age(10), Quota: 2}
	changed, err := f.plan.SetBounds(bounds)
	require.NoError(t, err)
	require.True(t, changed)

	n, err := f.recomputer().RecomputeForPlan(context.Background(), f.plan.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	uc := NewRecomputeAgeLimitUseCase(f.applicants, f.plans, f.recomputer(), f.tx, newTestLogger())
	result, err := uc.Execute(context.Background(), consultantActor, applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Evaluated)
	assert.Zero(t, result.Changed)
}

func TestReadMemberCSV_HeaderAliases(t *testing.T) {
	rows, err := readMemberCSV(strings.NewReader("\ufeffName , Surname,member-type,Relation,DOB\n\n a ,b,spouse,wife,1990-01-01\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Row, "blank lines are skipped")
	assert.Equal(t, "a", rows[0].get(colFirstName))
	assert.Equal(t, "1990-01-01", rows[0].get(colDateOfBirth))
}

func TestParseImportDate(t *testing.T) {
	for _, s := range []string{"25/12/1990", "25-12-1990", "1990/12/25", "1990-12-25"} {
		d, err := parseImportDate(s)
		require.NoError(t, err, s)
		assert.Equal(t, 1990, d.Year())
		assert.Equal(t, 25, d.Day())
	}
	_, err := parseImportDate("12/25/1990")
	assert.Error(t, err)
}

func TestParseImportDate_SingleDigitDayAndMonth(t *testing.T) {
	tests := []struct {
		in    string
		day   int
		month time.Month
	}{
		{"1/2/1990", 1, time.February},
		{"01/02/1990", 1, time.February},
		{"5-3-1990", 5, time.March},
		{"1990-2-1", 1, time.February},
		{"1990/11/7", 7, time.November},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := parseImportDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, 1990, d.Year())
			assert.Equal(t, tt.month, d.Month())
			assert.Equal(t, tt.day, d.Day())
		})
	}
}

func TestReadMemberCSV_MalformedRow(t *testing.T) {
	csv := "first_name,last_name,type,relation,dob\nAnna,Dlamini,spouse,wife,1990-01-01\nBo\"b,Dlamini,dependant,son,2015-01-01\nCarl,Dlamini,dependant,son,2016-01-01\n"

	rows, err := readMemberCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.NoError(t, rows[0].ParseErr)
	assert.Error(t, rows[1].ParseErr)
	assert.Equal(t, 2, rows[1].Row)
	assert.NoError(t, rows[2].ParseErr)
	assert.Equal(t, "Carl", rows[2].get(colFirstName))
}

func TestTitleName(t *testing.T) {
	assert.Equal(t, "Mary-Anne Van Wyk", titleName("mARY-anne  van wyk"))
}

func TestCountdownWaitingPeriodsUseCase_Execute(t *testing.T) {
	f := newFixture(t)
	applicant := f.createApplicant(t, "POL-030", mainIDNumber)
	spouse := f.addMember(t, applicant.ID, MemberInput{
		FirstName: "Thandi", LastName: "Dlamini", IDNumber: spouseIDNumber, Type: "spouse",
	})
	require.Equal(t, 180, spouse.WaitingPeriod)

	served, err := f.extended.GetByID(context.Background(), spouse.ID)
	require.NoError(t, err)
	for served.WaitingPeriod() > 1 {
		require.True(t, served.DecrementWaitingPeriod())
	}

	uc := NewCountdownWaitingPeriodsUseCase(f.extended, f.tx, f.metrics, newTestLogger())
	changed, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	assert.Equal(t, 0, served.WaitingPeriod())
	assert.Equal(t, [2]int{1, 0}, f.metrics.batches[JobWaitingPeriod])

	changed, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, changed, "waiting period never drops below zero")
}

func TestCountdownWaitingPeriodsUseCase_FailedUpdateIsSkipped(t *testing.T) {
	f := newFixture(t)
	applicant := f.createApplicant(t, "POL-031", mainIDNumber)
	spouse := f.addMember(t, applicant.ID, MemberInput{
		FirstName: "Thandi", LastName: "Dlamini", IDNumber: spouseIDNumber, Type: "spouse",
	})
	child := f.addMember(t, applicant.ID, MemberInput{
		FirstName: "Kid", LastName: "Dlamini", Type: "dependant", DateOfBirth: yearsAgo(6),
	})
	f.extended.updateErr[spouse.ID] = errors.New("deadlock detected")

	uc := NewCountdownWaitingPeriodsUseCase(f.extended, f.tx, f.metrics, newTestLogger())
	changed, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, changed)
	assert.Equal(t, 1, f.tx.runs, "one commit for the whole batch")
	assert.Equal(t, 2, f.tx.savepoints)
	assert.Equal(t, 1, f.tx.rolledBack)
	assert.Equal(t, [2]int{1, 1}, f.metrics.batches[JobWaitingPeriod])

	counted, err := f.extended.GetByID(context.Background(), child.ID)
	require.NoError(t, err)
	assert.Equal(t, child.WaitingPeriod-1, counted.WaitingPeriod())
}
