package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memberdto "github.com/parlourcover/parlour/internal/application/membership/dto"
	"github.com/parlourcover/parlour/internal/interfaces/http/handlers/testutil"
	"github.com/parlourcover/parlour/internal/shared/authorization"
	"github.com/parlourcover/parlour/internal/shared/errors"
)

func newTestExtendedMemberHandler(add *mockAddExtendedMemberUC, promote *mockPromoteUC, exception *mockSetAgeExceptionUC) *ExtendedMemberHandler {
	return NewExtendedMemberHandler(add, nil, nil, promote, exception, testutil.NewMockLogger())
}

func TestExtendedMemberHandler_AddExtendedMember(t *testing.T) {
	mockUC := &mockAddExtendedMemberUC{result: &memberdto.ExtendedMemberDTO{ID: 11, Type: "extended", WaitingPeriod: 90}}
	handler := newTestExtendedMemberHandler(mockUC, nil, nil)

	req := ExtendedMemberRequest{
		MemberRequest: MemberRequest{FirstName: "Sipho", LastName: "Mokoena", DateOfBirth: "2015-01-01"},
		Type:          "extended",
		Relation:      "child",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/applicants/9/extended-members", req)
	testutil.SetAuthContext(c, 4, 1, authorization.RoleConsultant)
	testutil.SetURLParam(c, "id", "9")

	handler.AddExtendedMember(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(9), mockUC.cmd.ApplicantID)
	assert.Equal(t, "extended", mockUC.cmd.Member.Type)
	assert.Equal(t, "child", mockUC.cmd.Member.Relation)
	require.NotNil(t, mockUC.cmd.Member.DateOfBirth)
}

func TestExtendedMemberHandler_AddExtendedMember_MissingRelation(t *testing.T) {
	mockUC := &mockAddExtendedMemberUC{}
	handler := newTestExtendedMemberHandler(mockUC, nil, nil)

	req := ExtendedMemberRequest{
		MemberRequest: MemberRequest{FirstName: "Sipho", LastName: "Mokoena"},
		Type:          "extended",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/applicants/9/extended-members", req)
	testutil.SetAuthContext(c, 4, 1, authorization.RoleConsultant)
	testutil.SetURLParam(c, "id", "9")

	handler.AddExtendedMember(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "relation_to_main_member", resp.Error.Field)
}

func validPromoteRequest() PromoteRequest {
	return PromoteRequest{
		FirstName:  "Nomsa",
		LastName:   "Zulu",
		Type:       "main_member",
		Relation:   "self",
		DateJoined: "2026-01-05",
		IDNumber:   "8501015009083",
		Number:     "0820000000",
	}
}

func TestExtendedMemberHandler_Promote(t *testing.T) {
	mockUC := &mockPromoteUC{result: &memberdto.PromotionResultDTO{
		OriginalApplicantID: 9,
		Applicant:           &memberdto.ApplicantDTO{ID: 21, PolicyNum: "POL-001"},
	}}
	handler := newTestExtendedMemberHandler(nil, mockUC, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/applicants/9/extended-members/11/promote", validPromoteRequest())
	testutil.SetAuthContext(c, 4, 1, authorization.RoleConsultant)
	testutil.SetURLParam(c, "id", "9")
	testutil.SetURLParam(c, "member_id", "11")

	handler.PromoteExtendedMember(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(9), mockUC.cmd.ApplicantID)
	assert.Equal(t, uint(11), mockUC.cmd.MemberID)

	member := mockUC.cmd.Member
	assert.Equal(t, "Nomsa", member.FirstName)
	assert.Equal(t, "Zulu", member.LastName)
	assert.Equal(t, "main_member", member.Type)
	assert.Equal(t, "self", member.Relation)
	assert.Equal(t, "8501015009083", member.IDNumber)
	assert.Equal(t, "0820000000", member.Number)
	require.NotNil(t, member.DateJoined)
	assert.Equal(t, "2026-01-05", member.DateJoined.Format("2006-01-02"))
	assert.Nil(t, member.DateOfBirth)
}

func TestExtendedMemberHandler_Promote_EmptyBody(t *testing.T) {
	mockUC := &mockPromoteUC{}
	handler := newTestExtendedMemberHandler(nil, mockUC, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/applicants/9/extended-members/11/promote", map[string]any{})
	testutil.SetAuthContext(c, 4, 1, authorization.RoleConsultant)
	testutil.SetURLParam(c, "id", "9")
	testutil.SetURLParam(c, "member_id", "11")

	handler.PromoteExtendedMember(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, mockUC.cmd.MemberID)
}

func TestExtendedMemberHandler_Promote_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *PromoteRequest)
	}{
		{"first name", func(r *PromoteRequest) { r.FirstName = "" }},
		{"last name", func(r *PromoteRequest) { r.LastName = "" }},
		{"type", func(r *PromoteRequest) { r.Type = "" }},
		{"relation", func(r *PromoteRequest) { r.Relation = "" }},
		{"date joined", func(r *PromoteRequest) { r.DateJoined = "" }},
		{"id number", func(r *PromoteRequest) { r.IDNumber = "" }},
		{"number", func(r *PromoteRequest) { r.Number = "" }},
		{"malformed id number", func(r *PromoteRequest) { r.IDNumber = "85010150" }},
		{"malformed date joined", func(r *PromoteRequest) { r.DateJoined = "05/01/2026" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockPromoteUC{}
			handler := newTestExtendedMemberHandler(nil, mockUC, nil)

			req := validPromoteRequest()
			tt.mutate(&req)
			c, w := testutil.NewTestContext(http.MethodPost, "/applicants/9/extended-members/11/promote", req)
			testutil.SetAuthContext(c, 4, 1, authorization.RoleConsultant)
			testutil.SetURLParam(c, "id", "9")
			testutil.SetURLParam(c, "member_id", "11")

			handler.PromoteExtendedMember(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, mockUC.cmd.MemberID)
		})
	}
}

func TestExtendedMemberHandler_Promote_Conflict(t *testing.T) {
	mockUC := &mockPromoteUC{err: errors.NewConflictError("applicant has more than one spouse")}
	handler := newTestExtendedMemberHandler(nil, mockUC, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/applicants/9/extended-members/11/promote", validPromoteRequest())
	testutil.SetAuthContext(c, 4, 1, authorization.RoleConsultant)
	testutil.SetURLParam(c, "id", "9")
	testutil.SetURLParam(c, "member_id", "11")

	handler.PromoteExtendedMember(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestExtendedMemberHandler_Promote_InvalidMemberID(t *testing.T) {
	mockUC := &mockPromoteUC{}
	handler := newTestExtendedMemberHandler(nil, mockUC, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/applicants/9/extended-members/x/promote", nil)
	testutil.SetAuthContext(c, 4, 1, authorization.RoleConsultant)
	testutil.SetURLParam(c, "id", "9")
	testutil.SetURLParam(c, "member_id", "x")

	handler.PromoteExtendedMember(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "member_id", resp.Error.Field)
	assert.Zero(t, mockUC.cmd.MemberID)
}

func TestExtendedMemberHandler_SetAgeException(t *testing.T) {
	t.Run("missing flag", func(t *testing.T) {
		mockUC := &mockSetAgeExceptionUC{}
		handler := newTestExtendedMemberHandler(nil, nil, mockUC)

		c, w := testutil.NewTestContext(http.MethodPut, "/applicants/9/extended-members/11/exception", map[string]any{})
		testutil.SetAuthContext(c, 4, 1, authorization.RoleAdmin)
		testutil.SetURLParam(c, "id", "9")
		testutil.SetURLParam(c, "member_id", "11")

		handler.SetAgeException(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.Equal(t, "age_limit_exception", resp.Error.Field)
		assert.False(t, mockUC.called)
	})

	t.Run("explicit false", func(t *testing.T) {
		mockUC := &mockSetAgeExceptionUC{}
		handler := newTestExtendedMemberHandler(nil, nil, mockUC)

		c, w := testutil.NewTestContext(http.MethodPut, "/applicants/9/extended-members/11/exception", map[string]any{"age_limit_exception": false})
		testutil.SetAuthContext(c, 4, 1, authorization.RoleAdmin)
		testutil.SetURLParam(c, "id", "9")
		testutil.SetURLParam(c, "member_id", "11")

		handler.SetAgeException(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, mockUC.called)
		assert.False(t, mockUC.cmd.Exception)
		assert.Equal(t, uint(11), mockUC.cmd.MemberID)
	})
}
