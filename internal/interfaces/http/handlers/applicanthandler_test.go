package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memberdto "github.com/parlourcover/parlour/internal/application/membership/dto"
	"github.com/parlourcover/parlour/internal/interfaces/http/handlers/testutil"
	"github.com/parlourcover/parlour/internal/shared/authorization"
	"github.com/parlourcover/parlour/internal/shared/biztime"
	"github.com/parlourcover/parlour/internal/shared/constants"
	"github.com/parlourcover/parlour/internal/shared/errors"
)

func newTestApplicantHandler(uc ApplicantUseCases) *ApplicantHandler {
	return NewApplicantHandler(uc, testutil.NewMockLogger())
}

func validCreateApplicantRequest() CreateApplicantRequest {
	return CreateApplicantRequest{
		PlanID:    3,
		PolicyNum: "POL-001",
		MainMember: MemberRequest{
			FirstName:   "Thandi",
			LastName:    "Mokoena",
			IDNumber:    "8001015009087",
			DateOfBirth: "1980-01-01",
			Number:      "0821234567",
		},
	}
}

// =====================================================================
// CreateApplicant
// =====================================================================

func TestApplicantHandler_CreateApplicant_Success(t *testing.T) {
	mockUC := &mockCreateApplicantUC{result: &memberdto.ApplicantDTO{ID: 7, PolicyNum: "POL-001", Status: "unpaid"}}
	handler := newTestApplicantHandler(ApplicantUseCases{Create: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/applicants", validCreateApplicantRequest())
	testutil.SetAuthContext(c, 4, 1, authorization.RoleConsultant)

	handler.CreateApplicant(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(4), mockUC.cmd.Actor.ConsultantID)
	assert.Equal(t, uint(1), mockUC.cmd.Actor.ParlourID)
	assert.Equal(t, uint(3), mockUC.cmd.PlanID)
	assert.Equal(t, "8001015009087", mockUC.cmd.MainMember.IDNumber)
	require.NotNil(t, mockUC.cmd.MainMember.DateOfBirth)
	assert.Equal(t, "1980-01-01", biztime.FormatDate(*mockUC.cmd.MainMember.DateOfBirth))
	assert.Nil(t, mockUC.cmd.MainMember.DateJoined)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
}

func TestApplicantHandler_CreateApplicant_InvalidRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *CreateApplicantRequest)
		field  string
	}{
		{name: "short id number", mutate: func(r *CreateApplicantRequest) { r.MainMember.IDNumber = "800101" }, field: "id_number"},
		{name: "letters in id number", mutate: func(r *CreateApplicantRequest) { r.MainMember.IDNumber = "80010150090AB" }, field: "id_number"},
		{name: "bad date of birth", mutate: func(r *CreateApplicantRequest) { r.MainMember.DateOfBirth = "01/01/1980" }, field: "date_of_birth"},
		{name: "missing first name", mutate: func(r *CreateApplicantRequest) { r.MainMember.FirstName = "" }, field: "first_name"},
		{name: "missing policy number", mutate: func(r *CreateApplicantRequest) { r.PolicyNum = "" }, field: "policy_num"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockCreateApplicantUC{}
			handler := newTestApplicantHandler(ApplicantUseCases{Create: mockUC})

			req := validCreateApplicantRequest()
			tt.mutate(&req)
			c, w := testutil.NewTestContext(http.MethodPost, "/applicants", req)
			testutil.SetAuthContext(c, 4, 1, authorization.RoleConsultant)

			handler.CreateApplicant(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.field, resp.Error.Field)
			assert.Empty(t, mockUC.cmd.PolicyNum, "use case must not run")
		})
	}
}

func TestApplicantHandler_CreateApplicant_Unauthenticated(t *testing.T) {
	handler := newTestApplicantHandler(ApplicantUseCases{Create: &mockCreateApplicantUC{}})

	c, w := testutil.NewTestContext(http.MethodPost, "/applicants", validCreateApplicantRequest())

	handler.CreateApplicant(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestApplicantHandler_CreateApplicant_UseCaseValidationError(t *testing.T) {
	mockUC := &mockCreateApplicantUC{err: errors.NewValidationError("policy number already in use").WithField("policy_num")}
	handler := newTestApplicantHandler(ApplicantUseCases{Create: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/applicants", validCreateApplicantRequest())
	testutil.SetAuthContext(c, 4, 1, authorization.RoleConsultant)

	handler.CreateApplicant(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "policy_num", resp.Error.Field)
}

// =====================================================================
// ListApplicants
// =====================================================================

func TestApplicantHandler_ListApplicants_PassesFilters(t *testing.T) {
	mockUC := &mockListApplicantsUC{result: &memberdto.ListApplicantsResponse{
		Applicants: []*memberdto.ApplicantDTO{{ID: 1}, {ID: 2}},
		Total:      2,
		Page:       1,
		PageSize:   20,
	}}
	handler := newTestApplicantHandler(ApplicantUseCases{List: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/applicants", nil)
	testutil.SetAuthContext(c, 4, 1, authorization.RoleAdmin)
	testutil.SetQueryParams(c, map[string]string{"plan_id": "3", "status": "paid", "policy_num": "POL"})

	handler.ListApplicants(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.query.PlanID)
	assert.Equal(t, uint(3), *mockUC.query.PlanID)
	assert.Nil(t, mockUC.query.ConsultantID)
	assert.Equal(t, "paid", mockUC.query.Status)
	assert.Equal(t, "POL", mockUC.query.PolicyNum)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var list testutil.ListData
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Equal(t, int64(2), list.Total)
	assert.Equal(t, 1, list.TotalPages)
}

func TestApplicantHandler_ListApplicants_InvalidPlanID(t *testing.T) {
	mockUC := &mockListApplicantsUC{}
	handler := newTestApplicantHandler(ApplicantUseCases{List: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/applicants", nil)
	testutil.SetAuthContext(c, 4, 1, authorization.RoleAdmin)
	testutil.SetQueryParams(c, map[string]string{"plan_id": "abc"})

	handler.ListApplicants(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// Archive / Delete
// =====================================================================

func TestApplicantHandler_ArchiveApplicant(t *testing.T) {
	mockUC := &mockApplicantActionUC{}
	handler := newTestApplicantHandler(ApplicantUseCases{Archive: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/applicants/9/archive", nil)
	testutil.SetAuthContext(c, 4, 1, authorization.RoleConsultant)
	testutil.SetURLParam(c, "id", "9")

	handler.ArchiveApplicant(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(9), mockUC.applicantID)
}

func TestApplicantHandler_DeleteApplicant_InvalidID(t *testing.T) {
	mockUC := &mockApplicantActionUC{}
	handler := newTestApplicantHandler(ApplicantUseCases{Delete: mockUC})

	c, w := testutil.NewTestContext(http.MethodDelete, "/applicants/0", nil)
	testutil.SetAuthContext(c, 4, 1, authorization.RoleAdmin)
	testutil.SetURLParam(c, "id", "0")

	handler.DeleteApplicant(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, mockUC.applicantID)
}

func TestApplicantHandler_DeleteApplicant_NotFound(t *testing.T) {
	mockUC := &mockApplicantActionUC{err: errors.NewNotFoundError("applicant not found")}
	handler := newTestApplicantHandler(ApplicantUseCases{Delete: mockUC})

	c, w := testutil.NewTestContext(http.MethodDelete, "/applicants/9", nil)
	testutil.SetAuthContext(c, 4, 1, authorization.RoleAdmin)
	testutil.SetURLParam(c, "id", "9")

	handler.DeleteApplicant(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// =====================================================================
// ExportToExcel
// =====================================================================

func TestApplicantHandler_ExportToExcel(t *testing.T) {
	mockUC := &mockExportApplicantsUC{content: "xlsx-bytes"}
	handler := newTestApplicantHandler(ApplicantUseCases{Export: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/applicants/export_to_excel", nil)
	testutil.SetAuthContext(c, 4, 1, authorization.RoleAdmin)
	testutil.SetQueryParams(c, map[string]string{"status": "lapsed"})

	handler.ExportToExcel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, constants.ContentTypeXLSX, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=\"applicants-")
	assert.Equal(t, "xlsx-bytes", w.Body.String())
	assert.Equal(t, "lapsed", mockUC.query.Status)
}

func TestApplicantHandler_ExportToExcel_Error(t *testing.T) {
	mockUC := &mockExportApplicantsUC{err: errors.NewInternalError("failed to build workbook")}
	handler := newTestApplicantHandler(ApplicantUseCases{Export: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/applicants/export_to_excel", nil)
	testutil.SetAuthContext(c, 4, 1, authorization.RoleAdmin)

	handler.ExportToExcel(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}

// =====================================================================
// ImportMembers
// =====================================================================

const importCSV = "first_name,last_name,id_number,type,relation_to_main_member\nSipho,Mokoena,1501015009081,extended,child\n"

func TestApplicantHandler_ImportMembers_CSVBody(t *testing.T) {
	mockUC := &mockImportMembersUC{result: &memberdto.ImportResultDTO{Accepted: 1, Errors: []memberdto.ImportRowError{}}}
	handler := newTestApplicantHandler(ApplicantUseCases{Import: mockUC})

	c, w := testutil.NewRawTestContext(http.MethodPost, "/applicants/9/import_members", "text/csv", strings.NewReader(importCSV))
	testutil.SetAuthContext(c, 4, 1, authorization.RoleConsultant)
	testutil.SetURLParam(c, "id", "9")

	handler.ImportMembers(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, importCSV, mockUC.body)
	assert.Equal(t, uint(9), mockUC.cmd.ApplicantID)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "Imported 1 members, rejected 0 rows", resp.Message)
}

func TestApplicantHandler_ImportMembers_Multipart(t *testing.T) {
	mockUC := &mockImportMembersUC{result: &memberdto.ImportResultDTO{}}
	handler := newTestApplicantHandler(ApplicantUseCases{Import: mockUC})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "members.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(importCSV))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	c, w := testutil.NewRawTestContext(http.MethodPost, "/applicants/9/import_members", mw.FormDataContentType(), &body)
	testutil.SetAuthContext(c, 4, 1, authorization.RoleConsultant)
	testutil.SetURLParam(c, "id", "9")

	handler.ImportMembers(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, importCSV, mockUC.body)
}

func TestApplicantHandler_ImportMembers_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		field       string
	}{
		{name: "json body", contentType: "application/json", body: "{}"},
		{name: "multipart without file", contentType: "multipart/form-data; boundary=xyz", body: "--xyz--\r\n", field: "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockImportMembersUC{}
			handler := newTestApplicantHandler(ApplicantUseCases{Import: mockUC})

			c, w := testutil.NewRawTestContext(http.MethodPost, "/applicants/9/import_members", tt.contentType, strings.NewReader(tt.body))
			testutil.SetAuthContext(c, 4, 1, authorization.RoleConsultant)
			testutil.SetURLParam(c, "id", "9")

			handler.ImportMembers(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.Equal(t, tt.field, resp.Error.Field)
			assert.Nil(t, mockUC.cmd.File)
		})
	}
}

// =====================================================================
// UpdateMainMember
// =====================================================================

func TestApplicantHandler_UpdateMainMember(t *testing.T) {
	mockUC := &mockUpdateMainMemberUC{result: &memberdto.MainMemberDTO{ID: 2, FirstName: "Thandi"}}
	handler := newTestApplicantHandler(ApplicantUseCases{UpdateMainMember: mockUC})

	req := MemberRequest{FirstName: "Thandi", LastName: "Mokoena", DateJoined: "2024-02-01", AgeLimitException: true}
	c, w := testutil.NewTestContext(http.MethodPut, "/applicants/9/main-member", req)
	testutil.SetAuthContext(c, 4, 1, authorization.RoleConsultant)
	testutil.SetURLParam(c, "id", "9")

	handler.UpdateMainMember(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockUC.cmd.Member.AgeLimitException)
	require.NotNil(t, mockUC.cmd.Member.DateJoined)
	assert.Equal(t, "2024-02-01", biztime.FormatDate(*mockUC.cmd.Member.DateJoined))
	assert.Nil(t, mockUC.cmd.Member.DateOfBirth)
}
