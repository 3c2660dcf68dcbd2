package handlers

import (
	"context"
	"io"

	"github.com/parlourcover/parlour/internal/application/common"
	consultantdto "github.com/parlourcover/parlour/internal/application/consultant/dto"
	consultantuc "github.com/parlourcover/parlour/internal/application/consultant/usecases"
	memberdto "github.com/parlourcover/parlour/internal/application/membership/dto"
	memberuc "github.com/parlourcover/parlour/internal/application/membership/usecases"
	paymentdto "github.com/parlourcover/parlour/internal/application/payment/dto"
	paymentuc "github.com/parlourcover/parlour/internal/application/payment/usecases"
	plandto "github.com/parlourcover/parlour/internal/application/plan/dto"
	planuc "github.com/parlourcover/parlour/internal/application/plan/usecases"
)

// =====================================================================
// Applicant use cases
// =====================================================================

type mockCreateApplicantUC struct {
	cmd    memberuc.CreateApplicantCommand
	result *memberdto.ApplicantDTO
	err    error
}

func (m *mockCreateApplicantUC) Execute(ctx context.Context, cmd memberuc.CreateApplicantCommand) (*memberdto.ApplicantDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockListApplicantsUC struct {
	query  memberuc.ListApplicantsQuery
	result *memberdto.ListApplicantsResponse
	err    error
}

func (m *mockListApplicantsUC) Execute(ctx context.Context, query memberuc.ListApplicantsQuery) (*memberdto.ListApplicantsResponse, error) {
	m.query = query
	return m.result, m.err
}

type mockApplicantActionUC struct {
	actor       common.Actor
	applicantID uint
	err         error
}

func (m *mockApplicantActionUC) Execute(ctx context.Context, actor common.Actor, applicantID uint) error {
	m.actor = actor
	m.applicantID = applicantID
	return m.err
}

type mockExportApplicantsUC struct {
	query   memberuc.ExportApplicantsQuery
	content string
	err     error
}

func (m *mockExportApplicantsUC) Execute(ctx context.Context, query memberuc.ExportApplicantsQuery, w io.Writer) (int, error) {
	m.query = query
	if m.err != nil {
		return 0, m.err
	}
	_, _ = io.WriteString(w, m.content)
	return 1, nil
}

type mockImportMembersUC struct {
	body   string
	cmd    memberuc.ImportMembersCommand
	result *memberdto.ImportResultDTO
	err    error
}

func (m *mockImportMembersUC) Execute(ctx context.Context, cmd memberuc.ImportMembersCommand) (*memberdto.ImportResultDTO, error) {
	m.cmd = cmd
	data, err := io.ReadAll(cmd.File)
	if err != nil {
		return nil, err
	}
	m.body = string(data)
	return m.result, m.err
}

type mockUpdateMainMemberUC struct {
	cmd    memberuc.UpdateMainMemberCommand
	result *memberdto.MainMemberDTO
	err    error
}

func (m *mockUpdateMainMemberUC) Execute(ctx context.Context, cmd memberuc.UpdateMainMemberCommand) (*memberdto.MainMemberDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

// =====================================================================
// Extended member use cases
// =====================================================================

type mockAddExtendedMemberUC struct {
	cmd    memberuc.AddExtendedMemberCommand
	result *memberdto.ExtendedMemberDTO
	err    error
}

func (m *mockAddExtendedMemberUC) Execute(ctx context.Context, cmd memberuc.AddExtendedMemberCommand) (*memberdto.ExtendedMemberDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockPromoteUC struct {
	cmd    memberuc.PromoteExtendedMemberCommand
	result *memberdto.PromotionResultDTO
	err    error
}

func (m *mockPromoteUC) Execute(ctx context.Context, cmd memberuc.PromoteExtendedMemberCommand) (*memberdto.PromotionResultDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockSetAgeExceptionUC struct {
	cmd    memberuc.SetAgeExceptionCommand
	called bool
	err    error
}

func (m *mockSetAgeExceptionUC) Execute(ctx context.Context, cmd memberuc.SetAgeExceptionCommand) error {
	m.cmd = cmd
	m.called = true
	return m.err
}

// =====================================================================
// Payment, plan and auth use cases
// =====================================================================

type mockRecordPaymentUC struct {
	cmd    paymentuc.RecordPaymentCommand
	result *paymentdto.RecordPaymentResult
	err    error
}

func (m *mockRecordPaymentUC) Execute(ctx context.Context, cmd paymentuc.RecordPaymentCommand) (*paymentdto.RecordPaymentResult, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockListPaymentsUC struct {
	query  paymentuc.ListPaymentsQuery
	result *paymentdto.ListPaymentsResponse
	err    error
}

func (m *mockListPaymentsUC) Execute(ctx context.Context, query paymentuc.ListPaymentsQuery) (*paymentdto.ListPaymentsResponse, error) {
	m.query = query
	return m.result, m.err
}

type mockCreatePlanUC struct {
	cmd    planuc.CreatePlanCommand
	result *plandto.PlanDTO
	err    error
}

func (m *mockCreatePlanUC) Execute(ctx context.Context, cmd planuc.CreatePlanCommand) (*plandto.PlanDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockLoginUC struct {
	cmd    consultantuc.LoginCommand
	result *consultantdto.LoginResponse
	err    error
}

func (m *mockLoginUC) Execute(ctx context.Context, cmd consultantuc.LoginCommand) (*consultantdto.LoginResponse, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockGetConsultantUC struct {
	query  consultantuc.GetConsultantQuery
	result *consultantdto.ConsultantDTO
	err    error
}

func (m *mockGetConsultantUC) Execute(ctx context.Context, query consultantuc.GetConsultantQuery) (*consultantdto.ConsultantDTO, error) {
	m.query = query
	return m.result, m.err
}

// =====================================================================
// Batch jobs
// =====================================================================

type mockBatchJob struct {
	changed int
	err     error
	runs    int
}

func (m *mockBatchJob) Execute(ctx context.Context) (int, error) {
	m.runs++
	return m.changed, m.err
}
