package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/domain/membership"
	memberVO "github.com/parlourcover/parlour/internal/domain/membership/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/parlour"
	"github.com/parlourcover/parlour/internal/domain/payment"
	vo "github.com/parlourcover/parlour/internal/domain/payment/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/shared/lifecycle"
	"github.com/parlourcover/parlour/internal/shared/authorization"
	"github.com/parlourcover/parlour/internal/shared/biztime"
	apperrors "github.com/parlourcover/parlour/internal/shared/errors"
)

var clerk = common.Actor{ConsultantID: 3, ParlourID: 1, Role: authorization.RoleConsultant}

func newApplicant(t *testing.T, id uint, parlourID uint, status memberVO.ApplicantStatus, createdAt time.Time) *membership.Applicant {
	t.Helper()
	a, err := membership.ReconstructApplicant(membership.ApplicantReconstructParams{
		ID:           id,
		UUID:         fmt.Sprintf("applicant-%d", id),
		ParlourID:    parlourID,
		PlanID:       1,
		ConsultantID: 3,
		PolicyNum:    fmt.Sprintf("POL-%03d", id),
		Status:       status,
		State:        lifecycle.StateActive,
		Version:      1,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	})
	require.NoError(t, err)
	return a
}

type recordFixture struct {
	payments   *mockPaymentRepository
	applicants *mockApplicantRepository
	mains      *mockMainMemberRepository
	parlours   *mockParlourRepository
	renderer   *mockInvoiceRenderer
	publisher  *mockPublisher
	metrics    *mockMetrics
	tx         *mockTxManager
}

func newRecordFixture(t *testing.T, applicants ...*membership.Applicant) *recordFixture {
	t.Helper()
	owner, err := parlour.NewParlour("Ubuntu Funerals", parlour.Contact{Email: "office@ubuntu.example"})
	require.NoError(t, err)
	require.NoError(t, owner.SetID(1))

	main, err := membership.NewMainMember(1, 1, membership.Identity{FirstName: "Sipho", LastName: "Dlamini", IDNumber: "9001015800088"}, biztime.Today())
	require.NoError(t, err)

	return &recordFixture{
		payments:   newMockPaymentRepository(),
		applicants: newMockApplicantRepository(applicants...),
		mains:      &mockMainMemberRepository{members: []*membership.MainMember{main}},
		parlours:   &mockParlourRepository{parlours: map[uint]*parlour.Parlour{1: owner}},
		renderer:   &mockInvoiceRenderer{},
		publisher:  &mockPublisher{},
		metrics:    newMockMetrics(),
		tx:         &mockTxManager{},
	}
}

func (f *recordFixture) useCase() *RecordPaymentUseCase {
	return NewRecordPaymentUseCase(f.payments, f.applicants, f.mains, f.parlours, f.renderer, f.publisher, f.tx, f.metrics, newTestLogger())
}

func TestRecordPaymentUseCase_Execute(t *testing.T) {
	a := newApplicant(t, 1, 1, memberVO.StatusUnpaid, biztime.NowUTC().AddDate(0, -2, 0))
	f := newRecordFixture(t, a)

	result, err := f.useCase().Execute(context.Background(), RecordPaymentCommand{
		Actor:       clerk,
		ApplicantID: 1,
		Amount:      decimal.RequireFromString("150.004"),
		Method:      "eft",
		Reference:   "EFT-1001",
	})
	require.NoError(t, err)

	assert.Equal(t, "paid", result.ApplicantStatus)
	assert.Equal(t, memberVO.StatusPaid, a.Status())
	assert.Equal(t, "150.00", result.Payment.Amount.StringFixed(2))
	assert.Equal(t, "eft", result.Payment.Method)
	assert.Equal(t, biztime.FormatDate(biztime.Today()), result.Payment.Date)
	assert.Equal(t, uint(3), result.Payment.RecordedBy)
	assert.Equal(t, "invoices/1.html", result.Payment.InvoicePath)

	require.Len(t, f.renderer.rendered, 1)
	invoice := f.renderer.rendered[0]
	assert.Equal(t, "Ubuntu Funerals", invoice.ParlourName)
	assert.Equal(t, "Sipho Dlamini", invoice.MainMemberName)
	assert.Equal(t, "EFT-1001", invoice.Reference)

	assert.Equal(t, 1, f.metrics.recorded)
	assert.Equal(t, []string{payment.EventPaymentRecorded}, f.publisher.types())
	event := f.publisher.events[0].(*payment.PaymentRecordedEvent)
	assert.Equal(t, a.PolicyNum(), event.PolicyNum)
	assert.Equal(t, "invoices/1.html", event.InvoicePath)
}

func TestRecordPaymentUseCase_Rejections(t *testing.T) {
	tomorrow := biztime.Today().AddDate(0, 0, 1)
	tests := []struct {
		name  string
		cmd   RecordPaymentCommand
		code  int
		field string
	}{
		{
			name:  "unknown method",
			cmd:   RecordPaymentCommand{Actor: clerk, ApplicantID: 1, Amount: decimal.NewFromInt(100), Method: "cheque"},
			code:  http.StatusBadRequest,
			field: "method",
		},
		{
			name:  "zero amount",
			cmd:   RecordPaymentCommand{Actor: clerk, ApplicantID: 1, Amount: decimal.Zero, Method: "cash"},
			code:  http.StatusBadRequest,
			field: "amount",
		},
		{
			name:  "future date",
			cmd:   RecordPaymentCommand{Actor: clerk, ApplicantID: 1, Amount: decimal.NewFromInt(100), Method: "cash", Date: &tomorrow},
			code:  http.StatusBadRequest,
			field: "date",
		},
		{
			name: "other parlour",
			cmd:  RecordPaymentCommand{Actor: common.Actor{ConsultantID: 9, ParlourID: 2, Role: authorization.RoleAdmin}, ApplicantID: 1, Amount: decimal.NewFromInt(100), Method: "cash"},
			code: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRecordFixture(t, newApplicant(t, 1, 1, memberVO.StatusUnpaid, biztime.NowUTC()))
			_, err := f.useCase().Execute(context.Background(), tt.cmd)

			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr, "got %v", err)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.field, appErr.Field)
			assert.Empty(t, f.payments.payments)
			assert.Empty(t, f.publisher.events)
		})
	}
}

func TestRecordPaymentUseCase_InvoiceFailureKeepsPayment(t *testing.T) {
	f := newRecordFixture(t, newApplicant(t, 1, 1, memberVO.StatusUnpaid, biztime.NowUTC()))
	f.renderer.err = errors.New("disk full")

	result, err := f.useCase().Execute(context.Background(), RecordPaymentCommand{
		Actor:       clerk,
		ApplicantID: 1,
		Amount:      decimal.NewFromInt(150),
		Method:      "cash",
	})
	require.NoError(t, err)
	assert.Empty(t, result.Payment.InvoicePath)
	assert.Len(t, f.payments.payments, 1)
	assert.Equal(t, []string{payment.EventPaymentRecorded}, f.publisher.types())
}

func TestListPaymentsUseCase_Execute(t *testing.T) {
	f := newRecordFixture(t, newApplicant(t, 1, 1, memberVO.StatusUnpaid, biztime.NowUTC()))
	for _, day := range []int{-40, -10, -70} {
		p, err := payment.NewPayment(1, 1, decimal.NewFromInt(150), vo.PaymentMethodCash, biztime.Today().AddDate(0, 0, day), "", 3)
		require.NoError(t, err)
		require.NoError(t, f.payments.Create(context.Background(), p))
	}

	uc := NewListPaymentsUseCase(f.payments, f.applicants, newTestLogger())
	result, err := uc.Execute(context.Background(), ListPaymentsQuery{Actor: clerk, ApplicantID: 1, Page: 1, PageSize: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.Total)
	require.Len(t, result.Payments, 2)
	assert.Equal(t, biztime.FormatDate(biztime.Today().AddDate(0, 0, -10)), result.Payments[0].Date)

	_, err = uc.Execute(context.Background(), ListPaymentsQuery{Actor: clerk, ApplicantID: 42})
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestDerivePaymentStatusesUseCase_Execute(t *testing.T) {
	loc := biztime.Location()
	now := time.Date(2026, 10, 18, 10, 0, 0, 0, loc)
	created := time.Date(2026, 1, 10, 9, 0, 0, 0, loc)

	current := newApplicant(t, 1, 1, memberVO.StatusUnpaid, created)
	neverPaid := newApplicant(t, 2, 1, memberVO.StatusSkipped, created)
	broken := newApplicant(t, 3, 2, memberVO.StatusPaid, created)
	fresh := newApplicant(t, 4, 2, memberVO.StatusUnpaid, time.Date(2026, 10, 2, 9, 0, 0, 0, loc))

	f := newRecordFixture(t, current, neverPaid, broken, fresh)
	paid, err := payment.NewPayment(1, 1, decimal.NewFromInt(150), vo.PaymentMethodDebitOrder, time.Date(2026, 10, 5, 0, 0, 0, 0, loc), "", 3)
	require.NoError(t, err)
	require.NoError(t, f.payments.Create(context.Background(), paid))
	f.payments.latestErr[3] = errors.New("connection reset")

	uc := NewDerivePaymentStatusesUseCase(f.applicants, f.payments, f.publisher, f.tx, f.metrics, newTestLogger())
	uc.now = func() time.Time { return now }

	changed, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, changed)
	assert.Equal(t, 1, f.tx.runs, "one commit for the whole batch")
	assert.Equal(t, 4, f.tx.savepoints, "one savepoint per applicant")
	assert.Equal(t, 1, f.tx.rolledBack)
	assert.Equal(t, memberVO.StatusPaid, current.Status())
	assert.Equal(t, memberVO.StatusLapsed, neverPaid.Status())
	assert.Equal(t, memberVO.StatusPaid, broken.Status(), "failed item is left alone")
	assert.Equal(t, memberVO.StatusUnpaid, fresh.Status())
	assert.Equal(t, [2]int{2, 1}, f.metrics.batches[JobPaymentStatus])

	require.Equal(t, []string{membership.EventApplicantLapsed}, f.publisher.types())
	lapse := f.publisher.events[0].(*membership.ApplicantLapsedEvent)
	assert.Equal(t, uint(2), lapse.ApplicantID)
	assert.Equal(t, "skipped", lapse.PreviousStatus)

	changed, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, changed)
	assert.Len(t, f.publisher.events, 1, "lapse is published once")
}
