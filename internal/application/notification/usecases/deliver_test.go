package usecases

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/domain/notification"
	vo "github.com/parlourcover/parlour/internal/domain/notification/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/parlour"
	"github.com/parlourcover/parlour/internal/domain/payment"
	"github.com/parlourcover/parlour/internal/domain/shared/events"
	"github.com/parlourcover/parlour/internal/infrastructure/email"
	"github.com/parlourcover/parlour/internal/shared/authorization"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type mockNotificationRepository struct {
	stored []*notification.Notification
	filter notification.Filter
}

func (m *mockNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	n.SetID(uint(len(m.stored) + 1))
	m.stored = append(m.stored, n)
	return nil
}

func (m *mockNotificationRepository) List(ctx context.Context, filter notification.Filter) ([]*notification.Notification, int64, error) {
	m.filter = filter
	return m.stored, int64(len(m.stored)), nil
}

type mockParlourRepository struct {
	parlours map[uint]*parlour.Parlour
}

func (m *mockParlourRepository) Create(ctx context.Context, p *parlour.Parlour) error { return nil }
func (m *mockParlourRepository) Update(ctx context.Context, p *parlour.Parlour) error { return nil }

func (m *mockParlourRepository) GetByID(ctx context.Context, id uint) (*parlour.Parlour, error) {
	if p, ok := m.parlours[id]; ok {
		return p, nil
	}
	return nil, parlour.ErrParlourNotFound
}

func (m *mockParlourRepository) List(ctx context.Context, page, pageSize int) ([]*parlour.Parlour, int64, error) {
	return nil, 0, nil
}

func (m *mockParlourRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return false, nil
}

type mockSender struct {
	sent []email.Message
	err  error
}

func (m *mockSender) Send(msg email.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type mockResolver struct{}

func (mockResolver) Resolve(rel string) (string, error) {
	return "/srv/documents/" + rel, nil
}

func newParlour(t *testing.T, id uint, contactEmail string) *parlour.Parlour {
	t.Helper()
	p, err := parlour.NewParlour("Ubuntu Funerals", parlour.Contact{Email: contactEmail})
	require.NoError(t, err)
	require.NoError(t, p.SetID(id))
	return p
}

func newDeliverUseCase(t *testing.T, sender *mockSender) (*DeliverNotificationUseCase, *mockNotificationRepository) {
	t.Helper()
	repo := &mockNotificationRepository{}
	parlours := &mockParlourRepository{parlours: map[uint]*parlour.Parlour{
		1: newParlour(t, 1, "office@ubuntu.example"),
		2: newParlour(t, 2, ""),
	}}
	log := logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewDeliverNotificationUseCase(repo, parlours, email.NewComposer(), sender, mockResolver{}, log), repo
}

func paymentEvent(parlourID uint) *payment.PaymentRecordedEvent {
	return &payment.PaymentRecordedEvent{
		BaseEvent:   events.NewBaseEvent(payment.EventPaymentRecorded, "5", time.Now()),
		PaymentID:   5,
		ApplicantID: 2,
		ParlourID:   parlourID,
		PolicyNum:   "POL-002",
		Amount:      decimal.NewFromInt(150),
		Date:        time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		InvoicePath: "invoices/5.html",
	}
}

func TestDeliverNotificationUseCase_PaymentReceipt(t *testing.T) {
	sender := &mockSender{}
	uc, repo := newDeliverUseCase(t, sender)

	n, err := uc.Execute(context.Background(), paymentEvent(1))
	require.NoError(t, err)

	assert.Equal(t, vo.DeliveryStatusSent, n.Status())
	assert.Equal(t, vo.NotificationTypePaymentReceipt, n.Type())
	require.NotNil(t, n.RelatedID())
	assert.Equal(t, uint(5), *n.RelatedID())
	require.Len(t, repo.stored, 1)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "office@ubuntu.example", msg.To)
	assert.Equal(t, "Payment received: POL-002", msg.Subject)
	assert.Equal(t, []string{"/srv/documents/invoices/5.html"}, msg.Attachments)
}

func TestDeliverNotificationUseCase_Outcomes(t *testing.T) {
	lapsed := &membership.ApplicantLapsedEvent{
		BaseEvent:      events.NewBaseEvent(membership.EventApplicantLapsed, "uuid-2", time.Now()),
		ApplicantID:    2,
		ParlourID:      1,
		PolicyNum:      "POL-002",
		PreviousStatus: "skipped",
	}

	tests := []struct {
		name      string
		event     events.DomainEvent
		sendErr   error
		status    vo.DeliveryStatus
		errorText string
		sent      int
	}{
		{name: "smtp failure", event: lapsed, sendErr: errors.New("connection refused"), status: vo.DeliveryStatusFailed, errorText: "connection refused"},
		{name: "email disabled", event: lapsed, sendErr: email.ErrEmailServiceNotConfigured, status: vo.DeliveryStatusSkipped},
		{name: "no contact email", event: paymentEvent(2), status: vo.DeliveryStatusSkipped},
		{name: "lapse sent", event: lapsed, status: vo.DeliveryStatusSent, sent: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &mockSender{err: tt.sendErr}
			uc, repo := newDeliverUseCase(t, sender)

			n, err := uc.Execute(context.Background(), tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.status, n.Status())
			assert.Contains(t, n.ErrorMessage(), tt.errorText)
			assert.Len(t, sender.sent, tt.sent)
			assert.Len(t, repo.stored, 1, "every attempt is logged")
		})
	}
}

func TestDeliverNotificationUseCase_UnknownEvent(t *testing.T) {
	uc, repo := newDeliverUseCase(t, &mockSender{})

	_, err := uc.Execute(context.Background(), events.NewBaseEvent("plan.updated", "1", time.Now()))
	assert.Error(t, err)
	assert.Empty(t, repo.stored)
}

func TestListNotificationsUseCase_ScopesToActorParlour(t *testing.T) {
	repo := &mockNotificationRepository{}
	uc := NewListNotificationsUseCase(repo, logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil))))

	actor := common.Actor{ConsultantID: 4, ParlourID: 1, Role: authorization.RoleAdmin}
	result, err := uc.Execute(context.Background(), ListNotificationsQuery{Actor: actor, ParlourID: 9, Status: "failed", PageSize: 500})
	require.NoError(t, err)

	assert.Equal(t, uint(1), repo.filter.ParlourID)
	require.NotNil(t, repo.filter.Status)
	assert.Equal(t, "failed", *repo.filter.Status)
	assert.Nil(t, repo.filter.Type)
	assert.Equal(t, 20, result.PageSize)
	assert.NotNil(t, result.Notifications)
}
