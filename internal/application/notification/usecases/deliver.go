package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/domain/notification"
	vo "github.com/parlourcover/parlour/internal/domain/notification/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/parlour"
	"github.com/parlourcover/parlour/internal/domain/payment"
	"github.com/parlourcover/parlour/internal/domain/shared/events"
	"github.com/parlourcover/parlour/internal/infrastructure/email"
	"github.com/parlourcover/parlour/internal/shared/biztime"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

// DeliveredEventTypes lists the events that produce an email.
var DeliveredEventTypes = []string{
	payment.EventPaymentRecorded,
	membership.EventCertificateIssued,
	membership.EventApplicantLapsed,
	membership.EventMemberPromoted,
}

// DeliverNotificationUseCase emails the parlour contact about a domain event
// and logs the attempt. Parlours without a contact email get a skipped entry.
type DeliverNotificationUseCase struct {
	notificationRepo notification.Repository
	parlourRepo      parlour.Repository
	composer         *email.Composer
	sender           EmailSender
	documents        DocumentResolver
	logger           logger.Interface
}

func NewDeliverNotificationUseCase(
	notificationRepo notification.Repository,
	parlourRepo parlour.Repository,
	composer *email.Composer,
	sender EmailSender,
	documents DocumentResolver,
	logger logger.Interface,
) *DeliverNotificationUseCase {
	return &DeliverNotificationUseCase{
		notificationRepo: notificationRepo,
		parlourRepo:      parlourRepo,
		composer:         composer,
		sender:           sender,
		documents:        documents,
		logger:           logger,
	}
}

// outbound is an email built from one event.
type outbound struct {
	parlourID uint
	relatedID uint
	kind      vo.NotificationType
	compose   func(to, parlourName string) (email.Message, error)
}

func (uc *DeliverNotificationUseCase) Execute(ctx context.Context, event events.DomainEvent) (*notification.Notification, error) {
	out, err := uc.outboundFor(event)
	if err != nil {
		return nil, err
	}

	pl, err := uc.parlourRepo.GetByID(ctx, out.parlourID)
	if err != nil {
		return nil, fmt.Errorf("failed to load parlour %d: %w", out.parlourID, err)
	}
	recipient := pl.Contact().Email

	msg, err := out.compose(recipient, pl.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to compose %s email: %w", out.kind, err)
	}

	relatedID := out.relatedID
	n, err := notification.NewNotification(out.parlourID, recipient, msg.Subject, out.kind, &relatedID)
	if err != nil {
		return nil, err
	}

	if n.HasRecipient() {
		uc.send(n, msg)
	} else {
		uc.logger.Infow("parlour has no contact email, notification skipped", "parlour_id", out.parlourID, "type", out.kind)
	}

	if err := uc.notificationRepo.Create(ctx, n); err != nil {
		uc.logger.Errorw("failed to store notification", "error", err, "parlour_id", out.parlourID, "type", out.kind)
		return nil, fmt.Errorf("failed to store notification: %w", err)
	}
	return n, nil
}

func (uc *DeliverNotificationUseCase) send(n *notification.Notification, msg email.Message) {
	err := uc.sender.Send(msg)
	switch {
	case err == nil:
		n.MarkSent()
		uc.logger.Infow("notification sent", "to", msg.To, "type", n.Type())
	case errors.Is(err, email.ErrEmailServiceNotConfigured):
		// stays skipped
	default:
		n.MarkFailed(err)
		uc.logger.Warnw("failed to send notification", "error", err, "to", msg.To, "type", n.Type())
	}
}

func (uc *DeliverNotificationUseCase) outboundFor(event events.DomainEvent) (outbound, error) {
	switch e := event.(type) {
	case *payment.PaymentRecordedEvent:
		return outbound{
			parlourID: e.ParlourID,
			relatedID: e.PaymentID,
			kind:      vo.NotificationTypePaymentReceipt,
			compose: func(to, parlourName string) (email.Message, error) {
				return uc.composer.PaymentReceipt(to, parlourName, e.PolicyNum,
					e.Amount.StringFixed(2), biztime.FormatDate(e.Date), uc.attachment(e.InvoicePath))
			},
		}, nil
	case *membership.CertificateIssuedEvent:
		return outbound{
			parlourID: e.ParlourID,
			relatedID: e.ApplicantID,
			kind:      vo.NotificationTypeCertificate,
			compose: func(to, parlourName string) (email.Message, error) {
				return uc.composer.CertificateIssued(to, parlourName, e.PolicyNum, uc.attachment(e.Path))
			},
		}, nil
	case *membership.ApplicantLapsedEvent:
		return outbound{
			parlourID: e.ParlourID,
			relatedID: e.ApplicantID,
			kind:      vo.NotificationTypeApplicantLapsed,
			compose: func(to, parlourName string) (email.Message, error) {
				return uc.composer.ApplicantLapsed(to, parlourName, e.PolicyNum, e.PreviousStatus)
			},
		}, nil
	case *membership.MemberPromotedEvent:
		return outbound{
			parlourID: e.ParlourID,
			relatedID: e.SuccessorApplicantID,
			kind:      vo.NotificationTypeMemberPromoted,
			compose: func(to, parlourName string) (email.Message, error) {
				return uc.composer.MemberPromoted(to, parlourName, e.PolicyNum, e.NewMainMemberName,
					e.OriginalApplicantID, e.SuccessorApplicantID)
			},
		}, nil
	}
	return outbound{}, fmt.Errorf("no notification for event %s", event.GetEventType())
}

// attachment resolves a stored document path. Unresolvable paths are sent
// without the attachment.
func (uc *DeliverNotificationUseCase) attachment(rel string) string {
	if rel == "" || uc.documents == nil {
		return ""
	}
	abs, err := uc.documents.Resolve(rel)
	if err != nil {
		uc.logger.Warnw("failed to resolve document for email", "error", err, "path", rel)
		return ""
	}
	return abs
}
