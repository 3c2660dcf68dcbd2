package notification

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/parlourcover/parlour/internal/domain/notification/valueobjects"
)

// Notification is the log entry of one outbound email.
type Notification struct {
	id               uint
	parlourID        uint
	recipient        string
	subject          string
	notificationType vo.NotificationType
	relatedID        *uint
	status           vo.DeliveryStatus
	errorMessage     string
	createdAt        time.Time
}

func NewNotification(parlourID uint, recipient, subject string, notificationType vo.NotificationType, relatedID *uint) (*Notification, error) {
	if !notificationType.IsValid() {
		return nil, fmt.Errorf("invalid notification type: %s", notificationType)
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, fmt.Errorf("subject is required")
	}
	if len(subject) > 200 {
		return nil, fmt.Errorf("subject exceeds maximum length of 200 characters")
	}

	return &Notification{
		parlourID:        parlourID,
		recipient:        strings.TrimSpace(recipient),
		subject:          subject,
		notificationType: notificationType,
		relatedID:        relatedID,
		status:           vo.DeliveryStatusSkipped,
		createdAt:        time.Now().UTC(),
	}, nil
}

func ReconstructNotification(id, parlourID uint, recipient, subject string, notificationType vo.NotificationType, relatedID *uint, status vo.DeliveryStatus, errorMessage string, createdAt time.Time) *Notification {
	return &Notification{
		id:               id,
		parlourID:        parlourID,
		recipient:        recipient,
		subject:          subject,
		notificationType: notificationType,
		relatedID:        relatedID,
		status:           status,
		errorMessage:     errorMessage,
		createdAt:        createdAt,
	}
}

func (n *Notification) ID() uint                  { return n.id }
func (n *Notification) ParlourID() uint           { return n.parlourID }
func (n *Notification) Recipient() string         { return n.recipient }
func (n *Notification) Subject() string           { return n.subject }
func (n *Notification) Type() vo.NotificationType { return n.notificationType }
func (n *Notification) RelatedID() *uint          { return n.relatedID }
func (n *Notification) Status() vo.DeliveryStatus { return n.status }
func (n *Notification) ErrorMessage() string      { return n.errorMessage }
func (n *Notification) CreatedAt() time.Time      { return n.createdAt }
func (n *Notification) SetID(id uint)             { n.id = id }
func (n *Notification) HasRecipient() bool        { return n.recipient != "" }

// MarkSent records a successful delivery.
func (n *Notification) MarkSent() {
	n.status = vo.DeliveryStatusSent
	n.errorMessage = ""
}

// MarkFailed records a failed delivery with its cause.
func (n *Notification) MarkFailed(err error) {
	n.status = vo.DeliveryStatusFailed
	if err != nil {
		n.errorMessage = err.Error()
	}
}
