package mappers

import (
	"fmt"

	"github.com/parlourcover/parlour/internal/domain/notification"
	nvo "github.com/parlourcover/parlour/internal/domain/notification/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/payment"
	vo "github.com/parlourcover/parlour/internal/domain/payment/valueobjects"
	"github.com/parlourcover/parlour/internal/infrastructure/persistence/models"
)

func PaymentToModel(p *payment.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		ID:            p.ID(),
		ApplicantID:   p.ApplicantID(),
		ParlourID:     p.ParlourID(),
		Amount:        p.Amount(),
		PaymentMethod: p.Method().String(),
		Date:          p.Date(),
		Reference:     p.Reference(),
		InvoicePath:   p.InvoicePath(),
		RecordedBy:    p.RecordedBy(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func PaymentToDomain(m *models.PaymentModel) (*payment.Payment, error) {
	method, err := vo.NewPaymentMethod(m.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("invalid payment method: %w", err)
	}
	return payment.ReconstructPayment(m.ID, m.ApplicantID, m.ParlourID, m.Amount, method, m.Date,
		m.Reference, m.InvoicePath, m.RecordedBy, m.CreatedAt, m.UpdatedAt)
}

func NotificationToModel(n *notification.Notification) *models.NotificationModel {
	return &models.NotificationModel{
		ID:           n.ID(),
		ParlourID:    n.ParlourID(),
		Recipient:    n.Recipient(),
		Subject:      n.Subject(),
		Type:         n.Type().String(),
		RelatedID:    n.RelatedID(),
		Status:       n.Status().String(),
		ErrorMessage: n.ErrorMessage(),
		CreatedAt:    n.CreatedAt(),
	}
}

func NotificationToDomain(m *models.NotificationModel) *notification.Notification {
	return notification.ReconstructNotification(m.ID, m.ParlourID, m.Recipient, m.Subject,
		nvo.NotificationType(m.Type), m.RelatedID, nvo.DeliveryStatus(m.Status), m.ErrorMessage, m.CreatedAt)
}
