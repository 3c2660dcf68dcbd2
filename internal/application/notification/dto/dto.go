package dto

import (
	"time"

	"github.com/parlourcover/parlour/internal/domain/notification"
	"github.com/parlourcover/parlour/internal/shared/mapper"
)

type NotificationDTO struct {
	ID           uint      `json:"id"`
	ParlourID    uint      `json:"parlour_id"`
	Recipient    string    `json:"recipient,omitempty"`
	Subject      string    `json:"subject"`
	Type         string    `json:"type"`
	RelatedID    *uint     `json:"related_id,omitempty"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ListNotificationsResponse struct {
	Notifications []*NotificationDTO `json:"notifications"`
	Total         int64              `json:"total"`
	Page          int                `json:"page"`
	PageSize      int                `json:"page_size"`
}

func ToNotificationDTO(n *notification.Notification) *NotificationDTO {
	if n == nil {
		return nil
	}
	return &NotificationDTO{
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

func ToNotificationDTOList(list []*notification.Notification) []*NotificationDTO {
	out := mapper.MapSlice(list, ToNotificationDTO)
	if out == nil {
		return []*NotificationDTO{}
	}
	return out
}
