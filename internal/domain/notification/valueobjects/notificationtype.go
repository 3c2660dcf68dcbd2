package valueobjects

type NotificationType string

const (
	NotificationTypePaymentReceipt  NotificationType = "payment_receipt"
	NotificationTypeCertificate     NotificationType = "certificate"
	NotificationTypeApplicantLapsed NotificationType = "applicant_lapsed"
	NotificationTypeMemberPromoted  NotificationType = "member_promoted"
)

var validNotificationTypes = map[NotificationType]bool{
	NotificationTypePaymentReceipt:  true,
	NotificationTypeCertificate:     true,
	NotificationTypeApplicantLapsed: true,
	NotificationTypeMemberPromoted:  true,
}

func (t NotificationType) String() string {
	return string(t)
}

func (t NotificationType) IsValid() bool {
	return validNotificationTypes[t]
}

// DeliveryStatus records the outcome of a send attempt.
type DeliveryStatus string

const (
	DeliveryStatusSent    DeliveryStatus = "sent"
	DeliveryStatusFailed  DeliveryStatus = "failed"
	DeliveryStatusSkipped DeliveryStatus = "skipped"
)

func (s DeliveryStatus) String() string {
	return string(s)
}
