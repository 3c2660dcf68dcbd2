package payment

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parlourcover/parlour/internal/domain/shared/events"
)

const EventPaymentRecorded = "payment.recorded"

// PaymentRecordedEvent is raised after a payment and its invoice are stored.
type PaymentRecordedEvent struct {
	events.BaseEvent
	PaymentID   uint
	ApplicantID uint
	ParlourID   uint
	PolicyNum   string
	Amount      decimal.Decimal
	Date        time.Time
	InvoicePath string
}

func NewPaymentRecordedEvent(p *Payment, policyNum string) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseEvent:   events.NewBaseEvent(EventPaymentRecorded, fmt.Sprintf("%d", p.id), time.Now().UTC()),
		PaymentID:   p.id,
		ApplicantID: p.applicantID,
		ParlourID:   p.parlourID,
		PolicyNum:   policyNum,
		Amount:      p.amount,
		Date:        p.date,
		InvoicePath: p.invoicePath,
	}
}
