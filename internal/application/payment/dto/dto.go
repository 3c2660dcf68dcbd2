package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/parlourcover/parlour/internal/domain/payment"
	"github.com/parlourcover/parlour/internal/shared/biztime"
	"github.com/parlourcover/parlour/internal/shared/mapper"
)

type PaymentDTO struct {
	ID          uint            `json:"id"`
	ApplicantID uint            `json:"applicant_id"`
	ParlourID   uint            `json:"parlour_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Date        string          `json:"date"`
	Reference   string          `json:"reference,omitempty"`
	InvoicePath string          `json:"invoice_path,omitempty"`
	RecordedBy  uint            `json:"recorded_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

type ListPaymentsResponse struct {
	Payments []*PaymentDTO `json:"payments"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// RecordPaymentResult carries the stored payment and the applicant status
// after it was applied.
type RecordPaymentResult struct {
	Payment         *PaymentDTO `json:"payment"`
	ApplicantStatus string      `json:"applicant_status"`
}

// BatchResultDTO reports a manually triggered batch job.
type BatchResultDTO struct {
	Job     string `json:"job"`
	Changed int    `json:"changed"`
}

func ToPaymentDTO(p *payment.Payment) *PaymentDTO {
	if p == nil {
		return nil
	}
	return &PaymentDTO{
		ID:          p.ID(),
		ApplicantID: p.ApplicantID(),
		ParlourID:   p.ParlourID(),
		Amount:      p.Amount(),
		Method:      p.Method().String(),
		Date:        biztime.FormatDate(p.Date()),
		Reference:   p.Reference(),
		InvoicePath: p.InvoicePath(),
		RecordedBy:  p.RecordedBy(),
		CreatedAt:   p.CreatedAt(),
	}
}

func ToPaymentDTOList(payments []*payment.Payment) []*PaymentDTO {
	return mapper.MapSlice(payments, ToPaymentDTO)
}
