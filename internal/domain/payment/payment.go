package payment

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/parlourcover/parlour/internal/domain/payment/valueobjects"
	"github.com/parlourcover/parlour/internal/shared/biztime"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrInvalidAmount   = errors.New("amount must be positive")
)

// Payment is a premium payment received for an applicant.
type Payment struct {
	id          uint
	applicantID uint
	parlourID   uint
	amount      decimal.Decimal
	method      vo.PaymentMethod
	date        time.Time
	reference   string
	invoicePath string
	recordedBy  uint
	createdAt   time.Time
	updatedAt   time.Time
}

func NewPayment(applicantID, parlourID uint, amount decimal.Decimal, method vo.PaymentMethod, date time.Time, reference string, recordedBy uint) (*Payment, error) {
	if applicantID == 0 {
		return nil, fmt.Errorf("applicant ID is required")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, amount.String())
	}
	if !method.IsValid() {
		return nil, fmt.Errorf("invalid payment method: %s", method)
	}
	if date.IsZero() {
		date = biztime.Today()
	}

	now := biztime.NowUTC()
	return &Payment{
		applicantID: applicantID,
		parlourID:   parlourID,
		amount:      amount.Round(2),
		method:      method,
		date:        date,
		reference:   reference,
		recordedBy:  recordedBy,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructPayment(id, applicantID, parlourID uint, amount decimal.Decimal, method vo.PaymentMethod, date time.Time, reference, invoicePath string, recordedBy uint, createdAt, updatedAt time.Time) (*Payment, error) {
	if id == 0 {
		return nil, fmt.Errorf("payment ID cannot be zero")
	}
	return &Payment{
		id:          id,
		applicantID: applicantID,
		parlourID:   parlourID,
		amount:      amount,
		method:      method,
		date:        date,
		reference:   reference,
		invoicePath: invoicePath,
		recordedBy:  recordedBy,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (p *Payment) ID() uint                 { return p.id }
func (p *Payment) ApplicantID() uint        { return p.applicantID }
func (p *Payment) ParlourID() uint          { return p.parlourID }
func (p *Payment) Amount() decimal.Decimal  { return p.amount }
func (p *Payment) Method() vo.PaymentMethod { return p.method }
func (p *Payment) Date() time.Time          { return p.date }
func (p *Payment) Reference() string        { return p.reference }
func (p *Payment) InvoicePath() string      { return p.invoicePath }
func (p *Payment) RecordedBy() uint         { return p.recordedBy }
func (p *Payment) CreatedAt() time.Time     { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time     { return p.updatedAt }

func (p *Payment) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("payment ID already set")
	}
	if id == 0 {
		return fmt.Errorf("payment ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Payment) SetInvoicePath(path string) {
	p.invoicePath = path
	p.updatedAt = biztime.NowUTC()
}
