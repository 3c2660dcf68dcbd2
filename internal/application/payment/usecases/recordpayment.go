package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/payment/dto"
	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/domain/parlour"
	"github.com/parlourcover/parlour/internal/domain/payment"
	vo "github.com/parlourcover/parlour/internal/domain/payment/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/shared/events"
	"github.com/parlourcover/parlour/internal/infrastructure/document"
	"github.com/parlourcover/parlour/internal/shared/biztime"
	apperrors "github.com/parlourcover/parlour/internal/shared/errors"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type RecordPaymentCommand struct {
	Actor       common.Actor
	ApplicantID uint
	Amount      decimal.Decimal
	Method      string
	Date        *time.Time
	Reference   string
}

// RecordPaymentUseCase stores a premium payment, refreshes the applicant
// status and writes the invoice.
type RecordPaymentUseCase struct {
	paymentRepo   payment.Repository
	applicantRepo membership.ApplicantRepository
	mainRepo      membership.MainMemberRepository
	parlourRepo   parlour.Repository
	renderer      InvoiceRenderer
	publisher     events.EventPublisher
	txManager     TransactionRunner
	metrics       Metrics
	logger        logger.Interface
}

func NewRecordPaymentUseCase(
	paymentRepo payment.Repository,
	applicantRepo membership.ApplicantRepository,
	mainRepo membership.MainMemberRepository,
	parlourRepo parlour.Repository,
	renderer InvoiceRenderer,
	publisher events.EventPublisher,
	txManager TransactionRunner,
	metrics Metrics,
	logger logger.Interface,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		paymentRepo:   paymentRepo,
		applicantRepo: applicantRepo,
		mainRepo:      mainRepo,
		parlourRepo:   parlourRepo,
		renderer:      renderer,
		publisher:     publisher,
		txManager:     txManager,
		metrics:       metrics,
		logger:        logger,
	}
}

func (uc *RecordPaymentUseCase) Execute(ctx context.Context, cmd RecordPaymentCommand) (*dto.RecordPaymentResult, error) {
	a, err := loadApplicant(ctx, uc.applicantRepo, cmd.Actor, cmd.ApplicantID)
	if err != nil {
		return nil, err
	}
	if !a.IsActive() {
		return nil, common.TranslateError(fmt.Errorf("%w: applicant %d is %s", membership.ErrApplicantNotActive, a.ID(), a.State()))
	}

	method, err := vo.NewPaymentMethod(cmd.Method)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error()).WithField("method")
	}
	var date time.Time
	if cmd.Date != nil {
		date = biztime.DateOf(*cmd.Date)
		if date.After(biztime.Today()) {
			return nil, apperrors.NewValidationError("payment date cannot be in the future").WithField("date")
		}
	}

	p, err := payment.NewPayment(a.ID(), a.ParlourID(), cmd.Amount, method, date, cmd.Reference, cmd.Actor.ConsultantID)
	if err != nil {
		return nil, common.TranslateError(err)
	}

	var effects []membership.Effect
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.paymentRepo.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}
		latest, err := uc.paymentRepo.LatestDateByApplicantID(ctx, a.ID())
		if err != nil {
			return fmt.Errorf("failed to read latest payment: %w", err)
		}
		changed, fx, err := membership.ApplyDerivedStatus(a, latest, biztime.NowUTC(), biztime.Location())
		if err != nil {
			return err
		}
		effects = fx
		if changed {
			if err := uc.applicantRepo.Update(ctx, a); err != nil {
				return fmt.Errorf("failed to update applicant status: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to record payment", "error", err, "applicant_id", a.ID())
		return nil, common.TranslateError(err)
	}

	uc.attachInvoice(ctx, a, p)
	uc.metrics.IncPaymentRecorded()

	uc.publish(payment.NewPaymentRecordedEvent(p, a.PolicyNum()))
	for _, e := range effects {
		if pe, ok := e.(membership.PublishEvent); ok {
			uc.publish(pe.Event)
		}
	}

	uc.logger.Infow("payment recorded",
		"payment_id", p.ID(),
		"applicant_id", a.ID(),
		"amount", p.Amount().StringFixed(2),
		"status", a.Status().String(),
	)
	return &dto.RecordPaymentResult{
		Payment:         dto.ToPaymentDTO(p),
		ApplicantStatus: a.Status().String(),
	}, nil
}

// attachInvoice renders the invoice after commit. Failures leave the payment
// without an invoice path.
func (uc *RecordPaymentUseCase) attachInvoice(ctx context.Context, a *membership.Applicant, p *payment.Payment) {
	data := document.InvoiceData{
		PolicyNum: a.PolicyNum(),
		Amount:    p.Amount(),
		Method:    p.Method().String(),
		Date:      p.Date(),
		Reference: p.Reference(),
		PaymentID: p.ID(),
	}
	if pl, err := uc.parlourRepo.GetByID(ctx, a.ParlourID()); err == nil {
		data.ParlourName = pl.Name()
	} else {
		uc.logger.Warnw("failed to load parlour for invoice", "error", err, "parlour_id", a.ParlourID())
	}
	if mains, err := uc.mainRepo.ListActiveByApplicantID(ctx, a.ID()); err == nil && len(mains) > 0 {
		data.MainMemberName = mains[0].Identity().FullName()
	}

	path, err := uc.renderer.Invoice(data)
	if err != nil {
		uc.logger.Warnw("failed to render invoice", "error", err, "payment_id", p.ID())
		return
	}
	p.SetInvoicePath(path)
	if err := uc.paymentRepo.Update(ctx, p); err != nil {
		uc.logger.Warnw("failed to store invoice path", "error", err, "payment_id", p.ID())
	}
}

func (uc *RecordPaymentUseCase) publish(event events.DomainEvent) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(event); err != nil {
		uc.logger.Warnw("failed to publish event", "error", err, "event_type", event.GetEventType())
	}
}
