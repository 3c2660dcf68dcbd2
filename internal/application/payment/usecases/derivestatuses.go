package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/domain/payment"
	"github.com/parlourcover/parlour/internal/domain/shared/events"
	"github.com/parlourcover/parlour/internal/shared/biztime"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

const JobPaymentStatus = "payment-status"

// DerivePaymentStatusesUseCase recomputes the payment status of every active
// applicant. Applicants are processed one after another and the changes are
// committed together. Each applicant runs in its own savepoint; one that
// fails is rolled back, logged and skipped.
type DerivePaymentStatusesUseCase struct {
	applicantRepo membership.ApplicantRepository
	paymentRepo   payment.Repository
	publisher     events.EventPublisher
	txManager     BatchTransactionRunner
	metrics       Metrics
	logger        logger.Interface
	now           func() time.Time
}

func NewDerivePaymentStatusesUseCase(
	applicantRepo membership.ApplicantRepository,
	paymentRepo payment.Repository,
	publisher events.EventPublisher,
	txManager BatchTransactionRunner,
	metrics Metrics,
	logger logger.Interface,
) *DerivePaymentStatusesUseCase {
	return &DerivePaymentStatusesUseCase{
		applicantRepo: applicantRepo,
		paymentRepo:   paymentRepo,
		publisher:     publisher,
		txManager:     txManager,
		metrics:       metrics,
		logger:        logger,
		now:           biztime.NowUTC,
	}
}

// Execute satisfies scheduler.BatchJob and returns the number of applicants
// whose status changed.
func (uc *DerivePaymentStatusesUseCase) Execute(ctx context.Context) (int, error) {
	start := time.Now()
	now := uc.now()

	var (
		changed int
		failed  int
		lapses  []events.DomainEvent
	)
	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		applicants, err := uc.applicantRepo.ListActive(ctx)
		if err != nil {
			return fmt.Errorf("failed to list active applicants: %w", err)
		}

		for _, a := range applicants {
			if err := ctx.Err(); err != nil {
				return err
			}
			var (
				ok      bool
				effects []membership.Effect
			)
			err := uc.txManager.RunInSavepoint(ctx, func(ctx context.Context) error {
				var err error
				ok, effects, err = uc.derive(ctx, a, now)
				return err
			})
			if err != nil {
				failed++
				uc.logger.Warnw("failed to derive payment status",
					"error", err,
					"applicant_id", a.ID(),
					"policy_num", a.PolicyNum(),
				)
				continue
			}
			if ok {
				changed++
			}
			for _, e := range effects {
				if pe, isEvent := e.(membership.PublishEvent); isEvent {
					lapses = append(lapses, pe.Event)
				}
			}
		}
		return nil
	})
	uc.metrics.ObserveBatchJob(JobPaymentStatus, start, changed, failed)
	if err != nil {
		uc.logger.Errorw("payment status batch failed", "error", err)
		return 0, err
	}

	if uc.publisher != nil {
		for _, e := range lapses {
			if err := uc.publisher.Publish(e); err != nil {
				uc.logger.Warnw("failed to publish lapse event", "error", err, "aggregate_id", e.GetAggregateID())
			}
		}
	}

	uc.logger.Infow("payment statuses derived",
		"changed", changed,
		"failed", failed,
		"lapsed", len(lapses),
		"duration", time.Since(start),
	)
	return changed, nil
}

func (uc *DerivePaymentStatusesUseCase) derive(ctx context.Context, a *membership.Applicant, now time.Time) (bool, []membership.Effect, error) {
	latest, err := uc.paymentRepo.LatestDateByApplicantID(ctx, a.ID())
	if err != nil {
		return false, nil, fmt.Errorf("failed to read latest payment: %w", err)
	}
	changed, effects, err := membership.ApplyDerivedStatus(a, latest, now, biztime.Location())
	if err != nil || !changed {
		return false, nil, err
	}
	if err := uc.applicantRepo.Update(ctx, a); err != nil {
		return false, nil, fmt.Errorf("failed to update applicant: %w", err)
	}
	return true, effects, nil
}
