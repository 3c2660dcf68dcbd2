package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

const JobWaitingPeriod = "waiting-period"

// BatchMetrics records batch job runs.
type BatchMetrics interface {
	ObserveBatchJob(job string, start time.Time, changed, failed int)
}

// CountdownWaitingPeriodsUseCase takes one day off the waiting period of every
// extended member still waiting. It is meant to run once a day. Each member is
// updated in its own savepoint so a failed update is rolled back and skipped.
type CountdownWaitingPeriodsUseCase struct {
	extendedRepo membership.ExtendedMemberRepository
	txManager    BatchTransactionRunner
	metrics      BatchMetrics
	logger       logger.Interface
}

func NewCountdownWaitingPeriodsUseCase(
	extendedRepo membership.ExtendedMemberRepository,
	txManager BatchTransactionRunner,
	metrics BatchMetrics,
	logger logger.Interface,
) *CountdownWaitingPeriodsUseCase {
	return &CountdownWaitingPeriodsUseCase{
		extendedRepo: extendedRepo,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
	}
}

func (uc *CountdownWaitingPeriodsUseCase) Execute(ctx context.Context) (int, error) {
	start := time.Now()
	var changed, failed int

	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		members, err := uc.extendedRepo.ListInWaitingPeriod(ctx)
		if err != nil {
			return fmt.Errorf("failed to list members in waiting period: %w", err)
		}
		for _, m := range members {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !m.DecrementWaitingPeriod() {
				continue
			}
			err := uc.txManager.RunInSavepoint(ctx, func(ctx context.Context) error {
				return uc.extendedRepo.Update(ctx, m)
			})
			if err != nil {
				failed++
				uc.logger.Warnw("failed to count down waiting period", "error", err, "member_id", m.ID())
				continue
			}
			changed++
		}
		return nil
	})
	uc.metrics.ObserveBatchJob(JobWaitingPeriod, start, changed, failed)
	if err != nil {
		uc.logger.Errorw("waiting period batch failed", "error", err)
		return 0, err
	}

	uc.logger.Infow("waiting periods counted down", "changed", changed, "failed", failed)
	return changed, nil
}
