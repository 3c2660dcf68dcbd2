package usecases

import (
	"context"
	"fmt"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/membership/dto"
	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/domain/plan"
	"github.com/parlourcover/parlour/internal/shared/biztime"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

// AgeLimitRecomputer re-evaluates stored age_limit_exceeded flags against the
// current plan bounds.
type AgeLimitRecomputer struct {
	applicantRepo membership.ApplicantRepository
	mainRepo      membership.MainMemberRepository
	extendedRepo  membership.ExtendedMemberRepository
	planRepo      plan.Repository
	metrics       Metrics
	logger        logger.Interface
}

func NewAgeLimitRecomputer(
	applicantRepo membership.ApplicantRepository,
	mainRepo membership.MainMemberRepository,
	extendedRepo membership.ExtendedMemberRepository,
	planRepo plan.Repository,
	metrics Metrics,
	logger logger.Interface,
) *AgeLimitRecomputer {
	return &AgeLimitRecomputer{
		applicantRepo: applicantRepo,
		mainRepo:      mainRepo,
		extendedRepo:  extendedRepo,
		planRepo:      planRepo,
		metrics:       metrics,
		logger:        logger,
	}
}

// Recompute evaluates every active member of a and persists changed flags.
func (r *AgeLimitRecomputer) Recompute(ctx context.Context, a *membership.Applicant, p *plan.Plan) (evaluated, changed int, err error) {
	now := biztime.NowUTC()
	loc := biztime.Location()

	mains, err := r.mainRepo.ListActiveByApplicantID(ctx, a.ID())
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list main members: %w", err)
	}
	for _, m := range mains {
		diff, err := membership.EvaluateMainMember(m, p, now, loc)
		if err != nil {
			return evaluated, changed, fmt.Errorf("main member %d: %w", m.ID(), err)
		}
		evaluated++
		r.metrics.ObserveAgeLimit(m.AgeLimitExceeded())
		if !diff {
			continue
		}
		if err := r.mainRepo.Update(ctx, m); err != nil {
			return evaluated, changed, fmt.Errorf("failed to update main member %d: %w", m.ID(), err)
		}
		changed++
	}

	members, err := r.extendedRepo.ListActiveByApplicantID(ctx, a.ID())
	if err != nil {
		return evaluated, changed, fmt.Errorf("failed to list extended members: %w", err)
	}
	for _, m := range members {
		diff, err := membership.EvaluateExtendedMember(m, p, now, loc)
		if err != nil {
			return evaluated, changed, fmt.Errorf("extended member %d: %w", m.ID(), err)
		}
		evaluated++
		r.metrics.ObserveAgeLimit(m.AgeLimitExceeded())
		if !diff {
			continue
		}
		if err := r.extendedRepo.Update(ctx, m); err != nil {
			return evaluated, changed, fmt.Errorf("failed to update extended member %d: %w", m.ID(), err)
		}
		changed++
	}
	return evaluated, changed, nil
}

// RecomputeForPlan re-evaluates every active applicant on the plan and
// returns the number of flags that changed.
func (r *AgeLimitRecomputer) RecomputeForPlan(ctx context.Context, planID uint) (int, error) {
	p, err := r.planRepo.GetByID(ctx, planID)
	if err != nil {
		return 0, fmt.Errorf("failed to get plan: %w", err)
	}
	applicants, err := r.applicantRepo.ListActiveByPlanID(ctx, planID)
	if err != nil {
		return 0, fmt.Errorf("failed to list applicants: %w", err)
	}

	total := 0
	for _, a := range applicants {
		_, changed, err := r.Recompute(ctx, a, p)
		if err != nil {
			return total, fmt.Errorf("applicant %d: %w", a.ID(), err)
		}
		total += changed
	}

	r.logger.Infow("age limits recomputed for plan",
		"plan_id", planID,
		"applicants", len(applicants),
		"changed", total,
	)
	return total, nil
}

// RecomputeAgeLimitUseCase re-evaluates one applicant on request.
type RecomputeAgeLimitUseCase struct {
	applicantRepo membership.ApplicantRepository
	planRepo      plan.Repository
	recomputer    *AgeLimitRecomputer
	txManager     TransactionRunner
	logger        logger.Interface
}

func NewRecomputeAgeLimitUseCase(
	applicantRepo membership.ApplicantRepository,
	planRepo plan.Repository,
	recomputer *AgeLimitRecomputer,
	txManager TransactionRunner,
	logger logger.Interface,
) *RecomputeAgeLimitUseCase {
	return &RecomputeAgeLimitUseCase{
		applicantRepo: applicantRepo,
		planRepo:      planRepo,
		recomputer:    recomputer,
		txManager:     txManager,
		logger:        logger,
	}
}

func (uc *RecomputeAgeLimitUseCase) Execute(ctx context.Context, actor common.Actor, applicantID uint) (*dto.AgeLimitResultDTO, error) {
	a, err := loadActiveApplicant(ctx, uc.applicantRepo, actor, applicantID)
	if err != nil {
		return nil, err
	}
	p, err := loadPlan(ctx, uc.planRepo, a.PlanID())
	if err != nil {
		return nil, err
	}

	result := &dto.AgeLimitResultDTO{}
	err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		evaluated, changed, err := uc.recomputer.Recompute(ctx, a, p)
		result.Evaluated, result.Changed = evaluated, changed
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to recompute age limits", "error", err, "applicant_id", a.ID())
		return nil, common.TranslateError(err)
	}

	uc.logger.Infow("age limits recomputed",
		"applicant_id", a.ID(),
		"evaluated", result.Evaluated,
		"changed", result.Changed,
	)
	return result, nil
}
