package usecases

import "context"

type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MemberFlagRecomputer re-evaluates the age-limit flags of every active
// member on a plan and returns how many flags changed.
type MemberFlagRecomputer interface {
	RecomputeForPlan(ctx context.Context, planID uint) (int, error)
}
