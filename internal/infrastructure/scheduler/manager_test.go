package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlourcover/parlour/internal/shared/logger"
)

func TestSchedulerManager_Register(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewLogger())
	require.NoError(t, err)
	defer m.Stop()

	noop := BatchJobFunc(func(ctx context.Context) (int, error) { return 0, nil })

	require.NoError(t, m.RegisterPaymentStatusJob("0 1 * * *", noop))
	require.NoError(t, m.RegisterWaitingPeriodJob("30 1 * * *", noop))
	assert.Len(t, m.Jobs(), 2)

	err = m.RegisterPaymentStatusJob("not a cron", noop)
	assert.Error(t, err)
}

func TestSchedulerManager_RunSwallowsErrors(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewLogger())
	require.NoError(t, err)
	defer m.Stop()

	calls := 0
	m.run(context.Background(), "failing", BatchJobFunc(func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("boom")
	}))
	assert.Equal(t, 1, calls)
}

func TestSchedulerManager_StartStop(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewLogger())
	require.NoError(t, err)

	m.Start()
	assert.True(t, m.IsStarted())
	require.NoError(t, m.Stop())
	assert.False(t, m.IsStarted())
}
