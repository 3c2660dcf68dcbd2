package events

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlourcover/parlour/internal/shared/logger"
)

func TestInMemoryEventDispatcher_DeliversToSubscribers(t *testing.T) {
	d := NewInMemoryEventDispatcher(10, logger.NewLogger())

	var handled atomic.Int32
	require.NoError(t, d.Subscribe("payment.recorded", NewSimpleEventHandler("payment.recorded", func(e DomainEvent) error {
		handled.Add(1)
		return nil
	})))

	require.NoError(t, d.Start())
	require.NoError(t, d.PublishAll([]DomainEvent{
		NewBaseEvent("payment.recorded", "1", time.Now()),
		NewBaseEvent("payment.recorded", "2", time.Now()),
		NewBaseEvent("applicant.lapsed", "3", time.Now()),
	}))
	require.NoError(t, d.Stop())

	assert.Equal(t, int32(2), handled.Load())
}

func TestInMemoryEventDispatcher_PublishBeforeStart(t *testing.T) {
	d := NewInMemoryEventDispatcher(1, logger.NewLogger())
	err := d.Publish(NewBaseEvent("payment.recorded", "1", time.Now()))
	assert.Error(t, err)
}
