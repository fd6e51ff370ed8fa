package checkout

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingSink struct {
	calls atomic.Int64
	err   error
}

func (s *countingSink) RecordSessionEvent(context.Context, SessionEvent) error {
	s.calls.Add(1)
	return s.err
}

func TestMultiSink_RecordSessionEvent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	event := SessionEvent{Kind: SessionEventCreated, SessionID: "cs_test_1"}

	t.Run("should deliver to every sink", func(t *testing.T) {
		a, b := &countingSink{}, &countingSink{}
		sink := MultiSink{a, b}

		err := sink.RecordSessionEvent(ctx, event)

		assert.NoError(t, err)
		assert.EqualValues(t, 1, a.calls.Load())
		assert.EqualValues(t, 1, b.calls.Load())
	})

	t.Run("should report a failing sink after trying the others", func(t *testing.T) {
		a := &countingSink{err: assert.AnError}
		b := &countingSink{}
		sink := MultiSink{a, b}

		err := sink.RecordSessionEvent(ctx, event)

		assert.ErrorIs(t, err, assert.AnError)
		assert.EqualValues(t, 1, b.calls.Load())
	})

	t.Run("empty sink list is a no-op", func(t *testing.T) {
		assert.NoError(t, MultiSink{}.RecordSessionEvent(ctx, event))
	})
}
