package kafka

import (
	"Newsroom/internal/pkg/logger"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	sarama.ConsumerGroupSession

	ctx     context.Context
	mu      sync.Mutex
	marked  []int64
	commits int
}

func (s *fakeSession) Context() context.Context { return s.ctx }

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked = append(s.marked, msg.Offset)
}

func (s *fakeSession) Commit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commits++
}

func TestProcessBatch_OrdersWithinKey(t *testing.T) {
	session := &fakeSession{ctx: t.Context()}
	msgs := []*sarama.ConsumerMessage{
		{Key: []byte("a"), Offset: 1},
		{Key: []byte("b"), Offset: 2},
		{Key: []byte("a"), Offset: 3},
		{Key: []byte("b"), Offset: 4},
		{Key: []byte("a"), Offset: 5},
	}

	var mu sync.Mutex
	seen := make(map[string][]int64)
	processBatch(session, msgs, func(_ context.Context, m *sarama.ConsumerMessage) error {
		mu.Lock()
		defer mu.Unlock()
		seen[string(m.Key)] = append(seen[string(m.Key)], m.Offset)
		return nil
	})

	assert.Equal(t, []int64{1, 3, 5}, seen["a"])
	assert.Equal(t, []int64{2, 4}, seen["b"])
	assert.Equal(t, []int64{5}, session.marked)
	assert.Equal(t, 1, session.commits)
}

func TestProcessWithRetry_RetriesUntilSuccess(t *testing.T) {
	msg := &sarama.ConsumerMessage{Topic: "t", Partition: 2, Offset: 7}
	calls := 0
	var traceID string

	ok := processWithRetry(t.Context(), msg, func(ctx context.Context, _ *sarama.ConsumerMessage) error {
		calls++
		traceID, _ = ctx.Value(logger.TraceIDKey).(string)
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.True(t, ok)
	assert.Equal(t, 3, calls)
	assert.Equal(t, "kafka-t-2-7", traceID)
}

func TestProcessBatch_StopsWhenSessionEnds(t *testing.T) {
	ctx, cancel := context.WithTimeout(t.Context(), 150*time.Millisecond)
	defer cancel()
	session := &fakeSession{ctx: ctx}

	processBatch(session, []*sarama.ConsumerMessage{{Offset: 1}}, func(context.Context, *sarama.ConsumerMessage) error {
		return errors.New("always")
	})
	assert.Empty(t, session.marked)
	assert.Zero(t, session.commits)
}
