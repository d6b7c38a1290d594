package kafka

import (
	"Newsroom/internal/pkg/logger"
	"context"
	"fmt"
	log "log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

const (
	batchSize    = 32
	batchTimeout = 1 * time.Second
)

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessageBatch 拉取一批消息并执行业务逻辑
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				if len(batch) > 0 {
					processBatch(session, batch, logic)
				}
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch 不同 key 并发处理，同一 key 按 offset 顺序处理
func processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	groups := make(map[string][]*sarama.ConsumerMessage)
	order := make([]string, 0)
	for _, m := range messages {
		key := string(m.Key)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], m)
	}

	var wg sync.WaitGroup
	for _, key := range order {
		wg.Add(1)
		go func(group []*sarama.ConsumerMessage) {
			defer wg.Done()
			for _, m := range group {
				if !processWithRetry(session.Context(), m, logic) {
					return
				}
			}
		}(groups[key])
	}
	wg.Wait()

	if session.Context().Err() != nil {
		return
	}
	lastMsg := messages[len(messages)-1]
	session.MarkMessage(lastMsg, "")
	session.Commit()
}

// processWithRetry 失败时指数退避重试，直到成功或会话结束
func processWithRetry(ctx context.Context, m *sarama.ConsumerMessage, logic LogicFunc) bool {
	traceID := fmt.Sprintf("kafka-%s-%d-%d", m.Topic, m.Partition, m.Offset)
	msgCtx := context.WithValue(ctx, logger.TraceIDKey, traceID)

	retryInterval := 100 * time.Millisecond
	for {
		err := logic(msgCtx, m)
		if err == nil {
			return true
		}

		log.ErrorContext(msgCtx, "process message error", "err", err)
		select {
		case <-ctx.Done():
			return false
		case <-time.After(retryInterval):
		}

		retryInterval *= 2
		if retryInterval > 5*time.Second {
			retryInterval = 5 * time.Second
		}
	}
}
