package job

import (
	"Newsroom/internal/pkg/logger"
	"Newsroom/internal/service"
	"context"
	"errors"
	log "log/slog"

	"github.com/google/uuid"
)

// RecountJob 重算级联删除和悬挂边清理登记的脏内容
type RecountJob struct {
	counterSvc service.CounterService
}

func NewRecountJob(counterSvc service.CounterService) *RecountJob {
	return &RecountJob{
		counterSvc: counterSvc,
	}
}

func (s *RecountJob) Run() {
	traceID := "job-recount-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	n, err := s.counterSvc.RecountDirty(ctx)
	if err != nil {
		if errors.Is(err, service.ErrRecountRunning) {
			log.InfoContext(ctx, "dirty recount skipped, another run holds the lock")
			return
		}
		log.ErrorContext(ctx, "dirty recount failed", "processed", n, "err", err)
		return
	}
	if n > 0 {
		log.InfoContext(ctx, "dirty recount finished", "processed", n)
	}
}
