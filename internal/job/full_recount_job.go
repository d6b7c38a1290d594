package job

import (
	"Newsroom/internal/pkg/logger"
	"Newsroom/internal/service"
	"context"
	"errors"
	log "log/slog"

	"github.com/google/uuid"
)

type FullRecountJob struct {
	counterSvc service.CounterService
}

func NewFullRecountJob(counterSvc service.CounterService) *FullRecountJob {
	return &FullRecountJob{
		counterSvc: counterSvc,
	}
}

func (s *FullRecountJob) Run() {
	traceID := "job-full-recount-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	summary, err := s.counterSvc.RecountAll(ctx)
	if err != nil {
		if errors.Is(err, service.ErrRecountRunning) {
			log.InfoContext(ctx, "full recount skipped, another run holds the lock")
			return
		}
		log.ErrorContext(ctx, "full recount failed", "err", err)
		return
	}
	if len(summary.Failed) > 0 {
		log.WarnContext(ctx, "full recount left failures", "failed", summary.Failed)
	}
}
