package service

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/pkg/consts"
	"Newsroom/internal/pkg/redis"
	"Newsroom/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	dirtyProcessingKey = consts.NewsCounterDirtyKey + ":processing"
	recountLockTTL     = 10 * time.Minute
)

type CounterService interface {
	Recount(ctx context.Context, newsID uint64) (*repository.RecountResult, error)
	MarkDirty(ctx context.Context, newsIDs ...uint64)
	RecountDirty(ctx context.Context) (int, error)
	RecountAll(ctx context.Context) (*dto.RecountSummaryDTO, error)
	CleanupOrphans(ctx context.Context) (*repository.OrphanReport, error)
}

type counterServiceImpl struct {
	counterRepo repository.CounterRepo
	newsRepo    repository.NewsRepo
}

func NewCounterService(counterRepo repository.CounterRepo, newsRepo repository.NewsRepo) CounterService {
	return &counterServiceImpl{
		counterRepo: counterRepo,
		newsRepo:    newsRepo,
	}
}

func (s *counterServiceImpl) Recount(ctx context.Context, newsID uint64) (*repository.RecountResult, error) {
	result, err := s.counterRepo.Recount(ctx, newsID)
	if err != nil {
		return nil, translateRepoErr(err)
	}
	if result.Corrected {
		log.WarnContext(ctx, "counter drift corrected", "news_id", newsID, "before", result.Before, "after", result.After)
	}
	return result, nil
}

// MarkDirty 登记待重算的内容，失败只记录日志
func (s *counterServiceImpl) MarkDirty(ctx context.Context, newsIDs ...uint64) {
	if len(newsIDs) == 0 || redis.Rdb == nil {
		return
	}
	members := make([]string, len(newsIDs))
	for i, id := range newsIDs {
		members[i] = strconv.FormatUint(id, 10)
	}
	if err := redis.AddToSet(ctx, consts.NewsCounterDirtyKey, members...); err != nil {
		log.WarnContext(ctx, "mark counters dirty failed", "count", len(newsIDs), "err", err)
	}
}

// RecountDirty 取出脏集合并逐个重算，返回处理数量
// 上次中断遗留的 processing 集合先处理
func (s *counterServiceImpl) RecountDirty(ctx context.Context) (int, error) {
	lockValue := uuid.NewString()
	ok, err := redis.TryLock(ctx, consts.NewsDirtyRecountLock, lockValue, recountLockTTL, 1)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrRecountRunning
	}
	defer func() {
		_ = redis.UnLock(context.WithoutCancel(ctx), consts.NewsDirtyRecountLock, lockValue)
	}()

	processed, err := s.drainProcessing(ctx)
	if err != nil {
		return processed, err
	}

	renamed, err := redis.Rename(ctx, consts.NewsCounterDirtyKey, dirtyProcessingKey)
	if err != nil || !renamed {
		return processed, err
	}

	n, err := s.drainProcessing(ctx)
	return processed + n, err
}

func (s *counterServiceImpl) drainProcessing(ctx context.Context) (int, error) {
	members, err := redis.GetSet(ctx, dirtyProcessingKey)
	if err != nil || len(members) == 0 {
		return 0, err
	}

	var retry []uint64
	processed := 0
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			continue
		}
		if _, err = s.counterRepo.Recount(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNewsAbsent) {
				continue
			}
			log.ErrorContext(ctx, "recount dirty news failed", "news_id", id, "err", err)
			retry = append(retry, id)
			continue
		}
		processed++
	}

	if err = redis.DeleteKey(ctx, dirtyProcessingKey); err != nil {
		return processed, err
	}
	s.MarkDirty(ctx, retry...)
	return processed, nil
}

// RecountAll 按 id 分批全量重算
func (s *counterServiceImpl) RecountAll(ctx context.Context) (*dto.RecountSummaryDTO, error) {
	lockValue := uuid.NewString()
	ok, err := redis.TryLock(ctx, consts.NewsFullRecountLock, lockValue, recountLockTTL, 1)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRecountRunning
	}
	defer func() {
		_ = redis.UnLock(context.WithoutCancel(ctx), consts.NewsFullRecountLock, lockValue)
	}()

	summary := &dto.RecountSummaryDTO{Failed: []uint64{}}
	var afterID uint64
	for {
		if err = ctx.Err(); err != nil {
			return summary, err
		}

		ids, err := s.newsRepo.ListNewsIDsAfter(ctx, afterID, consts.RecountBatchSize)
		if err != nil {
			return summary, err
		}
		if len(ids) == 0 {
			break
		}

		for _, id := range ids {
			result, err := s.counterRepo.Recount(ctx, id)
			if err != nil {
				if !errors.Is(err, repository.ErrNewsAbsent) {
					log.ErrorContext(ctx, "full recount failed", "news_id", id, "err", err)
					summary.Failed = append(summary.Failed, id)
				}
				continue
			}
			summary.Scanned++
			if result.Corrected {
				summary.Corrected++
			}
		}
		afterID = ids[len(ids)-1]
	}

	log.InfoContext(ctx, "full recount finished", "scanned", summary.Scanned, "corrected", summary.Corrected, "failed", len(summary.Failed))
	return summary, nil
}

// CleanupOrphans 删除悬挂边后立即重算受影响内容，失败的留给脏集合
func (s *counterServiceImpl) CleanupOrphans(ctx context.Context) (*repository.OrphanReport, error) {
	report, err := s.counterRepo.DeleteOrphans(ctx)
	if err != nil {
		return nil, err
	}

	var pending []uint64
	for _, id := range report.AffectedNewsIDs {
		if _, err = s.counterRepo.Recount(ctx, id); err != nil && !errors.Is(err, repository.ErrNewsAbsent) {
			pending = append(pending, id)
		}
	}
	s.MarkDirty(ctx, pending...)
	return report, nil
}
