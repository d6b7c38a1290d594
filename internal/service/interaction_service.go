package service

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/consts"
	"Newsroom/internal/repository"
	"context"
	"errors"
	log "log/slog"
)

type InteractionService interface {
	ToggleLike(ctx context.Context, userID, newsID uint64) (*dto.ToggleDTO, error)
	ToggleRepost(ctx context.Context, userID, newsID uint64) (*dto.ToggleDTO, error)
	ToggleBookmark(ctx context.Context, userID, newsID uint64) (*dto.ToggleDTO, error)
	ToggleFollow(ctx context.Context, userID, newsID uint64) (*dto.ToggleDTO, error)
}

type interactionServiceImpl struct {
	interactionRepo repository.InteractionRepo
}

func NewInteractionService(interactionRepo repository.InteractionRepo) InteractionService {
	return &interactionServiceImpl{
		interactionRepo: interactionRepo,
	}
}

func (s *interactionServiceImpl) ToggleLike(ctx context.Context, userID, newsID uint64) (*dto.ToggleDTO, error) {
	return toggleOnce(ctx, "like", func() (*repository.ToggleOutcome, error) {
		return s.interactionRepo.ToggleInteraction(ctx, userID, newsID, model.InteractionLike)
	})
}

func (s *interactionServiceImpl) ToggleRepost(ctx context.Context, userID, newsID uint64) (*dto.ToggleDTO, error) {
	return toggleOnce(ctx, "repost", func() (*repository.ToggleOutcome, error) {
		return s.interactionRepo.ToggleInteraction(ctx, userID, newsID, model.InteractionRepost)
	})
}

func (s *interactionServiceImpl) ToggleBookmark(ctx context.Context, userID, newsID uint64) (*dto.ToggleDTO, error) {
	return toggleOnce(ctx, "bookmark", func() (*repository.ToggleOutcome, error) {
		return s.interactionRepo.ToggleBookmark(ctx, userID, newsID)
	})
}

// ToggleFollow 关注没有计数，Count 恒为 0
func (s *interactionServiceImpl) ToggleFollow(ctx context.Context, userID, newsID uint64) (*dto.ToggleDTO, error) {
	return toggleOnce(ctx, "follow", func() (*repository.ToggleOutcome, error) {
		added, err := s.interactionRepo.ToggleFollow(ctx, userID, newsID)
		if err != nil {
			return nil, err
		}
		return &repository.ToggleOutcome{Added: added}, nil
	})
}

// toggleOnce 插入冲突说明并发请求刚写入了同一条边，重读一次即可翻转回去
func toggleOnce(ctx context.Context, kind string, fn func() (*repository.ToggleOutcome, error)) (*dto.ToggleDTO, error) {
	out, err := fn()
	if errors.Is(err, repository.ErrEdgeConflict) {
		log.DebugContext(ctx, "toggle conflicted, retrying once", "kind", kind)
		out, err = fn()
	}
	if err != nil {
		return nil, translateRepoErr(err)
	}
	return &dto.ToggleDTO{State: toggleState(out.Added), Count: out.Count}, nil
}

func toggleState(added bool) string {
	if added {
		return consts.ToggleAdded
	}
	return consts.ToggleRemoved
}
