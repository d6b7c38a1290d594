package service

import (
	"Newsroom/internal/pkg/es"
	"Newsroom/internal/repository"
	"context"
	"errors"
	log "log/slog"
)

// AssetStore 对象存储中的头像、封面清理
type AssetStore interface {
	Remove(ctx context.Context, url string) error
}

type CascadeService interface {
	DeleteUser(ctx context.Context, userID uint64) (*repository.UserDeletionReport, error)
	DeleteUserByExternalID(ctx context.Context, externalID string) (*repository.UserDeletionReport, error)
	DeleteNews(ctx context.Context, newsID uint64) (*repository.NewsDeletionReport, error)
}

type cascadeServiceImpl struct {
	cascadeRepo    repository.CascadeRepo
	userRepo       repository.UserRepo
	assets         AssetStore
	searchIndex    es.NewsRepo
	counterService CounterService
}

func NewCascadeService(
	cascadeRepo repository.CascadeRepo,
	userRepo repository.UserRepo,
	assets AssetStore,
	searchIndex es.NewsRepo,
	counterService CounterService,
) CascadeService {
	return &cascadeServiceImpl{
		cascadeRepo:    cascadeRepo,
		userRepo:       userRepo,
		assets:         assets,
		searchIndex:    searchIndex,
		counterService: counterService,
	}
}

func (s *cascadeServiceImpl) DeleteUser(ctx context.Context, userID uint64) (*repository.UserDeletionReport, error) {
	report, err := s.cascadeRepo.DeleteUser(ctx, userID)
	if err != nil {
		return nil, translateRepoErr(err)
	}

	log.InfoContext(ctx, "user cascade deleted",
		"user_id", userID,
		"comments", report.Comments,
		"comment_likes", report.CommentLikes,
		"bookmarks", report.Bookmarks,
		"interactions", report.Interactions,
		"follows", report.Follows,
		"reports", report.Reports,
	)

	s.removeAsset(ctx, report.ProfilePicture)
	s.counterService.MarkDirty(ctx, report.AffectedNewsIDs...)
	return report, nil
}

// DeleteUserByExternalID 重复投递的删除事件找不到用户，视为已完成
func (s *cascadeServiceImpl) DeleteUserByExternalID(ctx context.Context, externalID string) (*repository.UserDeletionReport, error) {
	if externalID == "" {
		return nil, ErrParamInvalid
	}

	user, err := s.userRepo.GetUserByExternalID(ctx, externalID)
	if errors.Is(err, repository.ErrUserAbsent) {
		log.InfoContext(ctx, "user already gone, skip cascade", "external_id", externalID)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	report, err := s.DeleteUser(ctx, user.ID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, nil
	}
	return report, err
}

func (s *cascadeServiceImpl) DeleteNews(ctx context.Context, newsID uint64) (*repository.NewsDeletionReport, error) {
	report, err := s.cascadeRepo.DeleteNews(ctx, newsID)
	if err != nil {
		return nil, translateRepoErr(err)
	}

	log.InfoContext(ctx, "news cascade deleted",
		"news_id", newsID,
		"comments", report.Comments,
		"interactions", report.Interactions,
		"bookmarks", report.Bookmarks,
		"follows", report.Follows,
	)

	if s.searchIndex != nil {
		if err = s.searchIndex.DeleteNews(ctx, newsID); err != nil {
			log.WarnContext(ctx, "remove news from search index failed", "news_id", newsID, "err", err)
		}
	}
	s.removeAsset(ctx, report.CoverImage)
	return report, nil
}

// removeAsset 资源清理失败不影响已提交的删除
func (s *cascadeServiceImpl) removeAsset(ctx context.Context, url string) {
	if url == "" || s.assets == nil {
		return
	}
	if err := s.assets.Remove(ctx, url); err != nil {
		log.WarnContext(ctx, "asset cleanup failed", "url", url, "err", err)
	}
}
