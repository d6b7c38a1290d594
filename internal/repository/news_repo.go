package repository

import (
	"Newsroom/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NewsRepo interface {
	CreateNews(ctx context.Context, news *model.News) error
	UpsertExternalNews(ctx context.Context, news *model.News) (*model.News, error)
	GetNewsByID(ctx context.Context, id uint64) (*model.News, error)
	GetNewsByIDs(ctx context.Context, ids []uint64) ([]*model.News, error)
	ListNews(ctx context.Context, limit, offset int) ([]*model.News, int64, error)
	ListNewsByChannel(ctx context.Context, channel string, limit, offset int) ([]*model.News, int64, error)
	ListBookmarkedNews(ctx context.Context, userID uint64, limit, offset int) ([]*model.News, int64, error)
	ListFollowedNews(ctx context.Context, userID uint64, limit, offset int) ([]*model.News, int64, error)
	ListNewsIDsAfter(ctx context.Context, afterID uint64, limit int) ([]uint64, error)
	IncrementView(ctx context.Context, id uint64) error
}

type NewsRepoImpl struct {
	db *gorm.DB
}

func NewNewsRepo(db *gorm.DB) NewsRepo {
	return &NewsRepoImpl{db: db}
}

func (s *NewsRepoImpl) CreateNews(ctx context.Context, news *model.News) error {
	return s.db.WithContext(ctx).Create(news).Error
}

// UpsertExternalNews 外部来源按 telegram_id 幂等写入，计数字段不参与更新
func (s *NewsRepoImpl) UpsertExternalNews(ctx context.Context, news *model.News) (*model.News, error) {
	if news.TelegramID == nil || *news.TelegramID == "" {
		return nil, errors.New("external news without source id")
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "telegram_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"channel_username", "channel_profile_pic", "media_url", "title", "summary", "content", "updated_at",
		}),
	}).Create(news).Error
	if err != nil {
		return nil, err
	}

	var stored model.News
	err = s.db.WithContext(ctx).Where("telegram_id = ?", *news.TelegramID).Take(&stored).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *NewsRepoImpl) GetNewsByID(ctx context.Context, id uint64) (*model.News, error) {
	var news model.News
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&news).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNewsAbsent
	}
	if err != nil {
		return nil, err
	}
	return &news, nil
}

func (s *NewsRepoImpl) GetNewsByIDs(ctx context.Context, ids []uint64) ([]*model.News, error) {
	var list []*model.News
	if len(ids) == 0 {
		return list, nil
	}
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (s *NewsRepoImpl) ListNews(ctx context.Context, limit, offset int) ([]*model.News, int64, error) {
	return s.page(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("news.status = ?", model.NewsStatusPublished)
	}, "news.created_at DESC", limit, offset)
}

func (s *NewsRepoImpl) ListNewsByChannel(ctx context.Context, channel string, limit, offset int) ([]*model.News, int64, error) {
	return s.page(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("news.channel_username = ? AND news.status = ?", channel, model.NewsStatusPublished)
	}, "news.created_at DESC", limit, offset)
}

func (s *NewsRepoImpl) ListBookmarkedNews(ctx context.Context, userID uint64, limit, offset int) ([]*model.News, int64, error) {
	return s.page(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN bookmarks ON bookmarks.news_id = news.id").
			Where("bookmarks.user_id = ?", userID)
	}, "bookmarks.created_at DESC", limit, offset)
}

func (s *NewsRepoImpl) ListFollowedNews(ctx context.Context, userID uint64, limit, offset int) ([]*model.News, int64, error) {
	return s.page(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN user_follows ON user_follows.news_id = news.id").
			Where("user_follows.user_id = ?", userID)
	}, "user_follows.created_at DESC", limit, offset)
}

// page 统一的计数 + 分页查询
func (s *NewsRepoImpl) page(ctx context.Context, filter func(*gorm.DB) *gorm.DB, order string, limit, offset int) ([]*model.News, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.News{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	list := make([]*model.News, 0, limit)
	if offset < 0 || int64(offset) >= total {
		return list, total, nil
	}

	err := s.db.WithContext(ctx).Model(&model.News{}).Scopes(filter).
		Select("news.*").
		Order(order).Order("news.id DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, total, err
}

func (s *NewsRepoImpl) ListNewsIDsAfter(ctx context.Context, afterID uint64, limit int) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.News{}).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}

func (s *NewsRepoImpl) IncrementView(ctx context.Context, id uint64) error {
	res := s.db.WithContext(ctx).Model(&model.News{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNewsAbsent
	}
	return nil
}
