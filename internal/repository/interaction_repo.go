package repository

import (
	"Newsroom/internal/model"
	"context"

	"gorm.io/gorm"
)

// ToggleOutcome 一次切换后的状态与计数
type ToggleOutcome struct {
	Added bool
	Count int64
}

// ViewerState 某个用户对某条内容的交互状态
type ViewerState struct {
	Liked      bool
	Reposted   bool
	Bookmarked bool
	Following  bool
}

type InteractionRepo interface {
	ToggleInteraction(ctx context.Context, userID, newsID uint64, kind string) (*ToggleOutcome, error)
	ToggleBookmark(ctx context.Context, userID, newsID uint64) (*ToggleOutcome, error)
	ToggleFollow(ctx context.Context, userID, newsID uint64) (bool, error)
	GetViewerStates(ctx context.Context, userID uint64, newsIDs []uint64) (map[uint64]*ViewerState, error)
}

type InteractionRepoImpl struct {
	db *gorm.DB
}

func NewInteractionRepo(db *gorm.DB) InteractionRepo {
	return &InteractionRepoImpl{db: db}
}

// ToggleInteraction 点赞/转发切换：边的增删与计数增减在同一事务内
func (s *InteractionRepoImpl) ToggleInteraction(ctx context.Context, userID, newsID uint64, kind string) (*ToggleOutcome, error) {
	column := CounterColumn(kind)
	edge := &model.Interaction{UserID: userID, NewsID: newsID, Kind: kind}
	return s.toggleCounted(ctx, userID, newsID, column, func(tx *gorm.DB) (bool, error) {
		return flipEdge(tx, edge, "user_id = ? AND news_id = ? AND kind = ?", userID, newsID, kind)
	})
}

// ToggleBookmark 收藏切换
func (s *InteractionRepoImpl) ToggleBookmark(ctx context.Context, userID, newsID uint64) (*ToggleOutcome, error) {
	edge := &model.Bookmark{UserID: userID, NewsID: newsID}
	return s.toggleCounted(ctx, userID, newsID, ColumnBookmarkCount, func(tx *gorm.DB) (bool, error) {
		return flipEdge(tx, edge, "user_id = ? AND news_id = ?", userID, newsID)
	})
}

func (s *InteractionRepoImpl) toggleCounted(ctx context.Context, userID, newsID uint64, column string, flip func(tx *gorm.DB) (bool, error)) (*ToggleOutcome, error) {
	out := &ToggleOutcome{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUser(tx, userID); err != nil {
			return err
		}
		if err := lockNews(tx, newsID, "UPDATE"); err != nil {
			return err
		}

		added, err := flip(tx)
		if err != nil {
			return err
		}

		delta := int64(-1)
		if added {
			delta = 1
		}
		if err = shiftCounter(tx, newsID, column, delta); err != nil {
			return err
		}

		out.Added = added
		out.Count, err = readCounter(tx, newsID, column)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleFollow 关注集合切换，没有计数
func (s *InteractionRepoImpl) ToggleFollow(ctx context.Context, userID, newsID uint64) (bool, error) {
	var added bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUser(tx, userID); err != nil {
			return err
		}
		if err := lockNews(tx, newsID, "SHARE"); err != nil {
			return err
		}

		var err error
		added, err = flipEdge(tx, &model.UserFollow{UserID: userID, NewsID: newsID}, "user_id = ? AND news_id = ?", userID, newsID)
		return err
	})
	return added, err
}

// GetViewerStates 只查询该用户在这批内容上的边
func (s *InteractionRepoImpl) GetViewerStates(ctx context.Context, userID uint64, newsIDs []uint64) (map[uint64]*ViewerState, error) {
	states := make(map[uint64]*ViewerState, len(newsIDs))
	for _, id := range newsIDs {
		states[id] = &ViewerState{}
	}
	if userID == 0 || len(newsIDs) == 0 {
		return states, nil
	}

	db := s.db.WithContext(ctx)

	var interactions []model.Interaction
	if err := db.Where("user_id = ? AND news_id IN ?", userID, newsIDs).Find(&interactions).Error; err != nil {
		return nil, err
	}
	for _, it := range interactions {
		switch it.Kind {
		case model.InteractionLike:
			states[it.NewsID].Liked = true
		case model.InteractionRepost:
			states[it.NewsID].Reposted = true
		}
	}

	var bookmarked []uint64
	if err := db.Model(&model.Bookmark{}).Where("user_id = ? AND news_id IN ?", userID, newsIDs).Pluck("news_id", &bookmarked).Error; err != nil {
		return nil, err
	}
	for _, id := range bookmarked {
		states[id].Bookmarked = true
	}

	var followed []uint64
	if err := db.Model(&model.UserFollow{}).Where("user_id = ? AND news_id IN ?", userID, newsIDs).Pluck("news_id", &followed).Error; err != nil {
		return nil, err
	}
	for _, id := range followed {
		states[id].Following = true
	}

	return states, nil
}
