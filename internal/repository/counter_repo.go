package repository

import (
	"Newsroom/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CounterSnapshot 内容上的四个投影计数
type CounterSnapshot struct {
	LikeCount     int64 `json:"likeCount"`
	RepostCount   int64 `json:"repostCount"`
	CommentCount  int64 `json:"commentCount"`
	BookmarkCount int64 `json:"bookmarkCount"`
}

type RecountResult struct {
	NewsID    uint64          `json:"newsId"`
	Before    CounterSnapshot `json:"before"`
	After     CounterSnapshot `json:"after"`
	Corrected bool            `json:"corrected"`
}

// OrphanReport 清理掉的悬挂边
type OrphanReport struct {
	Interactions    int64    `json:"interactions"`
	Bookmarks       int64    `json:"bookmarks"`
	Follows         int64    `json:"follows"`
	Comments        int64    `json:"comments"`
	CommentLikes    int64    `json:"commentLikes"`
	AffectedNewsIDs []uint64 `json:"affectedNewsIds"`
}

const (
	userGone = "user_id NOT IN (SELECT id FROM users)"
	newsGone = "news_id NOT IN (SELECT id FROM news)"
)

type CounterRepo interface {
	Recount(ctx context.Context, newsID uint64) (*RecountResult, error)
	DeleteOrphans(ctx context.Context) (*OrphanReport, error)
}

type CounterRepoImpl struct {
	db *gorm.DB
}

func NewCounterRepo(db *gorm.DB) CounterRepo {
	return &CounterRepoImpl{db: db}
}

// Recount 从明细表重算四个计数，只在有偏差时写回
func (s *CounterRepoImpl) Recount(ctx context.Context, newsID uint64) (*RecountResult, error) {
	result := &RecountResult{NewsID: newsID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var news model.News
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "like_count", "repost_count", "comment_count", "bookmark_count").
			Where("id = ?", newsID).Take(&news).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNewsAbsent
		}
		if err != nil {
			return err
		}
		result.Before = CounterSnapshot{
			LikeCount:     news.LikeCount,
			RepostCount:   news.RepostCount,
			CommentCount:  news.CommentCount,
			BookmarkCount: news.BookmarkCount,
		}

		var kinds []struct {
			Kind  string
			Total int64
		}
		err = tx.Model(&model.Interaction{}).
			Select("kind, COUNT(*) AS total").
			Where("news_id = ?", newsID).
			Group("kind").
			Scan(&kinds).Error
		if err != nil {
			return err
		}
		for _, k := range kinds {
			switch k.Kind {
			case model.InteractionLike:
				result.After.LikeCount = k.Total
			case model.InteractionRepost:
				result.After.RepostCount = k.Total
			}
		}

		if err = tx.Model(&model.Comment{}).Where("news_id = ?", newsID).Count(&result.After.CommentCount).Error; err != nil {
			return err
		}
		if err = tx.Model(&model.Bookmark{}).Where("news_id = ?", newsID).Count(&result.After.BookmarkCount).Error; err != nil {
			return err
		}

		if result.Before == result.After {
			return nil
		}
		result.Corrected = true
		return tx.Model(&model.News{}).Where("id = ?", newsID).UpdateColumns(map[string]interface{}{
			ColumnLikeCount:     result.After.LikeCount,
			ColumnRepostCount:   result.After.RepostCount,
			ColumnCommentCount:  result.After.CommentCount,
			ColumnBookmarkCount: result.After.BookmarkCount,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteOrphans 删除用户或内容已不存在的边，返回需要重算的内容
func (s *CounterRepoImpl) DeleteOrphans(ctx context.Context) (*OrphanReport, error) {
	report := &OrphanReport{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected := make(map[uint64]struct{})

		collect := func(table any) error {
			var ids []uint64
			err := tx.Model(table).Distinct("news_id").
				Where(userGone + " AND news_id IN (SELECT id FROM news)").
				Pluck("news_id", &ids).Error
			for _, id := range ids {
				affected[id] = struct{}{}
			}
			return err
		}
		for _, table := range []any{&model.Interaction{}, &model.Bookmark{}, &model.Comment{}} {
			if err := collect(table); err != nil {
				return err
			}
		}

		var orphanComments []uint64
		err := tx.Model(&model.Comment{}).
			Where(userGone + " OR " + newsGone).
			Pluck("id", &orphanComments).Error
		if err != nil {
			return err
		}
		if len(orphanComments) > 0 {
			if err = tx.Model(&model.Comment{}).Where("parent_id IN ?", orphanComments).
				Update("parent_id", nil).Error; err != nil {
				return err
			}
			res := tx.Where("id IN ?", orphanComments).Delete(&model.Comment{})
			if res.Error != nil {
				return res.Error
			}
			report.Comments = res.RowsAffected
		}

		res := tx.Where(userGone + " OR comment_id NOT IN (SELECT id FROM comments)").
			Delete(&model.CommentLike{})
		if res.Error != nil {
			return res.Error
		}
		report.CommentLikes = res.RowsAffected

		edges := []struct {
			table any
			total *int64
		}{
			{&model.Interaction{}, &report.Interactions},
			{&model.Bookmark{}, &report.Bookmarks},
			{&model.UserFollow{}, &report.Follows},
		}
		for _, e := range edges {
			res = tx.Where(userGone + " OR " + newsGone).Delete(e.table)
			if res.Error != nil {
				return res.Error
			}
			*e.total = res.RowsAffected
		}

		for id := range affected {
			report.AffectedNewsIDs = append(report.AffectedNewsIDs, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
