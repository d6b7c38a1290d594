package repository

import (
	"Newsroom/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserDeletionReport 用户级联删除的结果
type UserDeletionReport struct {
	UserID          uint64   `json:"userId"`
	CommentLikes    int64    `json:"commentLikes"`
	Comments        int64    `json:"comments"`
	Bookmarks       int64    `json:"bookmarks"`
	Interactions    int64    `json:"interactions"`
	Follows         int64    `json:"follows"`
	Reports         int64    `json:"reports"`
	DetachedNews    int64    `json:"detachedNews"`
	AffectedNewsIDs []uint64 `json:"affectedNewsIds"`
	ProfilePicture  string   `json:"-"`
}

// NewsDeletionReport 内容级联删除的结果
type NewsDeletionReport struct {
	NewsID       uint64 `json:"newsId"`
	CommentLikes int64  `json:"commentLikes"`
	Comments     int64  `json:"comments"`
	Interactions int64  `json:"interactions"`
	Bookmarks    int64  `json:"bookmarks"`
	Follows      int64  `json:"follows"`
	CoverImage   string `json:"-"`
}

type CascadeRepo interface {
	DeleteUser(ctx context.Context, userID uint64) (*UserDeletionReport, error)
	DeleteNews(ctx context.Context, newsID uint64) (*NewsDeletionReport, error)
}

type CascadeRepoImpl struct {
	db *gorm.DB
}

func NewCascadeRepo(db *gorm.DB) CascadeRepo {
	return &CascadeRepoImpl{db: db}
}

// DeleteUser 在一个事务内删除用户及其全部明细，并修正对端内容的计数
// 用户行先加排他锁，内容行随后由计数递减加锁，与切换路径的加锁顺序一致
func (s *CascadeRepoImpl) DeleteUser(ctx context.Context, userID uint64) (*UserDeletionReport, error) {
	report := &UserDeletionReport{UserID: userID}
	affected := make(map[uint64]struct{})

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", userID).Take(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserAbsent
		}
		if err != nil {
			return errors.Wrap(err, "lock user")
		}
		report.ProfilePicture = user.ProfilePicture

		// 1. likedBy
		res := tx.Where("user_id = ?", userID).Delete(&model.CommentLike{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete comment likes")
		}
		report.CommentLikes = res.RowsAffected

		// 2. comments
		if err = s.dropUserComments(tx, userID, report, affected); err != nil {
			return err
		}

		// 3. bookmarks
		n, err := decrementAndDelete(tx, &model.Bookmark{}, ColumnBookmarkCount, affected, "user_id = ?", userID)
		if err != nil {
			return errors.Wrap(err, "delete bookmarks")
		}
		report.Bookmarks = n

		// 4. interactions
		for _, kind := range []string{model.InteractionLike, model.InteractionRepost} {
			n, err = decrementAndDelete(tx, &model.Interaction{}, CounterColumn(kind), affected, "user_id = ? AND kind = ?", userID, kind)
			if err != nil {
				return errors.Wrapf(err, "delete %s interactions", kind)
			}
			report.Interactions += n
		}

		res = tx.Where("user_id = ?", userID).Delete(&model.UserFollow{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete follows")
		}
		report.Follows = res.RowsAffected

		// 5. reports
		res = tx.Where("reporter_id = ?", userID).Delete(&model.Report{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete reports")
		}
		report.Reports = res.RowsAffected

		res = tx.Model(&model.News{}).Where("author_id = ?", userID).UpdateColumn("author_id", nil)
		if res.Error != nil {
			return errors.Wrap(res.Error, "detach authored news")
		}
		report.DetachedNews = res.RowsAffected

		// 6. user
		if err = tx.Where("id = ?", userID).Delete(&model.User{}).Error; err != nil {
			return errors.Wrap(err, "delete user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for id := range affected {
		report.AffectedNewsIDs = append(report.AffectedNewsIDs, id)
	}
	return report, nil
}

// dropUserComments 递减 comment_count 后删除评论
// 别人对这些评论的回复保留并提升为一级评论，其他人的点赞随评论一起删除
func (s *CascadeRepoImpl) dropUserComments(tx *gorm.DB, userID uint64, report *UserDeletionReport, affected map[uint64]struct{}) error {
	groups, err := countByNews(tx, &model.Comment{}, "user_id = ?", userID)
	if err != nil {
		return errors.Wrap(err, "count comments")
	}
	if len(groups) == 0 {
		return nil
	}

	var ids []uint64
	if err = tx.Model(&model.Comment{}).Where("user_id = ?", userID).Pluck("id", &ids).Error; err != nil {
		return errors.Wrap(err, "load comments")
	}

	if err = tx.Model(&model.Comment{}).
		Where("parent_id IN ? AND user_id <> ?", ids, userID).
		UpdateColumn("parent_id", nil).Error; err != nil {
		return errors.Wrap(err, "detach replies")
	}

	res := tx.Where("comment_id IN ?", ids).Delete(&model.CommentLike{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete likes on comments")
	}
	report.CommentLikes += res.RowsAffected

	for _, g := range groups {
		if err = shiftCounter(tx, g.NewsID, ColumnCommentCount, -g.Total); err != nil {
			return errors.Wrap(err, "decrement comment count")
		}
		affected[g.NewsID] = struct{}{}
	}

	res = tx.Where("user_id = ?", userID).Delete(&model.Comment{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete comments")
	}
	report.Comments = res.RowsAffected
	return nil
}

// decrementAndDelete 按内容分组递减计数，再删除这些行
func decrementAndDelete(tx *gorm.DB, table any, column string, affected map[uint64]struct{}, query string, args ...any) (int64, error) {
	groups, err := countByNews(tx, table, query, args...)
	if err != nil {
		return 0, err
	}
	if len(groups) == 0 {
		return 0, nil
	}
	for _, g := range groups {
		if err = shiftCounter(tx, g.NewsID, column, -g.Total); err != nil {
			return 0, err
		}
		affected[g.NewsID] = struct{}{}
	}
	res := tx.Where(query, args...).Delete(table)
	return res.RowsAffected, res.Error
}

// DeleteNews 删除内容及其评论、评论点赞、交互、收藏、关注
func (s *CascadeRepoImpl) DeleteNews(ctx context.Context, newsID uint64) (*NewsDeletionReport, error) {
	report := &NewsDeletionReport{NewsID: newsID}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var news model.News
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "cover_image").Where("id = ?", newsID).Take(&news).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNewsAbsent
		}
		if err != nil {
			return errors.Wrap(err, "lock news")
		}
		report.CoverImage = news.CoverImage

		var commentIDs []uint64
		if err = tx.Model(&model.Comment{}).Where("news_id = ?", newsID).Pluck("id", &commentIDs).Error; err != nil {
			return errors.Wrap(err, "load comments")
		}
		if len(commentIDs) > 0 {
			res := tx.Where("comment_id IN ?", commentIDs).Delete(&model.CommentLike{})
			if res.Error != nil {
				return errors.Wrap(res.Error, "delete comment likes")
			}
			report.CommentLikes = res.RowsAffected
		}

		steps := []struct {
			name  string
			table any
			total *int64
		}{
			{"comments", &model.Comment{}, &report.Comments},
			{"interactions", &model.Interaction{}, &report.Interactions},
			{"bookmarks", &model.Bookmark{}, &report.Bookmarks},
			{"follows", &model.UserFollow{}, &report.Follows},
		}
		for _, step := range steps {
			res := tx.Where("news_id = ?", newsID).Delete(step.table)
			if res.Error != nil {
				return errors.Wrapf(res.Error, "delete %s", step.name)
			}
			*step.total = res.RowsAffected
		}

		if err = tx.Where("id = ?", newsID).Delete(&model.News{}).Error; err != nil {
			return errors.Wrap(err, "delete news")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
