package repository

import (
	"Newsroom/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentByID(ctx context.Context, id uint64) (*model.Comment, error)
	ListCommentsByNews(ctx context.Context, newsID uint64) ([]*model.Comment, error)
	ToggleCommentLike(ctx context.Context, userID, commentID uint64) (*ToggleOutcome, error)
	CountCommentLikes(ctx context.Context, commentIDs []uint64) (map[uint64]int64, error)
	GetLikedCommentIDs(ctx context.Context, userID uint64, commentIDs []uint64) (map[uint64]bool, error)
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

// CreateComment 插入评论并递增 comment_count
// 回复的 NewsID 取自父评论，调用方传入的值会被覆盖
func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUser(tx, comment.UserID); err != nil {
			return err
		}

		if comment.ParentID != nil {
			var parent model.Comment
			err := tx.Select("id", "news_id").Where("id = ?", *comment.ParentID).Take(&parent).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCommentAbsent
			}
			if err != nil {
				return err
			}
			comment.NewsID = parent.NewsID
		}

		if err := lockNews(tx, comment.NewsID, "UPDATE"); err != nil {
			return err
		}
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return shiftCounter(tx, comment.NewsID, ColumnCommentCount, 1)
	})
}

func (s *CommentRepoImpl) GetCommentByID(ctx context.Context, id uint64) (*model.Comment, error) {
	var comment model.Comment
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCommentAbsent
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentRepoImpl) ListCommentsByNews(ctx context.Context, newsID uint64) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := s.db.WithContext(ctx).
		Where("news_id = ? AND status = ?", newsID, model.CommentStatusVisible).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// ToggleCommentLike 切换 likedBy 成员关系，返回切换后的集合大小
func (s *CommentRepoImpl) ToggleCommentLike(ctx context.Context, userID, commentID uint64) (*ToggleOutcome, error) {
	out := &ToggleOutcome{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUser(tx, userID); err != nil {
			return err
		}

		var comment model.Comment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").Where("id = ?", commentID).Take(&comment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentAbsent
		}
		if err != nil {
			return err
		}

		added, err := flipEdge(tx, &model.CommentLike{UserID: userID, CommentID: commentID}, "user_id = ? AND comment_id = ?", userID, commentID)
		if err != nil {
			return err
		}
		out.Added = added
		return tx.Model(&model.CommentLike{}).Where("comment_id = ?", commentID).Count(&out.Count).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CommentRepoImpl) CountCommentLikes(ctx context.Context, commentIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(commentIDs))
	if len(commentIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		CommentID uint64
		Total     int64
	}
	err := s.db.WithContext(ctx).Model(&model.CommentLike{}).
		Select("comment_id, COUNT(*) AS total").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.CommentID] = row.Total
	}
	return counts, nil
}

func (s *CommentRepoImpl) GetLikedCommentIDs(ctx context.Context, userID uint64, commentIDs []uint64) (map[uint64]bool, error) {
	liked := make(map[uint64]bool)
	if userID == 0 || len(commentIDs) == 0 {
		return liked, nil
	}

	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.CommentLike{}).
		Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
		Pluck("comment_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
