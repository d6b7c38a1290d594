package repository

import (
	"Newsroom/internal/model"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	ColumnLikeCount     = "like_count"
	ColumnRepostCount   = "repost_count"
	ColumnCommentCount  = "comment_count"
	ColumnBookmarkCount = "bookmark_count"
)

// CounterColumn 交互类型对应的计数列
func CounterColumn(kind string) string {
	switch kind {
	case model.InteractionLike:
		return ColumnLikeCount
	case model.InteractionRepost:
		return ColumnRepostCount
	}
	return ""
}

// flipEdge 存在则删除，不存在则插入。返回 true 表示插入
// 两步都以 affected rows 为准，不做先查后写
func flipEdge[T any](tx *gorm.DB, edge *T, query string, args ...any) (bool, error) {
	res := tx.Where(query, args...).Delete(new(T))
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	res = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(edge)
	if res.Error != nil {
		if IsDuplicateError(res.Error) {
			return false, ErrEdgeConflict
		}
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, ErrEdgeConflict
	}
	return true, nil
}

// shiftCounter 对计数列施加增量，递减在 0 处饱和
func shiftCounter(tx *gorm.DB, newsID uint64, column string, delta int64) error {
	if delta == 0 || column == "" {
		return nil
	}

	var expr clause.Expr
	if delta > 0 {
		expr = gorm.Expr(column+" + ?", delta)
	} else {
		n := -delta
		expr = gorm.Expr("CASE WHEN "+column+" > ? THEN "+column+" - ? ELSE 0 END", n, n)
	}

	return tx.Model(&model.News{}).Where("id = ?", newsID).UpdateColumn(column, expr).Error
}

// readCounter 读取事务内的最新计数
func readCounter(tx *gorm.DB, newsID uint64, column string) (int64, error) {
	var counts []int64
	err := tx.Model(&model.News{}).Where("id = ?", newsID).Pluck(column, &counts).Error
	if err != nil {
		return 0, err
	}
	if len(counts) == 0 {
		return 0, ErrNewsAbsent
	}
	return counts[0], nil
}

// lockUser 共享锁住用户行，防止与注销级联交错
func lockUser(tx *gorm.DB, userID uint64) error {
	var user model.User
	err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
		Select("id").Where("id = ?", userID).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserAbsent
	}
	return err
}

// lockNews 锁住内容行。需要改计数时用 UPDATE，计数更新本身也要该锁
func lockNews(tx *gorm.DB, newsID uint64, strength string) error {
	var news model.News
	err := tx.Clauses(clause.Locking{Strength: strength}).
		Select("id").Where("id = ?", newsID).Take(&news).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNewsAbsent
	}
	return err
}

// groupCount 按 news_id 聚合的计数行
type groupCount struct {
	NewsID uint64
	Total  int64
}

// countByNews 按内容分组统计并锁住被统计的行
func countByNews(tx *gorm.DB, table any, query string, args ...any) ([]groupCount, error) {
	var rows []groupCount
	err := tx.Model(table).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("news_id, COUNT(*) AS total").
		Where(query, args...).
		Group("news_id").
		Scan(&rows).Error
	return rows, err
}
