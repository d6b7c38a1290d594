package repository

import (
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/testutil"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	return testutil.CreateTempDB(t)
}

func seedUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	user := &model.User{
		ExternalID: "ext_" + name,
		Email:      name + "@example.com",
		Username:   name,
		Role:       model.RoleUser,
		Status:     model.UserStatusActive,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedNews(t *testing.T, db *gorm.DB, title string) *model.News {
	t.Helper()
	news := &model.News{
		Title:           title,
		ChannelUsername: "channel",
		Category:        "Tech",
		Status:          model.NewsStatusPublished,
	}
	require.NoError(t, db.Create(news).Error)
	return news
}

func seedComment(t *testing.T, db *gorm.DB, userID, newsID uint64, parentID *uint64) *model.Comment {
	t.Helper()
	repo := NewCommentRepo(db)
	comment := &model.Comment{
		UserID:   userID,
		NewsID:   newsID,
		ParentID: parentID,
		Content:  fmt.Sprintf("comment by %d", userID),
		Status:   model.CommentStatusVisible,
	}
	require.NoError(t, repo.CreateComment(t.Context(), comment))
	return comment
}

func reloadNews(t *testing.T, db *gorm.DB, id uint64) *model.News {
	t.Helper()
	var news model.News
	require.NoError(t, db.Where("id = ?", id).Take(&news).Error)
	return &news
}

func countRows(t *testing.T, db *gorm.DB, table any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(table).Where(query, args...).Count(&n).Error)
	return n
}
