package repository

import (
	"Newsroom/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment_ReplyInheritsNews(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepo(db)
	user := seedUser(t, db, "alice")
	news := seedNews(t, db, "threaded")
	other := seedNews(t, db, "unrelated")

	root := seedComment(t, db, user.ID, news.ID, nil)

	reply := &model.Comment{UserID: user.ID, NewsID: other.ID, ParentID: &root.ID, Content: "reply", Status: model.CommentStatusVisible}
	require.NoError(t, repo.CreateComment(t.Context(), reply))
	assert.Equal(t, news.ID, reply.NewsID)

	assert.EqualValues(t, 2, reloadNews(t, db, news.ID).CommentCount)
	assert.EqualValues(t, 0, reloadNews(t, db, other.ID).CommentCount)
}

func TestCreateComment_MissingParent(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepo(db)
	user := seedUser(t, db, "alice")
	news := seedNews(t, db, "threaded")

	missing := uint64(999)
	err := repo.CreateComment(t.Context(), &model.Comment{UserID: user.ID, NewsID: news.ID, ParentID: &missing, Content: "x"})
	assert.ErrorIs(t, err, ErrCommentAbsent)
	assert.EqualValues(t, 0, reloadNews(t, db, news.ID).CommentCount)
}

func TestToggleCommentLike(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepo(db)
	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")
	news := seedNews(t, db, "likes")
	comment := seedComment(t, db, a.ID, news.ID, nil)

	out, err := repo.ToggleCommentLike(t.Context(), a.ID, comment.ID)
	require.NoError(t, err)
	assert.True(t, out.Added)
	assert.EqualValues(t, 1, out.Count)

	out, err = repo.ToggleCommentLike(t.Context(), b.ID, comment.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, out.Count)

	out, err = repo.ToggleCommentLike(t.Context(), a.ID, comment.ID)
	require.NoError(t, err)
	assert.False(t, out.Added)
	assert.EqualValues(t, 1, out.Count)

	counts, err := repo.CountCommentLikes(t.Context(), []uint64{comment.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts[comment.ID])

	liked, err := repo.GetLikedCommentIDs(t.Context(), b.ID, []uint64{comment.ID})
	require.NoError(t, err)
	assert.True(t, liked[comment.ID])

	_, err = repo.ToggleCommentLike(t.Context(), a.ID, comment.ID+100)
	assert.ErrorIs(t, err, ErrCommentAbsent)
}
