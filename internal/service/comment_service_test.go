package service

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/pkg/consts"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment_RejectsEmpty(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "ext_a", "a@example.com")
	news := env.mustNews(t, "n")

	for _, content := range []string{"", "   ", "<script>alert(1)</script>"} {
		_, err := env.comment.CreateComment(t.Context(), user.ID, news.ID, &dto.CreateCommentDTO{Content: content})
		assert.ErrorIs(t, err, ErrEmptyComment, content)
	}
	assert.EqualValues(t, 0, env.reload(t, news.ID).CommentCount)
}

func TestCreateComment_MissingTargets(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "ext_a", "a@example.com")

	_, err := env.comment.CreateComment(t.Context(), user.ID, 404, &dto.CreateCommentDTO{Content: "hi"})
	assert.ErrorIs(t, err, ErrNewsNotFound)

	_, err = env.comment.ReplyComment(t.Context(), user.ID, 404, &dto.CreateCommentDTO{Content: "hi"})
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestReplyComment_InheritsNews(t *testing.T) {
	env := newTestEnv(t)
	a := env.mustUser(t, "ext_a", "a@example.com")
	b := env.mustUser(t, "ext_b", "b@example.com")
	news := env.mustNews(t, "thread")

	root, err := env.comment.CreateComment(t.Context(), a.ID, news.ID, &dto.CreateCommentDTO{Content: "root"})
	require.NoError(t, err)
	reply, err := env.comment.ReplyComment(t.Context(), b.ID, root.ID, &dto.CreateCommentDTO{Content: "reply"})
	require.NoError(t, err)

	assert.Equal(t, news.ID, reply.NewsID)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, root.ID, *reply.ParentID)
	require.NotNil(t, reply.Author)
	assert.Equal(t, b.Username, reply.Author.Username)
	assert.EqualValues(t, 2, env.reload(t, news.ID).CommentCount)
}

func TestToggleCommentLike(t *testing.T) {
	env := newTestEnv(t)
	a := env.mustUser(t, "ext_a", "a@example.com")
	b := env.mustUser(t, "ext_b", "b@example.com")
	news := env.mustNews(t, "n")
	c, err := env.comment.CreateComment(t.Context(), a.ID, news.ID, &dto.CreateCommentDTO{Content: "like me"})
	require.NoError(t, err)

	res, err := env.comment.ToggleCommentLike(t.Context(), a.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, consts.ToggleAdded, res.State)
	assert.EqualValues(t, 1, res.Count)

	res, err = env.comment.ToggleCommentLike(t.Context(), b.ID, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Count)

	res, err = env.comment.ToggleCommentLike(t.Context(), a.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, consts.ToggleRemoved, res.State)
	assert.EqualValues(t, 1, res.Count)

	_, err = env.comment.ToggleCommentLike(t.Context(), a.ID, 404)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestListComments_Threaded(t *testing.T) {
	env := newTestEnv(t)
	a := env.mustUser(t, "ext_a", "a@example.com")
	b := env.mustUser(t, "ext_b", "b@example.com")
	news := env.mustNews(t, "n")

	first, err := env.comment.CreateComment(t.Context(), a.ID, news.ID, &dto.CreateCommentDTO{Content: "first"})
	require.NoError(t, err)
	_, err = env.comment.CreateComment(t.Context(), b.ID, news.ID, &dto.CreateCommentDTO{Content: "second"})
	require.NoError(t, err)
	reply, err := env.comment.ReplyComment(t.Context(), b.ID, first.ID, &dto.CreateCommentDTO{Content: "reply"})
	require.NoError(t, err)
	_, err = env.comment.ToggleCommentLike(t.Context(), b.ID, reply.ID)
	require.NoError(t, err)

	tree, err := env.comment.ListComments(t.Context(), news.ID, b.ID)
	require.NoError(t, err)
	require.Len(t, tree, 2)

	var root *dto.CommentDTO
	for _, node := range tree {
		if node.ID == first.ID {
			root = node
		}
	}
	require.NotNil(t, root)
	require.Len(t, root.Replies, 1)
	assert.Equal(t, reply.ID, root.Replies[0].ID)
	assert.EqualValues(t, 1, root.Replies[0].LikeCount)
	assert.True(t, root.Replies[0].IsLiked)
	assert.False(t, root.IsLiked)

	anonymous, err := env.comment.ListComments(t.Context(), news.ID, 0)
	require.NoError(t, err)
	for _, node := range anonymous {
		assert.False(t, node.IsLiked)
	}

	_, err = env.comment.ListComments(t.Context(), 404, 0)
	assert.ErrorIs(t, err, ErrNewsNotFound)
}

func TestListComments_Empty(t *testing.T) {
	env := newTestEnv(t)
	news := env.mustNews(t, "quiet")

	tree, err := env.comment.ListComments(t.Context(), news.ID, 0)
	require.NoError(t, err)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}
