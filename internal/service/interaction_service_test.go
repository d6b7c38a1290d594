package service

import (
	"Newsroom/internal/pkg/consts"
	"Newsroom/internal/repository"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLike_TwiceIsIdentity(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "ext_a", "a@example.com")
	news := env.mustNews(t, "hello")

	first, err := env.interaction.ToggleLike(t.Context(), user.ID, news.ID)
	require.NoError(t, err)
	assert.Equal(t, consts.ToggleAdded, first.State)
	assert.EqualValues(t, 1, first.Count)

	second, err := env.interaction.ToggleLike(t.Context(), user.ID, news.ID)
	require.NoError(t, err)
	assert.Equal(t, consts.ToggleRemoved, second.State)
	assert.EqualValues(t, 0, second.Count)

	assert.EqualValues(t, 0, env.reload(t, news.ID).LikeCount)
}

func TestToggleLike_TwoUsers(t *testing.T) {
	env := newTestEnv(t)
	a := env.mustUser(t, "ext_a", "a@example.com")
	b := env.mustUser(t, "ext_b", "b@example.com")
	news := env.mustNews(t, "shared")

	_, err := env.interaction.ToggleLike(t.Context(), a.ID, news.ID)
	require.NoError(t, err)
	res, err := env.interaction.ToggleLike(t.Context(), b.ID, news.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Count)

	res, err = env.interaction.ToggleLike(t.Context(), a.ID, news.ID)
	require.NoError(t, err)
	assert.Equal(t, consts.ToggleRemoved, res.State)
	assert.EqualValues(t, 1, res.Count)

	item, err := env.news.GetNews(t.Context(), news.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, item.IsLiked)
	assert.EqualValues(t, 1, item.LikeCount)

	item, err = env.news.GetNews(t.Context(), news.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, item.IsLiked)
}

func TestToggle_RepostBookmarkFollow(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "ext_a", "a@example.com")
	news := env.mustNews(t, "multi")

	res, err := env.interaction.ToggleRepost(t.Context(), user.ID, news.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Count)

	res, err = env.interaction.ToggleBookmark(t.Context(), user.ID, news.ID)
	require.NoError(t, err)
	assert.Equal(t, consts.ToggleAdded, res.State)

	res, err = env.interaction.ToggleFollow(t.Context(), user.ID, news.ID)
	require.NoError(t, err)
	assert.Equal(t, consts.ToggleAdded, res.State)
	assert.EqualValues(t, 0, res.Count)

	item, err := env.news.GetNews(t.Context(), news.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, item.IsReposted)
	assert.True(t, item.IsBookmarked)
	assert.True(t, item.IsFollowing)
	assert.EqualValues(t, 1, item.RepostCount)
	assert.EqualValues(t, 1, item.BookmarkCount)
}

func TestToggleLike_NotFound(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "ext_a", "a@example.com")

	_, err := env.interaction.ToggleLike(t.Context(), user.ID, 404)
	assert.ErrorIs(t, err, ErrNewsNotFound)

	news := env.mustNews(t, "x")
	_, err = env.interaction.ToggleLike(t.Context(), 404, news.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestToggleOnce_RetriesConflictOnce(t *testing.T) {
	calls := 0
	res, err := toggleOnce(t.Context(), "like", func() (*repository.ToggleOutcome, error) {
		calls++
		if calls == 1 {
			return nil, repository.ErrEdgeConflict
		}
		return &repository.ToggleOutcome{Added: false, Count: 3}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, consts.ToggleRemoved, res.State)
	assert.EqualValues(t, 3, res.Count)

	calls = 0
	_, err = toggleOnce(t.Context(), "like", func() (*repository.ToggleOutcome, error) {
		calls++
		return nil, repository.ErrEdgeConflict
	})
	assert.ErrorIs(t, err, ErrConflictIgnored)
	assert.Equal(t, 2, calls)
}
