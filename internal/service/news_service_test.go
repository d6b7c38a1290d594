package service

import (
	"Newsroom/internal/api/dto"
	"Newsroom/internal/model"
	"Newsroom/internal/pkg/util"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListNews_Pagination(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 15; i++ {
		env.mustNews(t, fmt.Sprintf("news %d", i))
	}

	first, err := env.news.ListNews(t.Context(), util.NormalizePage(1, 10), 0)
	require.NoError(t, err)
	assert.Len(t, first.Items, 10)
	assert.EqualValues(t, 15, first.TotalCount)
	assert.Equal(t, 2, first.TotalPages)

	second, err := env.news.ListNews(t.Context(), util.NormalizePage(2, 10), 0)
	require.NoError(t, err)
	assert.Len(t, second.Items, 5)

	third, err := env.news.ListNews(t.Context(), util.NormalizePage(3, 10), 0)
	require.NoError(t, err)
	assert.NotNil(t, third.Items)
	assert.Empty(t, third.Items)
	assert.Equal(t, 3, third.Page)
	assert.Equal(t, 2, third.TotalPages)

	seen := make(map[uint64]bool)
	for _, item := range append(first.Items, second.Items...) {
		assert.False(t, seen[item.ID])
		seen[item.ID] = true
	}
}

func TestListNews_HugePageIsEmpty(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 15; i++ {
		env.mustNews(t, fmt.Sprintf("news %d", i))
	}

	for _, raw := range []string{"1844674407370955162", "99999999999999999999"} {
		page, err := env.news.ListNews(t.Context(), util.ParsePage(raw, "10"), 0)
		require.NoError(t, err)
		assert.Empty(t, page.Items, raw)
		assert.Equal(t, 2, page.TotalPages, raw)
	}
}

func TestListNews_HidesUnpublished(t *testing.T) {
	env := newTestEnv(t)
	visible := env.mustNews(t, "visible")
	draft := env.mustNews(t, "draft")
	require.NoError(t, env.db.Model(&model.News{}).Where("id = ?", draft.ID).Update("status", model.NewsStatusDraft).Error)

	page, err := env.news.ListNews(t.Context(), util.NormalizePage(1, 10), 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, visible.ID, page.Items[0].ID)
}

func TestListBookmarks(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "ext_a", "a@example.com")
	kept := env.mustNews(t, "kept")
	env.mustNews(t, "ignored")

	_, err := env.interaction.ToggleBookmark(t.Context(), user.ID, kept.ID)
	require.NoError(t, err)

	page, err := env.news.ListBookmarks(t.Context(), user.ID, util.NormalizePage(1, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, kept.ID, page.Items[0].ID)
	assert.True(t, page.Items[0].IsBookmarked)

	_, err = env.interaction.ToggleFollow(t.Context(), user.ID, kept.ID)
	require.NoError(t, err)
	following, err := env.news.ListFollowing(t.Context(), user.ID, util.NormalizePage(1, 10))
	require.NoError(t, err)
	require.Len(t, following.Items, 1)
	assert.True(t, following.Items[0].IsFollowing)
}

func TestGetNewsDetail_CountsView(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustUser(t, "ext_a", "a@example.com")
	news := env.mustNews(t, "detail")
	_, err := env.comment.CreateComment(t.Context(), user.ID, news.ID, &dto.CreateCommentDTO{Content: "hey"})
	require.NoError(t, err)

	detail, err := env.news.GetNewsDetail(t.Context(), news.ID, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, detail.ViewCount)
	assert.EqualValues(t, 1, detail.CommentCount)
	assert.Len(t, detail.Comments, 1)

	_, err = env.news.GetNewsDetail(t.Context(), 404, 0)
	assert.ErrorIs(t, err, ErrNewsNotFound)
}

func TestCreateNews(t *testing.T) {
	env := newTestEnv(t)
	writer := env.mustUser(t, "ext_w", "w@example.com")

	created, err := env.news.CreateNews(t.Context(), writer.ID, &dto.CreateNewsDTO{
		Title:    "Launch Day",
		Content:  "<p>Rockets <b>go</b> up</p><script>x()</script>",
		Category: "Tech",
	})
	require.NoError(t, err)
	require.NotNil(t, created.AuthorID)
	assert.Equal(t, writer.ID, *created.AuthorID)
	assert.NotContains(t, created.Content, "<script>")
	assert.NotEmpty(t, created.Summary)
	require.NotNil(t, created.Slug)
	assert.Contains(t, *created.Slug, "launch-day")
	assert.Contains(t, env.search.indexed, created.ID)

	_, err = env.news.CreateNews(t.Context(), writer.ID, &dto.CreateNewsDTO{Title: "x", Content: "y", Category: "Gossip"})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestIngestNews_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	req := &dto.IngestNewsDTO{
		TelegramID:      "tg-100",
		ChannelUsername: "wire",
		Content:         "Markets rally as rates fall",
	}

	first, err := env.news.IngestNews(t.Context(), req)
	require.NoError(t, err)
	req.Content = "Markets rally as rates fall sharply"
	second, err := env.news.IngestNews(t.Context(), req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Markets rally as rates fall sharply", second.Content)
	assert.Equal(t, "Other", second.Category)
	assert.Len(t, env.search.indexed, 1)

	var count int64
	require.NoError(t, env.db.Model(&model.News{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	_, err = env.news.IngestNews(t.Context(), &dto.IngestNewsDTO{ChannelUsername: "wire"})
	assert.True(t, IsInvalidInput(err))
}

func TestSearchNews_HydratesFromStore(t *testing.T) {
	env := newTestEnv(t)
	a := env.mustNews(t, "alpha")
	b := env.mustNews(t, "beta")
	env.search.hits = []uint64{b.ID, 999, a.ID}

	page, err := env.news.SearchNews(t.Context(), "anything", util.NormalizePage(1, 10), 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, b.ID, page.Items[0].ID)
	assert.Equal(t, a.ID, page.Items[1].ID)

	_, err = env.news.SearchNews(t.Context(), "  ", util.NormalizePage(1, 10), 0)
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestDeleteNews_AdminMayDelete(t *testing.T) {
	env := newTestEnv(t)
	admin := env.mustUser(t, "ext_admin", "admin@example.com")
	news := env.mustNews(t, "moderated")

	_, err := env.news.DeleteNews(t.Context(), admin.ID, model.RoleAdmin, news.ID)
	require.NoError(t, err)

	_, err = env.news.DeleteNews(t.Context(), admin.ID, model.RoleAdmin, news.ID)
	assert.ErrorIs(t, err, ErrNewsNotFound)
}
