package repository

import (
	"Newsroom/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteUser_DecrementsExactly(t *testing.T) {
	db := newTestDB(t)
	interactions := NewInteractionRepo(db)
	comments := NewCommentRepo(db)
	cascade := NewCascadeRepo(db)

	victim := seedUser(t, db, "victim")
	other := seedUser(t, db, "other")
	n1 := seedNews(t, db, "one")
	n2 := seedNews(t, db, "two")

	for _, u := range []uint64{victim.ID, other.ID} {
		_, err := interactions.ToggleInteraction(t.Context(), u, n1.ID, model.InteractionLike)
		require.NoError(t, err)
	}
	_, err := interactions.ToggleInteraction(t.Context(), victim.ID, n1.ID, model.InteractionRepost)
	require.NoError(t, err)
	_, err = interactions.ToggleBookmark(t.Context(), victim.ID, n2.ID)
	require.NoError(t, err)
	_, err = interactions.ToggleFollow(t.Context(), victim.ID, n2.ID)
	require.NoError(t, err)

	victimComment := seedComment(t, db, victim.ID, n1.ID, nil)
	otherReply := seedComment(t, db, other.ID, n1.ID, &victimComment.ID)
	otherRoot := seedComment(t, db, other.ID, n2.ID, nil)
	_, err = comments.ToggleCommentLike(t.Context(), victim.ID, otherRoot.ID)
	require.NoError(t, err)
	_, err = comments.ToggleCommentLike(t.Context(), other.ID, victimComment.ID)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.Report{ReporterID: victim.ID, TargetType: model.ReportTargetNews, TargetID: n1.ID, Reason: "spam", Status: model.ReportStatusPending}).Error)

	report, err := cascade.DeleteUser(t.Context(), victim.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, report.Interactions)
	assert.EqualValues(t, 1, report.Bookmarks)
	assert.EqualValues(t, 1, report.Follows)
	assert.EqualValues(t, 1, report.Comments)
	assert.EqualValues(t, 2, report.CommentLikes)
	assert.EqualValues(t, 1, report.Reports)
	assert.ElementsMatch(t, []uint64{n1.ID, n2.ID}, report.AffectedNewsIDs)

	s1 := reloadNews(t, db, n1.ID)
	assert.EqualValues(t, 1, s1.LikeCount)
	assert.EqualValues(t, 0, s1.RepostCount)
	assert.EqualValues(t, 1, s1.CommentCount)
	s2 := reloadNews(t, db, n2.ID)
	assert.EqualValues(t, 0, s2.BookmarkCount)
	assert.EqualValues(t, 1, s2.CommentCount)

	var reply model.Comment
	require.NoError(t, db.Where("id = ?", otherReply.ID).Take(&reply).Error)
	assert.Nil(t, reply.ParentID)

	assert.EqualValues(t, 0, countRows(t, db, &model.User{}, "id = ?", victim.ID))
	assert.EqualValues(t, 0, countRows(t, db, &model.CommentLike{}, "1 = 1"))

	// 计数与明细一致
	counter := NewCounterRepo(db)
	for _, id := range []uint64{n1.ID, n2.ID} {
		result, err := counter.Recount(t.Context(), id)
		require.NoError(t, err)
		assert.False(t, result.Corrected)
	}

	_, err = cascade.DeleteUser(t.Context(), victim.ID)
	assert.ErrorIs(t, err, ErrUserAbsent)
}

func TestDeleteUser_DetachesAuthoredNews(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author")
	news := seedNews(t, db, "authored")
	require.NoError(t, db.Model(&model.News{}).Where("id = ?", news.ID).Update("author_id", author.ID).Error)

	report, err := NewCascadeRepo(db).DeleteUser(t.Context(), author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, report.DetachedNews)
	assert.Nil(t, reloadNews(t, db, news.ID).AuthorID)
}

func TestDeleteNews_RemovesEverything(t *testing.T) {
	db := newTestDB(t)
	interactions := NewInteractionRepo(db)
	comments := NewCommentRepo(db)
	user := seedUser(t, db, "alice")
	news := seedNews(t, db, "doomed")
	keep := seedNews(t, db, "kept")

	_, err := interactions.ToggleInteraction(t.Context(), user.ID, news.ID, model.InteractionLike)
	require.NoError(t, err)
	_, err = interactions.ToggleBookmark(t.Context(), user.ID, news.ID)
	require.NoError(t, err)
	_, err = interactions.ToggleFollow(t.Context(), user.ID, news.ID)
	require.NoError(t, err)
	_, err = interactions.ToggleInteraction(t.Context(), user.ID, keep.ID, model.InteractionLike)
	require.NoError(t, err)
	root := seedComment(t, db, user.ID, news.ID, nil)
	seedComment(t, db, user.ID, news.ID, &root.ID)
	_, err = comments.ToggleCommentLike(t.Context(), user.ID, root.ID)
	require.NoError(t, err)

	report, err := NewCascadeRepo(db).DeleteNews(t.Context(), news.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, report.Comments)
	assert.EqualValues(t, 1, report.CommentLikes)
	assert.EqualValues(t, 1, report.Interactions)
	assert.EqualValues(t, 1, report.Bookmarks)
	assert.EqualValues(t, 1, report.Follows)

	assert.EqualValues(t, 0, countRows(t, db, &model.News{}, "id = ?", news.ID))
	assert.EqualValues(t, 1, countRows(t, db, &model.Interaction{}, "news_id = ?", keep.ID))
	assert.EqualValues(t, 1, reloadNews(t, db, keep.ID).LikeCount)

	_, err = NewCascadeRepo(db).DeleteNews(t.Context(), news.ID)
	assert.ErrorIs(t, err, ErrNewsAbsent)
}
