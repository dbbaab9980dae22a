package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JiSuMun/New-zigoohang/internal/model"
	"github.com/JiSuMun/New-zigoohang/internal/repository"
	"github.com/JiSuMun/New-zigoohang/pkg/testutil"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
)

func newPostDomain() *postDomain {
	return NewPostDomain(repository.NewPostRepository(), repository.NewReviewRepository())
}

func Test_postDomain_CreateAndGet(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newPostDomain()

	created, err := d.Create(ctx, &model.CreatePostRequest{
		Title:   "zero waste tips",
		Content: "bring your own cup",
		Tags:    []string{" eco ", "zero-waste", "eco", ""},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	resp, err := d.Get(ctx, &model.GetPostRequest{PostID: created.ID})
	require.NoError(t, err)
	require.Equal(t, "zero waste tips", resp.Post.Title)
	require.Equal(t, "user1", resp.Post.UserID)
	require.Equal(t, []string{"eco", "zero-waste"}, resp.Post.Tags)
	require.Empty(t, resp.Reviews)
	require.Zero(t, resp.LikeCount)
	require.Empty(t, resp.PreviousPostID)
}

func Test_postDomain_CreateRequiresTitle(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newPostDomain()

	_, err := d.Create(ctx, &model.CreatePostRequest{Content: "no title"})
	require.Error(t, err)
}

func Test_postDomain_GetListNewestFirst(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newPostDomain()

	first, err := d.Create(ctx, &model.CreatePostRequest{Title: "first"})
	require.NoError(t, err)

	second, err := d.Create(ctx, &model.CreatePostRequest{Title: "second"})
	require.NoError(t, err)

	resp, err := d.GetList(ctx, &model.GetPostsRequest{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.Total)
	require.Len(t, resp.Posts, 2)
	require.Equal(t, second.ID, resp.Posts[0].ID)
	require.Equal(t, first.ID, resp.Posts[1].ID)

	// The newer post links back to the older one.
	detail, err := d.Get(ctx, &model.GetPostRequest{PostID: second.ID})
	require.NoError(t, err)
	require.Equal(t, first.ID, detail.PreviousPostID)
}

func Test_postDomain_ToggleLikeIsInvolutive(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newPostDomain()

	post, err := d.Create(ctx, &model.CreatePostRequest{Title: "like me"})
	require.NoError(t, err)

	ctx2 := xcontext.WithRequestUserID(ctx, "user2")
	resp, err := d.ToggleLike(ctx2, &model.TogglePostLikeRequest{PostID: post.ID})
	require.NoError(t, err)
	require.True(t, resp.IsLiked)
	require.Equal(t, int64(1), resp.LikeCount)

	resp, err = d.ToggleLike(ctx2, &model.TogglePostLikeRequest{PostID: post.ID})
	require.NoError(t, err)
	require.False(t, resp.IsLiked)
	require.Zero(t, resp.LikeCount)
}

func Test_postDomain_UpdateReplacesTags(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newPostDomain()

	post, err := d.Create(ctx, &model.CreatePostRequest{
		Title: "before",
		Tags:  []string{"old"},
	})
	require.NoError(t, err)

	_, err = d.Update(ctx, &model.UpdatePostRequest{
		PostID:  post.ID,
		Title:   "after",
		Content: "updated",
		Tags:    []string{"new", "fresh"},
	})
	require.NoError(t, err)

	resp, err := d.Get(ctx, &model.GetPostRequest{PostID: post.ID})
	require.NoError(t, err)
	require.Equal(t, "after", resp.Post.Title)
	require.Equal(t, []string{"fresh", "new"}, resp.Post.Tags)
}

func Test_postDomain_OnlyAuthorMayUpdateOrDelete(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newPostDomain()

	post, err := d.Create(ctx, &model.CreatePostRequest{Title: "mine"})
	require.NoError(t, err)

	ctx2 := xcontext.WithRequestUserID(ctx, "user2")
	_, err = d.Update(ctx2, &model.UpdatePostRequest{PostID: post.ID, Title: "stolen"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "author")

	_, err = d.Delete(ctx2, &model.DeletePostRequest{PostID: post.ID})
	require.Error(t, err)

	_, err = d.Delete(ctx, &model.DeletePostRequest{PostID: post.ID})
	require.NoError(t, err)

	_, err = d.Get(ctx, &model.GetPostRequest{PostID: post.ID})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Not found")
}

func Test_postDomain_ReviewLifecycle(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newPostDomain()

	post, err := d.Create(ctx, &model.CreatePostRequest{Title: "review me"})
	require.NoError(t, err)

	ctx2 := xcontext.WithRequestUserID(ctx, "user2")
	review, err := d.CreateReview(ctx2, &model.CreateReviewRequest{
		PostID:  post.ID,
		Content: "nice one",
	})
	require.NoError(t, err)

	// Only the reviewer may edit or remove it.
	_, err = d.UpdateReview(ctx, &model.UpdateReviewRequest{ReviewID: review.ID, Content: "hijack"})
	require.Error(t, err)

	_, err = d.UpdateReview(ctx2, &model.UpdateReviewRequest{ReviewID: review.ID, Content: "even better"})
	require.NoError(t, err)

	resp, err := d.Get(ctx, &model.GetPostRequest{PostID: post.ID})
	require.NoError(t, err)
	require.Len(t, resp.Reviews, 1)
	require.Equal(t, "even better", resp.Reviews[0].Review.Content)
	require.Equal(t, "user2", resp.Reviews[0].Review.UserID)

	_, err = d.DeleteReview(ctx2, &model.DeleteReviewRequest{ReviewID: review.ID})
	require.NoError(t, err)

	resp, err = d.Get(ctx, &model.GetPostRequest{PostID: post.ID})
	require.NoError(t, err)
	require.Empty(t, resp.Reviews)
}

func Test_postDomain_ReviewLikeAndDislikeAreIndependent(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newPostDomain()

	post, err := d.Create(ctx, &model.CreatePostRequest{Title: "react to me"})
	require.NoError(t, err)

	review, err := d.CreateReview(ctx, &model.CreateReviewRequest{
		PostID:  post.ID,
		Content: "controversial",
	})
	require.NoError(t, err)

	ctx2 := xcontext.WithRequestUserID(ctx, "user2")
	resp, err := d.ToggleReviewLike(ctx2, &model.ToggleReviewReactionRequest{ReviewID: review.ID})
	require.NoError(t, err)
	require.True(t, resp.IsLiked)
	require.Equal(t, int64(1), resp.LikeCount)
	require.False(t, resp.IsDisliked)

	// Disliking does not clear the like; both toggles stand on their own.
	resp, err = d.ToggleReviewDislike(ctx2, &model.ToggleReviewReactionRequest{ReviewID: review.ID})
	require.NoError(t, err)
	require.True(t, resp.IsLiked)
	require.True(t, resp.IsDisliked)
	require.Equal(t, int64(1), resp.LikeCount)
	require.Equal(t, int64(1), resp.DislikeCount)

	resp, err = d.ToggleReviewLike(ctx2, &model.ToggleReviewReactionRequest{ReviewID: review.ID})
	require.NoError(t, err)
	require.False(t, resp.IsLiked)
	require.True(t, resp.IsDisliked)
	require.Zero(t, resp.LikeCount)
	require.Equal(t, int64(1), resp.DislikeCount)
}

func Test_postDomain_DeletePostRemovesReviewsAndLikes(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newPostDomain()

	post, err := d.Create(ctx, &model.CreatePostRequest{Title: "doomed"})
	require.NoError(t, err)

	ctx2 := xcontext.WithRequestUserID(ctx, "user2")
	review, err := d.CreateReview(ctx2, &model.CreateReviewRequest{PostID: post.ID, Content: "r"})
	require.NoError(t, err)

	_, err = d.ToggleLike(ctx2, &model.TogglePostLikeRequest{PostID: post.ID})
	require.NoError(t, err)

	_, err = d.ToggleReviewDislike(ctx2, &model.ToggleReviewReactionRequest{ReviewID: review.ID})
	require.NoError(t, err)

	_, err = d.Delete(ctx, &model.DeletePostRequest{PostID: post.ID})
	require.NoError(t, err)

	reviewRepo := repository.NewReviewRepository()
	_, err = reviewRepo.GetByID(ctx, review.ID)
	require.Error(t, err)

	count, err := reviewRepo.CountReactions(ctx, review.ID, "DISLIKE")
	require.NoError(t, err)
	require.Zero(t, count)

	likes, err := repository.NewPostRepository().CountLikes(ctx, post.ID)
	require.NoError(t, err)
	require.Zero(t, likes)
}
