package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	"github.com/JiSuMun/New-zigoohang/internal/entity"
	"github.com/JiSuMun/New-zigoohang/internal/model"
	"github.com/JiSuMun/New-zigoohang/internal/repository"
	"github.com/JiSuMun/New-zigoohang/pkg/errorx"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
)

type PostDomain interface {
	Create(context.Context, *model.CreatePostRequest) (*model.CreatePostResponse, error)
	GetList(context.Context, *model.GetPostsRequest) (*model.GetPostsResponse, error)
	Get(context.Context, *model.GetPostRequest) (*model.GetPostResponse, error)
	Update(context.Context, *model.UpdatePostRequest) (*model.UpdatePostResponse, error)
	Delete(context.Context, *model.DeletePostRequest) (*model.DeletePostResponse, error)
	ToggleLike(context.Context, *model.TogglePostLikeRequest) (*model.TogglePostLikeResponse, error)
	CreateReview(context.Context, *model.CreateReviewRequest) (*model.CreateReviewResponse, error)
	UpdateReview(context.Context, *model.UpdateReviewRequest) (*model.UpdateReviewResponse, error)
	DeleteReview(context.Context, *model.DeleteReviewRequest) (*model.DeleteReviewResponse, error)
	ToggleReviewLike(context.Context, *model.ToggleReviewReactionRequest) (*model.ToggleReviewReactionResponse, error)
	ToggleReviewDislike(context.Context, *model.ToggleReviewReactionRequest) (*model.ToggleReviewReactionResponse, error)
}

type postDomain struct {
	postRepo   repository.PostRepository
	reviewRepo repository.ReviewRepository
}

func NewPostDomain(
	postRepo repository.PostRepository,
	reviewRepo repository.ReviewRepository,
) *postDomain {
	return &postDomain{
		postRepo:   postRepo,
		reviewRepo: reviewRepo,
	}
}

func (d *postDomain) Create(
	ctx context.Context, req *model.CreatePostRequest,
) (*model.CreatePostResponse, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	post := &entity.Post{
		Base:    entity.Base{ID: uuid.NewString()},
		UserID:  xcontext.RequestUserID(ctx),
		Title:   req.Title,
		Content: req.Content,
	}

	var err error
	func() {
		ctx = xcontext.WithDBTransaction(ctx)
		defer xcontext.WithRollbackDBTransaction(ctx)

		if err = d.postRepo.Create(ctx, post); err != nil {
			return
		}

		if err = d.postRepo.ReplaceTags(ctx, post.ID, normalizeTags(req.Tags)); err != nil {
			return
		}

		xcontext.WithCommitDBTransaction(ctx)
	}()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreatePostResponse{ID: post.ID}, nil
}

func (d *postDomain) GetList(
	ctx context.Context, req *model.GetPostsRequest,
) (*model.GetPostsResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 || req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Invalid limit")
	}

	posts, err := d.postRepo.GetList(ctx, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts: %v", err)
		return nil, errorx.Unknown
	}

	total, err := d.postRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count posts: %v", err)
		return nil, errorx.Unknown
	}

	clientPosts := []model.Post{}
	for i := range posts {
		tags, err := d.postRepo.GetTags(ctx, posts[i].ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get post tags: %v", err)
			return nil, errorx.Unknown
		}

		clientPosts = append(clientPosts, model.ConvertPost(&posts[i], tags))
	}

	return &model.GetPostsResponse{Posts: clientPosts, Total: total}, nil
}

func (d *postDomain) Get(
	ctx context.Context, req *model.GetPostRequest,
) (*model.GetPostResponse, error) {
	post, err := d.getPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	tags, err := d.postRepo.GetTags(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get post tags: %v", err)
		return nil, errorx.Unknown
	}

	likeCount, err := d.postRepo.CountLikes(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count post likes: %v", err)
		return nil, errorx.Unknown
	}

	requestUserID := xcontext.RequestUserID(ctx)

	isLiked := false
	if requestUserID != "" {
		isLiked, err = d.postRepo.HasLiked(ctx, post.ID, requestUserID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check post like: %v", err)
			return nil, errorx.Unknown
		}
	}

	previousPostID := ""
	previous, err := d.postRepo.GetPrevious(ctx, post.CreatedAt)
	if err == nil {
		previousPostID = previous.ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get previous post: %v", err)
		return nil, errorx.Unknown
	}

	reviews, err := d.reviewRepo.GetListByPostID(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reviews: %v", err)
		return nil, errorx.Unknown
	}

	clientReviews := []model.ReviewDetail{}
	for i := range reviews {
		detail, err := d.reviewDetail(ctx, &reviews[i], requestUserID)
		if err != nil {
			return nil, err
		}

		clientReviews = append(clientReviews, detail)
	}

	return &model.GetPostResponse{
		Post:           model.ConvertPost(post, tags),
		Reviews:        clientReviews,
		LikeCount:      likeCount,
		IsLiked:        isLiked,
		PreviousPostID: previousPostID,
	}, nil
}

func (d *postDomain) Update(
	ctx context.Context, req *model.UpdatePostRequest,
) (*model.UpdatePostResponse, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	post, err := d.getPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if post.UserID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can update this post")
	}

	post.Title = req.Title
	post.Content = req.Content

	func() {
		ctx = xcontext.WithDBTransaction(ctx)
		defer xcontext.WithRollbackDBTransaction(ctx)

		if err = d.postRepo.Update(ctx, post); err != nil {
			return
		}

		if err = d.postRepo.ReplaceTags(ctx, post.ID, normalizeTags(req.Tags)); err != nil {
			return
		}

		xcontext.WithCommitDBTransaction(ctx)
	}()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdatePostResponse{}, nil
}

func (d *postDomain) Delete(
	ctx context.Context, req *model.DeletePostRequest,
) (*model.DeletePostResponse, error) {
	post, err := d.getPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if post.UserID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete this post")
	}

	func() {
		ctx = xcontext.WithDBTransaction(ctx)
		defer xcontext.WithRollbackDBTransaction(ctx)

		if err = d.reviewRepo.DeleteReactionsByPostID(ctx, post.ID); err != nil {
			return
		}

		if err = d.reviewRepo.DeleteByPostID(ctx, post.ID); err != nil {
			return
		}

		if err = d.postRepo.DeleteLikesByPostID(ctx, post.ID); err != nil {
			return
		}

		if err = d.postRepo.ReplaceTags(ctx, post.ID, nil); err != nil {
			return
		}

		if err = d.postRepo.Delete(ctx, post.ID); err != nil {
			return
		}

		xcontext.WithCommitDBTransaction(ctx)
	}()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete post: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeletePostResponse{}, nil
}

func (d *postDomain) ToggleLike(
	ctx context.Context, req *model.TogglePostLikeRequest,
) (*model.TogglePostLikeResponse, error) {
	post, err := d.getPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	requestUserID := xcontext.RequestUserID(ctx)
	isLiked, err := d.postRepo.HasLiked(ctx, post.ID, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check post like: %v", err)
		return nil, errorx.Unknown
	}

	if isLiked {
		err = d.postRepo.RemoveLike(ctx, post.ID, requestUserID)
	} else {
		err = d.postRepo.AddLike(ctx, post.ID, requestUserID)
	}
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot toggle post like: %v", err)
		return nil, errorx.Unknown
	}

	likeCount, err := d.postRepo.CountLikes(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count post likes: %v", err)
		return nil, errorx.Unknown
	}

	return &model.TogglePostLikeResponse{IsLiked: !isLiked, LikeCount: likeCount}, nil
}

func (d *postDomain) CreateReview(
	ctx context.Context, req *model.CreateReviewRequest,
) (*model.CreateReviewResponse, error) {
	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty content")
	}

	post, err := d.getPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	review := &entity.Review{
		Base:    entity.Base{ID: uuid.NewString()},
		PostID:  post.ID,
		UserID:  xcontext.RequestUserID(ctx),
		Content: req.Content,
	}

	if err := d.reviewRepo.Create(ctx, review); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create review: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateReviewResponse{ID: review.ID}, nil
}

func (d *postDomain) UpdateReview(
	ctx context.Context, req *model.UpdateReviewRequest,
) (*model.UpdateReviewResponse, error) {
	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty content")
	}

	review, err := d.getReview(ctx, req.ReviewID)
	if err != nil {
		return nil, err
	}

	if review.UserID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can update this review")
	}

	review.Content = req.Content
	if err := d.reviewRepo.Update(ctx, review); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update review: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateReviewResponse{}, nil
}

func (d *postDomain) DeleteReview(
	ctx context.Context, req *model.DeleteReviewRequest,
) (*model.DeleteReviewResponse, error) {
	review, err := d.getReview(ctx, req.ReviewID)
	if err != nil {
		return nil, err
	}

	if review.UserID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete this review")
	}

	func() {
		ctx = xcontext.WithDBTransaction(ctx)
		defer xcontext.WithRollbackDBTransaction(ctx)

		if err = d.reviewRepo.DeleteReactionsByReviewID(ctx, review.ID); err != nil {
			return
		}

		if err = d.reviewRepo.Delete(ctx, review.ID); err != nil {
			return
		}

		xcontext.WithCommitDBTransaction(ctx)
	}()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete review: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteReviewResponse{}, nil
}

func (d *postDomain) ToggleReviewLike(
	ctx context.Context, req *model.ToggleReviewReactionRequest,
) (*model.ToggleReviewReactionResponse, error) {
	return d.toggleReviewReaction(ctx, req.ReviewID, entity.ReactionLike)
}

func (d *postDomain) ToggleReviewDislike(
	ctx context.Context, req *model.ToggleReviewReactionRequest,
) (*model.ToggleReviewReactionResponse, error) {
	return d.toggleReviewReaction(ctx, req.ReviewID, entity.ReactionDislike)
}

func (d *postDomain) toggleReviewReaction(
	ctx context.Context, reviewID, kind string,
) (*model.ToggleReviewReactionResponse, error) {
	review, err := d.getReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	requestUserID := xcontext.RequestUserID(ctx)
	hasReaction, err := d.reviewRepo.HasReaction(ctx, review.ID, requestUserID, kind)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check review reaction: %v", err)
		return nil, errorx.Unknown
	}

	if hasReaction {
		err = d.reviewRepo.RemoveReaction(ctx, review.ID, requestUserID, kind)
	} else {
		err = d.reviewRepo.AddReaction(ctx, review.ID, requestUserID, kind)
	}
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot toggle review reaction: %v", err)
		return nil, errorx.Unknown
	}

	detail, err := d.reviewDetail(ctx, review, requestUserID)
	if err != nil {
		return nil, err
	}

	return &model.ToggleReviewReactionResponse{
		IsLiked:      detail.IsLiked,
		LikeCount:    detail.LikeCount,
		IsDisliked:   detail.IsDisliked,
		DislikeCount: detail.DislikeCount,
	}, nil
}

func (d *postDomain) reviewDetail(
	ctx context.Context, review *entity.Review, requestUserID string,
) (model.ReviewDetail, error) {
	likeCount, err := d.reviewRepo.CountReactions(ctx, review.ID, entity.ReactionLike)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count review likes: %v", err)
		return model.ReviewDetail{}, errorx.Unknown
	}

	dislikeCount, err := d.reviewRepo.CountReactions(ctx, review.ID, entity.ReactionDislike)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count review dislikes: %v", err)
		return model.ReviewDetail{}, errorx.Unknown
	}

	detail := model.ReviewDetail{
		Review:       model.ConvertReview(review),
		LikeCount:    likeCount,
		DislikeCount: dislikeCount,
	}

	if requestUserID != "" {
		detail.IsLiked, err = d.reviewRepo.HasReaction(ctx, review.ID, requestUserID, entity.ReactionLike)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check review like: %v", err)
			return model.ReviewDetail{}, errorx.Unknown
		}

		detail.IsDisliked, err = d.reviewRepo.HasReaction(ctx, review.ID, requestUserID, entity.ReactionDislike)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check review dislike: %v", err)
			return model.ReviewDetail{}, errorx.Unknown
		}
	}

	return detail, nil
}

func (d *postDomain) getPost(ctx context.Context, id string) (*entity.Post, error) {
	if id == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty post id")
	}

	post, err := d.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	return post, nil
}

func (d *postDomain) getReview(ctx context.Context, id string) (*entity.Review, error) {
	if id == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty review id")
	}

	review, err := d.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found review")
		}

		xcontext.Logger(ctx).Errorf("Cannot get review: %v", err)
		return nil, errorx.Unknown
	}

	return review, nil
}

// normalizeTags trims whitespace, drops empties, and de-duplicates so
// "eco, eco ,  " stores a single "eco" tag.
func normalizeTags(tags []string) []string {
	cleaned := []string{}
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			cleaned = append(cleaned, tag)
		}
	}

	slices.Sort(cleaned)
	return slices.Compact(cleaned)
}
