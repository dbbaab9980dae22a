package model

import "time"

type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

type Review struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewDetail decorates a review with its reaction tallies and, for an
// authenticated caller, their own reaction state.
type ReviewDetail struct {
	Review       Review `json:"review"`
	LikeCount    int64  `json:"like_count"`
	DislikeCount int64  `json:"dislike_count"`
	IsLiked      bool   `json:"is_liked"`
	IsDisliked   bool   `json:"is_disliked"`
}

type CreatePostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type CreatePostResponse struct {
	ID string `json:"id"`
}

type GetPostsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetPostsResponse struct {
	Posts []Post `json:"posts"`
	Total int64  `json:"total"`
}

type GetPostRequest struct {
	PostID string `json:"post_id"`
}

type GetPostResponse struct {
	Post           Post           `json:"post"`
	Reviews        []ReviewDetail `json:"reviews"`
	LikeCount      int64          `json:"like_count"`
	IsLiked        bool           `json:"is_liked"`
	PreviousPostID string         `json:"previous_post_id"`
}

type UpdatePostRequest struct {
	PostID  string   `json:"post_id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type UpdatePostResponse struct{}

type DeletePostRequest struct {
	PostID string `json:"post_id"`
}

type DeletePostResponse struct{}

type TogglePostLikeRequest struct {
	PostID string `json:"post_id"`
}

type TogglePostLikeResponse struct {
	IsLiked   bool  `json:"is_liked"`
	LikeCount int64 `json:"like_count"`
}

type CreateReviewRequest struct {
	PostID  string `json:"post_id"`
	Content string `json:"content"`
}

type CreateReviewResponse struct {
	ID string `json:"id"`
}

type UpdateReviewRequest struct {
	ReviewID string `json:"review_id"`
	Content  string `json:"content"`
}

type UpdateReviewResponse struct{}

type DeleteReviewRequest struct {
	ReviewID string `json:"review_id"`
}

type DeleteReviewResponse struct{}

type ToggleReviewReactionRequest struct {
	ReviewID string `json:"review_id"`
}

type ToggleReviewReactionResponse struct {
	IsLiked      bool  `json:"is_liked"`
	LikeCount    int64 `json:"like_count"`
	IsDisliked   bool  `json:"is_disliked"`
	DislikeCount int64 `json:"dislike_count"`
}
