package repository

import (
	"context"

	"github.com/JiSuMun/New-zigoohang/internal/entity"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
)

type ReviewRepository interface {
	Create(ctx context.Context, data *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	GetListByPostID(ctx context.Context, postID string) ([]entity.Review, error)
	Update(ctx context.Context, data *entity.Review) error
	Delete(ctx context.Context, id string) error
	DeleteByPostID(ctx context.Context, postID string) error

	AddReaction(ctx context.Context, reviewID, userID, kind string) error
	RemoveReaction(ctx context.Context, reviewID, userID, kind string) error
	HasReaction(ctx context.Context, reviewID, userID, kind string) (bool, error)
	CountReactions(ctx context.Context, reviewID, kind string) (int64, error)
	DeleteReactionsByReviewID(ctx context.Context, reviewID string) error
	DeleteReactionsByPostID(ctx context.Context, postID string) error
}

type reviewRepository struct{}

func NewReviewRepository() *reviewRepository {
	return &reviewRepository{}
}

func (r *reviewRepository) Create(ctx context.Context, data *entity.Review) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	var record entity.Review
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *reviewRepository) GetListByPostID(ctx context.Context, postID string) ([]entity.Review, error) {
	var records []entity.Review
	err := xcontext.DB(ctx).
		Where("post_id=?", postID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *reviewRepository) Update(ctx context.Context, data *entity.Review) error {
	return xcontext.DB(ctx).
		Model(&entity.Review{}).
		Where("id=?", data.ID).
		Update("content", data.Content).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Review{}).Error
}

func (r *reviewRepository) DeleteByPostID(ctx context.Context, postID string) error {
	return xcontext.DB(ctx).
		Where("post_id=?", postID).
		Delete(&entity.Review{}).Error
}

func (r *reviewRepository) AddReaction(ctx context.Context, reviewID, userID, kind string) error {
	return xcontext.DB(ctx).Create(&entity.ReviewReaction{
		ReviewID: reviewID,
		UserID:   userID,
		Kind:     kind,
	}).Error
}

func (r *reviewRepository) RemoveReaction(ctx context.Context, reviewID, userID, kind string) error {
	return xcontext.DB(ctx).
		Where("review_id=? AND user_id=? AND kind=?", reviewID, userID, kind).
		Delete(&entity.ReviewReaction{}).Error
}

func (r *reviewRepository) HasReaction(ctx context.Context, reviewID, userID, kind string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.ReviewReaction{}).
		Where("review_id=? AND user_id=? AND kind=?", reviewID, userID, kind).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *reviewRepository) CountReactions(ctx context.Context, reviewID, kind string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.ReviewReaction{}).
		Where("review_id=? AND kind=?", reviewID, kind).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *reviewRepository) DeleteReactionsByReviewID(ctx context.Context, reviewID string) error {
	return xcontext.DB(ctx).
		Where("review_id=?", reviewID).
		Delete(&entity.ReviewReaction{}).Error
}

func (r *reviewRepository) DeleteReactionsByPostID(ctx context.Context, postID string) error {
	return xcontext.DB(ctx).
		Where(
			"review_id IN (?)",
			xcontext.DB(ctx).Model(&entity.Review{}).Select("id").Where("post_id=?", postID),
		).
		Delete(&entity.ReviewReaction{}).Error
}
