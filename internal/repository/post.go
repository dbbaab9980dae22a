package repository

import (
	"context"
	"time"

	"github.com/JiSuMun/New-zigoohang/internal/entity"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
)

type PostRepository interface {
	Create(ctx context.Context, data *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.Post, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, data *entity.Post) error
	Delete(ctx context.Context, id string) error
	GetPrevious(ctx context.Context, createdAt time.Time) (*entity.Post, error)

	ReplaceTags(ctx context.Context, postID string, tags []string) error
	GetTags(ctx context.Context, postID string) ([]string, error)

	AddLike(ctx context.Context, postID, userID string) error
	RemoveLike(ctx context.Context, postID, userID string) error
	HasLiked(ctx context.Context, postID, userID string) (bool, error)
	CountLikes(ctx context.Context, postID string) (int64, error)
	DeleteLikesByPostID(ctx context.Context, postID string) error
}

type postRepository struct{}

func NewPostRepository() *postRepository {
	return &postRepository{}
}

func (r *postRepository) Create(ctx context.Context, data *entity.Post) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var record entity.Post
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *postRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Post, error) {
	var records []entity.Post
	err := xcontext.DB(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.Post{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *postRepository) Update(ctx context.Context, data *entity.Post) error {
	return xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", data.ID).
		Updates(map[string]any{
			"title":   data.Title,
			"content": data.Content,
		}).Error
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Post{}).Error
}

// GetPrevious returns the newest post older than createdAt, or
// gorm.ErrRecordNotFound when the given post is already the oldest.
func (r *postRepository) GetPrevious(ctx context.Context, createdAt time.Time) (*entity.Post, error) {
	var record entity.Post
	err := xcontext.DB(ctx).
		Where("created_at < ?", createdAt).
		Order("created_at DESC").
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *postRepository) ReplaceTags(ctx context.Context, postID string, tags []string) error {
	err := xcontext.DB(ctx).
		Where("post_id=?", postID).
		Delete(&entity.PostTag{}).Error
	if err != nil {
		return err
	}

	if len(tags) == 0 {
		return nil
	}

	records := []entity.PostTag{}
	for _, tag := range tags {
		records = append(records, entity.PostTag{PostID: postID, Tag: tag})
	}

	return xcontext.DB(ctx).Create(&records).Error
}

func (r *postRepository) GetTags(ctx context.Context, postID string) ([]string, error) {
	var tags []string
	err := xcontext.DB(ctx).
		Model(&entity.PostTag{}).
		Where("post_id=?", postID).
		Order("tag ASC").
		Pluck("tag", &tags).Error
	if err != nil {
		return nil, err
	}

	return tags, nil
}

func (r *postRepository) AddLike(ctx context.Context, postID, userID string) error {
	return xcontext.DB(ctx).Create(&entity.PostLike{
		PostID: postID,
		UserID: userID,
	}).Error
}

func (r *postRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	return xcontext.DB(ctx).
		Where("post_id=? AND user_id=?", postID, userID).
		Delete(&entity.PostLike{}).Error
}

func (r *postRepository) HasLiked(ctx context.Context, postID, userID string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.PostLike{}).
		Where("post_id=? AND user_id=?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *postRepository) CountLikes(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.PostLike{}).
		Where("post_id=?", postID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *postRepository) DeleteLikesByPostID(ctx context.Context, postID string) error {
	return xcontext.DB(ctx).
		Where("post_id=?", postID).
		Delete(&entity.PostLike{}).Error
}
