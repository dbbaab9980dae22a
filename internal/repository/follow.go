package repository

import (
	"context"
	"errors"

	"github.com/JiSuMun/New-zigoohang/internal/entity"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
	"gorm.io/gorm"
)

type FollowRepository interface {
	Create(ctx context.Context, data *entity.Follow) error
	Delete(ctx context.Context, followerID, followeeID string) error
	Exists(ctx context.Context, followerID, followeeID string) (bool, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	GetFollowing(ctx context.Context, userID string) ([]entity.User, error)
	GetFollowers(ctx context.Context, userID string) ([]entity.User, error)
	GetContacts(ctx context.Context, userID string) ([]entity.User, error)
}

type followRepository struct{}

func NewFollowRepository() *followRepository {
	return &followRepository{}
}

func (r *followRepository) Create(ctx context.Context, data *entity.Follow) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID string) error {
	tx := xcontext.DB(ctx).
		Where("follower_id=? AND followee_id=?", followerID, followeeID).
		Delete(&entity.Follow{})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Follow{}).
		Where("follower_id=? AND followee_id=?", followerID, followeeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Follow{}).
		Where("follower_id=?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Follow{}).
		Where("followee_id=?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *followRepository) GetFollowing(ctx context.Context, userID string) ([]entity.User, error) {
	var records []entity.User
	err := xcontext.DB(ctx).
		Model(&entity.User{}).
		Joins("JOIN follows ON follows.followee_id=users.id").
		Where("follows.follower_id=?", userID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *followRepository) GetFollowers(ctx context.Context, userID string) ([]entity.User, error) {
	var records []entity.User
	err := xcontext.DB(ctx).
		Model(&entity.User{}).
		Joins("JOIN follows ON follows.follower_id=users.id").
		Where("follows.followee_id=?", userID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// GetContacts returns the union of the users userID follows and the users
// following userID. The UNION de-duplicates users on both sides; the caller
// is still excluded explicitly in case a self-edge ever slips into the
// table.
func (r *followRepository) GetContacts(ctx context.Context, userID string) ([]entity.User, error) {
	var records []entity.User
	err := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where(
			"users.id IN (? UNION ?)",
			xcontext.DB(ctx).Model(&entity.Follow{}).Select("followee_id").Where("follower_id=?", userID),
			xcontext.DB(ctx).Model(&entity.Follow{}).Select("follower_id").Where("followee_id=?", userID),
		).
		Where("users.id <> ?", userID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
