package repository

import (
	"context"
	"errors"
	"time"

	"github.com/JiSuMun/New-zigoohang/internal/entity"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	IncreasePoints(ctx context.Context, id string, points int64) error
	DecreasePoints(ctx context.Context, id string, points int64) error
	SetPoints(ctx context.Context, id string, points int64) error
	SetTotalPoints(ctx context.Context, id string, totalPoints int64) error
	UpdateLastLogin(ctx context.Context, id string, lastLogin time.Time) error
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByName(ctx context.Context, name string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("name=?", name).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("email=?", email).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []entity.User
	if err := xcontext.DB(ctx).Where("id IN (?)", ids).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *userRepository) IncreasePoints(ctx context.Context, id string, points int64) error {
	return r.updatePoints(ctx, id, gorm.Expr("points+?", points))
}

func (r *userRepository) DecreasePoints(ctx context.Context, id string, points int64) error {
	return r.updatePoints(ctx, id, gorm.Expr("points-?", points))
}

func (r *userRepository) SetPoints(ctx context.Context, id string, points int64) error {
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Update("points", points).Error
}

func (r *userRepository) updatePoints(ctx context.Context, id string, value any) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Update("points", value)

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

func (r *userRepository) SetTotalPoints(ctx context.Context, id string, totalPoints int64) error {
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Update("total_points", totalPoints).Error
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id string, lastLogin time.Time) error {
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Update("last_login_at", lastLogin).Error
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.User{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Where("id=?", id).Delete(&entity.User{}).Error
}
