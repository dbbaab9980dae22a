package repository

import (
	"context"

	"github.com/JiSuMun/New-zigoohang/internal/entity"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
)

type RefreshTokenRepository interface {
	Create(ctx context.Context, data *entity.RefreshToken) error
	Get(ctx context.Context, token string) (*entity.RefreshToken, error)
	Delete(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type refreshTokenRepository struct{}

func NewRefreshTokenRepository() *refreshTokenRepository {
	return &refreshTokenRepository{}
}

func (r *refreshTokenRepository) Create(ctx context.Context, data *entity.RefreshToken) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *refreshTokenRepository) Get(ctx context.Context, token string) (*entity.RefreshToken, error) {
	var record entity.RefreshToken
	if err := xcontext.DB(ctx).Where("token=?", token).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *refreshTokenRepository) Delete(ctx context.Context, token string) error {
	return xcontext.DB(ctx).Where("token=?", token).Delete(&entity.RefreshToken{}).Error
}

func (r *refreshTokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Where("user_id=?", userID).Delete(&entity.RefreshToken{}).Error
}
