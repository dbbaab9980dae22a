package repository

import (
	"context"

	"github.com/JiSuMun/New-zigoohang/internal/entity"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
)

type ChatNotificationRepository interface {
	CreateList(ctx context.Context, data []entity.ChatNotification) error
	CountUnread(ctx context.Context, roomID, userID string) (int64, error)
	MarkRead(ctx context.Context, roomID, userID string) error
	DeleteByRoomID(ctx context.Context, roomID string) error
}

type chatNotificationRepository struct{}

func NewChatNotificationRepository() *chatNotificationRepository {
	return &chatNotificationRepository{}
}

func (r *chatNotificationRepository) CreateList(ctx context.Context, data []entity.ChatNotification) error {
	if len(data) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Create(data).Error
}

func (r *chatNotificationRepository) CountUnread(ctx context.Context, roomID, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.ChatNotification{}).
		Where("room_id=? AND user_id=? AND is_read=?", roomID, userID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *chatNotificationRepository) MarkRead(ctx context.Context, roomID, userID string) error {
	return xcontext.DB(ctx).
		Model(&entity.ChatNotification{}).
		Where("room_id=? AND user_id=? AND is_read=?", roomID, userID, false).
		Update("is_read", true).Error
}

func (r *chatNotificationRepository) DeleteByRoomID(ctx context.Context, roomID string) error {
	return xcontext.DB(ctx).
		Where("room_id=?", roomID).
		Delete(&entity.ChatNotification{}).Error
}
