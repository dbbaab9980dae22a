package repository

import (
	"context"

	"github.com/JiSuMun/New-zigoohang/internal/entity"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, data *entity.ChatMessage) error
	GetListByRoomID(ctx context.Context, roomID string, before int64, limit int) ([]entity.ChatMessage, error)
	GetLastByRoomID(ctx context.Context, roomID string) (*entity.ChatMessage, error)
	DeleteByRoomID(ctx context.Context, roomID string) error
}

type chatMessageRepository struct{}

func NewChatMessageRepository() *chatMessageRepository {
	return &chatMessageRepository{}
}

func (r *chatMessageRepository) Create(ctx context.Context, data *entity.ChatMessage) error {
	return xcontext.DB(ctx).Create(data).Error
}

// GetListByRoomID returns up to limit messages older than the before cursor
// (a message id; zero means newest), newest first. Snowflake ids are
// time-ordered, so the id is also the pagination cursor.
func (r *chatMessageRepository) GetListByRoomID(
	ctx context.Context, roomID string, before int64, limit int,
) ([]entity.ChatMessage, error) {
	tx := xcontext.DB(ctx).Where("room_id=?", roomID)
	if before > 0 {
		tx = tx.Where("id < ?", before)
	}

	var records []entity.ChatMessage
	if err := tx.Order("id DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *chatMessageRepository) GetLastByRoomID(ctx context.Context, roomID string) (*entity.ChatMessage, error) {
	var record entity.ChatMessage
	err := xcontext.DB(ctx).
		Where("room_id=?", roomID).
		Order("id DESC").
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *chatMessageRepository) DeleteByRoomID(ctx context.Context, roomID string) error {
	return xcontext.DB(ctx).
		Where("room_id=?", roomID).
		Delete(&entity.ChatMessage{}).Error
}
