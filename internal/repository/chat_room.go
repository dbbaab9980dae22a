package repository

import (
	"context"

	"github.com/JiSuMun/New-zigoohang/internal/entity"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type ChatRoomRepository interface {
	Create(ctx context.Context, data *entity.ChatRoom) error
	GetByID(ctx context.Context, id string) (*entity.ChatRoom, error)
	GetByName(ctx context.Context, name string) (*entity.ChatRoom, error)
	Delete(ctx context.Context, id string) error

	AddMembers(ctx context.Context, roomID string, userIDs []string) error
	GetMemberIDs(ctx context.Context, roomID string) ([]string, error)
	IsMember(ctx context.Context, roomID, userID string) (bool, error)
	GetRoomsByUserID(ctx context.Context, userID string) ([]entity.ChatRoom, error)
	DeleteMembers(ctx context.Context, roomID string) error
}

type chatRoomRepository struct{}

func NewChatRoomRepository() *chatRoomRepository {
	return &chatRoomRepository{}
}

func (r *chatRoomRepository) Create(ctx context.Context, data *entity.ChatRoom) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *chatRoomRepository) GetByID(ctx context.Context, id string) (*entity.ChatRoom, error) {
	var record entity.ChatRoom
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *chatRoomRepository) GetByName(ctx context.Context, name string) (*entity.ChatRoom, error) {
	var record entity.ChatRoom
	if err := xcontext.DB(ctx).Where("name=?", name).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

// Delete removes the room row for real. A soft delete would keep the
// canonical name occupied and block the participants from ever chatting
// again.
func (r *chatRoomRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Unscoped().Where("id=?", id).Delete(&entity.ChatRoom{}).Error
}

func (r *chatRoomRepository) AddMembers(ctx context.Context, roomID string, userIDs []string) error {
	members := make([]entity.ChatRoomMember, 0, len(userIDs))
	for _, userID := range userIDs {
		members = append(members, entity.ChatRoomMember{
			RoomID: roomID,
			UserID: userID,
		})
	}

	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(members).Error
}

func (r *chatRoomRepository) GetMemberIDs(ctx context.Context, roomID string) ([]string, error) {
	var ids []string
	err := xcontext.DB(ctx).
		Model(&entity.ChatRoomMember{}).
		Where("room_id=?", roomID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *chatRoomRepository) IsMember(ctx context.Context, roomID, userID string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.ChatRoomMember{}).
		Where("room_id=? AND user_id=?", roomID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *chatRoomRepository) GetRoomsByUserID(ctx context.Context, userID string) ([]entity.ChatRoom, error) {
	var records []entity.ChatRoom
	err := xcontext.DB(ctx).
		Model(&entity.ChatRoom{}).
		Joins("JOIN chat_room_members ON chat_room_members.room_id=chat_rooms.id").
		Where("chat_room_members.user_id=?", userID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *chatRoomRepository) DeleteMembers(ctx context.Context, roomID string) error {
	return xcontext.DB(ctx).
		Where("room_id=?", roomID).
		Delete(&entity.ChatRoomMember{}).Error
}
