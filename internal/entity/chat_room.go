package entity

import (
	"strings"
	"time"

	"golang.org/x/exp/slices"
)

// ChatRoom is identified by a canonical name derived from its participant
// set. The unique index turns concurrent get-or-create calls into one
// winner plus one duplicate-key error.
type ChatRoom struct {
	Base
	Name string `gorm:"unique"`
}

type ChatRoomMember struct {
	CreatedAt time.Time

	RoomID string   `gorm:"primaryKey"`
	Room   ChatRoom `gorm:"foreignKey:RoomID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`
}

type ChatMessage struct {
	ID       int64  `gorm:"primaryKey"`
	RoomID   string `gorm:"index"`
	SenderID string
	Content  string

	CreatedAt time.Time
}

type ChatNotification struct {
	Base
	RoomID string `gorm:"index"`
	UserID string `gorm:"index"`

	MessageID int64
	IsRead    bool
}

// CanonicalRoomName maps a participant set to the room's unique name:
// sorted, de-duplicated user ids joined with a dash. Any two calls with the
// same set resolve to the same name regardless of order.
func CanonicalRoomName(participantIDs []string) string {
	ids := slices.Clone(participantIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	return strings.Join(ids, "-")
}
