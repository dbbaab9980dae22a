package model

import "time"

type ChatRoom struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ChatMessage struct {
	ID        int64     `json:"id"`
	RoomID    string    `json:"room_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type InboxRoom struct {
	Room        ChatRoom     `json:"room"`
	LastMessage *ChatMessage `json:"last_message,omitempty"`
	UnreadCount int64        `json:"unread_count"`
}

type StartChatRequest struct {
	UserID string `json:"user_id"`
}

type StartChatResponse struct {
	Room ChatRoom `json:"room"`
}

type StartGroupChatRequest struct {
	UserIDs []string `json:"user_ids"`
}

type StartGroupChatResponse struct {
	Room ChatRoom `json:"room"`
}

type GetInboxRequest struct{}

type GetInboxResponse struct {
	Rooms []InboxRoom `json:"rooms"`
}

type SendMessageRequest struct {
	RoomID  string `json:"room_id"`
	Content string `json:"content"`
}

type SendMessageResponse struct {
	Message ChatMessage `json:"message"`
}

type GetMessagesRequest struct {
	RoomID string `json:"room_id"`
	Before int64  `json:"before"`
	Limit  int    `json:"limit"`
}

type GetMessagesResponse struct {
	Messages []ChatMessage `json:"messages"`
}

type DeleteRoomRequest struct {
	RoomID string `json:"room_id"`
}

type DeleteRoomResponse struct{}

type SubscribeChatRequest struct{}

type SubscribeChatResponse struct{}
