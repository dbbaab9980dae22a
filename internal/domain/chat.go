package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	"github.com/JiSuMun/New-zigoohang/internal/entity"
	"github.com/JiSuMun/New-zigoohang/internal/model"
	"github.com/JiSuMun/New-zigoohang/internal/repository"
	"github.com/JiSuMun/New-zigoohang/pkg/errorx"
	"github.com/JiSuMun/New-zigoohang/pkg/ws"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
	"github.com/JiSuMun/New-zigoohang/pkg/xredis"
)

// emptyRoomAge is how far in the past a room without messages sorts in the
// inbox.
const emptyRoomAge = 365 * 24 * time.Hour

type ChatDomain interface {
	StartChat(context.Context, *model.StartChatRequest) (*model.StartChatResponse, error)
	StartGroupChat(context.Context, *model.StartGroupChatRequest) (*model.StartGroupChatResponse, error)
	GetInbox(context.Context, *model.GetInboxRequest) (*model.GetInboxResponse, error)
	SendMessage(context.Context, *model.SendMessageRequest) (*model.SendMessageResponse, error)
	GetMessages(context.Context, *model.GetMessagesRequest) (*model.GetMessagesResponse, error)
	DeleteRoom(context.Context, *model.DeleteRoomRequest) (*model.DeleteRoomResponse, error)
	Subscribe(context.Context, *model.SubscribeChatRequest) (*model.SubscribeChatResponse, error)
}

type chatDomain struct {
	userRepo         repository.UserRepository
	roomRepo         repository.ChatRoomRepository
	messageRepo      repository.ChatMessageRepository
	notificationRepo repository.ChatNotificationRepository
	redisClient      xredis.Client
	hub              *ws.Hub
}

func NewChatDomain(
	userRepo repository.UserRepository,
	roomRepo repository.ChatRoomRepository,
	messageRepo repository.ChatMessageRepository,
	notificationRepo repository.ChatNotificationRepository,
	redisClient xredis.Client,
	hub *ws.Hub,
) *chatDomain {
	return &chatDomain{
		userRepo:         userRepo,
		roomRepo:         roomRepo,
		messageRepo:      messageRepo,
		notificationRepo: notificationRepo,
		redisClient:      redisClient,
		hub:              hub,
	}
}

func (d *chatDomain) StartChat(
	ctx context.Context, req *model.StartChatRequest,
) (*model.StartChatResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if req.UserID == "" || req.UserID == requestUserID {
		return nil, errorx.New(errorx.BadRequest, "Not allow chatting with yourself")
	}

	room, err := d.getOrCreateRoom(ctx, []string{requestUserID, req.UserID})
	if err != nil {
		return nil, err
	}

	return &model.StartChatResponse{Room: model.ConvertChatRoom(room)}, nil
}

func (d *chatDomain) StartGroupChat(
	ctx context.Context, req *model.StartGroupChatRequest,
) (*model.StartGroupChatResponse, error) {
	participantIDs := append([]string{xcontext.RequestUserID(ctx)}, req.UserIDs...)
	if len(entity.CanonicalRoomName(participantIDs)) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty participants")
	}

	room, err := d.getOrCreateRoom(ctx, participantIDs)
	if err != nil {
		return nil, err
	}

	return &model.StartGroupChatResponse{Room: model.ConvertChatRoom(room)}, nil
}

// getOrCreateRoom resolves a participant set to its chat room, creating the
// room and its memberships on first contact. Two users who start a chat
// with each other concurrently still end up in the same room: the canonical
// name is unique, so the second insert fails and re-reads the first.
func (d *chatDomain) getOrCreateRoom(ctx context.Context, participantIDs []string) (*entity.ChatRoom, error) {
	users, err := d.userRepo.GetByIDs(ctx, participantIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get participants: %v", err)
		return nil, errorx.Unknown
	}

	memberIDs := []string{}
	for _, u := range users {
		memberIDs = append(memberIDs, u.ID)
	}

	if len(memberIDs) < 2 {
		return nil, errorx.New(errorx.BadRequest, "Not enough valid participants")
	}

	// The name is derived from the resolved members, not the raw request,
	// so unknown ids cannot mint a second room for the same member set.
	name := entity.CanonicalRoomName(memberIDs)

	room, err := d.roomRepo.GetByName(ctx, name)
	if err == nil {
		return room, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get chat room: %v", err)
		return nil, errorx.Unknown
	}

	room = &entity.ChatRoom{
		Base: entity.Base{ID: uuid.NewString()},
		Name: name,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.roomRepo.Create(ctx, room); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race. The winner's room is committed already.
			xcontext.WithRollbackDBTransaction(ctx)
			room, err = d.roomRepo.GetByName(ctx, name)
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot get chat room after conflict: %v", err)
				return nil, errorx.Unknown
			}

			return room, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot create chat room: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.roomRepo.AddMembers(ctx, room.ID, memberIDs); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add chat room members: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return room, nil
}

func (d *chatDomain) GetInbox(
	ctx context.Context, req *model.GetInboxRequest,
) (*model.GetInboxResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)

	rooms, err := d.roomRepo.GetRoomsByUserID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get chat rooms: %v", err)
		return nil, errorx.Unknown
	}

	now := time.Now()
	type inboxEntry struct {
		room     model.InboxRoom
		activity time.Time
	}

	entries := []inboxEntry{}
	for i := range rooms {
		last, err := d.messageRepo.GetLastByRoomID(ctx, rooms[i].ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get last message: %v", err)
			return nil, errorx.Unknown
		}

		unread, err := d.unreadCount(ctx, rooms[i].ID, requestUserID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count unread messages: %v", err)
			return nil, errorx.Unknown
		}

		entry := inboxEntry{
			room: model.InboxRoom{
				Room:        model.ConvertChatRoom(&rooms[i]),
				UnreadCount: unread,
			},
			activity: now.Add(-emptyRoomAge),
		}

		if last != nil {
			msg := model.ConvertChatMessage(last)
			entry.room.LastMessage = &msg
			entry.activity = last.CreatedAt
		}

		entries = append(entries, entry)
	}

	slices.SortFunc(entries, func(a, b inboxEntry) bool {
		return a.activity.After(b.activity)
	})

	clientRooms := []model.InboxRoom{}
	for _, e := range entries {
		clientRooms = append(clientRooms, e.room)
	}

	return &model.GetInboxResponse{Rooms: clientRooms}, nil
}

func (d *chatDomain) SendMessage(
	ctx context.Context, req *model.SendMessageRequest,
) (*model.SendMessageResponse, error) {
	if req.Content == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty message")
	}

	requestUserID := xcontext.RequestUserID(ctx)
	if err := d.requireMember(ctx, req.RoomID, requestUserID); err != nil {
		return nil, err
	}

	memberIDs, err := d.roomRepo.GetMemberIDs(ctx, req.RoomID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get chat room members: %v", err)
		return nil, errorx.Unknown
	}

	message := &entity.ChatMessage{
		ID:        xcontext.SnowFlake(ctx).Generate().Int64(),
		RoomID:    req.RoomID,
		SenderID:  requestUserID,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	notifications := []entity.ChatNotification{}
	for _, memberID := range memberIDs {
		if memberID == requestUserID {
			continue
		}

		notifications = append(notifications, entity.ChatNotification{
			Base:      entity.Base{ID: uuid.NewString()},
			RoomID:    req.RoomID,
			UserID:    memberID,
			MessageID: message.ID,
		})
	}

	func() {
		ctx = xcontext.WithDBTransaction(ctx)
		defer xcontext.WithRollbackDBTransaction(ctx)

		if err = d.messageRepo.Create(ctx, message); err != nil {
			return
		}

		if err = d.notificationRepo.CreateList(ctx, notifications); err != nil {
			return
		}

		xcontext.WithCommitDBTransaction(ctx)
	}()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot store chat message: %v", err)
		return nil, errorx.Unknown
	}

	clientMessage := model.ConvertChatMessage(message)

	// Badge counters and the live push are best effort. The message is
	// durable; a reader that misses the push still sees it via GetMessages.
	for _, n := range notifications {
		if err := d.redisClient.Incr(ctx, unreadKey(n.RoomID, n.UserID)); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot increase unread counter: %v", err)
		}
	}

	if b, err := json.Marshal(clientMessage); err == nil {
		d.hub.Broadcast(req.RoomID, b)
	}

	return &model.SendMessageResponse{Message: clientMessage}, nil
}

func (d *chatDomain) GetMessages(
	ctx context.Context, req *model.GetMessagesRequest,
) (*model.GetMessagesResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if err := d.requireMember(ctx, req.RoomID, requestUserID); err != nil {
		return nil, err
	}

	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 || req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Invalid limit")
	}

	messages, err := d.messageRepo.GetListByRoomID(ctx, req.RoomID, req.Before, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get chat messages: %v", err)
		return nil, errorx.Unknown
	}

	// Reading the room clears its unread state.
	if err := d.notificationRepo.MarkRead(ctx, req.RoomID, requestUserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark notifications read: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.redisClient.Del(ctx, unreadKey(req.RoomID, requestUserID)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot clear unread counter: %v", err)
	}

	clientMessages := []model.ChatMessage{}
	for i := range messages {
		clientMessages = append(clientMessages, model.ConvertChatMessage(&messages[i]))
	}

	return &model.GetMessagesResponse{Messages: clientMessages}, nil
}

func (d *chatDomain) DeleteRoom(
	ctx context.Context, req *model.DeleteRoomRequest,
) (*model.DeleteRoomResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if err := d.requireMember(ctx, req.RoomID, requestUserID); err != nil {
		return nil, err
	}

	memberIDs, err := d.roomRepo.GetMemberIDs(ctx, req.RoomID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get chat room members: %v", err)
		return nil, errorx.Unknown
	}

	func() {
		ctx = xcontext.WithDBTransaction(ctx)
		defer xcontext.WithRollbackDBTransaction(ctx)

		if err = d.notificationRepo.DeleteByRoomID(ctx, req.RoomID); err != nil {
			return
		}

		if err = d.messageRepo.DeleteByRoomID(ctx, req.RoomID); err != nil {
			return
		}

		if err = d.roomRepo.DeleteMembers(ctx, req.RoomID); err != nil {
			return
		}

		if err = d.roomRepo.Delete(ctx, req.RoomID); err != nil {
			return
		}

		xcontext.WithCommitDBTransaction(ctx)
	}()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete chat room: %v", err)
		return nil, errorx.Unknown
	}

	keys := []string{}
	for _, memberID := range memberIDs {
		keys = append(keys, unreadKey(req.RoomID, memberID))
	}

	if err := d.redisClient.Del(ctx, keys...); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot clear unread counters: %v", err)
	}

	return &model.DeleteRoomResponse{}, nil
}

// Subscribe upgrades the request to a websocket and joins the caller to
// every room they are a member of. It blocks until the peer disconnects and
// writes no response of its own.
func (d *chatDomain) Subscribe(
	ctx context.Context, req *model.SubscribeChatRequest,
) (*model.SubscribeChatResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)

	rooms, err := d.roomRepo.GetRoomsByUserID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get chat rooms: %v", err)
		return nil, errorx.Unknown
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	conn, err := upgrader.Upgrade(xcontext.HTTPWriter(ctx), xcontext.HTTPRequest(ctx), nil)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upgrade to websocket: %v", err)
		return nil, errorx.Unknown
	}

	client := ws.NewClient(conn, requestUserID)
	for i := range rooms {
		d.hub.Join(rooms[i].ID, client)
	}

	client.Wait()

	for i := range rooms {
		d.hub.Leave(rooms[i].ID, client)
	}

	return nil, nil
}

func (d *chatDomain) requireMember(ctx context.Context, roomID, userID string) error {
	if roomID == "" {
		return errorx.New(errorx.BadRequest, "Not allow empty room id")
	}

	isMember, err := d.roomRepo.IsMember(ctx, roomID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check room membership: %v", err)
		return errorx.Unknown
	}

	if !isMember {
		return errorx.New(errorx.PermissionDenied, "You are not a member of this room")
	}

	return nil
}

// unreadCount prefers the redis badge counter and falls back to counting
// notification rows when the counter is cold.
func (d *chatDomain) unreadCount(ctx context.Context, roomID, userID string) (int64, error) {
	n, err := d.redisClient.Get(ctx, unreadKey(roomID, userID))
	if err == nil && n > 0 {
		return n, nil
	}

	return d.notificationRepo.CountUnread(ctx, roomID, userID)
}

func unreadKey(roomID, userID string) string {
	return fmt.Sprintf("chat:unread:%s:%s", roomID, userID)
}
