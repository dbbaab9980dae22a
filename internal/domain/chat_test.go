package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JiSuMun/New-zigoohang/internal/model"
	"github.com/JiSuMun/New-zigoohang/internal/repository"
	"github.com/JiSuMun/New-zigoohang/pkg/testutil"
	"github.com/JiSuMun/New-zigoohang/pkg/ws"
	"github.com/JiSuMun/New-zigoohang/pkg/xcontext"
)

func newChatDomain() *chatDomain {
	return NewChatDomain(
		repository.NewUserRepository(),
		repository.NewChatRoomRepository(),
		repository.NewChatMessageRepository(),
		repository.NewChatNotificationRepository(),
		&testutil.MockRedisClient{},
		ws.NewHub(),
	)
}

func Test_chatDomain_StartChatIsSymmetric(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newChatDomain()

	resp1, err := d.StartChat(ctx, &model.StartChatRequest{UserID: "user2"})
	require.NoError(t, err)

	// user2 starting a chat with user1 resolves to the very same room.
	ctx2 := xcontext.WithRequestUserID(ctx, "user2")
	resp2, err := d.StartChat(ctx2, &model.StartChatRequest{UserID: "user1"})
	require.NoError(t, err)

	require.Equal(t, resp1.Room.ID, resp2.Room.ID)
	require.Equal(t, resp1.Room.Name, resp2.Room.Name)
}

func Test_chatDomain_StartChatIsIdempotent(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newChatDomain()

	resp1, err := d.StartChat(ctx, &model.StartChatRequest{UserID: "user2"})
	require.NoError(t, err)

	resp2, err := d.StartChat(ctx, &model.StartChatRequest{UserID: "user2"})
	require.NoError(t, err)
	require.Equal(t, resp1.Room.ID, resp2.Room.ID)

	// Both participants are members exactly once.
	roomRepo := repository.NewChatRoomRepository()
	memberIDs, err := roomRepo.GetMemberIDs(ctx, resp1.Room.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"user1", "user2"}, memberIDs)
}

func Test_chatDomain_StartChatWithSelfFails(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newChatDomain()

	_, err := d.StartChat(ctx, &model.StartChatRequest{UserID: "user1"})
	require.Error(t, err)
}

func Test_chatDomain_GroupChatIgnoresOrderAndDuplicates(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newChatDomain()

	resp1, err := d.StartGroupChat(ctx, &model.StartGroupChatRequest{
		UserIDs: []string{"user2", "admin"},
	})
	require.NoError(t, err)

	resp2, err := d.StartGroupChat(ctx, &model.StartGroupChatRequest{
		UserIDs: []string{"admin", "user2", "user1"},
	})
	require.NoError(t, err)
	require.Equal(t, resp1.Room.ID, resp2.Room.ID)
}

func Test_chatDomain_GroupChatIgnoresUnknownUsers(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newChatDomain()

	// Unknown ids are dropped during resolution, so this collapses to the
	// user1/user2 pair and shares its room with a plain direct chat.
	group, err := d.StartGroupChat(ctx, &model.StartGroupChatRequest{
		UserIDs: []string{"user2", "ghost"},
	})
	require.NoError(t, err)

	direct, err := d.StartChat(ctx, &model.StartChatRequest{UserID: "user2"})
	require.NoError(t, err)
	require.Equal(t, group.Room.ID, direct.Room.ID)
	require.Equal(t, "user1-user2", direct.Room.Name)

	roomRepo := repository.NewChatRoomRepository()
	memberIDs, err := roomRepo.GetMemberIDs(ctx, group.Room.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"user1", "user2"}, memberIDs)
}

func Test_chatDomain_SendMessageFanOut(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newChatDomain()

	room, err := d.StartGroupChat(ctx, &model.StartGroupChatRequest{
		UserIDs: []string{"user2", "admin"},
	})
	require.NoError(t, err)

	resp, err := d.SendMessage(ctx, &model.SendMessageRequest{
		RoomID:  room.Room.ID,
		Content: "hello",
	})
	require.NoError(t, err)
	require.Equal(t, "user1", resp.Message.SenderID)
	require.NotZero(t, resp.Message.ID)

	// Everyone but the sender gets an unread notification.
	notificationRepo := repository.NewChatNotificationRepository()

	unread, err := notificationRepo.CountUnread(ctx, room.Room.ID, "user2")
	require.NoError(t, err)
	require.Equal(t, int64(1), unread)

	unread, err = notificationRepo.CountUnread(ctx, room.Room.ID, "admin")
	require.NoError(t, err)
	require.Equal(t, int64(1), unread)

	unread, err = notificationRepo.CountUnread(ctx, room.Room.ID, "user1")
	require.NoError(t, err)
	require.Equal(t, int64(0), unread)
}

func Test_chatDomain_SendMessageRequiresMembership(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newChatDomain()

	room, err := d.StartChat(ctx, &model.StartChatRequest{UserID: "user2"})
	require.NoError(t, err)

	ctxOutsider := xcontext.WithRequestUserID(ctx, "admin")
	_, err = d.SendMessage(ctxOutsider, &model.SendMessageRequest{
		RoomID:  room.Room.ID,
		Content: "let me in",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a member")
}

func Test_chatDomain_GetMessagesMarksRead(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newChatDomain()

	room, err := d.StartChat(ctx, &model.StartChatRequest{UserID: "user2"})
	require.NoError(t, err)

	_, err = d.SendMessage(ctx, &model.SendMessageRequest{RoomID: room.Room.ID, Content: "one"})
	require.NoError(t, err)
	_, err = d.SendMessage(ctx, &model.SendMessageRequest{RoomID: room.Room.ID, Content: "two"})
	require.NoError(t, err)

	ctx2 := xcontext.WithRequestUserID(ctx, "user2")
	resp, err := d.GetMessages(ctx2, &model.GetMessagesRequest{RoomID: room.Room.ID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 2)

	// Newest first.
	require.Equal(t, "two", resp.Messages[0].Content)
	require.Equal(t, "one", resp.Messages[1].Content)

	unread, err := repository.NewChatNotificationRepository().CountUnread(ctx, room.Room.ID, "user2")
	require.NoError(t, err)
	require.Equal(t, int64(0), unread)
}

func Test_chatDomain_GetInboxOrder(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newChatDomain()

	roomQuiet, err := d.StartChat(ctx, &model.StartChatRequest{UserID: "admin"})
	require.NoError(t, err)

	roomActive, err := d.StartChat(ctx, &model.StartChatRequest{UserID: "user2"})
	require.NoError(t, err)

	_, err = d.SendMessage(ctx, &model.SendMessageRequest{RoomID: roomActive.Room.ID, Content: "hi"})
	require.NoError(t, err)

	// The room with a message sorts ahead of the empty one.
	resp, err := d.GetInbox(ctx, &model.GetInboxRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Rooms, 2)
	require.Equal(t, roomActive.Room.ID, resp.Rooms[0].Room.ID)
	require.Equal(t, roomQuiet.Room.ID, resp.Rooms[1].Room.ID)
	require.NotNil(t, resp.Rooms[0].LastMessage)
	require.Nil(t, resp.Rooms[1].LastMessage)

	// The recipient sees one unread message on the active room.
	ctx2 := xcontext.WithRequestUserID(ctx, "user2")
	resp, err = d.GetInbox(ctx2, &model.GetInboxRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Rooms, 1)
	require.Equal(t, int64(1), resp.Rooms[0].UnreadCount)
}

func Test_chatDomain_DeleteRoom(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.InsertUsers(ctx)

	d := newChatDomain()

	room, err := d.StartChat(ctx, &model.StartChatRequest{UserID: "user2"})
	require.NoError(t, err)

	_, err = d.SendMessage(ctx, &model.SendMessageRequest{RoomID: room.Room.ID, Content: "bye"})
	require.NoError(t, err)

	_, err = d.DeleteRoom(ctx, &model.DeleteRoomRequest{RoomID: room.Room.ID})
	require.NoError(t, err)

	resp, err := d.GetInbox(ctx, &model.GetInboxRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Rooms)

	// A new chat between the pair starts from scratch in a fresh room.
	again, err := d.StartChat(ctx, &model.StartChatRequest{UserID: "user2"})
	require.NoError(t, err)
	require.NotEqual(t, room.Room.ID, again.Room.ID)
}
