package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/thereayou/chatrooms/internal/chat"
	"github.com/thereayou/chatrooms/internal/ws"
)

type fakePoster struct {
	rooms []string
	users []string
	texts []string
	err   error
}

func (f *fakePoster) Post(roomSlug, username, text string) (*chat.Event, error) {
	f.rooms = append(f.rooms, roomSlug)
	f.users = append(f.users, username)
	f.texts = append(f.texts, text)
	if f.err != nil {
		return nil, f.err
	}
	return &chat.Event{ID: 1, Message: text, Username: username}, nil
}

type fakeLastSeen struct {
	ids chan string
}

func (f *fakeLastSeen) UpdateLastSeen(id string) error {
	f.ids <- id
	return nil
}

func TestHandleFrame_AuthorBoundToSessionIdentity(t *testing.T) {
	req := require.New(t)
	poster := &fakePoster{}
	lastSeen := &fakeLastSeen{ids: make(chan string, 1)}
	h := NewMessageHandler(lastSeen, poster)

	client := &ws.Client{
		UserID:   uuid.New(),
		Username: "alice",
		RoomSlug: "general",
	}

	// username из кадра не становится автором записи
	frame := &ws.InboundFrame{Message: "hi", Username: "mallory"}

	req.NoError(h.HandleFrame(client, frame))

	req.Equal([]string{"general"}, poster.rooms)
	req.Equal([]string{"alice"}, poster.users)
	req.Equal([]string{"hi"}, poster.texts)

	select {
	case id := <-lastSeen.ids:
		req.Equal(client.UserID.String(), id)
	case <-time.After(time.Second):
		req.Fail("last seen was not updated")
	}
}

func TestHandleFrame_PostErrorPropagates(t *testing.T) {
	req := require.New(t)
	poster := &fakePoster{err: chat.ErrRoomNotFound}
	lastSeen := &fakeLastSeen{ids: make(chan string, 1)}
	h := NewMessageHandler(lastSeen, poster)

	client := &ws.Client{UserID: uuid.New(), Username: "alice", RoomSlug: "void"}

	err := h.HandleFrame(client, &ws.InboundFrame{Message: "hi", Username: "alice"})
	req.ErrorIs(err, chat.ErrRoomNotFound)

	// Активность при неудачном кадре не отмечается
	select {
	case <-lastSeen.ids:
		req.Fail("last seen updated for failed frame")
	case <-time.After(50 * time.Millisecond):
	}
}
