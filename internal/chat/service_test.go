package chat

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/thereayou/chatrooms/internal/models"
)

var storeClock = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeStore struct {
	users map[string]*models.User
	rooms map[string]*models.Room

	saved     []*models.Message
	createErr error
	nextID    uint
}

func newFakeStore() *fakeStore {
	alice := &models.User{ID: uuid.New(), Username: "alice"}
	general := &models.Room{ID: uuid.New(), Name: "General", Slug: "general"}
	return &fakeStore{
		users: map[string]*models.User{"alice": alice},
		rooms: map[string]*models.Room{"general": general},
	}
}

func (f *fakeStore) FindUserByUsername(username string) (*models.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeStore) FindRoomBySlug(slug string) (*models.Room, error) {
	room, ok := f.rooms[slug]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return room, nil
}

func (f *fakeStore) CreateMessage(message *models.Message) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	message.ID = f.nextID
	message.CreatedAt = storeClock
	f.saved = append(f.saved, message)
	return nil
}

type fakeBroadcaster struct {
	keys     []string
	payloads [][]byte
}

func (f *fakeBroadcaster) Broadcast(groupKey string, payload []byte) {
	f.keys = append(f.keys, groupKey)
	f.payloads = append(f.payloads, payload)
}

func TestService_PostPersistsThenBroadcasts(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	registry := &fakeBroadcaster{}
	svc := NewService(store, registry)

	event, err := svc.Post("general", "alice", "hi")
	req.NoError(err)

	// Сообщение записано с атрибутами отправителя и комнаты
	req.Len(store.saved, 1)
	req.Equal("hi", store.saved[0].Content)
	req.Equal(store.users["alice"].ID, store.saved[0].UserID)
	req.Equal(store.rooms["general"].ID, store.saved[0].RoomID)

	// Рассылка ушла в группу комнаты и несёт серверные id и timestamp
	req.Equal([]string{"chat_general"}, registry.keys)
	req.Len(registry.payloads, 1)

	var wire Event
	req.NoError(json.Unmarshal(registry.payloads[0], &wire))
	req.Equal(*event, wire)
	req.Equal(uint(1), wire.ID)
	req.Equal("hi", wire.Message)
	req.Equal("alice", wire.Username)
	req.Equal(storeClock.Format(time.RFC3339), wire.Timestamp)
}

func TestService_PostBlankTextIsDropped(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		store := newFakeStore()
		registry := &fakeBroadcaster{}
		svc := NewService(store, registry)

		_, err := svc.Post("general", "alice", text)

		require.ErrorIs(t, err, ErrEmptyMessage)
		require.Empty(t, store.saved)
		require.Empty(t, registry.payloads)
	}
}

func TestService_PostUnknownUser(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	registry := &fakeBroadcaster{}
	svc := NewService(store, registry)

	_, err := svc.Post("general", "mallory", "hi")

	req.ErrorIs(err, ErrUserNotFound)
	req.Empty(store.saved)
	req.Empty(registry.payloads)
}

func TestService_PostUnknownRoom(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	registry := &fakeBroadcaster{}
	svc := NewService(store, registry)

	_, err := svc.Post("void", "alice", "hi")

	req.ErrorIs(err, ErrRoomNotFound)
	req.Empty(store.saved)
	req.Empty(registry.payloads)
}

func TestService_PostStoreFailureSkipsBroadcast(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	store.createErr = errors.New("connection reset")
	registry := &fakeBroadcaster{}
	svc := NewService(store, registry)

	_, err := svc.Post("general", "alice", "hi")

	req.Error(err)
	req.Empty(registry.payloads)
}

func TestService_MonotonicMessageIDs(t *testing.T) {
	req := require.New(t)
	store := newFakeStore()
	registry := &fakeBroadcaster{}
	svc := NewService(store, registry)

	first, err := svc.Post("general", "alice", "one")
	req.NoError(err)
	second, err := svc.Post("general", "alice", "two")
	req.NoError(err)

	req.Greater(second.ID, first.ID)
}
