package chat

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/thereayou/chatrooms/internal/models"
	"github.com/thereayou/chatrooms/internal/ws"
	"gorm.io/gorm"
)

// Store — операции хранилища, нужные протоколу рассылки
type Store interface {
	FindUserByUsername(username string) (*models.User, error)
	FindRoomBySlug(slug string) (*models.Room, error)
	CreateMessage(message *models.Message) error
}

// Broadcaster доставляет payload всем подписчикам группы
type Broadcaster interface {
	Broadcast(groupKey string, payload []byte)
}

// Event — исходящий кадр чата. Timestamp всегда серверный,
// из сохранённой записи, чтобы все получатели видели один ключ порядка.
type Event struct {
	ID        uint   `json:"id"`
	Message   string `json:"message"`
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
}

type Service struct {
	db       Store
	registry Broadcaster
}

func NewService(db Store, registry Broadcaster) *Service {
	return &Service{db: db, registry: registry}
}

// Post сохраняет сообщение и рассылает его всем участникам комнаты,
// включая отправителя. Рассылка происходит только после успешного
// сохранения; при любой ошибке кадр не уходит никому.
func (s *Service) Post(roomSlug, username, text string) (*Event, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	user, err := s.db.FindUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	room, err := s.db.FindRoomBySlug(roomSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	message := &models.Message{
		RoomID:  room.ID,
		UserID:  user.ID,
		Content: text,
	}

	// Точка долговечности: после CreateMessage сообщение видно в истории
	// независимо от судьбы рассылки
	if err := s.db.CreateMessage(message); err != nil {
		return nil, err
	}

	event := &Event{
		ID:        message.ID,
		Message:   message.Content,
		Username:  user.Username,
		Timestamp: message.CreatedAt.UTC().Format(time.RFC3339),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	s.registry.Broadcast(ws.GroupKey(roomSlug), payload)

	return event, nil
}
