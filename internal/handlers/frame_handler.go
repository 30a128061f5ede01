package handlers

import (
	"log"

	"github.com/thereayou/chatrooms/internal/chat"
	"github.com/thereayou/chatrooms/internal/ws"
)

// ChatPoster — вход протокола рассылки
type ChatPoster interface {
	Post(roomSlug, username, text string) (*chat.Event, error)
}

// LastSeenUpdater отмечает активность пользователя
type LastSeenUpdater interface {
	UpdateLastSeen(id string) error
}

// MessageHandler принимает кадры от сессий и гонит их через протокол рассылки
type MessageHandler struct {
	db   LastSeenUpdater
	chat ChatPoster
}

func NewMessageHandler(db LastSeenUpdater, chatService ChatPoster) *MessageHandler {
	return &MessageHandler{db: db, chat: chatService}
}

// HandleFrame обрабатывает один входящий кадр чата. Автором записывается
// личность, установленная при подключении; полю username из кадра не доверяем.
// Ошибка уходит отправителю error-кадром, сессия остаётся живой.
func (h *MessageHandler) HandleFrame(client *ws.Client, frame *ws.InboundFrame) error {
	if _, err := h.chat.Post(client.RoomSlug, client.Username, frame.Message); err != nil {
		return err
	}

	go func() {
		if err := h.db.UpdateLastSeen(client.UserID.String()); err != nil {
			log.Printf("Failed to update last seen: %v", err)
		}
	}()

	return nil
}
