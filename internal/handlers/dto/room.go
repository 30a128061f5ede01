package dto

import (
	"github.com/google/uuid"
	"time"
)

type CreateRoomRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
}

type UserInfo struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// RoomResponse структура для комнаты в REST-ответах
type RoomResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedBy   *UserInfo `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MessageResponse структура для сообщения в истории
type MessageResponse struct {
	ID        uint      `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	User      UserInfo  `json:"user"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
