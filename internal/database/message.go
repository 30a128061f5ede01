package database

import (
	"github.com/google/uuid"
	"github.com/thereayou/chatrooms/internal/models"
	"time"
)

// CreateMessage сохраняет сообщение; id и timestamp выдаёт база,
// CreatedAt всегда серверный, клиентское время не принимается
func (d *Database) CreateMessage(message *models.Message) error {
	message.CreatedAt = time.Now().UTC()
	return d.db.Create(message).Error
}

// GetRoomMessages получает последние limit сообщений комнаты, старые первыми
func (d *Database) GetRoomMessages(roomID uuid.UUID, limit int) ([]models.Message, error) {
	var messages []models.Message

	err := d.db.
		Where("room_id = ?", roomID).
		Order("id DESC").
		Limit(limit).
		Preload("User").
		Find(&messages).Error

	if err != nil {
		return nil, err
	}

	// Разворачиваем порядок, чтобы старые сообщения были первыми
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
