package models

import (
	"github.com/google/uuid"
	"time"
)

type Room struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"not null"`
	Slug        string    `gorm:"uniqueIndex;not null"` // неизменяемый после создания
	Description string
	CreatedBy   uuid.UUID
	CreatedAt   time.Time

	// Связи
	Creator  User      `gorm:"foreignKey:CreatedBy"`
	Messages []Message `gorm:"foreignKey:RoomID"`
}
