package models

import (
	"github.com/google/uuid"
	"time"
)

// Message.ID выдаётся базой монотонно, CreatedAt проставляется при сохранении
type Message struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	RoomID    uuid.UUID `gorm:"not null;index"`
	UserID    uuid.UUID `gorm:"not null"`
	Content   string    `gorm:"not null"`
	CreatedAt time.Time

	// Связи
	User User `gorm:"foreignKey:UserID"`
	Room Room `gorm:"foreignKey:RoomID"`
}
