package database

import (
	"github.com/thereayou/chatrooms/internal/models"
)

func (d *Database) CreateRoom(room *models.Room) error {
	return d.db.Create(room).Error
}

func (d *Database) FindRoomBySlug(slug string) (*models.Room, error) {
	var room models.Room
	if err := d.db.Where("slug = ?", slug).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// ListRooms возвращает все комнаты вместе с создателями
func (d *Database) ListRooms() ([]models.Room, error) {
	var rooms []models.Room
	err := d.db.
		Order("created_at ASC").
		Preload("Creator").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (d *Database) RoomSlugExists(slug string) (bool, error) {
	var count int64
	if err := d.db.Model(&models.Room{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
