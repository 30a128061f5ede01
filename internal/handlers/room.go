package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/thereayou/chatrooms/internal/handlers/dto"
	"github.com/thereayou/chatrooms/internal/middleware"
	"github.com/thereayou/chatrooms/internal/models"
	"github.com/thereayou/chatrooms/internal/ws"
)

const historyLimit = 50

// RoomStore — операции хранилища, нужные REST-слою комнат
type RoomStore interface {
	ListRooms() ([]models.Room, error)
	CreateRoom(room *models.Room) error
	FindRoomBySlug(slug string) (*models.Room, error)
	RoomSlugExists(slug string) (bool, error)
	GetRoomMessages(roomID uuid.UUID, limit int) ([]models.Message, error)
}

type RoomHandler struct {
	db  RoomStore
	hub *ws.Hub
}

func NewRoomHandler(db RoomStore, hub *ws.Hub) *RoomHandler {
	return &RoomHandler{db: db, hub: hub}
}

// ListRooms возвращает все комнаты
func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.db.ListRooms()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get rooms"})
		return
	}

	result := make([]dto.RoomResponse, len(rooms))
	for i := range rooms {
		result[i] = formatRoomResponse(&rooms[i])
	}

	c.JSON(http.StatusOK, gin.H{"rooms": result})
}

// CreateRoom создает новую комнату; slug выводится из имени и
// после создания не меняется
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	roomSlug := slug.Make(req.Name)
	if roomSlug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room name is required"})
		return
	}

	exists, err := h.db.RoomSlugExists(roomSlug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room with this name already exists"})
		return
	}

	room := &models.Room{
		Name:        req.Name,
		Slug:        roomSlug,
		Description: req.Description,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}

	if err := h.db.CreateRoom(room); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}

	c.JSON(http.StatusCreated, formatRoomResponse(room))
}

// GetRoom возвращает комнату, последние сообщения и число участников онлайн
func (h *RoomHandler) GetRoom(c *gin.Context) {
	username := c.MustGet(middleware.UsernameKey).(string)
	roomSlug := c.Param("slug")

	room, err := h.db.FindRoomBySlug(roomSlug)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	messages, err := h.db.GetRoomMessages(room.ID, historyLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}

	history := make([]dto.MessageResponse, len(messages))
	for i, msg := range messages {
		history[i] = dto.MessageResponse{
			ID:     msg.ID,
			RoomID: msg.RoomID,
			User: dto.UserInfo{
				ID:       msg.User.ID,
				Username: msg.User.Username,
			},
			Content:   msg.Content,
			Timestamp: msg.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"room":         formatRoomResponse(room),
		"messages":     history,
		"username":     username,
		"online_count": h.hub.GroupSize(ws.GroupKey(room.Slug)),
	})
}

// formatRoomResponse форматирует ответ для комнаты
func formatRoomResponse(room *models.Room) dto.RoomResponse {
	resp := dto.RoomResponse{
		ID:          room.ID,
		Name:        room.Name,
		Slug:        room.Slug,
		Description: room.Description,
		CreatedAt:   room.CreatedAt,
	}

	// Если загружена информация о создателе
	if room.Creator.ID != uuid.Nil {
		resp.CreatedBy = &dto.UserInfo{
			ID:       room.Creator.ID,
			Username: room.Creator.Username,
		}
	}

	return resp
}
