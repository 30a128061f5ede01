package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/thereayou/chatrooms/internal/middleware"
	"github.com/thereayou/chatrooms/internal/models"
	ws "github.com/thereayou/chatrooms/internal/ws"
)

// RoomFinder разрешает slug комнаты перед апгрейдом соединения
type RoomFinder interface {
	FindRoomBySlug(slug string) (*models.Room, error)
}

// WebSocketHandler управляет WebSocket соединениями
type WebSocketHandler struct {
	hub            *ws.Hub
	db             RoomFinder
	messageHandler *MessageHandler
	upgrader       websocket.Upgrader
}

// NewWebSocketHandler создает новый WebSocket handler
func NewWebSocketHandler(hub *ws.Hub, db RoomFinder, messageHandler *MessageHandler) *WebSocketHandler {
	return &WebSocketHandler{
		hub:            hub,
		db:             db,
		messageHandler: messageHandler,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: Проверить origin в prod
				return true
			},
		},
	}
}

// HandleWebSocket подключает клиента к комнате. Аутентификацию уже
// сделал middleware; неаутентифицированные запросы сюда не доходят
// и в группу не попадают.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	username := c.MustGet(middleware.UsernameKey).(string)

	roomSlug := c.Param("slug")
	room, err := h.db.FindRoomBySlug(roomSlug)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, userID.(uuid.UUID), username, room.Slug)

	// Сессия привязана к одной комнате на всё время жизни соединения
	h.hub.Join(client.GroupKey, client)

	go client.WritePump()
	go client.ReadPump(h.messageHandler)
}
