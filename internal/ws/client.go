package ws

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Время ожидания записи
	writeWait = 10 * time.Second

	// Время ожидания pong от клиента
	pongWait = 60 * time.Second

	// Интервал отправки ping
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер сообщения
	maxMessageSize = 64 * 1024 // 64KB
)

// InboundFrame — входящий кадр чата
type InboundFrame struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

type FrameHandler interface {
	HandleFrame(client *Client, frame *InboundFrame) error
}

// Client — серверная сторона одного живого соединения.
// Живёт от подключения до разрыва, комната фиксируется при подключении.
type Client struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Username string
	RoomSlug string
	GroupKey string
	Conn     *websocket.Conn
	Send     chan []byte
	Hub      *Hub
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID, username, roomSlug string) *Client {
	return &Client{
		ID:       uuid.New(),
		UserID:   userID,
		Username: username,
		RoomSlug: roomSlug,
		GroupKey: GroupKey(roomSlug),
		Conn:     conn,
		Send:     make(chan []byte, 256),
		Hub:      hub,
	}
}

func (c *Client) HandleID() uuid.UUID {
	return c.ID
}

// Enqueue кладёт payload в очередь отправки без блокировки
func (c *Client) Enqueue(payload []byte) bool {
	select {
	case c.Send <- payload:
		return true
	default:
		return false
	}
}

// ParseInboundFrame разбирает кадр; битые кадры и кадры с пустым
// message отбрасываются молча
func ParseInboundFrame(data []byte) (*InboundFrame, bool) {
	var frame InboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, false
	}
	if strings.TrimSpace(frame.Message) == "" {
		return nil, false
	}
	return &frame, true
}

// ReadPump читает кадры от клиента по одному, в порядке прихода.
// Выход из группы выполняется ровно один раз, при любом варианте разрыва.
func (c *Client) ReadPump(handler FrameHandler) {
	defer func() {
		c.Hub.Leave(c.GroupKey, c)
		close(c.Send)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		frame, ok := ParseInboundFrame(data)
		if !ok {
			continue
		}

		if handler != nil {
			if err := handler.HandleFrame(c, frame); err != nil {
				log.Printf("Error handling frame: %v", err)
				c.SendError(err.Error())
			}
		}
	}
}

// WritePump отправляет сообщения клиенту и держит соединение ping-ами
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// ReadPump закрыл канал
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			c.Conn.WriteMessage(websocket.TextMessage, message)

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) SendError(errorMsg string) {
	data, err := json.Marshal(map[string]string{"error": errorMsg})
	if err != nil {
		return
	}
	c.Enqueue(data)
}
