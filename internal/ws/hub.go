package ws

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// GroupKey строит ключ группы рассылки по slug комнаты
func GroupKey(roomSlug string) string {
	return "chat_" + roomSlug
}

// Handle — адресуемая ссылка на одно живое соединение.
// Enqueue не блокируется: false означает переполненную очередь получателя.
type Handle interface {
	HandleID() uuid.UUID
	Enqueue(payload []byte) bool
}

// Hub хранит подписчиков комнат и рассылает им сообщения.
// Единственное разделяемое состояние между сессиями.
type Hub struct {
	mu     sync.RWMutex
	groups map[string]map[uuid.UUID]Handle
}

func NewHub() *Hub {
	return &Hub{
		groups: make(map[string]map[uuid.UUID]Handle),
	}
}

// Join добавляет handle в группу, создавая её лениво. Повторный Join — no-op.
func (h *Hub) Join(groupKey string, handle Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.groups[groupKey]; !ok {
		h.groups[groupKey] = make(map[uuid.UUID]Handle)
	}
	h.groups[groupKey][handle.HandleID()] = handle
}

// Leave убирает handle из группы. Опустевшая группа удаляется.
func (h *Hub) Leave(groupKey string, handle Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()

	group, ok := h.groups[groupKey]
	if !ok {
		return
	}

	delete(group, handle.HandleID())
	if len(group) == 0 {
		delete(h.groups, groupKey)
	}
}

// Broadcast доставляет payload всем текущим участникам группы, включая отправителя.
// Переполненная очередь одного получателя не мешает доставке остальным.
func (h *Hub) Broadcast(groupKey string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, handle := range h.groups[groupKey] {
		if !handle.Enqueue(payload) {
			log.Printf("Client %s send queue full, dropping broadcast", handle.HandleID())
		}
	}
}

// GroupSize возвращает число подключённых участников группы
func (h *Hub) GroupSize(groupKey string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.groups[groupKey])
}
