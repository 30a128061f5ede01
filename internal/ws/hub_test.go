package ws

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeHandle struct {
	id   uuid.UUID
	full bool

	mu       sync.Mutex
	payloads [][]byte
}

func newFakeHandle() *fakeHandle {
	return &fakeHandle{id: uuid.New()}
}

func (f *fakeHandle) HandleID() uuid.UUID {
	return f.id
}

func (f *fakeHandle) Enqueue(payload []byte) bool {
	if f.full {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	return true
}

func (f *fakeHandle) received() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payloads)
}

func TestHub_BroadcastReachesEveryMemberOnce(t *testing.T) {
	req := require.New(t)
	hub := NewHub()
	key := GroupKey("general")

	sender := newFakeHandle()
	others := []*fakeHandle{newFakeHandle(), newFakeHandle()}

	hub.Join(key, sender)
	for _, h := range others {
		hub.Join(key, h)
	}

	hub.Broadcast(key, []byte(`{"message":"hi"}`))

	// Отправитель получает собственное сообщение тем же путём, что и остальные
	req.Equal(1, sender.received())
	for _, h := range others {
		req.Equal(1, h.received())
	}
}

func TestHub_JoinIsIdempotent(t *testing.T) {
	req := require.New(t)
	hub := NewHub()
	key := GroupKey("general")

	h := newFakeHandle()
	hub.Join(key, h)
	hub.Join(key, h)

	req.Equal(1, hub.GroupSize(key))

	hub.Broadcast(key, []byte("x"))
	req.Equal(1, h.received())
}

func TestHub_LeaveStopsDelivery(t *testing.T) {
	req := require.New(t)
	hub := NewHub()
	key := GroupKey("general")

	leaving := newFakeHandle()
	staying := newFakeHandle()
	hub.Join(key, leaving)
	hub.Join(key, staying)

	hub.Leave(key, leaving)
	hub.Broadcast(key, []byte("x"))

	req.Equal(0, leaving.received())
	req.Equal(1, staying.received())
	req.Equal(1, hub.GroupSize(key))
}

func TestHub_LeaveUnknownIsNoop(t *testing.T) {
	hub := NewHub()

	// Ни группа, ни handle не существуют
	hub.Leave(GroupKey("nowhere"), newFakeHandle())

	key := GroupKey("general")
	hub.Join(key, newFakeHandle())
	hub.Leave(key, newFakeHandle())

	require.Equal(t, 1, hub.GroupSize(key))
}

func TestHub_GroupsAreIsolated(t *testing.T) {
	req := require.New(t)
	hub := NewHub()

	general := newFakeHandle()
	random := newFakeHandle()
	hub.Join(GroupKey("general"), general)
	hub.Join(GroupKey("random"), random)

	hub.Broadcast(GroupKey("general"), []byte("x"))

	req.Equal(1, general.received())
	req.Equal(0, random.received())
}

func TestHub_FullQueueDoesNotBlockOthers(t *testing.T) {
	req := require.New(t)
	hub := NewHub()
	key := GroupKey("general")

	stuck := newFakeHandle()
	stuck.full = true
	healthy := newFakeHandle()

	hub.Join(key, stuck)
	hub.Join(key, healthy)

	hub.Broadcast(key, []byte("x"))

	req.Equal(0, stuck.received())
	req.Equal(1, healthy.received())
}

func TestHub_EmptyGroupIsPruned(t *testing.T) {
	req := require.New(t)
	hub := NewHub()
	key := GroupKey("general")

	h := newFakeHandle()
	hub.Join(key, h)
	hub.Leave(key, h)

	req.Equal(0, hub.GroupSize(key))

	// Рассылка в опустевшую группу никому не доставляется и не падает
	hub.Broadcast(key, []byte("x"))
	req.Equal(0, h.received())
}

func TestHub_ConcurrentJoinLeaveBroadcast(t *testing.T) {
	hub := NewHub()
	key := GroupKey("general")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h := newFakeHandle()
			for j := 0; j < 100; j++ {
				hub.Join(key, h)
				hub.Broadcast(key, []byte("x"))
				hub.Leave(key, h)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 0, hub.GroupSize(key))
}
