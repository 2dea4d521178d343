package surprise

import (
	"log/slog"
	"sync"

	"memoir/internal/domain/models"
	"memoir/internal/domain/services"
)

// subscriberBuffer is how many notifications a slow stream may lag behind.
const subscriberBuffer = 8

// Hub fans notifications out to every open stream of a user.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[uint64]chan models.Notification
	nextID uint64
	logger *slog.Logger
}

var _ services.NotificationHub = (*Hub)(nil)

// NewHub creates an empty hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subs:   make(map[string]map[uint64]chan models.Notification),
		logger: logger,
	}
}

// Subscribe registers a stream. The returned cancel func closes the channel
// and is safe to call more than once.
func (h *Hub) Subscribe(userID string) (<-chan models.Notification, func()) {
	ch := make(chan models.Notification, subscriberBuffer)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[uint64]chan models.Notification)
	}
	h.subs[userID][id] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[userID], id)
			if len(h.subs[userID]) == 0 {
				delete(h.subs, userID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers n to the user's streams without blocking
func (h *Hub) Publish(userID string, n models.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, ch := range h.subs[userID] {
		select {
		case ch <- n:
		default:
			h.logger.Debug("subscriber lagging, notification dropped", "user_id", userID, "subscriber", id, "type", n.Type)
		}
	}
}

// Subscribers returns the number of open streams for a user
func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
