package service

import (
	"sync"
	"time"

	"library-backend/internal/domain"
	"library-backend/internal/logger"

	"github.com/google/uuid"
)

const subscriberBufferSize = 16

// AvailabilityBroadcaster is a process-wide broadcast feed of book
// availability changes. Each new subscriber first receives the most recent
// event, then all subsequent ones. Publish is fire-and-forget: a slow or
// gone subscriber never blocks a publish, it just misses events.
type AvailabilityBroadcaster struct {
	mu   sync.Mutex
	last *domain.BookAvailabilityUpdate
	subs map[uuid.UUID]chan domain.BookAvailabilityUpdate
}

func NewAvailabilityBroadcaster() *AvailabilityBroadcaster {
	logger.Info("Book availability broadcast feed initialized")
	return &AvailabilityBroadcaster{
		subs: make(map[uuid.UUID]chan domain.BookAvailabilityUpdate),
	}
}

// Publish emits an availability change to all current subscribers and
// retains it for replay to future ones.
func (b *AvailabilityBroadcaster) Publish(bookID int64, title string, available bool) {
	update := domain.BookAvailabilityUpdate{
		BookID:    bookID,
		Title:     title,
		Available: available,
		Timestamp: time.Now(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.last = &update
	for id, ch := range b.subs {
		select {
		case ch <- update:
		default:
			logger.Warn("Dropping availability update for slow subscriber", "subscriber", id, "book_id", bookID)
		}
	}
	logger.Info("Published availability update", "book_id", bookID, "available", available)
}

// Subscribe registers a new subscriber and replays the latest event to it.
// The caller must call Unsubscribe with the returned id when done.
func (b *AvailabilityBroadcaster) Subscribe() (uuid.UUID, <-chan domain.BookAvailabilityUpdate) {
	id := uuid.New()
	ch := make(chan domain.BookAvailabilityUpdate, subscriberBufferSize)

	b.mu.Lock()
	if b.last != nil {
		ch <- *b.last
	}
	b.subs[id] = ch
	b.mu.Unlock()

	logger.Info("Subscriber joined availability feed", "subscriber", id)
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *AvailabilityBroadcaster) Unsubscribe(id uuid.UUID) {
	b.mu.Lock()
	ch, ok := b.subs[id]
	if ok {
		delete(b.subs, id)
	}
	b.mu.Unlock()

	if ok {
		close(ch)
		logger.Info("Subscriber left availability feed", "subscriber", id)
	}
}
