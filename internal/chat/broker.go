package chat

import (
	"log/slog"
	"sync"
)

type subscriber struct {
	userID int64
	send   chan Event
}

// Broker keeps the subscribers of each conversation.
type Broker struct {
	mu    sync.RWMutex
	rooms map[int64]map[*subscriber]struct{}
}

var _ Publisher = (*Broker)(nil)

func NewBroker() *Broker {
	return &Broker{rooms: make(map[int64]map[*subscriber]struct{})}
}

func (b *Broker) subscribe(conversationID int64, s *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	room, ok := b.rooms[conversationID]
	if !ok {
		room = make(map[*subscriber]struct{})
		b.rooms[conversationID] = room
	}
	room[s] = struct{}{}
}

func (b *Broker) unsubscribe(conversationID int64, s *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.remove(conversationID, s)
}

// unsubscribeAll drops s from every room. No event is sent to s afterwards.
func (b *Broker) unsubscribeAll(s *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id := range b.rooms {
		b.remove(id, s)
	}
}

func (b *Broker) remove(conversationID int64, s *subscriber) {
	room, ok := b.rooms[conversationID]
	if !ok {
		return
	}
	delete(room, s)
	if len(room) == 0 {
		delete(b.rooms, conversationID)
	}
}

// Publish delivers ev to the subscribers of the conversation.
// Subscribers whose buffer is full miss the event.
func (b *Broker) Publish(conversationID int64, ev Event) {
	ev.ConversationID = conversationID

	b.mu.RLock()
	defer b.mu.RUnlock()

	for s := range b.rooms[conversationID] {
		select {
		case s.send <- ev:
		default:
			slog.Warn("Dropping chat event for slow subscriber", "user_id", s.userID, "conversation_id", conversationID, "type", ev.Type)
		}
	}
}

// Subscribers returns the number of subscribers in a conversation.
func (b *Broker) Subscribers(conversationID int64) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.rooms[conversationID])
}
