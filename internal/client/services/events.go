package services

import "sync"

// EventKind names what happened.
type EventKind int

const (
	// SessionCreated fires when Send creates a chat for a first message.
	SessionCreated EventKind = iota + 1
	// MessagesChanged fires when the visible message list changes.
	MessagesChanged
	// SelectionChanged fires when the selected chat changes.
	SelectionChanged
)

func (k EventKind) String() string {
	switch k {
	case SessionCreated:
		return "session_created"
	case MessagesChanged:
		return "messages_changed"
	case SelectionChanged:
		return "selection_changed"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers. RefreshListing asks the chat
// directory to refetch its listing.
type Event struct {
	Kind           EventKind
	ChatID         string
	RefreshListing bool
}

// EventBus is a synchronous observer registry. Handlers run on the
// publishing goroutine, after the bus lock has been released.
type EventBus struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]func(Event)
	order    []int
}

func NewEventBus() *EventBus {
	return &EventBus{handlers: make(map[int]func(Event))}
}

// Subscribe registers h and returns a function that removes it.
func (b *EventBus) Subscribe(h func(Event)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	b.order = append(b.order, id)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.handlers, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish calls every handler in subscription order.
func (b *EventBus) Publish(e Event) {
	if b == nil {
		return
	}

	b.mu.Lock()
	hs := make([]func(Event), 0, len(b.order))
	for _, id := range b.order {
		hs = append(hs, b.handlers[id])
	}
	b.mu.Unlock()

	for _, h := range hs {
		h(e)
	}
}
