package catalog

import "sync"

// EventKind identifies which table a domain event concerns.
type EventKind string

const (
	EventBookChanged EventKind = "book_changed"
	EventLoanChanged EventKind = "loan_changed"
)

// Event is emitted after any successful mutation so collaborators
// (dashboards, list views) can refresh without polling.
type Event struct {
	Kind   EventKind `json:"kind"`
	BookID string    `json:"book_id,omitempty"`
	LoanID int       `json:"loan_id,omitempty"`
}

// Broker fans domain events out to subscribers. Sends never block:
// a subscriber that falls behind misses events rather than stalling
// the mutation that produced them.
type Broker struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a listener. The returned cancel function removes
// the subscription and closes the channel.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber without blocking.
func (b *Broker) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
