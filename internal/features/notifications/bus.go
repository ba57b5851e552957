package notifications

import (
	"sync"

	"github.com/google/uuid"
)

const subscriberBufferSize = 16

// Bus is the process-wide fan-out for freshly created notifications. Each
// subscriber filters by (recipient, team); a slow subscriber has events
// dropped rather than blocking the publisher. Unsubscribe is safe to call
// more than once, so connection handlers can defer it unconditionally.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]*subscriber
}

type subscriber struct {
	recipientID uuid.UUID
	teamID      uuid.UUID
	events      chan *Notification
}

func NewBus() *Bus {
	return &Bus{subscribers: map[uuid.UUID]*subscriber{}}
}

// Subscribe registers a listener for the recipient's notifications within a
// team. The returned cancel func deregisters the listener and closes the
// channel; callers must defer it so a disconnect never leaks the entry.
func (b *Bus) Subscribe(recipientID, teamID uuid.UUID) (<-chan *Notification, func()) {
	sub := &subscriber{
		recipientID: recipientID,
		teamID:      teamID,
		events:      make(chan *Notification, subscriberBufferSize),
	}

	id := uuid.New()

	b.mu.Lock()
	b.subscribers[id] = sub
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subscribers, id)
			// Closed under the lock so Publish can never send on a
			// closed channel.
			close(sub.events)
			b.mu.Unlock()
		})
	}

	return sub.events, cancel
}

// Publish delivers the notification to every matching subscriber without
// blocking: full buffers drop the event.
func (b *Bus) Publish(notification *Notification) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subscribers {
		if sub.recipientID != notification.RecipientID || sub.teamID != notification.TeamID {
			continue
		}

		select {
		case sub.events <- notification:
		default:
		}
	}
}

func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subscribers)
}
