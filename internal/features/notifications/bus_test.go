package notifications

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_BusPublish_MatchingSubscriber_ReceivesNotification(t *testing.T) {
	bus := NewBus()
	recipientID := uuid.New()
	teamID := uuid.New()

	events, cancel := bus.Subscribe(recipientID, teamID)
	defer cancel()

	notification := &Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		TeamID:      teamID,
		Type:        NotificationTypeTaskAssigned,
		Title:       "Task assigned",
	}
	bus.Publish(notification)

	select {
	case received := <-events:
		assert.Equal(t, notification.ID, received.ID)
	default:
		t.Fatal("expected buffered notification")
	}
}

func Test_BusPublish_DifferentRecipientOrTeam_NotDelivered(t *testing.T) {
	bus := NewBus()
	recipientID := uuid.New()
	teamID := uuid.New()

	events, cancel := bus.Subscribe(recipientID, teamID)
	defer cancel()

	bus.Publish(&Notification{RecipientID: uuid.New(), TeamID: teamID})
	bus.Publish(&Notification{RecipientID: recipientID, TeamID: uuid.New()})

	assert.Empty(t, events)
}

func Test_BusPublish_FullBuffer_DropsWithoutBlocking(t *testing.T) {
	bus := NewBus()
	recipientID := uuid.New()
	teamID := uuid.New()

	events, cancel := bus.Subscribe(recipientID, teamID)
	defer cancel()

	for range subscriberBufferSize + 5 {
		bus.Publish(&Notification{RecipientID: recipientID, TeamID: teamID})
	}

	assert.Len(t, events, subscriberBufferSize)
}

func Test_BusSubscribeCancel_RemovesSubscriberAndClosesChannel(t *testing.T) {
	bus := NewBus()

	events, cancel := bus.Subscribe(uuid.New(), uuid.New())
	require.Equal(t, 1, bus.SubscriberCount())

	cancel()
	cancel() // second call must be a no-op

	assert.Equal(t, 0, bus.SubscriberCount())

	_, open := <-events
	assert.False(t, open)
}
