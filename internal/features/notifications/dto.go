package notifications

import "github.com/google/uuid"

// CreateNotificationParams is the contract other features use to emit a
// notification.
type CreateNotificationParams struct {
	RecipientID      uuid.UUID        `json:"recipientId"`
	TeamID           uuid.UUID        `json:"teamId"`
	Type             NotificationType `json:"type"`
	Title            string           `json:"title"`
	Message          string           `json:"message"`
	RelatedTaskID    *uuid.UUID       `json:"relatedTaskId,omitempty"`
	RelatedProjectID *uuid.UUID       `json:"relatedProjectId,omitempty"`
	RelatedSprintID  *uuid.UUID       `json:"relatedSprintId,omitempty"`
	ActorID          *uuid.UUID       `json:"actorId,omitempty"`
	ActionURL        string           `json:"actionUrl,omitempty"`
}

type ListNotificationsResponseDTO struct {
	Notifications []*Notification `json:"notifications"`
	UnreadCount   int64           `json:"unreadCount"`
}
