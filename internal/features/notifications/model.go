package notifications

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID          uuid.UUID        `json:"id"          gorm:"column:id"`
	RecipientID uuid.UUID        `json:"recipientId" gorm:"column:recipient_id"`
	TeamID      uuid.UUID        `json:"teamId"      gorm:"column:team_id"`
	Type        NotificationType `json:"type"        gorm:"column:type"`
	Title       string           `json:"title"       gorm:"column:title"`
	Message     string           `json:"message"     gorm:"column:message"`

	RelatedTaskID    *uuid.UUID `json:"relatedTaskId"    gorm:"column:related_task_id"`
	RelatedProjectID *uuid.UUID `json:"relatedProjectId" gorm:"column:related_project_id"`
	RelatedSprintID  *uuid.UUID `json:"relatedSprintId"  gorm:"column:related_sprint_id"`

	ActorID   *uuid.UUID `json:"actorId"   gorm:"column:actor_id"`
	ActionURL string     `json:"actionUrl" gorm:"column:action_url"`
	IsRead    bool       `json:"isRead"    gorm:"column:is_read"`
	CreatedAt time.Time  `json:"createdAt" gorm:"column:created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
