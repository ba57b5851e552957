package teams_models

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id"`
	Name        string    `json:"name"        gorm:"column:name"`
	Description string    `json:"description" gorm:"column:description"`
	OwnerID     uuid.UUID `json:"ownerId"     gorm:"column:owner_id"`
	IsActive    bool      `json:"isActive"    gorm:"column:is_active"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`
}

func (Team) TableName() string {
	return "teams"
}
