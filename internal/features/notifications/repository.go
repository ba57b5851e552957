package notifications

import (
	"time"

	"sprintdesk/internal/storage"

	"github.com/google/uuid"
)

type NotificationRepository struct{}

func (r *NotificationRepository) Create(notification *Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}

	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(notification).Error
}

func (r *NotificationRepository) GetByRecipient(
	recipientID, teamID uuid.UUID,
	limit, offset int,
) ([]*Notification, error) {
	notificationsList := make([]*Notification, 0)

	err := storage.GetDb().
		Where("recipient_id = ? AND team_id = ?", recipientID, teamID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notificationsList).Error

	return notificationsList, err
}

func (r *NotificationRepository) CountUnread(recipientID, teamID uuid.UUID) (int64, error) {
	var count int64

	err := storage.GetDb().
		Model(&Notification{}).
		Where("recipient_id = ? AND team_id = ? AND is_read = false", recipientID, teamID).
		Count(&count).Error

	return count, err
}

func (r *NotificationRepository) MarkRead(notificationID, recipientID uuid.UUID) error {
	return storage.GetDb().
		Model(&Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("is_read", true).Error
}

func (r *NotificationRepository) MarkAllRead(recipientID, teamID uuid.UUID) error {
	return storage.GetDb().
		Model(&Notification{}).
		Where("recipient_id = ? AND team_id = ? AND is_read = false", recipientID, teamID).
		Update("is_read", true).Error
}

// ExistsSince reports whether the recipient already got a notification of
// the given type after the cutoff. Reminder jobs use it as their idempotency
// gate.
func (r *NotificationRepository) ExistsSince(
	recipientID, teamID uuid.UUID,
	notificationType NotificationType,
	since time.Time,
) (bool, error) {
	var count int64

	err := storage.GetDb().
		Model(&Notification{}).
		Where("recipient_id = ? AND team_id = ? AND type = ? AND created_at >= ?",
			recipientID, teamID, notificationType, since).
		Count(&count).Error

	return count > 0, err
}

func (r *NotificationRepository) DeleteByTeam(teamID uuid.UUID) error {
	return storage.GetDb().Where("team_id = ?", teamID).Delete(&Notification{}).Error
}
