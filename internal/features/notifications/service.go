package notifications

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"sprintdesk/internal/apperrors"
	cache_utils "sprintdesk/internal/util/cache"

	"github.com/google/uuid"
)

const deliveryQueueKey = "sd_notifications_queue"

type NotificationService struct {
	notificationRepository *NotificationRepository
	queueService           *cache_utils.ValkeyQueueService
	bus                    *Bus
	logger                 *slog.Logger
}

// CreateNotification persists a notification and pushes it to live SSE
// subscribers. Self-notifications are silently skipped so actions a user
// performs on their own items never generate noise.
func (s *NotificationService) CreateNotification(params *CreateNotificationParams) (*Notification, error) {
	if params.ActorID != nil && *params.ActorID == params.RecipientID {
		return nil, nil
	}

	if !params.Type.IsValid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid notification type: %s", params.Type))
	}

	notification := &Notification{
		ID:               uuid.New(),
		RecipientID:      params.RecipientID,
		TeamID:           params.TeamID,
		Type:             params.Type,
		Title:            params.Title,
		Message:          params.Message,
		RelatedTaskID:    params.RelatedTaskID,
		RelatedProjectID: params.RelatedProjectID,
		RelatedSprintID:  params.RelatedSprintID,
		ActorID:          params.ActorID,
		ActionURL:        params.ActionURL,
		IsRead:           false,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.notificationRepository.Create(notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.bus.Publish(notification)

	return notification, nil
}

// EnqueueNotifications buffers notification payloads in Valkey instead of
// writing them directly. Reminder workers use it so a large team sweep does
// not hammer the database in one burst.
func (s *NotificationService) EnqueueNotifications(paramsList []*CreateNotificationParams) error {
	if len(paramsList) == 0 {
		return nil
	}

	items := make([][]byte, 0, len(paramsList))

	for _, params := range paramsList {
		data, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("failed to marshal notification params: %w", err)
		}

		items = append(items, data)
	}

	return s.queueService.EnqueueBatch(deliveryQueueKey, items)
}

// ProcessQueuedNotifications drains up to maxCount buffered payloads and
// delivers them. Called periodically by the reminder background service.
func (s *NotificationService) ProcessQueuedNotifications(maxCount int) (int, error) {
	items, err := s.queueService.DequeueBatch(deliveryQueueKey, maxCount, time.Second)
	if err != nil {
		return 0, fmt.Errorf("failed to dequeue notifications: %w", err)
	}

	processed := 0

	for _, item := range items {
		params := &CreateNotificationParams{}
		if err := json.Unmarshal(item, params); err != nil {
			s.logger.Error("Failed to unmarshal queued notification",
				slog.String("error", err.Error()))
			continue
		}

		if _, err := s.CreateNotification(params); err != nil {
			s.logger.Error("Failed to deliver queued notification",
				slog.String("recipientId", params.RecipientID.String()),
				slog.String("error", err.Error()))
			continue
		}

		processed++
	}

	return processed, nil
}

func (s *NotificationService) ListNotifications(
	recipientID, teamID uuid.UUID,
	limit, offset int,
) (*ListNotificationsResponseDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	notificationsList, err := s.notificationRepository.GetByRecipient(recipientID, teamID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	unreadCount, err := s.notificationRepository.CountUnread(recipientID, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return &ListNotificationsResponseDTO{
		Notifications: notificationsList,
		UnreadCount:   unreadCount,
	}, nil
}

func (s *NotificationService) MarkRead(notificationID, recipientID uuid.UUID) error {
	return s.notificationRepository.MarkRead(notificationID, recipientID)
}

func (s *NotificationService) MarkAllRead(recipientID, teamID uuid.UUID) error {
	return s.notificationRepository.MarkAllRead(recipientID, teamID)
}

// HasRecentNotification reports whether the recipient already received a
// notification of the given type after the cutoff. Reminder sweeps use it to
// stay idempotent across restarts.
func (s *NotificationService) HasRecentNotification(
	recipientID, teamID uuid.UUID,
	notificationType NotificationType,
	since time.Time,
) (bool, error) {
	return s.notificationRepository.ExistsSince(recipientID, teamID, notificationType, since)
}

func (s *NotificationService) Subscribe(recipientID, teamID uuid.UUID) (<-chan *Notification, func()) {
	return s.bus.Subscribe(recipientID, teamID)
}

func (s *NotificationService) OnBeforeTeamDeletion(teamID uuid.UUID) error {
	return s.notificationRepository.DeleteByTeam(teamID)
}
