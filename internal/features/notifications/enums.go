package notifications

type NotificationType string

const (
	NotificationTypeTaskAssigned      NotificationType = "TASK_ASSIGNED"
	NotificationTypeTaskOverdue       NotificationType = "TASK_OVERDUE"
	NotificationTypeSprintStarted     NotificationType = "SPRINT_STARTED"
	NotificationTypeSprintCompleted   NotificationType = "SPRINT_COMPLETED"
	NotificationTypeTeamMemberAdded   NotificationType = "TEAM_MEMBER_ADDED"
	NotificationTypeBandwidthReminder NotificationType = "BANDWIDTH_REMINDER"
	NotificationTypeBandwidthReviewed NotificationType = "BANDWIDTH_REVIEWED"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeTaskAssigned,
		NotificationTypeTaskOverdue,
		NotificationTypeSprintStarted,
		NotificationTypeSprintCompleted,
		NotificationTypeTeamMemberAdded,
		NotificationTypeBandwidthReminder,
		NotificationTypeBandwidthReviewed:
		return true
	}

	return false
}
