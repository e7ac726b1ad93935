package notification

import (
	"github.com/techstaffhub/attendance-kiosk/internal/pkg/apitime"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeTimelogEditApproved NotificationType = "TIMELOG_EDIT_APPROVED"
	TypeTimelogEditRejected NotificationType = "TIMELOG_EDIT_REJECTED"
	TypeTimelogAdjusted     NotificationType = "TIMELOG_ADJUSTED"
	TypeLeaveApproved       NotificationType = "LEAVE_APPROVED"
	TypeLeaveRejected       NotificationType = "LEAVE_REJECTED"
	TypeAnnouncement        NotificationType = "ANNOUNCEMENT"
	TypeGeneral             NotificationType = "GENERAL"
)

// Notification is a server-generated message for the signed-in user.
// The kiosk only reads, marks read, and deletes; the server owns the
// records and creates them as side effects of other workflows.
type Notification struct {
	NotificationID  int64            `json:"notificationId"`
	Title           string           `json:"title"`
	Message         string           `json:"message"`
	Type            NotificationType `json:"type"`
	IsRead          bool             `json:"isRead"`
	RelatedEntityID *int64           `json:"relatedEntityId,omitempty"`
	CreatedAt       *apitime.Time    `json:"createdAt,omitempty"`
}

// UnreadCountResponse is the upstream /notifications/user/unread/count
// payload.
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
