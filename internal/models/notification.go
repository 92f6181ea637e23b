package models

type NotificationStatus int

const (
	NotificationStatusPending  NotificationStatus = 0
	NotificationStatusAccepted NotificationStatus = 1
	NotificationStatusRejected NotificationStatus = -1
)

// Notification is a single entry in a user's feed document. Entries are only
// ever appended or status-updated in place, never deleted.
type Notification struct {
	NotificationID    string             `json:"notificationId"`
	IsFriendRequest   bool               `json:"isFriendRequest"`
	Status            NotificationStatus `json:"status"`
	NotificationImage string             `json:"notificationImage"`
	NotificationTitle string             `json:"notificationTitle"`
	SenderID          string             `json:"senderId"`
}
