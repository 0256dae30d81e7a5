package notification

import "context"

// Service defines the notification service interface
type Service interface {
	// Queue enqueues a fire-and-forget notification for batched insert
	// by the background workers (low-balance warnings and similar).
	// Notifications that must commit atomically with a request
	// transition bypass the queue and go through Repository.Create
	// inside the transaction.
	Queue(ctx context.Context, req CreateNotificationRequest) error

	GetNotifications(ctx context.Context, recipientID string, page, limit int, unreadOnly bool) (NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, recipientID string) (int, error)
	MarkAsRead(ctx context.Context, recipientID, notificationID string) error
	MarkAllAsRead(ctx context.Context, recipientID string) error

	// Stop drains the queue and stops the workers.
	Stop()
}
