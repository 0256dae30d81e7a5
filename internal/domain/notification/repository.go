package notification

import "context"

type Repository interface {
	// Create inserts one notification; when the context carries a
	// transaction the insert joins it, so approval side effects commit
	// atomically with the status transition.
	Create(ctx context.Context, n *Notification) error

	// CreateBatch inserts many notifications at once (queue workers).
	CreateBatch(ctx context.Context, notifications []*Notification) error

	List(ctx context.Context, recipientID string, page, limit int, unreadOnly bool) ([]Notification, int64, error)
	CountUnread(ctx context.Context, recipientID string) (int, error)
	MarkRead(ctx context.Context, recipientID, notificationID string) error
	MarkAllRead(ctx context.Context, recipientID string) error
}
