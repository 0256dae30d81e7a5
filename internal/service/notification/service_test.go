package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shiftwise/workforce-backend-go/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepository struct {
	mu      sync.Mutex
	created []*notification.Notification
	direct  int
}

func (r *memoryRepository) Create(ctx context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, n)
	r.direct++
	return nil
}

func (r *memoryRepository) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, notifications...)
	return nil
}

func (r *memoryRepository) List(ctx context.Context, recipientID string, page, limit int, unreadOnly bool) ([]notification.Notification, int64, error) {
	return nil, 0, nil
}

func (r *memoryRepository) CountUnread(ctx context.Context, recipientID string) (int, error) {
	return 0, nil
}

func (r *memoryRepository) MarkRead(ctx context.Context, recipientID, notificationID string) error {
	return nil
}

func (r *memoryRepository) MarkAllRead(ctx context.Context, recipientID string) error {
	return nil
}

func (r *memoryRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.created)
}

func TestService_Stop_DrainsQueue(t *testing.T) {
	repo := &memoryRepository{}
	svc := NewNotificationService(repo, Config{
		BatchSize:     10,
		FlushInterval: time.Hour, // no timer flush during the test
		WorkerCount:   2,
		QueueSize:     100,
	})

	ctx := context.Background()
	for i := 0; i < 50; i++ {
		require.NoError(t, svc.Queue(ctx, notification.CreateNotificationRequest{
			RecipientID: "emp-1",
			Type:        notification.TypeLowLeaveBalance,
			Title:       "Leave balance running low",
		}))
	}

	svc.Stop()

	assert.Equal(t, 50, repo.count(), "every queued notification must be persisted by Stop")
}

func TestService_Queue_FullFallsBackToDirectInsert(t *testing.T) {
	repo := &memoryRepository{}
	svc := NewNotificationService(repo, Config{
		BatchSize:     100,
		FlushInterval: time.Hour,
		WorkerCount:   1,
		QueueSize:     1,
	})

	// Flood past the tiny queue; overflow must insert directly instead
	// of dropping.
	ctx := context.Background()
	for i := 0; i < 20; i++ {
		require.NoError(t, svc.Queue(ctx, notification.CreateNotificationRequest{
			RecipientID: "emp-1",
			Type:        notification.TypeLowLeaveBalance,
		}))
	}

	svc.Stop()

	assert.Equal(t, 20, repo.count())
}
