package leave

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shiftwise/workforce-backend-go/internal/config"
	"github.com/shiftwise/workforce-backend-go/internal/domain/leave"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/database"
	"github.com/shiftwise/workforce-backend-go/internal/repository/postgresql"
	ledgerService "github.com/shiftwise/workforce-backend-go/internal/service/ledger"
	notificationService "github.com/shiftwise/workforce-backend-go/internal/service/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLeaveDB *database.DB

func leaveTestInit(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	if testLeaveDB != nil {
		return
	}

	var err error
	testLeaveDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
}

func truncateLeaveTables(t *testing.T, ctx context.Context) {
	for _, table := range []string{"notifications", "leave_requests", "leave_balances", "attendances", "employees"} {
		_, err := testLeaveDB.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}
}

func createLeaveTestEmployee(t *testing.T, ctx context.Context, name string) string {
	var id string
	err := testLeaveDB.QueryRow(ctx, `
		INSERT INTO employees (full_name, department)
		VALUES ($1, 'Operations')
		RETURNING id
	`, name).Scan(&id)
	require.NoError(t, err)
	return id
}

type leaveTestEnv struct {
	requestService leave.RequestService
	ledger         leave.LedgerService
	stop           func()
}

func newLeaveTestEnv() leaveTestEnv {
	notifRepo := postgresql.NewNotificationRepository(testLeaveDB)
	notifSvc := notificationService.NewNotificationService(notifRepo, notificationService.Config{})
	ledger := ledgerService.NewLedgerService(
		testLeaveDB,
		postgresql.NewLeaveBalanceRepository(testLeaveDB),
		notifSvc,
		config.LeaveConfig{DefaultAllocationDays: 12, LowBalanceThreshold: 3},
	)
	requestSvc := NewRequestService(
		testLeaveDB,
		postgresql.NewLeaveRequestRepository(testLeaveDB),
		postgresql.NewLeaveTypeRepository(testLeaveDB),
		postgresql.NewAttendanceRepository(testLeaveDB),
		postgresql.NewEmployeeRepository(testLeaveDB),
		notifRepo,
		ledger,
	)
	return leaveTestEnv{requestService: requestSvc, ledger: ledger, stop: notifSvc.Stop}
}

func countRequestNotifications(t *testing.T, ctx context.Context, recipientID, notificationType string) int {
	var count int
	err := testLeaveDB.QueryRow(ctx,
		"SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND type = $2",
		recipientID, notificationType,
	).Scan(&count)
	require.NoError(t, err)
	return count
}

func createPendingRequest(t *testing.T, env leaveTestEnv, ctx context.Context, employeeID, leaveType string, start, end time.Time) string {
	resp, err := env.requestService.Create(ctx, employeeID, leave.CreateLeaveRequestRequest{
		LeaveType: leaveType,
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Reason:    "family matters",
	})
	require.NoError(t, err)
	require.Equal(t, string(leave.RequestStatusPending), resp.Status)
	return resp.ID
}

func TestRequestService_Approve_DebitsLedger(t *testing.T) {
	leaveTestInit(t)
	ctx := context.Background()
	truncateLeaveTables(t, ctx)

	env := newLeaveTestEnv()
	defer env.stop()

	empID := createLeaveTestEmployee(t, ctx, "Leave Requester")
	reviewerID := createLeaveTestEmployee(t, ctx, "Leave Reviewer")

	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	requestID := createPendingRequest(t, env, ctx, empID, leave.TypePaidLeave, start, end)

	resp, err := env.requestService.Approve(ctx, requestID, reviewerID, "enjoy")
	require.NoError(t, err)
	assert.Equal(t, string(leave.RequestStatusApproved), resp.Status)
	require.NotNil(t, resp.ReviewedBy)
	assert.Equal(t, reviewerID, *resp.ReviewedBy)

	balance, err := env.ledger.GetOrCreate(ctx, empID, leave.TypePaidLeave, 2025)
	require.NoError(t, err)
	assert.Equal(t, 3.0, balance.Used)
	assert.Equal(t, 9.0, balance.Remaining)

	// The approval wrote exactly one notification for the requester, in
	// the same transaction as the status transition.
	assert.Equal(t, 1, countRequestNotifications(t, ctx, empID, "leave_approved"))
}

func TestRequestService_Approve_AlreadyProcessed(t *testing.T) {
	leaveTestInit(t)
	ctx := context.Background()
	truncateLeaveTables(t, ctx)

	env := newLeaveTestEnv()
	defer env.stop()

	empID := createLeaveTestEmployee(t, ctx, "Leave Requester")
	reviewerID := createLeaveTestEmployee(t, ctx, "Leave Reviewer")

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	requestID := createPendingRequest(t, env, ctx, empID, leave.TypePaidLeave, day, day)

	_, err := env.requestService.Approve(ctx, requestID, reviewerID, "")
	require.NoError(t, err)

	_, err = env.requestService.Approve(ctx, requestID, reviewerID, "")
	assert.ErrorIs(t, err, leave.ErrRequestAlreadyProcessed)

	// The duplicate approval must not debit the ledger a second time.
	balance, err := env.ledger.GetOrCreate(ctx, empID, leave.TypePaidLeave, 2025)
	require.NoError(t, err)
	assert.Equal(t, 1.0, balance.Used)
}

func TestRequestService_Reject_LeavesLedgerUntouched(t *testing.T) {
	leaveTestInit(t)
	ctx := context.Background()
	truncateLeaveTables(t, ctx)

	env := newLeaveTestEnv()
	defer env.stop()

	empID := createLeaveTestEmployee(t, ctx, "Leave Requester")
	reviewerID := createLeaveTestEmployee(t, ctx, "Leave Reviewer")

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	requestID := createPendingRequest(t, env, ctx, empID, leave.TypePaidLeave, day, day)

	resp, err := env.requestService.Reject(ctx, requestID, reviewerID, "coverage gap")
	require.NoError(t, err)
	assert.Equal(t, string(leave.RequestStatusRejected), resp.Status)

	balance, err := env.ledger.GetOrCreate(ctx, empID, leave.TypePaidLeave, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance.Used)

	assert.Equal(t, 1, countRequestNotifications(t, ctx, empID, "leave_rejected"))
}

func TestRequestService_Approve_InsufficientBalanceLeavesPending(t *testing.T) {
	leaveTestInit(t)
	ctx := context.Background()
	truncateLeaveTables(t, ctx)

	env := newLeaveTestEnv()
	defer env.stop()

	empID := createLeaveTestEmployee(t, ctx, "Leave Requester")
	reviewerID := createLeaveTestEmployee(t, ctx, "Leave Reviewer")

	// Burn the allocation down to zero first.
	_, err := env.ledger.Debit(ctx, empID, leave.TypePaidLeave, 2025, 12)
	require.NoError(t, err)

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	requestID := createPendingRequest(t, env, ctx, empID, leave.TypePaidLeave, day, day)

	_, err = env.requestService.Approve(ctx, requestID, reviewerID, "")
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	// The failed approval rolls back, so the request stays pending and
	// no approval notification was written.
	var status string
	err = testLeaveDB.QueryRow(ctx, "SELECT status FROM leave_requests WHERE id = $1", requestID).Scan(&status)
	require.NoError(t, err)
	assert.Equal(t, string(leave.RequestStatusPending), status)
	assert.Equal(t, 0, countRequestNotifications(t, ctx, empID, "leave_approved"))
}

func TestRequestService_Approve_NonDeductingTypeSkipsLedger(t *testing.T) {
	leaveTestInit(t)
	ctx := context.Background()
	truncateLeaveTables(t, ctx)

	env := newLeaveTestEnv()
	defer env.stop()

	empID := createLeaveTestEmployee(t, ctx, "Leave Requester")
	reviewerID := createLeaveTestEmployee(t, ctx, "Leave Reviewer")

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	requestID := createPendingRequest(t, env, ctx, empID, "sick", day, day)

	_, err := env.requestService.Approve(ctx, requestID, reviewerID, "")
	require.NoError(t, err)

	var count int
	err = testLeaveDB.QueryRow(ctx, "SELECT COUNT(*) FROM leave_balances WHERE employee_id = $1", empID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "sick leave must not create a balance row")
}
