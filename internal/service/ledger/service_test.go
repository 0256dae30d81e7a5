package ledger

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/shiftwise/workforce-backend-go/internal/config"
	"github.com/shiftwise/workforce-backend-go/internal/domain/leave"
	"github.com/shiftwise/workforce-backend-go/internal/domain/notification"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/database"
	"github.com/shiftwise/workforce-backend-go/internal/repository/postgresql"
	notificationService "github.com/shiftwise/workforce-backend-go/internal/service/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLedgerDB *database.DB

func ledgerTestInit(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	if testLedgerDB != nil {
		return
	}

	var err error
	testLedgerDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
}

func truncateLedgerTables(t *testing.T, ctx context.Context) {
	for _, table := range []string{"notifications", "leave_balances", "employees"} {
		_, err := testLedgerDB.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}
}

func createLedgerTestEmployee(t *testing.T, ctx context.Context) string {
	var id string
	err := testLedgerDB.QueryRow(ctx, `
		INSERT INTO employees (full_name, department)
		VALUES ('Test Employee', 'Engineering')
		RETURNING id
	`).Scan(&id)
	require.NoError(t, err)
	return id
}

func newTestLedgerService(svc notification.Service) leave.LedgerService {
	return NewLedgerService(
		testLedgerDB,
		postgresql.NewLeaveBalanceRepository(testLedgerDB),
		svc,
		config.LeaveConfig{DefaultAllocationDays: 12, LowBalanceThreshold: 3},
	)
}

func TestLedgerService_GetOrCreate_DefaultAllocation(t *testing.T) {
	ledgerTestInit(t)
	ctx := context.Background()
	truncateLedgerTables(t, ctx)

	empID := createLedgerTestEmployee(t, ctx)
	notifSvc := notificationService.NewNotificationService(postgresql.NewNotificationRepository(testLedgerDB), notificationService.Config{})
	defer notifSvc.Stop()
	svc := newTestLedgerService(notifSvc)

	balance, err := svc.GetOrCreate(ctx, empID, leave.TypePaidLeave, 2025)
	require.NoError(t, err)

	assert.Equal(t, 12.0, balance.Allocated)
	assert.Equal(t, 0.0, balance.Used)
	assert.Equal(t, 12.0, balance.Remaining)

	// Second call returns the same row.
	again, err := svc.GetOrCreate(ctx, empID, leave.TypePaidLeave, 2025)
	require.NoError(t, err)
	assert.Equal(t, balance.ID, again.ID)
}

func TestLedgerService_Debit(t *testing.T) {
	ledgerTestInit(t)
	ctx := context.Background()
	truncateLedgerTables(t, ctx)

	empID := createLedgerTestEmployee(t, ctx)
	notifSvc := notificationService.NewNotificationService(postgresql.NewNotificationRepository(testLedgerDB), notificationService.Config{})
	defer notifSvc.Stop()
	svc := newTestLedgerService(notifSvc)

	balance, err := svc.Debit(ctx, empID, leave.TypePaidLeave, 2025, 3)
	require.NoError(t, err)

	assert.Equal(t, 3.0, balance.Used)
	assert.Equal(t, 9.0, balance.Remaining)
}

func TestLedgerService_Debit_InsufficientBalance(t *testing.T) {
	ledgerTestInit(t)
	ctx := context.Background()
	truncateLedgerTables(t, ctx)

	empID := createLedgerTestEmployee(t, ctx)
	notifSvc := notificationService.NewNotificationService(postgresql.NewNotificationRepository(testLedgerDB), notificationService.Config{})
	defer notifSvc.Stop()
	svc := newTestLedgerService(notifSvc)

	_, err := svc.Debit(ctx, empID, leave.TypePaidLeave, 2025, 20)
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	// The failed debit must not touch the balance.
	balance, err := svc.GetOrCreate(ctx, empID, leave.TypePaidLeave, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance.Used)
	assert.Equal(t, 12.0, balance.Remaining)
}

func TestLedgerService_Credit_RefundsDebit(t *testing.T) {
	ledgerTestInit(t)
	ctx := context.Background()
	truncateLedgerTables(t, ctx)

	empID := createLedgerTestEmployee(t, ctx)
	notifSvc := notificationService.NewNotificationService(postgresql.NewNotificationRepository(testLedgerDB), notificationService.Config{})
	defer notifSvc.Stop()
	svc := newTestLedgerService(notifSvc)

	_, err := svc.Debit(ctx, empID, leave.TypePaidLeave, 2025, 5)
	require.NoError(t, err)

	balance, err := svc.Credit(ctx, empID, leave.TypePaidLeave, 2025, 2)
	require.NoError(t, err)

	assert.Equal(t, 3.0, balance.Used)
	assert.Equal(t, 9.0, balance.Remaining)
}

func TestLedgerService_GetOrCreate_ConflictKeepsTransactionUsable(t *testing.T) {
	ledgerTestInit(t)
	ctx := context.Background()
	truncateLedgerTables(t, ctx)

	empID := createLedgerTestEmployee(t, ctx)
	notifSvc := notificationService.NewNotificationService(postgresql.NewNotificationRepository(testLedgerDB), notificationService.Config{})
	defer notifSvc.Stop()
	svc := newTestLedgerService(notifSvc)

	// Simulate losing the creation race: the row exists before our
	// transaction tries to insert it.
	_, err := svc.GetOrCreate(ctx, empID, leave.TypePaidLeave, 2025)
	require.NoError(t, err)

	repo := postgresql.NewLeaveBalanceRepository(testLedgerDB)
	err = postgresql.WithTransaction(ctx, testLedgerDB, func(txCtx context.Context) error {
		_, err := repo.Create(txCtx, leave.LeaveBalance{
			EmployeeID: empID,
			LeaveType:  leave.TypePaidLeave,
			Year:       2025,
			Allocated:  12,
		})
		require.ErrorIs(t, err, leave.ErrBalanceExists)

		// The conflict must not abort the transaction; the debit that
		// follows it has to go through.
		_, err = svc.Debit(txCtx, empID, leave.TypePaidLeave, 2025, 2)
		return err
	})
	require.NoError(t, err)

	balance, err := svc.GetOrCreate(ctx, empID, leave.TypePaidLeave, 2025)
	require.NoError(t, err)
	assert.Equal(t, 2.0, balance.Used)
}

func countLedgerNotifications(t *testing.T, ctx context.Context, recipientID string) int {
	var count int
	err := testLedgerDB.QueryRow(ctx,
		"SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND type = 'low_leave_balance'",
		recipientID,
	).Scan(&count)
	require.NoError(t, err)
	return count
}

func TestLedgerService_Debit_LowBalanceWarningOnCrossing(t *testing.T) {
	ledgerTestInit(t)
	ctx := context.Background()
	truncateLedgerTables(t, ctx)

	empID := createLedgerTestEmployee(t, ctx)
	notifSvc := notificationService.NewNotificationService(postgresql.NewNotificationRepository(testLedgerDB), notificationService.Config{})
	svc := newTestLedgerService(notifSvc)

	// 12 -> 7 stays above the threshold of 3, no warning yet.
	_, err := svc.Debit(ctx, empID, leave.TypePaidLeave, 2025, 5)
	require.NoError(t, err)

	// 7 -> 2 crosses below the threshold.
	_, err = svc.Debit(ctx, empID, leave.TypePaidLeave, 2025, 5)
	require.NoError(t, err)

	// Stop flushes the queue so the row is visible.
	notifSvc.Stop()

	assert.Equal(t, 1, countLedgerNotifications(t, ctx, empID))
}

func TestLedgerService_Debit_RolledBackCrossingEmitsNothing(t *testing.T) {
	ledgerTestInit(t)
	ctx := context.Background()
	truncateLedgerTables(t, ctx)

	empID := createLedgerTestEmployee(t, ctx)
	notifSvc := notificationService.NewNotificationService(postgresql.NewNotificationRepository(testLedgerDB), notificationService.Config{})
	svc := newTestLedgerService(notifSvc)

	// The debit crosses the threshold inside an enclosing transaction
	// that then rolls back; the warning must be discarded with it.
	rollback := errors.New("enclosing transaction failed")
	err := postgresql.WithTransaction(ctx, testLedgerDB, func(txCtx context.Context) error {
		if _, err := svc.Debit(txCtx, empID, leave.TypePaidLeave, 2025, 10); err != nil {
			return err
		}
		return rollback
	})
	require.ErrorIs(t, err, rollback)

	notifSvc.Stop()

	assert.Equal(t, 0, countLedgerNotifications(t, ctx, empID))

	// The rollback also undid the debit itself.
	balance, err := postgresql.NewLeaveBalanceRepository(testLedgerDB).GetByKey(ctx, empID, leave.TypePaidLeave, 2025)
	if err == nil {
		assert.Equal(t, 0.0, balance.Used)
	} else {
		require.ErrorIs(t, err, leave.ErrBalanceNotFound)
	}
}

func TestLedgerService_Debit_RejectsNonPositiveDays(t *testing.T) {
	ledgerTestInit(t)
	ctx := context.Background()
	truncateLedgerTables(t, ctx)

	empID := createLedgerTestEmployee(t, ctx)
	notifSvc := notificationService.NewNotificationService(postgresql.NewNotificationRepository(testLedgerDB), notificationService.Config{})
	defer notifSvc.Stop()
	svc := newTestLedgerService(notifSvc)

	_, err := svc.Debit(ctx, empID, leave.TypePaidLeave, 2025, 0)
	assert.Error(t, err)

	_, err = svc.Debit(ctx, empID, leave.TypePaidLeave, 2025, -1)
	assert.Error(t, err)
}
