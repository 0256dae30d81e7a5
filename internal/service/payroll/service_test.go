package payroll

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shiftwise/workforce-backend-go/internal/config"
	"github.com/shiftwise/workforce-backend-go/internal/domain/payroll"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/database"
	"github.com/shiftwise/workforce-backend-go/internal/repository/postgresql"
	notificationService "github.com/shiftwise/workforce-backend-go/internal/service/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPayrollDB *database.DB

func payrollTestInit(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	if testPayrollDB != nil {
		return
	}

	var err error
	testPayrollDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
}

func truncatePayrollTables(t *testing.T, ctx context.Context) {
	for _, table := range []string{"notifications", "wage_computations", "payroll_cycles", "overtime_requests", "attendances", "employees"} {
		_, err := testPayrollDB.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}
}

func createPayrollTestEmployee(t *testing.T, ctx context.Context, hourlyRate float64, weeklyCap float64) string {
	var id string
	err := testPayrollDB.QueryRow(ctx, `
		INSERT INTO employees (full_name, department, hourly_rate, weekly_hours_cap)
		VALUES ('Payroll Employee', 'Warehouse', $1, $2)
		RETURNING id
	`, hourlyRate, weeklyCap).Scan(&id)
	require.NoError(t, err)
	return id
}

func createClassifiedAttendance(t *testing.T, ctx context.Context, employeeID string, date time.Time, dayHours, nightHours float64) {
	checkIn := date.Add(9 * time.Hour)
	checkOut := checkIn.Add(time.Duration((dayHours + nightHours) * float64(time.Hour)))
	_, err := testPayrollDB.Exec(ctx, `
		INSERT INTO attendances (employee_id, date, check_in, check_out, day_hours, night_hours, punctuality, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'on_time', 'present')
	`, employeeID, date, checkIn, checkOut, dayHours, nightHours)
	require.NoError(t, err)
}

func newPayrollTestService() (payroll.PayrollService, func()) {
	notifSvc := notificationService.NewNotificationService(postgresql.NewNotificationRepository(testPayrollDB), notificationService.Config{})
	svc := NewPayrollService(
		testPayrollDB,
		postgresql.NewPayrollRepository(testPayrollDB),
		postgresql.NewEmployeeRepository(testPayrollDB),
		postgresql.NewOvertimeRequestRepository(testPayrollDB),
		notifSvc,
		config.PayrollConfig{DefaultNightMultiplier: 1.25, DefaultOvertimeMultiplier: 1.5},
	)
	return svc, notifSvc.Stop
}

func TestPayrollService_ProcessCycle(t *testing.T) {
	payrollTestInit(t)
	ctx := context.Background()
	truncatePayrollTables(t, ctx)

	svc, stop := newPayrollTestService()
	defer stop()

	empID := createPayrollTestEmployee(t, ctx, 10, 160)
	cycleStart := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	createClassifiedAttendance(t, ctx, empID, cycleStart, 8, 0)
	createClassifiedAttendance(t, ctx, empID, cycleStart.AddDate(0, 0, 1), 6, 2)

	cycle, err := svc.CreateCycle(ctx, payroll.CreateCycleRequest{
		StartDate: "2025-05-01",
		EndDate:   "2025-05-31",
	})
	require.NoError(t, err)
	assert.Equal(t, string(payroll.CycleStateOpen), cycle.State)

	processed, err := svc.ProcessCycle(ctx, cycle.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.CycleStateClosed), processed.State)

	comps, err := svc.ListComputations(ctx, cycle.ID)
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Equal(t, empID, comps[0].EmployeeID)
	assert.Equal(t, 14.0, comps[0].DayHours)
	assert.Equal(t, 2.0, comps[0].NightHours)
	assert.Equal(t, 0.0, comps[0].OvertimeHours)
	// 14h * 10 + 2h * 10 * 1.25
	assert.Equal(t, "165.00", comps[0].ComputedAmount)
}

func TestPayrollService_ProcessCycle_Recompute(t *testing.T) {
	payrollTestInit(t)
	ctx := context.Background()
	truncatePayrollTables(t, ctx)

	svc, stop := newPayrollTestService()
	defer stop()

	empID := createPayrollTestEmployee(t, ctx, 10, 160)
	cycleStart := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	createClassifiedAttendance(t, ctx, empID, cycleStart, 8, 0)

	cycle, err := svc.CreateCycle(ctx, payroll.CreateCycleRequest{StartDate: "2025-05-01", EndDate: "2025-05-31"})
	require.NoError(t, err)

	_, err = svc.ProcessCycle(ctx, cycle.ID)
	require.NoError(t, err)

	// A late check-out lands, then the cycle gets reprocessed.
	createClassifiedAttendance(t, ctx, empID, cycleStart.AddDate(0, 0, 1), 4, 0)

	_, err = svc.ProcessCycle(ctx, cycle.ID)
	require.NoError(t, err)

	comps, err := svc.ListComputations(ctx, cycle.ID)
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Equal(t, 12.0, comps[0].DayHours)
	assert.Equal(t, "120.00", comps[0].ComputedAmount)
}

func TestPayrollService_ConfirmCycle_LocksProcessing(t *testing.T) {
	payrollTestInit(t)
	ctx := context.Background()
	truncatePayrollTables(t, ctx)

	svc, stop := newPayrollTestService()
	defer stop()

	empID := createPayrollTestEmployee(t, ctx, 10, 160)
	createClassifiedAttendance(t, ctx, empID, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), 8, 0)

	cycle, err := svc.CreateCycle(ctx, payroll.CreateCycleRequest{StartDate: "2025-05-01", EndDate: "2025-05-31"})
	require.NoError(t, err)

	// Confirm straight from open is not allowed.
	_, err = svc.ConfirmCycle(ctx, cycle.ID)
	assert.Error(t, err)

	_, err = svc.ProcessCycle(ctx, cycle.ID)
	require.NoError(t, err)

	confirmed, err := svc.ConfirmCycle(ctx, cycle.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.CycleStateConfirmed), confirmed.State)

	_, err = svc.ProcessCycle(ctx, cycle.ID)
	assert.ErrorIs(t, err, payroll.ErrCycleLocked)
}

func TestPayrollService_CreateCycle_RejectsOverlap(t *testing.T) {
	payrollTestInit(t)
	ctx := context.Background()
	truncatePayrollTables(t, ctx)

	svc, stop := newPayrollTestService()
	defer stop()

	_, err := svc.CreateCycle(ctx, payroll.CreateCycleRequest{StartDate: "2025-05-01", EndDate: "2025-05-31"})
	require.NoError(t, err)

	_, err = svc.CreateCycle(ctx, payroll.CreateCycleRequest{StartDate: "2025-05-15", EndDate: "2025-06-14"})
	assert.ErrorIs(t, err, payroll.ErrCycleOverlap)

	_, err = svc.CreateCycle(ctx, payroll.CreateCycleRequest{StartDate: "2025-06-01", EndDate: "2025-06-30"})
	require.NoError(t, err)
}

func TestPayrollService_ProcessCycle_DerivesCapOvertime(t *testing.T) {
	payrollTestInit(t)
	ctx := context.Background()
	truncatePayrollTables(t, ctx)

	svc, stop := newPayrollTestService()
	defer stop()

	// 20 hour cap makes 4 of the 24 day hours overtime.
	empID := createPayrollTestEmployee(t, ctx, 10, 20)
	cycleStart := time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		createClassifiedAttendance(t, ctx, empID, cycleStart.AddDate(0, 0, i), 8, 0)
	}

	cycle, err := svc.CreateCycle(ctx, payroll.CreateCycleRequest{StartDate: "2025-05-05", EndDate: "2025-05-11"})
	require.NoError(t, err)

	_, err = svc.ProcessCycle(ctx, cycle.ID)
	require.NoError(t, err)

	comps, err := svc.ListComputations(ctx, cycle.ID)
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Equal(t, 20.0, comps[0].DayHours)
	assert.Equal(t, 4.0, comps[0].OvertimeHours)
	// 20h * 10 + 4h * 10 * 1.5
	assert.Equal(t, "260.00", comps[0].ComputedAmount)
}
