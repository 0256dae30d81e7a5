package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shiftwise/workforce-backend-go/internal/config"
	appHTTP "github.com/shiftwise/workforce-backend-go/internal/handler/http"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/cron"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/database"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/jwt"
	"github.com/shiftwise/workforce-backend-go/internal/repository/postgresql"
	attendanceService "github.com/shiftwise/workforce-backend-go/internal/service/attendance"
	employeeService "github.com/shiftwise/workforce-backend-go/internal/service/employee"
	leaveService "github.com/shiftwise/workforce-backend-go/internal/service/leave"
	ledgerService "github.com/shiftwise/workforce-backend-go/internal/service/ledger"
	notificationService "github.com/shiftwise/workforce-backend-go/internal/service/notification"
	overtimeService "github.com/shiftwise/workforce-backend-go/internal/service/overtime"
	payrollService "github.com/shiftwise/workforce-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftScheduleRepo := postgresql.NewShiftScheduleRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	overtimeRepo := postgresql.NewOvertimeRequestRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)

	notificationSvc := notificationService.NewNotificationService(notificationRepo, notificationService.Config{})
	defer notificationSvc.Stop()

	ledgerSvc := ledgerService.NewLedgerService(db, leaveBalanceRepo, notificationSvc, cfg.Leave)
	requestSvc := leaveService.NewRequestService(db, leaveRequestRepo, leaveTypeRepo, attendanceRepo, employeeRepo, notificationRepo, ledgerSvc)
	overtimeSvc := overtimeService.NewOvertimeService(db, overtimeRepo, employeeRepo, notificationRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, employeeRepo, shiftScheduleRepo, cfg.Attendance)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, employeeRepo, overtimeRepo, notificationSvc, cfg.Payroll)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)

	scheduler := cron.NewScheduler()
	cron.NewPayrollJobs(payrollSvc, cfg.Payroll).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg.App,
		jwtService,
		appHTTP.NewAttendanceHandler(attendanceSvc, jwtService),
		appHTTP.NewLeaveHandler(requestSvc, ledgerSvc, jwtService),
		appHTTP.NewOvertimeHandler(overtimeSvc, jwtService),
		appHTTP.NewPayrollHandler(payrollSvc, jwtService),
		appHTTP.NewNotificationHandler(notificationSvc, jwtService),
		appHTTP.NewEmployeeHandler(employeeSvc),
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
}
