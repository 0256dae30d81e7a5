package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shiftwise/workforce-backend-go/internal/config"
	"github.com/shiftwise/workforce-backend-go/internal/domain/attendance"
	"github.com/shiftwise/workforce-backend-go/internal/domain/employee"
	"github.com/shiftwise/workforce-backend-go/internal/domain/schedule"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/database"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/timeclass"
	"github.com/shiftwise/workforce-backend-go/internal/repository/postgresql"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	employee.EmployeeRepository
	schedule.ShiftScheduleRepository
	thresholds timeclass.Thresholds
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepository attendance.AttendanceRepository,
	employeeRepository employee.EmployeeRepository,
	shiftScheduleRepository schedule.ShiftScheduleRepository,
	cfg config.AttendanceConfig,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                      db,
		AttendanceRepository:    attendanceRepository,
		EmployeeRepository:      employeeRepository,
		ShiftScheduleRepository: shiftScheduleRepository,
		thresholds: timeclass.Thresholds{
			OnTime:       cfg.OnTimeThreshold,
			SlightlyLate: cfg.SlightlyLateThreshold,
		},
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string, ts time.Time, location string) (attendance.AttendanceResponse, error) {
	if ts.IsZero() {
		ts = time.Now()
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var record attendance.Attendance

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		// Serialize per employee so a double-tap cannot open two records.
		if err := postgresql.AcquireEmployeeLock(txCtx, s.db, emp.ID); err != nil {
			return err
		}

		if _, err := s.AttendanceRepository.GetOpen(txCtx, emp.ID); err == nil {
			return attendance.ErrAlreadyCheckedIn
		} else if !errors.Is(err, attendance.ErrNoOpenCheckIn) {
			return err
		}

		day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())

		status := attendance.StatusPresent
		var punctuality *string
		var shiftID *string

		shift, err := s.ShiftScheduleRepository.GetByEmployeeAndDate(txCtx, emp.ID, day)
		switch {
		case err == nil:
			grade := string(timeclass.Grade(ts, shift.StartOn(day, ts.Location()), s.thresholds))
			punctuality = &grade
			shiftID = &shift.ID
			if grade == string(timeclass.PunctualityLate) {
				status = attendance.StatusLate
			}
		case errors.Is(err, schedule.ErrShiftNotFound):
			// No shift scheduled, punctuality cannot be graded.
		default:
			return err
		}

		record, err = s.AttendanceRepository.Create(txCtx, attendance.Attendance{
			EmployeeID:      emp.ID,
			Date:            day,
			ShiftScheduleID: shiftID,
			CheckIn:         &ts,
			Punctuality:     punctuality,
			Status:          status,
			Location:        &location,
		})
		if err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record.EmployeeName = &emp.FullName
	return toAttendanceResponse(record), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string, ts time.Time, notes string) (attendance.AttendanceResponse, error) {
	if ts.IsZero() {
		ts = time.Now()
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var record attendance.Attendance

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := postgresql.AcquireEmployeeLock(txCtx, s.db, emp.ID); err != nil {
			return err
		}

		open, err := s.AttendanceRepository.GetOpen(txCtx, emp.ID)
		if err != nil {
			return err
		}

		scheduledStart := *open.CheckIn
		if open.ShiftScheduleID != nil {
			shift, err := s.ShiftScheduleRepository.GetByEmployeeAndDate(txCtx, emp.ID, open.Date)
			if err == nil {
				scheduledStart = shift.StartOn(open.Date, open.CheckIn.Location())
			}
		}

		result, err := timeclass.Classify(*open.CheckIn, ts, scheduledStart, s.thresholds)
		if err != nil {
			return err
		}

		if emp.DailyMaxHours > 0 && result.DayHours+result.NightHours > emp.DailyMaxHours {
			slog.Warn("worked interval exceeds daily max hours",
				"employee_id", emp.ID,
				"worked_hours", result.DayHours+result.NightHours,
				"daily_max_hours", emp.DailyMaxHours,
			)
		}

		punctuality := string(result.Punctuality)
		open.CheckOut = &ts
		open.DayHours = &result.DayHours
		open.NightHours = &result.NightHours
		open.Punctuality = &punctuality
		if result.Punctuality == timeclass.PunctualityLate {
			open.Status = attendance.StatusLate
		}
		if notes != "" {
			open.Notes = &notes
		}

		if err := s.AttendanceRepository.Update(txCtx, open); err != nil {
			return fmt.Errorf("failed to finalize attendance: %w", err)
		}

		record = open
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record.EmployeeName = &emp.FullName
	return toAttendanceResponse(record), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	filter.EmployeeID = employeeID
	return s.ListAttendance(ctx, filter)
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, toAttendanceResponse(r))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		Attendances: responses,
	}, nil
}

func toAttendanceResponse(a attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:          a.ID,
		EmployeeID:  a.EmployeeID,
		Date:        a.Date.Format("2006-01-02"),
		DayHours:    a.DayHours,
		NightHours:  a.NightHours,
		Punctuality: a.Punctuality,
		Status:      string(a.Status),
		Location:    a.Location,
		Notes:       a.Notes,
	}
	if a.EmployeeName != nil {
		resp.EmployeeName = *a.EmployeeName
	}
	if a.CheckIn != nil {
		v := a.CheckIn.Format(time.RFC3339)
		resp.CheckInTime = &v
	}
	if a.CheckOut != nil {
		v := a.CheckOut.Format(time.RFC3339)
		resp.CheckOutTime = &v
	}
	return resp
}
