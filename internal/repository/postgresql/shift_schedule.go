package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shiftwise/workforce-backend-go/internal/domain/schedule"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftScheduleRepository struct {
	db *database.DB
}

func NewShiftScheduleRepository(db *database.DB) schedule.ShiftScheduleRepository {
	return &shiftScheduleRepository{db: db}
}

// GetByEmployeeAndDate implements schedule.ShiftScheduleRepository.
func (r *shiftScheduleRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (schedule.ShiftSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, start_time, end_time, role, created_at
		FROM shift_schedules
		WHERE employee_id = $1 AND date = $2
		LIMIT 1
	`

	var shift schedule.ShiftSchedule
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&shift.ID, &shift.EmployeeID, &shift.Date,
		&shift.StartTime, &shift.EndTime, &shift.Role, &shift.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ShiftSchedule{}, schedule.ErrShiftNotFound
		}
		return schedule.ShiftSchedule{}, fmt.Errorf("failed to get shift schedule: %w", err)
	}

	return shift, nil
}
