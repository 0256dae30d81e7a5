package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shiftwise/workforce-backend-go/internal/domain/overtime"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type overtimeRequestRepository struct {
	db *database.DB
}

func NewOvertimeRequestRepository(db *database.DB) overtime.OvertimeRequestRepository {
	return &overtimeRequestRepository{db: db}
}

const overtimeRequestColumns = `
	id, employee_id, date, hours, reason, status, reviewed_by, reviewed_at,
	review_notes, created_at, updated_at
`

func scanOvertimeRequest(row pgx.Row) (overtime.OvertimeRequest, error) {
	var or overtime.OvertimeRequest
	err := row.Scan(
		&or.ID, &or.EmployeeID, &or.Date, &or.Hours, &or.Reason, &or.Status,
		&or.ReviewedBy, &or.ReviewedAt, &or.ReviewNotes, &or.CreatedAt, &or.UpdatedAt,
	)
	return or, err
}

// Create implements overtime.OvertimeRequestRepository.
func (r *overtimeRequestRepository) Create(ctx context.Context, request overtime.OvertimeRequest) (overtime.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_requests (employee_id, date, hours, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + overtimeRequestColumns

	created, err := scanOvertimeRequest(q.QueryRow(ctx, query,
		request.EmployeeID, request.Date, request.Hours, request.Reason,
	))
	if err != nil {
		return overtime.OvertimeRequest{}, fmt.Errorf("failed to create overtime request: %w", err)
	}

	return created, nil
}

// GetByID implements overtime.OvertimeRequestRepository.
func (r *overtimeRequestRepository) GetByID(ctx context.Context, id string) (overtime.OvertimeRequest, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate implements overtime.OvertimeRequestRepository.
func (r *overtimeRequestRepository) GetByIDForUpdate(ctx context.Context, id string) (overtime.OvertimeRequest, error) {
	return r.getByID(ctx, id, true)
}

func (r *overtimeRequestRepository) getByID(ctx context.Context, id string, forUpdate bool) (overtime.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + overtimeRequestColumns + `
		FROM overtime_requests
		WHERE id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	request, err := scanOvertimeRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.OvertimeRequest{}, overtime.ErrOvertimeRequestNotFound
		}
		return overtime.OvertimeRequest{}, fmt.Errorf("failed to get overtime request: %w", err)
	}

	return request, nil
}

// SetStatus implements overtime.OvertimeRequestRepository.
func (r *overtimeRequestRepository) SetStatus(ctx context.Context, id string, status overtime.RequestStatus, reviewedBy string, reviewedAt time.Time, notes *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4, review_notes = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, status, reviewedBy, reviewedAt, notes)
	if err != nil {
		return fmt.Errorf("failed to update overtime request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return overtime.ErrOvertimeRequestNotFound
	}

	return nil
}

// List implements overtime.OvertimeRequestRepository.
func (r *overtimeRequestRepository) List(ctx context.Context, filter overtime.RequestFilter) ([]overtime.OvertimeRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE 1=1"
	args := make([]any, 0, 4)
	argPos := 1

	if filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND ot.employee_id = $%d", argPos)
		args = append(args, filter.EmployeeID)
		argPos++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND ot.status = $%d", argPos)
		args = append(args, filter.Status)
		argPos++
	}

	countQuery := "SELECT COUNT(*) FROM overtime_requests ot" + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count overtime requests: %w", err)
	}

	query := `
		SELECT ot.id, ot.employee_id, ot.date, ot.hours, ot.reason, ot.status,
			ot.reviewed_by, ot.reviewed_at, ot.review_notes, ot.created_at,
			ot.updated_at, e.full_name
		FROM overtime_requests ot
		JOIN employees e ON e.id = ot.employee_id
	` + where + fmt.Sprintf(" ORDER BY ot.created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list overtime requests: %w", err)
	}
	defer rows.Close()

	requests := make([]overtime.OvertimeRequest, 0)
	for rows.Next() {
		var or overtime.OvertimeRequest
		err := rows.Scan(
			&or.ID, &or.EmployeeID, &or.Date, &or.Hours, &or.Reason, &or.Status,
			&or.ReviewedBy, &or.ReviewedAt, &or.ReviewNotes, &or.CreatedAt,
			&or.UpdatedAt, &or.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan overtime request: %w", err)
		}
		requests = append(requests, or)
	}

	return requests, total, rows.Err()
}

// SumApprovedHoursInRange implements overtime.OvertimeRequestRepository.
func (r *overtimeRequestRepository) SumApprovedHoursInRange(ctx context.Context, start, end time.Time) (map[string]float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, COALESCE(SUM(hours), 0)
		FROM overtime_requests
		WHERE status = 'approved' AND date BETWEEN $1 AND $2
		GROUP BY employee_id
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to sum approved overtime hours: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]float64)
	for rows.Next() {
		var employeeID string
		var hours float64
		if err := rows.Scan(&employeeID, &hours); err != nil {
			return nil, fmt.Errorf("failed to scan overtime sum: %w", err)
		}
		sums[employeeID] = hours
	}

	return sums, rows.Err()
}
