package overtime

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftwise/workforce-backend-go/internal/domain/employee"
	"github.com/shiftwise/workforce-backend-go/internal/domain/notification"
	"github.com/shiftwise/workforce-backend-go/internal/domain/overtime"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/database"
	"github.com/shiftwise/workforce-backend-go/internal/repository/postgresql"
)

// OvertimeServiceImpl runs the same terminal two-state machine as leave
// requests but never touches the leave ledger. Approved hours are picked
// up by the payroll engine for the cycle covering the date.
type OvertimeServiceImpl struct {
	db *database.DB
	overtime.OvertimeRequestRepository
	employee.EmployeeRepository
	notificationRepository notification.Repository
}

func NewOvertimeService(
	db *database.DB,
	requestRepository overtime.OvertimeRequestRepository,
	employeeRepository employee.EmployeeRepository,
	notificationRepository notification.Repository,
) overtime.OvertimeService {
	return &OvertimeServiceImpl{
		db:                        db,
		OvertimeRequestRepository: requestRepository,
		EmployeeRepository:        employeeRepository,
		notificationRepository:    notificationRepository,
	}
}

// Create implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Create(ctx context.Context, employeeID string, req overtime.CreateOvertimeRequestRequest) (overtime.OvertimeRequestResponse, error) {
	date, err := req.Validate()
	if err != nil {
		return overtime.OvertimeRequestResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return overtime.OvertimeRequestResponse{}, err
	}

	created, err := s.OvertimeRequestRepository.Create(ctx, overtime.OvertimeRequest{
		EmployeeID: employeeID,
		Date:       date,
		Hours:      req.Hours,
		Reason:     req.Reason,
	})
	if err != nil {
		return overtime.OvertimeRequestResponse{}, err
	}

	return toOvertimeRequestResponse(created), nil
}

// Approve implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Approve(ctx context.Context, requestID, reviewerID, notes string) (overtime.OvertimeRequestResponse, error) {
	return s.review(ctx, requestID, reviewerID, notes, overtime.RequestStatusApproved)
}

// Reject implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Reject(ctx context.Context, requestID, reviewerID, notes string) (overtime.OvertimeRequestResponse, error) {
	return s.review(ctx, requestID, reviewerID, notes, overtime.RequestStatusRejected)
}

func (s *OvertimeServiceImpl) review(ctx context.Context, requestID, reviewerID, notes string, status overtime.RequestStatus) (overtime.OvertimeRequestResponse, error) {
	var reviewed overtime.OvertimeRequest

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		request, err := s.OvertimeRequestRepository.GetByIDForUpdate(txCtx, requestID)
		if err != nil {
			return err
		}

		if request.Status != overtime.RequestStatusPending {
			return overtime.ErrRequestAlreadyProcessed
		}

		now := time.Now()
		var reviewNotes *string
		if notes != "" {
			reviewNotes = &notes
		}

		if err := s.OvertimeRequestRepository.SetStatus(txCtx, request.ID, status, reviewerID, now, reviewNotes); err != nil {
			return err
		}

		notifType := notification.TypeOvertimeApproved
		title := "Overtime request approved"
		if status == overtime.RequestStatusRejected {
			notifType = notification.TypeOvertimeRejected
			title = "Overtime request rejected"
		}

		if err := s.notificationRepository.Create(txCtx, &notification.Notification{
			RecipientID: request.EmployeeID,
			Type:        notifType,
			Title:       title,
			Message:     fmt.Sprintf("Your overtime request for %s (%.1f hours) was %s.", request.Date.Format("2006-01-02"), request.Hours, status),
			Data:        map[string]interface{}{"request_id": request.ID},
		}); err != nil {
			return err
		}

		request.Status = status
		request.ReviewedBy = &reviewerID
		request.ReviewedAt = &now
		request.ReviewNotes = reviewNotes
		reviewed = request
		return nil
	})
	if err != nil {
		return overtime.OvertimeRequestResponse{}, err
	}

	return toOvertimeRequestResponse(reviewed), nil
}

// Get implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Get(ctx context.Context, requestID string) (overtime.OvertimeRequestResponse, error) {
	request, err := s.OvertimeRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return overtime.OvertimeRequestResponse{}, err
	}
	return toOvertimeRequestResponse(request), nil
}

// List implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) List(ctx context.Context, filter overtime.RequestFilter) (overtime.ListOvertimeRequestResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	requests, total, err := s.OvertimeRequestRepository.List(ctx, filter)
	if err != nil {
		return overtime.ListOvertimeRequestResponse{}, err
	}

	responses := make([]overtime.OvertimeRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, toOvertimeRequestResponse(r))
	}

	return overtime.ListOvertimeRequestResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Requests:   responses,
	}, nil
}

func toOvertimeRequestResponse(r overtime.OvertimeRequest) overtime.OvertimeRequestResponse {
	resp := overtime.OvertimeRequestResponse{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		Date:        r.Date.Format("2006-01-02"),
		Hours:       r.Hours,
		Reason:      r.Reason,
		Status:      string(r.Status),
		ReviewedBy:  r.ReviewedBy,
		ReviewNotes: r.ReviewNotes,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
	if r.EmployeeName != nil {
		resp.EmployeeName = *r.EmployeeName
	}
	if r.ReviewedAt != nil {
		v := r.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}
