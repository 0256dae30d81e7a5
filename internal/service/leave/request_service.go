package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftwise/workforce-backend-go/internal/domain/attendance"
	"github.com/shiftwise/workforce-backend-go/internal/domain/employee"
	"github.com/shiftwise/workforce-backend-go/internal/domain/leave"
	"github.com/shiftwise/workforce-backend-go/internal/domain/notification"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/database"
	"github.com/shiftwise/workforce-backend-go/internal/repository/postgresql"
)

// RequestServiceImpl orchestrates the leave request state machine.
// Approval is one transaction: ledger debit, status transition,
// attendance reconciliation and the notification row commit together or
// not at all.
type RequestServiceImpl struct {
	db *database.DB
	leave.LeaveRequestRepository
	leave.LeaveTypeRepository
	attendance.AttendanceRepository
	employee.EmployeeRepository
	notificationRepository notification.Repository
	ledger                 leave.LedgerService
}

func NewRequestService(
	db *database.DB,
	requestRepository leave.LeaveRequestRepository,
	typeRepository leave.LeaveTypeRepository,
	attendanceRepository attendance.AttendanceRepository,
	employeeRepository employee.EmployeeRepository,
	notificationRepository notification.Repository,
	ledger leave.LedgerService,
) leave.RequestService {
	return &RequestServiceImpl{
		db:                     db,
		LeaveRequestRepository: requestRepository,
		LeaveTypeRepository:    typeRepository,
		AttendanceRepository:   attendanceRepository,
		EmployeeRepository:     employeeRepository,
		notificationRepository: notificationRepository,
		ledger:                 ledger,
	}
}

// Create implements leave.RequestService.
func (s *RequestServiceImpl) Create(ctx context.Context, employeeID string, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	start, end, err := req.Validate()
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	leaveType, err := s.LeaveTypeRepository.GetByCode(ctx, req.LeaveType)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !leaveType.IsActive {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveTypeNotFound
	}

	created, err := s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  leaveType.Code,
		StartDate:  start,
		EndDate:    end,
		HalfDay:    req.HalfDay,
		Reason:     req.Reason,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return toLeaveRequestResponse(created), nil
}

// Approve implements leave.RequestService.
func (s *RequestServiceImpl) Approve(ctx context.Context, requestID, reviewerID, notes string) (leave.LeaveRequestResponse, error) {
	var approved leave.LeaveRequest

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		request, err := s.LeaveRequestRepository.GetByIDForUpdate(txCtx, requestID)
		if err != nil {
			return err
		}

		if request.Status != leave.RequestStatusPending {
			return leave.ErrRequestAlreadyProcessed
		}

		leaveType, err := s.LeaveTypeRepository.GetByCode(txCtx, request.LeaveType)
		if err != nil {
			return err
		}

		// Debit joins this transaction; an insufficient balance aborts the
		// whole approval and the request stays pending.
		if leaveType.DeductsBalance {
			year := request.StartDate.Year()
			if _, err := s.ledger.Debit(txCtx, request.EmployeeID, request.LeaveType, year, request.DayCount()); err != nil {
				return err
			}
		}

		now := time.Now()
		var reviewNotes *string
		if notes != "" {
			reviewNotes = &notes
		}

		if err := s.LeaveRequestRepository.SetStatus(txCtx, request.ID, leave.RequestStatusApproved, reviewerID, now, reviewNotes); err != nil {
			return err
		}

		if _, err := s.AttendanceRepository.MarkLeaveTaken(txCtx, request.EmployeeID, request.StartDate, request.EndDate); err != nil {
			return fmt.Errorf("failed to reconcile attendance: %w", err)
		}

		if err := s.notificationRepository.Create(txCtx, &notification.Notification{
			RecipientID: request.EmployeeID,
			Type:        notification.TypeLeaveApproved,
			Title:       "Leave request approved",
			Message:     fmt.Sprintf("Your %s request from %s to %s was approved.", leaveType.Name, request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02")),
			Data:        map[string]interface{}{"request_id": request.ID},
		}); err != nil {
			return err
		}

		request.Status = leave.RequestStatusApproved
		request.ReviewedBy = &reviewerID
		request.ReviewedAt = &now
		request.ReviewNotes = reviewNotes
		approved = request
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return toLeaveRequestResponse(approved), nil
}

// Reject implements leave.RequestService.
func (s *RequestServiceImpl) Reject(ctx context.Context, requestID, reviewerID, notes string) (leave.LeaveRequestResponse, error) {
	var rejected leave.LeaveRequest

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		request, err := s.LeaveRequestRepository.GetByIDForUpdate(txCtx, requestID)
		if err != nil {
			return err
		}

		if request.Status != leave.RequestStatusPending {
			return leave.ErrRequestAlreadyProcessed
		}

		now := time.Now()
		var reviewNotes *string
		if notes != "" {
			reviewNotes = &notes
		}

		if err := s.LeaveRequestRepository.SetStatus(txCtx, request.ID, leave.RequestStatusRejected, reviewerID, now, reviewNotes); err != nil {
			return err
		}

		if err := s.notificationRepository.Create(txCtx, &notification.Notification{
			RecipientID: request.EmployeeID,
			Type:        notification.TypeLeaveRejected,
			Title:       "Leave request rejected",
			Message:     fmt.Sprintf("Your leave request from %s to %s was rejected.", request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02")),
			Data:        map[string]interface{}{"request_id": request.ID},
		}); err != nil {
			return err
		}

		request.Status = leave.RequestStatusRejected
		request.ReviewedBy = &reviewerID
		request.ReviewedAt = &now
		request.ReviewNotes = reviewNotes
		rejected = request
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return toLeaveRequestResponse(rejected), nil
}

// Get implements leave.RequestService.
func (s *RequestServiceImpl) Get(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return toLeaveRequestResponse(request), nil
}

// List implements leave.RequestService.
func (s *RequestServiceImpl) List(ctx context.Context, filter leave.RequestFilter) (leave.ListLeaveRequestResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	requests, total, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, toLeaveRequestResponse(r))
	}

	return leave.ListLeaveRequestResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Requests:   responses,
	}, nil
}

func toLeaveRequestResponse(r leave.LeaveRequest) leave.LeaveRequestResponse {
	resp := leave.LeaveRequestResponse{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		LeaveType:   r.LeaveType,
		StartDate:   r.StartDate.Format("2006-01-02"),
		EndDate:     r.EndDate.Format("2006-01-02"),
		HalfDay:     r.HalfDay,
		Days:        r.DayCount(),
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
