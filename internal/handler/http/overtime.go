package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shiftwise/workforce-backend-go/internal/domain/overtime"
	"github.com/shiftwise/workforce-backend-go/internal/handler/http/response"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/jwt"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type OvertimeHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
}

type OvertimeHandlerImpl struct {
	overtimeService overtime.OvertimeService
	jwtService      jwt.Service
}

func NewOvertimeHandler(overtimeService overtime.OvertimeService, jwtService jwt.Service) OvertimeHandler {
	return &OvertimeHandlerImpl{
		overtimeService: overtimeService,
		jwtService:      jwtService,
	}
}

// CreateRequest implements OvertimeHandler.
func (h *OvertimeHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.jwtService.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req overtime.CreateOvertimeRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.overtimeService.Create(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime request submitted", result)
}

// GetRequest implements OvertimeHandler.
func (h *OvertimeHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(requestID) {
		response.BadRequest(w, "Invalid request ID", nil)
		return
	}

	result, err := h.overtimeService.Get(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListRequests implements OvertimeHandler.
func (h *OvertimeHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := overtime.RequestFilter{
		EmployeeID: q.Get("employee_id"),
		Status:     q.Get("status"),
		Page:       parseIntParam(q.Get("page"), 1),
		Limit:      parseIntParam(q.Get("limit"), 20),
	}

	result, err := h.overtimeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyRequests implements OvertimeHandler.
func (h *OvertimeHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.jwtService.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	q := r.URL.Query()
	filter := overtime.RequestFilter{
		EmployeeID: employeeID,
		Status:     q.Get("status"),
		Page:       parseIntParam(q.Get("page"), 1),
		Limit:      parseIntParam(q.Get("limit"), 20),
	}

	result, err := h.overtimeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ApproveRequest implements OvertimeHandler.
func (h *OvertimeHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.overtimeService.Approve, "Overtime request approved")
}

// RejectRequest implements OvertimeHandler.
func (h *OvertimeHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.overtimeService.Reject, "Overtime request rejected")
}

func (h *OvertimeHandlerImpl) review(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, requestID, reviewerID, notes string) (overtime.OvertimeRequestResponse, error),
	message string,
) {
	reviewerID, err := h.jwtService.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	requestID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(requestID) {
		response.BadRequest(w, "Invalid request ID", nil)
		return
	}

	var req overtime.ReviewRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	result, err := fn(r.Context(), requestID, reviewerID, req.Notes)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}
