package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shiftwise/workforce-backend-go/internal/domain/payroll"
	"github.com/shiftwise/workforce-backend-go/internal/handler/http/response"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/jwt"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	CreateCycle(w http.ResponseWriter, r *http.Request)
	GetCycle(w http.ResponseWriter, r *http.Request)
	ListCycles(w http.ResponseWriter, r *http.Request)
	ProcessCycle(w http.ResponseWriter, r *http.Request)
	CloseCycle(w http.ResponseWriter, r *http.Request)
	ConfirmCycle(w http.ResponseWriter, r *http.Request)
	ListComputations(w http.ResponseWriter, r *http.Request)
	GetMyWageSummary(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
	jwtService     jwt.Service
}

func NewPayrollHandler(payrollService payroll.PayrollService, jwtService jwt.Service) PayrollHandler {
	return &PayrollHandlerImpl{
		payrollService: payrollService,
		jwtService:     jwtService,
	}
}

// CreateCycle implements PayrollHandler.
func (h *PayrollHandlerImpl) CreateCycle(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.CreateCycle(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll cycle created", result)
}

// GetCycle implements PayrollHandler.
func (h *PayrollHandlerImpl) GetCycle(w http.ResponseWriter, r *http.Request) {
	cycleID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(cycleID) {
		response.BadRequest(w, "Invalid cycle ID", nil)
		return
	}

	result, err := h.payrollService.GetCycle(r.Context(), cycleID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListCycles implements PayrollHandler.
func (h *PayrollHandlerImpl) ListCycles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := payroll.CycleFilter{
		State: q.Get("state"),
		Page:  parseIntParam(q.Get("page"), 1),
		Limit: parseIntParam(q.Get("limit"), 20),
	}

	result, err := h.payrollService.ListCycles(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ProcessCycle implements PayrollHandler.
func (h *PayrollHandlerImpl) ProcessCycle(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.payrollService.ProcessCycle, "Payroll cycle processed")
}

// CloseCycle implements PayrollHandler.
func (h *PayrollHandlerImpl) CloseCycle(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.payrollService.CloseCycle, "Payroll cycle closed")
}

// ConfirmCycle implements PayrollHandler.
func (h *PayrollHandlerImpl) ConfirmCycle(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.payrollService.ConfirmCycle, "Payroll cycle confirmed")
}

func (h *PayrollHandlerImpl) transition(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, cycleID string) (payroll.CycleResponse, error),
	message string,
) {
	cycleID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(cycleID) {
		response.BadRequest(w, "Invalid cycle ID", nil)
		return
	}

	result, err := fn(r.Context(), cycleID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}

// ListComputations implements PayrollHandler.
func (h *PayrollHandlerImpl) ListComputations(w http.ResponseWriter, r *http.Request) {
	cycleID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(cycleID) {
		response.BadRequest(w, "Invalid cycle ID", nil)
		return
	}

	result, err := h.payrollService.ListComputations(r.Context(), cycleID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyWageSummary implements PayrollHandler.
func (h *PayrollHandlerImpl) GetMyWageSummary(w http.ResponseWriter, r *http.Request) {
	employeeID, err := h.jwtService.EmployeeID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	q := r.URL.Query()
	start, end, ok := validator.IsValidDateRange(q.Get("start_date"), q.Get("end_date"))
	if !ok {
		// Default to the current calendar month.
		now := time.Now()
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, -1)
	}

	result, err := h.payrollService.GetWageSummary(r.Context(), employeeID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
