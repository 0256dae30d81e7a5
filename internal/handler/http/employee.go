package http

import (
	"encoding/json"
	"net/http"

	domain "github.com/shiftwise/workforce-backend-go/internal/domain/employee"
	"github.com/shiftwise/workforce-backend-go/internal/handler/http/response"
	"github.com/shiftwise/workforce-backend-go/internal/pkg/validator"
	"github.com/shiftwise/workforce-backend-go/internal/service/employee"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	GetWageConfig(w http.ResponseWriter, r *http.Request)
	UpdateWageConfig(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService *employee.Service
}

func NewEmployeeHandler(employeeService *employee.Service) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// GetWageConfig implements EmployeeHandler.
func (h *EmployeeHandlerImpl) GetWageConfig(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "Invalid employee ID", nil)
		return
	}

	result, err := h.employeeService.GetWageConfig(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateWageConfig implements EmployeeHandler.
func (h *EmployeeHandlerImpl) UpdateWageConfig(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(employeeID) {
		response.BadRequest(w, "Invalid employee ID", nil)
		return
	}

	var req domain.UpdateWageConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.employeeService.UpdateWageConfig(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Wage configuration updated", result)
}
