package employee

import (
	"context"

	"github.com/shiftwise/workforce-backend-go/internal/domain/employee"
)

// Service wraps the read-mostly employee store. Identity fields belong
// to the identity collaborator; wage configuration is the one writable
// slice.
type Service struct {
	employee.EmployeeRepository
}

func NewEmployeeService(employeeRepository employee.EmployeeRepository) *Service {
	return &Service{EmployeeRepository: employeeRepository}
}

func (s *Service) GetWageConfig(ctx context.Context, employeeID string) (employee.WageConfigResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return employee.WageConfigResponse{}, err
	}
	return toWageConfigResponse(emp), nil
}

func (s *Service) UpdateWageConfig(ctx context.Context, employeeID string, req employee.UpdateWageConfigRequest) (employee.WageConfigResponse, error) {
	cfg, err := req.Validate()
	if err != nil {
		return employee.WageConfigResponse{}, err
	}

	if err := s.EmployeeRepository.UpdateWageConfig(ctx, employeeID, cfg); err != nil {
		return employee.WageConfigResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return employee.WageConfigResponse{}, err
	}
	return toWageConfigResponse(emp), nil
}

func toWageConfigResponse(emp employee.Employee) employee.WageConfigResponse {
	return employee.WageConfigResponse{
		EmployeeID:         emp.ID,
		FullName:           emp.FullName,
		HourlyRate:         emp.HourlyRate.String(),
		NightMultiplier:    emp.NightMultiplier.String(),
		OvertimeMultiplier: emp.OvertimeMultiplier.String(),
	}
}
