package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/subscription"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
	"github.com/jhoicas/Nomina-api/pkg/clock"
)

// EmployeeUseCase aplica reglas de negocio para empleados. El alta pasa por
// el gate de entitlements: una suscripción inválida o un límite alcanzado
// bloquean la creación antes de tocar la base.
type EmployeeUseCase struct {
	repo        repository.EmployeeRepository
	jobRoleRepo repository.JobRoleRepository
	gate        *subscription.Entitlements
	clk         clock.Clock
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(
	repo repository.EmployeeRepository,
	jobRoleRepo repository.JobRoleRepository,
	gate *subscription.Entitlements,
	clk clock.Clock,
) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, jobRoleRepo: jobRoleRepo, gate: gate, clk: clk}
}

// Create da de alta un empleado tras validar el límite del plan.
func (uc *EmployeeUseCase) Create(ctx context.Context, companyID string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := uc.gate.CanAddEmployee(ctx, companyID); err != nil {
		return nil, err
	}
	if in.HourlyRate.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.JobRoleID != "" {
		role, err := uc.jobRoleRepo.GetByID(in.JobRoleID)
		if err != nil || role == nil || role.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
	}
	now := uc.clk.Now()
	emp := &entity.Employee{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		HourlyRate: in.HourlyRate,
		JobRoleID:  in.JobRoleID,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(emp); err != nil {
		return nil, err
	}
	// Refresco best-effort del contador de uso tras el alta.
	_ = uc.gate.RefreshUsage(ctx, companyID)
	return entityToEmployeeResponse(emp), nil
}

// GetByID obtiene un empleado de la empresa.
func (uc *EmployeeUseCase) GetByID(companyID, id string) (*dto.EmployeeResponse, error) {
	emp, err := uc.repo.GetByID(id)
	if err != nil || emp == nil {
		return nil, domain.ErrNotFound
	}
	if emp.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return entityToEmployeeResponse(emp), nil
}

// Update actualiza los campos mutables del empleado. Reactivar un empleado
// inactivo cuenta como alta frente al límite del plan.
func (uc *EmployeeUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	emp, err := uc.repo.GetByID(id)
	if err != nil || emp == nil {
		return nil, domain.ErrNotFound
	}
	if emp.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.Active != nil && *in.Active && !emp.Active {
		if err := uc.gate.CanAddEmployee(ctx, companyID); err != nil {
			return nil, err
		}
	}
	if in.FirstName != nil {
		emp.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		emp.LastName = *in.LastName
	}
	if in.Email != nil {
		emp.Email = *in.Email
	}
	if in.HourlyRate != nil {
		if in.HourlyRate.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		emp.HourlyRate = *in.HourlyRate
	}
	if in.JobRoleID != nil {
		if *in.JobRoleID != "" {
			role, err := uc.jobRoleRepo.GetByID(*in.JobRoleID)
			if err != nil || role == nil || role.CompanyID != companyID {
				return nil, domain.ErrNotFound
			}
		}
		emp.JobRoleID = *in.JobRoleID
	}
	if in.Active != nil {
		emp.Active = *in.Active
	}
	emp.UpdatedAt = uc.clk.Now()
	if err := uc.repo.Update(emp); err != nil {
		return nil, err
	}
	_ = uc.gate.RefreshUsage(ctx, companyID)
	return entityToEmployeeResponse(emp), nil
}

// List lista empleados de la empresa con paginación.
func (uc *EmployeeUseCase) List(companyID string, limit, offset int) (*dto.EmployeeListResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *entityToEmployeeResponse(e))
	}
	return &dto.EmployeeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func entityToEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	if e == nil {
		return nil
	}
	return &dto.EmployeeResponse{
		ID:         e.ID,
		CompanyID:  e.CompanyID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		HourlyRate: e.HourlyRate,
		JobRoleID:  e.JobRoleID,
		Active:     e.Active,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
