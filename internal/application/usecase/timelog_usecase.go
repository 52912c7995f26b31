package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/payroll"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
	"github.com/jhoicas/Nomina-api/pkg/clock"
)

// TimeLogUseCase administra la captura de tiempo: clock-in, clock-out y
// aprobación. Las horas se derivan al cerrar el turno, con el tope diario de
// la empresa; un log pagado es inmutable.
type TimeLogUseCase struct {
	repo         repository.TimeLogRepository
	employeeRepo repository.EmployeeRepository
	companyRepo  repository.CompanyRepository
	clk          clock.Clock
}

// NewTimeLogUseCase construye el caso de uso.
func NewTimeLogUseCase(
	repo repository.TimeLogRepository,
	employeeRepo repository.EmployeeRepository,
	companyRepo repository.CompanyRepository,
	clk clock.Clock,
) *TimeLogUseCase {
	return &TimeLogUseCase{repo: repo, employeeRepo: employeeRepo, companyRepo: companyRepo, clk: clk}
}

// ClockIn abre un turno para el empleado. Un turno abierto previo bloquea el
// nuevo (primero hay que cerrar).
func (uc *TimeLogUseCase) ClockIn(ctx context.Context, companyID string, in dto.ClockInRequest) (*dto.TimeLogResponse, error) {
	emp, err := uc.employee(companyID, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !emp.Active {
		return nil, domain.ErrInvalidState
	}
	open, err := uc.repo.FindOpenByEmployee(emp.ID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, domain.ErrDuplicate
	}
	now := uc.clk.Now()
	at := now
	if in.At != nil {
		at = *in.At
	}
	log := &entity.TimeLog{
		ID:         uuid.New().String(),
		EmployeeID: emp.ID,
		ClockIn:    at,
		Status:     entity.TimeLogStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(log); err != nil {
		return nil, err
	}
	return entityToTimeLogResponse(log), nil
}

// ClockOut cierra el turno abierto del empleado y deriva las horas:
// regular = min(duración, tope diario), bonus = el exceso.
func (uc *TimeLogUseCase) ClockOut(ctx context.Context, companyID string, in dto.ClockOutRequest) (*dto.TimeLogResponse, error) {
	emp, err := uc.employee(companyID, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	open, err := uc.repo.FindOpenByEmployee(emp.ID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, domain.ErrNotFound
	}
	now := uc.clk.Now()
	at := now
	if in.At != nil {
		at = *in.At
	}
	if !at.After(open.ClockIn) {
		return nil, domain.ErrInvalidInput
	}
	duration := decimal.NewFromFloat(at.Sub(open.ClockIn).Hours())
	regular, bonus := payroll.SplitHours(duration, company.MaxDailyHours)
	open.ClockOut = &at
	open.Duration = duration
	open.RegularHours = regular
	open.BonusHours = bonus
	open.UpdatedAt = now
	if err := uc.repo.Update(open); err != nil {
		return nil, err
	}
	return entityToTimeLogResponse(open), nil
}

// Approve transiciona un log de pending a approved, dejándolo elegible para
// nómina. Un log pagado devuelve ErrPaidLogImmutable; cualquier otro estado
// distinto de pending, ErrInvalidState.
func (uc *TimeLogUseCase) Approve(ctx context.Context, companyID, logID string) (*dto.TimeLogResponse, error) {
	log, err := uc.repo.GetByID(logID)
	if err != nil || log == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := uc.employee(companyID, log.EmployeeID); err != nil {
		return nil, err
	}
	switch log.Status {
	case entity.TimeLogStatusPaid:
		return nil, domain.ErrPaidLogImmutable
	case entity.TimeLogStatusPending:
	default:
		return nil, domain.ErrInvalidState
	}
	if log.ClockOut == nil {
		return nil, domain.ErrInvalidState
	}
	now := uc.clk.Now()
	log.Status = entity.TimeLogStatusApproved
	log.ApprovedAt = &now
	log.UpdatedAt = now
	if err := uc.repo.Update(log); err != nil {
		return nil, err
	}
	return entityToTimeLogResponse(log), nil
}

// ListByEmployee lista los logs de un empleado con paginación.
func (uc *TimeLogUseCase) ListByEmployee(companyID, employeeID string, limit, offset int) (*dto.TimeLogListResponse, error) {
	if _, err := uc.employee(companyID, employeeID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByEmployee(employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TimeLogResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *entityToTimeLogResponse(l))
	}
	return &dto.TimeLogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// employee valida que el empleado exista y pertenezca a la empresa.
func (uc *TimeLogUseCase) employee(companyID, employeeID string) (*entity.Employee, error) {
	emp, err := uc.employeeRepo.GetByID(employeeID)
	if err != nil || emp == nil {
		return nil, domain.ErrNotFound
	}
	if emp.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return emp, nil
}

func entityToTimeLogResponse(l *entity.TimeLog) *dto.TimeLogResponse {
	if l == nil {
		return nil
	}
	return &dto.TimeLogResponse{
		ID:           l.ID,
		EmployeeID:   l.EmployeeID,
		ClockIn:      l.ClockIn,
		ClockOut:     l.ClockOut,
		Duration:     l.Duration,
		RegularHours: l.RegularHours,
		BonusHours:   l.BonusHours,
		Status:       l.Status,
		CreatedAt:    l.CreatedAt,
	}
}
