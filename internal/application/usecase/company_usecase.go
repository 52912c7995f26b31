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

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
// El alta de una empresa crea también su suscripción de trial; suspender y
// reactivar la empresa cascadea sobre la suscripción.
type CompanyUseCase struct {
	repo      repository.CompanyRepository
	lifecycle *subscription.Lifecycle
	defaults  CompanyDefaults
	clk       clock.Clock
}

// CompanyDefaults políticas de nómina aplicadas cuando el alta no las trae.
type CompanyDefaults struct {
	MaxDailyHours       decimal.Decimal
	BonusRateMultiplier decimal.Decimal
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository, lifecycle *subscription.Lifecycle, defaults CompanyDefaults, clk clock.Clock) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, lifecycle: lifecycle, defaults: defaults, clk: clk}
}

// Create crea una empresa con su suscripción de trial en el plan free.
// Devuelve domain.ErrDuplicate si el NIT ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	existing, _ := uc.repo.GetByNIT(in.NIT)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := uc.clk.Now()
	cycle := in.PaymentCycle
	if cycle == "" {
		cycle = entity.PaymentCycleMonthly
	}
	multiplier := in.BonusRateMultiplier
	if multiplier.LessThanOrEqual(decimal.Zero) {
		multiplier = uc.defaults.BonusRateMultiplier
	}
	maxDaily := in.MaxDailyHours
	if maxDaily.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if maxDaily.IsZero() {
		maxDaily = uc.defaults.MaxDailyHours
	}
	company := &entity.Company{
		ID:                  uuid.New().String(),
		Name:                in.Name,
		NIT:                 in.NIT,
		Email:               in.Email,
		PaymentCycle:        cycle,
		BonusRateMultiplier: multiplier,
		MaxDailyHours:       maxDaily,
		Status:              entity.CompanyStatusActive,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	if _, err := uc.lifecycle.StartTrial(ctx, company.ID); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return entityToCompanyResponse(company), nil
}

// Update actualiza los campos mutables de la empresa.
func (uc *CompanyUseCase) Update(id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil || company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	if in.PaymentCycle != nil {
		company.PaymentCycle = *in.PaymentCycle
	}
	if in.BonusRateMultiplier != nil {
		company.BonusRateMultiplier = *in.BonusRateMultiplier
	}
	if in.MaxDailyHours != nil {
		company.MaxDailyHours = *in.MaxDailyHours
	}
	company.UpdatedAt = uc.clk.Now()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// Suspend suspende la empresa y cascadea la suspensión a su suscripción con
// la razón de cascada, para que la reactivación pueda distinguirla de una
// suspensión administrativa directa.
func (uc *CompanyUseCase) Suspend(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil || company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	if company.IsSuspended() {
		return nil, domain.ErrInvalidState
	}
	now := uc.clk.Now()
	company.Status = entity.CompanyStatusSuspended
	company.SuspendedAt = &now
	company.UpdatedAt = now
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	if _, err := uc.lifecycle.Suspend(ctx, id, entity.SuspensionReasonCompany); err != nil && err != domain.ErrInvalidState {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// Reactivate reactiva una empresa suspendida. La suscripción solo se restaura
// si fue suspendida en cascada por la empresa.
func (uc *CompanyUseCase) Reactivate(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil || company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	if !company.IsSuspended() {
		return nil, domain.ErrInvalidState
	}
	now := uc.clk.Now()
	company.Status = entity.CompanyStatusActive
	company.SuspendedAt = nil
	company.UpdatedAt = now
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	if _, err := uc.lifecycle.RestoreFromCompanyReactivation(ctx, id); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(limit, offset int) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:                  c.ID,
		Name:                c.Name,
		NIT:                 c.NIT,
		Email:               c.Email,
		PaymentCycle:        c.PaymentCycle,
		BonusRateMultiplier: c.BonusRateMultiplier,
		MaxDailyHours:       c.MaxDailyHours,
		Status:              c.Status,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}
