package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/subscription"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/plan"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
	"github.com/jhoicas/Nomina-api/pkg/clock"
)

// JobRoleUseCase administra los cargos con tarifas por defecto. El feature
// job_roles solo existe a partir del plan starter.
type JobRoleUseCase struct {
	repo repository.JobRoleRepository
	gate *subscription.Entitlements
	clk  clock.Clock
}

// NewJobRoleUseCase construye el caso de uso.
func NewJobRoleUseCase(repo repository.JobRoleRepository, gate *subscription.Entitlements, clk clock.Clock) *JobRoleUseCase {
	return &JobRoleUseCase{repo: repo, gate: gate, clk: clk}
}

// Create crea un cargo con sus tarifas base/overtime/bono.
func (uc *JobRoleUseCase) Create(ctx context.Context, companyID string, in dto.CreateJobRoleRequest) (*dto.JobRoleResponse, error) {
	ok, err := uc.gate.HasFeature(ctx, companyID, plan.FeatureJobRoles)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	if in.Base.LessThan(decimal.Zero) || in.Overtime.LessThan(decimal.Zero) || in.RoleBonus.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := uc.clk.Now()
	role := &entity.JobRole{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		DefaultRates: entity.RateStructure{
			Base:      in.Base,
			Overtime:  in.Overtime,
			RoleBonus: in.RoleBonus,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(role); err != nil {
		return nil, err
	}
	return entityToJobRoleResponse(role), nil
}

// List lista los cargos de la empresa.
func (uc *JobRoleUseCase) List(companyID string) ([]dto.JobRoleResponse, error) {
	list, err := uc.repo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.JobRoleResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *entityToJobRoleResponse(r))
	}
	return items, nil
}

func entityToJobRoleResponse(r *entity.JobRole) *dto.JobRoleResponse {
	if r == nil {
		return nil
	}
	return &dto.JobRoleResponse{
		ID:        r.ID,
		CompanyID: r.CompanyID,
		Name:      r.Name,
		Base:      r.DefaultRates.Base,
		Overtime:  r.DefaultRates.Overtime,
		RoleBonus: r.DefaultRates.RoleBonus,
		CreatedAt: r.CreatedAt,
	}
}
