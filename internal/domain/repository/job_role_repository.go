package repository

import "github.com/jhoicas/Nomina-api/internal/domain/entity"

// JobRoleRepository define el puerto de persistencia para JobRole.
type JobRoleRepository interface {
	Create(role *entity.JobRole) error
	GetByID(id string) (*entity.JobRole, error)
	Update(role *entity.JobRole) error
	ListByCompany(companyID string) ([]*entity.JobRole, error)
}
