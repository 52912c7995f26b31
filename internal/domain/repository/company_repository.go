package repository

import "github.com/jhoicas/Nomina-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company.
// Las empresas nunca se borran físicamente: se suspenden vía Update.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByNIT(nit string) (*entity.Company, error)
	Update(company *entity.Company) error
	List(limit, offset int) ([]*entity.Company, error)
}
