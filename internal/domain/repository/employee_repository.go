package repository

import "github.com/jhoicas/Nomina-api/internal/domain/entity"

// EmployeeRepository define el puerto de persistencia para Employee.
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	Update(employee *entity.Employee) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Employee, error)
	// ListActiveByCompany devuelve todos los empleados activos (sin paginar):
	// es la población de una corrida de nómina.
	ListActiveByCompany(companyID string) ([]*entity.Employee, error)
	// CountActiveByCompany cuenta empleados activos en vivo. El gate de
	// entitlements lo exige fresco: un contador cacheado obsoleto no puede
	// permitir un alta por encima del límite.
	CountActiveByCompany(companyID string) (int, error)
}
