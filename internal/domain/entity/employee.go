package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee representa un empleado de una Company.
// TimeLog y Payment lo referencian por ID (nunca embebido: muchos registros por empleado).
type Employee struct {
	ID         string
	CompanyID  string
	FirstName  string
	LastName   string
	Email      string
	HourlyRate decimal.Decimal // tarifa base por hora; autoritativa si no hay JobRole
	JobRoleID  string          // opcional; vacío = sin rol asignado
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FullName nombre completo para reportes y recibos.
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
