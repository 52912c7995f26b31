package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateStructure tarifas por defecto de un cargo.
type RateStructure struct {
	Base      decimal.Decimal // tarifa por hora regular
	Overtime  decimal.Decimal // tarifa por hora bonus (sobre el tope diario)
	RoleBonus decimal.Decimal // bono fijo del cargo, se suma al pago bonus
}

// JobRole representa un cargo dentro de una empresa con su estructura de tarifas.
// Si un empleado tiene cargo, DefaultRates reemplaza a Employee.HourlyRate;
// si no, se usa la tarifa del empleado con overtime y bono en cero.
type JobRole struct {
	ID           string
	CompanyID    string
	Name         string
	DefaultRates RateStructure
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
