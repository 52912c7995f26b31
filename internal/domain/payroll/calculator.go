// Package payroll contiene la lógica pura de cálculo de nómina (servicio de
// dominio): resolución de tarifas efectivas, partición de horas contra el tope
// diario y totales de pago. Sin I/O ni dependencias de infraestructura.
package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// EffectiveRates tarifas efectivas de un empleado para una corrida.
type EffectiveRates struct {
	Base      decimal.Decimal
	Overtime  decimal.Decimal
	RoleBonus decimal.Decimal
}

// ResolveRates resuelve las tarifas efectivas: si el empleado tiene cargo con
// DefaultRates se usan base/overtime/roleBonus del cargo; si no, la tarifa por
// hora del empleado es autoritativa y overtime/bono quedan en cero.
func ResolveRates(emp *entity.Employee, role *entity.JobRole) EffectiveRates {
	if role != nil {
		return EffectiveRates{
			Base:      role.DefaultRates.Base,
			Overtime:  role.DefaultRates.Overtime,
			RoleBonus: role.DefaultRates.RoleBonus,
		}
	}
	return EffectiveRates{
		Base:      emp.HourlyRate,
		Overtime:  decimal.Zero,
		RoleBonus: decimal.Zero,
	}
}

// SplitHours parte una duración contra el tope diario:
// regular = min(duración, tope), bonus = max(0, duración - tope).
// Con tope cero o negativo todo cuenta como regular.
func SplitHours(duration, dailyCap decimal.Decimal) (regular, bonus decimal.Decimal) {
	if dailyCap.LessThanOrEqual(decimal.Zero) || duration.LessThanOrEqual(dailyCap) {
		return duration, decimal.Zero
	}
	return dailyCap, duration.Sub(dailyCap)
}

// Totals pago calculado de un empleado para un período.
type Totals struct {
	RegularHours decimal.Decimal
	BonusHours   decimal.Decimal
	RegularPay   decimal.Decimal
	BonusPay     decimal.Decimal
	TotalPay     decimal.Decimal
}

// ComputeTotals calcula el pago:
// regularPay = regularHours × base; bonusPay = bonusHours × overtime + roleBonus;
// totalPay = regularPay + bonusPay.
func ComputeTotals(regularHours, bonusHours decimal.Decimal, rates EffectiveRates) Totals {
	regularPay := regularHours.Mul(rates.Base)
	bonusPay := bonusHours.Mul(rates.Overtime).Add(rates.RoleBonus)
	return Totals{
		RegularHours: regularHours,
		BonusHours:   bonusHours,
		RegularPay:   regularPay,
		BonusPay:     bonusPay,
		TotalPay:     regularPay.Add(bonusPay),
	}
}

// SumHours acumula horas regulares y bonus de un conjunto de logs.
func SumHours(logs []*entity.TimeLog) (regular, bonus decimal.Decimal) {
	regular, bonus = decimal.Zero, decimal.Zero
	for _, l := range logs {
		regular = regular.Add(l.RegularHours)
		bonus = bonus.Add(l.BonusHours)
	}
	return regular, bonus
}
