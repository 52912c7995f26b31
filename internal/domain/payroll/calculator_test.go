package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/payroll"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestResolveRates_ConCargoUsaTarifasDelCargo(t *testing.T) {
	emp := &entity.Employee{HourlyRate: d("25")}
	role := &entity.JobRole{
		DefaultRates: entity.RateStructure{
			Base:      d("30"),
			Overtime:  d("45"),
			RoleBonus: d("100"),
		},
	}

	rates := payroll.ResolveRates(emp, role)

	assert.True(t, rates.Base.Equal(d("30")), "con cargo, la base viene del cargo")
	assert.True(t, rates.Overtime.Equal(d("45")))
	assert.True(t, rates.RoleBonus.Equal(d("100")))
}

func TestResolveRates_SinCargoUsaTarifaDelEmpleado(t *testing.T) {
	emp := &entity.Employee{HourlyRate: d("25")}

	rates := payroll.ResolveRates(emp, nil)

	assert.True(t, rates.Base.Equal(d("25")))
	assert.True(t, rates.Overtime.IsZero(), "sin cargo no hay tarifa de horas extra")
	assert.True(t, rates.RoleBonus.IsZero(), "sin cargo no hay bono de cargo")
}

func TestSplitHours_BajoElTopeTodoEsRegular(t *testing.T) {
	regular, bonus := payroll.SplitHours(d("6"), d("8"))

	assert.True(t, regular.Equal(d("6")))
	assert.True(t, bonus.IsZero())
}

func TestSplitHours_SobreElTopeParteEnRegularYBonus(t *testing.T) {
	regular, bonus := payroll.SplitHours(d("10"), d("8"))

	assert.True(t, regular.Equal(d("8")))
	assert.True(t, bonus.Equal(d("2")))
}

func TestSplitHours_TopeCeroTodoEsRegular(t *testing.T) {
	regular, bonus := payroll.SplitHours(d("12"), decimal.Zero)

	assert.True(t, regular.Equal(d("12")), "tope cero o negativo desactiva la partición")
	assert.True(t, bonus.IsZero())
}

func TestComputeTotals_EscenarioCompleto(t *testing.T) {
	// Empleado con base 25, cargo con overtime 37.5 y bono de cargo 100,
	// 10 horas en un día con tope 8: 8 regulares y 2 con recargo.
	emp := &entity.Employee{HourlyRate: d("25")}
	role := &entity.JobRole{
		DefaultRates: entity.RateStructure{
			Base:      d("25"),
			Overtime:  d("37.5"),
			RoleBonus: d("100"),
		},
	}
	rates := payroll.ResolveRates(emp, role)
	regular, bonus := payroll.SplitHours(d("10"), d("8"))

	totals := payroll.ComputeTotals(regular, bonus, rates)

	require.True(t, totals.RegularPay.Equal(d("200")), "regularPay = 8 × 25")
	require.True(t, totals.BonusPay.Equal(d("175")), "bonusPay = 2 × 37.5 + 100")
	require.True(t, totals.TotalPay.Equal(d("375")))
	assert.True(t, totals.RegularHours.Equal(d("8")))
	assert.True(t, totals.BonusHours.Equal(d("2")))
}

func TestSumHours_AcumulaVariosLogs(t *testing.T) {
	out := time.Now()
	logs := []*entity.TimeLog{
		{RegularHours: d("8"), BonusHours: d("2"), ClockOut: &out},
		{RegularHours: d("4"), BonusHours: decimal.Zero, ClockOut: &out},
	}

	regular, bonus := payroll.SumHours(logs)

	assert.True(t, regular.Equal(d("12")))
	assert.True(t, bonus.Equal(d("2")))
}

func TestSumHours_SinLogsDevuelveCeros(t *testing.T) {
	regular, bonus := payroll.SumHours(nil)

	assert.True(t, regular.IsZero())
	assert.True(t, bonus.IsZero())
}
