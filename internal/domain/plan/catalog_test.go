package plan_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nomina-api/internal/domain/plan"
)

func TestGetPlan_FreeTieneLimitesBase(t *testing.T) {
	cfg := plan.GetPlan(plan.Free)

	require.NotNil(t, cfg)
	assert.Equal(t, 3, cfg.MaxEmployees)
	assert.Equal(t, 10, cfg.MaxMonthlyPayments)
	assert.True(t, cfg.MonthlyPrice.IsZero())
	assert.Contains(t, cfg.Features, plan.FeaturePayroll)
	assert.NotContains(t, cfg.Features, plan.FeatureJobRoles)
}

func TestGetPlan_DesconocidoDevuelveNil(t *testing.T) {
	assert.Nil(t, plan.GetPlan("platinum"))
}

func TestGetPlan_DevuelveCopia(t *testing.T) {
	cfg := plan.GetPlan(plan.Starter)
	require.NotNil(t, cfg)
	cfg.MaxEmployees = 9999

	again := plan.GetPlan(plan.Starter)
	assert.Equal(t, 25, again.MaxEmployees, "mutar la copia no toca el catálogo")
}

func TestRank_OrdenDelCatalogo(t *testing.T) {
	assert.Equal(t, 0, plan.Rank(plan.Free))
	assert.Equal(t, 1, plan.Rank(plan.Starter))
	assert.Equal(t, 2, plan.Rank(plan.Professional))
	assert.Equal(t, 3, plan.Rank(plan.Enterprise))
	assert.Equal(t, -1, plan.Rank("inexistente"))
}

func TestCanUpgradeCanDowngrade(t *testing.T) {
	assert.True(t, plan.CanUpgrade(plan.Free, plan.Starter))
	assert.False(t, plan.CanUpgrade(plan.Starter, plan.Starter), "mismo plan no es upgrade")
	assert.False(t, plan.CanUpgrade(plan.Professional, plan.Free))

	assert.True(t, plan.CanDowngrade(plan.Professional, plan.Free))
	assert.False(t, plan.CanDowngrade(plan.Free, plan.Enterprise))
	assert.False(t, plan.CanDowngrade("inexistente", plan.Free))
}

func TestCalculatePrice_CiclosMultiplicanElPrecioMensual(t *testing.T) {
	monthly := plan.CalculatePrice(plan.Starter, plan.BillingCycleMonthly)
	quarterly := plan.CalculatePrice(plan.Starter, plan.BillingCycleQuarterly)
	yearly := plan.CalculatePrice(plan.Starter, plan.BillingCycleYearly)

	require.NotNil(t, monthly)
	require.NotNil(t, quarterly)
	require.NotNil(t, yearly)
	assert.True(t, monthly.Equal(decimal.NewFromInt(89900)))
	assert.True(t, quarterly.Equal(decimal.RequireFromString("242730")), "trimestral = mensual × 2.7")
	assert.True(t, yearly.Equal(decimal.NewFromInt(899000)), "anual = mensual × 10")
}

func TestCalculatePrice_EnterpriseEsNegociado(t *testing.T) {
	assert.Nil(t, plan.CalculatePrice(plan.Enterprise, plan.BillingCycleMonthly),
		"precio negociado: no se calcula")
}

func TestCalculatePrice_CicloDesconocidoDevuelveNil(t *testing.T) {
	assert.Nil(t, plan.CalculatePrice(plan.Starter, "biweekly"))
	assert.False(t, plan.ValidCycle("biweekly"))
	assert.True(t, plan.ValidCycle(plan.BillingCycleYearly))
}

func TestFeatureSet_ConvierteListaEnMapa(t *testing.T) {
	set := plan.GetPlan(plan.Professional).FeatureSet()

	assert.True(t, set[plan.FeaturePDFReceipts])
	assert.True(t, set[plan.FeatureReports])
	assert.False(t, set[plan.FeaturePrioritySupport])
}

func TestGetAllPlans_OrdenYUnlimited(t *testing.T) {
	all := plan.GetAllPlans()

	require.Len(t, all, 4)
	assert.Equal(t, plan.Free, all[0].ID)
	assert.Equal(t, plan.Enterprise, all[3].ID)
	assert.Equal(t, plan.Unlimited, all[3].MaxEmployees)
	assert.True(t, all[3].Custom)
}
