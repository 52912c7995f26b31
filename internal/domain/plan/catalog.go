// Package plan define el catálogo inmutable de planes de suscripción.
// El orden del slice es el rango: free < starter < professional < enterprise.
// Se carga una vez al iniciar el proceso y es configuración de solo lectura;
// la comparación de rango es búsqueda de índice en esa lista (sin estado
// global mutable).
package plan

import "github.com/shopspring/decimal"

// IDs de los planes en orden de rango.
const (
	Free         = "free"
	Starter      = "starter"
	Professional = "professional"
	Enterprise   = "enterprise"
)

// Unlimited valor centinela en límites numéricos: sin tope.
const Unlimited = -1

// Ciclos de facturación de la suscripción y sus multiplicadores sobre el
// precio base mensual.
const (
	BillingCycleMonthly   = "monthly"
	BillingCycleQuarterly = "quarterly"
	BillingCycleYearly    = "yearly"
)

// Features que un plan puede incluir.
const (
	FeaturePayroll         = "payroll"
	FeatureJobRoles        = "job_roles"
	FeaturePDFReceipts     = "pdf_receipts"
	FeatureReports         = "reports"
	FeatureAPIAccess       = "api_access"
	FeaturePrioritySupport = "priority_support"
)

// Config descriptor inmutable de un plan.
type Config struct {
	ID                 string
	Name               string
	MaxEmployees       int // -1 = ilimitado
	MaxMonthlyPayments int // -1 = ilimitado
	Features           []string
	MonthlyPrice       decimal.Decimal // COP; base para los demás ciclos
	Custom             bool            // precio negociado (enterprise): CalculatePrice devuelve nil
}

// catalog lista ordenada de planes; el índice es el rango.
var catalog = []Config{
	{
		ID:                 Free,
		Name:               "Gratis",
		MaxEmployees:       3,
		MaxMonthlyPayments: 10,
		Features:           []string{FeaturePayroll},
		MonthlyPrice:       decimal.Zero,
	},
	{
		ID:                 Starter,
		Name:               "Starter",
		MaxEmployees:       25,
		MaxMonthlyPayments: 200,
		Features:           []string{FeaturePayroll, FeatureJobRoles, FeaturePDFReceipts},
		MonthlyPrice:       decimal.NewFromInt(89900),
	},
	{
		ID:                 Professional,
		Name:               "Professional",
		MaxEmployees:       100,
		MaxMonthlyPayments: 2000,
		Features:           []string{FeaturePayroll, FeatureJobRoles, FeaturePDFReceipts, FeatureReports, FeatureAPIAccess},
		MonthlyPrice:       decimal.NewFromInt(249900),
	},
	{
		ID:                 Enterprise,
		Name:               "Enterprise",
		MaxEmployees:       Unlimited,
		MaxMonthlyPayments: Unlimited,
		Features:           []string{FeaturePayroll, FeatureJobRoles, FeaturePDFReceipts, FeatureReports, FeatureAPIAccess, FeaturePrioritySupport},
		Custom:             true,
	},
}

// cycleMultipliers convierten el precio base mensual a otros ciclos.
var cycleMultipliers = map[string]decimal.Decimal{
	BillingCycleMonthly:   decimal.NewFromInt(1),
	BillingCycleQuarterly: decimal.RequireFromString("2.7"),
	BillingCycleYearly:    decimal.NewFromInt(10),
}

// GetPlan devuelve una copia del plan o nil si el ID es desconocido.
func GetPlan(id string) *Config {
	for i := range catalog {
		if catalog[i].ID == id {
			cfg := catalog[i]
			return &cfg
		}
	}
	return nil
}

// GetAllPlans devuelve el catálogo completo en orden de rango.
func GetAllPlans() []Config {
	out := make([]Config, len(catalog))
	copy(out, catalog)
	return out
}

// Rank devuelve el índice del plan en el catálogo, o -1 si no existe.
func Rank(id string) int {
	for i := range catalog {
		if catalog[i].ID == id {
			return i
		}
	}
	return -1
}

// CanUpgrade informa si newPlan está estrictamente por encima de currentPlan.
func CanUpgrade(currentPlan, newPlan string) bool {
	cur, next := Rank(currentPlan), Rank(newPlan)
	return cur >= 0 && next >= 0 && next > cur
}

// CanDowngrade informa si newPlan está estrictamente por debajo de currentPlan.
func CanDowngrade(currentPlan, newPlan string) bool {
	cur, next := Rank(currentPlan), Rank(newPlan)
	return cur >= 0 && next >= 0 && next < cur
}

// CalculatePrice precio del plan para el ciclo dado. Devuelve nil si el plan
// no existe, el ciclo es desconocido, o el precio es negociado (enterprise).
func CalculatePrice(planID, billingCycle string) *decimal.Decimal {
	cfg := GetPlan(planID)
	if cfg == nil || cfg.Custom {
		return nil
	}
	mult, ok := cycleMultipliers[billingCycle]
	if !ok {
		return nil
	}
	price := cfg.MonthlyPrice.Mul(mult)
	return &price
}

// ValidCycle informa si el ciclo de facturación existe.
func ValidCycle(billingCycle string) bool {
	_, ok := cycleMultipliers[billingCycle]
	return ok
}

// FeatureSet convierte la lista de features del plan en el mapa de flags
// que se copia a Subscription.Limits.
func (c Config) FeatureSet() map[string]bool {
	set := make(map[string]bool, len(c.Features))
	for _, f := range c.Features {
		set[f] = true
	}
	return set
}
