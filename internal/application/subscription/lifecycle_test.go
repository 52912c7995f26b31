package subscription_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nomina-api/internal/application/subscription"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/plan"
	"github.com/jhoicas/Nomina-api/pkg/clock"
)

// ── Fakes en memoria ─────────────────────────────────────────────────────────

type memSubRepo struct {
	m     map[string]*entity.Subscription // por company_id
	usage map[string]entity.UsageStats
}

func newMemSubRepo() *memSubRepo {
	return &memSubRepo{m: map[string]*entity.Subscription{}, usage: map[string]entity.UsageStats{}}
}

func (r *memSubRepo) Create(s *entity.Subscription) error {
	if _, exists := r.m[s.CompanyID]; exists {
		return domain.ErrDuplicate
	}
	r.m[s.CompanyID] = s
	return nil
}

func (r *memSubRepo) GetByCompanyID(companyID string) (*entity.Subscription, error) {
	s, ok := r.m[companyID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (r *memSubRepo) Update(s *entity.Subscription) error {
	r.m[s.CompanyID] = s
	return nil
}

func (r *memSubRepo) UpdateUsage(companyID string, usage entity.UsageStats) error {
	r.usage[companyID] = usage
	if s, ok := r.m[companyID]; ok {
		s.Usage = usage
	}
	return nil
}

func (r *memSubRepo) ListExpirable(now time.Time) ([]*entity.Subscription, error) {
	var out []*entity.Subscription
	for _, s := range r.m {
		switch {
		case s.Status == entity.SubscriptionStatusTrial && s.TrialEndsAt != nil && !s.TrialEndsAt.After(now):
			out = append(out, s)
		case s.Status == entity.SubscriptionStatusActive && !s.AutoRenew && !s.CurrentPeriodEnd.After(now):
			out = append(out, s)
		}
	}
	return out, nil
}

// stubEmployees solo aporta el conteo en vivo.
type stubEmployees struct{ count int }

func (s *stubEmployees) Create(*entity.Employee) error            { return nil }
func (s *stubEmployees) GetByID(string) (*entity.Employee, error) { return nil, domain.ErrNotFound }
func (s *stubEmployees) Update(*entity.Employee) error            { return nil }
func (s *stubEmployees) ListByCompany(string, int, int) ([]*entity.Employee, error) {
	return nil, nil
}
func (s *stubEmployees) ListActiveByCompany(string) ([]*entity.Employee, error) { return nil, nil }
func (s *stubEmployees) CountActiveByCompany(string) (int, error)               { return s.count, nil }

type stubNotifier struct{ events []string }

func (n *stubNotifier) Notify(ctx context.Context, event, companyID string, payload map[string]any) {
	n.events = append(n.events, event)
}

// ── Arnés ────────────────────────────────────────────────────────────────────

var lifecycleNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newLifecycle(now time.Time, employees int) (*subscription.Lifecycle, *memSubRepo, *stubNotifier) {
	subs := newMemSubRepo()
	notif := &stubNotifier{}
	lc := subscription.NewLifecycle(subs, &stubEmployees{count: employees}, notif, clock.Fixed{T: now}, zerolog.Nop())
	return lc, subs, notif
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestStartTrial_CreaTrialDe14DiasEnPlanFree(t *testing.T) {
	lc, subs, _ := newLifecycle(lifecycleNow, 0)

	sub, err := lc.StartTrial(context.Background(), "empresa-1")

	require.NoError(t, err)
	assert.Equal(t, plan.Free, sub.PlanID)
	assert.Equal(t, entity.SubscriptionStatusTrial, sub.Status)
	require.NotNil(t, sub.TrialEndsAt)
	assert.Equal(t, lifecycleNow.AddDate(0, 0, 14), *sub.TrialEndsAt)
	assert.True(t, sub.AutoRenew)
	assert.Equal(t, 3, sub.Limits.MaxEmployees)
	assert.Equal(t, 10, sub.Limits.MaxMonthlyPayments)
	assert.True(t, sub.Limits.Features[plan.FeaturePayroll])
	assert.False(t, sub.Limits.Features[plan.FeatureJobRoles])
	assert.Contains(t, subs.m, "empresa-1")
}

func TestChangePlan_UpgradeDesdeTrialActivaLaSuscripcion(t *testing.T) {
	lc, _, notif := newLifecycle(lifecycleNow, 2)
	_, err := lc.StartTrial(context.Background(), "empresa-1")
	require.NoError(t, err)

	sub, err := lc.ChangePlan(context.Background(), "empresa-1", plan.Starter, plan.BillingCycleMonthly)

	require.NoError(t, err)
	assert.Equal(t, plan.Starter, sub.PlanID)
	assert.Equal(t, entity.SubscriptionStatusActive, sub.Status, "trial a plan pago termina el trial")
	assert.Nil(t, sub.TrialEndsAt)
	assert.Equal(t, 25, sub.Limits.MaxEmployees, "los límites se reemplazan por completo")
	assert.True(t, sub.Pricing.Amount.Equal(decimal.NewFromInt(89900)))
	assert.Equal(t, lifecycleNow, sub.CurrentPeriodStart)
	assert.Equal(t, lifecycleNow.AddDate(0, 1, 0), sub.CurrentPeriodEnd)
	assert.Contains(t, notif.events, "subscription.plan_changed")
}

func TestChangePlan_EntradasInvalidas(t *testing.T) {
	lc, _, _ := newLifecycle(lifecycleNow, 0)
	_, err := lc.StartTrial(context.Background(), "empresa-1")
	require.NoError(t, err)

	_, err = lc.ChangePlan(context.Background(), "empresa-1", "platinum", plan.BillingCycleMonthly)
	assert.ErrorIs(t, err, domain.ErrInvalidPlan, "plan desconocido")

	_, err = lc.ChangePlan(context.Background(), "empresa-1", plan.Starter, "biweekly")
	assert.ErrorIs(t, err, domain.ErrInvalidPlan, "ciclo desconocido")

	_, err = lc.ChangePlan(context.Background(), "no-existe", plan.Starter, plan.BillingCycleMonthly)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChangePlan_MismoPlanYCicloEsNoOp(t *testing.T) {
	lc, subs, notif := newLifecycle(lifecycleNow, 0)
	_, err := lc.StartTrial(context.Background(), "empresa-1")
	require.NoError(t, err)

	sub, err := lc.ChangePlan(context.Background(), "empresa-1", plan.Free, plan.BillingCycleMonthly)

	require.NoError(t, err, "repetir el plan vigente no es un error")
	assert.Equal(t, plan.Free, sub.PlanID)
	assert.Equal(t, entity.SubscriptionStatusTrial, sub.Status, "el trial sigue tal cual")
	require.NotNil(t, sub.TrialEndsAt)
	assert.Equal(t, lifecycleNow.AddDate(0, 0, 14), *sub.TrialEndsAt)
	assert.Equal(t, *sub, *subs.m["empresa-1"], "la suscripción almacenada queda intacta")
	assert.Empty(t, notif.events, "un no-op no notifica nada")
}

func TestChangePlan_DowngradeBloqueadoPorEmpleadosActivos(t *testing.T) {
	lc, subs, _ := newLifecycle(lifecycleNow, 30)
	_, err := lc.StartTrial(context.Background(), "empresa-1")
	require.NoError(t, err)
	// Se fuerza la suscripción a professional para probar el downgrade.
	sub := subs.m["empresa-1"]
	sub.PlanID = plan.Professional
	sub.Status = entity.SubscriptionStatusActive
	sub.TrialEndsAt = nil
	sub.Limits.MaxEmployees = 100

	_, err = lc.ChangePlan(context.Background(), "empresa-1", plan.Starter, plan.BillingCycleMonthly)

	assert.ErrorIs(t, err, domain.ErrEmployeeCountExceedsPlan,
		"30 empleados activos no caben en el límite de 25 del destino")
	assert.Equal(t, plan.Professional, subs.m["empresa-1"].PlanID, "la suscripción queda intacta")
}

func TestChangePlan_DowngradeAEnterpriseNoCuentaEmpleados(t *testing.T) {
	// Enterprise es ilimitado: aunque sea un "cambio hacia arriba" desde
	// professional, el guard de conteo no aplica con Unlimited.
	lc, subs, _ := newLifecycle(lifecycleNow, 500)
	_, err := lc.StartTrial(context.Background(), "empresa-1")
	require.NoError(t, err)
	sub := subs.m["empresa-1"]
	sub.PlanID = plan.Professional
	sub.Status = entity.SubscriptionStatusActive
	sub.TrialEndsAt = nil

	changed, err := lc.ChangePlan(context.Background(), "empresa-1", plan.Enterprise, plan.BillingCycleYearly)

	require.NoError(t, err)
	assert.Equal(t, plan.Unlimited, changed.Limits.MaxEmployees)
	assert.True(t, changed.Pricing.Custom, "enterprise queda con precio negociado")
	assert.True(t, changed.Pricing.Amount.IsZero())
}

func TestChangePlan_EstadoIlegal(t *testing.T) {
	lc, subs, _ := newLifecycle(lifecycleNow, 0)
	_, err := lc.StartTrial(context.Background(), "empresa-1")
	require.NoError(t, err)
	subs.m["empresa-1"].Status = entity.SubscriptionStatusCancelled

	_, err = lc.ChangePlan(context.Background(), "empresa-1", plan.Starter, plan.BillingCycleMonthly)

	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCancel_DesdeActivaYDesdeTrial(t *testing.T) {
	lc, _, notif := newLifecycle(lifecycleNow, 0)
	_, err := lc.StartTrial(context.Background(), "empresa-1")
	require.NoError(t, err)

	sub, err := lc.Cancel(context.Background(), "empresa-1")

	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionStatusCancelled, sub.Status)
	require.NotNil(t, sub.CancelledAt)
	assert.Equal(t, lifecycleNow, *sub.CancelledAt)
	assert.False(t, sub.AutoRenew)
	assert.Contains(t, notif.events, "subscription.cancelled")

	_, err = lc.Cancel(context.Background(), "empresa-1")
	assert.ErrorIs(t, err, domain.ErrInvalidState, "cancelar lo cancelado no es legal")
}

func TestReactivate_DesdeCanceladaAbrePeriodoFresco(t *testing.T) {
	lc, _, _ := newLifecycle(lifecycleNow, 0)
	_, err := lc.StartTrial(context.Background(), "empresa-1")
	require.NoError(t, err)
	_, err = lc.Cancel(context.Background(), "empresa-1")
	require.NoError(t, err)

	sub, err := lc.Reactivate(context.Background(), "empresa-1")

	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionStatusActive, sub.Status)
	assert.Nil(t, sub.CancelledAt)
	assert.Nil(t, sub.TrialEndsAt)
	assert.True(t, sub.AutoRenew)
	assert.Equal(t, lifecycleNow, sub.CurrentPeriodStart)
	assert.Equal(t, lifecycleNow.AddDate(0, 1, 0), sub.CurrentPeriodEnd)
}

func TestReactivate_CicloAnualAbreVentanaDeUnMes(t *testing.T) {
	lc, _, _ := newLifecycle(lifecycleNow, 0)
	_, err := lc.StartTrial(context.Background(), "empresa-1")
	require.NoError(t, err)
	_, err = lc.ChangePlan(context.Background(), "empresa-1", plan.Starter, plan.BillingCycleYearly)
	require.NoError(t, err)
	_, err = lc.Cancel(context.Background(), "empresa-1")
	require.NoError(t, err)

	sub, err := lc.Reactivate(context.Background(), "empresa-1")

	require.NoError(t, err)
	assert.Equal(t, plan.BillingCycleYearly, sub.Pricing.BillingCycle, "el ciclo contratado se conserva")
	assert.Equal(t, lifecycleNow.AddDate(0, 1, 0), sub.CurrentPeriodEnd,
		"la reactivación abre un mes fijo; el ciclo anual se retoma en la renovación")
}

func TestReactivate_DesdeActivaEsIlegal(t *testing.T) {
	lc, subs, _ := newLifecycle(lifecycleNow, 0)
	_, err := lc.StartTrial(context.Background(), "empresa-1")
	require.NoError(t, err)
	subs.m["empresa-1"].Status = entity.SubscriptionStatusActive

	_, err = lc.Reactivate(context.Background(), "empresa-1")

	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestSuspend_GuardaLaRazon(t *testing.T) {
	lc, _, notif := newLifecycle(lifecycleNow, 0)
	_, err := lc.StartTrial(context.Background(), "empresa-1")
	require.NoError(t, err)

	sub, err := lc.Suspend(context.Background(), "empresa-1", entity.SuspensionReasonCompany)

	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionStatusSuspended, sub.Status)
	assert.Equal(t, entity.SuspensionReasonCompany, sub.SuspendedReason)
	require.NotNil(t, sub.SuspendedAt)
	assert.Contains(t, notif.events, "subscription.suspended")

	_, err = lc.Suspend(context.Background(), "empresa-1", "otra razón")
	assert.ErrorIs(t, err, domain.ErrInvalidState, "suspender lo suspendido no es legal")
}

func TestUnsuspend_LevantaCualquierSuspension(t *testing.T) {
	lc, _, _ := newLifecycle(lifecycleNow, 0)
	_, err := lc.StartTrial(context.Background(), "empresa-1")
	require.NoError(t, err)
	_, err = lc.Suspend(context.Background(), "empresa-1", "fraude")
	require.NoError(t, err)

	sub, err := lc.Unsuspend(context.Background(), "empresa-1")

	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionStatusTrial, sub.Status, "trial vigente se retoma")
	assert.Nil(t, sub.SuspendedAt)
	assert.Empty(t, sub.SuspendedReason)

	_, err = lc.Unsuspend(context.Background(), "empresa-1")
	assert.ErrorIs(t, err, domain.ErrInvalidState, "solo lo suspendido se puede levantar")
}

func TestRestoreFromCompanyReactivation_RestauraSoloLaCascada(t *testing.T) {
	lc, _, _ := newLifecycle(lifecycleNow, 0)
	_, err := lc.StartTrial(context.Background(), "empresa-1")
	require.NoError(t, err)
	_, err = lc.Suspend(context.Background(), "empresa-1", entity.SuspensionReasonCompany)
	require.NoError(t, err)

	sub, err := lc.RestoreFromCompanyReactivation(context.Background(), "empresa-1")

	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionStatusTrial, sub.Status,
		"con trial aún vigente se restaura al trial")
	assert.Nil(t, sub.SuspendedAt)
	assert.Empty(t, sub.SuspendedReason)
}

func TestRestoreFromCompanyReactivation_NoTocaSuspensionAdministrativa(t *testing.T) {
	lc, subs, _ := newLifecycle(lifecycleNow, 0)
	_, err := lc.StartTrial(context.Background(), "empresa-1")
	require.NoError(t, err)
	_, err = lc.Suspend(context.Background(), "empresa-1", "fraude")
	require.NoError(t, err)

	sub, err := lc.RestoreFromCompanyReactivation(context.Background(), "empresa-1")

	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionStatusSuspended, sub.Status,
		"una suspensión administrativa no se restaura en cascada")
	assert.Equal(t, "fraude", subs.m["empresa-1"].SuspendedReason)
}

func TestRestoreFromCompanyReactivation_TrialVencidoQuedaActiva(t *testing.T) {
	lc, subs, _ := newLifecycle(lifecycleNow, 0)
	_, err := lc.StartTrial(context.Background(), "empresa-1")
	require.NoError(t, err)
	_, err = lc.Suspend(context.Background(), "empresa-1", entity.SuspensionReasonCompany)
	require.NoError(t, err)
	past := lifecycleNow.Add(-time.Hour)
	subs.m["empresa-1"].TrialEndsAt = &past

	sub, err := lc.RestoreFromCompanyReactivation(context.Background(), "empresa-1")

	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionStatusActive, sub.Status)
}

func TestExpireDue_MarcaTrialsVencidosYPeriodosSinRenovacion(t *testing.T) {
	lc, subs, notif := newLifecycle(lifecycleNow, 0)

	// Trial vencido
	endedTrial := lifecycleNow.Add(-time.Hour)
	subs.m["vencida"] = &entity.Subscription{
		CompanyID:   "vencida",
		PlanID:      plan.Free,
		Status:      entity.SubscriptionStatusTrial,
		TrialEndsAt: &endedTrial,
	}
	// Activa sin auto-renovación con período cerrado
	subs.m["sin-renovar"] = &entity.Subscription{
		CompanyID:        "sin-renovar",
		PlanID:           plan.Starter,
		Status:           entity.SubscriptionStatusActive,
		AutoRenew:        false,
		CurrentPeriodEnd: lifecycleNow.AddDate(0, 0, -1),
	}
	// Activa vigente: no debe tocarse
	subs.m["vigente"] = &entity.Subscription{
		CompanyID:        "vigente",
		PlanID:           plan.Starter,
		Status:           entity.SubscriptionStatusActive,
		AutoRenew:        true,
		CurrentPeriodEnd: lifecycleNow.AddDate(0, 1, 0),
	}

	n, err := lc.ExpireDue(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, entity.SubscriptionStatusExpired, subs.m["vencida"].Status)
	assert.Equal(t, entity.SubscriptionStatusExpired, subs.m["sin-renovar"].Status)
	assert.Equal(t, entity.SubscriptionStatusActive, subs.m["vigente"].Status)
	assert.Len(t, notif.events, 2)
	assert.Contains(t, notif.events, "subscription.expired")
}
