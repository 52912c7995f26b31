// Package subscription implementa el ciclo de vida de la suscripción de cada
// empresa (trial, cambios de plan, cancelación, suspensión, expiración) y el
// gate de entitlements que valida los límites del plan vigente.
package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Nomina-api/internal/application/ports"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/plan"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
	"github.com/jhoicas/Nomina-api/pkg/clock"
)

// TrialDays duración del trial gratuito al crear una empresa.
const TrialDays = 14

// Lifecycle administra las transiciones de estado de la suscripción.
type Lifecycle struct {
	subRepo      repository.SubscriptionRepository
	employeeRepo repository.EmployeeRepository
	notifier     ports.Notifier
	clk          clock.Clock
	log          zerolog.Logger
}

// NewLifecycle construye el servicio de ciclo de vida.
func NewLifecycle(
	subRepo repository.SubscriptionRepository,
	employeeRepo repository.EmployeeRepository,
	notifier ports.Notifier,
	clk clock.Clock,
	log zerolog.Logger,
) *Lifecycle {
	return &Lifecycle{
		subRepo:      subRepo,
		employeeRepo: employeeRepo,
		notifier:     notifier,
		clk:          clk,
		log:          log,
	}
}

// StartTrial crea la suscripción inicial de una empresa recién registrada:
// plan free en trial por TrialDays días, con los límites del plan copiados.
func (l *Lifecycle) StartTrial(ctx context.Context, companyID string) (*entity.Subscription, error) {
	cfg := plan.GetPlan(plan.Free)
	now := l.clk.Now()
	trialEnd := now.AddDate(0, 0, TrialDays)
	sub := &entity.Subscription{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		PlanID:    cfg.ID,
		Status:    entity.SubscriptionStatusTrial,
		Limits: entity.SubscriptionLimits{
			MaxEmployees:       cfg.MaxEmployees,
			MaxMonthlyPayments: cfg.MaxMonthlyPayments,
			Features:           cfg.FeatureSet(),
		},
		Pricing: entity.SubscriptionPricing{
			Amount:       decimal.Zero,
			BillingCycle: plan.BillingCycleMonthly,
		},
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   trialEnd,
		TrialEndsAt:        &trialEnd,
		AutoRenew:          true,
		Usage:              entity.UsageStats{LastUpdated: now},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := l.subRepo.Create(sub); err != nil {
		return nil, fmt.Errorf("crear suscripción de trial: %w", err)
	}
	return sub, nil
}

// Get devuelve la suscripción de la empresa.
func (l *Lifecycle) Get(ctx context.Context, companyID string) (*entity.Subscription, error) {
	sub, err := l.subRepo.GetByCompanyID(companyID)
	if err != nil || sub == nil {
		return nil, domain.ErrNotFound
	}
	return sub, nil
}

// ChangePlan cambia el plan de la suscripción. Reglas:
//   - el plan y el ciclo deben existir en el catálogo;
//   - mismo plan y mismo ciclo es un no-op idempotente (no escribe nada);
//   - un downgrade exige que la cantidad de empleados activos quepa en el
//     límite del plan destino (el conteo se toma en vivo, no del cache);
//   - los límites y el precio se reemplazan por completo con los del destino;
//   - una suscripción en trial que pasa a un plan pago queda activa y el
//     trial termina en ese momento.
func (l *Lifecycle) ChangePlan(ctx context.Context, companyID, planID, billingCycle string) (*entity.Subscription, error) {
	sub, err := l.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	switch sub.Status {
	case entity.SubscriptionStatusTrial, entity.SubscriptionStatusActive:
	default:
		return nil, domain.ErrInvalidState
	}

	cfg := plan.GetPlan(planID)
	if cfg == nil {
		return nil, domain.ErrInvalidPlan
	}
	if billingCycle == "" {
		billingCycle = sub.Pricing.BillingCycle
	}
	if !plan.ValidCycle(billingCycle) {
		return nil, domain.ErrInvalidPlan
	}
	if planID == sub.PlanID && billingCycle == sub.Pricing.BillingCycle {
		// Mismo plan y mismo ciclo: no-op idempotente.
		return sub, nil
	}

	if plan.CanDowngrade(sub.PlanID, planID) && cfg.MaxEmployees != plan.Unlimited {
		count, err := l.employeeRepo.CountActiveByCompany(companyID)
		if err != nil {
			return nil, fmt.Errorf("contar empleados activos: %w", err)
		}
		if count > cfg.MaxEmployees {
			return nil, domain.ErrEmployeeCountExceedsPlan
		}
	}

	now := l.clk.Now()
	previous := sub.PlanID
	sub.PlanID = cfg.ID
	sub.Limits = entity.SubscriptionLimits{
		MaxEmployees:       cfg.MaxEmployees,
		MaxMonthlyPayments: cfg.MaxMonthlyPayments,
		Features:           cfg.FeatureSet(),
	}
	price := plan.CalculatePrice(cfg.ID, billingCycle)
	sub.Pricing = entity.SubscriptionPricing{
		BillingCycle: billingCycle,
		Custom:       cfg.Custom,
	}
	if price != nil {
		sub.Pricing.Amount = *price
	}
	if sub.Status == entity.SubscriptionStatusTrial && cfg.ID != plan.Free {
		sub.Status = entity.SubscriptionStatusActive
		sub.TrialEndsAt = nil
	}
	sub.CurrentPeriodStart = now
	sub.CurrentPeriodEnd = periodEnd(now, billingCycle)
	sub.UpdatedAt = now

	if err := l.subRepo.Update(sub); err != nil {
		return nil, fmt.Errorf("actualizar suscripción: %w", err)
	}
	l.notifier.Notify(ctx, ports.EventPlanChanged, companyID, map[string]any{
		"from": previous,
		"to":   cfg.ID,
	})
	return sub, nil
}

// Cancel cancela la suscripción. Solo es legal desde active o trial; el
// expirado o suspendido no tiene nada que cancelar.
func (l *Lifecycle) Cancel(ctx context.Context, companyID string) (*entity.Subscription, error) {
	sub, err := l.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	switch sub.Status {
	case entity.SubscriptionStatusActive, entity.SubscriptionStatusTrial:
	default:
		return nil, domain.ErrInvalidState
	}
	now := l.clk.Now()
	sub.Status = entity.SubscriptionStatusCancelled
	sub.CancelledAt = &now
	sub.AutoRenew = false
	sub.UpdatedAt = now
	if err := l.subRepo.Update(sub); err != nil {
		return nil, fmt.Errorf("actualizar suscripción: %w", err)
	}
	l.notifier.Notify(ctx, ports.EventSubscriptionCancelled, companyID, nil)
	return sub, nil
}

// Reactivate vuelve a activar una suscripción cancelada o expirada sobre su
// plan vigente, abriendo un período fresco de un mes desde ahora sin importar
// el ciclo de facturación; el ciclo completo se retoma en la siguiente
// renovación.
func (l *Lifecycle) Reactivate(ctx context.Context, companyID string) (*entity.Subscription, error) {
	sub, err := l.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	switch sub.Status {
	case entity.SubscriptionStatusCancelled, entity.SubscriptionStatusExpired:
	default:
		return nil, domain.ErrInvalidState
	}
	now := l.clk.Now()
	sub.Status = entity.SubscriptionStatusActive
	sub.CancelledAt = nil
	sub.TrialEndsAt = nil
	sub.AutoRenew = true
	sub.CurrentPeriodStart = now
	sub.CurrentPeriodEnd = now.AddDate(0, 1, 0)
	sub.UpdatedAt = now
	if err := l.subRepo.Update(sub); err != nil {
		return nil, fmt.Errorf("actualizar suscripción: %w", err)
	}
	return sub, nil
}

// Suspend suspende la suscripción con una razón. Usar
// entity.SuspensionReasonCompany cuando la causa es la suspensión de la
// empresa; solo esa razón habilita la restauración automática al reactivarla.
func (l *Lifecycle) Suspend(ctx context.Context, companyID, reason string) (*entity.Subscription, error) {
	sub, err := l.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	switch sub.Status {
	case entity.SubscriptionStatusActive, entity.SubscriptionStatusTrial:
	default:
		return nil, domain.ErrInvalidState
	}
	now := l.clk.Now()
	sub.Status = entity.SubscriptionStatusSuspended
	sub.SuspendedAt = &now
	sub.SuspendedReason = reason
	sub.UpdatedAt = now
	if err := l.subRepo.Update(sub); err != nil {
		return nil, fmt.Errorf("actualizar suscripción: %w", err)
	}
	l.notifier.Notify(ctx, ports.EventSubscriptionSuspended, companyID, map[string]any{"reason": reason})
	return sub, nil
}

// Unsuspend levanta una suspensión administrativa: vuelve a trial si el
// trial sigue vigente, a active en caso contrario. Solo es legal desde
// suspended.
func (l *Lifecycle) Unsuspend(ctx context.Context, companyID string) (*entity.Subscription, error) {
	sub, err := l.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if sub.Status != entity.SubscriptionStatusSuspended {
		return nil, domain.ErrInvalidState
	}
	now := l.clk.Now()
	if sub.TrialEndsAt != nil && sub.TrialEndsAt.After(now) {
		sub.Status = entity.SubscriptionStatusTrial
	} else {
		sub.Status = entity.SubscriptionStatusActive
	}
	sub.SuspendedAt = nil
	sub.SuspendedReason = ""
	sub.UpdatedAt = now
	if err := l.subRepo.Update(sub); err != nil {
		return nil, fmt.Errorf("actualizar suscripción: %w", err)
	}
	return sub, nil
}

// RestoreFromCompanyReactivation restaura la suscripción al reactivar la
// empresa, solo si fue suspendida en cascada por la empresa. Una suspensión
// administrativa por otra razón se queda como está.
func (l *Lifecycle) RestoreFromCompanyReactivation(ctx context.Context, companyID string) (*entity.Subscription, error) {
	sub, err := l.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if sub.Status != entity.SubscriptionStatusSuspended || sub.SuspendedReason != entity.SuspensionReasonCompany {
		return sub, nil
	}
	now := l.clk.Now()
	if sub.TrialEndsAt != nil && sub.TrialEndsAt.After(now) {
		sub.Status = entity.SubscriptionStatusTrial
	} else {
		sub.Status = entity.SubscriptionStatusActive
	}
	sub.SuspendedAt = nil
	sub.SuspendedReason = ""
	sub.UpdatedAt = now
	if err := l.subRepo.Update(sub); err != nil {
		return nil, fmt.Errorf("actualizar suscripción: %w", err)
	}
	return sub, nil
}

// ExpireDue es el barrido periódico de expiración: marca como expired los
// trials vencidos y los períodos vencidos sin auto-renovación. Es el único
// escritor del estado expired. Devuelve cuántas suscripciones expiró.
func (l *Lifecycle) ExpireDue(ctx context.Context) (int, error) {
	now := l.clk.Now()
	due, err := l.subRepo.ListExpirable(now)
	if err != nil {
		return 0, fmt.Errorf("listar suscripciones vencidas: %w", err)
	}
	expired := 0
	for _, sub := range due {
		sub.Status = entity.SubscriptionStatusExpired
		sub.UpdatedAt = now
		if err := l.subRepo.Update(sub); err != nil {
			l.log.Error().Err(err).Str("company_id", sub.CompanyID).Msg("no se pudo expirar la suscripción")
			continue
		}
		expired++
		l.notifier.Notify(ctx, ports.EventSubscriptionExpired, sub.CompanyID, map[string]any{"plan_id": sub.PlanID})
	}
	if expired > 0 {
		l.log.Info().Int("expiradas", expired).Msg("barrido de expiración terminado")
	}
	return expired, nil
}

// periodEnd calcula el fin de período según el ciclo de facturación.
func periodEnd(start time.Time, billingCycle string) time.Time {
	switch billingCycle {
	case plan.BillingCycleQuarterly:
		return start.AddDate(0, 3, 0)
	case plan.BillingCycleYearly:
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}
