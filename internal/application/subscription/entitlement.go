package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/plan"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
	"github.com/jhoicas/Nomina-api/pkg/clock"
)

// usageStaleAfter edad máxima del cache de uso antes de refrescarlo en línea
// durante un chequeo de entitlements.
const usageStaleAfter = time.Hour

// Entitlements valida operaciones contra los límites del plan vigente.
// El chequeo de empleados usa el conteo en vivo (un alta por encima del
// límite no puede colarse por un contador viejo); el de pagos tolera el
// contador cacheado mientras no esté obsoleto.
type Entitlements struct {
	subRepo      repository.SubscriptionRepository
	employeeRepo repository.EmployeeRepository
	paymentRepo  repository.PaymentRepository
	clk          clock.Clock
	log          zerolog.Logger
}

// NewEntitlements construye el gate de entitlements.
func NewEntitlements(
	subRepo repository.SubscriptionRepository,
	employeeRepo repository.EmployeeRepository,
	paymentRepo repository.PaymentRepository,
	clk clock.Clock,
	log zerolog.Logger,
) *Entitlements {
	return &Entitlements{
		subRepo:      subRepo,
		employeeRepo: employeeRepo,
		paymentRepo:  paymentRepo,
		clk:          clk,
		log:          log,
	}
}

// HasFeature informa si el plan vigente incluye el feature. Una suscripción
// inválida no incluye nada.
func (e *Entitlements) HasFeature(ctx context.Context, companyID, feature string) (bool, error) {
	sub, err := e.subRepo.GetByCompanyID(companyID)
	if err != nil || sub == nil {
		return false, domain.ErrNotFound
	}
	if !sub.IsValid(e.clk.Now()) {
		return false, nil
	}
	return sub.HasFeature(feature), nil
}

// CanAddEmployee valida que un alta de empleado quepa en el límite del plan.
// Siempre cuenta en vivo.
func (e *Entitlements) CanAddEmployee(ctx context.Context, companyID string) error {
	sub, err := e.subRepo.GetByCompanyID(companyID)
	if err != nil || sub == nil {
		return domain.ErrNotFound
	}
	if !sub.IsValid(e.clk.Now()) {
		return domain.ErrForbidden
	}
	if sub.Limits.MaxEmployees == plan.Unlimited {
		return nil
	}
	count, err := e.employeeRepo.CountActiveByCompany(companyID)
	if err != nil {
		return fmt.Errorf("contar empleados activos: %w", err)
	}
	if count >= sub.Limits.MaxEmployees {
		return domain.ErrEmployeeLimitReached
	}
	return nil
}

// CanProcessPayment valida que la empresa pueda crear pagos este mes. Usa el
// contador cacheado; si el cache tiene más de una hora lo refresca en línea
// antes de decidir.
func (e *Entitlements) CanProcessPayment(ctx context.Context, companyID string) error {
	sub, err := e.subRepo.GetByCompanyID(companyID)
	if err != nil || sub == nil {
		return domain.ErrNotFound
	}
	now := e.clk.Now()
	if !sub.IsValid(now) {
		return domain.ErrForbidden
	}
	if sub.Limits.MaxMonthlyPayments == plan.Unlimited {
		return nil
	}
	if now.Sub(sub.Usage.LastUpdated) > usageStaleAfter {
		usage, err := e.computeUsage(companyID, now)
		if err != nil {
			return fmt.Errorf("refrescar uso: %w", err)
		}
		sub.Usage = usage
		if err := e.subRepo.UpdateUsage(companyID, usage); err != nil {
			// El refresco persiste best-effort; la decisión usa el valor fresco.
			e.log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo persistir el uso refrescado")
		}
	}
	if sub.Usage.PaymentsThisMonth >= sub.Limits.MaxMonthlyPayments {
		return domain.ErrPaymentLimitReached
	}
	return nil
}

// RefreshUsage recalcula y persiste los contadores de uso de la empresa.
// Es el único escritor de usage (last-write-wins).
func (e *Entitlements) RefreshUsage(ctx context.Context, companyID string) error {
	now := e.clk.Now()
	usage, err := e.computeUsage(companyID, now)
	if err != nil {
		return err
	}
	return e.subRepo.UpdateUsage(companyID, usage)
}

// computeUsage cuenta empleados activos y pagos del mes calendario en curso.
func (e *Entitlements) computeUsage(companyID string, now time.Time) (entity.UsageStats, error) {
	employees, err := e.employeeRepo.CountActiveByCompany(companyID)
	if err != nil {
		return entity.UsageStats{}, fmt.Errorf("contar empleados activos: %w", err)
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	payments, err := e.paymentRepo.CountByCompanySince(companyID, monthStart)
	if err != nil {
		return entity.UsageStats{}, fmt.Errorf("contar pagos del mes: %w", err)
	}
	return entity.UsageStats{
		EmployeesCount:    employees,
		PaymentsThisMonth: payments,
		LastUpdated:       now,
	}, nil
}
