package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo implementación de SubscriptionRepository sobre PostgreSQL.
// Los features del plan se guardan como jsonb.
type SubscriptionRepo struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository construye el adaptador de persistencia para suscripciones.
func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepo {
	return &SubscriptionRepo{pool: pool}
}

const subscriptionColumns = `id, company_id, plan_id, status,
	max_employees, max_monthly_payments, features,
	price_amount, billing_cycle, price_custom,
	current_period_start, current_period_end,
	trial_ends_at, cancelled_at, suspended_at, suspended_reason,
	auto_renew, usage_employees, usage_payments_month, usage_updated_at,
	created_at, updated_at`

// Create persiste una nueva suscripción. company_id es único: una segunda
// inserción para la misma empresa devuelve domain.ErrDuplicate.
func (r *SubscriptionRepo) Create(sub *entity.Subscription) error {
	features, err := json.Marshal(sub.Limits.Features)
	if err != nil {
		return fmt.Errorf("marshal features: %w", err)
	}
	query := `
		INSERT INTO subscriptions (` + subscriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err = r.pool.Exec(context.Background(), query,
		sub.ID, sub.CompanyID, sub.PlanID, sub.Status,
		sub.Limits.MaxEmployees, sub.Limits.MaxMonthlyPayments, features,
		sub.Pricing.Amount, sub.Pricing.BillingCycle, sub.Pricing.Custom,
		sub.CurrentPeriodStart, sub.CurrentPeriodEnd,
		sub.TrialEndsAt, sub.CancelledAt, sub.SuspendedAt, sub.SuspendedReason,
		sub.AutoRenew, sub.Usage.EmployeesCount, sub.Usage.PaymentsThisMonth, sub.Usage.LastUpdated,
		sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// GetByCompanyID obtiene la suscripción de la empresa.
func (r *SubscriptionRepo) GetByCompanyID(companyID string) (*entity.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE company_id = $1`
	row := r.pool.QueryRow(context.Background(), query, companyID)
	sub, err := scanSubscription(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return sub, nil
}

// Update actualiza la suscripción completa.
func (r *SubscriptionRepo) Update(sub *entity.Subscription) error {
	features, err := json.Marshal(sub.Limits.Features)
	if err != nil {
		return fmt.Errorf("marshal features: %w", err)
	}
	query := `
		UPDATE subscriptions
		   SET plan_id = $2, status = $3,
		       max_employees = $4, max_monthly_payments = $5, features = $6,
		       price_amount = $7, billing_cycle = $8, price_custom = $9,
		       current_period_start = $10, current_period_end = $11,
		       trial_ends_at = $12, cancelled_at = $13, suspended_at = $14, suspended_reason = $15,
		       auto_renew = $16, updated_at = $17
		 WHERE company_id = $1`
	_, err = r.pool.Exec(context.Background(), query,
		sub.CompanyID, sub.PlanID, sub.Status,
		sub.Limits.MaxEmployees, sub.Limits.MaxMonthlyPayments, features,
		sub.Pricing.Amount, sub.Pricing.BillingCycle, sub.Pricing.Custom,
		sub.CurrentPeriodStart, sub.CurrentPeriodEnd,
		sub.TrialEndsAt, sub.CancelledAt, sub.SuspendedAt, sub.SuspendedReason,
		sub.AutoRenew, sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	return nil
}

// UpdateUsage persiste solo los contadores de uso (last-write-wins).
func (r *SubscriptionRepo) UpdateUsage(companyID string, usage entity.UsageStats) error {
	query := `
		UPDATE subscriptions
		   SET usage_employees = $2, usage_payments_month = $3, usage_updated_at = $4
		 WHERE company_id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		companyID, usage.EmployeesCount, usage.PaymentsThisMonth, usage.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("update subscription usage: %w", err)
	}
	return nil
}

// ListExpirable devuelve las suscripciones candidatas al barrido de
// expiración: trial con fecha vencida, o período vencido sin auto-renovación.
func (r *SubscriptionRepo) ListExpirable(now time.Time) ([]*entity.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + ` FROM subscriptions
		 WHERE (status = $1 AND trial_ends_at IS NOT NULL AND trial_ends_at <= $3)
		    OR (status = $2 AND auto_renew = false AND current_period_end <= $3)`
	rows, err := r.pool.Query(context.Background(), query,
		entity.SubscriptionStatusTrial, entity.SubscriptionStatusActive, now,
	)
	if err != nil {
		return nil, fmt.Errorf("list expirable subscriptions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		list = append(list, sub)
	}
	return list, rows.Err()
}

// rowScanner cubre pgx.Row y pgx.Rows para compartir el scan.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (*entity.Subscription, error) {
	var s entity.Subscription
	var features []byte
	if err := row.Scan(
		&s.ID, &s.CompanyID, &s.PlanID, &s.Status,
		&s.Limits.MaxEmployees, &s.Limits.MaxMonthlyPayments, &features,
		&s.Pricing.Amount, &s.Pricing.BillingCycle, &s.Pricing.Custom,
		&s.CurrentPeriodStart, &s.CurrentPeriodEnd,
		&s.TrialEndsAt, &s.CancelledAt, &s.SuspendedAt, &s.SuspendedReason,
		&s.AutoRenew, &s.Usage.EmployeesCount, &s.Usage.PaymentsThisMonth, &s.Usage.LastUpdated,
		&s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(features) > 0 {
		if err := json.Unmarshal(features, &s.Limits.Features); err != nil {
			return nil, fmt.Errorf("unmarshal features: %w", err)
		}
	}
	return &s, nil
}
