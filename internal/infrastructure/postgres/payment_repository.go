package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository sobre PostgreSQL
// (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, employee_id, period_start, period_end, amount, regular_hours, bonus_hours, hourly_rate, bonus_rate_multiplier, time_log_ids, status, created_at, updated_at`

// Create persiste un nuevo pago. Devuelve domain.ErrDuplicate en una
// violación de unicidad (dos corridas creando el pago del mismo día).
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.EmployeeID, payment.PeriodStart, payment.PeriodEnd,
		payment.Amount, payment.RegularHours, payment.BonusHours,
		payment.HourlyRate, payment.BonusRateMultiplier, payment.TimeLogIDs,
		payment.Status, payment.CreatedAt, payment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return r.scanOne(query, id)
}

// Update actualiza un pago existente.
func (r *PaymentRepo) Update(payment *entity.Payment) error {
	query := `
		UPDATE payments
		   SET amount = $2, regular_hours = $3, bonus_hours = $4, hourly_rate = $5,
		       bonus_rate_multiplier = $6, time_log_ids = $7, status = $8, updated_at = $9
		 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.Amount, payment.RegularHours, payment.BonusHours,
		payment.HourlyRate, payment.BonusRateMultiplier, payment.TimeLogIDs,
		payment.Status, payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	return nil
}

// ListByEmployee lista pagos de un empleado con paginación.
func (r *PaymentRepo) ListByEmployee(employeeID string, limit, offset int) ([]*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + ` FROM payments
		 WHERE employee_id = $1 ORDER BY period_start DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, employeeID, limit, offset)
}

// ListByCompanyPeriod lista pagos de la empresa cuyo período se solape con
// [start, end].
func (r *PaymentRepo) ListByCompanyPeriod(companyID string, start, end time.Time) ([]*entity.Payment, error) {
	query := `
		SELECT p.id, p.employee_id, p.period_start, p.period_end, p.amount,
		       p.regular_hours, p.bonus_hours, p.hourly_rate, p.bonus_rate_multiplier,
		       p.time_log_ids, p.status, p.created_at, p.updated_at
		  FROM payments p
		  JOIN employees e ON e.id = p.employee_id
		 WHERE e.company_id = $1
		   AND p.period_start <= $3 AND p.period_end >= $2
		 ORDER BY p.period_start, p.employee_id`
	return r.scanMany(query, companyID, start, end)
}

// FindConflicting busca un pago del empleado en conflicto: período solapado
// con [start, end] o TimeLogIDs intersectados. Bloquea la fila (FOR UPDATE)
// para que, dentro de una transacción, el chequeo de idempotencia se evalúe
// contra el último estado confirmado.
func (r *PaymentRepo) FindConflicting(employeeID string, start, end time.Time, logIDs []string) (*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + ` FROM payments
		 WHERE employee_id = $1
		   AND (
		         (period_start <= $3 AND period_end >= $2)
		      OR time_log_ids && $4
		   )
		 ORDER BY created_at
		 LIMIT 1
		 FOR UPDATE`
	return r.scanOne(query, employeeID, start, end, logIDs)
}

// CountByCompanySince cuenta pagos de la empresa creados desde el instante dado.
func (r *PaymentRepo) CountByCompanySince(companyID string, since time.Time) (int, error) {
	query := `
		SELECT count(*)
		  FROM payments p
		  JOIN employees e ON e.id = p.employee_id
		 WHERE e.company_id = $1 AND p.created_at >= $2`
	var count int
	if err := r.q.QueryRow(context.Background(), query, companyID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return count, nil
}

func (r *PaymentRepo) scanOne(query string, args ...any) (*entity.Payment, error) {
	var p entity.Payment
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.EmployeeID, &p.PeriodStart, &p.PeriodEnd, &p.Amount,
		&p.RegularHours, &p.BonusHours, &p.HourlyRate, &p.BonusRateMultiplier,
		&p.TimeLogIDs, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

func (r *PaymentRepo) scanMany(query string, args ...any) ([]*entity.Payment, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.PeriodStart, &p.PeriodEnd, &p.Amount,
			&p.RegularHours, &p.BonusHours, &p.HourlyRate, &p.BonusRateMultiplier,
			&p.TimeLogIDs, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
