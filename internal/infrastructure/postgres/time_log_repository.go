package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

var _ repository.TimeLogRepository = (*TimeLogRepo)(nil)

// TimeLogRepo implementación de TimeLogRepository sobre PostgreSQL
// (usable con pool o tx).
type TimeLogRepo struct {
	q Querier
}

// NewTimeLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTimeLogRepository(q Querier) *TimeLogRepo {
	return &TimeLogRepo{q: q}
}

const timeLogColumns = `id, employee_id, clock_in, clock_out, duration, regular_hours, bonus_hours, status, approved_at, created_at, updated_at`

// Create persiste un nuevo registro de tiempo.
func (r *TimeLogRepo) Create(log *entity.TimeLog) error {
	query := `
		INSERT INTO time_logs (` + timeLogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.EmployeeID, log.ClockIn, log.ClockOut,
		log.Duration, log.RegularHours, log.BonusHours,
		log.Status, log.ApprovedAt, log.CreatedAt, log.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert time log: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID.
func (r *TimeLogRepo) GetByID(id string) (*entity.TimeLog, error) {
	query := `SELECT ` + timeLogColumns + ` FROM time_logs WHERE id = $1`
	return r.scanOne(query, id)
}

// Update actualiza un registro existente.
func (r *TimeLogRepo) Update(log *entity.TimeLog) error {
	query := `
		UPDATE time_logs
		   SET clock_out = $2, duration = $3, regular_hours = $4, bonus_hours = $5,
		       status = $6, approved_at = $7, updated_at = $8
		 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.ClockOut, log.Duration, log.RegularHours, log.BonusHours,
		log.Status, log.ApprovedAt, log.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update time log: %w", err)
	}
	return nil
}

// ListByEmployee lista registros de un empleado con paginación.
func (r *TimeLogRepo) ListByEmployee(employeeID string, limit, offset int) ([]*entity.TimeLog, error) {
	query := `
		SELECT ` + timeLogColumns + ` FROM time_logs
		 WHERE employee_id = $1 ORDER BY clock_in DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, employeeID, limit, offset)
}

// FindOpenByEmployee devuelve el turno abierto del empleado, o nil.
func (r *TimeLogRepo) FindOpenByEmployee(employeeID string) (*entity.TimeLog, error) {
	query := `
		SELECT ` + timeLogColumns + ` FROM time_logs
		 WHERE employee_id = $1 AND clock_out IS NULL
		 ORDER BY clock_in DESC LIMIT 1`
	return r.scanOne(query, employeeID)
}

// ListApprovedInRange selecciona logs aprobados con clock-in dentro del rango
// y clock-out registrado. El filtro de estado excluye los ya pagados.
func (r *TimeLogRepo) ListApprovedInRange(employeeID string, start, end time.Time) ([]*entity.TimeLog, error) {
	query := `
		SELECT ` + timeLogColumns + ` FROM time_logs
		 WHERE employee_id = $1
		   AND status = $2
		   AND clock_out IS NOT NULL
		   AND clock_in >= $3 AND clock_in <= $4
		 ORDER BY clock_in`
	return r.scanMany(query, employeeID, entity.TimeLogStatusApproved, start, end)
}

// MarkPaid transiciona los logs indicados a paid.
func (r *TimeLogRepo) MarkPaid(ids []string, paidAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	query := `
		UPDATE time_logs SET status = $1, updated_at = $2
		 WHERE id = ANY($3) AND status <> $1`
	_, err := r.q.Exec(context.Background(), query, entity.TimeLogStatusPaid, paidAt, ids)
	if err != nil {
		return fmt.Errorf("mark time logs paid: %w", err)
	}
	return nil
}

func (r *TimeLogRepo) scanOne(query string, args ...any) (*entity.TimeLog, error) {
	var t entity.TimeLog
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&t.ID, &t.EmployeeID, &t.ClockIn, &t.ClockOut,
		&t.Duration, &t.RegularHours, &t.BonusHours,
		&t.Status, &t.ApprovedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get time log: %w", err)
	}
	return &t, nil
}

func (r *TimeLogRepo) scanMany(query string, args ...any) ([]*entity.TimeLog, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list time logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.TimeLog
	for rows.Next() {
		var t entity.TimeLog
		if err := rows.Scan(
			&t.ID, &t.EmployeeID, &t.ClockIn, &t.ClockOut,
			&t.Duration, &t.RegularHours, &t.BonusHours,
			&t.Status, &t.ApprovedAt, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan time log: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
