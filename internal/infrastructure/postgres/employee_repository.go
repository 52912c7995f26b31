package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository construye el adaptador de persistencia para empleados.
func NewEmployeeRepository(pool *pgxpool.Pool) *EmployeeRepo {
	return &EmployeeRepo{pool: pool}
}

const employeeColumns = `id, company_id, first_name, last_name, email, hourly_rate, COALESCE(job_role_id, ''), active, created_at, updated_at`

// Create persiste un nuevo empleado.
func (r *EmployeeRepo) Create(employee *entity.Employee) error {
	query := `
		INSERT INTO employees (id, company_id, first_name, last_name, email, hourly_rate, job_role_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10)`
	_, err := r.pool.Exec(context.Background(), query,
		employee.ID, employee.CompanyID, employee.FirstName, employee.LastName,
		employee.Email, employee.HourlyRate, employee.JobRoleID, employee.Active,
		employee.CreatedAt, employee.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID.
func (r *EmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	var e entity.Employee
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.CompanyID, &e.FirstName, &e.LastName, &e.Email,
		&e.HourlyRate, &e.JobRoleID, &e.Active, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

// Update actualiza un empleado existente.
func (r *EmployeeRepo) Update(employee *entity.Employee) error {
	query := `
		UPDATE employees
		   SET first_name = $2, last_name = $3, email = $4, hourly_rate = $5,
		       job_role_id = NULLIF($6, ''), active = $7, updated_at = $8
		 WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		employee.ID, employee.FirstName, employee.LastName, employee.Email,
		employee.HourlyRate, employee.JobRoleID, employee.Active, employee.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// ListByCompany lista empleados de la empresa con paginación.
func (r *EmployeeRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Employee, error) {
	query := `
		SELECT ` + employeeColumns + ` FROM employees
		 WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, companyID, limit, offset)
}

// ListActiveByCompany devuelve todos los empleados activos de la empresa.
func (r *EmployeeRepo) ListActiveByCompany(companyID string) ([]*entity.Employee, error) {
	query := `
		SELECT ` + employeeColumns + ` FROM employees
		 WHERE company_id = $1 AND active = true ORDER BY created_at`
	return r.list(query, companyID)
}

// CountActiveByCompany cuenta empleados activos en vivo.
func (r *EmployeeRepo) CountActiveByCompany(companyID string) (int, error) {
	var count int
	err := r.pool.QueryRow(context.Background(),
		`SELECT count(*) FROM employees WHERE company_id = $1 AND active = true`, companyID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active employees: %w", err)
	}
	return count, nil
}

func (r *EmployeeRepo) list(query string, args ...any) ([]*entity.Employee, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var list []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		if err := rows.Scan(
			&e.ID, &e.CompanyID, &e.FirstName, &e.LastName, &e.Email,
			&e.HourlyRate, &e.JobRoleID, &e.Active, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
