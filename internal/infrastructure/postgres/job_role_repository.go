package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

var _ repository.JobRoleRepository = (*JobRoleRepo)(nil)

// JobRoleRepo implementación del puerto JobRoleRepository sobre PostgreSQL.
type JobRoleRepo struct {
	pool *pgxpool.Pool
}

// NewJobRoleRepository construye el adaptador de persistencia para cargos.
func NewJobRoleRepository(pool *pgxpool.Pool) *JobRoleRepo {
	return &JobRoleRepo{pool: pool}
}

const jobRoleColumns = `id, company_id, name, rate_base, rate_overtime, rate_role_bonus, created_at, updated_at`

// Create persiste un nuevo cargo.
func (r *JobRoleRepo) Create(role *entity.JobRole) error {
	query := `
		INSERT INTO job_roles (` + jobRoleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(context.Background(), query,
		role.ID, role.CompanyID, role.Name,
		role.DefaultRates.Base, role.DefaultRates.Overtime, role.DefaultRates.RoleBonus,
		role.CreatedAt, role.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert job role: %w", err)
	}
	return nil
}

// GetByID obtiene un cargo por ID.
func (r *JobRoleRepo) GetByID(id string) (*entity.JobRole, error) {
	query := `SELECT ` + jobRoleColumns + ` FROM job_roles WHERE id = $1`
	var jr entity.JobRole
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&jr.ID, &jr.CompanyID, &jr.Name,
		&jr.DefaultRates.Base, &jr.DefaultRates.Overtime, &jr.DefaultRates.RoleBonus,
		&jr.CreatedAt, &jr.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job role: %w", err)
	}
	return &jr, nil
}

// Update actualiza un cargo existente.
func (r *JobRoleRepo) Update(role *entity.JobRole) error {
	query := `
		UPDATE job_roles
		   SET name = $2, rate_base = $3, rate_overtime = $4, rate_role_bonus = $5, updated_at = $6
		 WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		role.ID, role.Name,
		role.DefaultRates.Base, role.DefaultRates.Overtime, role.DefaultRates.RoleBonus,
		role.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update job role: %w", err)
	}
	return nil
}

// ListByCompany lista los cargos de la empresa.
func (r *JobRoleRepo) ListByCompany(companyID string) ([]*entity.JobRole, error) {
	query := `SELECT ` + jobRoleColumns + ` FROM job_roles WHERE company_id = $1 ORDER BY name`
	rows, err := r.pool.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list job roles: %w", err)
	}
	defer rows.Close()

	var list []*entity.JobRole
	for rows.Next() {
		var jr entity.JobRole
		if err := rows.Scan(
			&jr.ID, &jr.CompanyID, &jr.Name,
			&jr.DefaultRates.Base, &jr.DefaultRates.Overtime, &jr.DefaultRates.RoleBonus,
			&jr.CreatedAt, &jr.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan job role: %w", err)
		}
		list = append(list, &jr)
	}
	return list, rows.Err()
}
