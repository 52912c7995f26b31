package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest entrada para dar de alta un empleado.
// El alta pasa por el gate de entitlements (límite del plan).
type CreateEmployeeRequest struct {
	FirstName  string          `json:"first_name" validate:"required,min=1,max=100"`
	LastName   string          `json:"last_name" validate:"omitempty,max=100"`
	Email      string          `json:"email" validate:"omitempty,email"`
	HourlyRate decimal.Decimal `json:"hourly_rate" validate:"required"`
	JobRoleID  string          `json:"job_role_id" validate:"omitempty,uuid"`
}

// UpdateEmployeeRequest entrada para actualizar un empleado (campos opcionales).
type UpdateEmployeeRequest struct {
	FirstName  *string          `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName   *string          `json:"last_name" validate:"omitempty,max=100"`
	Email      *string          `json:"email" validate:"omitempty,email"`
	HourlyRate *decimal.Decimal `json:"hourly_rate"`
	JobRoleID  *string          `json:"job_role_id"`
	Active     *bool            `json:"active"`
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID         string          `json:"id"`
	CompanyID  string          `json:"company_id"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Email      string          `json:"email"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	JobRoleID  string          `json:"job_role_id,omitempty"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// EmployeeListResponse lista paginada de empleados.
type EmployeeListResponse struct {
	Items []EmployeeResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateJobRoleRequest entrada para crear un cargo con sus tarifas.
type CreateJobRoleRequest struct {
	Name      string          `json:"name" validate:"required,min=1,max=100"`
	Base      decimal.Decimal `json:"base" validate:"required"`
	Overtime  decimal.Decimal `json:"overtime"`
	RoleBonus decimal.Decimal `json:"role_bonus"`
}

// JobRoleResponse salida de un cargo.
type JobRoleResponse struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	Name      string          `json:"name"`
	Base      decimal.Decimal `json:"base"`
	Overtime  decimal.Decimal `json:"overtime"`
	RoleBonus decimal.Decimal `json:"role_bonus"`
	CreatedAt time.Time       `json:"created_at"`
}
