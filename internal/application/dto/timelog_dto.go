package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClockInRequest entrada para abrir un turno.
type ClockInRequest struct {
	EmployeeID string     `json:"employee_id" validate:"required,uuid"`
	At         *time.Time `json:"at"` // opcional: por defecto, ahora
}

// ClockOutRequest entrada para cerrar el turno abierto del empleado.
type ClockOutRequest struct {
	EmployeeID string     `json:"employee_id" validate:"required,uuid"`
	At         *time.Time `json:"at"` // opcional: por defecto, ahora
}

// TimeLogResponse salida de un registro de tiempo.
type TimeLogResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	ClockIn      time.Time       `json:"clock_in"`
	ClockOut     *time.Time      `json:"clock_out,omitempty"`
	Duration     decimal.Decimal `json:"duration"`
	RegularHours decimal.Decimal `json:"regular_hours"`
	BonusHours   decimal.Decimal `json:"bonus_hours"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TimeLogListResponse lista paginada de registros de tiempo.
type TimeLogListResponse struct {
	Items []TimeLogResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
