package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Resultados posibles por empleado en una corrida de nómina.
const (
	PayrollOutcomeCreated = "created"
	PayrollOutcomeUpdated = "updated"
	PayrollOutcomeSkipped = "skipped"
)

// RunPayrollRequest entrada para una corrida manual sobre un rango explícito.
type RunPayrollRequest struct {
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

// EmployeePayrollResult fila de resultado por empleado. Las fallas por
// empleado no abortan la corrida: quedan en Error y el lote siempre termina.
type EmployeePayrollResult struct {
	EmployeeID    string          `json:"employee_id"`
	Outcome       string          `json:"outcome"` // created, updated, skipped
	PaymentStatus string          `json:"payment_status,omitempty"`
	Payments      int             `json:"payments"`
	Amount        decimal.Decimal `json:"amount"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	BonusHours    decimal.Decimal `json:"bonus_hours"`
	Error         string          `json:"error,omitempty"`
}

// PayrollRunResult agregado de una corrida.
type PayrollRunResult struct {
	CompanyID         string                  `json:"company_id"`
	PeriodStart       time.Time               `json:"period_start"`
	PeriodEnd         time.Time               `json:"period_end"`
	TotalEmployees    int                     `json:"total_employees"`
	EmployeesWithPay  int                     `json:"employees_with_pay"`
	TotalAmount       decimal.Decimal         `json:"total_amount"`
	Results           []EmployeePayrollResult `json:"results"`
}

// PaymentResponse salida de un pago.
type PaymentResponse struct {
	ID                  string          `json:"id"`
	EmployeeID          string          `json:"employee_id"`
	PeriodStart         time.Time       `json:"period_start"`
	PeriodEnd           time.Time       `json:"period_end"`
	Amount              decimal.Decimal `json:"amount"`
	RegularHours        decimal.Decimal `json:"regular_hours"`
	BonusHours          decimal.Decimal `json:"bonus_hours"`
	HourlyRate          decimal.Decimal `json:"hourly_rate"`
	BonusRateMultiplier decimal.Decimal `json:"bonus_rate_multiplier"`
	TimeLogIDs          []string        `json:"time_log_ids"`
	Status              string          `json:"status"`
	CreatedAt           time.Time       `json:"created_at"`
}

// PaymentListResponse lista de pagos de un período.
type PaymentListResponse struct {
	Items []PaymentResponse `json:"items"`
}
