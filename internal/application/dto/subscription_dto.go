package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChangePlanRequest entrada para cambiar el plan de la suscripción.
// BillingCycle vacío conserva el ciclo vigente.
type ChangePlanRequest struct {
	PlanID       string `json:"plan_id" validate:"required"`
	BillingCycle string `json:"billing_cycle" validate:"omitempty,oneof=monthly quarterly yearly"`
}

// SuspendRequest entrada administrativa para suspender una suscripción.
type SuspendRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=300"`
}

// SubscriptionResponse salida de la suscripción de una empresa.
type SubscriptionResponse struct {
	ID                 string           `json:"id"`
	CompanyID          string           `json:"company_id"`
	PlanID             string           `json:"plan_id"`
	Status             string           `json:"status"`
	MaxEmployees       int              `json:"max_employees"`
	MaxMonthlyPayments int              `json:"max_monthly_payments"`
	Features           []string         `json:"features"`
	PriceAmount        *decimal.Decimal `json:"price_amount,omitempty"` // nil = precio negociado
	BillingCycle       string           `json:"billing_cycle"`
	CurrentPeriodStart time.Time        `json:"current_period_start"`
	CurrentPeriodEnd   time.Time        `json:"current_period_end"`
	TrialEndsAt        *time.Time       `json:"trial_ends_at,omitempty"`
	AutoRenew          bool             `json:"auto_renew"`
	DaysRemaining      int              `json:"days_remaining"`
	Valid              bool             `json:"valid"`
	EmployeesCount     int              `json:"employees_count"`
	PaymentsThisMonth  int              `json:"payments_this_month"`
}

// EntitlementsResponse resumen de lo que el plan vigente permite.
type EntitlementsResponse struct {
	CanAddEmployee    bool     `json:"can_add_employee"`
	CanProcessPayment bool     `json:"can_process_payment"`
	Features          []string `json:"features"`
}

// PlanResponse descriptor de un plan del catálogo.
type PlanResponse struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	MaxEmployees       int              `json:"max_employees"`
	MaxMonthlyPayments int              `json:"max_monthly_payments"`
	Features           []string         `json:"features"`
	MonthlyPrice       *decimal.Decimal `json:"monthly_price,omitempty"` // nil = precio negociado
}
