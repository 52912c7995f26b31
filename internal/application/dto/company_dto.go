package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCompanyRequest entrada para crear una empresa (onboarding de tenant).
type CreateCompanyRequest struct {
	Name                string          `json:"name" validate:"required,min=1,max=200"`
	NIT                 string          `json:"nit" validate:"required,min=1,max=20"`
	Email               string          `json:"email" validate:"omitempty,email"`
	PaymentCycle        string          `json:"payment_cycle" validate:"omitempty,oneof=daily weekly monthly"`
	BonusRateMultiplier decimal.Decimal `json:"bonus_rate_multiplier"`
	MaxDailyHours       decimal.Decimal `json:"max_daily_hours"`
}

// UpdateCompanyRequest entrada para actualizar una empresa. Lista blanca
// explícita de campos mutables; lo que no esté aquí no se toca.
type UpdateCompanyRequest struct {
	Name                *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Email               *string          `json:"email" validate:"omitempty,email"`
	PaymentCycle        *string          `json:"payment_cycle" validate:"omitempty,oneof=daily weekly monthly"`
	BonusRateMultiplier *decimal.Decimal `json:"bonus_rate_multiplier"`
	MaxDailyHours       *decimal.Decimal `json:"max_daily_hours"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	NIT                 string          `json:"nit"`
	Email               string          `json:"email"`
	PaymentCycle        string          `json:"payment_cycle"`
	BonusRateMultiplier decimal.Decimal `json:"bonus_rate_multiplier"`
	MaxDailyHours       decimal.Decimal `json:"max_daily_hours"`
	Status              string          `json:"status"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
