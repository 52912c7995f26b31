package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ciclos de nómina válidos para Company.PaymentCycle.
const (
	PaymentCycleDaily   = "daily"
	PaymentCycleWeekly  = "weekly"
	PaymentCycleMonthly = "monthly"
)

// Estados de una empresa. Las empresas nunca se borran: se suspenden.
const (
	CompanyStatusActive    = "active"
	CompanyStatusSuspended = "suspended"
)

// Company representa una organización/tenant del sistema (multi-tenant).
// Cada empresa es dueña de sus empleados y tiene exactamente una Subscription.
type Company struct {
	ID                  string
	Name                string
	NIT                 string // NIT (con o sin dígito de verificación)
	Email               string
	PaymentCycle        string          // daily, weekly, monthly
	BonusRateMultiplier decimal.Decimal // multiplicador informativo para horas bonus (snapshot en Payment)
	MaxDailyHours       decimal.Decimal // tope diario de horas regulares; el exceso cuenta como bonus
	Status              string          // active, suspended
	SuspendedAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsSuspended informa si la empresa está suspendida.
func (c *Company) IsSuspended() bool {
	return c.Status == CompanyStatusSuspended
}
