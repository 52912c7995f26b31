package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una suscripción. "expired" lo escribe únicamente el barrido
// periódico (ExpireDue), nunca se infiere de forma síncrona.
const (
	SubscriptionStatusTrial     = "trial"
	SubscriptionStatusActive    = "active"
	SubscriptionStatusSuspended = "suspended"
	SubscriptionStatusCancelled = "cancelled"
	SubscriptionStatusExpired   = "expired"
)

// SuspensionReasonCompany razón usada cuando la suspensión viene en cascada
// desde la suspensión de la empresa. Reactivar la empresa solo restaura la
// suscripción si fue suspendida por esta razón.
const SuspensionReasonCompany = "company_suspended"

// SubscriptionLimits límites vigentes (copiados del plan al contratar).
// -1 = ilimitado.
type SubscriptionLimits struct {
	MaxEmployees       int
	MaxMonthlyPayments int
	Features           map[string]bool
}

// SubscriptionPricing snapshot de precio al momento de contratar el plan.
// Custom=true indica precio negociado (enterprise); Amount queda en cero.
type SubscriptionPricing struct {
	Amount       decimal.Decimal
	BillingCycle string // monthly, quarterly, yearly
	Custom       bool
}

// UsageStats contadores de uso. Datos consultivos, no un libro mayor:
// el último escritor gana y eso se tolera.
type UsageStats struct {
	EmployeesCount    int
	PaymentsThisMonth int
	LastUpdated       time.Time
}

// Subscription registro 1:1 por empresa: plan, estado, límites, período.
// Nunca se borra mientras exista la Company.
type Subscription struct {
	ID                 string
	CompanyID          string
	PlanID             string
	Status             string // trial, active, suspended, cancelled, expired
	Limits             SubscriptionLimits
	Pricing            SubscriptionPricing
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	TrialEndsAt        *time.Time
	CancelledAt        *time.Time
	SuspendedAt        *time.Time
	SuspendedReason    string
	AutoRenew          bool
	Usage              UsageStats
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsValid es el predicado autoritativo de acceso (no el campo Status a secas):
// true si está activa, o en trial con TrialEndsAt en el futuro. Cualquier otro
// estado es inválido; la expiración almacenada solo la aplica el barrido externo.
func (s *Subscription) IsValid(now time.Time) bool {
	switch s.Status {
	case SubscriptionStatusActive:
		return true
	case SubscriptionStatusTrial:
		return s.TrialEndsAt != nil && s.TrialEndsAt.After(now)
	default:
		return false
	}
}

// DaysRemaining días restantes redondeando hacia arriba: contra TrialEndsAt
// durante el trial, contra CurrentPeriodEnd en los demás casos. Devuelve 0 si
// no hay fecha de corte; puede ser negativo si ya pasó.
func (s *Subscription) DaysRemaining(now time.Time) int {
	var end time.Time
	if s.Status == SubscriptionStatusTrial {
		if s.TrialEndsAt == nil {
			return 0
		}
		end = *s.TrialEndsAt
	} else {
		if s.CurrentPeriodEnd.IsZero() {
			return 0
		}
		end = s.CurrentPeriodEnd
	}
	return int(math.Ceil(end.Sub(now).Hours() / 24))
}

// HasFeature informa si la suscripción incluye el feature; nombre desconocido = false.
func (s *Subscription) HasFeature(name string) bool {
	if s.Limits.Features == nil {
		return false
	}
	return s.Limits.Features[name]
}
