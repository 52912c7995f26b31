package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pago. El motor de nómina solo crea pagos en pending y solo
// corrige pagos en pending; los demás estados los escribe el flujo externo
// de procesamiento de pagos y aquí se respetan como entrada.
const (
	PaymentStatusPending    = "pending"
	PaymentStatusApproved   = "approved"
	PaymentStatusProcessing = "processing"
	PaymentStatusCompleted  = "completed"
	PaymentStatusFailed     = "failed"
)

// Payment representa la compensación calculada de un empleado para un período.
// Invariante duro: la unión de TimeLogIDs entre todos los pagos de un empleado
// es disjunta — ningún TimeLog puede aparecer en dos pagos.
type Payment struct {
	ID                  string
	EmployeeID          string
	PeriodStart         time.Time
	PeriodEnd           time.Time
	Amount              decimal.Decimal
	RegularHours        decimal.Decimal
	BonusHours          decimal.Decimal
	HourlyRate          decimal.Decimal // snapshot de la tarifa base usada
	BonusRateMultiplier decimal.Decimal // snapshot del multiplicador de la empresa
	TimeLogIDs          []string        // logs cubiertos por este pago (fuente de verdad de lo "reclamado")
	Status              string          // pending, approved, processing, completed, failed
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsMutable informa si el motor de nómina puede corregir este pago.
// Dinero ya en vuelo (approved en adelante) nunca se altera en silencio.
func (p *Payment) IsMutable() bool {
	return p.Status == PaymentStatusPending
}

// CoversLog informa si el pago ya reclama el TimeLog indicado.
func (p *Payment) CoversLog(timeLogID string) bool {
	for _, id := range p.TimeLogIDs {
		if id == timeLogID {
			return true
		}
	}
	return false
}
