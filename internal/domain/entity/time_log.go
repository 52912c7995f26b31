package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un registro de tiempo. paid es terminal: un log pagado es
// inmutable y jamás vuelve a ser seleccionado por una corrida de nómina.
const (
	TimeLogStatusPending  = "pending"
	TimeLogStatusApproved = "approved"
	TimeLogStatusPaid     = "paid"
)

// TimeLog representa un intervalo de trabajo registrado (clock-in / clock-out).
// Las horas se derivan al hacer clock-out: RegularHours = min(duración, tope diario),
// BonusHours = max(0, duración - tope diario).
type TimeLog struct {
	ID           string
	EmployeeID   string
	ClockIn      time.Time
	ClockOut     *time.Time // nil = turno abierto; excluido de nómina
	Duration     decimal.Decimal
	RegularHours decimal.Decimal
	BonusHours   decimal.Decimal
	Status       string // pending, approved, paid
	ApprovedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsPayable informa si el log puede entrar a una corrida de nómina:
// aprobado y con clock-out registrado.
func (t *TimeLog) IsPayable() bool {
	return t.Status == TimeLogStatusApproved && t.ClockOut != nil
}
