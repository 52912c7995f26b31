package repository

import (
	"time"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// TimeLogRepository define el puerto de persistencia para TimeLog.
type TimeLogRepository interface {
	Create(log *entity.TimeLog) error
	GetByID(id string) (*entity.TimeLog, error)
	Update(log *entity.TimeLog) error
	ListByEmployee(employeeID string, limit, offset int) ([]*entity.TimeLog, error)
	// FindOpenByEmployee devuelve el turno abierto (sin clock-out) del
	// empleado, o nil si no hay.
	FindOpenByEmployee(employeeID string) (*entity.TimeLog, error)
	// ListApprovedInRange selecciona logs aprobados con clock-in dentro de
	// [start, end] y clock-out registrado. Los logs "paid" quedan excluidos
	// por construcción (filtro de estado), lo que sostiene la disyunción
	// de TimeLogIDs entre pagos.
	ListApprovedInRange(employeeID string, start, end time.Time) ([]*entity.TimeLog, error)
	// MarkPaid transiciona los logs indicados a "paid". Debe cubrir
	// exactamente el conjunto reclamado por el Payment que los paga.
	MarkPaid(ids []string, paidAt time.Time) error
}
