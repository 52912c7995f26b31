package repository

import (
	"time"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// PaymentRepository define el puerto de persistencia para Payment.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	Update(payment *entity.Payment) error
	ListByEmployee(employeeID string, limit, offset int) ([]*entity.Payment, error)
	ListByCompanyPeriod(companyID string, start, end time.Time) ([]*entity.Payment, error)
	// FindConflicting busca un pago existente del empleado cuyo período se
	// solape con [start, end] o cuyos TimeLogIDs intersecten logIDs. Es la
	// precondición de idempotencia del motor de nómina; dentro de una
	// transacción la implementación debe bloquear la fila (FOR UPDATE) para
	// que el chequeo se evalúe contra el último estado confirmado.
	FindConflicting(employeeID string, start, end time.Time, logIDs []string) (*entity.Payment, error)
	// CountByCompanySince cuenta pagos de la empresa creados desde el
	// instante dado (para usageStats.paymentsThisMonth).
	CountByCompanySince(companyID string, since time.Time) (int, error)
}
