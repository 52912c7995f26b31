package payroll

import (
	"context"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre la creación o
// corrección de un Payment y el marcado de sus TimeLogs como pagados.
type TxRunner interface {
	RunPayroll(ctx context.Context, fn func(
		paymentRepo repository.PaymentRepository,
		timeLogRepo repository.TimeLogRepository,
	) error) error
}

// EntitlementGate valida contra la suscripción de la empresa antes de crear
// pagos, y refresca los contadores de uso después de una corrida.
type EntitlementGate interface {
	CanProcessPayment(ctx context.Context, companyID string) error
	RefreshUsage(ctx context.Context, companyID string) error
}

// ReceiptGenerator genera el recibo PDF de un pago.
type ReceiptGenerator interface {
	Generate(company *entity.Company, employee *entity.Employee, payment *entity.Payment) ([]byte, error)
}
