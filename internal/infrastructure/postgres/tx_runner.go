package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Nomina-api/internal/application/payroll"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
)

// Asegura que TxRunner implementa payroll.TxRunner.
var _ payroll.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunPayroll inicia una transacción, ejecuta fn con repos de pagos y logs
// atados a la tx y hace Commit o Rollback. El motor de nómina depende de esto
// para que crear o corregir un Payment y marcar sus TimeLogs como pagados sea
// un solo paso atómico.
func (r *TxRunner) RunPayroll(ctx context.Context, fn func(
	paymentRepo repository.PaymentRepository,
	timeLogRepo repository.TimeLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	paymentRepo := NewPaymentRepository(tx)
	timeLogRepo := NewTimeLogRepository(tx)

	if err := fn(paymentRepo, timeLogRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
