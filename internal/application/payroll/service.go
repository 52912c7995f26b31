// Package payroll implementa el motor de cálculo de nómina: corridas manuales
// sobre un rango explícito y corridas por ciclo de la empresa, con idempotencia
// garantizada por transacción (un TimeLog jamás se paga dos veces).
package payroll

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/ports"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	domainpayroll "github.com/jhoicas/Nomina-api/internal/domain/payroll"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
	"github.com/jhoicas/Nomina-api/pkg/clock"
)

// Service orquesta las corridas de nómina de una empresa.
type Service struct {
	companyRepo  repository.CompanyRepository
	employeeRepo repository.EmployeeRepository
	jobRoleRepo  repository.JobRoleRepository
	timeLogRepo  repository.TimeLogRepository
	paymentRepo  repository.PaymentRepository
	txRunner     TxRunner
	gate         EntitlementGate
	notifier     ports.Notifier
	receipts     ReceiptGenerator
	clk          clock.Clock
	log          zerolog.Logger
}

// NewService construye el motor de nómina.
func NewService(
	companyRepo repository.CompanyRepository,
	employeeRepo repository.EmployeeRepository,
	jobRoleRepo repository.JobRoleRepository,
	timeLogRepo repository.TimeLogRepository,
	paymentRepo repository.PaymentRepository,
	txRunner TxRunner,
	gate EntitlementGate,
	notifier ports.Notifier,
	receipts ReceiptGenerator,
	clk clock.Clock,
	log zerolog.Logger,
) *Service {
	return &Service{
		companyRepo:  companyRepo,
		employeeRepo: employeeRepo,
		jobRoleRepo:  jobRoleRepo,
		timeLogRepo:  timeLogRepo,
		paymentRepo:  paymentRepo,
		txRunner:     txRunner,
		gate:         gate,
		notifier:     notifier,
		receipts:     receipts,
		clk:          clk,
		log:          log,
	}
}

// ComputePayroll corre la nómina de todos los empleados activos de la empresa
// sobre [start, end]. Por cada empleado agrupa sus logs aprobados por día
// calendario y produce un Payment por día; las fallas de un empleado no
// abortan la corrida de los demás.
func (s *Service) ComputePayroll(ctx context.Context, companyID string, start, end time.Time) (*dto.PayrollRunResult, error) {
	company, err := s.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	if company.IsSuspended() {
		return nil, domain.ErrForbidden
	}
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	if err := s.gate.CanProcessPayment(ctx, companyID); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.ListActiveByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("listar empleados activos: %w", err)
	}

	result := &dto.PayrollRunResult{
		CompanyID:      companyID,
		PeriodStart:    start,
		PeriodEnd:      end,
		TotalEmployees: len(employees),
		TotalAmount:    decimal.Zero,
	}

	for _, emp := range employees {
		row := s.processEmployee(ctx, company, emp, start, end)
		// El acumulado refleja lo efectivamente liquidado aunque un día
		// posterior del mismo empleado haya fallado (el error ya viene en la
		// fila): esos pagos quedaron confirmados.
		if row.Amount.GreaterThan(decimal.Zero) {
			result.EmployeesWithPay++
			result.TotalAmount = result.TotalAmount.Add(row.Amount)
		}
		result.Results = append(result.Results, row)
	}

	// Refresco best-effort de los contadores de uso tras la corrida.
	if err := s.gate.RefreshUsage(ctx, companyID); err != nil {
		s.log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo refrescar el uso de la suscripción")
	}

	s.log.Info().
		Str("company_id", companyID).
		Int("empleados", result.TotalEmployees).
		Int("con_pago", result.EmployeesWithPay).
		Str("total", result.TotalAmount.String()).
		Msg("corrida de nómina terminada")
	return result, nil
}

// RunCycle corre la nómina con la ventana implícita del ciclo de pago de la
// empresa: daily = el día de hoy completo, weekly = los últimos 7 días,
// monthly = el mes calendario anterior.
func (s *Service) RunCycle(ctx context.Context, companyID string) (*dto.PayrollRunResult, error) {
	company, err := s.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	now := s.clk.Now()
	var start, end time.Time
	switch company.PaymentCycle {
	case entity.PaymentCycleDaily:
		start = dayStart(now)
		end = dayEnd(now)
	case entity.PaymentCycleWeekly:
		start = now.AddDate(0, 0, -7)
		end = now
	case entity.PaymentCycleMonthly:
		firstOfThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		start = firstOfThis.AddDate(0, -1, 0)
		end = firstOfThis.Add(-time.Millisecond)
	default:
		return nil, domain.ErrInvalidInput
	}
	return s.ComputePayroll(ctx, companyID, start, end)
}

// ListPayments devuelve los pagos de la empresa cuyo período cae en [start, end].
func (s *Service) ListPayments(ctx context.Context, companyID string, start, end time.Time) ([]*entity.Payment, error) {
	if _, err := s.companyRepo.GetByID(companyID); err != nil {
		return nil, domain.ErrCompanyNotFound
	}
	return s.paymentRepo.ListByCompanyPeriod(companyID, start, end)
}

// Receipt genera el desprendible PDF de un pago de la empresa.
func (s *Service) Receipt(ctx context.Context, companyID, paymentID string) ([]byte, error) {
	company, err := s.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil || payment == nil {
		return nil, domain.ErrNotFound
	}
	emp, err := s.employeeRepo.GetByID(payment.EmployeeID)
	if err != nil || emp == nil {
		return nil, domain.ErrNotFound
	}
	if emp.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return s.receipts.Generate(company, emp, payment)
}

// processEmployee calcula y persiste los pagos de un empleado en el rango.
// Devuelve siempre una fila de resultado; los errores quedan en Row.Error.
func (s *Service) processEmployee(ctx context.Context, company *entity.Company, emp *entity.Employee, start, end time.Time) dto.EmployeePayrollResult {
	row := dto.EmployeePayrollResult{
		EmployeeID:   emp.ID,
		Outcome:      dto.PayrollOutcomeSkipped,
		Amount:       decimal.Zero,
		RegularHours: decimal.Zero,
		BonusHours:   decimal.Zero,
	}

	logs, err := s.timeLogRepo.ListApprovedInRange(emp.ID, start, end)
	if err != nil {
		row.Error = err.Error()
		return row
	}
	payable := logs[:0]
	for _, l := range logs {
		if l.IsPayable() {
			payable = append(payable, l)
		}
	}
	if len(payable) == 0 {
		// Sin horas pagables no se crea ningún pago (ni en cero).
		return row
	}

	var role *entity.JobRole
	if emp.JobRoleID != "" {
		role, err = s.jobRoleRepo.GetByID(emp.JobRoleID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			row.Error = err.Error()
			return row
		}
	}
	rates := domainpayroll.ResolveRates(emp, role)

	for _, dayLogs := range groupByDay(payable) {
		outcome, pay, err := s.settleDay(ctx, company, emp, rates, dayLogs)
		if err != nil {
			row.Error = err.Error()
			s.log.Error().Err(err).
				Str("company_id", company.ID).
				Str("employee_id", emp.ID).
				Msg("fallo al liquidar el día de un empleado")
			continue
		}
		switch outcome {
		case dto.PayrollOutcomeCreated:
			if row.Outcome != dto.PayrollOutcomeCreated {
				row.Outcome = dto.PayrollOutcomeCreated
			}
		case dto.PayrollOutcomeUpdated:
			if row.Outcome == dto.PayrollOutcomeSkipped {
				row.Outcome = dto.PayrollOutcomeUpdated
			}
		case dto.PayrollOutcomeSkipped:
			continue
		}
		row.Payments++
		row.PaymentStatus = pay.Status
		row.Amount = row.Amount.Add(pay.Amount)
		row.RegularHours = row.RegularHours.Add(pay.RegularHours)
		row.BonusHours = row.BonusHours.Add(pay.BonusHours)
	}
	return row
}

// settleDay liquida los logs de un día calendario dentro de una transacción:
// si no hay pago en conflicto crea uno nuevo; si hay uno pendiente lo corrige
// en el lugar recalculando sobre la unión de logs; cualquier otro estado se
// respeta y el día se salta. Una colisión por corrida concurrente (violación
// de unicidad) se reintenta una vez, donde el chequeo ya ve al ganador.
func (s *Service) settleDay(ctx context.Context, company *entity.Company, emp *entity.Employee, rates domainpayroll.EffectiveRates, dayLogs []*entity.TimeLog) (string, *entity.Payment, error) {
	periodStart := dayStart(dayLogs[0].ClockIn)
	periodEnd := dayEnd(dayLogs[0].ClockIn)
	newIDs := make([]string, 0, len(dayLogs))
	for _, l := range dayLogs {
		newIDs = append(newIDs, l.ID)
	}

	var outcome string
	var settled *entity.Payment
	run := func() error {
		return s.txRunner.RunPayroll(ctx, func(paymentRepo repository.PaymentRepository, timeLogRepo repository.TimeLogRepository) error {
			existing, err := paymentRepo.FindConflicting(emp.ID, periodStart, periodEnd, newIDs)
			if err != nil {
				return err
			}
			now := s.clk.Now()

			if existing == nil {
				regular, bonus := domainpayroll.SumHours(dayLogs)
				totals := domainpayroll.ComputeTotals(regular, bonus, rates)
				pay := &entity.Payment{
					ID:                  uuid.New().String(),
					EmployeeID:          emp.ID,
					PeriodStart:         periodStart,
					PeriodEnd:           periodEnd,
					Amount:              totals.TotalPay,
					RegularHours:        totals.RegularHours,
					BonusHours:          totals.BonusHours,
					HourlyRate:          rates.Base,
					BonusRateMultiplier: company.BonusRateMultiplier,
					TimeLogIDs:          newIDs,
					Status:              entity.PaymentStatusPending,
					CreatedAt:           now,
					UpdatedAt:           now,
				}
				if err := paymentRepo.Create(pay); err != nil {
					return err
				}
				if err := timeLogRepo.MarkPaid(newIDs, now); err != nil {
					return err
				}
				outcome, settled = dto.PayrollOutcomeCreated, pay
				return nil
			}

			if !existing.IsMutable() {
				// Dinero ya en vuelo: no se toca. Los logs quedan sin pagar
				// y el conflicto se reporta como día saltado.
				outcome, settled = dto.PayrollOutcomeSkipped, existing
				return nil
			}

			// Corrección en el lugar: recalcular sobre la unión de los logs
			// ya reclamados y los nuevos.
			combined := make([]*entity.TimeLog, 0, len(existing.TimeLogIDs)+len(dayLogs))
			seen := make(map[string]bool, len(existing.TimeLogIDs)+len(dayLogs))
			for _, id := range existing.TimeLogIDs {
				l, err := timeLogRepo.GetByID(id)
				if err != nil {
					return fmt.Errorf("cargar log reclamado %s: %w", id, err)
				}
				combined = append(combined, l)
				seen[id] = true
			}
			freshIDs := make([]string, 0, len(dayLogs))
			for _, l := range dayLogs {
				if seen[l.ID] {
					continue
				}
				combined = append(combined, l)
				seen[l.ID] = true
				freshIDs = append(freshIDs, l.ID)
			}

			regular, bonus := domainpayroll.SumHours(combined)
			totals := domainpayroll.ComputeTotals(regular, bonus, rates)
			existing.Amount = totals.TotalPay
			existing.RegularHours = totals.RegularHours
			existing.BonusHours = totals.BonusHours
			existing.HourlyRate = rates.Base
			existing.BonusRateMultiplier = company.BonusRateMultiplier
			ids := make([]string, 0, len(seen))
			for _, l := range combined {
				ids = append(ids, l.ID)
			}
			existing.TimeLogIDs = ids
			existing.UpdatedAt = now
			if err := paymentRepo.Update(existing); err != nil {
				return err
			}
			if len(freshIDs) > 0 {
				if err := timeLogRepo.MarkPaid(freshIDs, now); err != nil {
					return err
				}
			}
			outcome, settled = dto.PayrollOutcomeUpdated, existing
			return nil
		})
	}

	err := run()
	if errors.Is(err, domain.ErrDuplicate) {
		// Otra corrida ganó la carrera de inserción; el reintento toma la
		// rama de corrección contra la fila ya confirmada.
		err = run()
	}
	if err != nil {
		return "", nil, err
	}

	switch outcome {
	case dto.PayrollOutcomeCreated:
		s.notifier.Notify(ctx, ports.EventPaymentCreated, company.ID, map[string]any{
			"payment_id":  settled.ID,
			"employee_id": emp.ID,
			"amount":      settled.Amount.String(),
		})
	case dto.PayrollOutcomeUpdated:
		s.notifier.Notify(ctx, ports.EventPaymentUpdated, company.ID, map[string]any{
			"payment_id":  settled.ID,
			"employee_id": emp.ID,
			"amount":      settled.Amount.String(),
		})
	}
	return outcome, settled, nil
}

// groupByDay agrupa logs por el día calendario de su clock-in, en orden
// cronológico de día.
func groupByDay(logs []*entity.TimeLog) [][]*entity.TimeLog {
	byDay := make(map[string][]*entity.TimeLog)
	for _, l := range logs {
		key := l.ClockIn.Format("2006-01-02")
		byDay[key] = append(byDay[key], l)
	}
	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][]*entity.TimeLog, 0, len(keys))
	for _, k := range keys {
		out = append(out, byDay[k])
	}
	return out
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return dayStart(t).Add(24*time.Hour - time.Millisecond)
}
