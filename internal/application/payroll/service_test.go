package payroll_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	apppayroll "github.com/jhoicas/Nomina-api/internal/application/payroll"
	"github.com/jhoicas/Nomina-api/internal/domain"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/repository"
	"github.com/jhoicas/Nomina-api/pkg/clock"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── Fakes en memoria ─────────────────────────────────────────────────────────

type memCompanies struct{ m map[string]*entity.Company }

func (r *memCompanies) Create(c *entity.Company) error { r.m[c.ID] = c; return nil }
func (r *memCompanies) GetByID(id string) (*entity.Company, error) {
	c, ok := r.m[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	return c, nil
}
func (r *memCompanies) GetByNIT(nit string) (*entity.Company, error) { return nil, nil }
func (r *memCompanies) Update(c *entity.Company) error               { r.m[c.ID] = c; return nil }
func (r *memCompanies) List(limit, offset int) ([]*entity.Company, error) {
	return nil, nil
}

type memEmployees struct{ m map[string]*entity.Employee }

func (r *memEmployees) Create(e *entity.Employee) error { r.m[e.ID] = e; return nil }
func (r *memEmployees) GetByID(id string) (*entity.Employee, error) {
	e, ok := r.m[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}
func (r *memEmployees) Update(e *entity.Employee) error { r.m[e.ID] = e; return nil }
func (r *memEmployees) ListByCompany(companyID string, limit, offset int) ([]*entity.Employee, error) {
	return r.ListActiveByCompany(companyID)
}
func (r *memEmployees) ListActiveByCompany(companyID string) ([]*entity.Employee, error) {
	var out []*entity.Employee
	for _, e := range r.m {
		if e.CompanyID == companyID && e.Active {
			out = append(out, e)
		}
	}
	return out, nil
}
func (r *memEmployees) CountActiveByCompany(companyID string) (int, error) {
	list, _ := r.ListActiveByCompany(companyID)
	return len(list), nil
}

type memRoles struct{ m map[string]*entity.JobRole }

func (r *memRoles) Create(role *entity.JobRole) error { r.m[role.ID] = role; return nil }
func (r *memRoles) GetByID(id string) (*entity.JobRole, error) {
	role, ok := r.m[id]
	if !ok {
		return nil, nil
	}
	return role, nil
}
func (r *memRoles) Update(role *entity.JobRole) error { r.m[role.ID] = role; return nil }
func (r *memRoles) ListByCompany(companyID string) ([]*entity.JobRole, error) {
	return nil, nil
}

type memLogs struct{ m map[string]*entity.TimeLog }

func (r *memLogs) Create(l *entity.TimeLog) error { r.m[l.ID] = l; return nil }
func (r *memLogs) GetByID(id string) (*entity.TimeLog, error) {
	l, ok := r.m[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return l, nil
}
func (r *memLogs) Update(l *entity.TimeLog) error { r.m[l.ID] = l; return nil }
func (r *memLogs) ListByEmployee(employeeID string, limit, offset int) ([]*entity.TimeLog, error) {
	return nil, nil
}
func (r *memLogs) FindOpenByEmployee(employeeID string) (*entity.TimeLog, error) {
	return nil, nil
}
func (r *memLogs) ListApprovedInRange(employeeID string, start, end time.Time) ([]*entity.TimeLog, error) {
	var out []*entity.TimeLog
	for _, l := range r.m {
		if l.EmployeeID != employeeID || l.Status != entity.TimeLogStatusApproved || l.ClockOut == nil {
			continue
		}
		if l.ClockIn.Before(start) || l.ClockIn.After(end) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
func (r *memLogs) MarkPaid(ids []string, paidAt time.Time) error {
	for _, id := range ids {
		if l, ok := r.m[id]; ok && l.Status != entity.TimeLogStatusPaid {
			l.Status = entity.TimeLogStatusPaid
			l.UpdatedAt = paidAt
		}
	}
	return nil
}

type memPayments struct {
	m map[string]*entity.Payment
	// dupWinner simula una corrida concurrente: el primer Create falla con
	// ErrDuplicate y deja confirmado al pago ganador.
	dupWinner *entity.Payment
}

func (r *memPayments) Create(p *entity.Payment) error {
	if r.dupWinner != nil {
		winner := r.dupWinner
		r.dupWinner = nil
		r.m[winner.ID] = winner
		return domain.ErrDuplicate
	}
	r.m[p.ID] = p
	return nil
}
func (r *memPayments) GetByID(id string) (*entity.Payment, error) {
	p, ok := r.m[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
func (r *memPayments) Update(p *entity.Payment) error { r.m[p.ID] = p; return nil }
func (r *memPayments) ListByEmployee(employeeID string, limit, offset int) ([]*entity.Payment, error) {
	return nil, nil
}
func (r *memPayments) ListByCompanyPeriod(companyID string, start, end time.Time) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.m {
		if !p.PeriodStart.Before(start) && !p.PeriodEnd.After(end) {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *memPayments) FindConflicting(employeeID string, start, end time.Time, logIDs []string) (*entity.Payment, error) {
	for _, p := range r.m {
		if p.EmployeeID != employeeID {
			continue
		}
		if !p.PeriodStart.After(end) && !p.PeriodEnd.Before(start) {
			return p, nil
		}
		for _, id := range logIDs {
			if p.CoversLog(id) {
				return p, nil
			}
		}
	}
	return nil, nil
}
func (r *memPayments) CountByCompanySince(companyID string, since time.Time) (int, error) {
	return len(r.m), nil
}

type memTxRunner struct {
	payments *memPayments
	logs     *memLogs
}

func (t *memTxRunner) RunPayroll(ctx context.Context, fn func(repository.PaymentRepository, repository.TimeLogRepository) error) error {
	return fn(t.payments, t.logs)
}

type fakeGate struct {
	canErr       error
	refreshCalls int
}

func (g *fakeGate) CanProcessPayment(ctx context.Context, companyID string) error { return g.canErr }
func (g *fakeGate) RefreshUsage(ctx context.Context, companyID string) error {
	g.refreshCalls++
	return nil
}

type fakeNotifier struct{ events []string }

func (n *fakeNotifier) Notify(ctx context.Context, event, companyID string, payload map[string]any) {
	n.events = append(n.events, event)
}

type fakeReceipts struct{}

func (fakeReceipts) Generate(company *entity.Company, emp *entity.Employee, payment *entity.Payment) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

// ── Arnés ────────────────────────────────────────────────────────────────────

type testEnv struct {
	svc       *apppayroll.Service
	companies *memCompanies
	employees *memEmployees
	roles     *memRoles
	logs      *memLogs
	payments  *memPayments
	gate      *fakeGate
	notifier  *fakeNotifier
	clk       clock.Fixed
}

func newTestEnv(now time.Time) *testEnv {
	e := &testEnv{
		companies: &memCompanies{m: map[string]*entity.Company{}},
		employees: &memEmployees{m: map[string]*entity.Employee{}},
		roles:     &memRoles{m: map[string]*entity.JobRole{}},
		logs:      &memLogs{m: map[string]*entity.TimeLog{}},
		payments:  &memPayments{m: map[string]*entity.Payment{}},
		gate:      &fakeGate{},
		notifier:  &fakeNotifier{},
		clk:       clock.Fixed{T: now},
	}
	e.svc = apppayroll.NewService(
		e.companies, e.employees, e.roles, e.logs, e.payments,
		&memTxRunner{payments: e.payments, logs: e.logs},
		e.gate, e.notifier, fakeReceipts{}, e.clk, zerolog.Nop(),
	)
	return e
}

func (e *testEnv) addCompany(cycle string) *entity.Company {
	c := &entity.Company{
		ID:                  uuid.New().String(),
		Name:                "Acme SAS",
		PaymentCycle:        cycle,
		BonusRateMultiplier: d("1.5"),
		MaxDailyHours:       d("8"),
		Status:              entity.CompanyStatusActive,
	}
	e.companies.m[c.ID] = c
	return c
}

func (e *testEnv) addEmployee(companyID, roleID string) *entity.Employee {
	emp := &entity.Employee{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		FirstName:  "Ana",
		LastName:   "Pérez",
		Email:      "ana@acme.co",
		HourlyRate: d("25"),
		JobRoleID:  roleID,
		Active:     true,
	}
	e.employees.m[emp.ID] = emp
	return emp
}

func (e *testEnv) addRole(companyID string) *entity.JobRole {
	role := &entity.JobRole{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      "Operaria",
		DefaultRates: entity.RateStructure{
			Base:      d("25"),
			Overtime:  d("37.5"),
			RoleBonus: d("100"),
		},
	}
	e.roles.m[role.ID] = role
	return role
}

// addApprovedLog registra un log aprobado de `hours` horas arrancando en `in`,
// con las horas ya partidas contra un tope de 8.
func (e *testEnv) addApprovedLog(employeeID string, in time.Time, hours string) *entity.TimeLog {
	duration := d(hours)
	cap8 := d("8")
	regular, bonus := duration, decimal.Zero
	if duration.GreaterThan(cap8) {
		regular, bonus = cap8, duration.Sub(cap8)
	}
	out := in.Add(time.Duration(duration.InexactFloat64() * float64(time.Hour)))
	l := &entity.TimeLog{
		ID:           uuid.New().String(),
		EmployeeID:   employeeID,
		ClockIn:      in,
		ClockOut:     &out,
		Duration:     duration,
		RegularHours: regular,
		BonusHours:   bonus,
		Status:       entity.TimeLogStatusApproved,
	}
	e.logs.m[l.ID] = l
	return l
}

var (
	testNow   = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	testStart = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	testEnd   = time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
)

// ── Tests ────────────────────────────────────────────────────────────────────

func TestComputePayroll_CreaPagoYMarcaLogsPagados(t *testing.T) {
	e := newTestEnv(testNow)
	company := e.addCompany(entity.PaymentCycleMonthly)
	role := e.addRole(company.ID)
	emp := e.addEmployee(company.ID, role.ID)
	log := e.addApprovedLog(emp.ID, time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC), "10")

	result, err := e.svc.ComputePayroll(context.Background(), company.ID, testStart, testEnd)

	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	row := result.Results[0]
	assert.Equal(t, dto.PayrollOutcomeCreated, row.Outcome)
	assert.Equal(t, 1, row.Payments)
	assert.True(t, row.Amount.Equal(d("375")), "8×25 + 2×37.5 + 100 = 375, fue %s", row.Amount)
	assert.True(t, result.TotalAmount.Equal(d("375")))
	assert.Equal(t, 1, result.EmployeesWithPay)

	require.Len(t, e.payments.m, 1)
	for _, p := range e.payments.m {
		assert.Equal(t, entity.PaymentStatusPending, p.Status)
		assert.True(t, p.HourlyRate.Equal(d("25")))
		assert.Equal(t, []string{log.ID}, p.TimeLogIDs)
	}
	assert.Equal(t, entity.TimeLogStatusPaid, e.logs.m[log.ID].Status,
		"el log aprobado pasa a paid en la misma transacción")
	assert.Contains(t, e.notifier.events, "payment.created")
	assert.Equal(t, 1, e.gate.refreshCalls)
}

func TestComputePayroll_SegundaCorridaEsIdempotente(t *testing.T) {
	e := newTestEnv(testNow)
	company := e.addCompany(entity.PaymentCycleMonthly)
	emp := e.addEmployee(company.ID, "")
	e.addApprovedLog(emp.ID, time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC), "8")

	first, err := e.svc.ComputePayroll(context.Background(), company.ID, testStart, testEnd)
	require.NoError(t, err)
	require.Equal(t, 1, first.EmployeesWithPay)

	second, err := e.svc.ComputePayroll(context.Background(), company.ID, testStart, testEnd)
	require.NoError(t, err)

	assert.Equal(t, 0, second.EmployeesWithPay, "los logs ya pagados no vuelven a seleccionarse")
	assert.Equal(t, dto.PayrollOutcomeSkipped, second.Results[0].Outcome)
	assert.Len(t, e.payments.m, 1, "la segunda corrida no crea pagos nuevos")
}

func TestComputePayroll_CorrigePagoPendienteConLogNuevo(t *testing.T) {
	e := newTestEnv(testNow)
	company := e.addCompany(entity.PaymentCycleMonthly)
	emp := e.addEmployee(company.ID, "")
	day := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)
	first := e.addApprovedLog(emp.ID, day, "8")

	_, err := e.svc.ComputePayroll(context.Background(), company.ID, testStart, testEnd)
	require.NoError(t, err)

	// Se aprueba un log tardío del mismo día y se vuelve a correr.
	late := e.addApprovedLog(emp.ID, day.Add(10*time.Hour), "2")
	result, err := e.svc.ComputePayroll(context.Background(), company.ID, testStart, testEnd)
	require.NoError(t, err)

	row := result.Results[0]
	assert.Equal(t, dto.PayrollOutcomeUpdated, row.Outcome)
	require.Len(t, e.payments.m, 1, "la corrección es en el lugar, no un pago nuevo")
	for _, p := range e.payments.m {
		assert.True(t, p.Amount.Equal(d("250")), "10 horas × 25 sobre la unión de logs, fue %s", p.Amount)
		assert.ElementsMatch(t, []string{first.ID, late.ID}, p.TimeLogIDs)
	}
	assert.Equal(t, entity.TimeLogStatusPaid, e.logs.m[late.ID].Status)
}

func TestComputePayroll_NoTocaPagoNoVigente(t *testing.T) {
	e := newTestEnv(testNow)
	company := e.addCompany(entity.PaymentCycleMonthly)
	emp := e.addEmployee(company.ID, "")
	day := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)
	e.addApprovedLog(emp.ID, day, "8")

	_, err := e.svc.ComputePayroll(context.Background(), company.ID, testStart, testEnd)
	require.NoError(t, err)

	// El flujo externo aprueba el pago: dinero en vuelo.
	var payID string
	for id, p := range e.payments.m {
		p.Status = entity.PaymentStatusApproved
		payID = id
	}
	before := e.payments.m[payID].Amount

	late := e.addApprovedLog(emp.ID, day.Add(10*time.Hour), "2")
	result, err := e.svc.ComputePayroll(context.Background(), company.ID, testStart, testEnd)
	require.NoError(t, err)

	assert.Equal(t, dto.PayrollOutcomeSkipped, result.Results[0].Outcome)
	assert.True(t, e.payments.m[payID].Amount.Equal(before), "un pago aprobado jamás se corrige")
	assert.Equal(t, entity.TimeLogStatusApproved, e.logs.m[late.ID].Status,
		"el log en conflicto queda sin pagar")
}

func TestComputePayroll_ErrorParcialNoBorraLoLiquidado(t *testing.T) {
	e := newTestEnv(testNow)
	company := e.addCompany(entity.PaymentCycleMonthly)
	emp := e.addEmployee(company.ID, "")
	e.addApprovedLog(emp.ID, time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC), "8")
	badDay := time.Date(2026, 3, 6, 8, 0, 0, 0, time.UTC)
	e.addApprovedLog(emp.ID, badDay, "6")

	// Un pago pendiente del día 6 reclama un log que ya no existe: la
	// corrección de ese día falla, pero el día 5 ya quedó confirmado.
	e.payments.m["pago-roto"] = &entity.Payment{
		ID:          "pago-roto",
		EmployeeID:  emp.ID,
		PeriodStart: time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 3, 6, 23, 59, 59, 999000000, time.UTC),
		TimeLogIDs:  []string{"registro-fantasma"},
		Status:      entity.PaymentStatusPending,
	}

	result, err := e.svc.ComputePayroll(context.Background(), company.ID, testStart, testEnd)

	require.NoError(t, err)
	row := result.Results[0]
	assert.NotEmpty(t, row.Error, "la falla del día 6 queda reportada en la fila")
	assert.Equal(t, 1, row.Payments, "el día 5 sí se liquidó")
	assert.True(t, row.Amount.Equal(d("200")), "8×25 del día 5, fue %s", row.Amount)
	assert.Equal(t, 1, result.EmployeesWithPay,
		"el empleado cuenta como pagado aunque un día suyo haya fallado")
	assert.True(t, result.TotalAmount.Equal(d("200")),
		"el total acumula lo confirmado, fue %s", result.TotalAmount)
}

func TestComputePayroll_SinHorasNoCreaPago(t *testing.T) {
	e := newTestEnv(testNow)
	company := e.addCompany(entity.PaymentCycleMonthly)
	e.addEmployee(company.ID, "")

	result, err := e.svc.ComputePayroll(context.Background(), company.ID, testStart, testEnd)

	require.NoError(t, err)
	assert.Equal(t, dto.PayrollOutcomeSkipped, result.Results[0].Outcome)
	assert.Empty(t, e.payments.m, "sin horas pagables no se crea ni un pago en cero")
}

func TestComputePayroll_UnPagoPorDiaCalendario(t *testing.T) {
	e := newTestEnv(testNow)
	company := e.addCompany(entity.PaymentCycleMonthly)
	emp := e.addEmployee(company.ID, "")
	e.addApprovedLog(emp.ID, time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC), "8")
	e.addApprovedLog(emp.ID, time.Date(2026, 3, 6, 8, 0, 0, 0, time.UTC), "6")

	result, err := e.svc.ComputePayroll(context.Background(), company.ID, testStart, testEnd)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Results[0].Payments)
	assert.Len(t, e.payments.m, 2)
	assert.True(t, result.TotalAmount.Equal(d("350")), "8×25 + 6×25")
}

func TestComputePayroll_ErroresDeEntrada(t *testing.T) {
	e := newTestEnv(testNow)

	_, err := e.svc.ComputePayroll(context.Background(), "no-existe", testStart, testEnd)
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)

	company := e.addCompany(entity.PaymentCycleMonthly)
	_, err = e.svc.ComputePayroll(context.Background(), company.ID, testEnd, testStart)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "rango invertido")

	company.Status = entity.CompanyStatusSuspended
	_, err = e.svc.ComputePayroll(context.Background(), company.ID, testStart, testEnd)
	assert.ErrorIs(t, err, domain.ErrForbidden, "empresa suspendida no corre nómina")
}

func TestComputePayroll_GateBloqueaLaCorrida(t *testing.T) {
	e := newTestEnv(testNow)
	company := e.addCompany(entity.PaymentCycleMonthly)
	e.gate.canErr = domain.ErrPaymentLimitReached

	_, err := e.svc.ComputePayroll(context.Background(), company.ID, testStart, testEnd)

	assert.ErrorIs(t, err, domain.ErrPaymentLimitReached)
	assert.Equal(t, 0, e.gate.refreshCalls)
}

func TestComputePayroll_ReintentaTrasColisionDeUnicidad(t *testing.T) {
	e := newTestEnv(testNow)
	company := e.addCompany(entity.PaymentCycleMonthly)
	emp := e.addEmployee(company.ID, "")
	day := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)
	log := e.addApprovedLog(emp.ID, day, "8")

	// Otra corrida confirma primero un pago pendiente del mismo día con otro log.
	winnerLog := e.addApprovedLog(emp.ID, day.Add(-2*time.Hour), "2")
	winnerLog.Status = entity.TimeLogStatusPaid
	e.payments.dupWinner = &entity.Payment{
		ID:           uuid.New().String(),
		EmployeeID:   emp.ID,
		PeriodStart:  time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		PeriodEnd:    time.Date(2026, 3, 5, 23, 59, 59, 999000000, time.UTC),
		Amount:       d("50"),
		RegularHours: d("2"),
		BonusHours:   decimal.Zero,
		HourlyRate:   d("25"),
		TimeLogIDs:   []string{winnerLog.ID},
		Status:       entity.PaymentStatusPending,
	}

	result, err := e.svc.ComputePayroll(context.Background(), company.ID, testStart, testEnd)

	require.NoError(t, err)
	assert.Equal(t, dto.PayrollOutcomeUpdated, result.Results[0].Outcome,
		"el reintento toma la rama de corrección contra el pago ganador")
	require.Len(t, e.payments.m, 1)
	for _, p := range e.payments.m {
		assert.ElementsMatch(t, []string{winnerLog.ID, log.ID}, p.TimeLogIDs)
		assert.True(t, p.Amount.Equal(d("250")), "2 + 8 horas × 25, fue %s", p.Amount)
	}
}

func TestRunCycle_VentanasPorCiclo(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	t.Run("daily cubre el día de hoy completo", func(t *testing.T) {
		e := newTestEnv(now)
		company := e.addCompany(entity.PaymentCycleDaily)

		result, err := e.svc.RunCycle(context.Background(), company.ID)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), result.PeriodStart)
		assert.Equal(t, time.Date(2026, 3, 10, 23, 59, 59, 999000000, time.UTC), result.PeriodEnd)
	})

	t.Run("weekly cubre los últimos 7 días", func(t *testing.T) {
		e := newTestEnv(now)
		company := e.addCompany(entity.PaymentCycleWeekly)

		result, err := e.svc.RunCycle(context.Background(), company.ID)

		require.NoError(t, err)
		assert.Equal(t, now.AddDate(0, 0, -7), result.PeriodStart)
		assert.Equal(t, now, result.PeriodEnd)
	})

	t.Run("monthly cubre el mes calendario anterior", func(t *testing.T) {
		e := newTestEnv(now)
		company := e.addCompany(entity.PaymentCycleMonthly)

		result, err := e.svc.RunCycle(context.Background(), company.ID)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), result.PeriodStart)
		assert.Equal(t, time.Date(2026, 2, 28, 23, 59, 59, 999000000, time.UTC), result.PeriodEnd)
	})
}

func TestReceipt_ValidaTenant(t *testing.T) {
	e := newTestEnv(testNow)
	company := e.addCompany(entity.PaymentCycleMonthly)
	other := e.addCompany(entity.PaymentCycleMonthly)
	emp := e.addEmployee(company.ID, "")
	e.addApprovedLog(emp.ID, time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC), "8")

	_, err := e.svc.ComputePayroll(context.Background(), company.ID, testStart, testEnd)
	require.NoError(t, err)
	var payID string
	for id := range e.payments.m {
		payID = id
	}

	pdf, err := e.svc.Receipt(context.Background(), company.ID, payID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	_, err = e.svc.Receipt(context.Background(), other.ID, payID)
	assert.ErrorIs(t, err, domain.ErrForbidden, "el pago pertenece a otra empresa")
}
