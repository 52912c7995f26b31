package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/auth"
	"github.com/jhoicas/Nomina-api/internal/application/payroll"
	"github.com/jhoicas/Nomina-api/internal/application/subscription"
	"github.com/jhoicas/Nomina-api/internal/application/usecase"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/plan"
	"github.com/jhoicas/Nomina-api/pkg/clock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC    *usecase.CompanyUseCase
	EmployeeUC   *usecase.EmployeeUseCase
	JobRoleUC    *usecase.JobRoleUseCase
	TimeLogUC    *usecase.TimeLogUseCase
	PayrollSvc   *payroll.Service
	Lifecycle    *subscription.Lifecycle
	Entitlements *subscription.Entitlements
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
	Clock        clock.Clock
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo de planes (público)
	subHandler := NewSubscriptionHandler(deps.Lifecycle, deps.Entitlements, deps.Clock)
	api.Get("/plans", subHandler.Plans)

	// Registro de empresas (público: onboarding)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Post("/companies", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Companies (protegido; operaciones administrativas solo admin)
	companies := protected.Group("/companies")
	companies.Get("/", RequireRole(entity.RoleAdmin), companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", RequireRole(entity.RoleAdmin), companyHandler.Update)
	companies.Post("/:id/suspend", RequireRole(entity.RoleAdmin), companyHandler.Suspend)
	companies.Post("/:id/reactivate", RequireRole(entity.RoleAdmin), companyHandler.Reactivate)

	// Employees (protegido; altas y cambios para admin y gerente)
	employees := protected.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC, deps.JobRoleUC)
	employees.Post("/", RequireRole(entity.RoleAdmin, entity.RoleGerente), employeeHandler.Create)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleGerente), employeeHandler.Update)

	// Job roles (protegido; feature job_roles del plan)
	roles := protected.Group("/job-roles", RequirePlanFeature(plan.FeatureJobRoles, deps.Entitlements))
	roles.Post("/", RequireRole(entity.RoleAdmin, entity.RoleGerente), employeeHandler.CreateJobRole)
	roles.Get("/", employeeHandler.ListJobRoles)

	// Time logs (protegido)
	timelogs := protected.Group("/timelogs")
	timeLogHandler := NewTimeLogHandler(deps.TimeLogUC)
	timelogs.Post("/clock-in", timeLogHandler.ClockIn)
	timelogs.Post("/clock-out", timeLogHandler.ClockOut)
	timelogs.Post("/:id/approve", RequireRole(entity.RoleAdmin, entity.RoleGerente), timeLogHandler.Approve)
	timelogs.Get("/employee/:employeeId", timeLogHandler.ListByEmployee)

	// Payroll (protegido; correr nómina es de admin/gerente)
	payrollGroup := protected.Group("/payroll")
	payrollHandler := NewPayrollHandler(deps.PayrollSvc)
	payrollGroup.Post("/run", RequireRole(entity.RoleAdmin, entity.RoleGerente), payrollHandler.Run)
	payrollGroup.Post("/cycle", RequireRole(entity.RoleAdmin, entity.RoleGerente), payrollHandler.RunCycle)

	// Payments (protegido)
	payments := protected.Group("/payments")
	payments.Get("/", payrollHandler.ListPayments)
	payments.Get("/:id/receipt",
		RequirePlanFeature(plan.FeaturePDFReceipts, deps.Entitlements),
		payrollHandler.Receipt,
	)

	// Subscription (protegido; administración del plan solo admin)
	subs := protected.Group("/subscription")
	subs.Get("/", subHandler.Get)
	subs.Get("/entitlements", subHandler.Entitlements)
	subs.Put("/plan", RequireRole(entity.RoleAdmin), subHandler.ChangePlan)
	subs.Post("/cancel", RequireRole(entity.RoleAdmin), subHandler.Cancel)
	subs.Post("/reactivate", RequireRole(entity.RoleAdmin), subHandler.Reactivate)
	subs.Post("/suspend", RequireRole(entity.RoleAdmin), subHandler.Suspend)
	subs.Post("/unsuspend", RequireRole(entity.RoleAdmin), subHandler.Unsuspend)
}
