package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Nomina-api/internal/application/auth"
	apppayroll "github.com/jhoicas/Nomina-api/internal/application/payroll"
	"github.com/jhoicas/Nomina-api/internal/application/subscription"
	"github.com/jhoicas/Nomina-api/internal/application/usecase"
	"github.com/jhoicas/Nomina-api/internal/infrastructure/notifier"
	infrapdf "github.com/jhoicas/Nomina-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Nomina-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Nomina-api/internal/interfaces/http"
	"github.com/jhoicas/Nomina-api/pkg/clock"
	"github.com/jhoicas/Nomina-api/pkg/config"
	"github.com/jhoicas/Nomina-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	jobRoleRepo := postgres.NewJobRoleRepository(pool)
	timeLogRepo := postgres.NewTimeLogRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	clk := clock.System{}
	events := notifier.NewZerologNotifier(log.Zerolog())

	entitlements := subscription.NewEntitlements(subscriptionRepo, employeeRepo, paymentRepo, clk, log.Zerolog())
	lifecycle := subscription.NewLifecycle(subscriptionRepo, employeeRepo, events, clk, log.Zerolog())

	receipts := infrapdf.NewMarotoReceiptGenerator()
	payrollSvc := apppayroll.NewService(
		companyRepo, employeeRepo, jobRoleRepo, timeLogRepo, paymentRepo,
		txRunner, entitlements, events, receipts, clk, log.Zerolog(),
	)

	companyUC := usecase.NewCompanyUseCase(companyRepo, lifecycle, usecase.CompanyDefaults{
		MaxDailyHours:       cfg.Payroll.DefaultMaxDailyHours,
		BonusRateMultiplier: cfg.Payroll.DefaultBonusRateMultiplier,
	}, clk)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo, jobRoleRepo, entitlements, clk)
	jobRoleUC := usecase.NewJobRoleUseCase(jobRoleRepo, entitlements, clk)
	timeLogUC := usecase.NewTimeLogUseCase(timeLogRepo, employeeRepo, companyRepo, clk)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:    companyUC,
		EmployeeUC:   employeeUC,
		JobRoleUC:    jobRoleUC,
		TimeLogUC:    timeLogUC,
		PayrollSvc:   payrollSvc,
		Lifecycle:    lifecycle,
		Entitlements: entitlements,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
		Clock:        clk,
	})

	// Barrido periódico: marca suscripciones vencidas (trial terminado o
	// período cerrado sin renovación automática).
	sweepCtx, stopSweep := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(cfg.Billing.ExpireSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				n, err := lifecycle.ExpireDue(sweepCtx)
				if err != nil {
					log.Error().Err(err).Msg("barrido de suscripciones vencidas")
					continue
				}
				if n > 0 {
					log.Info().Int("expiradas", n).Msg("suscripciones marcadas como vencidas")
				}
			}
		}
	}()

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
