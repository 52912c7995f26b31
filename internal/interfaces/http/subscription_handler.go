package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/subscription"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
	"github.com/jhoicas/Nomina-api/internal/domain/plan"
	"github.com/jhoicas/Nomina-api/pkg/clock"
)

// SubscriptionHandler maneja la suscripción de la empresa del token.
type SubscriptionHandler struct {
	lifecycle *subscription.Lifecycle
	gate      *subscription.Entitlements
	clk       clock.Clock
}

// NewSubscriptionHandler construye el handler inyectando los servicios.
func NewSubscriptionHandler(lifecycle *subscription.Lifecycle, gate *subscription.Entitlements, clk clock.Clock) *SubscriptionHandler {
	return &SubscriptionHandler{lifecycle: lifecycle, gate: gate, clk: clk}
}

// Get devuelve la suscripción de la empresa del token.
func (h *SubscriptionHandler) Get(c *fiber.Ctx) error {
	sub, err := h.lifecycle.Get(c.Context(), GetCompanyID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(h.toResponse(sub))
}

// ChangePlan cambia el plan de la suscripción.
func (h *SubscriptionHandler) ChangePlan(c *fiber.Ctx) error {
	var in dto.ChangePlanRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.PlanID == "" {
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "plan_id es requerido")
	}
	sub, err := h.lifecycle.ChangePlan(c.Context(), GetCompanyID(c), in.PlanID, in.BillingCycle)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(h.toResponse(sub))
}

// Cancel cancela la suscripción.
func (h *SubscriptionHandler) Cancel(c *fiber.Ctx) error {
	sub, err := h.lifecycle.Cancel(c.Context(), GetCompanyID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(h.toResponse(sub))
}

// Reactivate reactiva una suscripción cancelada o expirada.
func (h *SubscriptionHandler) Reactivate(c *fiber.Ctx) error {
	sub, err := h.lifecycle.Reactivate(c.Context(), GetCompanyID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(h.toResponse(sub))
}

// Suspend suspende la suscripción con una razón (operación administrativa).
func (h *SubscriptionHandler) Suspend(c *fiber.Ctx) error {
	var in dto.SuspendRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Reason == "" {
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "reason es requerido")
	}
	sub, err := h.lifecycle.Suspend(c.Context(), GetCompanyID(c), in.Reason)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(h.toResponse(sub))
}

// Unsuspend levanta una suspensión administrativa de la suscripción.
func (h *SubscriptionHandler) Unsuspend(c *fiber.Ctx) error {
	sub, err := h.lifecycle.Unsuspend(c.Context(), GetCompanyID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(h.toResponse(sub))
}

// Entitlements resume lo que el plan vigente permite ahora mismo.
func (h *SubscriptionHandler) Entitlements(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	sub, err := h.lifecycle.Get(c.Context(), companyID)
	if err != nil {
		return domainError(c, err)
	}
	out := dto.EntitlementsResponse{
		CanAddEmployee:    h.gate.CanAddEmployee(c.Context(), companyID) == nil,
		CanProcessPayment: h.gate.CanProcessPayment(c.Context(), companyID) == nil,
		Features:          featureList(sub),
	}
	return c.JSON(out)
}

// Plans devuelve el catálogo de planes en orden de rango.
func (h *SubscriptionHandler) Plans(c *fiber.Ctx) error {
	all := plan.GetAllPlans()
	items := make([]dto.PlanResponse, 0, len(all))
	for _, cfg := range all {
		item := dto.PlanResponse{
			ID:                 cfg.ID,
			Name:               cfg.Name,
			MaxEmployees:       cfg.MaxEmployees,
			MaxMonthlyPayments: cfg.MaxMonthlyPayments,
			Features:           cfg.Features,
		}
		if !cfg.Custom {
			price := cfg.MonthlyPrice
			item.MonthlyPrice = &price
		}
		items = append(items, item)
	}
	return c.JSON(items)
}

func (h *SubscriptionHandler) toResponse(sub *entity.Subscription) dto.SubscriptionResponse {
	now := h.clk.Now()
	out := dto.SubscriptionResponse{
		ID:                 sub.ID,
		CompanyID:          sub.CompanyID,
		PlanID:             sub.PlanID,
		Status:             sub.Status,
		MaxEmployees:       sub.Limits.MaxEmployees,
		MaxMonthlyPayments: sub.Limits.MaxMonthlyPayments,
		Features:           featureList(sub),
		BillingCycle:       sub.Pricing.BillingCycle,
		CurrentPeriodStart: sub.CurrentPeriodStart,
		CurrentPeriodEnd:   sub.CurrentPeriodEnd,
		TrialEndsAt:        sub.TrialEndsAt,
		AutoRenew:          sub.AutoRenew,
		DaysRemaining:      sub.DaysRemaining(now),
		Valid:              sub.IsValid(now),
		EmployeesCount:     sub.Usage.EmployeesCount,
		PaymentsThisMonth:  sub.Usage.PaymentsThisMonth,
	}
	if !sub.Pricing.Custom {
		amount := sub.Pricing.Amount
		out.PriceAmount = &amount
	}
	return out
}

// featureList aplana el set de features a una lista estable para JSON.
func featureList(sub *entity.Subscription) []string {
	ordered := []string{
		plan.FeaturePayroll, plan.FeatureJobRoles, plan.FeaturePDFReceipts,
		plan.FeatureReports, plan.FeatureAPIAccess, plan.FeaturePrioritySupport,
	}
	out := make([]string, 0, len(sub.Limits.Features))
	for _, f := range ordered {
		if sub.Limits.Features[f] {
			out = append(out, f)
		}
	}
	return out
}
