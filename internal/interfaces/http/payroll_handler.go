package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/payroll"
	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// PayrollHandler maneja las corridas de nómina y la consulta de pagos.
type PayrollHandler struct {
	svc *payroll.Service
}

// NewPayrollHandler construye el handler inyectando el motor de nómina.
func NewPayrollHandler(svc *payroll.Service) *PayrollHandler {
	return &PayrollHandler{svc: svc}
}

// Run corre la nómina de la empresa del token sobre un rango explícito.
func (h *PayrollHandler) Run(c *fiber.Ctx) error {
	var in dto.RunPayrollRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "start_date y end_date son requeridos")
	}
	out, err := h.svc.ComputePayroll(c.Context(), GetCompanyID(c), in.StartDate, in.EndDate)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// RunCycle corre la nómina con la ventana implícita del ciclo de la empresa.
func (h *PayrollHandler) RunCycle(c *fiber.Ctx) error {
	out, err := h.svc.RunCycle(c.Context(), GetCompanyID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ListPayments lista los pagos de la empresa en un rango (query start, end en RFC 3339).
func (h *PayrollHandler) ListPayments(c *fiber.Ctx) error {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "start inválido (RFC 3339)")
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "end inválido (RFC 3339)")
	}
	payments, err := h.svc.ListPayments(c.Context(), GetCompanyID(c), start, end)
	if err != nil {
		return domainError(c, err)
	}
	items := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		items = append(items, paymentToResponse(p))
	}
	return c.JSON(dto.PaymentListResponse{Items: items})
}

// Receipt genera y descarga el desprendible PDF de un pago.
func (h *PayrollHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, err := h.svc.Receipt(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="comprobante-nomina.pdf"`)
	return c.Send(pdfBytes)
}

func paymentToResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:                  p.ID,
		EmployeeID:          p.EmployeeID,
		PeriodStart:         p.PeriodStart,
		PeriodEnd:           p.PeriodEnd,
		Amount:              p.Amount,
		RegularHours:        p.RegularHours,
		BonusHours:          p.BonusHours,
		HourlyRate:          p.HourlyRate,
		BonusRateMultiplier: p.BonusRateMultiplier,
		TimeLogIDs:          p.TimeLogIDs,
		Status:              p.Status,
		CreatedAt:           p.CreatedAt,
	}
}
