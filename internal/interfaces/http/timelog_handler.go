package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/usecase"
)

// TimeLogHandler maneja la captura de tiempo: clock-in, clock-out y aprobación.
type TimeLogHandler struct {
	uc *usecase.TimeLogUseCase
}

// NewTimeLogHandler construye el handler inyectando el caso de uso.
func NewTimeLogHandler(uc *usecase.TimeLogUseCase) *TimeLogHandler {
	return &TimeLogHandler{uc: uc}
}

// ClockIn abre un turno para el empleado.
func (h *TimeLogHandler) ClockIn(c *fiber.Ctx) error {
	var in dto.ClockInRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.EmployeeID == "" {
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "employee_id es requerido")
	}
	out, err := h.uc.ClockIn(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ClockOut cierra el turno abierto del empleado.
func (h *TimeLogHandler) ClockOut(c *fiber.Ctx) error {
	var in dto.ClockOutRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.EmployeeID == "" {
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "employee_id es requerido")
	}
	out, err := h.uc.ClockOut(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Approve aprueba un registro pendiente, dejándolo elegible para nómina.
func (h *TimeLogHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ListByEmployee lista los registros de un empleado.
func (h *TimeLogHandler) ListByEmployee(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	out, err := h.uc.ListByEmployee(GetCompanyID(c), c.Params("employeeId"), limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
