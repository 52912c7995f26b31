package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/domain"
)

// domainError mapea un error de dominio a su status HTTP y código estable.
// Los códigos son parte del contrato de la API: los clientes deciden por
// código, no por mensaje.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrCompanyNotFound):
		return respond(c, fiber.StatusNotFound, "COMPANY_NOT_FOUND", "empresa no encontrada")
	case errors.Is(err, domain.ErrUserNotFound):
		return respond(c, fiber.StatusNotFound, "USER_NOT_FOUND", "usuario no encontrado")
	case errors.Is(err, domain.ErrNotFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado")
	case errors.Is(err, domain.ErrDuplicate):
		return respond(c, fiber.StatusConflict, "DUPLICATE", "el recurso ya existe")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return respond(c, fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado")
	case errors.Is(err, domain.ErrInvalidInput):
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "entrada inválida")
	case errors.Is(err, domain.ErrUnauthorized):
		return respond(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas")
	case errors.Is(err, domain.ErrForbidden):
		return respond(c, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado")
	case errors.Is(err, domain.ErrInvalidPlan):
		return respond(c, fiber.StatusBadRequest, "INVALID_PLAN", "plan desconocido o transición ilegal")
	case errors.Is(err, domain.ErrInvalidState):
		return respond(c, fiber.StatusConflict, "INVALID_STATE", "transición inválida para el estado actual")
	case errors.Is(err, domain.ErrEmployeeLimitReached):
		return respond(c, fiber.StatusForbidden, "EMPLOYEE_LIMIT_REACHED", "límite de empleados del plan alcanzado")
	case errors.Is(err, domain.ErrPaymentLimitReached):
		return respond(c, fiber.StatusForbidden, "PAYMENT_LIMIT_REACHED", "límite de pagos mensuales del plan alcanzado")
	case errors.Is(err, domain.ErrEmployeeCountExceedsPlan):
		return respond(c, fiber.StatusConflict, "EMPLOYEE_COUNT_EXCEEDS_LIMIT", "la cantidad de empleados excede el límite del plan destino")
	case errors.Is(err, domain.ErrPaidLogImmutable):
		return respond(c, fiber.StatusConflict, "PAID_LOG_IMMUTABLE", "un registro de tiempo pagado es inmutable")
	default:
		return respond(c, fiber.StatusInternalServerError, "INTERNAL", err.Error())
	}
}

func respond(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}
