package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/usecase"
)

// EmployeeHandler maneja las peticiones HTTP para empleados y cargos.
type EmployeeHandler struct {
	uc     *usecase.EmployeeUseCase
	roleUC *usecase.JobRoleUseCase
}

// NewEmployeeHandler construye el handler inyectando los casos de uso.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase, roleUC *usecase.JobRoleUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc, roleUC: roleUC}
}

// Create da de alta un empleado de la empresa del token.
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.FirstName == "" {
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "first_name es requerido")
	}
	out, err := h.uc.Create(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene un empleado de la empresa del token.
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Update actualiza un empleado.
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// List lista empleados de la empresa del token.
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	out, err := h.uc.List(GetCompanyID(c), limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// CreateJobRole crea un cargo con sus tarifas.
func (h *EmployeeHandler) CreateJobRole(c *fiber.Ctx) error {
	var in dto.CreateJobRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Name == "" {
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "name es requerido")
	}
	out, err := h.roleUC.Create(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListJobRoles lista los cargos de la empresa del token.
func (h *EmployeeHandler) ListJobRoles(c *fiber.Ctx) error {
	out, err := h.roleUC.List(GetCompanyID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
