package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
)

// featureChecker es el contrato mínimo que necesita el middleware para
// verificar features del plan. Lo implementa *subscription.Entitlements; el
// uso de interfaz evita el import circular.
type featureChecker interface {
	HasFeature(ctx context.Context, companyID, feature string) (bool, error)
}

// RequirePlanFeature devuelve un middleware Fiber que verifica si el plan de
// la empresa del token incluye el feature. Debe usarse DESPUÉS de
// AuthMiddleware (necesita LocalCompanyID).
//
// Comportamiento:
//   - 403 Forbidden → el plan no incluye el feature o la suscripción no es válida.
//   - 503 Service Unavailable → fallo de infraestructura al consultar.
//   - Sin company_id en el contexto responde 401.
func RequirePlanFeature(feature string, checker featureChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}

		ok, err := checker.HasFeature(c.Context(), companyID, feature)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "ENTITLEMENT_CHECK_FAILED",
				Message: "no se pudo verificar el plan, intente más tarde",
			})
		}

		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FEATURE_NOT_IN_PLAN",
				Message: "el plan vigente no incluye '" + feature + "'",
			})
		}

		return c.Next()
	}
}
