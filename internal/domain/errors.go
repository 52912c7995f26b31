package domain

import "errors"

// Errores de dominio (sin dependencias externas). Todos son condiciones
// recuperables de cara al llamador; solo la indisponibilidad del store se
// propaga como falla de servidor.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrCompanyNotFound    = errors.New("empresa no encontrada")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Suscripciones y entitlements
	ErrInvalidPlan              = errors.New("plan desconocido o transición ilegal")
	ErrInvalidState             = errors.New("transición inválida para el estado actual")
	ErrEmployeeLimitReached     = errors.New("límite de empleados del plan alcanzado")
	ErrPaymentLimitReached      = errors.New("límite de pagos mensuales del plan alcanzado")
	ErrEmployeeCountExceedsPlan = errors.New("la cantidad de empleados excede el límite del plan destino")

	// Nómina
	ErrPaidLogImmutable = errors.New("un registro de tiempo pagado es inmutable")
)
