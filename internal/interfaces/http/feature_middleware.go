package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/granja-pro/internal/application/dto"
	"github.com/tu-usuario/granja-pro/internal/domain/permission"
)

// Locals key para el negocio activo, puesto por RequireFeature.
const LocalBusinessID = "business_id"

// sessionGate es el contrato mínimo que necesita el middleware para decidir acceso.
// Lo implementa *session.Manager; el uso de interfaz evita el import circular.
type sessionGate interface {
	Gate(userID string) (role string, perms map[permission.Feature]bool, businessID string, ok bool)
}

// RequireFeature devuelve un middleware Fiber que verifica si la sesión del usuario
// puede operar la pestaña indicada en su negocio activo. Debe usarse DESPUÉS de
// AuthMiddleware (necesita LocalUserID).
//
// Comportamiento:
//   - 401 Unauthorized → no hay user_id en el contexto.
//   - 409 Conflict     → la sesión no está resuelta o no hay negocio activo;
//     el cliente debe completar el arranque de sesión primero.
//   - 403 Forbidden    → la pestaña está deshabilitada para el rol efectivo.
//     Un permiso ausente del mapa resuelve por la política, nunca
//     por negación silenciosa.
func RequireFeature(feature permission.Feature, gate sessionGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}

		role, perms, businessID, ok := gate.Gate(userID)
		if !ok {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "SESSION_NOT_READY",
				Message: "la sesión no está resuelta o no hay negocio activo",
			})
		}

		if !permission.IsAllowed(feature, role, perms) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FEATURE_DISABLED",
				Message: "la pestaña '" + string(feature) + "' no está habilitada para este rol",
			})
		}

		c.Locals(LocalBusinessID, businessID)
		return c.Next()
	}
}

// GetBusinessID devuelve el negocio activo del contexto (después de RequireFeature).
func GetBusinessID(c *fiber.Ctx) string {
	v := c.Locals(LocalBusinessID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
