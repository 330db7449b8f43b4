package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/granja-pro/internal/application/business"
	"github.com/tu-usuario/granja-pro/internal/application/dto"
	"github.com/tu-usuario/granja-pro/internal/application/session"
	"github.com/tu-usuario/granja-pro/internal/domain"
	"github.com/tu-usuario/granja-pro/pkg/metrics"
)

// BusinessHandler crea, actualiza y borra negocios a través del manager de sesión
// para que el estado en memoria quede consistente sin recarga completa.
type BusinessHandler struct {
	manager *session.Manager
}

// NewBusinessHandler construye el handler de negocios.
func NewBusinessHandler(manager *session.Manager) *BusinessHandler {
	return &BusinessHandler{manager: manager}
}

// Create godoc
// @Summary      Crear negocio (el creador queda como owner)
// @Tags         businesses
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBusinessRequest  true  "datos del negocio"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/businesses [post]
func (h *BusinessHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBusinessRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	snap, err := h.manager.CreateBusiness(c.Context(), GetUserID(c), business.CreateInput{
		Name:               in.Name,
		Description:        in.Description,
		Address:            in.Address,
		PaymentModelType:   in.PaymentModelType,
		PaymentModelAmount: in.PaymentModelAmount,
	})
	if err != nil {
		var cbe *domain.CreateBusinessError
		if errors.As(err, &cbe) {
			// Error propio del formulario de creación: el cliente lo muestra en el
			// formulario, no como fallo de sesión.
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "CREATE_FAILED", Message: cbe.Error()})
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SESSION_NOT_READY", Message: "la sesión no está resuelta"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	metrics.BusinessCreateCounter.Inc()
	return c.Status(fiber.StatusCreated).JSON(toSessionResponse(snap))
}

// Update godoc
// @Summary      Actualizar ajustes del negocio (merge parcial, solo el creador)
// @Tags         businesses
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "business_id"
// @Param        body  body  dto.UpdateBusinessRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.BusinessResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/businesses/{id} [put]
func (h *BusinessHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBusinessRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	updated, err := h.manager.UpdateBusinessSettings(c.Context(), GetUserID(c), c.Params("id"), in.ToBusinessUpdate())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el negocio no existe"})
		}
		if errors.Is(err, domain.ErrNotAuthorized) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NOT_CREATOR", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToBusinessResponse(updated))
}

// Delete godoc
// @Summary      Borrar negocio en cascada (solo el creador)
// @Tags         businesses
// @Param        id  path  string  true  "business_id"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/businesses/{id} [delete]
func (h *BusinessHandler) Delete(c *fiber.Ctx) error {
	err := h.manager.DeleteBusiness(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el negocio no existe"})
		}
		if errors.Is(err, domain.ErrNotAuthorized) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NOT_CREATOR", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
