package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/granja-pro/internal/application/dto"
	"github.com/tu-usuario/granja-pro/internal/application/usecase"
	"github.com/tu-usuario/granja-pro/internal/domain"
)

// HealthHandler gestión de registros sanitarios del negocio activo.
type HealthHandler struct {
	uc *usecase.HealthUseCase
}

// NewHealthHandler construye el handler de registros sanitarios.
func NewHealthHandler(uc *usecase.HealthUseCase) *HealthHandler {
	return &HealthHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar intervención sanitaria
// @Tags         health
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateHealthRecordRequest  true  "datos del registro"
// @Success      201   {object}  dto.HealthRecordResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/health-records [post]
func (h *HealthHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateHealthRecordRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	out, err := h.uc.Create(c.Context(), GetBusinessID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el animal no existe en este negocio"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Registros sanitarios del negocio activo
// @Tags         health
// @Produce      json
// @Success      200  {array}  dto.HealthRecordResponse
// @Router       /api/health-records [get]
func (h *HealthHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListByBusiness(c.Context(), GetBusinessID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListByGoat godoc
// @Summary      Historial sanitario de un animal
// @Tags         health
// @Produce      json
// @Param        goatId  path  string  true  "goat_id"
// @Success      200  {array}  dto.HealthRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/health-records/goat/{goatId} [get]
func (h *HealthHandler) ListByGoat(c *fiber.Ctx) error {
	out, err := h.uc.ListByGoat(c.Context(), GetBusinessID(c), c.Params("goatId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el animal no existe en este negocio"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
