package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/granja-pro/internal/application/dto"
	"github.com/tu-usuario/granja-pro/internal/application/usecase"
	"github.com/tu-usuario/granja-pro/internal/domain"
)

// GoatHandler gestión de animales del negocio activo.
type GoatHandler struct {
	uc *usecase.GoatUseCase
}

// NewGoatHandler construye el handler de animales.
func NewGoatHandler(uc *usecase.GoatUseCase) *GoatHandler {
	return &GoatHandler{uc: uc}
}

// Create godoc
// @Summary      Alta de animal
// @Tags         goats
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGoatRequest  true  "datos del animal"
// @Success      201   {object}  dto.GoatResponse
// @Router       /api/goats [post]
func (h *GoatHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateGoatRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	out, err := h.uc.Create(c.Context(), GetBusinessID(c), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Animales del negocio activo
// @Tags         goats
// @Produce      json
// @Success      200  {array}  dto.GoatResponse
// @Router       /api/goats [get]
func (h *GoatHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetBusinessID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de un animal
// @Tags         goats
// @Produce      json
// @Param        id  path  string  true  "goat_id"
// @Success      200  {object}  dto.GoatResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/goats/{id} [get]
func (h *GoatHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetBusinessID(c), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el animal no existe en este negocio"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar un animal (incluye venta)
// @Tags         goats
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "goat_id"
// @Param        body  body  dto.UpdateGoatRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.GoatResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/goats/{id} [put]
func (h *GoatHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateGoatRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	out, err := h.uc.Update(c.Context(), GetBusinessID(c), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el animal no existe en este negocio"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "marcar como vendido requiere precio de venta"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// AddWeight godoc
// @Summary      Registrar peso de un animal
// @Tags         goats
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "goat_id"
// @Param        body  body  dto.CreateWeightRequest  true  "peso y fecha"
// @Success      201   {object}  dto.WeightResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/goats/{id}/weights [post]
func (h *GoatHandler) AddWeight(c *fiber.Ctx) error {
	var in dto.CreateWeightRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	out, err := h.uc.AddWeight(c.Context(), GetBusinessID(c), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el animal no existe en este negocio"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListWeights godoc
// @Summary      Historial de pesos de un animal
// @Tags         goats
// @Produce      json
// @Param        id  path  string  true  "goat_id"
// @Success      200  {array}  dto.WeightResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/goats/{id}/weights [get]
func (h *GoatHandler) ListWeights(c *fiber.Ctx) error {
	out, err := h.uc.ListWeights(c.Context(), GetBusinessID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el animal no existe en este negocio"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
