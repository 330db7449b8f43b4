package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/granja-pro/internal/application/dto"
	"github.com/tu-usuario/granja-pro/internal/application/usecase"
)

// ExpenseHandler gestión de gastos del negocio activo.
type ExpenseHandler struct {
	uc *usecase.ExpenseUseCase
}

// NewExpenseHandler construye el handler de gastos.
func NewExpenseHandler(uc *usecase.ExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar gasto (sin goat_id es gasto general, repartido a prorrata)
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "datos del gasto"
// @Success      201   {object}  dto.ExpenseResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
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
// @Summary      Gastos del negocio activo
// @Tags         expenses
// @Produce      json
// @Success      200  {array}  dto.ExpenseResponse
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetBusinessID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
