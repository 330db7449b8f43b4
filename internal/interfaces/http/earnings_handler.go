package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/granja-pro/internal/application/dto"
	"github.com/tu-usuario/granja-pro/internal/application/earnings"
	"github.com/tu-usuario/granja-pro/internal/domain"
	"github.com/tu-usuario/granja-pro/internal/infrastructure/pdf"
)

// EarningsHandler expone el cálculo de ganancias de cuidadores y su reporte PDF.
type EarningsHandler struct {
	svc *earnings.Service
	gen *pdf.EarningsReportGenerator
}

// NewEarningsHandler construye el handler de ganancias.
func NewEarningsHandler(svc *earnings.Service, gen *pdf.EarningsReportGenerator) *EarningsHandler {
	return &EarningsHandler{svc: svc, gen: gen}
}

// Get godoc
// @Summary      Ganancias acumuladas de un cuidador según el modelo de pago vigente
// @Tags         earnings
// @Produce      json
// @Param        caretakerId  path  string  true  "caretaker_id"
// @Success      200  {object}  dto.EarningsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/earnings/{caretakerId} [get]
func (h *EarningsHandler) Get(c *fiber.Ctx) error {
	result, err := h.svc.ForCaretaker(c.Context(), GetBusinessID(c), c.Params("caretakerId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el cuidador no existe en este negocio"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ToEarningsResponse(result))
}

// Report godoc
// @Summary      Reporte PDF de ganancias de un cuidador
// @Tags         earnings
// @Produce      application/pdf
// @Param        caretakerId  path  string  true  "caretaker_id"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/earnings/{caretakerId} [get]
func (h *EarningsHandler) Report(c *fiber.Ctx) error {
	b, ct, result, err := h.svc.Report(c.Context(), GetBusinessID(c), c.Params("caretakerId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el cuidador no existe en este negocio"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	doc, err := h.gen.Generate(c.Context(), b, ct, result)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_FAILED", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="ganancias_%s.pdf"`, ct.ID))
	return c.Send(doc)
}
