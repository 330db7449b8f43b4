package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/granja-pro/internal/application/dto"
)

var validate = validator.New()

// parseAndValidate decodifica el cuerpo JSON y valida los tags `validate` del DTO.
// Devuelve una respuesta 400 ya escrita si algo falla; el handler debe retornar tal cual.
func parseAndValidate(c *fiber.Ctx, v any) (ok bool, resp error) {
	if err := c.BodyParser(v); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo inválido",
		})
	}
	if err := validate.Struct(v); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: err.Error(),
		})
	}
	return true, nil
}
