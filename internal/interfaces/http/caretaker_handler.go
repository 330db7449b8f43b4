package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/granja-pro/internal/application/auth"
	"github.com/tu-usuario/granja-pro/internal/application/dto"
	"github.com/tu-usuario/granja-pro/internal/application/usecase"
	"github.com/tu-usuario/granja-pro/internal/domain"
)

// CaretakerHandler gestión del staff de cuidadores del negocio activo.
type CaretakerHandler struct {
	uc     *usecase.CaretakerUseCase
	authUC *auth.UseCase
}

// NewCaretakerHandler construye el handler de cuidadores.
func NewCaretakerHandler(uc *usecase.CaretakerUseCase, authUC *auth.UseCase) *CaretakerHandler {
	return &CaretakerHandler{uc: uc, authUC: authUC}
}

// Create godoc
// @Summary      Alta de cuidador en el negocio activo
// @Tags         caretakers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCaretakerRequest  true  "datos del cuidador"
// @Success      201   {object}  dto.CaretakerResponse
// @Router       /api/caretakers [post]
func (h *CaretakerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCaretakerRequest
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
// @Summary      Cuidadores del negocio activo
// @Tags         caretakers
// @Produce      json
// @Success      200  {array}  dto.CaretakerResponse
// @Router       /api/caretakers [get]
func (h *CaretakerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetBusinessID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualización parcial de un cuidador
// @Tags         caretakers
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "caretaker_id"
// @Param        body  body  dto.UpdateCaretakerRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.CaretakerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/caretakers/{id} [put]
func (h *CaretakerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCaretakerRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	out, err := h.uc.Update(c.Context(), GetBusinessID(c), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el cuidador no existe en este negocio"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Retirar un cuidador del staff
// @Tags         caretakers
// @Param        id  path  string  true  "caretaker_id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/caretakers/{id} [delete]
func (h *CaretakerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetBusinessID(c), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el cuidador no existe en este negocio"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Invite godoc
// @Summary      Crear cuenta de acceso para un cuidador (devuelve credenciales una vez)
// @Tags         caretakers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InviteCaretakerRequest  true  "caretaker_id, email"
// @Success      201   {object}  dto.InviteCaretakerResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/caretakers/invite [post]
func (h *CaretakerHandler) Invite(c *fiber.Ctx) error {
	var in dto.InviteCaretakerRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	out, err := h.authUC.InviteCaretaker(c.Context(), GetBusinessID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el cuidador no existe en este negocio"})
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "HAS_ACCOUNT", Message: "el cuidador ya tiene cuenta"})
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdatePermissions godoc
// @Summary      Reemplazar los permisos del binding de un cuidador
// @Tags         caretakers
// @Accept       json
// @Param        userId  path  string  true  "user_id del cuidador"
// @Param        body    body  dto.UpdatePermissionsRequest  true  "mapa de permisos"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/caretakers/{userId}/permissions [put]
func (h *CaretakerHandler) UpdatePermissions(c *fiber.Ctx) error {
	var in dto.UpdatePermissionsRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	err := h.uc.UpdatePermissions(c.Context(), c.Params("userId"), GetBusinessID(c), in.Permissions)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el usuario no tiene binding en este negocio"})
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_CARETAKER", Message: "los permisos solo aplican a bindings caretaker"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
