package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/granja-pro/internal/application/dto"
	"github.com/tu-usuario/granja-pro/internal/application/session"
	"github.com/tu-usuario/granja-pro/internal/domain"
	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/pkg/metrics"
)

// SessionHandler expone el arranque de sesión, el cambio de negocio activo y la
// navegación visible.
type SessionHandler struct {
	manager *session.Manager
}

// NewSessionHandler construye el handler de sesión.
func NewSessionHandler(manager *session.Manager) *SessionHandler {
	return &SessionHandler{manager: manager}
}

// sessionFailedMessage mensaje fijo para el cliente; el detalle (texto del driver,
// tablas) se queda en los logs del manager, nunca viaja en la respuesta.
const sessionFailedMessage = "no se pudo resolver la sesión"

func toSessionResponse(snap session.Snapshot) dto.SessionResponse {
	resp := dto.SessionResponse{
		Loaded:     snap.Loaded,
		Resolving:  !snap.Loaded,
		Role:       snap.Role,
		Businesses: dto.ToBusinessResponses(snap.Businesses),
	}
	if snap.Err != nil {
		resp.Error = sessionFailedMessage
	}
	if snap.Profile != nil {
		resp.PrimaryRole = snap.Profile.Role
	}
	if snap.Active != nil {
		active := dto.ToBusinessResponse(snap.Active)
		resp.ActiveBusiness = &active
	}
	if snap.Permissions != nil {
		resp.Permissions = make(map[string]bool, len(snap.Permissions))
		for f, allowed := range snap.Permissions {
			resp.Permissions[string(f)] = allowed
		}
	}
	for _, f := range snap.AllowedFeatures() {
		resp.AllowedFeatures = append(resp.AllowedFeatures, string(f))
	}
	resp.NeedsOnboarding = snap.Loaded && snap.Err == nil &&
		resp.PrimaryRole == entity.RoleOwner && len(snap.Businesses) == 0
	return resp
}

// Resolve godoc
// @Summary      Arranque de sesión: resolver rol, negocios y permisos
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/session [post]
func (h *SessionHandler) Resolve(c *fiber.Ctx) error {
	metrics.SessionResolveCounter.Inc()
	snap, err := h.manager.SignIn(c.Context(), session.AuthUser{ID: GetUserID(c), Email: GetEmail(c)})
	if err != nil {
		if errors.Is(err, domain.ErrNoAccess) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NO_ACCESS", Message: err.Error()})
		}
		resp := toSessionResponse(snap)
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}
	return c.JSON(toSessionResponse(snap))
}

// Get godoc
// @Summary      Instantánea de la sesión vigente
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	snap, ok := h.manager.Snapshot(GetUserID(c))
	if !ok {
		return c.JSON(dto.SessionResponse{Businesses: []dto.BusinessResponse{}})
	}
	return c.JSON(toSessionResponse(snap))
}

// Refresh godoc
// @Summary      Reintentar el arranque de sesión tras un fallo
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/session/refresh [post]
func (h *SessionHandler) Refresh(c *fiber.Ctx) error {
	snap, err := h.manager.Refresh(c.Context(), session.AuthUser{ID: GetUserID(c), Email: GetEmail(c)})
	if err != nil {
		if errors.Is(err, domain.ErrNoAccess) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NO_ACCESS", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(toSessionResponse(snap))
	}
	return c.JSON(toSessionResponse(snap))
}

// SignOut godoc
// @Summary      Cerrar sesión (limpia el estado en servidor, no la preferencia durable)
// @Tags         session
// @Success      204
// @Router       /api/session [delete]
func (h *SessionHandler) SignOut(c *fiber.Ctx) error {
	h.manager.SignOut(GetUserID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// Switch godoc
// @Summary      Cambiar el negocio activo
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SwitchBusinessRequest  true  "business_id"
// @Success      200   {object}  dto.SessionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/session/switch [post]
func (h *SessionHandler) Switch(c *fiber.Ctx) error {
	var in dto.SwitchBusinessRequest
	if ok, resp := parseAndValidate(c, &in); !ok {
		return resp
	}
	snap, err := h.manager.SwitchActive(c.Context(), GetUserID(c), in.BusinessID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el negocio no está en la lista accesible"})
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SESSION_NOT_READY", Message: "la sesión no está resuelta"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	metrics.BusinessSwitchCounter.Inc()
	return c.JSON(toSessionResponse(snap))
}

// Navigation godoc
// @Summary      Pestañas visibles para la sesión vigente
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.NavigationResponse
// @Router       /api/session/navigation [get]
func (h *SessionHandler) Navigation(c *fiber.Ctx) error {
	snap, ok := h.manager.Snapshot(GetUserID(c))
	if !ok {
		return c.JSON(dto.NavigationResponse{Features: []string{}})
	}
	features := make([]string, 0)
	for _, f := range snap.AllowedFeatures() {
		features = append(features, string(f))
	}
	return c.JSON(dto.NavigationResponse{Features: features})
}
