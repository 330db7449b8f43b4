// Package session resuelve el rol primario del usuario, mantiene el estado de sesión
// (negocios accesibles, negocio activo, rol y permisos efectivos) y coordina las
// operaciones que lo mutan. Es el único dueño del estado mutable de sesión.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/granja-pro/internal/domain"
	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/internal/domain/repository"
	"github.com/tu-usuario/granja-pro/pkg/logger"
)

// AuthUser identidad autenticada mínima que necesita el resolver.
type AuthUser struct {
	ID    string
	Email string
}

// Resolver determina el rol primario del usuario y carga/repara su perfil.
type Resolver struct {
	profiles repository.ProfileRepository
	roles    repository.BusinessRoleRepository
	log      *logger.Logger
}

// NewResolver construye el resolver de roles.
func NewResolver(profiles repository.ProfileRepository, roles repository.BusinessRoleRepository, log *logger.Logger) *Resolver {
	return &Resolver{profiles: profiles, roles: roles, log: log}
}

// DeriveRole deriva el rol primario a partir del conjunto completo de bindings:
// cualquier binding owner ⇒ owner; todos caretaker (no vacío) ⇒ caretaker;
// cero bindings ⇒ "" (decide el fallback de Resolve).
func DeriveRole(bindings []*entity.BusinessRole) string {
	if len(bindings) == 0 {
		return ""
	}
	for _, b := range bindings {
		if b.Role == entity.RoleOwner {
			return entity.RoleOwner
		}
	}
	return entity.RoleCaretaker
}

// Resolve carga los bindings del usuario, deriva el rol primario y obtiene (o crea)
// el perfil con semántica create-or-get idempotente:
//
//   - cero bindings: usa el rol del perfil existente; sin perfil, default owner;
//   - creación concurrente (violación de constraint único): re-consulta el existente;
//   - rol almacenado distinto del derivado: se corrige en el almacén;
//   - si tras todos los fallbacks no hay perfil: domain.ErrProfileUnavailable
//     (el llamador debe detenerse, nunca continuar a la carga de negocios).
func (r *Resolver) Resolve(ctx context.Context, user AuthUser) (*entity.Profile, []*entity.BusinessRole, error) {
	if user.ID == "" {
		return nil, nil, domain.ErrInvalidInput
	}

	bindings, err := r.roles.ListByUserID(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("cargar bindings del usuario: %w", err)
	}

	derived := DeriveRole(bindings)

	profile, err := r.profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("consultar perfil: %w", err)
	}

	if derived == "" {
		// Sin bindings: el rol almacenado manda; sin perfil previo, default owner.
		if profile != nil {
			derived = profile.Role
		} else {
			derived = entity.RoleOwner
		}
	}

	if profile == nil {
		profile, err = r.createOrGet(ctx, user.ID, derived)
		if err != nil {
			return nil, nil, err
		}
	}
	if profile == nil {
		return nil, nil, domain.ErrProfileUnavailable
	}

	if profile.Role != derived {
		// Valor almacenado obsoleto: corregirlo. La corrección es bookkeeping;
		// si falla, la sesión continúa con el rol derivado en memoria.
		if err := r.profiles.UpdateRole(ctx, profile.ID, derived); err != nil {
			r.log.Warn().Err(err).
				Str("user_id", user.ID).
				Str("stored", profile.Role).
				Str("derived", derived).
				Msg("no se pudo corregir el rol almacenado del perfil")
		}
		profile.Role = derived
	}

	return profile, bindings, nil
}

// createOrGet inserta el perfil; si otra resolución concurrente ganó la carrera
// (unique violation sobre user_id), re-consulta el registro existente.
func (r *Resolver) createOrGet(ctx context.Context, userID, role string) (*entity.Profile, error) {
	p := &entity.Profile{
		ID:        uuid.New().String(),
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now(),
	}
	err := r.profiles.Create(ctx, p)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, domain.ErrDuplicate) {
		existing, gerr := r.profiles.GetByUserID(ctx, userID)
		if gerr != nil {
			return nil, fmt.Errorf("re-consultar perfil tras conflicto: %w", gerr)
		}
		if existing == nil {
			return nil, domain.ErrProfileUnavailable
		}
		return existing, nil
	}
	return nil, fmt.Errorf("crear perfil: %w", err)
}
