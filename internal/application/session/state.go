package session

import (
	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/internal/domain/permission"
)

// state estado de sesión de un usuario. Todo acceso pasa por el mutex del Manager.
//
// Máquina de estados: Unresolved → Resolving → Resolved | Failed.
// loaded marca Resolved o Failed; solo lo resetean el sign-out y el refresh
// explícito, nunca un error (un load fallido no se reintenta solo).
type state struct {
	profile     *entity.Profile
	bindings    []*entity.BusinessRole
	businesses  []*entity.Business
	active      *entity.Business
	role        string // rol efectivo en el negocio activo ("" = desconocido)
	permissions map[permission.Feature]bool
	loaded      bool
	resolving   bool
	err         error
	// epoch se incrementa en sign-out y refresh; toda continuación asíncrona
	// (backfill, resolución en vuelo) compara su epoch capturado antes de aplicar.
	epoch uint64
}

// Snapshot copia inmutable del estado de sesión para los consumidores HTTP.
type Snapshot struct {
	Profile     *entity.Profile
	Bindings    []*entity.BusinessRole
	Businesses  []*entity.Business
	Active      *entity.Business
	Role        string
	Permissions map[permission.Feature]bool
	Loaded      bool
	Err         error
}

// snapshot copia valores, no punteros: los handlers serializan el Snapshot fuera
// del mutex mientras el backfill y las actualizaciones optimistas mutan los structs
// del estado bajo el lock. Compartir los punteros sería una carrera de datos.
func (s *state) snapshot() Snapshot {
	snap := Snapshot{
		Role:   s.role,
		Loaded: s.loaded,
		Err:    s.err,
	}
	if s.profile != nil {
		p := *s.profile
		snap.Profile = &p
	}
	if len(s.bindings) > 0 {
		snap.Bindings = make([]*entity.BusinessRole, 0, len(s.bindings))
		for _, b := range s.bindings {
			cp := *b
			snap.Bindings = append(snap.Bindings, &cp)
		}
	}
	if len(s.businesses) > 0 {
		snap.Businesses = make([]*entity.Business, 0, len(s.businesses))
		for _, b := range s.businesses {
			cp := *b
			snap.Businesses = append(snap.Businesses, &cp)
			if s.active != nil && s.active.ID == b.ID {
				snap.Active = &cp
			}
		}
	}
	if snap.Active == nil && s.active != nil {
		a := *s.active
		snap.Active = &a
	}
	if s.permissions != nil {
		snap.Permissions = make(map[permission.Feature]bool, len(s.permissions))
		for k, v := range s.permissions {
			snap.Permissions[k] = v
		}
	}
	return snap
}

// AllowedFeatures devuelve las pestañas visibles según rol y permisos efectivos.
// Para un cuidador sin permiso la pestaña se OMITE de la lista navegable, no se
// deshabilita: ausencia, no bloqueo visual.
func (s Snapshot) AllowedFeatures() []permission.Feature {
	allowed := make([]permission.Feature, 0, len(permission.AllFeatures))
	for _, f := range permission.AllFeatures {
		if permission.IsAllowed(f, s.Role, s.Permissions) {
			allowed = append(allowed, f)
		}
	}
	return allowed
}
