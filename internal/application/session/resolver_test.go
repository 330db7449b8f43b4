package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/granja-pro/internal/application/session"
	"github.com/tu-usuario/granja-pro/internal/domain"
	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func binding(userID, businessID, role string) *entity.BusinessRole {
	return &entity.BusinessRole{
		ID:         userID + "/" + businessID,
		UserID:     userID,
		BusinessID: businessID,
		Role:       role,
		CreatedAt:  time.Now(),
	}
}

// Con al menos un binding owner el rol primario es owner, sin importar cuántos
// bindings caretaker existan además.
func TestDeriveRole_CualquierOwnerGana(t *testing.T) {
	bindings := []*entity.BusinessRole{
		binding("u1", "b1", entity.RoleCaretaker),
		binding("u1", "b2", entity.RoleOwner),
		binding("u1", "b3", entity.RoleCaretaker),
	}
	assert.Equal(t, entity.RoleOwner, session.DeriveRole(bindings))
}

// Bindings no vacíos y exclusivamente caretaker ⇒ caretaker.
func TestDeriveRole_TodosCaretaker(t *testing.T) {
	bindings := []*entity.BusinessRole{
		binding("u1", "b1", entity.RoleCaretaker),
		binding("u1", "b2", entity.RoleCaretaker),
	}
	assert.Equal(t, entity.RoleCaretaker, session.DeriveRole(bindings))
}

// Cero bindings: la derivación queda indefinida y decide el fallback de Resolve.
func TestDeriveRole_SinBindings(t *testing.T) {
	assert.Equal(t, "", session.DeriveRole(nil))
}

// Cero bindings y sin perfil previo: default owner y el perfil se crea con ese rol.
func TestResolve_SinBindingsNiPerfilDefaultOwner(t *testing.T) {
	profiles := newFakeProfiles()
	roles := newFakeRoles()
	r := session.NewResolver(profiles, roles, testLogger())

	profile, bindings, err := r.Resolve(context.Background(), session.AuthUser{ID: "u1"})

	require.NoError(t, err)
	assert.Empty(t, bindings)
	assert.Equal(t, entity.RoleOwner, profile.Role)
	assert.Equal(t, 1, profiles.createCalls, "debe crear el perfil perezosamente")
}

// Cero bindings con perfil previo: manda el rol almacenado, sin corrección.
func TestResolve_SinBindingsRespetaRolAlmacenado(t *testing.T) {
	profiles := newFakeProfiles()
	profiles.byUser["u1"] = &entity.Profile{ID: "p1", UserID: "u1", Role: entity.RoleCaretaker}
	roles := newFakeRoles()
	r := session.NewResolver(profiles, roles, testLogger())

	profile, _, err := r.Resolve(context.Background(), session.AuthUser{ID: "u1"})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleCaretaker, profile.Role)
	assert.Zero(t, profiles.updateRoleCalls, "sin bindings no hay nada que corregir")
}

// Rol almacenado obsoleto (owner) frente a derivación fresca (caretaker): se corrige.
func TestResolve_CorrigeRolAlmacenadoObsoleto(t *testing.T) {
	profiles := newFakeProfiles()
	profiles.byUser["u1"] = &entity.Profile{ID: "p1", UserID: "u1", Role: entity.RoleOwner}
	roles := newFakeRoles()
	roles.byUser["u1"] = []*entity.BusinessRole{binding("u1", "b1", entity.RoleCaretaker)}
	r := session.NewResolver(profiles, roles, testLogger())

	profile, _, err := r.Resolve(context.Background(), session.AuthUser{ID: "u1"})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleCaretaker, profile.Role)
	assert.Equal(t, 1, profiles.updateRoleCalls)
	assert.Equal(t, entity.RoleCaretaker, profiles.byUser["u1"].Role, "la corrección debe persistirse")
}

// Idempotencia create-or-get: perder la carrera de creación (el primer Get no ve la
// fila, el Create choca con el constraint único) re-consulta el registro existente;
// queda exactamente un perfil y ambas resoluciones observan el mismo rol final.
func TestResolve_CarreraDeCreacionReconsulta(t *testing.T) {
	profiles := newFakeProfiles()
	profiles.missOnFirstGet = true
	profiles.duplicateOnCreate = true
	// El rival de la carrera ya insertó el perfil: la re-consulta lo encuentra.
	profiles.byUser["u1"] = &entity.Profile{ID: "p-ganador", UserID: "u1", Role: entity.RoleOwner}
	roles := newFakeRoles()
	r := session.NewResolver(profiles, roles, testLogger())

	profile, _, err := r.Resolve(context.Background(), session.AuthUser{ID: "u1"})

	require.NoError(t, err)
	assert.Equal(t, "p-ganador", profile.ID)
	assert.Equal(t, entity.RoleOwner, profile.Role)
	assert.Equal(t, 1, profiles.createCalls, "un solo intento de creación")
	assert.Len(t, profiles.byUser, 1, "la carrera nunca produce dos perfiles")
}

// Si tras todos los fallbacks no hay perfil: ErrProfileUnavailable y el llamador
// no debe continuar a la carga de negocios.
func TestResolve_PerfilInobtenible(t *testing.T) {
	profiles := newFakeProfiles()
	profiles.duplicateOnCreate = true // Create siempre pierde y la re-consulta no encuentra nada
	roles := newFakeRoles()
	r := session.NewResolver(profiles, roles, testLogger())

	_, _, err := r.Resolve(context.Background(), session.AuthUser{ID: "u1"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProfileUnavailable))
}

// Un fallo al listar bindings corta la resolución.
func TestResolve_FalloDeBindingsPropaga(t *testing.T) {
	profiles := newFakeProfiles()
	roles := newFakeRoles()
	roles.listErr = errors.New("db caída")
	r := session.NewResolver(profiles, roles, testLogger())

	_, _, err := r.Resolve(context.Background(), session.AuthUser{ID: "u1"})

	require.Error(t, err)
	assert.Zero(t, profiles.createCalls, "no debe tocar perfiles si los bindings fallan")
}

// Identidad vacía es entrada inválida.
func TestResolve_UsuarioVacio(t *testing.T) {
	r := session.NewResolver(newFakeProfiles(), newFakeRoles(), testLogger())
	_, _, err := r.Resolve(context.Background(), session.AuthUser{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
