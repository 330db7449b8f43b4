package http

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/granja-pro/internal/application/session"
	"github.com/tu-usuario/granja-pro/internal/domain/entity"
)

// Un load fallido nunca filtra el texto del error interno (driver, tablas, DSN)
// al cliente: viaja un mensaje fijo y el detalle se queda en los logs.
func TestToSessionResponse_ErrorSanitizado(t *testing.T) {
	snap := session.Snapshot{
		Loaded: true,
		Err:    errors.New(`ERROR: relation "business_roles" does not exist (SQLSTATE 42P01)`),
	}

	resp := toSessionResponse(snap)

	assert.Equal(t, sessionFailedMessage, resp.Error)
	assert.NotContains(t, resp.Error, "SQLSTATE", "sin texto del driver en la respuesta")
	assert.True(t, resp.Loaded)
	assert.False(t, resp.Resolving)
}

// Sin error no hay mensaje; el resto del mapeo se conserva.
func TestToSessionResponse_SinError(t *testing.T) {
	snap := session.Snapshot{
		Loaded:  true,
		Role:    entity.RoleOwner,
		Profile: &entity.Profile{Role: entity.RoleOwner},
	}

	resp := toSessionResponse(snap)

	require.Empty(t, resp.Error)
	assert.Equal(t, entity.RoleOwner, resp.Role)
	assert.True(t, resp.NeedsOnboarding, "owner cargado sin negocios señala onboarding")
}
