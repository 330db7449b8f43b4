package permission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/internal/domain/permission"
)

// Ley de defaults: un binding sin mapa explícito ve dashboard pero no finanzas.
func TestDefaults_LineaBase(t *testing.T) {
	d := permission.Defaults()

	require.Len(t, d, 8, "la política debe cubrir las 8 pestañas conocidas")
	assert.True(t, d[permission.FeatureDashboard])
	assert.True(t, d[permission.FeatureGoats])
	assert.True(t, d[permission.FeatureHealth])
	assert.True(t, d[permission.FeatureScanner])
	assert.True(t, d[permission.FeatureSettings])
	assert.False(t, d[permission.FeatureCaretakers])
	assert.False(t, d[permission.FeatureFinances])
	assert.False(t, d[permission.FeatureReports])
}

// Defaults debe devolver una copia: mutar el resultado no contamina llamadas futuras.
func TestDefaults_DevuelveCopia(t *testing.T) {
	d := permission.Defaults()
	d[permission.FeatureFinances] = true

	assert.False(t, permission.Defaults()[permission.FeatureFinances],
		"mutar el mapa devuelto no debe afectar la política")
}

// Resolve sobre nil produce un mapa total con los defaults.
func TestResolve_SinMapaAlmacenado(t *testing.T) {
	effective := permission.Resolve(nil)

	require.Len(t, effective, len(permission.AllFeatures))
	assert.True(t, effective[permission.FeatureDashboard])
	assert.False(t, effective[permission.FeatureFinances])
}

// Resolve respeta los valores explícitos y completa los faltantes con defaults.
func TestResolve_MapaParcial(t *testing.T) {
	effective := permission.Resolve(map[string]bool{
		"finances":  true,  // concedido explícitamente
		"dashboard": false, // revocado explícitamente
	})

	assert.True(t, effective[permission.FeatureFinances])
	assert.False(t, effective[permission.FeatureDashboard])
	// claves no mencionadas: default
	assert.True(t, effective[permission.FeatureGoats])
	assert.False(t, effective[permission.FeatureReports])
}

// Una clave desconocida en el mapa almacenado se ignora (el enum es cerrado).
func TestResolve_ClaveDesconocidaSeIgnora(t *testing.T) {
	effective := permission.Resolve(map[string]bool{"drones": true})

	_, present := effective[permission.Feature("drones")]
	assert.False(t, present, "una pestaña desconocida no debe entrar al mapa efectivo")
	assert.Len(t, effective, len(permission.AllFeatures))
}

// owner pasa toda pestaña incondicionalmente, incluso con un mapa restrictivo.
func TestIsAllowed_OwnerSiemprePermitido(t *testing.T) {
	restrictive := map[permission.Feature]bool{}
	for _, f := range permission.AllFeatures {
		restrictive[f] = false
	}

	for _, f := range permission.AllFeatures {
		assert.True(t, permission.IsAllowed(f, entity.RoleOwner, restrictive),
			"owner debe poder acceder a %s", f)
	}
}

// caretaker sin mapa: finances denegado, dashboard permitido (default de la política).
func TestIsAllowed_CaretakerSinMapaUsaDefaults(t *testing.T) {
	perms := permission.Resolve(nil)

	assert.False(t, permission.IsAllowed(permission.FeatureFinances, entity.RoleCaretaker, perms))
	assert.True(t, permission.IsAllowed(permission.FeatureDashboard, entity.RoleCaretaker, perms))
}

// Una Feature ausente del mapa efectivo resuelve por defaults, nunca niega en silencio.
func TestIsAllowed_ClaveFaltanteResuelvePorPolitica(t *testing.T) {
	perms := map[permission.Feature]bool{permission.FeatureFinances: true}

	assert.True(t, permission.IsAllowed(permission.FeatureDashboard, entity.RoleCaretaker, perms),
		"dashboard falta en el mapa pero su default es true")
	assert.False(t, permission.IsAllowed(permission.FeatureReports, entity.RoleCaretaker, perms),
		"reports falta en el mapa y su default es false")
}

// Un rol desconocido no accede a nada.
func TestIsAllowed_RolDesconocidoDenegado(t *testing.T) {
	assert.False(t, permission.IsAllowed(permission.FeatureDashboard, "visitor", nil))
	assert.False(t, permission.IsAllowed(permission.FeatureDashboard, "", nil))
}
