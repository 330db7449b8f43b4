// Package permission define la política de permisos por pestaña de la aplicación.
// Es la única fuente de verdad para los defaults de cuidadores: cualquier binding
// sin mapa explícito (legacy o recién creado) resuelve aquí.
package permission

import "github.com/tu-usuario/granja-pro/internal/domain/entity"

// Feature identifica una pestaña/área funcional de la aplicación.
type Feature string

// Pestañas conocidas. El mapa de permisos de un cuidador siempre contiene un
// booleano para cada una; las claves faltantes toman el default de la política.
const (
	FeatureDashboard  Feature = "dashboard"
	FeatureGoats      Feature = "goats"
	FeatureHealth     Feature = "health"
	FeatureScanner    Feature = "scanner"
	FeatureSettings   Feature = "settings"
	FeatureCaretakers Feature = "caretakers"
	FeatureFinances   Feature = "finances"
	FeatureReports    Feature = "reports"
)

// AllFeatures lista estable de pestañas, en el orden de navegación de la UI.
var AllFeatures = []Feature{
	FeatureDashboard,
	FeatureGoats,
	FeatureHealth,
	FeatureScanner,
	FeatureSettings,
	FeatureCaretakers,
	FeatureFinances,
	FeatureReports,
}

// Defaults devuelve el mapa de permisos por defecto para un cuidador.
// Función pura: sin entradas, sin efectos, sin condiciones de error.
func Defaults() map[Feature]bool {
	return map[Feature]bool{
		FeatureDashboard:  true,
		FeatureGoats:      true,
		FeatureHealth:     true,
		FeatureScanner:    true,
		FeatureSettings:   true,
		FeatureCaretakers: false,
		FeatureFinances:   false,
		FeatureReports:    false,
	}
}

// Resolve construye el mapa efectivo de permisos a partir de uno almacenado
// (posiblemente nil o parcial). El resultado es total: toda Feature conocida
// está presente; las claves faltantes toman el default.
func Resolve(stored map[string]bool) map[Feature]bool {
	effective := Defaults()
	for key, allowed := range stored {
		f := Feature(key)
		if _, known := effective[f]; known {
			effective[f] = allowed
		}
	}
	return effective
}

// IsAllowed decide si un rol puede ver/operar una pestaña.
// owner: siempre permitido. caretaker: según el mapa efectivo; una clave
// desconocida resuelve por la política de defaults, nunca por negación silenciosa.
func IsAllowed(feature Feature, role string, perms map[Feature]bool) bool {
	if role == entity.RoleOwner {
		return true
	}
	if role != entity.RoleCaretaker {
		return false
	}
	if allowed, ok := perms[feature]; ok {
		return allowed
	}
	return Defaults()[feature]
}
