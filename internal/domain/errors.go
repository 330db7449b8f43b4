package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrProfileUnavailable: no se pudo obtener ni crear el perfil del usuario.
	// Es fatal para la sesión: el llamador NO debe continuar a la carga de negocios.
	ErrProfileUnavailable = errors.New("perfil de usuario no disponible")

	// ErrNoAccess: cuidador sin ningún binding de negocio. La aplicación debe
	// mostrar la vista de acceso denegado y nunca un dashboard de negocio.
	ErrNoAccess = errors.New("sin acceso a ningún negocio, contacte al propietario")

	// ErrNotAuthorized: la operación requiere ser el creador del negocio.
	ErrNotAuthorized = errors.New("solo el creador del negocio puede realizar esta operación")
)

// CreateBusinessError envuelve un fallo del almacén al crear un negocio.
// Se expone como tipo propio para que los formularios lo distingan de errores de sesión.
type CreateBusinessError struct {
	Err error
}

func (e *CreateBusinessError) Error() string {
	return "crear negocio: " + e.Err.Error()
}

func (e *CreateBusinessError) Unwrap() error { return e.Err }
