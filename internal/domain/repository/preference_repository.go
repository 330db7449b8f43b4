package repository

import "context"

// PreferenceRepository persiste la preferencia de negocio activo por usuario.
// Es el único estado durable de sesión del cliente: se lee una vez al arrancar la
// sesión y se escribe en cada cambio o creación exitosa (solo para owners).
type PreferenceRepository interface {
	// GetActiveBusiness devuelve "" sin error si no hay preferencia guardada.
	GetActiveBusiness(ctx context.Context, userID string) (string, error)
	SetActiveBusiness(ctx context.Context, userID, businessID string) error
	ClearActiveBusiness(ctx context.Context, userID string) error
}
