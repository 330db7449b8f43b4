package entity

import "time"

// BusinessRole vincula un usuario con un negocio y un rol (binding).
// Invariante: un solo binding por par (user_id, business_id), garantizado por
// constraint único en la tabla.
type BusinessRole struct {
	ID          string
	UserID      string
	BusinessID  string
	Role        string          // owner | caretaker
	Permissions map[string]bool // nil = sin mapa explícito, aplican los defaults de la política
	CaretakerID *string         // enlace opcional al registro de staff del cuidador
	CreatedAt   time.Time
}
