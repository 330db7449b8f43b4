package entity

import "time"

// Roles válidos para Profile y BusinessRole.
const (
	RoleOwner     = "owner"
	RoleCaretaker = "caretaker"
)

// Profile registro de perfil de un usuario con su rol primario resuelto.
// Se crea de forma perezosa en el primer load; el rol almacenado puede corregirse
// si la derivación a partir de los bindings vigentes discrepa del valor guardado.
type Profile struct {
	ID        string
	UserID    string
	Role      string // owner | caretaker
	CreatedAt time.Time
}
