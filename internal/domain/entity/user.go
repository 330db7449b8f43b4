package entity

import "time"

// User representa una cuenta de autenticación. A diferencia del staff (Caretaker),
// el User es global: su relación con cada negocio vive en BusinessRole.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
