package dto

// RegisterRequest entrada para registrar una cuenta.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse token emitido tras registro o login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse datos públicos de una cuenta.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// RoleLookupRequest consulta del rol de un email en un negocio.
type RoleLookupRequest struct {
	Email      string `json:"email" validate:"required,email"`
	BusinessID string `json:"business_id" validate:"required,uuid"`
}

// RoleLookupResponse rol resuelto; vacío si el usuario no tiene binding.
type RoleLookupResponse struct {
	Role string `json:"role"`
}
