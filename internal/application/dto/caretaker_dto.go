package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
)

// CreateCaretakerRequest alta de un cuidador en el negocio activo.
type CreateCaretakerRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Phone         string          `json:"phone"`
	Email         *string         `json:"email" validate:"omitempty,email"`
	Address       string          `json:"address"`
	PaymentType   string          `json:"payment_type" validate:"omitempty,oneof=percentage monthly"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	PhotoURL      *string         `json:"photo_url"`
}

// UpdateCaretakerRequest actualización parcial de un cuidador.
type UpdateCaretakerRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Phone         *string          `json:"phone"`
	Email         *string          `json:"email" validate:"omitempty,email"`
	Address       *string          `json:"address"`
	PaymentType   *string          `json:"payment_type" validate:"omitempty,oneof=percentage monthly"`
	PaymentAmount *decimal.Decimal `json:"payment_amount"`
	PhotoURL      *string          `json:"photo_url"`
}

// CaretakerResponse salida de un cuidador.
type CaretakerResponse struct {
	ID            string          `json:"id"`
	BusinessID    string          `json:"business_id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Email         *string         `json:"email,omitempty"`
	Address       string          `json:"address"`
	PaymentType   string          `json:"payment_type"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	HasAccount    bool            `json:"has_account"`
	PhotoURL      *string         `json:"photo_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToCaretakerResponse mapea la entidad a su DTO de salida.
func ToCaretakerResponse(c *entity.Caretaker) CaretakerResponse {
	return CaretakerResponse{
		ID:            c.ID,
		BusinessID:    c.BusinessID,
		Name:          c.Name,
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
		PaymentType:   c.PaymentType,
		PaymentAmount: c.PaymentAmount,
		HasAccount:    c.HasAccount,
		PhotoURL:      c.PhotoURL,
		CreatedAt:     c.CreatedAt,
	}
}

// InviteCaretakerRequest crea la cuenta de login de un cuidador existente y su
// binding con permisos por defecto.
type InviteCaretakerRequest struct {
	CaretakerID string `json:"caretaker_id" validate:"required,uuid"`
	Email       string `json:"email" validate:"required,email"`
}

// InviteCaretakerResponse credenciales generadas; la contraseña solo viaja aquí,
// una vez, y nunca se vuelve a mostrar.
type InviteCaretakerResponse struct {
	UserID            string `json:"user_id"`
	Email             string `json:"email"`
	GeneratedPassword string `json:"generated_password"`
}

// UpdatePermissionsRequest reemplaza el mapa de permisos de un binding caretaker.
type UpdatePermissionsRequest struct {
	Permissions map[string]bool `json:"permissions" validate:"required"`
}
