package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
)

// CreateBusinessRequest entrada para crear un negocio.
type CreateBusinessRequest struct {
	Name               string          `json:"name" validate:"required,min=1,max=200"`
	Description        *string         `json:"description"`
	Address            string          `json:"address"`
	PaymentModelType   string          `json:"payment_model_type" validate:"required,oneof=percentage monthly"`
	PaymentModelAmount decimal.Decimal `json:"payment_model_amount"`
}

// UpdateBusinessRequest actualización parcial; los campos ausentes se conservan.
type UpdateBusinessRequest struct {
	Name               *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description        *string          `json:"description"`
	Address            *string          `json:"address"`
	PaymentModelType   *string          `json:"payment_model_type" validate:"omitempty,oneof=percentage monthly"`
	PaymentModelAmount *decimal.Decimal `json:"payment_model_amount"`
}

// BusinessResponse salida de un negocio.
type BusinessResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Description        *string         `json:"description,omitempty"`
	Address            string          `json:"address"`
	PaymentModelType   string          `json:"payment_model_type"`
	PaymentModelAmount decimal.Decimal `json:"payment_model_amount"`
	Placeholder        bool            `json:"placeholder,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ToBusinessResponse mapea la entidad a su DTO de salida.
func ToBusinessResponse(b *entity.Business) BusinessResponse {
	return BusinessResponse{
		ID:                 b.ID,
		Name:               b.Name,
		Description:        b.Description,
		Address:            b.Address,
		PaymentModelType:   b.PaymentModelType,
		PaymentModelAmount: b.PaymentModelAmount,
		Placeholder:        b.Placeholder,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// ToBusinessResponses mapea una lista de entidades.
func ToBusinessResponses(list []*entity.Business) []BusinessResponse {
	out := make([]BusinessResponse, 0, len(list))
	for _, b := range list {
		out = append(out, ToBusinessResponse(b))
	}
	return out
}

// ToBusinessUpdate convierte el request en la actualización parcial de dominio.
func (r UpdateBusinessRequest) ToBusinessUpdate() entity.BusinessUpdate {
	return entity.BusinessUpdate{
		Name:               r.Name,
		Description:        r.Description,
		Address:            r.Address,
		PaymentModelType:   r.PaymentModelType,
		PaymentModelAmount: r.PaymentModelAmount,
	}
}
