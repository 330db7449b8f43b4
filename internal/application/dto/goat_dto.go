package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
)

// CreateGoatRequest alta de un animal en el negocio activo.
type CreateGoatRequest struct {
	TagNumber     string          `json:"tag_number" validate:"required,min=1,max=50"`
	Breed         string          `json:"breed"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	PurchaseDate  time.Time       `json:"purchase_date" validate:"required"`
	CaretakerID   *string         `json:"caretaker_id" validate:"omitempty,uuid"`
}

// UpdateGoatRequest actualización de un animal; incluye la venta.
type UpdateGoatRequest struct {
	TagNumber   *string          `json:"tag_number" validate:"omitempty,min=1,max=50"`
	Breed       *string          `json:"breed"`
	Status      *string          `json:"status" validate:"omitempty,oneof=active sold deceased"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	SaleDate    *time.Time       `json:"sale_date"`
	CaretakerID *string          `json:"caretaker_id" validate:"omitempty,uuid"`
}

// GoatResponse salida de un animal.
type GoatResponse struct {
	ID            string           `json:"id"`
	BusinessID    string           `json:"business_id"`
	TagNumber     string           `json:"tag_number"`
	Breed         string           `json:"breed"`
	Status        string           `json:"status"`
	PurchasePrice decimal.Decimal  `json:"purchase_price"`
	PurchaseDate  time.Time        `json:"purchase_date"`
	SalePrice     *decimal.Decimal `json:"sale_price,omitempty"`
	SaleDate      *time.Time       `json:"sale_date,omitempty"`
	CaretakerID   *string          `json:"caretaker_id,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ToGoatResponse mapea la entidad a su DTO de salida.
func ToGoatResponse(g *entity.Goat) GoatResponse {
	return GoatResponse{
		ID:            g.ID,
		BusinessID:    g.BusinessID,
		TagNumber:     g.TagNumber,
		Breed:         g.Breed,
		Status:        g.Status,
		PurchasePrice: g.PurchasePrice,
		PurchaseDate:  g.PurchaseDate,
		SalePrice:     g.SalePrice,
		SaleDate:      g.SaleDate,
		CaretakerID:   g.CaretakerID,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

// CreateWeightRequest registro de peso de un animal.
type CreateWeightRequest struct {
	WeightKg decimal.Decimal `json:"weight_kg" validate:"required"`
	Date     time.Time       `json:"date" validate:"required"`
}

// WeightResponse salida de un registro de peso.
type WeightResponse struct {
	ID       string          `json:"id"`
	GoatID   string          `json:"goat_id"`
	WeightKg decimal.Decimal `json:"weight_kg"`
	Date     time.Time       `json:"date"`
}
