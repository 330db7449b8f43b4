package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
)

// CreateHealthRecordRequest alta de un registro sanitario.
type CreateHealthRecordRequest struct {
	GoatID string          `json:"goat_id" validate:"required,uuid"`
	Type   string          `json:"type" validate:"required,min=1,max=100"`
	Notes  string          `json:"notes"`
	Cost   decimal.Decimal `json:"cost"`
	Date   time.Time       `json:"date" validate:"required"`
}

// HealthRecordResponse salida de un registro sanitario.
type HealthRecordResponse struct {
	ID         string          `json:"id"`
	BusinessID string          `json:"business_id"`
	GoatID     string          `json:"goat_id"`
	Type       string          `json:"type"`
	Notes      string          `json:"notes"`
	Cost       decimal.Decimal `json:"cost"`
	Date       time.Time       `json:"date"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToHealthRecordResponse mapea la entidad a su DTO de salida.
func ToHealthRecordResponse(r *entity.HealthRecord) HealthRecordResponse {
	return HealthRecordResponse{
		ID:         r.ID,
		BusinessID: r.BusinessID,
		GoatID:     r.GoatID,
		Type:       r.Type,
		Notes:      r.Notes,
		Cost:       r.Cost,
		Date:       r.Date,
		CreatedAt:  r.CreatedAt,
	}
}
