package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/granja-pro/internal/application/earnings"
)

// GoatEarningResponse detalle por animal del cálculo de ganancias.
type GoatEarningResponse struct {
	GoatID          string          `json:"goat_id"`
	TagNumber       string          `json:"tag_number"`
	NetProfit       decimal.Decimal `json:"net_profit"`
	Contribution    decimal.Decimal `json:"contribution"`
	MonthsTended    int             `json:"months_tended,omitempty"`
	MissingSaleDate bool            `json:"missing_sale_date,omitempty"`
}

// EarningsResponse resultado del cálculo de ganancias de un cuidador.
type EarningsResponse struct {
	CaretakerID string                `json:"caretaker_id"`
	Model       string                `json:"model"`
	ModelAmount decimal.Decimal       `json:"model_amount"`
	Total       decimal.Decimal       `json:"total"`
	Goats       []GoatEarningResponse `json:"goats"`
}

// ToEarningsResponse mapea el resultado del cálculo al DTO de salida.
func ToEarningsResponse(r *earnings.Result) EarningsResponse {
	goats := make([]GoatEarningResponse, 0, len(r.PerGoat))
	for _, g := range r.PerGoat {
		goats = append(goats, GoatEarningResponse{
			GoatID:          g.GoatID,
			TagNumber:       g.TagNumber,
			NetProfit:       g.NetProfit,
			Contribution:    g.Contribution,
			MonthsTended:    g.MonthsTended,
			MissingSaleDate: g.MissingSaleDate,
		})
	}
	return EarningsResponse{
		CaretakerID: r.CaretakerID,
		Model:       r.Model.Type,
		ModelAmount: r.Model.Amount,
		Total:       r.Total,
		Goats:       goats,
	}
}
