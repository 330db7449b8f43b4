package dto

import "github.com/shopspring/decimal"

// DashboardResponse resumen financiero del negocio activo.
type DashboardResponse struct {
	Investment decimal.Decimal `json:"investment"`
	Revenue    decimal.Decimal `json:"revenue"`
	Expenses   decimal.Decimal `json:"expenses"`
	Profit     decimal.Decimal `json:"profit"`
}
