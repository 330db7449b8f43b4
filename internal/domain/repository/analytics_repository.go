package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// AnalyticsRepository consultas read-only de agregados financieros por negocio.
type AnalyticsRepository interface {
	// GetInvestment suma los precios de compra de todos los animales del negocio.
	GetInvestment(ctx context.Context, businessID string) (decimal.Decimal, error)
	// GetRevenue suma los precios de venta de los animales vendidos.
	GetRevenue(ctx context.Context, businessID string) (decimal.Decimal, error)
	// GetExpenses suma gastos del negocio más costos de registros sanitarios.
	GetExpenses(ctx context.Context, businessID string) (decimal.Decimal, error)
}
