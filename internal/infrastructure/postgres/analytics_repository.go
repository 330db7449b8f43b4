package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/granja-pro/internal/domain/repository"
)

// Asegura que AnalyticsRepo implementa repository.AnalyticsRepository.
var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas read-only de agregados financieros. Los agregados se
// calculan en SQL; la capa de aplicación no recorre filas.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de consultas analíticas.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetInvestment suma los precios de compra de todos los animales del negocio.
func (r *AnalyticsRepo) GetInvestment(ctx context.Context, businessID string) (decimal.Decimal, error) {
	return r.sumQuery(ctx,
		`SELECT COALESCE(SUM(purchase_price), 0) FROM goats WHERE business_id = $1`,
		businessID, "inversión")
}

// GetRevenue suma los precios de venta de los animales vendidos.
func (r *AnalyticsRepo) GetRevenue(ctx context.Context, businessID string) (decimal.Decimal, error) {
	return r.sumQuery(ctx,
		`SELECT COALESCE(SUM(sale_price), 0) FROM goats WHERE business_id = $1 AND status = 'sold'`,
		businessID, "ingresos")
}

// GetExpenses suma gastos del negocio más costos de registros sanitarios.
func (r *AnalyticsRepo) GetExpenses(ctx context.Context, businessID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE((SELECT SUM(amount) FROM expenses WHERE business_id = $1), 0)
		     + COALESCE((SELECT SUM(cost) FROM health_records WHERE business_id = $1), 0)`
	return r.sumQuery(ctx, query, businessID, "gastos")
}

func (r *AnalyticsRepo) sumQuery(ctx context.Context, query, businessID, label string) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, businessID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("agregado de %s: %w", label, err)
	}
	return total, nil
}
