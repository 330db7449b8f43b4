// Package analytics contiene el caso de uso del resumen financiero del negocio.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/granja-pro/internal/application/dto"
	"github.com/tu-usuario/granja-pro/internal/domain/repository"
)

// DashboardUseCase genera el resumen financiero del negocio activo.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
// No recorre las tablas de animales o gastos; delega los agregados en el repositorio.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardResponse para el negocio indicado.
//
// Tres llamadas en paralelo:
//  1. GetInvestment → suma de precios de compra
//  2. GetRevenue    → suma de precios de venta de animales vendidos
//  3. GetExpenses   → gastos del negocio + costos sanitarios
//
// Profit = Revenue − Investment − Expenses.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, businessID string) (*dto.DashboardResponse, error) {
	type amountResult struct {
		value decimal.Decimal
		err   error
	}

	investmentCh := make(chan amountResult, 1)
	revenueCh := make(chan amountResult, 1)
	expensesCh := make(chan amountResult, 1)

	go func() {
		v, err := uc.analyticsRepo.GetInvestment(ctx, businessID)
		investmentCh <- amountResult{v, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.GetRevenue(ctx, businessID)
		revenueCh <- amountResult{v, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.GetExpenses(ctx, businessID)
		expensesCh <- amountResult{v, err}
	}()

	investment := <-investmentCh
	revenue := <-revenueCh
	expenses := <-expensesCh

	if investment.err != nil {
		return nil, fmt.Errorf("dashboard: inversión: %w", investment.err)
	}
	if revenue.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos: %w", revenue.err)
	}
	if expenses.err != nil {
		return nil, fmt.Errorf("dashboard: gastos: %w", expenses.err)
	}

	profit := revenue.value.Sub(investment.value).Sub(expenses.value).Round(2)

	return &dto.DashboardResponse{
		Investment: investment.value.Round(2),
		Revenue:    revenue.value.Round(2),
		Expenses:   expenses.value.Round(2),
		Profit:     profit,
	}, nil
}
