package earnings

import (
	"context"
	"fmt"

	"github.com/tu-usuario/granja-pro/internal/domain"
	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/internal/domain/repository"
	"github.com/tu-usuario/granja-pro/pkg/metrics"
)

// Service carga los insumos del cálculo desde los puertos de persistencia y
// delega en Compute. El cálculo en sí es puro; el servicio solo orquesta I/O.
type Service struct {
	businesses repository.BusinessRepository
	caretakers repository.CaretakerRepository
	goats      repository.GoatRepository
	expenses   repository.ExpenseRepository
	health     repository.HealthRecordRepository
}

// NewService construye el servicio con sus puertos.
func NewService(
	businesses repository.BusinessRepository,
	caretakers repository.CaretakerRepository,
	goats repository.GoatRepository,
	expenses repository.ExpenseRepository,
	health repository.HealthRecordRepository,
) *Service {
	return &Service{
		businesses: businesses,
		caretakers: caretakers,
		goats:      goats,
		expenses:   expenses,
		health:     health,
	}
}

// ForCaretaker calcula la paga acumulada de un cuidador del negocio.
func (s *Service) ForCaretaker(ctx context.Context, businessID, caretakerID string) (*Result, error) {
	_, _, result, err := s.Report(ctx, businessID, caretakerID)
	return result, err
}

// Report calcula la paga y devuelve también el negocio y el cuidador,
// que el reporte PDF necesita para el encabezado.
func (s *Service) Report(ctx context.Context, businessID, caretakerID string) (*entity.Business, *entity.Caretaker, *Result, error) {
	b, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("buscar negocio: %w", err)
	}
	if b == nil {
		return nil, nil, nil, domain.ErrNotFound
	}

	c, err := s.caretakers.GetByID(ctx, caretakerID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("buscar cuidador: %w", err)
	}
	if c == nil || c.BusinessID != businessID {
		return nil, nil, nil, domain.ErrNotFound
	}

	goats, err := s.goats.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("listar animales: %w", err)
	}
	expenses, err := s.expenses.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("listar gastos: %w", err)
	}
	health, err := s.health.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("listar registros sanitarios: %w", err)
	}

	result := Compute(Input{
		CaretakerID: caretakerID,
		Model:       ResolveModel(b, c),
		Goats:       goats,
		Expenses:    expenses,
		Health:      health,
	})
	metrics.EarningsComputeCounter.Inc()
	return b, c, &result, nil
}
