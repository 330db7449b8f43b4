package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/granja-pro/internal/application/dto"
	"github.com/tu-usuario/granja-pro/internal/domain"
	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/internal/domain/repository"
)

// HealthUseCase gestión de registros sanitarios.
type HealthUseCase struct {
	records repository.HealthRecordRepository
	goats   repository.GoatRepository
}

// NewHealthUseCase construye el caso de uso.
func NewHealthUseCase(records repository.HealthRecordRepository, goats repository.GoatRepository) *HealthUseCase {
	return &HealthUseCase{records: records, goats: goats}
}

// Create registra una intervención sanitaria sobre un animal del negocio.
func (uc *HealthUseCase) Create(ctx context.Context, businessID string, in dto.CreateHealthRecordRequest) (*dto.HealthRecordResponse, error) {
	g, err := uc.goats.GetByID(ctx, in.GoatID)
	if err != nil {
		return nil, fmt.Errorf("buscar animal: %w", err)
	}
	if g == nil || g.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}

	r := &entity.HealthRecord{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		GoatID:     in.GoatID,
		Type:       in.Type,
		Notes:      in.Notes,
		Cost:       in.Cost,
		Date:       in.Date,
		CreatedAt:  time.Now(),
	}
	if err := uc.records.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("crear registro sanitario: %w", err)
	}
	resp := dto.ToHealthRecordResponse(r)
	return &resp, nil
}

// ListByBusiness devuelve los registros sanitarios del negocio.
func (uc *HealthUseCase) ListByBusiness(ctx context.Context, businessID string) ([]dto.HealthRecordResponse, error) {
	list, err := uc.records.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("listar registros sanitarios: %w", err)
	}
	return toHealthResponses(list), nil
}

// ListByGoat devuelve el historial sanitario de un animal.
func (uc *HealthUseCase) ListByGoat(ctx context.Context, businessID, goatID string) ([]dto.HealthRecordResponse, error) {
	g, err := uc.goats.GetByID(ctx, goatID)
	if err != nil {
		return nil, fmt.Errorf("buscar animal: %w", err)
	}
	if g == nil || g.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.records.ListByGoat(ctx, goatID)
	if err != nil {
		return nil, fmt.Errorf("listar historial sanitario: %w", err)
	}
	return toHealthResponses(list), nil
}

func toHealthResponses(list []*entity.HealthRecord) []dto.HealthRecordResponse {
	out := make([]dto.HealthRecordResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.ToHealthRecordResponse(r))
	}
	return out
}
