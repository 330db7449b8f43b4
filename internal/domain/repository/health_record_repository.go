package repository

import (
	"context"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
)

// HealthRecordRepository puerto de persistencia para registros sanitarios.
type HealthRecordRepository interface {
	Create(ctx context.Context, record *entity.HealthRecord) error
	ListByBusiness(ctx context.Context, businessID string) ([]*entity.HealthRecord, error)
	ListByGoat(ctx context.Context, goatID string) ([]*entity.HealthRecord, error)
	DeleteByBusinessID(ctx context.Context, businessID string) error
}
