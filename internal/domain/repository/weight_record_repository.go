package repository

import (
	"context"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
)

// WeightRecordRepository puerto de persistencia para registros de peso.
type WeightRecordRepository interface {
	Create(ctx context.Context, record *entity.WeightRecord) error
	ListByGoat(ctx context.Context, goatID string) ([]*entity.WeightRecord, error)
	DeleteByBusinessID(ctx context.Context, businessID string) error
}
