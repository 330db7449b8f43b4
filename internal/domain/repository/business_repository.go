package repository

import (
	"context"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
)

// BusinessNameInfo datos mínimos que rellena el backfill de placeholders.
type BusinessNameInfo struct {
	ID          string
	Name        string
	Description *string
}

// BusinessRepository define el puerto de persistencia para Business (DIP).
// La implementación vive en infrastructure.
type BusinessRepository interface {
	Create(ctx context.Context, business *entity.Business) error
	GetByID(ctx context.Context, id string) (*entity.Business, error)
	// ListByIDs devuelve los negocios cuyos IDs estén en la lista, en el orden
	// que entregue el almacén (sin garantía de orden).
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Business, error)
	Update(ctx context.Context, business *entity.Business) error
	Delete(ctx context.Context, id string) error
	// FetchNames consulta nombre/descripción reales para el backfill de placeholders.
	FetchNames(ctx context.Context, ids []string) ([]BusinessNameInfo, error)
}
