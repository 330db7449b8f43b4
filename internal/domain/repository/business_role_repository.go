package repository

import (
	"context"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
)

// BusinessRoleRepository puerto de persistencia para los bindings usuario↔negocio.
type BusinessRoleRepository interface {
	ListByUserID(ctx context.Context, userID string) ([]*entity.BusinessRole, error)
	GetByUserAndBusiness(ctx context.Context, userID, businessID string) (*entity.BusinessRole, error)
	Create(ctx context.Context, role *entity.BusinessRole) error
	UpdatePermissions(ctx context.Context, id string, permissions map[string]bool) error
	Delete(ctx context.Context, id string) error
	DeleteByBusinessID(ctx context.Context, businessID string) error
	// GetRoleByEmailAndBusiness resuelve el rol de un usuario (por email) en un negocio.
	// Devuelve "" sin error si el usuario no tiene binding en ese negocio.
	GetRoleByEmailAndBusiness(ctx context.Context, email, businessID string) (string, error)
}
