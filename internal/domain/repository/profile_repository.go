package repository

import (
	"context"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
)

// ProfileRepository puerto de persistencia para perfiles de usuario.
// Create debe devolver domain.ErrDuplicate ante violación del constraint único de
// user_id, para que el resolver re-consulte en lugar de fallar (create-or-get).
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	Create(ctx context.Context, profile *entity.Profile) error
	UpdateRole(ctx context.Context, id, role string) error
}
