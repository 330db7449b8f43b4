package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/granja-pro/internal/domain"
	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/internal/domain/repository"
)

// Asegura que ProfileRepo implementa repository.ProfileRepository.
var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo implementación del puerto ProfileRepository sobre PostgreSQL.
type ProfileRepo struct {
	pool *pgxpool.Pool
}

// NewProfileRepository construye el adaptador de persistencia para perfiles.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

// GetByUserID obtiene el perfil de un usuario; nil si no existe.
func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	query := `SELECT id, user_id, role, created_at FROM profiles WHERE user_id = $1`
	var p entity.Profile
	err := r.pool.QueryRow(ctx, query, userID).Scan(&p.ID, &p.UserID, &p.Role, &p.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// Create persiste un perfil nuevo. Devuelve domain.ErrDuplicate ante violación del
// constraint único de user_id, para que el resolver re-consulte (create-or-get).
func (r *ProfileRepo) Create(ctx context.Context, p *entity.Profile) error {
	query := `INSERT INTO profiles (id, user_id, role, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, p.ID, p.UserID, p.Role, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// UpdateRole corrige el rol primario almacenado.
func (r *ProfileRepo) UpdateRole(ctx context.Context, id, role string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE profiles SET role = $2 WHERE id = $1`, id, role)
	if err != nil {
		return fmt.Errorf("update profile role: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
