package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/granja-pro/internal/domain/repository"
)

// Asegura que PreferenceRepo implementa repository.PreferenceRepository.
var _ repository.PreferenceRepository = (*PreferenceRepo)(nil)

// PreferenceRepo persiste la preferencia de negocio activo por usuario.
type PreferenceRepo struct {
	pool *pgxpool.Pool
}

// NewPreferenceRepository construye el adaptador de persistencia para preferencias.
func NewPreferenceRepository(pool *pgxpool.Pool) *PreferenceRepo {
	return &PreferenceRepo{pool: pool}
}

// GetActiveBusiness devuelve el negocio activo guardado; "" si no hay preferencia.
func (r *PreferenceRepo) GetActiveBusiness(ctx context.Context, userID string) (string, error) {
	var businessID *string
	err := r.pool.QueryRow(ctx,
		`SELECT active_business_id FROM user_preferences WHERE user_id = $1`, userID,
	).Scan(&businessID)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("get active business: %w", err)
	}
	if businessID == nil {
		return "", nil
	}
	return *businessID, nil
}

// SetActiveBusiness guarda (upsert) la preferencia de negocio activo.
func (r *PreferenceRepo) SetActiveBusiness(ctx context.Context, userID, businessID string) error {
	query := `
		INSERT INTO user_preferences (user_id, active_business_id, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET active_business_id = $2, updated_at = now()`
	if _, err := r.pool.Exec(ctx, query, userID, businessID); err != nil {
		return fmt.Errorf("set active business: %w", err)
	}
	return nil
}

// ClearActiveBusiness borra la preferencia guardada.
func (r *PreferenceRepo) ClearActiveBusiness(ctx context.Context, userID string) error {
	if _, err := r.pool.Exec(ctx,
		`DELETE FROM user_preferences WHERE user_id = $1`, userID,
	); err != nil {
		return fmt.Errorf("clear active business: %w", err)
	}
	return nil
}
