package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/internal/domain/repository"
)

// Asegura que BusinessRoleRepo implementa repository.BusinessRoleRepository.
var _ repository.BusinessRoleRepository = (*BusinessRoleRepo)(nil)

// BusinessRoleRepo implementación del puerto BusinessRoleRepository sobre PostgreSQL.
// El mapa de permisos se guarda como JSONB; NULL significa "sin mapa explícito".
type BusinessRoleRepo struct {
	pool *pgxpool.Pool
}

// NewBusinessRoleRepository construye el adaptador de persistencia para bindings.
func NewBusinessRoleRepository(pool *pgxpool.Pool) *BusinessRoleRepo {
	return &BusinessRoleRepo{pool: pool}
}

const roleColumns = `id, user_id, business_id, role, permissions, caretaker_id, created_at`

func scanRole(scan func(dest ...any) error) (*entity.BusinessRole, error) {
	var b entity.BusinessRole
	var permsRaw []byte
	if err := scan(&b.ID, &b.UserID, &b.BusinessID, &b.Role, &permsRaw, &b.CaretakerID, &b.CreatedAt); err != nil {
		return nil, err
	}
	if len(permsRaw) > 0 {
		if err := json.Unmarshal(permsRaw, &b.Permissions); err != nil {
			return nil, fmt.Errorf("decode permissions: %w", err)
		}
	}
	return &b, nil
}

// ListByUserID devuelve todos los bindings de un usuario.
func (r *BusinessRoleRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.BusinessRole, error) {
	query := `SELECT ` + roleColumns + ` FROM business_roles WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list business roles: %w", err)
	}
	defer rows.Close()

	var out []*entity.BusinessRole
	for rows.Next() {
		b, err := scanRole(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan business role: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetByUserAndBusiness devuelve el binding de un usuario en un negocio; nil si no hay.
func (r *BusinessRoleRepo) GetByUserAndBusiness(ctx context.Context, userID, businessID string) (*entity.BusinessRole, error) {
	query := `SELECT ` + roleColumns + ` FROM business_roles WHERE user_id = $1 AND business_id = $2`
	b, err := scanRole(r.pool.QueryRow(ctx, query, userID, businessID).Scan)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business role: %w", err)
	}
	return b, nil
}

// Create persiste un binding nuevo.
func (r *BusinessRoleRepo) Create(ctx context.Context, role *entity.BusinessRole) error {
	var permsRaw []byte
	if role.Permissions != nil {
		raw, err := json.Marshal(role.Permissions)
		if err != nil {
			return fmt.Errorf("encode permissions: %w", err)
		}
		permsRaw = raw
	}
	query := `
		INSERT INTO business_roles (` + roleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		role.ID, role.UserID, role.BusinessID, role.Role, permsRaw, role.CaretakerID, role.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert business role: %w", err)
	}
	return nil
}

// UpdatePermissions reemplaza el mapa de permisos de un binding.
func (r *BusinessRoleRepo) UpdatePermissions(ctx context.Context, id string, permissions map[string]bool) error {
	raw, err := json.Marshal(permissions)
	if err != nil {
		return fmt.Errorf("encode permissions: %w", err)
	}
	cmd, err := r.pool.Exec(ctx, `UPDATE business_roles SET permissions = $2 WHERE id = $1`, id, raw)
	if err != nil {
		return fmt.Errorf("update permissions: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update permissions: no existe binding %s", id)
	}
	return nil
}

// Delete elimina un binding.
func (r *BusinessRoleRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM business_roles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete business role: %w", err)
	}
	return nil
}

// DeleteByBusinessID elimina todos los bindings de un negocio.
func (r *BusinessRoleRepo) DeleteByBusinessID(ctx context.Context, businessID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM business_roles WHERE business_id = $1`, businessID); err != nil {
		return fmt.Errorf("delete business roles: %w", err)
	}
	return nil
}

// GetRoleByEmailAndBusiness resuelve el rol de un usuario (por email) en un negocio.
// Devuelve "" sin error si no hay binding.
func (r *BusinessRoleRepo) GetRoleByEmailAndBusiness(ctx context.Context, email, businessID string) (string, error) {
	query := `
		SELECT br.role
		FROM business_roles br
		JOIN users u ON u.id = br.user_id
		WHERE u.email = $1 AND br.business_id = $2`
	var role string
	err := r.pool.QueryRow(ctx, query, email, businessID).Scan(&role)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("get role by email: %w", err)
	}
	return role, nil
}
