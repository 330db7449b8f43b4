package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/internal/domain/repository"
)

// Asegura que BusinessRepo implementa repository.BusinessRepository.
var _ repository.BusinessRepository = (*BusinessRepo)(nil)

// BusinessRepo implementación del puerto BusinessRepository sobre PostgreSQL.
type BusinessRepo struct {
	pool *pgxpool.Pool
}

// NewBusinessRepository construye el adaptador de persistencia para negocios.
func NewBusinessRepository(pool *pgxpool.Pool) *BusinessRepo {
	return &BusinessRepo{pool: pool}
}

const businessColumns = `id, name, description, address, payment_model_type, payment_model_amount, created_by, created_at, updated_at`

// Create persiste un nuevo negocio.
func (r *BusinessRepo) Create(ctx context.Context, b *entity.Business) error {
	query := `
		INSERT INTO businesses (` + businessColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		b.ID, b.Name, b.Description, b.Address,
		b.PaymentModelType, b.PaymentModelAmount, b.CreatedBy,
		b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert business: %w", err)
	}
	return nil
}

// GetByID obtiene un negocio por ID; nil si no existe.
func (r *BusinessRepo) GetByID(ctx context.Context, id string) (*entity.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE id = $1`
	var b entity.Business
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.Description, &b.Address,
		&b.PaymentModelType, &b.PaymentModelAmount, &b.CreatedBy,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business: %w", err)
	}
	return &b, nil
}

// ListByIDs obtiene los negocios cuyos IDs estén en la lista.
func (r *BusinessRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Business, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	defer rows.Close()

	var out []*entity.Business
	for rows.Next() {
		var b entity.Business
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Description, &b.Address,
			&b.PaymentModelType, &b.PaymentModelAmount, &b.CreatedBy,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

// Update actualiza un negocio existente.
func (r *BusinessRepo) Update(ctx context.Context, b *entity.Business) error {
	query := `
		UPDATE businesses
		SET name = $2, description = $3, address = $4,
		    payment_model_type = $5, payment_model_amount = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query,
		b.ID, b.Name, b.Description, b.Address,
		b.PaymentModelType, b.PaymentModelAmount, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update business: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update business: no existe %s", b.ID)
	}
	return nil
}

// Delete elimina un negocio.
func (r *BusinessRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM businesses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete business: %w", err)
	}
	return nil
}

// FetchNames consulta nombre y descripción reales para el backfill de placeholders.
func (r *BusinessRepo) FetchNames(ctx context.Context, ids []string) ([]repository.BusinessNameInfo, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT id, name, description FROM businesses WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch business names: %w", err)
	}
	defer rows.Close()

	var out []repository.BusinessNameInfo
	for rows.Next() {
		var info repository.BusinessNameInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Description); err != nil {
			return nil, fmt.Errorf("scan business name: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}
