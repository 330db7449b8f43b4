package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/internal/domain/repository"
)

// Asegura que HealthRecordRepo implementa repository.HealthRecordRepository.
var _ repository.HealthRecordRepository = (*HealthRecordRepo)(nil)

// HealthRecordRepo implementación del puerto HealthRecordRepository sobre PostgreSQL.
type HealthRecordRepo struct {
	pool *pgxpool.Pool
}

// NewHealthRecordRepository construye el adaptador de persistencia para registros sanitarios.
func NewHealthRecordRepository(pool *pgxpool.Pool) *HealthRecordRepo {
	return &HealthRecordRepo{pool: pool}
}

const healthColumns = `id, business_id, goat_id, type, notes, cost, date, created_at`

// Create persiste un registro sanitario nuevo.
func (r *HealthRecordRepo) Create(ctx context.Context, h *entity.HealthRecord) error {
	query := `
		INSERT INTO health_records (` + healthColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		h.ID, h.BusinessID, h.GoatID, h.Type, h.Notes, h.Cost, h.Date, h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert health record: %w", err)
	}
	return nil
}

// ListByBusiness devuelve los registros sanitarios del negocio.
func (r *HealthRecordRepo) ListByBusiness(ctx context.Context, businessID string) ([]*entity.HealthRecord, error) {
	query := `SELECT ` + healthColumns + ` FROM health_records WHERE business_id = $1 ORDER BY date DESC`
	return r.queryList(ctx, query, businessID)
}

// ListByGoat devuelve el historial sanitario de un animal.
func (r *HealthRecordRepo) ListByGoat(ctx context.Context, goatID string) ([]*entity.HealthRecord, error) {
	query := `SELECT ` + healthColumns + ` FROM health_records WHERE goat_id = $1 ORDER BY date DESC`
	return r.queryList(ctx, query, goatID)
}

func (r *HealthRecordRepo) queryList(ctx context.Context, query, arg string) ([]*entity.HealthRecord, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list health records: %w", err)
	}
	defer rows.Close()

	var out []*entity.HealthRecord
	for rows.Next() {
		var h entity.HealthRecord
		if err := rows.Scan(
			&h.ID, &h.BusinessID, &h.GoatID, &h.Type, &h.Notes, &h.Cost, &h.Date, &h.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan health record: %w", err)
		}
		out = append(out, &h)
	}
	return out, rows.Err()
}

// DeleteByBusinessID elimina todos los registros sanitarios de un negocio.
func (r *HealthRecordRepo) DeleteByBusinessID(ctx context.Context, businessID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM health_records WHERE business_id = $1`, businessID); err != nil {
		return fmt.Errorf("delete health records: %w", err)
	}
	return nil
}
