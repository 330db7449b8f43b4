package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/internal/domain/repository"
)

// Asegura que WeightRecordRepo implementa repository.WeightRecordRepository.
var _ repository.WeightRecordRepository = (*WeightRecordRepo)(nil)

// WeightRecordRepo implementación del puerto WeightRecordRepository sobre PostgreSQL.
type WeightRecordRepo struct {
	pool *pgxpool.Pool
}

// NewWeightRecordRepository construye el adaptador de persistencia para pesos.
func NewWeightRecordRepository(pool *pgxpool.Pool) *WeightRecordRepo {
	return &WeightRecordRepo{pool: pool}
}

// Create persiste un registro de peso nuevo.
func (r *WeightRecordRepo) Create(ctx context.Context, w *entity.WeightRecord) error {
	query := `
		INSERT INTO weight_records (id, business_id, goat_id, weight_kg, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query, w.ID, w.BusinessID, w.GoatID, w.WeightKg, w.Date, w.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert weight record: %w", err)
	}
	return nil
}

// ListByGoat devuelve el historial de pesos de un animal.
func (r *WeightRecordRepo) ListByGoat(ctx context.Context, goatID string) ([]*entity.WeightRecord, error) {
	query := `
		SELECT id, business_id, goat_id, weight_kg, date, created_at
		FROM weight_records WHERE goat_id = $1 ORDER BY date`
	rows, err := r.pool.Query(ctx, query, goatID)
	if err != nil {
		return nil, fmt.Errorf("list weight records: %w", err)
	}
	defer rows.Close()

	var out []*entity.WeightRecord
	for rows.Next() {
		var w entity.WeightRecord
		if err := rows.Scan(&w.ID, &w.BusinessID, &w.GoatID, &w.WeightKg, &w.Date, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan weight record: %w", err)
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}

// DeleteByBusinessID elimina todos los registros de peso de un negocio.
func (r *WeightRecordRepo) DeleteByBusinessID(ctx context.Context, businessID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM weight_records WHERE business_id = $1`, businessID); err != nil {
		return fmt.Errorf("delete weight records: %w", err)
	}
	return nil
}
