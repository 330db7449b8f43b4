package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/internal/domain/repository"
)

// Asegura que TransactionRepo implementa repository.TransactionRepository.
var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del puerto TransactionRepository sobre PostgreSQL.
type TransactionRepo struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository construye el adaptador de persistencia para movimientos.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create persiste un movimiento financiero nuevo.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, business_id, goat_id, type, description, amount, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		t.ID, t.BusinessID, t.GoatID, t.Type, t.Description, t.Amount, t.Date, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListByBusiness devuelve los movimientos del negocio.
func (r *TransactionRepo) ListByBusiness(ctx context.Context, businessID string) ([]*entity.Transaction, error) {
	query := `
		SELECT id, business_id, goat_id, type, description, amount, date, created_at
		FROM transactions WHERE business_id = $1 ORDER BY date DESC`
	rows, err := r.pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(
			&t.ID, &t.BusinessID, &t.GoatID, &t.Type, &t.Description, &t.Amount, &t.Date, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// DeleteByBusinessID elimina todos los movimientos de un negocio.
func (r *TransactionRepo) DeleteByBusinessID(ctx context.Context, businessID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE business_id = $1`, businessID); err != nil {
		return fmt.Errorf("delete transactions: %w", err)
	}
	return nil
}
