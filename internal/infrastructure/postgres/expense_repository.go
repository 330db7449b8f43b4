package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/internal/domain/repository"
)

// Asegura que ExpenseRepo implementa repository.ExpenseRepository.
var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación del puerto ExpenseRepository sobre PostgreSQL.
type ExpenseRepo struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository construye el adaptador de persistencia para gastos.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepo {
	return &ExpenseRepo{pool: pool}
}

// Create persiste un gasto nuevo.
func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, business_id, goat_id, category, description, amount, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		e.ID, e.BusinessID, e.GoatID, e.Category, e.Description, e.Amount, e.Date, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// ListByBusiness devuelve los gastos del negocio.
func (r *ExpenseRepo) ListByBusiness(ctx context.Context, businessID string) ([]*entity.Expense, error) {
	query := `
		SELECT id, business_id, goat_id, category, description, amount, date, created_at
		FROM expenses WHERE business_id = $1 ORDER BY date DESC`
	rows, err := r.pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(
			&e.ID, &e.BusinessID, &e.GoatID, &e.Category, &e.Description, &e.Amount, &e.Date, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// DeleteByBusinessID elimina todos los gastos de un negocio.
func (r *ExpenseRepo) DeleteByBusinessID(ctx context.Context, businessID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE business_id = $1`, businessID); err != nil {
		return fmt.Errorf("delete expenses: %w", err)
	}
	return nil
}
