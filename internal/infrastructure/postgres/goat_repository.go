package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/internal/domain/repository"
)

// Asegura que GoatRepo implementa repository.GoatRepository.
var _ repository.GoatRepository = (*GoatRepo)(nil)

// GoatRepo implementación del puerto GoatRepository sobre PostgreSQL.
type GoatRepo struct {
	pool *pgxpool.Pool
}

// NewGoatRepository construye el adaptador de persistencia para animales.
func NewGoatRepository(pool *pgxpool.Pool) *GoatRepo {
	return &GoatRepo{pool: pool}
}

const goatColumns = `id, business_id, tag_number, breed, status, purchase_price, purchase_date, sale_price, sale_date, caretaker_id, created_at, updated_at`

func scanGoat(scan func(dest ...any) error) (*entity.Goat, error) {
	var g entity.Goat
	if err := scan(
		&g.ID, &g.BusinessID, &g.TagNumber, &g.Breed, &g.Status,
		&g.PurchasePrice, &g.PurchaseDate, &g.SalePrice, &g.SaleDate,
		&g.CaretakerID, &g.CreatedAt, &g.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &g, nil
}

// Create persiste un animal nuevo.
func (r *GoatRepo) Create(ctx context.Context, g *entity.Goat) error {
	query := `
		INSERT INTO goats (` + goatColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(ctx, query,
		g.ID, g.BusinessID, g.TagNumber, g.Breed, g.Status,
		g.PurchasePrice, g.PurchaseDate, g.SalePrice, g.SaleDate,
		g.CaretakerID, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert goat: %w", err)
	}
	return nil
}

// GetByID obtiene un animal por ID; nil si no existe.
func (r *GoatRepo) GetByID(ctx context.Context, id string) (*entity.Goat, error) {
	query := `SELECT ` + goatColumns + ` FROM goats WHERE id = $1`
	g, err := scanGoat(r.pool.QueryRow(ctx, query, id).Scan)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get goat: %w", err)
	}
	return g, nil
}

// ListByBusiness devuelve los animales del negocio.
func (r *GoatRepo) ListByBusiness(ctx context.Context, businessID string) ([]*entity.Goat, error) {
	query := `SELECT ` + goatColumns + ` FROM goats WHERE business_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("list goats: %w", err)
	}
	defer rows.Close()

	var out []*entity.Goat
	for rows.Next() {
		g, err := scanGoat(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan goat: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Update actualiza un animal existente.
func (r *GoatRepo) Update(ctx context.Context, g *entity.Goat) error {
	query := `
		UPDATE goats
		SET tag_number = $2, breed = $3, status = $4, purchase_price = $5,
		    purchase_date = $6, sale_price = $7, sale_date = $8,
		    caretaker_id = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query,
		g.ID, g.TagNumber, g.Breed, g.Status, g.PurchasePrice,
		g.PurchaseDate, g.SalePrice, g.SaleDate, g.CaretakerID, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update goat: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update goat: no existe %s", g.ID)
	}
	return nil
}

// DeleteByBusinessID elimina todos los animales de un negocio.
func (r *GoatRepo) DeleteByBusinessID(ctx context.Context, businessID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM goats WHERE business_id = $1`, businessID); err != nil {
		return fmt.Errorf("delete goats: %w", err)
	}
	return nil
}
