package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/granja-pro/internal/domain"
	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/internal/domain/repository"
)

// Asegura que CaretakerRepo implementa repository.CaretakerRepository.
var _ repository.CaretakerRepository = (*CaretakerRepo)(nil)

// CaretakerRepo implementación del puerto CaretakerRepository sobre PostgreSQL.
type CaretakerRepo struct {
	pool *pgxpool.Pool
}

// NewCaretakerRepository construye el adaptador de persistencia para cuidadores.
func NewCaretakerRepository(pool *pgxpool.Pool) *CaretakerRepo {
	return &CaretakerRepo{pool: pool}
}

const caretakerColumns = `id, business_id, name, phone, email, address, payment_type, payment_amount, has_account, photo_url, created_at`

func scanCaretaker(scan func(dest ...any) error) (*entity.Caretaker, error) {
	var c entity.Caretaker
	if err := scan(
		&c.ID, &c.BusinessID, &c.Name, &c.Phone, &c.Email, &c.Address,
		&c.PaymentType, &c.PaymentAmount, &c.HasAccount, &c.PhotoURL, &c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un cuidador nuevo.
func (r *CaretakerRepo) Create(ctx context.Context, c *entity.Caretaker) error {
	query := `
		INSERT INTO caretakers (` + caretakerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(ctx, query,
		c.ID, c.BusinessID, c.Name, c.Phone, c.Email, c.Address,
		c.PaymentType, c.PaymentAmount, c.HasAccount, c.PhotoURL, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert caretaker: %w", err)
	}
	return nil
}

// GetByID obtiene un cuidador por ID; nil si no existe.
func (r *CaretakerRepo) GetByID(ctx context.Context, id string) (*entity.Caretaker, error) {
	query := `SELECT ` + caretakerColumns + ` FROM caretakers WHERE id = $1`
	c, err := scanCaretaker(r.pool.QueryRow(ctx, query, id).Scan)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get caretaker: %w", err)
	}
	return c, nil
}

// ListByBusiness devuelve los cuidadores del negocio.
func (r *CaretakerRepo) ListByBusiness(ctx context.Context, businessID string) ([]*entity.Caretaker, error) {
	query := `SELECT ` + caretakerColumns + ` FROM caretakers WHERE business_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("list caretakers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Caretaker
	for rows.Next() {
		c, err := scanCaretaker(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan caretaker: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdatePartial aplica una actualización parcial con COALESCE: los parámetros NULL
// conservan el valor almacenado. Devuelve la fila resultante.
func (r *CaretakerRepo) UpdatePartial(ctx context.Context, id string, u entity.CaretakerUpdate) (*entity.Caretaker, error) {
	query := `
		UPDATE caretakers
		SET name           = COALESCE($2, name),
		    phone          = COALESCE($3, phone),
		    email          = COALESCE($4, email),
		    address        = COALESCE($5, address),
		    payment_type   = COALESCE($6, payment_type),
		    payment_amount = COALESCE($7, payment_amount),
		    photo_url      = COALESCE($8, photo_url)
		WHERE id = $1
		RETURNING ` + caretakerColumns
	c, err := scanCaretaker(r.pool.QueryRow(ctx, query,
		id, u.Name, u.Phone, u.Email, u.Address, u.PaymentType, u.PaymentAmount, u.PhotoURL,
	).Scan)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update caretaker: %w", err)
	}
	return c, nil
}

// SetHasAccount marca si el cuidador tiene cuenta de login vinculada.
func (r *CaretakerRepo) SetHasAccount(ctx context.Context, id string, hasAccount bool) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE caretakers SET has_account = $2 WHERE id = $1`, id, hasAccount)
	if err != nil {
		return fmt.Errorf("set has_account: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cuidador.
func (r *CaretakerRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM caretakers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete caretaker: %w", err)
	}
	return nil
}

// DeleteByBusinessID elimina todos los cuidadores de un negocio.
func (r *CaretakerRepo) DeleteByBusinessID(ctx context.Context, businessID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM caretakers WHERE business_id = $1`, businessID); err != nil {
		return fmt.Errorf("delete caretakers: %w", err)
	}
	return nil
}
