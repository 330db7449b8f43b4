// Package business contiene el registro de negocios accesibles por un usuario:
// carga, selección del activo, creación, borrado en cascada y actualización parcial.
package business

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/granja-pro/internal/domain"
	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/internal/domain/permission"
	"github.com/tu-usuario/granja-pro/internal/domain/repository"
	"github.com/tu-usuario/granja-pro/pkg/logger"
)

// placeholderIDLen caracteres del ID usados para el nombre parcial de un placeholder.
const placeholderIDLen = 8

// Registry materializa la lista de negocios que un usuario puede ver y aplica las
// operaciones de ciclo de vida. No guarda estado de sesión: eso es del session.Manager.
type Registry struct {
	businesses repository.BusinessRepository
	roles      repository.BusinessRoleRepository
	txs        repository.TransactionRepository
	expenses   repository.ExpenseRepository
	weights    repository.WeightRecordRepository
	health     repository.HealthRecordRepository
	goats      repository.GoatRepository
	caretakers repository.CaretakerRepository
	log        *logger.Logger
}

// NewRegistry construye el registro con todos los puertos que necesita el borrado en cascada.
func NewRegistry(
	businesses repository.BusinessRepository,
	roles repository.BusinessRoleRepository,
	txs repository.TransactionRepository,
	expenses repository.ExpenseRepository,
	weights repository.WeightRecordRepository,
	health repository.HealthRecordRepository,
	goats repository.GoatRepository,
	caretakers repository.CaretakerRepository,
	log *logger.Logger,
) *Registry {
	return &Registry{
		businesses: businesses,
		roles:      roles,
		txs:        txs,
		expenses:   expenses,
		weights:    weights,
		health:     health,
		goats:      goats,
		caretakers: caretakers,
		log:        log,
	}
}

// LoadForRole carga los negocios referenciados por los bindings del usuario.
//
// owner: cualquier fallo de consulta es fatal (el propietario debe ver datos
// autoritativos). owner con cero negocios NO es error: señala "necesita onboarding".
//
// caretaker: si la consulta vuelve vacía (reglas de acceso del almacén pueden ocultar
// filas aún no autorizadas) se sintetizan placeholders, uno por binding, con nombre
// parcial derivado del ID; el segundo valor devuelve los IDs a rellenar en segundo
// plano. caretaker con cero bindings es irrecuperable: domain.ErrNoAccess.
func (r *Registry) LoadForRole(ctx context.Context, bindings []*entity.BusinessRole, role string) ([]*entity.Business, []string, error) {
	ids := make([]string, 0, len(bindings))
	for _, b := range bindings {
		ids = append(ids, b.BusinessID)
	}

	if len(ids) == 0 {
		if role == entity.RoleCaretaker {
			return nil, nil, domain.ErrNoAccess
		}
		return nil, nil, nil // owner sin negocios: flujo de onboarding
	}

	list, err := r.businesses.ListByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("cargar negocios: %w", err)
	}

	if role == entity.RoleCaretaker && len(list) == 0 {
		// Acceso a un negocio con nombre desconocido sigue siendo acceso válido.
		placeholders := make([]*entity.Business, 0, len(ids))
		for _, id := range ids {
			placeholders = append(placeholders, synthesizePlaceholder(id))
		}
		return placeholders, ids, nil
	}

	return list, nil, nil
}

// synthesizePlaceholder crea un negocio provisional con nombre parcial determinista.
func synthesizePlaceholder(id string) *entity.Business {
	short := id
	if len(short) > placeholderIDLen {
		short = short[:placeholderIDLen]
	}
	return &entity.Business{
		ID:          id,
		Name:        "Negocio " + short,
		Placeholder: true,
	}
}

// SelectActive decide el negocio activo inicial. Para owner con preferencia guardada
// que siga presente en la lista, esa; en cualquier otro caso el primero de la lista
// (orden de inserción del almacén, sin orden implícito). Devuelve nil con lista vacía.
func SelectActive(list []*entity.Business, role, storedID string) *entity.Business {
	if len(list) == 0 {
		return nil
	}
	if role == entity.RoleOwner && storedID != "" {
		for _, b := range list {
			if b.ID == storedID {
				return b
			}
		}
	}
	return list[0]
}

// FetchNames consulta los nombres reales para el backfill de placeholders.
func (r *Registry) FetchNames(ctx context.Context, ids []string) ([]repository.BusinessNameInfo, error) {
	return r.businesses.FetchNames(ctx, ids)
}

// CreateInput datos para crear un negocio.
type CreateInput struct {
	Name               string
	Description        *string
	Address            string
	PaymentModelType   string
	PaymentModelAmount decimal.Decimal
}

// Create inserta el negocio y el binding owner del creador. Cualquier fallo del
// almacén se envuelve en *domain.CreateBusinessError.
//
// TODO: compensar el alta del negocio si falla el insert del binding; hoy la fila
// queda sin binding owner (comportamiento heredado, pendiente de decidir rollback).
func (r *Registry) Create(ctx context.Context, userID string, in CreateInput) (*entity.Business, *entity.BusinessRole, error) {
	now := time.Now()
	b := &entity.Business{
		ID:                 uuid.New().String(),
		Name:               in.Name,
		Description:        in.Description,
		Address:            in.Address,
		PaymentModelType:   in.PaymentModelType,
		PaymentModelAmount: in.PaymentModelAmount,
		CreatedBy:          userID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := r.businesses.Create(ctx, b); err != nil {
		return nil, nil, &domain.CreateBusinessError{Err: err}
	}

	binding := &entity.BusinessRole{
		ID:          uuid.New().String(),
		UserID:      userID,
		BusinessID:  b.ID,
		Role:        entity.RoleOwner,
		Permissions: nil, // owner no usa mapa de permisos
		CreatedAt:   now,
	}
	if err := r.roles.Create(ctx, binding); err != nil {
		return nil, nil, &domain.CreateBusinessError{Err: err}
	}

	return b, binding, nil
}

// Delete verifica que el solicitante sea el creador (defensa en profundidad aunque el
// almacén también lo exija) y borra en cascada en orden fijo:
// roles → transacciones → gastos → pesos → sanitarios → animales → cuidadores → negocio.
// Sin rollback ante fallo parcial: el primer error corta y se propaga.
func (r *Registry) Delete(ctx context.Context, userID, businessID string) error {
	b, err := r.businesses.GetByID(ctx, businessID)
	if err != nil {
		return fmt.Errorf("verificar negocio: %w", err)
	}
	if b == nil {
		return domain.ErrNotFound
	}
	if b.CreatedBy != userID {
		return domain.ErrNotAuthorized
	}

	steps := []struct {
		name string
		fn   func(context.Context, string) error
	}{
		{"roles", r.roles.DeleteByBusinessID},
		{"transacciones", r.txs.DeleteByBusinessID},
		{"gastos", r.expenses.DeleteByBusinessID},
		{"pesos", r.weights.DeleteByBusinessID},
		{"sanitarios", r.health.DeleteByBusinessID},
		{"animales", r.goats.DeleteByBusinessID},
		{"cuidadores", r.caretakers.DeleteByBusinessID},
	}
	for _, step := range steps {
		if err := step.fn(ctx, businessID); err != nil {
			return fmt.Errorf("borrar %s del negocio: %w", step.name, err)
		}
	}
	if err := r.businesses.Delete(ctx, businessID); err != nil {
		return fmt.Errorf("borrar negocio: %w", err)
	}

	r.log.Info().Str("business_id", businessID).Msg("negocio eliminado en cascada")
	return nil
}

// UpdateSettings aplica una actualización parcial: los campos nil del update
// conservan el valor anterior (contrato merge, nunca overwrite total) y se
// actualiza updated_at. Restringido al creador del negocio.
func (r *Registry) UpdateSettings(ctx context.Context, userID, businessID string, update entity.BusinessUpdate) (*entity.Business, error) {
	b, err := r.businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("verificar negocio: %w", err)
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if b.CreatedBy != userID {
		return nil, domain.ErrNotAuthorized
	}

	if update.Name != nil {
		b.Name = *update.Name
	}
	if update.Description != nil {
		b.Description = update.Description
	}
	if update.Address != nil {
		b.Address = *update.Address
	}
	if update.PaymentModelType != nil {
		b.PaymentModelType = *update.PaymentModelType
	}
	if update.PaymentModelAmount != nil {
		b.PaymentModelAmount = *update.PaymentModelAmount
	}
	b.UpdatedAt = time.Now()

	if err := r.businesses.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("actualizar negocio: %w", err)
	}
	return b, nil
}

// EffectiveRole resuelve rol y permisos efectivos del usuario en un negocio concreto.
// El rol siempre es por-negocio: un usuario puede ser owner de uno y caretaker de otro.
// Devuelve rol "" si no hay binding.
func (r *Registry) EffectiveRole(ctx context.Context, userID, businessID string) (string, map[permission.Feature]bool, error) {
	binding, err := r.roles.GetByUserAndBusiness(ctx, userID, businessID)
	if err != nil {
		return "", nil, fmt.Errorf("resolver rol en negocio: %w", err)
	}
	if binding == nil {
		return "", nil, nil
	}
	if binding.Role == entity.RoleCaretaker {
		return binding.Role, permission.Resolve(binding.Permissions), nil
	}
	return binding.Role, nil, nil
}
