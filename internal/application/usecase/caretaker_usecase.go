package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/granja-pro/internal/application/dto"
	"github.com/tu-usuario/granja-pro/internal/domain"
	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/internal/domain/permission"
	"github.com/tu-usuario/granja-pro/internal/domain/repository"
)

// CaretakerUseCase gestión del staff de cuidadores del negocio activo.
type CaretakerUseCase struct {
	caretakers repository.CaretakerRepository
	roles      repository.BusinessRoleRepository
}

// NewCaretakerUseCase construye el caso de uso con sus puertos.
func NewCaretakerUseCase(caretakers repository.CaretakerRepository, roles repository.BusinessRoleRepository) *CaretakerUseCase {
	return &CaretakerUseCase{caretakers: caretakers, roles: roles}
}

// Create da de alta un cuidador en el negocio.
func (uc *CaretakerUseCase) Create(ctx context.Context, businessID string, in dto.CreateCaretakerRequest) (*dto.CaretakerResponse, error) {
	c := &entity.Caretaker{
		ID:            uuid.New().String(),
		BusinessID:    businessID,
		Name:          in.Name,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		PaymentType:   in.PaymentType,
		PaymentAmount: in.PaymentAmount,
		PhotoURL:      in.PhotoURL,
		CreatedAt:     time.Now(),
	}
	if err := uc.caretakers.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("crear cuidador: %w", err)
	}
	resp := dto.ToCaretakerResponse(c)
	return &resp, nil
}

// List devuelve los cuidadores del negocio.
func (uc *CaretakerUseCase) List(ctx context.Context, businessID string) ([]dto.CaretakerResponse, error) {
	list, err := uc.caretakers.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("listar cuidadores: %w", err)
	}
	out := make([]dto.CaretakerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ToCaretakerResponse(c))
	}
	return out, nil
}

// Update aplica una actualización parcial sobre un cuidador del negocio.
func (uc *CaretakerUseCase) Update(ctx context.Context, businessID, caretakerID string, in dto.UpdateCaretakerRequest) (*dto.CaretakerResponse, error) {
	existing, err := uc.caretakers.GetByID(ctx, caretakerID)
	if err != nil {
		return nil, fmt.Errorf("buscar cuidador: %w", err)
	}
	if existing == nil || existing.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}

	updated, err := uc.caretakers.UpdatePartial(ctx, caretakerID, entity.CaretakerUpdate{
		Name:          in.Name,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		PaymentType:   in.PaymentType,
		PaymentAmount: in.PaymentAmount,
		PhotoURL:      in.PhotoURL,
	})
	if err != nil {
		return nil, fmt.Errorf("actualizar cuidador: %w", err)
	}
	resp := dto.ToCaretakerResponse(updated)
	return &resp, nil
}

// Delete retira un cuidador del staff.
func (uc *CaretakerUseCase) Delete(ctx context.Context, businessID, caretakerID string) error {
	existing, err := uc.caretakers.GetByID(ctx, caretakerID)
	if err != nil {
		return fmt.Errorf("buscar cuidador: %w", err)
	}
	if existing == nil || existing.BusinessID != businessID {
		return domain.ErrNotFound
	}
	if err := uc.caretakers.Delete(ctx, caretakerID); err != nil {
		return fmt.Errorf("borrar cuidador: %w", err)
	}
	return nil
}

// UpdatePermissions reemplaza el mapa de permisos del binding de un cuidador.
// Solo se persisten claves conocidas por la política; el resto se descarta.
func (uc *CaretakerUseCase) UpdatePermissions(ctx context.Context, userID, businessID string, perms map[string]bool) error {
	binding, err := uc.roles.GetByUserAndBusiness(ctx, userID, businessID)
	if err != nil {
		return fmt.Errorf("buscar binding: %w", err)
	}
	if binding == nil {
		return domain.ErrNotFound
	}
	if binding.Role != entity.RoleCaretaker {
		return domain.ErrConflict
	}

	filtered := make(map[string]bool, len(perms))
	for _, f := range permission.AllFeatures {
		if allowed, ok := perms[string(f)]; ok {
			filtered[string(f)] = allowed
		}
	}
	if err := uc.roles.UpdatePermissions(ctx, binding.ID, filtered); err != nil {
		return fmt.Errorf("actualizar permisos: %w", err)
	}
	return nil
}
