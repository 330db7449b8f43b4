package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/granja-pro/internal/application/dto"
	"github.com/tu-usuario/granja-pro/internal/domain"
	"github.com/tu-usuario/granja-pro/internal/domain/entity"
	"github.com/tu-usuario/granja-pro/internal/domain/repository"
	"github.com/tu-usuario/granja-pro/pkg/logger"
)

// GoatUseCase gestión de animales: alta, venta, pesos y movimientos asociados.
type GoatUseCase struct {
	goats   repository.GoatRepository
	weights repository.WeightRecordRepository
	txs     repository.TransactionRepository
	log     *logger.Logger
}

// NewGoatUseCase construye el caso de uso con sus puertos.
func NewGoatUseCase(
	goats repository.GoatRepository,
	weights repository.WeightRecordRepository,
	txs repository.TransactionRepository,
	log *logger.Logger,
) *GoatUseCase {
	return &GoatUseCase{goats: goats, weights: weights, txs: txs, log: log}
}

// Create da de alta un animal y registra la compra como movimiento de egreso.
func (uc *GoatUseCase) Create(ctx context.Context, businessID string, in dto.CreateGoatRequest) (*dto.GoatResponse, error) {
	now := time.Now()
	g := &entity.Goat{
		ID:            uuid.New().String(),
		BusinessID:    businessID,
		TagNumber:     in.TagNumber,
		Breed:         in.Breed,
		Status:        entity.GoatStatusActive,
		PurchasePrice: in.PurchasePrice,
		PurchaseDate:  in.PurchaseDate,
		CaretakerID:   in.CaretakerID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.goats.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("crear animal: %w", err)
	}

	if !in.PurchasePrice.IsZero() {
		uc.recordTransaction(ctx, g, entity.TransactionExpense,
			"Compra de animal "+g.TagNumber, in.PurchasePrice, in.PurchaseDate)
	}

	resp := dto.ToGoatResponse(g)
	return &resp, nil
}

// GetByID devuelve un animal del negocio; nil si no existe o es de otro negocio.
func (uc *GoatUseCase) GetByID(ctx context.Context, businessID, goatID string) (*dto.GoatResponse, error) {
	g, err := uc.goats.GetByID(ctx, goatID)
	if err != nil {
		return nil, fmt.Errorf("buscar animal: %w", err)
	}
	if g == nil || g.BusinessID != businessID {
		return nil, nil
	}
	resp := dto.ToGoatResponse(g)
	return &resp, nil
}

// List devuelve los animales del negocio.
func (uc *GoatUseCase) List(ctx context.Context, businessID string) ([]dto.GoatResponse, error) {
	list, err := uc.goats.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("listar animales: %w", err)
	}
	out := make([]dto.GoatResponse, 0, len(list))
	for _, g := range list {
		out = append(out, dto.ToGoatResponse(g))
	}
	return out, nil
}

// Update aplica cambios a un animal. Marcarlo como vendido exige precio de venta;
// la venta registra además un movimiento de ingreso.
func (uc *GoatUseCase) Update(ctx context.Context, businessID, goatID string, in dto.UpdateGoatRequest) (*dto.GoatResponse, error) {
	g, err := uc.goats.GetByID(ctx, goatID)
	if err != nil {
		return nil, fmt.Errorf("buscar animal: %w", err)
	}
	if g == nil || g.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}

	wasSold := g.Status == entity.GoatStatusSold
	if in.TagNumber != nil {
		g.TagNumber = *in.TagNumber
	}
	if in.Breed != nil {
		g.Breed = *in.Breed
	}
	if in.Status != nil {
		g.Status = *in.Status
	}
	if in.SalePrice != nil {
		g.SalePrice = in.SalePrice
	}
	if in.SaleDate != nil {
		g.SaleDate = in.SaleDate
	}
	if in.CaretakerID != nil {
		g.CaretakerID = in.CaretakerID
	}
	if g.Status == entity.GoatStatusSold && g.SalePrice == nil {
		return nil, fmt.Errorf("venta sin precio: %w", domain.ErrInvalidInput)
	}
	g.UpdatedAt = time.Now()

	if err := uc.goats.Update(ctx, g); err != nil {
		return nil, fmt.Errorf("actualizar animal: %w", err)
	}

	if !wasSold && g.Status == entity.GoatStatusSold {
		saleDate := g.UpdatedAt
		if g.SaleDate != nil {
			saleDate = *g.SaleDate
		}
		uc.recordTransaction(ctx, g, entity.TransactionIncome,
			"Venta de animal "+g.TagNumber, *g.SalePrice, saleDate)
	}

	resp := dto.ToGoatResponse(g)
	return &resp, nil
}

// AddWeight registra un peso del animal.
func (uc *GoatUseCase) AddWeight(ctx context.Context, businessID, goatID string, in dto.CreateWeightRequest) (*dto.WeightResponse, error) {
	g, err := uc.goats.GetByID(ctx, goatID)
	if err != nil {
		return nil, fmt.Errorf("buscar animal: %w", err)
	}
	if g == nil || g.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}

	w := &entity.WeightRecord{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		GoatID:     goatID,
		WeightKg:   in.WeightKg,
		Date:       in.Date,
		CreatedAt:  time.Now(),
	}
	if err := uc.weights.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("registrar peso: %w", err)
	}
	return &dto.WeightResponse{ID: w.ID, GoatID: w.GoatID, WeightKg: w.WeightKg, Date: w.Date}, nil
}

// ListWeights devuelve el historial de pesos de un animal.
func (uc *GoatUseCase) ListWeights(ctx context.Context, businessID, goatID string) ([]dto.WeightResponse, error) {
	g, err := uc.goats.GetByID(ctx, goatID)
	if err != nil {
		return nil, fmt.Errorf("buscar animal: %w", err)
	}
	if g == nil || g.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.weights.ListByGoat(ctx, goatID)
	if err != nil {
		return nil, fmt.Errorf("listar pesos: %w", err)
	}
	out := make([]dto.WeightResponse, 0, len(list))
	for _, w := range list {
		out = append(out, dto.WeightResponse{ID: w.ID, GoatID: w.GoatID, WeightKg: w.WeightKg, Date: w.Date})
	}
	return out, nil
}

// recordTransaction registra el movimiento financiero derivado de una compra o
// venta. Mejor esfuerzo: el libro de movimientos es derivado, no fuente de verdad.
func (uc *GoatUseCase) recordTransaction(ctx context.Context, g *entity.Goat, txType, description string, amount decimal.Decimal, date time.Time) {
	tx := &entity.Transaction{
		ID:          uuid.New().String(),
		BusinessID:  g.BusinessID,
		GoatID:      &g.ID,
		Type:        txType,
		Description: description,
		Amount:      amount,
		Date:        date,
		CreatedAt:   time.Now(),
	}
	if err := uc.txs.Create(ctx, tx); err != nil {
		uc.log.Warn().Err(err).Str("goat_id", g.ID).Str("tipo", txType).
			Msg("no se pudo registrar el movimiento financiero del animal")
	}
}
