// Package costing contiene el laboratorio de costos (playground) y el
// recosteo asíncrono de productos cuando cambian costos de ingredientes.
package costing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/domain"
	"github.com/jhoicas/Baristo-api/internal/domain/costing"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

// PlaygroundUseCase costea una taza hipotética sin persistir nada. Cada línea
// puede referenciar un ingrediente del catálogo (usa su costo vigente) o ser
// ad-hoc con costo de presentación propio.
type PlaygroundUseCase struct {
	ingredientRepo repository.IngredientRepository
}

// NewPlaygroundUseCase construye el caso de uso.
func NewPlaygroundUseCase(ingredientRepo repository.IngredientRepository) *PlaygroundUseCase {
	return &PlaygroundUseCase{ingredientRepo: ingredientRepo}
}

// Compute calcula el COGS por taza con su desglose y, si llega precio de
// venta, el margen y el recargo; si llega margen objetivo, el precio sugerido.
func (uc *PlaygroundUseCase) Compute(businessID string, in dto.PlaygroundRequest) (*dto.PlaygroundResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.TargetMarginPct != nil {
		cien := decimal.NewFromInt(100)
		if in.TargetMarginPct.IsNegative() || in.TargetMarginPct.GreaterThanOrEqual(cien) {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.SalePrice != nil && in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// Resolver en lote los ingredientes de catálogo referenciados.
	ids := make([]string, 0, len(in.Lines))
	for _, line := range in.Lines {
		if line.IngredientID != "" {
			ids = append(ids, line.IngredientID)
		}
	}
	byID := make(map[string]*entity.Ingredient, len(ids))
	if len(ids) > 0 {
		ingredients, err := uc.ingredientRepo.ListByIDs(ids)
		if err != nil {
			return nil, err
		}
		for _, ing := range ingredients {
			if ing.BusinessID == businessID {
				byID[ing.ID] = ing
			}
		}
	}

	components := make([]costing.Component, 0, len(in.Lines))
	for _, line := range in.Lines {
		if !line.UsagePerCup.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if line.IngredientID != "" {
			ing := byID[line.IngredientID]
			if ing == nil {
				return nil, domain.ErrNotFound
			}
			components = append(components, costing.Component{
				IngredientID: ing.ID,
				Name:         ing.Name,
				Unit:         ing.Unit,
				UsagePerCup:  line.UsagePerCup,
				UnitCost:     ing.UnitCost(),
			})
			continue
		}
		// Línea ad-hoc: exige nombre y presentación válida.
		if line.Name == "" || line.BaseUnitQty.LessThanOrEqual(decimal.Zero) || line.BaseUnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		components = append(components, costing.Component{
			Name:        line.Name,
			Unit:        line.Unit,
			UsagePerCup: line.UsagePerCup,
			UnitCost:    costing.UnitCost(line.BaseUnitCost, line.BaseUnitQty),
		})
	}

	cup := costing.CostCup(components)

	resp := &dto.PlaygroundResponse{
		Lines:      make([]dto.PlaygroundLineResponse, 0, len(cup.Lines)),
		COGSPerCup: cup.COGSPerCup,
	}
	for _, l := range cup.Lines {
		resp.Lines = append(resp.Lines, dto.PlaygroundLineResponse{
			IngredientID: l.IngredientID,
			Name:         l.Name,
			Unit:         l.Unit,
			UsagePerCup:  l.UsagePerCup,
			UnitCost:     l.UnitCost,
			LineCost:     l.LineCost,
			SharePct:     l.SharePct,
		})
	}

	if in.SalePrice != nil {
		price := *in.SalePrice
		margin := costing.MarginPct(price, cup.COGSPerCup)
		markup := costing.MarkupPct(price, cup.COGSPerCup)
		amount := price.Sub(cup.COGSPerCup)
		resp.SalePrice = &price
		resp.MarginPct = &margin
		resp.MarkupPct = &markup
		resp.MarginAmount = &amount
	}
	if in.TargetMarginPct != nil {
		suggested := costing.SuggestedPrice(cup.COGSPerCup, *in.TargetMarginPct)
		resp.SuggestedPrice = &suggested
	}
	return resp, nil
}
