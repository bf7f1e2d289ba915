package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/domain"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

const targetDateLayout = "2006-01-02"

// SalesTargetUseCase casos de uso para metas diarias de venta. Una meta por
// (sucursal, fecha); la fecha se normaliza a medianoche UTC.
type SalesTargetUseCase struct {
	repo       repository.SalesTargetRepository
	branchRepo repository.BranchRepository
	journey    JourneyMarker
}

// NewSalesTargetUseCase construye el caso de uso.
func NewSalesTargetUseCase(
	repo repository.SalesTargetRepository,
	branchRepo repository.BranchRepository,
	journey JourneyMarker,
) *SalesTargetUseCase {
	return &SalesTargetUseCase{repo: repo, branchRepo: branchRepo, journey: journey}
}

// Create crea la meta de un día. ErrDuplicate si la sucursal ya tiene meta
// para esa fecha.
func (uc *SalesTargetUseCase) Create(businessID string, in dto.CreateSalesTargetRequest) (*dto.SalesTargetResponse, error) {
	date, err := parseTargetDate(in.Date)
	if err != nil {
		return nil, err
	}
	if in.TargetAmount.IsNegative() || in.TargetCups < 0 {
		return nil, domain.ErrInvalidInput
	}
	branch, err := uc.branchRepo.GetByID(in.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil || branch.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	existing, _ := uc.repo.GetByBranchAndDate(in.BranchID, date)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	target := &entity.DailySalesTarget{
		ID:           uuid.New().String(),
		BusinessID:   businessID,
		BranchID:     in.BranchID,
		Date:         date,
		TargetAmount: in.TargetAmount,
		TargetCups:   in.TargetCups,
		Note:         in.Note,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(target); err != nil {
		return nil, err
	}
	uc.journey.MarkStepDone(businessID, entity.JourneyStepDefinirMeta)
	return toSalesTargetResponse(target), nil
}

// GetByID obtiene una meta del negocio.
func (uc *SalesTargetUseCase) GetByID(businessID, id string) (*dto.SalesTargetResponse, error) {
	target, err := uc.findOwned(businessID, id)
	if err != nil {
		return nil, err
	}
	return toSalesTargetResponse(target), nil
}

// Update actualiza los montos de una meta. La fecha y la sucursal no cambian.
func (uc *SalesTargetUseCase) Update(businessID, id string, in dto.UpdateSalesTargetRequest) (*dto.SalesTargetResponse, error) {
	target, err := uc.findOwned(businessID, id)
	if err != nil {
		return nil, err
	}
	if in.TargetAmount != nil {
		if in.TargetAmount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		target.TargetAmount = *in.TargetAmount
	}
	if in.TargetCups != nil {
		if *in.TargetCups < 0 {
			return nil, domain.ErrInvalidInput
		}
		target.TargetCups = *in.TargetCups
	}
	if in.Note != nil {
		target.Note = *in.Note
	}
	target.UpdatedAt = time.Now()
	if err := uc.repo.Update(target); err != nil {
		return nil, err
	}
	return toSalesTargetResponse(target), nil
}

// Delete elimina una meta.
func (uc *SalesTargetUseCase) Delete(businessID, id string) error {
	if _, err := uc.findOwned(businessID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

// ListRange devuelve las metas de [from, to] para la vista calendario.
// Con branchID vacío cubre todas las sucursales del negocio.
func (uc *SalesTargetUseCase) ListRange(businessID, branchID, fromStr, toStr string) (*dto.SalesTargetListResponse, error) {
	from, err := parseTargetDate(fromStr)
	if err != nil {
		return nil, err
	}
	to, err := parseTargetDate(toStr)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}

	var list []*entity.DailySalesTarget
	if branchID != "" {
		branch, err := uc.branchRepo.GetByID(branchID)
		if err != nil {
			return nil, err
		}
		if branch == nil || branch.BusinessID != businessID {
			return nil, domain.ErrNotFound
		}
		list, err = uc.repo.ListByBranchRange(branchID, from, to)
		if err != nil {
			return nil, err
		}
	} else {
		list, err = uc.repo.ListByBusinessRange(businessID, from, to)
		if err != nil {
			return nil, err
		}
	}

	items := make([]dto.SalesTargetResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toSalesTargetResponse(t))
	}
	return &dto.SalesTargetListResponse{
		BranchID: branchID,
		From:     from.Format(targetDateLayout),
		To:       to.Format(targetDateLayout),
		Items:    items,
	}, nil
}

// MonthSummary agrega las metas de un mes (formato "2006-01").
func (uc *SalesTargetUseCase) MonthSummary(businessID, month string) (*dto.SalesTargetSummaryResponse, error) {
	start, err := time.ParseInLocation("2006-01", month, time.UTC)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	end := start.AddDate(0, 1, -1) // último día del mes

	list, err := uc.repo.ListByBusinessRange(businessID, start, end)
	if err != nil {
		return nil, err
	}

	days := make(map[string]bool, len(list))
	totalAmount := decimal.Zero
	var totalCups int64
	for _, t := range list {
		days[t.Date.Format(targetDateLayout)] = true
		totalAmount = totalAmount.Add(t.TargetAmount)
		totalCups += t.TargetCups
	}
	avg := decimal.Zero
	if len(days) > 0 {
		avg = totalAmount.Div(decimal.NewFromInt(int64(len(days)))).Round(2)
	}
	return &dto.SalesTargetSummaryResponse{
		Month:       month,
		Days:        len(days),
		TotalAmount: totalAmount,
		TotalCups:   totalCups,
		AvgAmount:   avg,
	}, nil
}

func (uc *SalesTargetUseCase) findOwned(businessID, id string) (*entity.DailySalesTarget, error) {
	target, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if target == nil || target.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	return target, nil
}

// parseTargetDate interpreta "2006-01-02" como medianoche UTC.
func parseTargetDate(s string) (time.Time, error) {
	date, err := time.ParseInLocation(targetDateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return date, nil
}

func toSalesTargetResponse(t *entity.DailySalesTarget) *dto.SalesTargetResponse {
	if t == nil {
		return nil
	}
	return &dto.SalesTargetResponse{
		ID:           t.ID,
		BranchID:     t.BranchID,
		Date:         t.Date.Format(targetDateLayout),
		TargetAmount: t.TargetAmount,
		TargetCups:   t.TargetCups,
		Note:         t.Note,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
