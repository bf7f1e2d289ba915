package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/domain"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

// BranchUseCase casos de uso CRUD para sucursales. La primera sucursal del
// negocio queda marcada como principal.
type BranchUseCase struct {
	repo    repository.BranchRepository
	journey JourneyMarker
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(repo repository.BranchRepository, journey JourneyMarker) *BranchUseCase {
	return &BranchUseCase{repo: repo, journey: journey}
}

// Create crea una sucursal y marca el paso crear_sucursal del recorrido.
func (uc *BranchUseCase) Create(businessID string, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	siblings, err := uc.repo.ListByBusiness(businessID, 1, 0)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	branch := &entity.Branch{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		Name:       in.Name,
		Address:    in.Address,
		Phone:      in.Phone,
		IsMain:     len(siblings) == 0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(branch); err != nil {
		return nil, err
	}
	uc.journey.MarkStepDone(businessID, entity.JourneyStepCrearSucursal)
	return toBranchResponse(branch), nil
}

// GetByID obtiene una sucursal del negocio. ErrNotFound si no existe o
// pertenece a otro negocio.
func (uc *BranchUseCase) GetByID(businessID, id string) (*dto.BranchResponse, error) {
	branch, err := uc.findOwned(businessID, id)
	if err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// Update actualiza una sucursal.
func (uc *BranchUseCase) Update(businessID, id string, in dto.UpdateBranchRequest) (*dto.BranchResponse, error) {
	branch, err := uc.findOwned(businessID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		branch.Name = *in.Name
	}
	if in.Address != nil {
		branch.Address = *in.Address
	}
	if in.Phone != nil {
		branch.Phone = *in.Phone
	}
	branch.UpdatedAt = time.Now()
	if err := uc.repo.Update(branch); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// List lista las sucursales del negocio (la principal primero).
func (uc *BranchUseCase) List(businessID string, limit, offset int) (*dto.BranchListResponse, error) {
	list, err := uc.repo.ListByBusiness(businessID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBranchResponse(b))
	}
	return &dto.BranchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una sucursal. ErrConflict si tiene stock o movimientos.
func (uc *BranchUseCase) Delete(businessID, id string) error {
	if _, err := uc.findOwned(businessID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

// findOwned obtiene la sucursal verificando que pertenezca al negocio.
func (uc *BranchUseCase) findOwned(businessID, id string) (*entity.Branch, error) {
	branch, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if branch == nil || branch.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	return branch, nil
}

func toBranchResponse(b *entity.Branch) *dto.BranchResponse {
	if b == nil {
		return nil
	}
	return &dto.BranchResponse{
		ID:         b.ID,
		BusinessID: b.BusinessID,
		Name:       b.Name,
		Address:    b.Address,
		Phone:      b.Phone,
		IsMain:     b.IsMain,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
