package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Baristo-api/internal/application/auth"
	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/domain"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
	"github.com/jhoicas/Baristo-api/pkg/jwt"
	"github.com/jhoicas/Baristo-api/pkg/logger"
)

// BusinessUseCase onboarding y gestión del negocio. Crear un negocio también
// crea el usuario dueño (admin), siembra los pasos del recorrido y devuelve
// un token de sesión para entrar directo a la app.
type BusinessUseCase struct {
	businessRepo repository.BusinessRepository
	userRepo     repository.UserRepository
	journeyRepo  repository.JourneyRepository
	jwtCfg       auth.JWTConfig
	log          *logger.Logger
}

// NewBusinessUseCase construye el caso de uso.
func NewBusinessUseCase(
	businessRepo repository.BusinessRepository,
	userRepo repository.UserRepository,
	journeyRepo repository.JourneyRepository,
	jwtCfg auth.JWTConfig,
	log *logger.Logger,
) *BusinessUseCase {
	return &BusinessUseCase{
		businessRepo: businessRepo,
		userRepo:     userRepo,
		journeyRepo:  journeyRepo,
		jwtCfg:       jwtCfg,
		log:          log,
	}
}

// Create crea el negocio con su dueño. Devuelve ErrDuplicate si el código ya
// existe y ErrEmailAlreadyExists si el email del dueño ya está registrado.
func (uc *BusinessUseCase) Create(in dto.CreateBusinessRequest) (*dto.CreateBusinessResponse, error) {
	existing, _ := uc.businessRepo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if taken, _ := uc.userRepo.GetByEmail(in.OwnerEmail); taken != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.OwnerPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	currency := in.Currency
	if currency == "" {
		currency = "COP"
	}
	business := &entity.Business{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Currency:  currency,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.businessRepo.Create(business); err != nil {
		return nil, err
	}

	owner := &entity.User{
		ID:           uuid.New().String(),
		BusinessID:   business.ID,
		Email:        in.OwnerEmail,
		PasswordHash: string(hash),
		Name:         in.OwnerName,
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(owner); err != nil {
		// Compensación: el negocio quedó sin dueño y no sirve de nada.
		if delErr := uc.businessRepo.Delete(business.ID); delErr != nil {
			uc.log.Error().Err(delErr).Str("business_id", business.ID).
				Msg("no se pudo revertir la creación del negocio")
		}
		return nil, err
	}

	if err := uc.journeyRepo.SeedSteps(business.ID); err != nil {
		uc.log.Warn().Err(err).Str("business_id", business.ID).
			Msg("no se pudo sembrar el recorrido de puesta en marcha")
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, owner.ID, business.ID, owner.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	return &dto.CreateBusinessResponse{
		Business: *toBusinessResponse(business),
		Owner:    *toUserResponse(owner),
		Token:    token,
	}, nil
}

// GetByID obtiene un negocio por ID.
func (uc *BusinessUseCase) GetByID(id string) (*dto.BusinessResponse, error) {
	business, err := uc.businessRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrNotFound
	}
	return toBusinessResponse(business), nil
}

// Update actualiza los datos del negocio. El código no cambia.
func (uc *BusinessUseCase) Update(id string, in dto.UpdateBusinessRequest) (*dto.BusinessResponse, error) {
	business, err := uc.businessRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		business.Name = *in.Name
	}
	if in.Address != nil {
		business.Address = *in.Address
	}
	if in.Phone != nil {
		business.Phone = *in.Phone
	}
	if in.Email != nil {
		business.Email = *in.Email
	}
	if in.Currency != nil {
		business.Currency = *in.Currency
	}
	if in.Status != nil {
		business.Status = *in.Status
	}
	business.UpdatedAt = time.Now()
	if err := uc.businessRepo.Update(business); err != nil {
		return nil, err
	}
	return toBusinessResponse(business), nil
}

// List lista negocios con paginación (uso administrativo).
func (uc *BusinessUseCase) List(limit, offset int) ([]dto.BusinessResponse, error) {
	list, err := uc.businessRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BusinessResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBusinessResponse(b))
	}
	return items, nil
}

func toBusinessResponse(b *entity.Business) *dto.BusinessResponse {
	if b == nil {
		return nil
	}
	return &dto.BusinessResponse{
		ID:        b.ID,
		Code:      b.Code,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		Email:     b.Email,
		Currency:  b.Currency,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		BusinessID: u.BusinessID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Status:     u.Status,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
