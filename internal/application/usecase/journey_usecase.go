package usecase

import (
	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/domain"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
	"github.com/jhoicas/Baristo-api/pkg/logger"
)

// JourneyUseCase expone el recorrido de puesta en marcha: consulta con avance
// porcentual, marcado manual y marcado automático desde otros casos de uso.
type JourneyUseCase struct {
	repo repository.JourneyRepository
	log  *logger.Logger
}

// NewJourneyUseCase construye el caso de uso.
func NewJourneyUseCase(repo repository.JourneyRepository, log *logger.Logger) *JourneyUseCase {
	return &JourneyUseCase{repo: repo, log: log}
}

var _ JourneyMarker = (*JourneyUseCase)(nil)

// Get devuelve los pasos del recorrido con su avance. Si el negocio aún no
// tiene filas sembradas (negocios anteriores a la función), las siembra.
func (uc *JourneyUseCase) Get(businessID string) (*dto.JourneyResponse, error) {
	steps, err := uc.repo.ListByBusiness(businessID)
	if err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		if err := uc.repo.SeedSteps(businessID); err != nil {
			return nil, err
		}
		steps, err = uc.repo.ListByBusiness(businessID)
		if err != nil {
			return nil, err
		}
	}
	return toJourneyResponse(steps), nil
}

// SetStep marca o desmarca un paso manualmente. ErrNotFound si la clave no es
// un paso conocido.
func (uc *JourneyUseCase) SetStep(businessID, stepKey string, done bool) (*dto.JourneyResponse, error) {
	if !entity.IsJourneyStep(stepKey) {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.SetCompleted(businessID, stepKey, done); err != nil {
		return nil, err
	}
	return uc.Get(businessID)
}

// MarkStepDone marca un paso al ocurrir la acción correspondiente. Es
// best-effort: los errores se registran y nunca interrumpen la operación que
// disparó el marcado.
func (uc *JourneyUseCase) MarkStepDone(businessID, stepKey string) {
	if !entity.IsJourneyStep(stepKey) {
		uc.log.Warn().Str("step", stepKey).Msg("paso de recorrido desconocido")
		return
	}
	if err := uc.repo.SetCompleted(businessID, stepKey, true); err != nil {
		uc.log.Warn().Err(err).Str("business_id", businessID).Str("step", stepKey).
			Msg("no se pudo marcar el paso del recorrido")
	}
}

func toJourneyResponse(steps []*entity.JourneyStep) *dto.JourneyResponse {
	items := make([]dto.JourneyStepResponse, 0, len(steps))
	completed := 0
	for _, s := range steps {
		if s.Completed {
			completed++
		}
		items = append(items, dto.JourneyStepResponse{
			StepKey:     s.StepKey,
			Completed:   s.Completed,
			CompletedAt: s.CompletedAt,
		})
	}
	progress := 0
	if len(steps) > 0 {
		progress = completed * 100 / len(steps)
	}
	return &dto.JourneyResponse{
		Steps:       items,
		Completed:   completed,
		Total:       len(steps),
		ProgressPct: progress,
	}
}
