package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Baristo-api/internal/application/usecase"
	"github.com/jhoicas/Baristo-api/internal/domain"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/pkg/logger"
)

// Caso 1: consultar un negocio sin filas siembra los pasos en orden, todos
// pendientes.
func TestRecorrido_SiembraPerezosa(t *testing.T) {
	uc := usecase.NewJourneyUseCase(newFakeJourneyRepo(), logger.Nop())

	resp, err := uc.Get(bizID)
	require.NoError(t, err)
	require.Len(t, resp.Steps, len(entity.JourneySteps()))
	assert.Equal(t, 0, resp.Completed)
	assert.Equal(t, 0, resp.ProgressPct)
	for i, key := range entity.JourneySteps() {
		assert.Equal(t, key, resp.Steps[i].StepKey, "orden de presentación estable")
		assert.False(t, resp.Steps[i].Completed)
	}
}

// Caso 2: marcar y desmarcar un paso manualmente recalcula el avance.
func TestRecorrido_MarcadoManual(t *testing.T) {
	uc := usecase.NewJourneyUseCase(newFakeJourneyRepo(), logger.Nop())

	resp, err := uc.SetStep(bizID, entity.JourneyStepCrearSucursal, true)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Completed)
	assert.Equal(t, 100/len(entity.JourneySteps()), resp.ProgressPct)

	resp, err = uc.SetStep(bizID, entity.JourneyStepCrearSucursal, false)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Completed)
	assert.Equal(t, 0, resp.ProgressPct)

	_, err = uc.SetStep(bizID, "paso-inventado", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Caso 3: el marcado automático es idempotente y nunca falla hacia el caso de
// uso que lo dispara, ni siquiera con claves desconocidas.
func TestRecorrido_MarcadoAutomaticoIdempotente(t *testing.T) {
	repo := newFakeJourneyRepo()
	uc := usecase.NewJourneyUseCase(repo, logger.Nop())

	uc.MarkStepDone(bizID, entity.JourneyStepRecibirLote)
	uc.MarkStepDone(bizID, entity.JourneyStepRecibirLote)
	uc.MarkStepDone(bizID, "clave-desconocida")

	resp, err := uc.Get(bizID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Completed, "marcar dos veces cuenta una")

	step, err := repo.GetByBusinessAndKey(bizID, entity.JourneyStepRecibirLote)
	require.NoError(t, err)
	require.NotNil(t, step)
	assert.True(t, step.Completed)
	assert.NotNil(t, step.CompletedAt)
}
