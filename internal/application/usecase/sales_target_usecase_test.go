package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/application/usecase"
	"github.com/jhoicas/Baristo-api/internal/domain"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
)

func newSalesTargetUseCase() (*usecase.SalesTargetUseCase, *spyJourney) {
	branches := &fakeBranchRepo{branches: map[string]*entity.Branch{
		branchID:   {ID: branchID, BusinessID: bizID, Name: "Sucursal Centro"},
		"branch-2": {ID: "branch-2", BusinessID: bizID, Name: "Sucursal Norte"},
	}}
	journey := &spyJourney{}
	uc := usecase.NewSalesTargetUseCase(
		&fakeSalesTargetRepo{targets: map[string]*entity.DailySalesTarget{}},
		branches,
		journey,
	)
	return uc, journey
}

// Caso 1: crear la meta del día marca el paso del recorrido; repetir la fecha
// en la misma sucursal es duplicado.
func TestMetas_CrearYDuplicada(t *testing.T) {
	uc, journey := newSalesTargetUseCase()

	resp, err := uc.Create(bizID, dto.CreateSalesTargetRequest{
		BranchID:     branchID,
		Date:         "2026-03-05",
		TargetAmount: dec("300000"),
		TargetCups:   150,
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-05", resp.Date)
	assert.Contains(t, journey.marked, entity.JourneyStepDefinirMeta)

	_, err = uc.Create(bizID, dto.CreateSalesTargetRequest{
		BranchID:     branchID,
		Date:         "2026-03-05",
		TargetAmount: dec("999"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "misma sucursal y fecha")

	// Otra fecha en la misma sucursal sí es válida.
	_, err = uc.Create(bizID, dto.CreateSalesTargetRequest{
		BranchID:     branchID,
		Date:         "2026-03-06",
		TargetAmount: dec("280000"),
	})
	assert.NoError(t, err)
}

// Caso 2: fechas malformadas y montos negativos se rechazan.
func TestMetas_EntradaInvalida(t *testing.T) {
	uc, _ := newSalesTargetUseCase()

	_, err := uc.Create(bizID, dto.CreateSalesTargetRequest{
		BranchID: branchID, Date: "05/03/2026", TargetAmount: dec("1000"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "formato de fecha")

	_, err = uc.Create(bizID, dto.CreateSalesTargetRequest{
		BranchID: branchID, Date: "2026-03-05", TargetAmount: dec("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto negativo")

	_, err = uc.ListRange(bizID, "", "2026-03-10", "2026-03-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "rango invertido")
}

// Caso 3: la sucursal de otro negocio es invisible.
func TestMetas_SucursalAjena_RetornaNotFound(t *testing.T) {
	uc, _ := newSalesTargetUseCase()

	_, err := uc.Create("biz-ajeno", dto.CreateSalesTargetRequest{
		BranchID: branchID, Date: "2026-03-05", TargetAmount: dec("1000"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Caso 4: la actualización cambia montos pero nunca la fecha ni la sucursal.
func TestMetas_ActualizarSoloMontos(t *testing.T) {
	uc, _ := newSalesTargetUseCase()
	created, err := uc.Create(bizID, dto.CreateSalesTargetRequest{
		BranchID: branchID, Date: "2026-03-05", TargetAmount: dec("300000"), TargetCups: 150,
	})
	require.NoError(t, err)

	cups := int64(180)
	updated, err := uc.Update(bizID, created.ID, dto.UpdateSalesTargetRequest{
		TargetAmount: decPtr("350000"),
		TargetCups:   &cups,
	})
	require.NoError(t, err)
	assert.True(t, updated.TargetAmount.Equal(dec("350000")))
	assert.Equal(t, int64(180), updated.TargetCups)
	assert.Equal(t, "2026-03-05", updated.Date, "la fecha no cambia")
	assert.Equal(t, branchID, updated.BranchID)

	_, err = uc.Update(bizID, created.ID, dto.UpdateSalesTargetRequest{
		TargetAmount: decPtr("-10"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Caso 5: el resumen mensual agrega por días distintos: dos sucursales con
// meta el mismo día cuentan un solo día.
func TestMetas_ResumenDeMes(t *testing.T) {
	uc, _ := newSalesTargetUseCase()

	for _, in := range []dto.CreateSalesTargetRequest{
		{BranchID: branchID, Date: "2026-03-05", TargetAmount: dec("300000"), TargetCups: 150},
		{BranchID: "branch-2", Date: "2026-03-05", TargetAmount: dec("200000"), TargetCups: 100},
		{BranchID: branchID, Date: "2026-03-20", TargetAmount: dec("400000"), TargetCups: 200},
		// Fuera del mes consultado.
		{BranchID: branchID, Date: "2026-04-01", TargetAmount: dec("999999"), TargetCups: 999},
	} {
		_, err := uc.Create(bizID, in)
		require.NoError(t, err)
	}

	summary, err := uc.MonthSummary(bizID, "2026-03")
	require.NoError(t, err)
	assert.Equal(t, "2026-03", summary.Month)
	assert.Equal(t, 2, summary.Days, "5 y 20 de marzo")
	assert.True(t, summary.TotalAmount.Equal(dec("900000")), "total: %s", summary.TotalAmount)
	assert.Equal(t, int64(450), summary.TotalCups)
	assert.True(t, summary.AvgAmount.Equal(dec("450000")), "promedio por día con meta: %s", summary.AvgAmount)

	_, err = uc.MonthSummary(bizID, "marzo-2026")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Caso 6: el rango por sucursal solo trae esa sucursal; sin sucursal trae todo
// el negocio.
func TestMetas_RangoCalendario(t *testing.T) {
	uc, _ := newSalesTargetUseCase()
	for _, in := range []dto.CreateSalesTargetRequest{
		{BranchID: branchID, Date: "2026-03-05", TargetAmount: dec("300000")},
		{BranchID: "branch-2", Date: "2026-03-06", TargetAmount: dec("200000")},
	} {
		_, err := uc.Create(bizID, in)
		require.NoError(t, err)
	}

	all, err := uc.ListRange(bizID, "", "2026-03-01", "2026-03-31")
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	one, err := uc.ListRange(bizID, branchID, "2026-03-01", "2026-03-31")
	require.NoError(t, err)
	require.Len(t, one.Items, 1)
	assert.Equal(t, branchID, one.Items[0].BranchID)
}
