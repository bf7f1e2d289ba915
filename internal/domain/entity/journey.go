package entity

import "time"

// Pasos del recorrido de puesta en marcha de un negocio. El orden de esta
// lista es el orden en que se muestran; las claves son estables y se usan
// tanto en la API como en la tabla journey_steps.
const (
	JourneyStepCrearSucursal       = "crear_sucursal"
	JourneyStepAgregarIngredientes = "agregar_ingredientes"
	JourneyStepCrearProducto       = "crear_producto"
	JourneyStepRecibirLote         = "recibir_lote"
	JourneyStepDefinirMeta         = "definir_meta"
	JourneyStepPrimeraProduccion   = "primera_produccion"
)

// JourneySteps devuelve las claves de los pasos en orden de presentación.
func JourneySteps() []string {
	return []string{
		JourneyStepCrearSucursal,
		JourneyStepAgregarIngredientes,
		JourneyStepCrearProducto,
		JourneyStepRecibirLote,
		JourneyStepDefinirMeta,
		JourneyStepPrimeraProduccion,
	}
}

// IsJourneyStep indica si key es un paso conocido del recorrido.
func IsJourneyStep(key string) bool {
	for _, k := range JourneySteps() {
		if k == key {
			return true
		}
	}
	return false
}

// JourneyStep registra si un negocio completó un paso del recorrido.
// Los pasos se marcan automáticamente al ocurrir la acción (crear la primera
// sucursal, recibir el primer lote, ...) o manualmente vía API.
type JourneyStep struct {
	ID          string
	BusinessID  string
	StepKey     string
	Completed   bool
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
