package repository

import "github.com/jhoicas/Baristo-api/internal/domain/entity"

// JourneyRepository define el puerto de persistencia para el recorrido de
// puesta en marcha (DIP). Las filas se siembran al crear el negocio.
type JourneyRepository interface {
	// SeedSteps inserta los pasos que falten para el negocio (idempotente).
	SeedSteps(businessID string) error
	ListByBusiness(businessID string) ([]*entity.JourneyStep, error)
	GetByBusinessAndKey(businessID, stepKey string) (*entity.JourneyStep, error)
	// SetCompleted marca o desmarca un paso (idempotente; fija CompletedAt
	// al marcar y lo limpia al desmarcar).
	SetCompleted(businessID, stepKey string, completed bool) error
}
