package repository

import "github.com/jhoicas/Baristo-api/internal/domain/entity"

// BusinessRepository define el puerto de persistencia para Business (DIP).
type BusinessRepository interface {
	Create(business *entity.Business) error
	GetByID(id string) (*entity.Business, error)
	GetByCode(code string) (*entity.Business, error)
	Update(business *entity.Business) error
	List(limit, offset int) ([]*entity.Business, error)
	Delete(id string) error
}
