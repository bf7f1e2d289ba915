package entity

import "time"

// Branch representa una sucursal del negocio. Cada sucursal tiene su propia
// bodega: el stock de ingredientes se lleva por (sucursal, ingrediente).
type Branch struct {
	ID         string
	BusinessID string
	Name       string
	Address    string
	Phone      string
	IsMain     bool // sucursal principal (la primera creada)
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
