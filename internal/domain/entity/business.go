package entity

import "time"

// Business representa una cafetería/negocio del sistema (multi-tenant).
// Code es el identificador corto que el dueño escribe al crear el negocio
// (debe ser único en toda la plataforma).
type Business struct {
	ID        string
	Code      string // ej. "cafe-andino"; único global
	Name      string
	Address   string
	Phone     string
	Email     string
	Currency  string // ISO 4217, por defecto "COP"
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
