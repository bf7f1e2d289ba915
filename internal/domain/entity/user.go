package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleEncargado = "encargado"
	RoleBarista   = "barista"
)

// User representa un usuario del sistema (pertenece a un Business).
type User struct {
	ID           string
	BusinessID   string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, encargado, barista
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
