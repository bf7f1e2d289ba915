package dto

import "time"

// CreateBusinessRequest entrada para crear un negocio (onboarding público).
type CreateBusinessRequest struct {
	Code     string `json:"code" validate:"required,min=3,max=50"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	Currency string `json:"currency" validate:"omitempty,len=3"`

	// Datos del usuario dueño, creado junto con el negocio.
	OwnerName     string `json:"owner_name" validate:"required,min=1,max=200"`
	OwnerEmail    string `json:"owner_email" validate:"required,email"`
	OwnerPassword string `json:"owner_password" validate:"required,min=8"`
}

// UpdateBusinessRequest entrada para actualizar un negocio (campos opcionales; Code no cambia).
type UpdateBusinessRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Currency *string `json:"currency" validate:"omitempty,len=3"`
	Status   *string `json:"status" validate:"omitempty,oneof=active suspended inactive"`
}

// BusinessResponse salida de un negocio.
type BusinessResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateBusinessResponse salida del onboarding: negocio + token del dueño.
type CreateBusinessResponse struct {
	Business BusinessResponse `json:"business"`
	Owner    UserResponse     `json:"owner"`
	Token    string           `json:"token"`
}
