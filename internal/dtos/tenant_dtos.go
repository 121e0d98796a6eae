package dtos

import "github.com/google/uuid"

// CreateTenantRequest is the rental application. Tenant-role callers
// always apply as themselves; the service forces Email to the caller's
// token email in that case.
type CreateTenantRequest struct {
	UnitID      *uuid.UUID `json:"unit_id,omitempty"`
	FirstName   string     `json:"first_name" validate:"required,min=1"`
	LastName    string     `json:"last_name" validate:"required,min=1"`
	Email       string     `json:"email" validate:"required,email"`
	PhoneNumber *string    `json:"phone_number,omitempty" validate:"omitempty,e164"`
}

type UpdateTenantRequest struct {
	UnitID      *uuid.UUID `json:"unit_id,omitempty"`
	FirstName   string     `json:"first_name" validate:"required,min=1"`
	LastName    string     `json:"last_name" validate:"required,min=1"`
	Email       string     `json:"email" validate:"required,email"`
	PhoneNumber *string    `json:"phone_number,omitempty" validate:"omitempty,e164"`
}
