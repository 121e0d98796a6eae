package dtos

import (
	"github.com/google/uuid"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/models"
)

type CreatePropertyRequest struct {
	PropertyName string `json:"property_name" validate:"required,min=1"`
	Address      string `json:"address" validate:"required,min=1"`
	City         string `json:"city" validate:"required,min=1"`
	State        string `json:"state" validate:"required,min=2"`
	ZipCode      string `json:"zip_code" validate:"required,min=5"`
}

type UpdatePropertyRequest struct {
	PropertyName string `json:"property_name" validate:"required,min=1"`
	Address      string `json:"address" validate:"required,min=1"`
	City         string `json:"city" validate:"required,min=1"`
	State        string `json:"state" validate:"required,min=2"`
	ZipCode      string `json:"zip_code" validate:"required,min=5"`
}

type CreateUnitRequest struct {
	UnitNumber string `json:"unit_number" validate:"required,min=1"`
	RentCents  int64  `json:"rent_cents" validate:"gte=0"`
}

type UpdateUnitRequest struct {
	UnitNumber string                 `json:"unit_number" validate:"required,min=1"`
	RentCents  int64                  `json:"rent_cents" validate:"gte=0"`
	Status     models.UnitStatusType  `json:"status" validate:"required,oneof=AVAILABLE RENTED MAINTENANCE UNAVAILABLE"`
}

type CreateStaffRequest struct {
	PropertyID  uuid.UUID `json:"property_id" validate:"required"`
	FirstName   string    `json:"first_name" validate:"required,min=1"`
	LastName    string    `json:"last_name" validate:"required,min=1"`
	Email       string    `json:"email" validate:"required,email"`
	PhoneNumber *string   `json:"phone_number,omitempty" validate:"omitempty,e164"`
	Position    string    `json:"position" validate:"required,min=1"`
}

type UpdateStaffRequest struct {
	PropertyID  uuid.UUID `json:"property_id" validate:"required"`
	FirstName   string    `json:"first_name" validate:"required,min=1"`
	LastName    string    `json:"last_name" validate:"required,min=1"`
	Email       string    `json:"email" validate:"required,email"`
	PhoneNumber *string   `json:"phone_number,omitempty" validate:"omitempty,e164"`
	Position    string    `json:"position" validate:"required,min=1"`
}
