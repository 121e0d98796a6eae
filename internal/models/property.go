package models

import (
	"time"

	"github.com/google/uuid"
)

type Property struct {
	ID           uuid.UUID `json:"id"`
	OwnerUserID  uuid.UUID `json:"owner_user_id"`
	PropertyName string    `json:"property_name"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	ZipCode      string    `json:"zip_code"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
