package models

import (
	"time"

	"github.com/google/uuid"
)

type UnitStatusType string

const (
	UnitStatusAvailable   UnitStatusType = "AVAILABLE"
	UnitStatusRented      UnitStatusType = "RENTED"
	UnitStatusMaintenance UnitStatusType = "MAINTENANCE"
	UnitStatusUnavailable UnitStatusType = "UNAVAILABLE"
)

// Unit represents a tenant-addressable space on a property. Status is
// RENTED exactly when an active tenant/lease binding references the
// unit; the occupancy service keeps that in sync.
type Unit struct {
	ID         uuid.UUID      `json:"id"`
	PropertyID uuid.UUID      `json:"property_id"`
	UnitNumber string         `json:"unit_number"`
	RentCents  int64          `json:"rent_cents"`
	Status     UnitStatusType `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
