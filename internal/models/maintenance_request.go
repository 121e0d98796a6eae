package models

import (
	"time"

	"github.com/google/uuid"
)

type MaintenanceStatusType string

const (
	MaintenanceStatusOpen       MaintenanceStatusType = "OPEN"
	MaintenanceStatusInProgress MaintenanceStatusType = "IN_PROGRESS"
	MaintenanceStatusResolved   MaintenanceStatusType = "RESOLVED"
	MaintenanceStatusCanceled   MaintenanceStatusType = "CANCELED"
)

type MaintenancePriorityType string

const (
	MaintenancePriorityLow    MaintenancePriorityType = "LOW"
	MaintenancePriorityMedium MaintenancePriorityType = "MEDIUM"
	MaintenancePriorityHigh   MaintenancePriorityType = "HIGH"
	MaintenancePriorityUrgent MaintenancePriorityType = "URGENT"
)

type MaintenanceRequest struct {
	ID              uuid.UUID               `json:"id"`
	TenantID        uuid.UUID               `json:"tenant_id"`
	Description     string                  `json:"description"`
	Status          MaintenanceStatusType   `json:"status"`
	Priority        MaintenancePriorityType `json:"priority"`
	AssignedStaffID *uuid.UUID              `json:"assigned_staff_id,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}
