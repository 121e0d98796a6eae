package dtos

import (
	"github.com/google/uuid"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/models"
)

type CreateMaintenanceRequestRequest struct {
	// Tenant-role callers may omit TenantID; it resolves to their own
	// tenant record.
	TenantID    *uuid.UUID                     `json:"tenant_id,omitempty"`
	Description string                         `json:"description" validate:"required,min=1"`
	Priority    models.MaintenancePriorityType `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH URGENT"`
}

type UpdateMaintenanceRequestRequest struct {
	Description     string                         `json:"description" validate:"required,min=1"`
	Status          models.MaintenanceStatusType   `json:"status" validate:"required,oneof=OPEN IN_PROGRESS RESOLVED CANCELED"`
	Priority        models.MaintenancePriorityType `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH URGENT"`
	AssignedStaffID *uuid.UUID                     `json:"assigned_staff_id,omitempty"`
}
