package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/models"
)

type CreateLeaseRequest struct {
	TenantID     uuid.UUID `json:"tenant_id" validate:"required"`
	UnitID       uuid.UUID `json:"unit_id" validate:"required"`
	RentCents    int64     `json:"rent_cents"`
	DepositCents int64     `json:"deposit_cents"`
	StartDate    time.Time `json:"start_date" validate:"required"`
	EndDate      time.Time `json:"end_date" validate:"required"`

	// Landlord-initiated flows may seed an explicit initial status;
	// tenant applications always start PENDING.
	Status *models.LeaseStatusType `json:"status,omitempty" validate:"omitempty,oneof=PENDING APPROVED_AWAITING_PAYMENT ACTIVE EXPIRED TERMINATED DENIED"`
}

type ApproveLeaseRequest struct {
	StartDate    time.Time `json:"start_date" validate:"required"`
	EndDate      time.Time `json:"end_date" validate:"required"`
	DepositCents int64     `json:"deposit_cents"`
}

type DenyLeaseRequest struct {
	Reason *string `json:"reason,omitempty"`
}

type UpdateLeaseRequest struct {
	TenantID     uuid.UUID `json:"tenant_id" validate:"required"`
	UnitID       uuid.UUID `json:"unit_id" validate:"required"`
	RentCents    int64     `json:"rent_cents"`
	DepositCents int64     `json:"deposit_cents"`
	StartDate    time.Time `json:"start_date" validate:"required"`
	EndDate      time.Time `json:"end_date" validate:"required"`

	Status *models.LeaseStatusType `json:"status,omitempty" validate:"omitempty,oneof=PENDING APPROVED_AWAITING_PAYMENT ACTIVE EXPIRED TERMINATED DENIED"`
}
