package models

import (
	"time"

	"github.com/google/uuid"
)

type LeaseStatusType string

const (
	LeaseStatusPending         LeaseStatusType = "PENDING"
	LeaseStatusAwaitingPayment LeaseStatusType = "APPROVED_AWAITING_PAYMENT"
	LeaseStatusActive          LeaseStatusType = "ACTIVE"
	LeaseStatusExpired         LeaseStatusType = "EXPIRED"
	LeaseStatusTerminated      LeaseStatusType = "TERMINATED"
	LeaseStatusDenied          LeaseStatusType = "DENIED"
)

// IsTerminal reports whether the status ends the lease lifecycle. A
// tenant may only hold one non-terminal lease at a time.
func (s LeaseStatusType) IsTerminal() bool {
	switch s {
	case LeaseStatusExpired, LeaseStatusTerminated, LeaseStatusDenied:
		return true
	}
	return false
}

// MinLeaseDuration is the shortest lease the system accepts.
const MinLeaseDuration = 180 * 24 * time.Hour

// Lease is a time-bounded rental agreement between a tenant and a
// unit. The display unit number is resolved via join at read time, not
// stored here.
type Lease struct {
	ID           uuid.UUID       `json:"id"`
	TenantID     uuid.UUID       `json:"tenant_id"`
	UnitID       uuid.UUID       `json:"unit_id"`
	RentCents    int64           `json:"rent_cents"`
	DepositCents int64           `json:"deposit_cents"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	Status       LeaseStatusType `json:"status"`
	DenialReason *string         `json:"denial_reason,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
