package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/models"
)

type CreateIntentResponse struct {
	ClientSecret string `json:"client_secret"`
}

type ConfirmPaymentRequest struct {
	IntentID string `json:"intent_id" validate:"required"`
}

// CreateManualPaymentRequest records a landlord-entered payment
// (cash, check) that never went through the gateway.
type CreateManualPaymentRequest struct {
	TenantID    uuid.UUID                `json:"tenant_id" validate:"required"`
	LeaseID     *uuid.UUID               `json:"lease_id,omitempty"`
	AmountCents int64                    `json:"amount_cents" validate:"gt=0"`
	Method      models.PaymentMethodType `json:"method" validate:"required,oneof=CARD CASH CHECK BANK_TRANSFER"`
	PaidAt      *time.Time               `json:"paid_at,omitempty"`

	Status *models.PaymentStatusType `json:"status,omitempty" validate:"omitempty,oneof=PENDING PAID FAILED"`
}
