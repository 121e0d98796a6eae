package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatusType string

const (
	PaymentStatusPending PaymentStatusType = "PENDING"
	PaymentStatusPaid    PaymentStatusType = "PAID"
	PaymentStatusFailed  PaymentStatusType = "FAILED"
)

type PaymentMethodType string

const (
	PaymentMethodCard         PaymentMethodType = "CARD"
	PaymentMethodCash         PaymentMethodType = "CASH"
	PaymentMethodCheck        PaymentMethodType = "CHECK"
	PaymentMethodBankTransfer PaymentMethodType = "BANK_TRANSFER"
)

// Payment is either landlord-entered (cash/check) or written by the
// payment reconciler after a confirmed gateway charge, in which case
// GatewayTransactionID holds the intent id and is unique.
type Payment struct {
	ID                   uuid.UUID         `json:"id"`
	TenantID             uuid.UUID         `json:"tenant_id"`
	LeaseID              *uuid.UUID        `json:"lease_id,omitempty"`
	AmountCents          int64             `json:"amount_cents"`
	PaidAt               time.Time         `json:"paid_at"`
	Method               PaymentMethodType `json:"method"`
	Status               PaymentStatusType `json:"status"`
	GatewayTransactionID *string           `json:"gateway_transaction_id,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
}
