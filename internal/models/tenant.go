package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is created by a rental application and later bound to a unit.
// Email is unique among tenants and stored lowercased; it is how the
// scope resolver matches an authenticated caller to their tenant row.
// GatewayCustomerID stores the billing customer reference so repeat
// payments reuse it instead of creating a new gateway customer.
type Tenant struct {
	ID                uuid.UUID  `json:"id"`
	UnitID            *uuid.UUID `json:"unit_id,omitempty"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	Email             string     `json:"email"`
	PhoneNumber       *string    `json:"phone_number,omitempty"`
	GatewayCustomerID *string    `json:"gateway_customer_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (t *Tenant) FullName() string {
	return t.FirstName + " " + t.LastName
}
